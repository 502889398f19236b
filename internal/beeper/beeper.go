package beeper

const (
	DefaultSampleRate = 44100
	DefaultTone       = 440.0 // Hz
	DefaultVolume     = 0.25
)

// Beeper generates the single square-wave tone a CHIP-8 can make. It keeps
// its phase between calls so consecutive buffers join without clicks.
type Beeper struct {
	sampleRate int
	tone       float64
	amplitude  int16
	phase      float64 // position within one period, [0,1)
}

// New creates a beeper. volume is a fraction of full scale in [0,1].
func New(sampleRate int, tone, volume float64) *Beeper {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if tone <= 0 {
		tone = DefaultTone
	}
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Beeper{
		sampleRate: sampleRate,
		tone:       tone,
		amplitude:  int16(volume * 32767),
	}
}

func (b *Beeper) SampleRate() int { return b.sampleRate }

// SamplesPerFrame is the number of samples covering one frame at fps.
func (b *Beeper) SamplesPerFrame(fps int) int {
	if fps <= 0 {
		return 0
	}
	return b.sampleRate / fps
}

// Fill writes mono samples into dst: the tone when on, silence otherwise.
func (b *Beeper) Fill(dst []int16, on bool) {
	if !on {
		for i := range dst {
			dst[i] = 0
		}
		b.phase = 0
		return
	}
	step := b.tone / float64(b.sampleRate)
	for i := range dst {
		if b.phase < 0.5 {
			dst[i] = b.amplitude
		} else {
			dst[i] = -b.amplitude
		}
		b.phase += step
		if b.phase >= 1 {
			b.phase -= 1
		}
	}
}
