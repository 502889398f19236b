package timer

// DefaultFrequency is the rate in Hz at which the driver is expected to call Tick.
const DefaultFrequency = 60

// Timer holds the delay and sound countdown registers. Both count down by one
// per Tick and stop at zero.
type Timer struct {
	delay byte
	sound byte
	hz    int
}

// New creates a timer pair ticking at hz. Non-positive values fall back to
// DefaultFrequency.
func New(hz int) *Timer {
	if hz <= 0 {
		hz = DefaultFrequency
	}
	return &Timer{hz: hz}
}

// Frequency reports the configured tick rate. The timer itself never reads a clock.
func (t *Timer) Frequency() int { return t.hz }

func (t *Timer) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

func (t *Timer) Delay() byte         { return t.delay }
func (t *Timer) SetDelay(value byte) { t.delay = value }
func (t *Timer) Sound() byte         { return t.sound }
func (t *Timer) SetSound(value byte) { t.sound = value }

// SoundActive reports whether a tone should currently be playing.
func (t *Timer) SoundActive() bool { return t.sound > 0 }

func (t *Timer) Reset() {
	t.delay = 0
	t.sound = 0
}
