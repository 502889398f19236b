package emu

import (
	"io"
	"os"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/beeper"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

const (
	wavBitDepth = 16
	wavPCM      = 1
)

// AudioCapture records the buzzer, one frame at a time, for writing to a WAV file.
type AudioCapture struct {
	beeper  *beeper.Beeper
	frame   []int16
	samples []int
}

// NewAudioCapture creates a capture at sampleRate using the default tone.
func NewAudioCapture(sampleRate int) *AudioCapture {
	b := beeper.New(sampleRate, beeper.DefaultTone, beeper.DefaultVolume)
	return &AudioCapture{
		beeper: b,
		frame:  make([]int16, b.SamplesPerFrame(FrameRate)),
	}
}

// CaptureFrame appends one frame of audio, the tone when m is beeping.
func (a *AudioCapture) CaptureFrame(m *Machine) {
	a.beeper.Fill(a.frame, m.SoundActive())
	for _, s := range a.frame {
		a.samples = append(a.samples, int(s))
	}
}

// Samples returns the number of recorded samples.
func (a *AudioCapture) Samples() int { return len(a.samples) }

// WriteWAV encodes the recording as mono 16-bit PCM.
func (a *AudioCapture) WriteWAV(w io.WriteSeeker) error {
	rate := a.beeper.SampleRate()
	enc := wav.NewEncoder(w, rate, wavBitDepth, 1, wavPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           a.samples,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "encoding wav samples")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "finalizing wav")
	}
	return nil
}

// SaveWAV writes the recording to path.
func (a *AudioCapture) SaveWAV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := a.WriteWAV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
