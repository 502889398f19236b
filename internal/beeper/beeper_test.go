package beeper

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestBeeper_Silence(t *testing.T) {
	b := New(DefaultSampleRate, DefaultTone, 1)
	buf := []int16{5, 5, 5, 5}
	b.Fill(buf, false)
	assert.Equal(t, []int16{0, 0, 0, 0}, buf)
}

func TestBeeper_SquareWave(t *testing.T) {
	// 1 kHz at 8 kHz: 4 high samples then 4 low samples per period
	b := New(8000, 1000, 0.5)
	buf := make([]int16, 16)
	b.Fill(buf, true)

	high := b.amplitude
	assert.Equal(t, int16(16383), high)
	for i, s := range buf {
		if i%8 < 4 {
			assert.Equal(t, high, s)
		} else {
			assert.Equal(t, -high, s)
		}
	}
}

func TestBeeper_PhaseContinues(t *testing.T) {
	b := New(8000, 1000, 1)
	first := make([]int16, 2)
	second := make([]int16, 4)
	b.Fill(first, true)
	b.Fill(second, true)
	// samples 2,3 still high, 4,5 low
	assert.True(t, second[0] > 0)
	assert.True(t, second[1] > 0)
	assert.True(t, second[2] < 0)
	assert.True(t, second[3] < 0)
}

func TestBeeper_Defaults(t *testing.T) {
	b := New(0, 0, 2)
	assert.Equal(t, DefaultSampleRate, b.SampleRate())
	assert.Equal(t, 735, b.SamplesPerFrame(60))
	assert.Equal(t, 0, b.SamplesPerFrame(0))
}
