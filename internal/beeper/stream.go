package beeper

import (
	"encoding/binary"
	"sync"
)

const bytesPerFrame = 4 // 16-bit little-endian stereo

// Stream adapts a Beeper to io.Reader for audio players that pull 16-bit
// little-endian stereo PCM. active is polled once per Read, so it must be
// safe to call from the player's goroutine.
type Stream struct {
	mu     sync.Mutex
	beeper *Beeper
	active func() bool
	muted  bool
	mono   []int16
}

// NewStream creates a stream rendering b whenever active reports true.
func NewStream(b *Beeper, active func() bool) *Stream {
	return &Stream{beeper: b, active: active}
}

// SetMuted silences the stream without stopping the player.
func (s *Stream) SetMuted(muted bool) {
	s.mu.Lock()
	s.muted = muted
	s.mu.Unlock()
}

// Muted reports whether the stream is silenced.
func (s *Stream) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	// a buffer smaller than one frame gets silence so the reader never returns 0
	if len(p) < bytesPerFrame {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	frames := len(p) / bytesPerFrame
	if cap(s.mono) < frames {
		s.mono = make([]int16, frames)
	}
	mono := s.mono[:frames]
	on := !s.muted && s.active != nil && s.active()
	s.beeper.Fill(mono, on)

	for i, v := range mono {
		off := i * bytesPerFrame
		binary.LittleEndian.PutUint16(p[off:], uint16(v))
		binary.LittleEndian.PutUint16(p[off+2:], uint16(v))
	}
	return frames * bytesPerFrame, nil
}
