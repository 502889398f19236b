// Package headless runs a machine without a window for scripted checks.
package headless

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/beeper"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrChecksumMismatch is returned when the final frame does not match Options.Expect.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrInvalidCRC is returned for an expected checksum that is not 32-bit hex.
	ErrInvalidCRC = errors.New("invalid CRC32")
)

// Options control a headless run.
type Options struct {
	Frames int    // frames to run, at least 1
	PNGOut string // write the last frame to this PNG path
	Expect string // expected framebuffer CRC32 in hex, with or without 0x
	WAVOut string // record the buzzer to this WAV path
}

// Result summarizes a finished run.
type Result struct {
	Frames  int
	Steps   uint64
	CRC32   uint32
	Elapsed time.Duration
}

// Run steps m for opts.Frames frames, then writes the requested artifacts
// and verifies the checksum. A fatal emulation error stops the run early;
// artifacts are still written so the halted frame can be inspected.
func Run(m *emu.Machine, opts Options, logger *log.Logger) (Result, error) {
	if opts.Frames <= 0 {
		opts.Frames = 1
	}
	var want uint32
	if opts.Expect != "" {
		v, err := ParseCRC(opts.Expect)
		if err != nil {
			return Result{}, err
		}
		want = v
	}

	var capture *emu.AudioCapture
	if opts.WAVOut != "" {
		capture = emu.NewAudioCapture(beeper.DefaultSampleRate)
	}

	var res Result
	var runErr error
	start := time.Now()
	for res.Frames < opts.Frames {
		if runErr = m.StepFrame(); runErr != nil {
			break
		}
		res.Frames++
		if capture != nil {
			capture.CaptureFrame(m)
		}
	}
	res.Elapsed = time.Since(start)
	res.Steps = m.Steps()
	res.CRC32 = m.FrameCRC32()

	logger.Info("Headless run finished",
		log.String("rom", m.ROMName()),
		log.String("frames", strconv.Itoa(res.Frames)),
		log.String("instructions", strconv.FormatUint(res.Steps, 10)),
		log.String("elapsed", res.Elapsed.Truncate(time.Millisecond).String()),
		log.String("fb_crc32", fmt.Sprintf("%08x", res.CRC32)))

	if opts.PNGOut != "" {
		if err := m.SavePNG(opts.PNGOut); err != nil {
			return res, errors.Wrap(err, "write PNG")
		}
		logger.Info("Wrote frame", log.String("path", opts.PNGOut))
	}
	if capture != nil {
		if err := capture.SaveWAV(opts.WAVOut); err != nil {
			return res, errors.Wrap(err, "write WAV")
		}
		logger.Info("Wrote audio", log.String("path", opts.WAVOut))
	}

	if runErr != nil {
		return res, runErr
	}
	if opts.Expect != "" && res.CRC32 != want {
		return res, errors.Wrapf(ErrChecksumMismatch, "got %08x, want %08x", res.CRC32, want)
	}
	return res, nil
}

// ParseCRC reads a CRC32 written as hex, allowing a 0x prefix and either case.
func ParseCRC(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidCRC, "%q: %v", s, err)
	}
	return uint32(v), nil
}
