package emu

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func newMachine(t *testing.T, cfg Config, words ...uint16) *Machine {
	t.Helper()
	data := make([]byte, 0, len(words)*2)
	for _, w := range words {
		data = append(data, byte(w>>8), byte(w))
	}
	r, err := rom.New("test", data)
	assert.NoError(t, err)
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	m := New(cfg, nil)
	assert.NoError(t, m.LoadROM(r))
	return m
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()
	assert.Equal(t, DefaultInstructionHz, cfg.InstructionHz)
	assert.Equal(t, DefaultTimerHz, cfg.TimerHz)
	assert.Equal(t, cpu.DefaultQuirks(), *cfg.Quirks)
	assert.Equal(t, "classic", cfg.Palette)
}

func TestConfigDefaults_ClampsClocks(t *testing.T) {
	cfg := Config{InstructionHz: 2_000_000_000, TimerHz: 5_000_000}
	cfg.Defaults()
	assert.Equal(t, MaxClockHz, cfg.InstructionHz)
	assert.Equal(t, MaxClockHz, cfg.TimerHz)

	// a huge rate still terminates and runs at the clamped speed
	m := newMachine(t, Config{InstructionHz: 2_000_000_000}, 0x1200)
	assert.NoError(t, m.Advance(time.Millisecond))
	assert.Equal(t, uint64(MaxClockHz/1000), m.Steps())
}

func TestAdvance_NoROM(t *testing.T) {
	m := New(Config{}, nil)
	assert.True(t, errors.Is(m.Advance(time.Second), ErrNoROM))
	assert.True(t, errors.Is(m.Reset(), ErrNoROM))
	assert.Equal(t, "", m.ROMName())
	assert.False(t, m.SoundActive())
}

func TestAdvance_ClockRates(t *testing.T) {
	// V0=5, DT=V0, then spin on a self jump
	m := newMachine(t, Config{}, 0x6005, 0xF015, 0x1204)
	assert.NoError(t, m.Advance(time.Second))
	assert.Equal(t, uint64(DefaultInstructionHz), m.Steps())
	assert.Equal(t, byte(0), m.timer.Delay())
}

func TestAdvance_FractionalSlices(t *testing.T) {
	m := newMachine(t, Config{}, 0x1200)
	for i := 0; i < 1000; i++ {
		assert.NoError(t, m.Advance(time.Millisecond))
	}
	assert.Equal(t, uint64(DefaultInstructionHz), m.Steps())

	m = newMachine(t, Config{}, 0x1200)
	for i := 0; i < FrameRate; i++ {
		assert.NoError(t, m.StepFrame())
	}
	assert.Equal(t, uint64(DefaultInstructionHz), m.Steps())
}

func TestAdvance_TimerBeforeInstructionOnTie(t *testing.T) {
	// one instruction and one timer tick per frame
	m := newMachine(t, Config{InstructionHz: 60, TimerHz: 60},
		0x6003, // V0=3
		0xF015, // DT=V0
		0xF107, // V1=DT
		0x1206,
	)
	for i := 0; i < 3; i++ {
		assert.NoError(t, m.StepFrame())
	}
	// the third frame's tick lands before V1 reads the delay timer
	assert.Equal(t, byte(2), m.cpu.V[1])
}

func TestAdvance_FatalErrorLatches(t *testing.T) {
	m := newMachine(t, Config{}, 0x6001, 0xFFFF)

	err := m.Advance(time.Second)
	assert.True(t, errors.Is(err, cpu.ErrUnknownOpcode))
	assert.Equal(t, uint64(1), m.Steps())
	assert.True(t, errors.Is(m.Err(), cpu.ErrUnknownOpcode))

	// nothing runs after the halt
	err = m.StepFrame()
	assert.True(t, errors.Is(err, cpu.ErrUnknownOpcode))
	assert.Equal(t, uint64(1), m.Steps())

	assert.NoError(t, m.Reset())
	assert.NoError(t, m.Err())
	assert.Equal(t, uint64(0), m.Steps())
}

func TestLoadROM_TooLarge(t *testing.T) {
	m := New(Config{}, nil)
	err := m.LoadROM(&rom.ROM{Name: "big", Data: make([]byte, memory.Size)})
	assert.True(t, errors.Is(err, memory.ErrProgramTooLarge))
	assert.True(t, errors.Is(m.Advance(time.Second), ErrNoROM))
}

func TestLoadROMFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Maze.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x12, 0x00}, 0o644))

	m := New(Config{Seed: 7}, nil)
	assert.NoError(t, m.LoadROMFromFile(path))
	assert.Equal(t, "Maze", m.ROMName())

	err := m.LoadROMFromFile(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, "Maze", m.ROMName())
}

func TestSoundActive(t *testing.T) {
	m := newMachine(t, Config{InstructionHz: 60, TimerHz: 60}, 0x600A, 0xF018, 0x1204)
	assert.NoError(t, m.StepFrame())
	assert.NoError(t, m.StepFrame())
	assert.True(t, m.SoundActive())
}

func TestSetKeys_WaitForRelease(t *testing.T) {
	m := newMachine(t, Config{}, 0xF30A, 0x1202)

	var keys [cpu.NumKeys]bool
	keys[5] = true
	m.SetKeys(keys)
	assert.NoError(t, m.StepFrame())
	assert.Equal(t, uint16(0x200), m.cpu.PC)

	m.SetKeys([cpu.NumKeys]bool{})
	assert.NoError(t, m.StepFrame())
	assert.Equal(t, byte(5), m.cpu.V[3])
	assert.Equal(t, uint16(0x202), m.cpu.PC)
}

func TestFramebufferAndPalettes(t *testing.T) {
	// draw glyph 0 at (0,0)
	m := newMachine(t, Config{}, 0x6000, 0xF029, 0xD015, 0x1206)
	assert.NoError(t, m.StepFrame())
	screen := m.Display()
	assert.True(t, screen.Lit(0, 0))
	assert.Equal(t, 14, screen.LitCount())

	fb := m.Framebuffer()
	assert.Equal(t, 64*32*4, len(fb))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, fb[:4])
	// x=4 of the glyph's top row is unlit
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xFF}, fb[16:20])

	assert.Equal(t, "amber", m.CyclePalette(1).Name)
	fb = m.Framebuffer()
	assert.Equal(t, []byte{0xFF, 0xB0, 0x00, 0xFF}, fb[:4])

	assert.Equal(t, "lcd", m.CyclePalette(-2).Name)
	assert.Equal(t, "lcd", m.Config().Palette)
}

func TestUnknownPaletteFallsBack(t *testing.T) {
	m := New(Config{Palette: "sepia"}, nil)
	assert.Equal(t, "classic", m.Palette().Name)

	m = New(Config{Palette: " Green "}, nil)
	assert.Equal(t, "green", m.Palette().Name)
	assert.Equal(t, len(palettes), len(Palettes()))
}

func TestAudioCapture_WAV(t *testing.T) {
	m := newMachine(t, Config{InstructionHz: 60, TimerHz: 60}, 0x6005, 0xF018, 0x1204)
	capture := NewAudioCapture(44100)
	for i := 0; i < 4; i++ {
		assert.NoError(t, m.StepFrame())
		capture.CaptureFrame(m)
	}
	assert.Equal(t, 4*735, capture.Samples())

	path := filepath.Join(t.TempDir(), "out.wav")
	assert.NoError(t, capture.SaveWAV(path))

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	assert.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	assert.NoError(t, err)
	assert.Equal(t, 44100, buf.Format.SampleRate)
	assert.Equal(t, 1, buf.Format.NumChannels)
	assert.Equal(t, 4*735, len(buf.Data))

	// the first frame is silent, the buzzer starts in the second
	assert.Equal(t, 0, buf.Data[0])
	assert.True(t, buf.Data[735] != 0)
}
