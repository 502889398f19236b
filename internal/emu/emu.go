package emu

import (
	"math/rand"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/timer"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

// ErrNoROM is returned when the machine is advanced before a ROM is loaded.
var ErrNoROM = errors.New("no ROM loaded")

// Machine owns one CHIP-8 session and schedules the instruction and timer
// clocks against a shared wall-clock budget.
type Machine struct {
	cfg    Config
	logger *log.Logger

	mem   *memory.Memory
	timer *timer.Timer
	cpu   *cpu.CPU
	rom   *rom.ROM

	fb      []byte // RGBA 64x32*4
	palette int
	keys    [cpu.NumKeys]bool

	// time owed to each clock; an event fires once its period is covered
	instrPeriod time.Duration
	timerPeriod time.Duration
	instrDue    time.Duration
	timerDue    time.Duration

	steps uint64
	err   error
}

// New creates a machine. cfg is completed with Defaults, an unknown palette
// name falls back to the first palette.
func New(cfg Config, logger *log.Logger) *Machine {
	cfg.Defaults()
	m := &Machine{
		cfg:         cfg,
		logger:      logger,
		fb:          make([]byte, display.Width*display.Height*4),
		instrPeriod: time.Second / time.Duration(cfg.InstructionHz),
		timerPeriod: time.Second / time.Duration(cfg.TimerHz),
	}
	if i, ok := paletteIndex(cfg.Palette); ok {
		m.palette = i
	} else if logger != nil {
		logger.Info("Unknown palette, using default", log.String("palette", cfg.Palette))
	}
	return m
}

// LoadROM resets the machine and places r at the program base.
func (m *Machine) LoadROM(r *rom.ROM) error {
	if r == nil {
		return ErrNoROM
	}
	mem := memory.New()
	mem.LoadFont()
	if err := mem.LoadProgram(r.Data); err != nil {
		return errors.Wrapf(err, "loading %s", r.Name)
	}

	seed := m.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t := timer.New(m.cfg.TimerHz)
	c := cpu.New(mem, t, cpu.Config{
		Quirks: *m.cfg.Quirks,
		Rand:   rand.NewSource(seed),
		Logger: m.logger,
		Trace:  m.cfg.Trace,
	})

	m.mem, m.timer, m.cpu, m.rom = mem, t, c, r
	m.instrDue, m.timerDue = 0, 0
	m.steps = 0
	m.err = nil
	m.keys = [cpu.NumKeys]bool{}

	if m.logger != nil {
		m.logger.Info("ROM loaded", log.String("rom", r.String()))
	}
	return nil
}

// LoadROMFromFile reads a ROM from disk and loads it.
func (m *Machine) LoadROMFromFile(path string) error {
	r, err := rom.Load(path)
	if err != nil {
		return err
	}
	return m.LoadROM(r)
}

// Reset restarts the current ROM from a clean machine state.
func (m *Machine) Reset() error {
	if m.rom == nil {
		return ErrNoROM
	}
	if m.logger != nil {
		m.logger.Info("Resetting machine", log.String("rom", m.rom.Name))
	}
	return m.LoadROM(m.rom)
}

// ROMName returns the name of the loaded ROM or an empty string.
func (m *Machine) ROMName() string {
	if m.rom == nil {
		return ""
	}
	return m.rom.Name
}

// Err returns the fatal error that halted the machine, if any.
func (m *Machine) Err() error { return m.err }

// Steps returns the number of instructions executed since the last load.
func (m *Machine) Steps() uint64 { return m.steps }

// Config returns the effective configuration.
func (m *Machine) Config() Config { return m.cfg }

// Advance runs the machine for d of emulated time. Instructions and timer
// ticks fire in time order; a timer tick due at the same instant as an
// instruction fires first. After a fatal error nothing executes and the
// error is returned on every call.
func (m *Machine) Advance(d time.Duration) error {
	if m.err != nil {
		return m.err
	}
	if m.cpu == nil {
		return ErrNoROM
	}
	if d <= 0 {
		return nil
	}

	m.instrDue += d
	m.timerDue += d
	for m.instrDue >= m.instrPeriod || m.timerDue >= m.timerPeriod {
		// the clock with the larger surplus owes the earlier event
		if m.timerDue >= m.timerPeriod && m.timerDue-m.timerPeriod >= m.instrDue-m.instrPeriod {
			m.timer.Tick()
			m.timerDue -= m.timerPeriod
			continue
		}
		m.instrDue -= m.instrPeriod
		m.cpu.SetKeys(m.keys)
		if err := m.cpu.Step(); err != nil {
			m.halt(err)
			return err
		}
		m.steps++
	}
	return nil
}

// StepFrame advances one display frame.
func (m *Machine) StepFrame() error {
	return m.Advance(time.Second / FrameRate)
}

func (m *Machine) halt(err error) {
	m.err = err
	if m.logger != nil {
		m.logger.Error("Emulation halted", err, log.String("rom", m.ROMName()))
	}
}

// SetKeys stores the keypad snapshot handed to the CPU before each instruction.
func (m *Machine) SetKeys(keys [cpu.NumKeys]bool) { m.keys = keys }

// SoundActive reports whether the buzzer should currently sound.
func (m *Machine) SoundActive() bool {
	return m.timer != nil && m.timer.SoundActive()
}

// Display returns a copy of the 1-bit screen.
func (m *Machine) Display() display.Screen {
	if m.cpu == nil {
		return display.Screen{}
	}
	return m.cpu.Display()
}

// Framebuffer renders the screen with the current palette and returns the
// RGBA buffer. The slice is reused between calls.
func (m *Machine) Framebuffer() []byte {
	p := palettes[m.palette]
	screen := m.Display()
	screen.Rasterize(m.fb, p.On, p.Off)
	return m.fb
}

// Palette returns the active palette.
func (m *Machine) Palette() Palette { return palettes[m.palette] }

// CyclePalette moves dir steps through the palette list and returns the new one.
func (m *Machine) CyclePalette(dir int) Palette {
	n := len(palettes)
	m.palette = ((m.palette+dir)%n + n) % n
	m.cfg.Palette = palettes[m.palette].Name
	return palettes[m.palette]
}
