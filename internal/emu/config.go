package emu

import "github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"

const (
	DefaultInstructionHz = 700
	DefaultTimerHz       = 60
	FrameRate            = 60 // frames per second assumed by StepFrame

	// MaxClockHz bounds both clocks so each period stays a whole number of
	// nanoseconds well above zero.
	MaxClockHz = 1_000_000
)

// Config contains settings that affect emulation behavior.
type Config struct {
	InstructionHz int         // instructions executed per emulated second
	TimerHz       int         // delay/sound timer decrements per second
	Quirks        *cpu.Quirks // nil selects cpu.DefaultQuirks
	Seed          int64       // seed for CXNN; 0 seeds from the clock
	Palette       string      // lit/unlit colour pair, see Palettes
	Trace         bool        // log every executed instruction
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.InstructionHz <= 0 {
		c.InstructionHz = DefaultInstructionHz
	}
	if c.InstructionHz > MaxClockHz {
		c.InstructionHz = MaxClockHz
	}
	if c.TimerHz <= 0 {
		c.TimerHz = DefaultTimerHz
	}
	if c.TimerHz > MaxClockHz {
		c.TimerHz = MaxClockHz
	}
	if c.Quirks == nil {
		q := cpu.DefaultQuirks()
		c.Quirks = &q
	}
	if c.Palette == "" {
		c.Palette = palettes[0].Name
	}
}
