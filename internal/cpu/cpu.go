package cpu

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/stack"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/timer"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

const (
	NumRegisters = 16
	NumKeys      = 16
	StackDepth   = 16 // deepest call nesting before a call is rejected
	flagReg      = 0xF
	wordSize     = 2
)

// Fatal execution errors. Step wraps them with the failing address and word.
var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrMachineRoutine = errors.New("machine language routines are not supported")
	ErrStackUnderflow = errors.New("return with empty call stack")
	ErrStackOverflow  = errors.New("call stack overflow")
)

// Config selects the optional behaviour of a CPU.
type Config struct {
	Quirks Quirks
	// Rand feeds CXNN. A time-seeded source is used when nil.
	Rand rand.Source
	// Logger receives one debug line per executed instruction when Trace is set.
	Logger *log.Logger
	Trace  bool
}

// CPU is the CHIP-8 interpreter core: registers, call stack, frame buffer
// and keypad state, executing out of memory and driving the timer pair.
type CPU struct {
	V  [NumRegisters]byte
	I  uint16
	PC uint16

	mem    *memory.Memory
	timer  *timer.Timer
	stack  stack.Stack[uint16]
	screen display.Screen

	keys     [NumKeys]bool
	prevKeys [NumKeys]bool

	quirks Quirks
	rng    *rand.Rand
	logger *log.Logger
	trace  bool
}

// New creates a CPU operating on mem and t with PC at the program base.
func New(mem *memory.Memory, t *timer.Timer, cfg Config) *CPU {
	src := cfg.Rand
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &CPU{
		PC:     memory.ProgramBase,
		mem:    mem,
		timer:  t,
		quirks: cfg.Quirks,
		rng:    rand.New(src),
		logger: cfg.Logger,
		trace:  cfg.Trace && cfg.Logger != nil,
	}
}

// Reset returns registers, stack, screen and keypad to power-on state.
// Memory and timers belong to the caller and are left alone.
func (c *CPU) Reset() {
	c.V = [NumRegisters]byte{}
	c.I = 0
	c.PC = memory.ProgramBase
	c.stack.Reset()
	c.screen.Clear()
	c.keys = [NumKeys]bool{}
	c.prevKeys = [NumKeys]bool{}
}

// Quirks returns the behaviour the CPU was built with.
func (c *CPU) Quirks() Quirks { return c.quirks }

// Memory exposes the underlying memory for tests/tools.
func (c *CPU) Memory() *memory.Memory { return c.mem }

func (c *CPU) Timer() *timer.Timer { return c.timer }

// Display returns a copy of the current frame.
func (c *CPU) Display() display.Screen { return c.screen }

// StackDepth reports how many return addresses are pending.
func (c *CPU) StackDepth() int { return c.stack.Len() }

// SetKeys hands the CPU this tick's keypad snapshot. The previous snapshot
// is kept for release detection in FX0A.
func (c *CPU) SetKeys(keys [NumKeys]bool) {
	c.prevKeys = c.keys
	c.keys = keys
}

// Step fetches, decodes and executes one instruction. A returned error is
// fatal: the program cannot continue from this state.
func (c *CPU) Step() error {
	pc := c.PC
	word := c.mem.ReadInstruction(pc)
	c.PC += wordSize

	op := Decode(word)
	if c.trace {
		c.logger.Debug("exec",
			log.String("pc", fmt.Sprintf("0x%03X", pc)),
			log.String("word", fmt.Sprintf("%04X", word)),
			log.String("op", op.Op.String()),
			log.String("i", fmt.Sprintf("0x%03X", c.I)))
	}

	if err := c.execute(op); err != nil {
		return errors.Wrapf(err, "pc=0x%03X opcode=%04X", pc, word)
	}
	return nil
}

func (c *CPU) setFlag(v byte) { c.V[flagReg] = v }

func (c *CPU) skip() { c.PC += wordSize }

// repeat makes the current instruction run again on the next Step.
func (c *CPU) repeat() { c.PC -= wordSize }

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
