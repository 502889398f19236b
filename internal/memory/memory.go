package memory

import "github.com/pkg/errors"

const (
	Size        = 0x1000 // 4 KiB address space
	ProgramBase = 0x200  // programs are loaded and start executing here
	FontBase    = 0x050  // first byte of the built-in hex font
	GlyphHeight = 5      // bytes per font glyph

	addrMask = Size - 1
)

// ErrProgramTooLarge is returned when a program does not fit between
// ProgramBase and the end of memory.
var ErrProgramTooLarge = errors.New("program exceeds memory capacity")

// font holds the 16 hex digit glyphs, 4 pixels wide and 5 rows high.
var font = [16 * GlyphHeight]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat byte-addressable store shared by the font and the program.
// Addresses wrap at 4 KiB.
type Memory struct {
	data    [Size]byte
	program int // length of the loaded program
}

func New() *Memory {
	return &Memory{}
}

// LoadFont writes the glyph table at FontBase. Calling it again is harmless.
func (m *Memory) LoadFont() {
	copy(m.data[FontBase:], font[:])
}

// LoadProgram copies program verbatim to ProgramBase.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > Size-ProgramBase {
		return errors.Wrapf(ErrProgramTooLarge, "%d bytes, room for %d", len(program), Size-ProgramBase)
	}
	copy(m.data[ProgramBase:], program)
	m.program = len(program)
	return nil
}

// ProgramLen returns the size of the last loaded program.
func (m *Memory) ProgramLen() int { return m.program }

// Reset zeroes all of memory, font included.
func (m *Memory) Reset() {
	m.data = [Size]byte{}
	m.program = 0
}

// ReadInstruction returns the big-endian word at addr and addr+1.
func (m *Memory) ReadInstruction(addr uint16) uint16 {
	hi := uint16(m.Read(addr))
	lo := uint16(m.Read(addr + 1))
	return hi<<8 | lo
}

func (m *Memory) Read(addr uint16) byte        { return m.data[addr&addrMask] }
func (m *Memory) Write(addr uint16, value byte) { m.data[addr&addrMask] = value }

// FontAddress returns the address of the glyph for the low nibble of digit.
func FontAddress(digit byte) uint16 {
	return FontBase + uint16(digit&0x0F)*GlyphHeight
}
