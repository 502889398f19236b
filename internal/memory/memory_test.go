package memory

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func TestMemory_LoadFont(t *testing.T) {
	m := New()
	m.LoadFont()

	assert.Equal(t, byte(0x00), m.Read(0x000))
	assert.Equal(t, byte(0xF0), m.Read(0x050))
	assert.Equal(t, byte(0x90), m.Read(0x051))
	assert.Equal(t, byte(0x80), m.Read(0x09F))
	assert.Equal(t, byte(0x00), m.Read(0x0A0))

	// idempotent
	m.LoadFont()
	assert.Equal(t, byte(0xF0), m.Read(0x050))
}

func TestMemory_LoadProgram(t *testing.T) {
	m := New()
	assert.NoError(t, m.LoadProgram([]byte{0x12, 0x34, 0x56}))

	assert.Equal(t, byte(0x12), m.Read(ProgramBase))
	assert.Equal(t, byte(0x56), m.Read(ProgramBase+2))
	assert.Equal(t, 3, m.ProgramLen())
	assert.Equal(t, uint16(0x1234), m.ReadInstruction(ProgramBase))
}

func TestMemory_LoadProgramCapacity(t *testing.T) {
	m := New()

	// exactly fills memory
	full := make([]byte, Size-ProgramBase)
	full[len(full)-1] = 0xAB
	assert.NoError(t, m.LoadProgram(full))
	assert.Equal(t, byte(0xAB), m.Read(Size-1))

	err := m.LoadProgram(make([]byte, Size-ProgramBase+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
}

func TestMemory_ReadWriteWraps(t *testing.T) {
	m := New()
	m.Write(0x300, 0x42)
	assert.Equal(t, byte(0x42), m.Read(0x300))

	m.Write(0x1005, 0x99)
	assert.Equal(t, byte(0x99), m.Read(0x005))

	m.Write(0xFFF, 0xAA)
	m.Write(0x000, 0xBB)
	assert.Equal(t, uint16(0xAABB), m.ReadInstruction(0xFFF))
}

func TestFontAddress(t *testing.T) {
	assert.Equal(t, uint16(0x050), FontAddress(0x0))
	assert.Equal(t, uint16(FontBase+5*10), FontAddress(0xA))
	assert.Equal(t, uint16(0x09B), FontAddress(0xF))
	// only the low nibble counts
	assert.Equal(t, FontAddress(0x3), FontAddress(0x73))
}

func TestMemory_Reset(t *testing.T) {
	m := New()
	m.LoadFont()
	assert.NoError(t, m.LoadProgram([]byte{1, 2}))
	m.Reset()
	assert.Equal(t, byte(0), m.Read(FontBase))
	assert.Equal(t, byte(0), m.Read(ProgramBase))
	assert.Equal(t, 0, m.ProgramLen())
}
