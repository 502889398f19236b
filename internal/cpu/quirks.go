package cpu

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownQuirks is returned by QuirksByName for a name with no preset.
var ErrUnknownQuirks = errors.New("unknown quirks preset")

// ShiftMode selects the source register of 8XY6 and 8XYE.
type ShiftMode uint8

const (
	ShiftFromVY  ShiftMode = iota // VX = VY, then shift VX
	ShiftInPlace                  // shift VX, VY is ignored
)

// JumpOffsetMode selects the register added to the target of BNNN.
type JumpOffsetMode uint8

const (
	JumpOffsetV0 JumpOffsetMode = iota // NNN + V0
	JumpOffsetVX                       // NNN + VX, X being the second nibble
)

// LoadStoreMode selects what FX55 and FX65 do to the index register.
type LoadStoreMode uint8

const (
	LoadStoreKeepIndex      LoadStoreMode = iota // I is left unchanged
	LoadStoreIncrementIndex                      // I ends at I+X+1
)

// Quirks pins down the instructions whose behaviour differs between
// historical interpreters. ROMs are written against one of them, so the
// choice is made once when the CPU is built.
type Quirks struct {
	Shift      ShiftMode
	JumpOffset JumpOffsetMode
	LoadStore  LoadStoreMode
	// IndexOverflowFlag sets VF to 1 when FX1E carries I past 0x0FFF.
	// Only a few interpreters did this.
	IndexOverflowFlag bool
}

// DefaultQuirks is the behaviour used when nothing else is requested.
func DefaultQuirks() Quirks {
	return Quirks{
		Shift:             ShiftFromVY,
		JumpOffset:        JumpOffsetV0,
		LoadStore:         LoadStoreKeepIndex,
		IndexOverflowFlag: true,
	}
}

// CosmacQuirks matches the original COSMAC VIP interpreter.
func CosmacQuirks() Quirks {
	return Quirks{
		Shift:      ShiftFromVY,
		JumpOffset: JumpOffsetV0,
		LoadStore:  LoadStoreIncrementIndex,
	}
}

// SChipQuirks matches CHIP-48 / SUPER-CHIP on the HP48.
func SChipQuirks() Quirks {
	return Quirks{
		Shift:      ShiftInPlace,
		JumpOffset: JumpOffsetVX,
		LoadStore:  LoadStoreKeepIndex,
	}
}

var quirkPresets = map[string]func() Quirks{
	"default": DefaultQuirks,
	"cosmac":  CosmacQuirks,
	"schip":   SChipQuirks,
}

// QuirksByName returns a preset by its case-insensitive name.
func QuirksByName(name string) (Quirks, error) {
	f, ok := quirkPresets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Quirks{}, errors.Wrapf(ErrUnknownQuirks, "%q (want one of %s)", name, strings.Join(QuirkPresetNames(), ", "))
	}
	return f(), nil
}

// QuirkPresetNames lists the preset names in sorted order.
func QuirkPresetNames() []string {
	names := make([]string, 0, len(quirkPresets))
	for name := range quirkPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
