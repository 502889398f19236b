package ui

import (
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/hajimehoshi/ebiten/v2"
)

// keypad maps each CHIP-8 key index to the host key in the same position
// of the 4x4 block starting at 1:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keypad = [cpu.NumKeys]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.KeyDigit1,
	0x2: ebiten.KeyDigit2,
	0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.KeyDigit4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// pollKeys samples the keyboard into a keypad snapshot.
func pollKeys() [cpu.NumKeys]bool {
	var keys [cpu.NumKeys]bool
	for i, k := range keypad {
		keys[i] = ebiten.IsKeyPressed(k)
	}
	return keys
}
