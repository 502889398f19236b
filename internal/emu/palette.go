package emu

import (
	"image/color"
	"strings"
)

// Palette is the colour pair used to turn the 1-bit display into RGBA.
type Palette struct {
	Name string
	On   color.RGBA
	Off  color.RGBA
}

var palettes = []Palette{
	{"classic", color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, color.RGBA{0x00, 0x00, 0x00, 0xFF}},
	{"amber", color.RGBA{0xFF, 0xB0, 0x00, 0xFF}, color.RGBA{0x1A, 0x10, 0x00, 0xFF}},
	{"green", color.RGBA{0x33, 0xFF, 0x66, 0xFF}, color.RGBA{0x00, 0x1A, 0x08, 0xFF}},
	{"lcd", color.RGBA{0x0F, 0x38, 0x0F, 0xFF}, color.RGBA{0x9B, 0xBC, 0x0F, 0xFF}},
}

// Palettes returns the built-in palettes in cycling order.
func Palettes() []Palette {
	out := make([]Palette, len(palettes))
	copy(out, palettes)
	return out
}

// paletteIndex looks a palette up by case-insensitive name.
func paletteIndex(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, p := range palettes {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}
