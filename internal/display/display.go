package display

import "image/color"

const (
	Width  = 64
	Height = 32

	spriteWidth = 8
)

// Screen is the 64x32 monochrome frame. A cell is lit when non-zero.
type Screen [Height][Width]byte

// Clear turns every pixel off.
func (s *Screen) Clear() {
	*s = Screen{}
}

// Lit reports whether the pixel at x, y is on. Out of range coordinates are never lit.
func (s *Screen) Lit(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return s[y][x] != 0
}

// DrawSprite XORs an 8-pixel wide sprite onto the screen, one byte per row,
// most significant bit leftmost. The anchor wraps around the screen but the
// sprite body is clipped at the right and bottom edges. It returns true if
// any lit pixel was turned off.
func (s *Screen) DrawSprite(x, y byte, rows []byte) bool {
	x0 := int(x) % Width
	py := int(y) % Height

	collision := false
	for _, row := range rows {
		if py >= Height {
			break
		}
		for bit := 0; bit < spriteWidth; bit++ {
			px := x0 + bit
			if px >= Width {
				break
			}
			if row&(0x80>>bit) == 0 {
				continue
			}
			if s[py][px] != 0 {
				s[py][px] = 0
				collision = true
			} else {
				s[py][px] = 1
			}
		}
		py++
	}
	return collision
}

// Rasterize writes the screen into dst as RGBA, 4 bytes per pixel, using on
// for lit pixels and off for the rest. dst must hold Width*Height*4 bytes.
func (s *Screen) Rasterize(dst []byte, on, off color.RGBA) {
	i := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := off
			if s[y][x] != 0 {
				c = on
			}
			dst[i+0], dst[i+1], dst[i+2], dst[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
}

// LitCount returns how many pixels are on.
func (s *Screen) LitCount() int {
	n := 0
	for y := range s {
		for x := range s[y] {
			if s[y][x] != 0 {
				n++
			}
		}
	}
	return n
}
