package emu

import (
	"hash/crc32"
	"image"
	"image/png"
	"os"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/pkg/errors"
)

// Image returns the current frame as a new RGBA image.
func (m *Machine) Image() *image.RGBA {
	fb := m.Framebuffer()
	img := &image.RGBA{
		Pix:    make([]byte, len(fb)),
		Stride: 4 * display.Width,
		Rect:   image.Rect(0, 0, display.Width, display.Height),
	}
	copy(img.Pix, fb)
	return img
}

// FrameCRC32 returns the IEEE CRC32 of the RGBA framebuffer.
func (m *Machine) FrameCRC32() uint32 {
	return crc32.ChecksumIEEE(m.Framebuffer())
}

// SavePNG writes the current frame to path.
func (m *Machine) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := png.Encode(f, m.Image()); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "encoding png")
	}
	return f.Close()
}
