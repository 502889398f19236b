package rom

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/memory"
	"github.com/pkg/errors"
)

// MaxSize is the largest program that fits between the load address and the end of memory.
const MaxSize = memory.Size - memory.ProgramBase

// ErrTooLarge is returned for a program that does not fit in memory.
var ErrTooLarge = errors.New("ROM too large")

// ROM is a program image. CHIP-8 ROMs carry no header, so the name comes
// from the file and the identity from a checksum of the bytes.
type ROM struct {
	Name  string
	Path  string
	Data  []byte
	CRC32 uint32
}

// New checks that data fits in memory and wraps it as a ROM called name.
// Content is not inspected; an empty program is accepted.
func New(name string, data []byte) (*ROM, error) {
	if len(data) > MaxSize {
		return nil, errors.Wrapf(ErrTooLarge, "%d bytes, max %d", len(data), MaxSize)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return &ROM{
		Name:  name,
		Data:  buf,
		CRC32: crc32.ChecksumIEEE(buf),
	}, nil
}

// Load reads a ROM file from disk.
func Load(path string) (*ROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read ROM")
	}
	r, err := New(NameFromPath(path), data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	r.Path = path
	return r, nil
}

// NameFromPath turns "roms/Space Invaders.ch8" into "Space Invaders".
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (r *ROM) Size() int { return len(r.Data) }

func (r *ROM) String() string {
	return fmt.Sprintf("%s (%d bytes, crc32=%08x)", r.Name, len(r.Data), r.CRC32)
}

// IsROMFile reports whether path has one of the usual CHIP-8 program extensions.
func IsROMFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ch8", ".c8", ".rom":
		return true
	}
	return false
}
