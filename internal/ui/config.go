package ui

// Config contains window/input/audio related settings.
type Config struct {
	Title         string // window title
	Scale         int    // integer upscaling factor
	Mute          bool   // start with the buzzer silenced
	ROMsDir       string // directory to browse for ROMs
	ScreenshotDir string // where F12 writes PNG files
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "chip8emu"
	}
	if c.Scale <= 0 {
		c.Scale = 10
	}
	if c.ROMsDir == "" {
		c.ROMsDir = "roms"
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "."
	}
}
