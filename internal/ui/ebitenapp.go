package ui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/beeper"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/logging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

const toastDuration = 2 * time.Second

type App struct {
	cfg    Config
	m      *emu.Machine
	logger *log.Logger

	tex     *ebiten.Image
	overlay *ebiten.Image
	paused  bool
	quit    bool
	curW    int
	curH    int

	// overlay/menu
	showMenu bool
	menuMode string // "main", "rom" or "keys"
	menuIdx  int
	romList  []string
	romSel   int
	romOff   int
	keysOff  int

	toastMsg   string
	toastUntil time.Time

	audioCtx    *audio.Context
	audioPlayer *audio.Player
	audioSrc    *beeper.Stream
	beeping     atomic.Bool
}

func NewApp(cfg Config, m *emu.Machine, logger *log.Logger) *App {
	cfg.Defaults()
	if logger == nil {
		logger = logging.Discard()
	}
	a := &App{
		cfg:      cfg,
		m:        m,
		logger:   logger,
		menuMode: "main",
		curW:     display.Width * cfg.Scale,
		curH:     display.Height * cfg.Scale,
	}
	a.applyWindowTitle()
	ebiten.SetWindowSize(a.curW, a.curH)
	ebiten.SetTPS(emu.FrameRate)
	a.initAudio()
	return a
}

func (a *App) Run() error {
	err := ebiten.RunGame(a)
	if a.audioPlayer != nil {
		_ = a.audioPlayer.Close()
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return errors.Wrap(err, "running game loop")
}

func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}

	// Toggle menu (Escape)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && (!a.showMenu || a.menuMode == "main") {
		a.showMenu = !a.showMenu
		a.menuMode = "main"
		a.menuIdx = 0
		return nil
	}
	if a.showMenu {
		a.updateMenu()
		a.beeping.Store(false)
		return nil
	}

	a.m.SetKeys(pollKeys())

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.reset()
	}
	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if path, err := a.saveScreenshot(); err == nil {
			a.toast("Saved " + filepath.Base(path))
		} else {
			a.toast("Screenshot failed: " + err.Error())
		}
	}

	if a.m.Err() == nil {
		switch {
		case !a.paused:
			_ = a.m.StepFrame()
		case inpututil.IsKeyJustPressed(ebiten.KeyN): // frame-step when paused
			_ = a.m.StepFrame()
		}
	}
	a.beeping.Store(!a.paused && a.m.Err() == nil && a.m.SoundActive())
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(display.Width, display.Height)
	}
	a.tex.WritePixels(a.m.Framebuffer())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.cfg.Scale), float64(a.cfg.Scale))
	screen.DrawImage(a.tex, op)

	if err := a.m.Err(); err != nil {
		a.dim(screen)
		lines := []string{"Emulation halted:"}
		lines = append(lines, a.wrapText(err.Error(), a.maxCharsForText(10))...)
		lines = append(lines, "Backspace: reset  Esc: menu")
		for i, s := range lines {
			ebitenutil.DebugPrintAt(screen, s, 10, 10+i*14)
		}
	}

	if a.showMenu {
		a.dim(screen)
		a.drawMenu(screen)
	} else if a.paused && a.m.Err() == nil {
		ebitenutil.DebugPrintAt(screen, "PAUSED (P: resume, N: step)", 10, a.curH-20)
	}

	if a.toastMsg != "" && time.Now().Before(a.toastUntil) {
		msg := a.truncateText(a.toastMsg, a.maxCharsForText(10))
		ebitenutil.DebugPrintAt(screen, msg, 10, a.curH-36)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return a.curW, a.curH }

// dim darkens the game view behind text.
func (a *App) dim(screen *ebiten.Image) {
	if a.overlay == nil {
		a.overlay = ebiten.NewImage(a.curW, a.curH)
		a.overlay.Fill(color.RGBA{0, 0, 0, 160})
	}
	screen.DrawImage(a.overlay, nil)
}

func (a *App) reset() {
	if err := a.m.Reset(); err != nil {
		a.toast("Reset failed: " + err.Error())
		return
	}
	a.paused = false
	a.toast("Reset " + a.m.ROMName())
}

func (a *App) applyWindowTitle() {
	title := a.cfg.Title
	if name := a.m.ROMName(); name != "" {
		title = a.cfg.Title + " - [" + name + "]"
	}
	ebiten.SetWindowTitle(title)
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(toastDuration)
	a.logger.Debug("UI notice", log.String("msg", msg))
}

func (a *App) saveScreenshot() (string, error) {
	ts := time.Now().Format("20060102_150405")
	name := filepath.Join(a.cfg.ScreenshotDir, fmt.Sprintf("screenshot_%s.png", ts))
	return name, a.m.SavePNG(name)
}
