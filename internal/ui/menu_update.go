package ui

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"
)

// main menu rows
const (
	itemResume = iota
	itemReset
	itemLoadROM
	itemPalette
	itemSound
	itemKeys
	itemQuit
	mainItems
)

func (a *App) updateMenu() {
	switch a.menuMode {
	case "rom":
		a.updateRomMenu()
	case "keys":
		a.updateKeysMenu()
	default:
		a.updateMainMenu()
	}
}

func (a *App) updateMainMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < mainItems-1 {
		a.menuIdx++
	}
	if a.menuIdx == itemPalette {
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
			a.toast("Palette: " + a.m.CyclePalette(-1).Name)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
			a.toast("Palette: " + a.m.CyclePalette(+1).Name)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch a.menuIdx {
		case itemResume:
			a.showMenu = false
		case itemReset:
			a.reset()
			a.showMenu = false
		case itemLoadROM:
			a.romList = a.findROMs()
			a.romSel = 0
			a.romOff = 0
			a.menuMode = "rom"
		case itemPalette:
			a.toast("Palette: " + a.m.CyclePalette(+1).Name)
		case itemSound:
			if a.toggleMute() {
				a.toast("Sound off")
			} else {
				a.toast("Sound on")
			}
		case itemKeys:
			a.menuMode = "keys"
			a.keysOff = 0
		case itemQuit:
			a.quit = true
		}
	}
	// Back with Backspace
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
	}
}

func (a *App) updateRomMenu() {
	n := len(a.romList)
	if n == 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			a.menuMode = "main"
		}
		return
	}
	// compute window to maintain selection visibility
	maxRows := a.visibleRows(40)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.romSel > 0 {
		a.romSel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.romSel < n-1 {
		a.romSel++
	}
	if a.romSel < a.romOff {
		a.romOff = a.romSel
	}
	if a.romSel >= a.romOff+maxRows {
		a.romOff = a.romSel - maxRows + 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		path := a.romList[a.romSel]
		if err := a.m.LoadROMFromFile(path); err == nil {
			a.toast("Loaded ROM: " + filepath.Base(path))
			a.applyWindowTitle()
			a.paused = false
			a.showMenu = false
		} else {
			a.toast("ROM load failed: " + err.Error())
		}
		a.menuMode = "main"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
	}
}

func (a *App) updateKeysMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.keysOff > 0 {
		a.keysOff--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		a.keysOff++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
	}
}

// findROMs lists CHIP-8 programs in the configured ROMs directory.
func (a *App) findROMs() []string {
	entries, err := os.ReadDir(a.cfg.ROMsDir)
	if err != nil {
		a.logger.Debug("Cannot read ROMs dir", log.String("dir", a.cfg.ROMsDir), log.String("error", err.Error()))
		return nil
	}
	var out []string
	for _, e := range entries {
		path := filepath.Join(a.cfg.ROMsDir, e.Name())
		if !e.IsDir() && rom.IsROMFile(path) {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}
