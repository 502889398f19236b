package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	glyphWidth = 6 // debug font cell
	lineHeight = 14
)

func (a *App) drawMenu(screen *ebiten.Image) {
	switch a.menuMode {
	case "rom":
		a.drawRomMenu(screen)
	case "keys":
		a.drawKeysMenu(screen)
	default:
		a.drawMainMenu(screen)
	}
}

func (a *App) drawMainMenu(screen *ebiten.Image) {
	sound := "On"
	if a.cfg.Mute {
		sound = "Off"
	}
	lines := []string{
		"Menu:",
		"  Resume",
		"  Reset",
		"  Load ROM",
		fmt.Sprintf("  Palette: %s  (Left/Right)", a.m.Palette().Name),
		"  Sound: " + sound,
		"  Keybindings",
		"  Quit",
	}
	for i, s := range lines {
		prefix := "  "
		if i == a.menuIdx+1 {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, a.truncateText(prefix+s, a.maxCharsForText(10)), 10, 10+i*lineHeight)
	}
}

func (a *App) drawRomMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Select ROM (Enter to load, Backspace/Esc to return)", 10, 10)
	d := a.truncateText("Dir: "+a.cfg.ROMsDir, a.maxCharsForText(10))
	ebitenutil.DebugPrintAt(screen, d, 10, 24)
	if len(a.romList) == 0 {
		ebitenutil.DebugPrintAt(screen, "No ROMs found", 10, 40)
		return
	}
	baseY := 40
	maxRows := a.visibleRows(baseY)
	end := a.romOff + maxRows
	if end > len(a.romList) {
		end = len(a.romList)
	}
	maxChars := a.maxCharsForText(10) - 2 // account for "> " prefix
	for i, p := range a.romList[a.romOff:end] {
		prefix := "  "
		if a.romOff+i == a.romSel {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+a.truncateText(filepath.Base(p), maxChars), 10, baseY+i*lineHeight)
	}
	// scroll indicators
	if a.romOff > 0 {
		ebitenutil.DebugPrintAt(screen, "^", 2, baseY)
	}
	if end < len(a.romList) {
		ebitenutil.DebugPrintAt(screen, "v", 2, baseY+(maxRows-1)*lineHeight)
	}
}

func (a *App) drawKeysMenu(screen *ebiten.Image) {
	rows := []string{
		"Keypad:  1 2 3 C  <-  1 2 3 4",
		"         4 5 6 D  <-  Q W E R",
		"         7 8 9 E  <-  A S D F",
		"         A 0 B F  <-  Z X C V",
		"P: Pause",
		"N: Step frame (when paused)",
		"Backspace: Reset",
		"F12: Screenshot",
		"Esc: Open/Close Menu",
	}
	cursorY := 10
	for _, w := range a.wrapText("Keybindings (Up/Down to scroll, Backspace/Esc to return)", a.maxCharsForText(10)) {
		ebitenutil.DebugPrintAt(screen, w, 10, cursorY)
		cursorY += lineHeight
	}
	baseY := cursorY + 4
	if a.keysOff > len(rows)-1 {
		a.keysOff = len(rows) - 1
	}
	end := a.keysOff + a.visibleRows(baseY)
	if end > len(rows) {
		end = len(rows)
	}
	for i := a.keysOff; i < end; i++ {
		line := a.truncateText(rows[i], a.maxCharsForText(10))
		ebitenutil.DebugPrintAt(screen, line, 10, baseY+(i-a.keysOff)*lineHeight)
	}
}

// visibleRows is how many text lines fit below baseY.
func (a *App) visibleRows(baseY int) int {
	n := (a.curH - baseY) / lineHeight
	if n < 1 {
		n = 1
	}
	return n
}

// maxCharsForText is how many debug-font glyphs fit on a line starting at x.
func (a *App) maxCharsForText(x int) int {
	n := (a.curW - 2*x) / glyphWidth
	if n < 1 {
		n = 1
	}
	return n
}

func (a *App) truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// wrapText splits s on spaces into lines of at most max characters.
func (a *App) wrapText(s string, max int) []string {
	var lines []string
	line := ""
	for _, w := range strings.Fields(s) {
		for len(w) > max {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, w[:max])
			w = w[max:]
		}
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) <= max:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
