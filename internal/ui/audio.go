package ui

import (
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/beeper"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// playerBuffer keeps the tone onset close to the frame that set the sound timer.
const playerBuffer = 40 * time.Millisecond

// initAudio starts a player that renders the buzzer while the sound timer runs.
// The player reads on its own goroutine, so it only sees the atomic beeping flag.
func (a *App) initAudio() {
	a.audioCtx = audio.NewContext(beeper.DefaultSampleRate)
	tone := beeper.New(beeper.DefaultSampleRate, beeper.DefaultTone, beeper.DefaultVolume)
	a.audioSrc = beeper.NewStream(tone, a.beeping.Load)
	a.audioSrc.SetMuted(a.cfg.Mute)

	p, err := a.audioCtx.NewPlayer(a.audioSrc)
	if err != nil {
		a.logger.Error("Audio unavailable", err)
		return
	}
	p.SetBufferSize(playerBuffer)
	p.Play()
	a.audioPlayer = p
}

// toggleMute flips the mute state and reports whether sound is now off.
func (a *App) toggleMute() bool {
	a.cfg.Mute = !a.cfg.Mute
	if a.audioSrc != nil {
		a.audioSrc.SetMuted(a.cfg.Mute)
	}
	return a.cfg.Mute
}
