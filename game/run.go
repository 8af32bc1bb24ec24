package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title     string
	Width     int // window width; defaults to the board width
	Height    int // window height; defaults to the board height
	TPS       int // ticks per second; defaults to ebiten.DefaultTPS
	Resizable bool
}

// Run opens a window and runs g until the window closes or an attached
// script finishes with ExitOnScriptDone set. A normal exit returns nil.
func Run(g *Game, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = g.width
	}
	if h <= 0 {
		h = g.height
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g.log.Info("window opening")
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
