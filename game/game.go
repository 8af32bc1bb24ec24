package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/phanxgames/eggmatch"
)

// ErrScriptFailed is returned by Run when an attached script's expectation
// fails. The game quits as soon as the failure is seen.
var ErrScriptFailed = errors.New("game: script failed")

// Options configures a Game.
type Options struct {
	World eggmatch.WorldOptions
	// Script, when set, is stepped once per tick before input is read.
	Script *eggmatch.ScriptRunner
	// ExitOnScriptDone ends the game when the script has finished.
	ExitOnScriptDone bool
	ClearColor       eggmatch.Color
	Logger           *zap.Logger
}

// Game implements ebiten.Game for one board.
type Game struct {
	world  *eggmatch.World
	script *eggmatch.ScriptRunner
	exit   bool
	clear  eggmatch.Color
	log    *zap.Logger

	width, height int

	touches touchSlots
	faces   map[float64]*text.GoTextFace
	source  *text.GoTextFaceSource
	cursor  ebiten.CursorShapeType
}

// New builds the world and loads the font. It does not open a window.
func New(opts Options) (*Game, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	wopts := opts.World
	if wopts.Controller.Logger == nil {
		wopts.Controller.Logger = log
	}
	w, err := eggmatch.NewWorld(wopts)
	if err != nil {
		return nil, fmt.Errorf("game: build world: %w", err)
	}
	src, err := loadFontSource()
	if err != nil {
		return nil, err
	}
	bg := opts.ClearColor
	if bg == (eggmatch.Color{}) {
		bg = defaultClearColor
	}
	spec := w.Board.Spec()
	return &Game{
		world:  w,
		script: opts.Script,
		exit:   opts.ExitOnScriptDone,
		clear:  bg,
		log:    log.Named("game"),
		width:  int(spec.Width),
		height: int(spec.Height),
		faces:  make(map[float64]*text.GoTextFace),
		source: src,
		cursor: ebiten.CursorShapeDefault,
	}, nil
}

// World returns the world the game drives.
func (g *Game) World() *eggmatch.World {
	return g.world
}

// Update implements ebiten.Game. Scripted input takes precedence over real
// input for the frames it occupies.
func (g *Game) Update() error {
	if g.script != nil {
		g.script.Step(g.world.Router)
		if g.script.Done() {
			if err := g.script.Err(); err != nil {
				g.log.Error("script failed", zap.Error(err))
				return fmt.Errorf("%w: %w", ErrScriptFailed, err)
			}
			if g.exit {
				g.log.Info("script finished")
				return ebiten.Termination
			}
		}
	}

	if !g.world.Router.ProcessInjected() {
		g.pollInput()
	}

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	g.world.Scene.Update(1 / float64(tps))
	return nil
}

// Draw implements ebiten.Game. Deferred writes land here, on the paint that
// follows the event that requested them.
func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Scene.BeginPaint()
	screen.Fill(toRGBA(g.clear))
	g.drawScene(screen)
	g.drawGhost(screen)
	g.applyCursor()
}

// Layout implements ebiten.Game with a fixed logical screen the size of the
// board.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
