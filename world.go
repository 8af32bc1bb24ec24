package eggmatch

import (
	"context"

	"go.uber.org/zap"
)

// WorldOptions configures NewWorld.
type WorldOptions struct {
	Board      BoardSpec
	Controller Options
	// DragDeadZone overrides DefaultDragDeadZone when positive.
	DragDeadZone float64
	Debug        bool
}

// World wires a scene, its board, the controller and the pointer router
// together. Hosts drive it one frame at a time: feed pointer samples to
// Router, then call Frame.
type World struct {
	Scene      *Scene
	Board      *Board
	Controller *Controller
	Router     *PointerRouter
}

// NewWorld builds a ready-to-play board.
func NewWorld(opts WorldOptions) (*World, error) {
	log := opts.Controller.Logger
	if log == nil {
		log = zap.NewNop()
	}

	scene := NewScene()
	scene.SetLogger(log.Named("scene"))
	scene.SetDebugMode(opts.Debug)

	board, err := NewBoard(scene, opts.Board)
	if err != nil {
		return nil, err
	}

	copts := opts.Controller
	copts.Logger = log.Named("controller")
	ctrl := NewController(board, copts)

	router := NewPointerRouter(ctrl, log.Named("router"))
	if opts.DragDeadZone > 0 {
		router.SetDragDeadZone(opts.DragDeadZone)
	}

	log.Debug("world ready",
		zap.Int("items", len(board.Items())),
		zap.Int("targets", len(board.Targets())),
	)
	return &World{Scene: scene, Board: board, Controller: ctrl, Router: router}, nil
}

// Frame advances tweens by dt seconds and runs the work a paint would:
// deferred writes are flushed and the tree is refreshed.
func (w *World) Frame(dt float64) {
	w.Scene.Update(dt)
	w.Scene.BeginPaint()
}

// RunScript drives runner against the world headlessly at 60 frames per
// second.
func (w *World) RunScript(ctx context.Context, runner *ScriptRunner, maxFrames int) error {
	return runner.Run(ctx, w.Router, 1.0/60, maxFrames)
}
