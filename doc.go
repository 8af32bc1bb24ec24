// Package eggmatch is the interaction layer of a shape-matching game: the
// player drags each egg onto the outline of the same shape.
//
// The package has no graphics dependency. A [Scene] holds a retained tree
// of [Node] values that a host paints; the [game] package is the Ebitengine
// host and cmd/eggmatch the command-line entry point.
//
// # Quick start
//
//	w, err := eggmatch.NewWorld(eggmatch.WorldOptions{
//		Board: eggmatch.DefaultBoardSpec(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	// once per frame:
//	w.Router.ProcessPointer(0, mouseX, mouseY, mouseDown)
//	w.Frame(1.0 / 60)
//
// # Two input protocols
//
// A [Controller] accepts gestures from two protocols that share one match
// rule. Mouse input follows the native drag protocol ([Controller.HandleDrag]):
// a start, a stream of over and leave events, an optional drop and a final
// end. Finger input follows the touch protocol ([Controller.HandleTouch]),
// which delivers only raw coordinates; the controller floats the held egg
// under the finger and resolves the target itself. [PointerRouter] turns raw
// per-frame pointer samples into the right protocol.
//
// At most one gesture holds an egg at a time. A second start, from either
// protocol, is ignored until the first ends.
//
// # Deferred writes
//
// Visual writes such as floating an egg under a finger are queued with a
// [FrameScheduler] and run on the next paint ([Scene.BeginPaint]). Each one
// checks that its gesture is still the active one, so a tap that ends before
// the paint never leaves an egg floating. Control flow always reads the
// logical state, never the deferred writes.
//
// # Hit testing
//
// [Scene.HitTest] walks the tree in reverse paint order and skips an
// excluded subtree. The controller always excludes the held egg, so a
// floating egg never hides the outline beneath it.
//
// # Scripts
//
// [LoadScript] parses a JSON list of gestures and expectations and
// [ScriptRunner] replays them through a [PointerRouter] using injected
// input, one sample per frame. The same scripts drive headless
// verification and the windowed game.
//
// # Outcomes
//
// Every pick-up, match, mismatch, completion, cancel and reset is reported
// to an optional [EventSink]; the ecs package forwards them into a donburi
// world.
//
// [game]: https://pkg.go.dev/github.com/phanxgames/eggmatch/game
package eggmatch
