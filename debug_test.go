package eggmatch

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedScene(level zapcore.Level) (*Scene, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	s := NewScene()
	s.SetLogger(zap.New(core))
	return s, logs
}

func TestDebugLogPaintStats(t *testing.T) {
	s, logs := observedScene(zapcore.DebugLevel)
	s.SetDebugMode(true)

	s.Frames().RequestFrame(func() {})
	s.BeginPaint()

	entries := logs.FilterMessage("paint").All()
	if len(entries) != 1 {
		t.Fatalf("paint entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["frame_callbacks"]; got != int64(1) {
		t.Errorf("frame_callbacks = %v, want 1", got)
	}
}

func TestDebugLogQuietWhenIdle(t *testing.T) {
	s, logs := observedScene(zapcore.DebugLevel)
	s.SetDebugMode(true)

	s.BeginPaint()

	if n := logs.FilterMessage("paint").Len(); n != 0 {
		t.Errorf("paint entries = %d, want 0 for an idle paint", n)
	}
}

func TestDebugLogDisabled(t *testing.T) {
	s, logs := observedScene(zapcore.DebugLevel)

	s.Frames().RequestFrame(func() {})
	s.BeginPaint()

	if logs.Len() != 0 {
		t.Errorf("entries = %d, want 0 with debug mode off", logs.Len())
	}
}

func TestDebugCheckTreeDepth(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	root := NewContainer("root")
	n := root
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		c := NewContainer("deep")
		n.AddChild(c)
		n = c
	}

	debugCheckTree(zap.New(core), root, 1)

	if logs.FilterMessage("tree depth exceeds threshold").Len() != 1 {
		t.Errorf("expected one depth warning, got %v", logs.All())
	}
}

func TestDebugCheckTreeWidth(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	root := NewContainer("root")
	for i := 0; i <= debugMaxChildCount; i++ {
		root.AddChild(NewContainer("leaf"))
	}

	debugCheckTree(zap.New(core), root, 1)

	if logs.FilterMessage("node has too many children").Len() != 1 {
		t.Errorf("expected one width warning, got %d entries", logs.Len())
	}
}

func TestDebugCheckTreeBoardIsQuiet(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewScene()
	if _, err := NewBoard(s, DefaultBoardSpec()); err != nil {
		t.Fatal(err)
	}

	debugCheckTree(zap.New(core), s.Root(), 1)

	if logs.Len() != 0 {
		t.Errorf("default board produced warnings: %v", logs.All())
	}
}
