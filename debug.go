package eggmatch

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-paint metrics. Only populated when Scene.debug is true.
type debugStats struct {
	frameCallbacks int
	tweens         int
	refreshTime    time.Duration
}

// debugLog reports paint stats and tree shape warnings.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	if stats.frameCallbacks > 0 || stats.tweens > 0 {
		s.log.Debug("paint",
			zap.Int("frame_callbacks", stats.frameCallbacks),
			zap.Int("tweens", stats.tweens),
			zap.Duration("refresh", stats.refreshTime),
		)
	}
	debugCheckTree(s.log, s.root, 1)
}

const (
	debugMaxTreeDepth  = 16
	debugMaxChildCount = 256
)

// debugCheckTree warns when the board tree grows deeper or wider than any
// board layout needs, which usually means nodes are re-parented in a loop.
func debugCheckTree(log *zap.Logger, n *Node, depth int) {
	if depth > debugMaxTreeDepth {
		log.Warn("tree depth exceeds threshold",
			zap.String("node", n.Name), zap.Int("depth", depth), zap.Int("threshold", debugMaxTreeDepth))
		return
	}
	if len(n.children) > debugMaxChildCount {
		log.Warn("node has too many children",
			zap.String("node", n.Name), zap.Int("children", len(n.children)), zap.Int("threshold", debugMaxChildCount))
	}
	for _, c := range n.children {
		debugCheckTree(log, c, depth+1)
	}
}
