package core

import (
	"time"

	"github.com/spaghettifunk/rndr/engine/containers"
)

const AVG_COUNT int = 30

// FrameStats are the totals of one drawBegin/drawEnd pair.
type FrameStats struct {
	NumPrims uint32
	NumDraws uint32
	Elapsed  time.Duration
}

// DrawMetrics keeps the last AVG_COUNT frames and their averages.
type DrawMetrics struct {
	frames *containers.RingQueue[FrameStats]

	AvgPrims   float64
	AvgDraws   float64
	AvgFrameMS float64

	accumulated time.Duration
	frameCount  int32
	FPS         float64
}

func NewDrawMetrics() *DrawMetrics {
	return &DrawMetrics{
		frames: containers.NewRingQueue[FrameStats](AVG_COUNT),
	}
}

// Update folds one finished frame into the rolling averages.
func (m *DrawMetrics) Update(stats FrameStats) {
	m.frames.Push(stats)

	var prims, draws, ms float64
	m.frames.Each(func(f FrameStats) {
		prims += float64(f.NumPrims)
		draws += float64(f.NumDraws)
		ms += float64(f.Elapsed) / float64(time.Millisecond)
	})
	n := float64(m.frames.Len())
	m.AvgPrims = prims / n
	m.AvgDraws = draws / n
	m.AvgFrameMS = ms / n

	// Calculate frames per second.
	m.accumulated += stats.Elapsed
	m.frameCount++
	if m.accumulated > time.Second {
		m.FPS = float64(m.frameCount)
		m.accumulated -= time.Second
		m.frameCount = 0
	}
}

// Last returns the most recent frame, or zero stats before the first frame.
func (m *DrawMetrics) Last() FrameStats {
	var last FrameStats
	m.frames.Each(func(f FrameStats) { last = f })
	return last
}

func (m *DrawMetrics) Frames() int {
	return m.frames.Len()
}
