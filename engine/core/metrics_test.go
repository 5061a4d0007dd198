package core

import (
	"math"
	"testing"
)

func TestMetricsRollingAverage(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < AVG_COUNT; i++ {
		m.Update(0.010)
	}
	if got := m.FrameTime(); math.Abs(got-10) > 1e-9 {
		t.Fatalf("FrameTime() = %f, want 10", got)
	}
	// a full window of slower frames replaces the fast ones
	for i := 0; i < AVG_COUNT; i++ {
		m.Update(0.020)
	}
	if got := m.FrameTime(); math.Abs(got-20) > 1e-6 {
		t.Errorf("FrameTime() = %f, want 20", got)
	}
}

func TestMetricsFPS(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 61; i++ {
		m.Update(1.0 / 60.0)
	}
	if fps := m.FPS(); fps < 59 || fps > 61 {
		t.Errorf("FPS() = %f, want about 60", fps)
	}
}
