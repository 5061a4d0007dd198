package core

import "github.com/lettier/3d-game-shaders-for-beginners/engine/containers"

const AVG_COUNT = 30

// Metrics keeps a rolling frame time average over the last AVG_COUNT frames
// and the frames rendered in the last second.
type Metrics struct {
	msTimes            *containers.RingQueue[float64]
	msSum              float64
	msAVG              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewMetrics() *Metrics {
	return &Metrics{
		msTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

func (m *Metrics) Update(frameElapsedTime float64) {
	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	if dropped, ok := m.msTimes.Push(frameMS); ok {
		m.msSum -= dropped
	}
	m.msSum += frameMS
	m.msAVG = m.msSum / float64(m.msTimes.Len())

	// Calculate frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	m.frames++
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

func (m *Metrics) FrameTime() float64 {
	return m.msAVG
}

func (m *Metrics) Frame() (float64, float64) {
	return m.fps, m.msAVG
}
