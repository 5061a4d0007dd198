package audio

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

type nullSound struct {
	name     string
	playing  bool
	loop     bool
	position math.Vec3
}

func (s *nullSound) Name() string { return s.name }
func (s *nullSound) Play() { s.playing = true }
func (s *nullSound) Stop() { s.playing = false }
func (s *nullSound) IsPlaying() bool { return s.playing }
func (s *nullSound) SetLoop(loop bool) { s.loop = loop }
func (s *nullSound) SetMinDistance(float32) {}
func (s *nullSound) Set3DAttributes(p, _ math.Vec3) { s.position = p }

// NullDevice keeps sound state without producing output. It backs runs with
// audio disabled.
type NullDevice struct {
	Listener Listener
	Updates  int
}

func (d *NullDevice) Initialize() error { return nil }

func (d *NullDevice) Load(name, path string) (Sound, error) {
	return &nullSound{name: name}, nil
}

func (d *NullDevice) Update(listener Listener) {
	d.Listener = listener
	d.Updates++
}

func (d *NullDevice) Shutdown() error { return nil }
