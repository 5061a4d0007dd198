package audio

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

type raylibSound struct {
	name        string
	music       rl.Music
	playing     bool
	minDistance float32
	position    math.Vec3
	velocity    math.Vec3
}

func (s *raylibSound) Name() string { return s.name }

func (s *raylibSound) Play() {
	if s.playing {
		return
	}
	rl.PlayMusicStream(s.music)
	s.playing = true
}

func (s *raylibSound) Stop() {
	if !s.playing {
		return
	}
	rl.StopMusicStream(s.music)
	s.playing = false
}

func (s *raylibSound) IsPlaying() bool { return s.playing }

func (s *raylibSound) SetLoop(loop bool) {
	s.music.Looping = loop
}

func (s *raylibSound) SetMinDistance(distance float32) {
	s.minDistance = distance
}

func (s *raylibSound) Set3DAttributes(position, velocity math.Vec3) {
	s.position = position
	s.velocity = velocity
}

/**
 * @brief Streams sounds through raylib. Distance attenuation and stereo
 * pan are computed against the listener on every Update.
 */
type RaylibDevice struct {
	sounds []*raylibSound
	ready  bool
}

func NewRaylibDevice() *RaylibDevice {
	return &RaylibDevice{}
}

func (d *RaylibDevice) Initialize() error {
	if !rl.IsAudioDeviceReady() {
		rl.InitAudioDevice()
	}
	if !rl.IsAudioDeviceReady() {
		return fmt.Errorf("audio device is not ready")
	}
	d.ready = true
	core.LogDebug("audio device ready")
	return nil
}

func (d *RaylibDevice) Load(name, path string) (Sound, error) {
	if !d.ready {
		return nil, fmt.Errorf("audio device is not initialized")
	}
	music := rl.LoadMusicStream(path)
	if music.FrameCount == 0 {
		return nil, fmt.Errorf("failed to load sound `%s` from `%s`", name, path)
	}
	s := &raylibSound{name: name, music: music}
	d.sounds = append(d.sounds, s)
	return s, nil
}

func (d *RaylibDevice) Update(listener Listener) {
	for _, s := range d.sounds {
		if !s.playing {
			continue
		}
		distance := s.position.Sub(listener.Position).Len()
		rl.SetMusicVolume(s.music, Attenuation(distance, s.minDistance))
		rl.SetMusicPan(s.music, 0.5+0.5*Pan(listener, s.position))
		rl.UpdateMusicStream(s.music)
	}
}

func (d *RaylibDevice) Shutdown() error {
	if !d.ready {
		return nil
	}
	for _, s := range d.sounds {
		s.Stop()
		rl.UnloadMusicStream(s.music)
	}
	d.sounds = nil
	rl.CloseAudioDevice()
	d.ready = false
	return nil
}
