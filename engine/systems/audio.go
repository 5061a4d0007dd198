package systems

import (
	"fmt"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/assets"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/audio"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

type AudioSystemConfig struct {
	/** @brief When false sounds never start, even when asked to. */
	Enabled bool
}

/**
 * @brief Owns the named sounds of the scene and forwards the listener to
 * the audio device once per frame.
 */
type AudioSystem struct {
	config       *AudioSystemConfig
	device       audio.Device
	assetManager *assets.AssetManager
	sounds       map[string]audio.Sound
	order        []string
}

func NewAudioSystem(config *AudioSystemConfig, device audio.Device, am *assets.AssetManager) (*AudioSystem, error) {
	if device == nil {
		err := fmt.Errorf("NewAudioSystem - an audio device is required")
		core.LogError(err.Error())
		return nil, err
	}
	return &AudioSystem{
		config:       config,
		device:       device,
		assetManager: am,
		sounds:       make(map[string]audio.Sound),
	}, nil
}

func (as *AudioSystem) Initialize() error {
	return as.device.Initialize()
}

func (as *AudioSystem) Shutdown() error {
	as.StopAll()
	return as.device.Shutdown()
}

// Load registers a sound asset under name, positioned at position.
func (as *AudioSystem) Load(name, asset string, minDistance float32, loop bool, position math.Vec3) (audio.Sound, error) {
	if _, ok := as.sounds[name]; ok {
		return nil, fmt.Errorf("sound `%s` already loaded", name)
	}
	res, err := as.assetManager.LoadAsset(asset, metadata.ResourceTypeSound, nil)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	s, err := as.device.Load(name, res.FullPath)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	_ = as.assetManager.UnloadAsset(res)

	s.SetLoop(loop)
	s.SetMinDistance(minDistance)
	s.Set3DAttributes(position, math.NewVec3Zero())
	as.sounds[name] = s
	as.order = append(as.order, name)
	return s, nil
}

func (as *AudioSystem) Sound(name string) (audio.Sound, bool) {
	s, ok := as.sounds[name]
	return s, ok
}

func (as *AudioSystem) Enabled() bool {
	return as.config.Enabled
}

// SetEnabled turns sound on or off, stopping everything when turned off.
func (as *AudioSystem) SetEnabled(enabled bool) {
	as.config.Enabled = enabled
	if !enabled {
		as.StopAll()
	}
}

// PlayAll starts every sound, unless sound is disabled.
func (as *AudioSystem) PlayAll() {
	if !as.config.Enabled {
		return
	}
	for _, name := range as.order {
		as.sounds[name].Play()
	}
}

func (as *AudioSystem) StopAll() {
	for _, name := range as.order {
		as.sounds[name].Stop()
	}
}

// Update moves the listener. Called exactly once per frame.
func (as *AudioSystem) Update(listener audio.Listener) {
	as.device.Update(listener)
}
