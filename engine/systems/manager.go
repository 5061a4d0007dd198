package systems

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/assets"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/audio"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/components"
)

type SystemManagerConfig struct {
	/** @brief The main lens shared by every scene-fed target. */
	Lens *components.Lens
	/** @brief The base sort of the render graph. */
	BaseSort     int
	AudioEnabled bool
	AudioDevice  audio.Device
	FontName     string
	Status       *StatusTextConfig
	/** @brief Replaces the asset backed shader system when set. */
	Shaders ShaderProvider
}

type SystemManager struct {
	CameraSystem      *CameraSystem
	ShaderSystem      *ShaderSystem
	TextureSystem     *TextureSystem
	TargetFactory     *TargetFactory
	RenderGraphSystem *RenderGraphSystem
	FontSystem        *FontSystem
	AudioSystem       *AudioSystem
	StatusText        *StatusText
}

func NewSystemManager(config *SystemManagerConfig, am *assets.AssetManager, r *renderer.Renderer) (*SystemManager, error) {
	host := r.Host()

	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 100,
		Lens:           config.Lens,
	})
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: 256,
	}, am, host)
	if err != nil {
		return nil, err
	}

	var shaders ShaderProvider = config.Shaders
	var ssys *ShaderSystem
	if shaders == nil {
		ssys, err = NewShaderSystem(&ShaderSystemConfig{
			MaxShaderCount: 256,
		}, am, host)
		if err != nil {
			return nil, err
		}
		shaders = ssys
	}

	tf := NewTargetFactory(host, cs)
	rgs, err := NewRenderGraphSystem(&RenderGraphConfig{
		BaseSort: config.BaseSort,
	}, host, shaders, tf)
	if err != nil {
		return nil, err
	}

	fs, err := NewFontSystem(&FontSystemConfig{
		DefaultFont: config.FontName,
	}, am)
	if err != nil {
		return nil, err
	}

	device := config.AudioDevice
	if device == nil {
		device = &audio.NullDevice{}
	}
	as, err := NewAudioSystem(&AudioSystemConfig{
		Enabled: config.AudioEnabled,
	}, device, am)
	if err != nil {
		return nil, err
	}

	statusConfig := config.Status
	if statusConfig == nil {
		statusConfig = DefaultStatusTextConfig()
	}

	return &SystemManager{
		CameraSystem:      cs,
		ShaderSystem:      ssys,
		TextureSystem:     ts,
		TargetFactory:     tf,
		RenderGraphSystem: rgs,
		FontSystem:        fs,
		AudioSystem:       as,
		StatusText:        NewStatusText(statusConfig, fs),
	}, nil
}

func (sm *SystemManager) Initialize() error {
	if err := sm.FontSystem.Initialize(); err != nil {
		return err
	}
	if err := sm.AudioSystem.Initialize(); err != nil {
		// the demo runs silent without an audio device
		core.LogWarn("audio disabled: %s", err)
		sm.AudioSystem.SetEnabled(false)
	}
	return nil
}

func (sm *SystemManager) OnResize(width, height uint32) {
	sm.CameraSystem.OnResize(width, height)
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.AudioSystem.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if err := sm.FontSystem.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if err := sm.RenderGraphSystem.Shutdown(); err != nil {
		return err
	}
	if sm.ShaderSystem != nil {
		if err := sm.ShaderSystem.Shutdown(); err != nil {
			return err
		}
	}
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	return sm.CameraSystem.Shutdown()
}
