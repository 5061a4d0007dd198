package systems

import (
	"fmt"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/components"
)

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of cameras that can be managed by
	 * the system.
	 */
	MaxCameraCount uint16
	/** @brief The main lens, shared by every scene-fed target. */
	Lens *components.Lens
}

type CameraSystem struct {
	Config  *CameraSystemConfig
	Cameras map[string]*components.Camera
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.Camera
	// The lens of full-screen quad cameras.
	QuadLens *components.Lens
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	if config.Lens == nil {
		err := fmt.Errorf("func NewCameraSystem - config.Lens is required")
		core.LogError(err.Error())
		return nil, err
	}
	return &CameraSystem{
		Config:        config,
		Cameras:       make(map[string]*components.Camera, config.MaxCameraCount),
		DefaultCamera: components.NewCamera(config.Lens),
		QuadLens:      components.NewQuadLens(),
	}, nil
}

func (cs *CameraSystem) Shutdown() error {
	cs.Cameras = make(map[string]*components.Camera)
	return nil
}

/**
 * @brief Acquires a camera by name. If one is not found, a new one sharing
 * the main lens is created and returned.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	if c, ok := cs.Cameras[name]; ok {
		return c, nil
	}
	if len(cs.Cameras) >= int(cs.Config.MaxCameraCount) {
		err := fmt.Errorf("func CameraSystemAcquire failed to acquire new slot. Adjust camera system config to allow more")
		core.LogError(err.Error())
		return nil, err
	}
	core.LogDebug("Creating new camera named '%s'...", name)
	c := components.NewCamera(cs.Config.Lens)
	cs.Cameras[name] = c
	return c, nil
}

// Release resets and forgets a named camera. The default camera stays.
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	c, ok := cs.Cameras[name]
	if !ok {
		core.LogWarn("CameraSystemRelease failed lookup. Nothing was done.")
		return
	}
	c.Reset()
	delete(cs.Cameras, name)
}

func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.DefaultCamera
}

// Lens returns the main lens.
func (cs *CameraSystem) Lens() *components.Lens {
	return cs.Config.Lens
}

// OnResize keeps the main lens aspect ratio in line with the window.
func (cs *CameraSystem) OnResize(width, height uint32) {
	cs.Config.Lens.SetAspectRatio(width, height)
}
