package systems

import (
	"fmt"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

/**
 * @brief Allocates texture targets on the host and attaches their cameras:
 * the main lens for scene-fed targets, the quad lens otherwise.
 */
type TargetFactory struct {
	host    renderer.Host
	cameras *CameraSystem
}

func NewTargetFactory(host renderer.Host, cameras *CameraSystem) *TargetFactory {
	return &TargetFactory{host: host, cameras: cameras}
}

// Make validates the config, then allocates the target and its camera.
// Format and allocation failures are configuration errors.
func (tf *TargetFactory) Make(config metadata.TextureTargetConfig) (*metadata.RenderTarget, *metadata.CameraHandle, error) {
	if err := config.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, nil, err
	}
	rt, err := tf.host.MakeRenderTarget(config)
	if err != nil {
		err = fmt.Errorf("texture target `%s`: %w", config.Name, err)
		core.LogError(err.Error())
		return nil, nil, err
	}
	lens := tf.cameras.QuadLens
	if config.SceneFed {
		lens = tf.cameras.Lens()
	}
	camera, err := tf.host.AttachCamera(rt, lens)
	if err != nil {
		err = fmt.Errorf("texture target `%s` camera: %w", config.Name, err)
		core.LogError(err.Error())
		return nil, nil, err
	}
	return rt, camera, nil
}
