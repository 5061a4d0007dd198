package engine

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/assets"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/systems"
)

/**
 * @brief A game driven by the engine. The engine fills in the collaborators
 * before calling FnInitialize.
 */
type Game struct {
	ApplicationConfig *ApplicationConfig
	/**
	 * @brief Filled in by FnBoot. The engine completes the audio and status
	 * fields from the application config.
	 */
	SystemsConfig *systems.SystemManagerConfig
	SystemManager *systems.SystemManager
	Renderer      *renderer.Renderer
	AssetManager  *assets.AssetManager
	Input         *core.InputState
	Bus           *core.EventBus
	State         interface{}
	FnBoot        Boot
	FnInitialize  Initialize
	FnUpdate      Update
	FnRender      Render
	FnOnResize    OnResize
	FnShutdown    Shutdown
}

type Boot func() error
type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
