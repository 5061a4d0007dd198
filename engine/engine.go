package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/assets"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/audio"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/platform"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Seconds slept per iteration while the window is minimized.
const minimizedSleep = time.Second

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     atomic.Bool
	platform      *platform.Platform
	renderer      *renderer.Renderer
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	input         *core.InputState
	bus           *core.EventBus
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
}

func New(g *Game) (*Engine, error) {
	config := g.ApplicationConfig
	core.SetLogLevel(config.LogLevel())

	bus := core.NewEventBus()
	input := core.NewInputState(bus)

	p, err := platform.New(input, bus)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	rt, err := renderer.ParseRendererType(config.Renderer.Backend)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	am, err := assets.NewAssetManager(config.Assets.Path, config.Assets.Watch)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		platform:     p,
		renderer:     renderer.New(renderer.NewHost(rt)),
		assetManager: am,
		input:        input,
		bus:          bus,
		width:        config.Window.Width,
		height:       config.Window.Height,
	}, nil
}

func (e *Engine) Initialize() error {
	config := e.gameInstance.ApplicationConfig

	e.bus.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.bus.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.bus.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(config.Window.Title, config.Window.X, config.Window.Y, config.Window.Width, config.Window.Height); err != nil {
		return err
	}
	e.width, e.height = e.platform.FramebufferSize()

	if err := e.assetManager.Initialize(); err != nil {
		return err
	}
	if err := e.renderer.Initialize(e.width, e.height); err != nil {
		return err
	}

	e.currentStage = EngineStageBooting
	g := e.gameInstance
	g.Renderer = e.renderer
	g.AssetManager = e.assetManager
	g.Input = e.input
	g.Bus = e.bus
	if g.FnBoot != nil {
		if err := g.FnBoot(); err != nil {
			core.LogError("failed to boot the game: %s", err)
			return err
		}
	}
	if g.SystemsConfig == nil {
		return fmt.Errorf("the game did not provide a systems config during boot")
	}
	e.currentStage = EngineStageBootComplete

	e.currentStage = EngineStageInitializing
	sc := g.SystemsConfig
	sc.AudioEnabled = config.Audio.Enabled
	if sc.AudioDevice == nil && config.Audio.Enabled {
		sc.AudioDevice = audio.NewRaylibDevice()
	}
	if sc.FontName == "" {
		sc.FontName = config.Status.Font
	}
	if sc.Status == nil {
		sc.Status = config.StatusTextConfig()
	}

	sm, err := systems.NewSystemManager(sc, e.assetManager, e.renderer)
	if err != nil {
		return err
	}
	if err := sm.Initialize(); err != nil {
		return err
	}
	e.systemManager = sm
	g.SystemManager = sm

	if err := g.FnInitialize(); err != nil {
		return err
	}
	if err := e.resize(e.width, e.height); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}

		if e.platform.IsMinimized() {
			time.Sleep(minimizedSleep)
			// the minimized stretch does not count as frame time
			e.clock.Update()
			e.lastTime = e.clock.Elapsed()
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := e.platform.AbsoluteTime()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("game update failed, shutting down: %s", err)
			e.isRunning.Store(false)
			return err
		}
		if err := e.gameInstance.FnRender(delta); err != nil {
			core.LogError("game render failed, shutting down: %s", err)
			e.isRunning.Store(false)
			return err
		}
		e.platform.SwapBuffers()

		e.metrics.Update(e.platform.AbsoluteTime() - frameStartTime)
		if e.renderer.FrameNumber()%600 == 0 {
			fps, ms := e.metrics.Frame()
			core.LogDebug("%.0f fps, %.2f ms", fps, ms)
		}

		// NOTE: input state copying must come after everything that reads
		// input this frame.
		e.input.Update(delta)
		e.lastTime = currentTime
	}

	return nil
}

// Quit stops the loop after the current frame. Safe to call from any goroutine.
func (e *Engine) Quit() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	if e.systemManager != nil {
		if err := e.systemManager.Shutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.renderer.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if err := e.assetManager.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if err := e.bus.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	return e.platform.Shutdown()
}

func (e *Engine) resize(width, height uint32) error {
	e.width, e.height = width, height
	if err := e.renderer.OnResize(width, height); err != nil {
		return err
	}
	e.systemManager.OnResize(width, height)
	e.input.SetViewport(width, height)
	return e.gameInstance.FnOnResize(width, height)
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		e.bus.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok || e.systemManager == nil {
		return false
	}
	if se.WindowWidth == 0 || se.WindowHeight == 0 || (se.WindowWidth == e.width && se.WindowHeight == e.height) {
		return false
	}
	core.LogDebug("window resize: %d, %d", se.WindowWidth, se.WindowHeight)
	if err := e.resize(se.WindowWidth, se.WindowHeight); err != nil {
		core.LogError("resize failed: %s", err)
	}
	return false
}
