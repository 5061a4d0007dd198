package mill

import (
	"fmt"

	"github.com/lettier/3d-game-shaders-for-beginners/engine"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/audio"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/components"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/scene"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/systems"
	"github.com/lettier/3d-game-shaders-for-beginners/pipelines"
)

const (
	// Seconds after the first tick before the sounds start.
	AUDIO_DELAY = 0.5
	// Seeds the SSAO kernels.
	KERNEL_SEED uint64 = 1
)

/** @brief A sound anchored to a scene node. */
type soundSpec struct {
	name        string
	asset       string
	node        string
	minDistance float32
}

var soundSpecs = []soundSpec{
	{"wheel", "sounds/wheel.ogg", pipelines.NodeWheel, 60},
	{"water", "sounds/water.ogg", pipelines.NodeWater, 50},
}

// Mill is the watermill demo.
type Mill struct {
	*engine.Game
}

type millState struct {
	variant  *pipelines.Variant
	pipeline *pipelines.Pipeline
	view     *pipelines.FrameView
	orbit    *components.CameraOrbit
	camera   *components.Camera
	scene    *scene.Scene
	nodes    *sceneNodes
	sun      *sunlight
	display  *systems.DisplaySelector
	keys     []keyBinding
	debounce *core.Debouncer

	// Seconds since the first tick, the clock of the debouncer and audio delay.
	now          float64
	audioStarted bool

	mouseX   float32
	mouseY   float32
	dragging bool

	width  uint32
	height uint32
}

// NewGame creates the demo for the pipeline named in the config.
func NewGame(config *engine.ApplicationConfig) (*Mill, error) {
	variant, err := pipelines.Lookup(config.Renderer.Pipeline)
	if err != nil {
		return nil, err
	}
	m := &Mill{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &millState{
				variant:  variant,
				debounce: core.NewDebouncer(config.DebounceWindow()),
				width:    config.Window.Width,
				height:   config.Window.Height,
			},
		},
	}

	m.FnBoot = m.Boot
	m.FnInitialize = m.Initialize
	m.FnUpdate = m.Update
	m.FnRender = m.Render
	m.FnOnResize = m.OnResize
	m.FnShutdown = m.Shutdown

	return m, nil
}

func (m *Mill) state() *millState {
	return m.State.(*millState)
}

// Boot creates the main lens so the systems can share it.
func (m *Mill) Boot() error {
	state := m.state()
	cs := state.variant.Settings.Camera
	core.LogInfo("booting the mill with the `%s` pipeline", state.variant.Name)

	aspect := float32(state.width) / float32(max(state.height, 1))
	lens := components.NewPerspectiveLens(cs.Fov, cs.Near, cs.Far, aspect)
	m.SystemsConfig = &systems.SystemManagerConfig{
		Lens:     lens,
		BaseSort: state.variant.BaseSort,
	}
	return nil
}

func (m *Mill) Initialize() error {
	if m.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}
	state := m.state()
	settings := &state.variant.Settings

	lens := m.SystemManager.CameraSystem.Lens()
	state.camera = components.NewCamera(lens)
	state.orbit = components.NewCameraOrbit(settings.Camera.Radius, settings.Camera.Phi, settings.Camera.Theta, settings.Camera.LookAt, lens)
	state.orbit.SetRadiusMargins(settings.Camera.NearMargin, settings.Camera.FarMargin)
	state.orbit.Apply(state.camera)

	state.view = &pipelines.FrameView{
		Toggles:           newToggles(),
		Lens:              lens,
		Camera:            state.camera,
		PreviousViewWorld: state.camera.GetViewWorld(),
		SunPosition:       SUN_INITIAL,
		FogNear:           settings.FogNear,
		FogFar:            settings.FogFar,
		RefractiveIndex:   settings.RefractiveIndex,
		FoamDepth:         settings.FoamDepth,
		FocusPoint:        settings.FocusPoint,
	}

	sc, nodes, err := buildScene(settings)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	state.scene = sc
	state.nodes = nodes
	if state.sun, err = newSunlight(sc, nodes); err != nil {
		core.LogError(err.Error())
		return err
	}
	m.updateFocus()

	state.pipeline, err = state.variant.Build(m.SystemManager.RenderGraphSystem, m.SystemManager.TextureSystem, state.view, KERNEL_SEED)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	state.display, err = systems.NewDisplaySelector(m.Renderer.Host(), state.pipeline.Graph, state.pipeline.Buffers)
	if err != nil {
		return err
	}

	m.loadSounds()
	state.keys = m.bindings()
	m.SystemManager.StatusText.Set("Ready")
	return nil
}

// loadSounds positions the sounds at their nodes. The demo runs silent when
// they cannot be loaded.
func (m *Mill) loadSounds() {
	as := m.SystemManager.AudioSystem
	for _, s := range soundSpecs {
		n, err := m.state().scene.Find(s.node)
		if err != nil {
			core.LogWarn("sound `%s`: %s", s.name, err)
			continue
		}
		position := n.PositionRelativeTo(nil)
		if _, err := as.Load(s.name, s.asset, s.minDistance, true, position); err != nil {
			core.LogWarn("sound disabled, failed to load `%s`: %s", s.asset, err)
			as.SetEnabled(false)
			return
		}
	}
}

func (m *Mill) Update(deltaTime float64) error {
	state := m.state()
	state.now += deltaTime

	// input
	m.handleCamera(deltaTime)
	if err := m.handleKeys(); err != nil {
		return err
	}

	// camera
	state.orbit.Apply(state.camera)

	// uniforms
	m.updateFocus()
	state.view.SunPosition = state.sun.position
	if err := state.pipeline.Update(state.view); err != nil {
		core.LogError(err.Error())
		return err
	}

	// animation
	if state.view.Enabled(pipelines.ToggleFlowMaps) {
		state.nodes.turnWheel(deltaTime)
	}
	state.sun.update(deltaTime)

	// collaborators
	if !state.audioStarted && state.now >= AUDIO_DELAY {
		state.audioStarted = true
		m.updateSounds()
	}
	m.SystemManager.AudioSystem.Update(audio.Listener{
		Position: state.camera.GetPosition(),
		Velocity: math.NewVec3Zero(),
		Forward:  state.camera.Forward(),
		Up:       state.camera.Up(),
	})
	state.nodes.smoke.Advance(deltaTime)
	m.SystemManager.StatusText.Update(deltaTime)
	return nil
}

// updateFocus points the depth of field at the environment.
func (m *Mill) updateFocus() {
	state := m.state()
	origin := state.nodes.environment.PositionRelativeTo(nil)
	state.view.Origin = state.camera.RelativePoint(origin)
	state.view.FocalLength = origin.Sub(state.camera.GetPosition()).Len()
}

func (m *Mill) Render(deltaTime float64) error {
	state := m.state()
	if overlay, changed := m.SystemManager.StatusText.Render(state.width, state.height); changed {
		m.Renderer.Host().SetOverlay(overlay)
	}
	if err := m.Renderer.DrawFrame(&metadata.FramePacket{
		DeltaTime:  deltaTime,
		Scene:      state.scene,
		View:       state.camera.GetView(),
		Projection: state.view.Lens.ProjectionMatrix(),
	}); err != nil {
		return err
	}
	state.view.PreviousViewWorld = state.camera.GetViewWorld()
	return nil
}

func (m *Mill) OnResize(width uint32, height uint32) error {
	state := m.state()
	state.width = width
	state.height = height
	return nil
}

func (m *Mill) Shutdown() error {
	if m.SystemManager != nil {
		m.SystemManager.AudioSystem.StopAll()
	}
	return nil
}

// updateSounds plays the water sounds while the water flows, once the audio
// delay passed.
func (m *Mill) updateSounds() {
	state := m.state()
	as := m.SystemManager.AudioSystem
	if state.audioStarted && state.view.Enabled(pipelines.ToggleFlowMaps) {
		as.PlayAll()
		return
	}
	as.StopAll()
}

func (m *Mill) toggleSound() {
	as := m.SystemManager.AudioSystem
	as.SetEnabled(!as.Enabled())
	if as.Enabled() {
		m.updateSounds()
	}
	m.SystemManager.StatusText.Setf("Sound %s", onOff(as.Enabled()))
}
