package mill

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/pipelines"
)

const (
	// Movement units per second, scaled by the per-key rates.
	KEY_MOVEMENT float32 = 100
	KEY_TURN     float32 = 0.5
	KEY_PAN      float32 = 0.05
	// Degrees per unit of normalized mouse travel.
	MOUSE_TURN float32 = 90
	MOUSE_PAN  float32 = 5

	FOG_STEP       float32 = 0.1
	RIOR_STEP      float32 = 0.005
	FOAM_STEP      float32 = 0.1
	FOAM_DEPTH_MIN float32 = 0.001
)

/** @brief An effect toggle and the key that flips it. */
type toggleSpec struct {
	name    string
	label   string
	key     string
	enabled bool
}

var toggleSpecs = []toggleSpec{
	{pipelines.ToggleSSAO, "SSAO", "y", true},
	{pipelines.ToggleOutline, "Outline", "u", true},
	{pipelines.ToggleBloom, "Bloom", "i", true},
	{pipelines.ToggleNormalMaps, "Normal Maps", "o", true},
	{pipelines.ToggleFog, "Fog", "p", true},
	{pipelines.ToggleDepthOfField, "Depth of Field", "h", true},
	{pipelines.TogglePosterize, "Posterize", "j", false},
	{pipelines.TogglePixelize, "Pixelize", "k", false},
	{pipelines.ToggleSharpen, "Sharpen", "l", true},
	{pipelines.ToggleFilmGrain, "Film Grain", "n", true},
	{pipelines.ToggleReflection, "Reflection", "m", true},
	{pipelines.ToggleRefraction, "Refraction", ",", true},
	{pipelines.ToggleFlowMaps, "Flow Maps", ".", true},
	{pipelines.ToggleBlinnPhong, "Blinn-Phong", "0", true},
	{pipelines.ToggleFresnel, "Fresnel", "3", true},
	{pipelines.ToggleRimLight, "Rim Light", "4", true},
	{pipelines.ToggleMotionBlur, "Motion Blur", "6", false},
	{pipelines.TogglePainterly, "Painterly", "7", false},
	{pipelines.ToggleCelShading, "Cel Shading", "8", false},
	{pipelines.ToggleLookupTable, "Lookup Table", "9", true},
}

func newToggles() map[string]*core.FeatureToggle {
	toggles := make(map[string]*core.FeatureToggle, len(toggleSpecs))
	for _, ts := range toggleSpecs {
		toggles[ts.name] = core.NewFeatureToggle(ts.name, ts.label, ts.enabled)
	}
	return toggles
}

/** @brief A discrete action fired by a debounced key press. */
type keyBinding struct {
	key    string
	action func(shift bool) error
}

// bindings lists every discrete key in the order they are polled. Only the
// first held key is considered each tick.
func (m *Mill) bindings() []keyBinding {
	state := m.state()
	out := make([]keyBinding, 0, len(toggleSpecs)+12)
	for _, ts := range toggleSpecs {
		name := ts.name
		out = append(out, keyBinding{key: ts.key, action: func(bool) error {
			return m.flip(name)
		}})
	}
	return append(out,
		keyBinding{key: "/", action: func(bool) error {
			state.sun.animate = !state.sun.animate
			m.SystemManager.StatusText.Setf("Sun Animation %s", onOff(state.sun.animate))
			return nil
		}},
		keyBinding{key: "1", action: func(bool) error {
			state.sun.Midday()
			m.SystemManager.StatusText.Set("Midday")
			return nil
		}},
		keyBinding{key: "2", action: func(bool) error {
			state.sun.Midnight()
			m.SystemManager.StatusText.Set("Midnight")
			return nil
		}},
		keyBinding{key: "5", action: func(bool) error {
			smoke := state.nodes.smoke
			if smoke.Visible() {
				smoke.Hide()
			} else {
				smoke.Show()
			}
			m.SystemManager.StatusText.Setf("Particles %s", onOff(smoke.Visible()))
			return nil
		}},
		keyBinding{key: "delete", action: func(bool) error {
			m.toggleSound()
			return nil
		}},
		keyBinding{key: "r", action: func(bool) error {
			m.reset()
			return nil
		}},
		keyBinding{key: "tab", action: m.cycleDisplay},
		keyBinding{key: "[", action: func(shift bool) error {
			view := state.view
			view.FogNear = math.Clamp(view.FogNear+signed(FOG_STEP, shift), 0, view.FogFar)
			m.SystemManager.StatusText.Setf("Fog Near %.1f", view.FogNear)
			return nil
		}},
		keyBinding{key: "]", action: func(shift bool) error {
			view := state.view
			view.FogFar = max(view.FogFar+signed(FOG_STEP, shift), view.FogNear)
			m.SystemManager.StatusText.Setf("Fog Far %.1f", view.FogFar)
			return nil
		}},
		keyBinding{key: "=", action: func(shift bool) error {
			view := state.view
			view.RefractiveIndex += signed(RIOR_STEP, shift)
			m.SystemManager.StatusText.Setf("Refractive Index %.3f", view.RefractiveIndex)
			return nil
		}},
		keyBinding{key: "-", action: func(shift bool) error {
			view := state.view
			view.FoamDepth = max(view.FoamDepth+signed(FOAM_STEP, shift), FOAM_DEPTH_MIN)
			m.SystemManager.StatusText.Setf("Foam Depth %.3f", view.FoamDepth)
			return nil
		}},
	)
}

// signed is step, or -step while shift is held.
func signed(step float32, shift bool) float32 {
	if shift {
		return -step
	}
	return step
}

func onOff(enabled bool) string {
	if enabled {
		return "On"
	}
	return "Off"
}

// handleKeys fires the first held key if the shared debouncer lets it.
func (m *Mill) handleKeys() error {
	state := m.state()
	shift := m.Input.IsKeyDown("shift")
	for _, b := range state.keys {
		if !m.Input.IsKeyDown(b.key) {
			continue
		}
		if !state.debounce.Allow(state.now) {
			return nil
		}
		return b.action(shift)
	}
	return nil
}

func (m *Mill) flip(name string) error {
	state := m.state()
	t := state.view.Toggles[name]
	t.Flip()
	m.SystemManager.StatusText.Set(t.Status())
	if name == pipelines.ToggleFlowMaps {
		m.updateSounds()
	}
	return nil
}

func (m *Mill) cycleDisplay(shift bool) error {
	display := m.state().display
	step := display.Next
	if shift {
		step = display.Previous
	}
	entry, err := step()
	if err != nil {
		return err
	}
	m.SystemManager.StatusText.Setf("%s Buffer", entry.Label)
	return nil
}

// handleCamera applies the continuous keyboard and mouse axes to the orbit.
// Left drag turns, right drag pans and the middle button moves the focus point.
func (m *Mill) handleCamera(deltaTime float64) {
	state := m.state()
	orbit := state.orbit
	keys := state.variant.Settings.Camera.Keys
	movement := KEY_MOVEMENT * float32(deltaTime)
	held := func(name string) bool {
		return name != "" && m.Input.IsKeyDown(name)
	}

	var dPhi, dTheta, dRadius, panUpDown, panLeftRight float32
	if held(keys.TiltUp) {
		dPhi -= movement * keys.TiltRate
	}
	if held(keys.TiltDown) {
		dPhi += movement * keys.TiltRate
	}
	if held(keys.ZoomIn) {
		dRadius -= movement * keys.ZoomRate
	}
	if held(keys.ZoomOut) {
		dRadius += movement * keys.ZoomRate
	}
	if held("a") {
		dTheta += movement * KEY_TURN
	}
	if held("d") {
		dTheta -= movement * KEY_TURN
	}
	if held("arrow_up") {
		panUpDown += movement * KEY_PAN
	}
	if held("arrow_down") {
		panUpDown -= movement * KEY_PAN
	}
	if held("arrow_left") {
		panLeftRight -= movement * KEY_PAN
	}
	if held("arrow_right") {
		panLeftRight += movement * KEY_PAN
	}

	// wheel steps are consumed every tick, used only over the window
	wheelUp, wheelDown := m.Input.WheelUp(), m.Input.WheelDown()
	if m.Input.HasMouse() {
		x, y := m.Input.MousePosition()
		dx, dy := x-state.mouseX, y-state.mouseY
		switch {
		case m.Input.IsButtonDown(core.BUTTON_LEFT):
			if state.dragging {
				dPhi += dy * MOUSE_TURN
				dTheta -= dx * MOUSE_TURN
			}
		case m.Input.IsButtonDown(core.BUTTON_RIGHT):
			if state.dragging {
				panUpDown += dy * MOUSE_PAN
				panLeftRight -= dx * MOUSE_PAN
			}
		case m.Input.IsButtonDown(core.BUTTON_MIDDLE):
			state.view.FocusPoint = math.NewVec2((x+1)/2, (y+1)/2)
		}
		if wheelUp {
			dRadius -= keys.WheelZoom
		}
		if wheelDown {
			dRadius += keys.WheelZoom
		}
		state.mouseX, state.mouseY = x, y
		state.dragging = m.Input.IsButtonDown(core.BUTTON_LEFT) || m.Input.IsButtonDown(core.BUTTON_RIGHT)
	} else {
		state.dragging = false
	}

	orbit.Rotate(dPhi, dTheta, dRadius)
	if panUpDown != 0 || panLeftRight != 0 {
		orbit.Pan(panUpDown, panLeftRight)
	}
}

// reset restores the camera and the adjustable values.
func (m *Mill) reset() {
	state := m.state()
	settings := &state.variant.Settings
	state.orbit.Reset()
	state.view.FogNear = settings.FogNear
	state.view.FogFar = settings.FogFar
	state.view.RefractiveIndex = settings.RefractiveIndex
	state.view.FoamDepth = settings.FoamDepth
	state.view.FocusPoint = settings.FocusPoint
	m.SystemManager.StatusText.Set("Reset")
}
