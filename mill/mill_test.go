package mill

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lettier/3d-game-shaders-for-beginners/engine"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/assets"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/audio"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/headless"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/systems"
	"github.com/lettier/3d-game-shaders-for-beginners/pipelines"
)

const tick = 0.016

var testImages = []string{
	"images/black.png",
	"images/blank.png",
	"images/color-noise.png",
	"images/foam-pattern.png",
	"images/lookup-table-0.png",
	"images/lookup-table-1.png",
	"images/lookup-table-neutral.png",
	"images/still-flow.png",
	"images/up-flow.png",
}

type fakeShaders struct {
	host *headless.Host
}

func (f *fakeShaders) Acquire(pair metadata.ShaderPair) (*metadata.Shader, error) {
	s := &metadata.Shader{Pair: pair, Uniforms: map[string]metadata.UniformDecl{}}
	return s, f.host.CreateShader(s)
}

func writeFile(t *testing.T, root, name string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func newAssetTree(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	root := t.TempDir()
	for _, name := range testImages {
		writeFile(t, root, name, buf.Bytes())
	}
	for _, s := range soundSpecs {
		writeFile(t, root, s.asset, []byte("OggS"))
	}
	return root
}

type testRig struct {
	mill   *Mill
	host   *headless.Host
	device *audio.NullDevice
}

// newTestMill wires the game the way the engine does, on the headless host.
func newTestMill(t *testing.T, pipeline string) *testRig {
	t.Helper()
	config := engine.DefaultApplicationConfig()
	config.Renderer.Backend = "headless"
	config.Renderer.Pipeline = pipeline
	config.Input.DebounceMS = 150
	config.Window.Width = 800
	config.Window.Height = 600

	am, err := assets.NewAssetManager(newAssetTree(t), false)
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = am.Shutdown() })

	host := headless.New()
	r := renderer.New(host)
	if err := r.Initialize(config.Window.Width, config.Window.Height); err != nil {
		t.Fatal(err)
	}

	m, err := NewGame(config)
	if err != nil {
		t.Fatal(err)
	}
	bus := core.NewEventBus()
	m.Renderer = r
	m.AssetManager = am
	m.Bus = bus
	m.Input = core.NewInputState(bus)
	if err := m.FnBoot(); err != nil {
		t.Fatal(err)
	}

	device := &audio.NullDevice{}
	sc := m.SystemsConfig
	sc.Shaders = &fakeShaders{host: host}
	sc.AudioDevice = device
	sc.AudioEnabled = true
	sc.Status = config.StatusTextConfig()
	sm, err := systems.NewSystemManager(sc, am, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	m.SystemManager = sm

	if err := m.FnInitialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := m.FnOnResize(config.Window.Width, config.Window.Height); err != nil {
		t.Fatal(err)
	}
	return &testRig{mill: m, host: host, device: device}
}

// frame runs one engine iteration.
func (r *testRig) frame(t *testing.T, deltaTime float64) {
	t.Helper()
	if err := r.mill.FnUpdate(deltaTime); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := r.mill.FnRender(deltaTime); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	r.mill.Input.Update(deltaTime)
}

func (r *testRig) press(keys ...core.KeyCode) {
	for _, k := range keys {
		r.mill.Input.ProcessKey(k, true)
	}
}

func (r *testRig) release(keys ...core.KeyCode) {
	for _, k := range keys {
		r.mill.Input.ProcessKey(k, false)
	}
}

func (r *testRig) status() string {
	return r.mill.SystemManager.StatusText.Text()
}

func TestFrameTick(t *testing.T) {
	for _, name := range pipelines.Names() {
		t.Run(name, func(t *testing.T) {
			rig := newTestMill(t, name)
			state := rig.mill.state()
			state.orbit.Radius, state.orbit.Phi, state.orbit.Theta = 1100, 67.5, 231.7
			for _, toggle := range state.view.Toggles {
				toggle.Set(true)
			}

			names := map[string][]string{}
			for _, pass := range state.pipeline.Graph.Passes() {
				names[pass.Name] = pass.Bindings().Names()
			}
			lensPasses := map[string]int{}
			for _, d := range state.pipeline.Dynamic {
				if d.Name == "lensProjection" {
					lensPasses[d.Pass] = rig.host.BindCount(d.Pass, d.Name)
				}
			}

			rig.frame(t, tick)

			for _, pass := range state.pipeline.Graph.Passes() {
				if got := pass.Bindings().Names(); !reflect.DeepEqual(got, names[pass.Name]) {
					t.Errorf("pass %s inputs changed: %v -> %v", pass.Name, names[pass.Name], got)
				}
			}
			for pass, before := range lensPasses {
				if got := rig.host.BindCount(pass, "lensProjection"); got != before+1 {
					t.Errorf("%s lensProjection bound %d times, want %d", pass, got, before+1)
				}
			}
			if rig.device.Updates != 1 {
				t.Errorf("listener updated %d times, want 1", rig.device.Updates)
			}
			if rig.host.Frames() != 1 {
				t.Errorf("frames = %d, want 1", rig.host.Frames())
			}
			if rig.host.Overlay() == nil {
				t.Error("no status overlay")
			}
			if state.orbit.Radius != 1100 || state.orbit.Phi != 67.5 || state.orbit.Theta != 231.7 {
				t.Errorf("orbit = (%f, %f, %f), want (1100, 67.5, 231.7)", state.orbit.Radius, state.orbit.Phi, state.orbit.Theta)
			}
			if got := rig.host.Bindings("ssao")["enabled"]; !got.Equal(metadata.ToggleInput(true)) {
				t.Errorf("ssao enabled = %v, want on", got)
			}
			if state.view.PreviousViewWorld != state.camera.GetViewWorld() {
				t.Error("previous view world not stored at the end of the tick")
			}
		})
	}
}

func TestHeldKeyFlipsOnce(t *testing.T) {
	rig := newTestMill(t, "basic")
	ssao := rig.mill.state().view.Toggles[pipelines.ToggleSSAO]

	rig.press(core.KEY_Y)
	for i := 0; i < 10; i++ {
		rig.frame(t, tick)
	}
	if ssao.Enabled() {
		t.Error("ssao still on after holding its key")
	}
	if rig.status() != "SSAO Off" {
		t.Errorf("status = %q, want %q", rig.status(), "SSAO Off")
	}

}

func TestDebounceWindowIsShared(t *testing.T) {
	rig := newTestMill(t, "basic")
	outline := rig.mill.state().view.Toggles[pipelines.ToggleOutline]

	rig.press(core.KEY_Y)
	rig.frame(t, tick)
	rig.release(core.KEY_Y)
	rig.press(core.KEY_U)
	rig.frame(t, tick)
	if !outline.Enabled() {
		t.Error("outline flipped inside the debounce window")
	}
	rig.frame(t, 0.2)
	if outline.Enabled() {
		t.Error("outline not flipped after the debounce window")
	}
}

func TestToggleReachesPipeline(t *testing.T) {
	rig := newTestMill(t, "basic")
	rig.press(core.KEY_Y)
	rig.frame(t, tick)
	rig.frame(t, tick)
	if got := rig.host.Bindings("ssao")["enabled"]; !got.Equal(metadata.ToggleInput(false)) {
		t.Errorf("ssao enabled = %v, want off", got)
	}
}

func TestReset(t *testing.T) {
	rig := newTestMill(t, "demonstration")
	state := rig.mill.state()
	settings := state.variant.Settings
	radius, phi, theta := state.orbit.Radius, state.orbit.Phi, state.orbit.Theta

	state.orbit.Rotate(10, 20, 100)
	state.orbit.Pan(1, 1)
	state.view.FogNear = 4
	state.view.FogFar = 5
	state.view.FoamDepth = 0.2
	state.view.RefractiveIndex = 2

	rig.press(core.KEY_R)
	rig.frame(t, tick)

	if state.orbit.Radius != radius || state.orbit.Phi != phi || state.orbit.Theta != theta {
		t.Errorf("orbit = (%f, %f, %f), want (%f, %f, %f)", state.orbit.Radius, state.orbit.Phi, state.orbit.Theta, radius, phi, theta)
	}
	if state.orbit.LookAt != settings.Camera.LookAt {
		t.Errorf("look at = %v, want %v", state.orbit.LookAt, settings.Camera.LookAt)
	}
	if state.view.FogNear != settings.FogNear || state.view.FogFar != settings.FogFar {
		t.Errorf("fog = (%f, %f)", state.view.FogNear, state.view.FogFar)
	}
	if state.view.FoamDepth != settings.FoamDepth || state.view.RefractiveIndex != settings.RefractiveIndex {
		t.Errorf("foam %f, rior %f", state.view.FoamDepth, state.view.RefractiveIndex)
	}
	if rig.status() != "Reset" {
		t.Errorf("status = %q", rig.status())
	}
}

func TestAdjustments(t *testing.T) {
	tests := []struct {
		name    string
		keys    []core.KeyCode
		presses int
		value   func(s *millState) float32
		want    float32
		status  string
	}{
		{
			name:    "foam depth floor",
			keys:    []core.KeyCode{core.KEY_SHIFT, core.KEY_MINUS},
			presses: 20,
			value:   func(s *millState) float32 { return s.view.FoamDepth },
			want:    FOAM_DEPTH_MIN,
			status:  "Foam Depth 0.001",
		},
		{
			name:    "fog near stops at fog far",
			keys:    []core.KeyCode{core.KEY_LBRACKET},
			presses: 80,
			value:   func(s *millState) float32 { return s.view.FogNear },
			want:    9,
			status:  "Fog Near 9.0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestMill(t, "demonstration")
			rig.press(tt.keys...)
			for i := 0; i < tt.presses; i++ {
				rig.frame(t, 0.2)
			}
			if got := tt.value(rig.mill.state()); got != tt.want {
				t.Errorf("value = %f, want %f", got, tt.want)
			}
			if rig.status() != tt.status {
				t.Errorf("status = %q, want %q", rig.status(), tt.status)
			}
		})
	}
}

func TestAudio(t *testing.T) {
	rig := newTestMill(t, "demonstration")
	as := rig.mill.SystemManager.AudioSystem
	playing := func() bool {
		wheel, ok := as.Sound("wheel")
		water, ok2 := as.Sound("water")
		if !ok || !ok2 {
			t.Fatal("sounds not loaded")
		}
		return wheel.IsPlaying() && water.IsPlaying()
	}

	rig.frame(t, 0.25)
	if playing() {
		t.Fatal("sounds started before the delay")
	}
	rig.frame(t, 0.3)
	if !playing() {
		t.Fatal("sounds did not start after the delay")
	}

	rig.press(core.KEY_PERIOD)
	rig.frame(t, 0.3)
	rig.release(core.KEY_PERIOD)
	if playing() {
		t.Error("sounds kept playing without flow maps")
	}

	rig.press(core.KEY_DELETE)
	rig.frame(t, 0.3)
	rig.release(core.KEY_DELETE)
	if as.Enabled() || rig.status() != "Sound Off" {
		t.Errorf("sound enabled = %v, status %q", as.Enabled(), rig.status())
	}

	// flow maps back on, but sound is off
	rig.press(core.KEY_PERIOD)
	rig.frame(t, 0.3)
	rig.release(core.KEY_PERIOD)
	if playing() {
		t.Error("sounds started while sound is disabled")
	}

	rig.press(core.KEY_DELETE)
	rig.frame(t, 0.3)
	if !playing() {
		t.Error("sounds did not resume")
	}
	if rig.device.Updates != 6 {
		t.Errorf("listener updated %d times over 6 ticks", rig.device.Updates)
	}
}

func TestDisplayCycle(t *testing.T) {
	rig := newTestMill(t, "basic")
	buffers := rig.mill.state().pipeline.Buffers

	rig.press(core.KEY_TAB)
	rig.frame(t, tick)
	rig.release(core.KEY_TAB)
	if want := buffers[0].Label + " Buffer"; rig.status() != want {
		t.Errorf("status = %q, want %q", rig.status(), want)
	}
	if _, ok := rig.host.Card(); !ok {
		t.Error("no card shown")
	}

	rig.press(core.KEY_SHIFT, core.KEY_TAB)
	rig.frame(t, 0.2)
	if want := buffers[len(buffers)-1].Label + " Buffer"; rig.status() != want {
		t.Errorf("status = %q, want %q", rig.status(), want)
	}
}

func TestWaterwheel(t *testing.T) {
	rig := newTestMill(t, "demo")
	wheel := rig.mill.state().nodes.wheel

	rig.frame(t, 1)
	if wheel.HPR[1] != 270 {
		t.Errorf("wheel pitch = %f, want 270", wheel.HPR[1])
	}

	rig.mill.state().view.Toggles[pipelines.ToggleFlowMaps].Set(false)
	rig.frame(t, 1)
	if wheel.HPR[1] != 270 {
		t.Errorf("wheel turned without flow maps: %f", wheel.HPR[1])
	}
}

func TestParticlesKey(t *testing.T) {
	rig := newTestMill(t, "demonstration")
	smoke := rig.mill.state().nodes.smoke

	rig.frame(t, tick)
	if smoke.Alive() == 0 {
		t.Error("no particles born")
	}
	rig.press(core.KEY_5)
	rig.frame(t, tick)
	if smoke.Visible() || rig.status() != "Particles Off" {
		t.Errorf("visible = %v, status %q", smoke.Visible(), rig.status())
	}
}

func TestMissingMouseSkipsMouseControl(t *testing.T) {
	rig := newTestMill(t, "demonstration")
	orbit := rig.mill.state().orbit
	phi, theta := orbit.Phi, orbit.Theta

	rig.mill.Input.ProcessButton(core.BUTTON_LEFT, true)
	rig.frame(t, tick)
	rig.mill.Input.ProcessMouseMove(1, 1)
	rig.frame(t, tick)
	if orbit.Phi != phi || orbit.Theta != theta {
		t.Errorf("orbit moved without a mouse: (%f, %f)", orbit.Phi, orbit.Theta)
	}
}

func TestCameraKeys(t *testing.T) {
	tests := []struct {
		pipeline string
		key      core.KeyCode
		dPhi     float32
		dRadius  float32
	}{
		{"basic", core.KEY_W, 0, -20},
		{"basic", core.KEY_Z, 0, 0},
		{"demo", core.KEY_W, -5, 0},
		{"demo", core.KEY_X, 0, 40},
		{"demonstration", core.KEY_S, 5, 0},
		{"demonstration", core.KEY_Z, 0, -40},
	}
	for _, tt := range tests {
		t.Run(tt.pipeline+"/"+string(rune(tt.key)), func(t *testing.T) {
			rig := newTestMill(t, tt.pipeline)
			orbit := rig.mill.state().orbit
			phi, radius := orbit.Phi, orbit.Radius

			rig.press(tt.key)
			rig.frame(t, 0.1)
			if d := orbit.Phi - phi; d < tt.dPhi-1e-3 || d > tt.dPhi+1e-3 {
				t.Errorf("phi moved by %f, want %f", d, tt.dPhi)
			}
			if d := orbit.Radius - radius; d < tt.dRadius-1e-2 || d > tt.dRadius+1e-2 {
				t.Errorf("radius moved by %f, want %f", d, tt.dRadius)
			}
		})
	}
}

func TestDemoRadiusMargin(t *testing.T) {
	rig := newTestMill(t, "demo")
	orbit := rig.mill.state().orbit

	orbit.Rotate(0, 0, -5000)
	if orbit.Radius != 460 {
		t.Errorf("radius = %f, want near plane + 10", orbit.Radius)
	}
}

func TestMiddleButtonMovesFocusPoint(t *testing.T) {
	rig := newTestMill(t, "demonstration")
	state := rig.mill.state()
	in := rig.mill.Input
	in.SetViewport(800, 600)
	in.ProcessMouseEnter(true)
	phi, theta := state.orbit.Phi, state.orbit.Theta

	in.ProcessMouseMove(600, 150)
	in.ProcessButton(core.BUTTON_MIDDLE, true)
	rig.frame(t, tick)

	want := metadata.Vec2Input(0.75, 0.75)
	if got := rig.host.Bindings("depthOfField")["mouseFocusPoint"]; !got.Equal(want) {
		t.Errorf("mouseFocusPoint = %v, want %v", got, want)
	}
	if state.orbit.Phi != phi || state.orbit.Theta != theta {
		t.Errorf("middle button turned the camera: (%f, %f)", state.orbit.Phi, state.orbit.Theta)
	}

	in.ProcessButton(core.BUTTON_MIDDLE, false)
	rig.press(core.KEY_R)
	rig.frame(t, tick)
	rig.frame(t, tick)
	focus := state.variant.Settings.FocusPoint
	if got := rig.host.Bindings("depthOfField")["mouseFocusPoint"]; !got.Equal(metadata.Vec2Input(focus[0], focus[1])) {
		t.Errorf("mouseFocusPoint after reset = %v, want %v", got, focus)
	}
}

func TestRightDragPans(t *testing.T) {
	rig := newTestMill(t, "demonstration")
	orbit := rig.mill.state().orbit
	in := rig.mill.Input
	in.SetViewport(800, 600)
	in.ProcessMouseEnter(true)
	in.ProcessMouseMove(400, 300)
	phi, lookAt := orbit.Phi, orbit.LookAt

	in.ProcessButton(core.BUTTON_RIGHT, true)
	rig.frame(t, tick)
	in.ProcessMouseMove(400, 150)
	rig.frame(t, tick)

	if orbit.LookAt == lookAt {
		t.Error("right drag did not pan")
	}
	if orbit.Phi != phi {
		t.Errorf("right drag turned the camera: phi %f", orbit.Phi)
	}
}

func TestWheelIsConsumedWithoutMouse(t *testing.T) {
	rig := newTestMill(t, "demonstration")
	orbit := rig.mill.state().orbit
	in := rig.mill.Input
	radius := orbit.Radius

	in.ProcessMouseWheel(1)
	rig.frame(t, tick)
	in.ProcessMouseEnter(true)
	rig.frame(t, tick)
	if orbit.Radius != radius {
		t.Errorf("stale wheel step applied: radius %f, want %f", orbit.Radius, radius)
	}

	in.ProcessMouseWheel(1)
	rig.frame(t, tick)
	if want := radius - 50; orbit.Radius != want {
		t.Errorf("radius = %f, want %f", orbit.Radius, want)
	}
}

func TestShutterBands(t *testing.T) {
	rig := newTestMill(t, "demonstration")
	sun := rig.mill.state().sun
	open, closed := sun.shuttersOpen.PlayCount(), sun.shuttersClose.PlayCount()

	// 260 down to 35 degrees crosses the morning band once
	for i := 0; i < 400; i++ {
		sun.update(0.1)
	}
	if got := sun.shuttersOpen.PlayCount() - open; got != 1 {
		t.Errorf("shutters opened %d times, want 1", got)
	}
	if got := sun.shuttersClose.PlayCount() - closed; got != 0 {
		t.Errorf("shutters closed %d times, want 0", got)
	}
	if sun.closedShutters {
		t.Error("shutters still latched closed")
	}

	// on to 282.5 degrees, through the second opening band and the evening band
	for i := 0; i < 200; i++ {
		sun.update(0.1)
	}
	if got := sun.shuttersOpen.PlayCount() - open; got != 1 {
		t.Errorf("shutters opened %d times, want 1", got)
	}
	if got := sun.shuttersClose.PlayCount() - closed; got != 1 {
		t.Errorf("shutters closed %d times, want 1", got)
	}
	if !sun.closedShutters {
		t.Error("shutters not latched closed")
	}
}

func TestShutterKeysReplay(t *testing.T) {
	rig := newTestMill(t, "demonstration")
	sun := rig.mill.state().sun
	open, closed := sun.shuttersOpen.PlayCount(), sun.shuttersClose.PlayCount()

	rig.press(core.KEY_2)
	rig.frame(t, 0.2)
	rig.frame(t, 0.2)
	rig.release(core.KEY_2)
	if got := sun.shuttersOpen.PlayCount() - open; got != 2 {
		t.Errorf("midnight opened the shutters %d times, want 2", got)
	}
	if rig.status() != "Midnight" {
		t.Errorf("status = %q", rig.status())
	}

	rig.press(core.KEY_1)
	rig.frame(t, 0.2)
	if got := sun.shuttersClose.PlayCount() - closed; got != 1 {
		t.Errorf("midday closed the shutters %d times, want 1", got)
	}
	if !sun.closedShutters || sun.position != SUN_MIDDAY {
		t.Errorf("closed = %v, position %f", sun.closedShutters, sun.position)
	}
}

func TestSceneTagsAndMasks(t *testing.T) {
	rig := newTestMill(t, "demonstration")
	sc := rig.mill.state().scene
	settings := rig.mill.state().variant.Settings

	for name, mask := range settings.Hide {
		n, err := sc.Find(name)
		if err != nil {
			t.Fatal(err)
		}
		if n.VisibleTo(mask) {
			t.Errorf("%s visible to mask %b", name, mask)
		}
	}
	water, _ := sc.Find(pipelines.NodeWater)
	if v, _ := water.Tag("baseBuffer"); v != "isWater" {
		t.Errorf("water baseBuffer tag = %q", v)
	}
}

func TestNewGameUnknownPipeline(t *testing.T) {
	config := engine.DefaultApplicationConfig()
	config.Renderer.Pipeline = "forward"
	if _, err := NewGame(config); err == nil {
		t.Fatal("NewGame() error = nil")
	}
}
