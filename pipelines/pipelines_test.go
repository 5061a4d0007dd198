package pipelines

import (
	"errors"
	"image"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/components"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/headless"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/systems"
)

type fakeShaders struct {
	host *headless.Host
}

func (f *fakeShaders) Acquire(pair metadata.ShaderPair) (*metadata.Shader, error) {
	s := &metadata.Shader{Pair: pair, Uniforms: map[string]metadata.UniformDecl{}}
	return s, f.host.CreateShader(s)
}

// fakeTextures hands out 1x1 images and remembers what was asked for.
type fakeTextures struct {
	host      *headless.Host
	requested []string
	fail      bool
}

func (f *fakeTextures) Acquire(name string, sampler metadata.Sampler) (*metadata.TextureHandle, error) {
	if f.fail {
		return nil, core.ErrAssetNotFound
	}
	f.requested = append(f.requested, name)
	t := &metadata.TextureHandle{Name: name, Sampler: sampler}
	return t, f.host.CreateTexture(t, image.NewRGBA(image.Rect(0, 0, 1, 1)))
}

var allToggles = []string{
	ToggleSSAO, ToggleBlinnPhong, ToggleFresnel, ToggleRimLight, ToggleRefraction,
	ToggleReflection, ToggleFog, ToggleOutline, ToggleCelShading, ToggleNormalMaps,
	ToggleBloom, ToggleSharpen, ToggleDepthOfField, ToggleFilmGrain, ToggleFlowMaps,
	ToggleLookupTable, TogglePainterly, ToggleMotionBlur, TogglePosterize, TogglePixelize,
}

func newView(v *Variant) *FrameView {
	lens := components.NewPerspectiveLens(v.Settings.Camera.Fov, v.Settings.Camera.Near, v.Settings.Camera.Far, 4.0/3.0)
	toggles := make(map[string]*core.FeatureToggle, len(allToggles))
	for _, name := range allToggles {
		toggles[name] = core.NewFeatureToggle(name, name, true)
	}
	return &FrameView{
		Toggles:         toggles,
		Lens:            lens,
		Camera:          components.NewCamera(lens),
		FogNear:         v.Settings.FogNear,
		FogFar:          v.Settings.FogFar,
		RefractiveIndex: v.Settings.RefractiveIndex,
		FoamDepth:       v.Settings.FoamDepth,
		FocusPoint:      v.Settings.FocusPoint,
	}
}

type harness struct {
	host     *headless.Host
	graph    *systems.RenderGraphSystem
	textures *fakeTextures
	view     *FrameView
}

func newHarness(t *testing.T, v *Variant) *harness {
	t.Helper()
	host := headless.New()
	if err := host.Initialize(800, 600); err != nil {
		t.Fatal(err)
	}
	view := newView(v)
	cameras, err := systems.NewCameraSystem(&systems.CameraSystemConfig{MaxCameraCount: 4, Lens: view.Lens})
	if err != nil {
		t.Fatal(err)
	}
	graph, err := systems.NewRenderGraphSystem(&systems.RenderGraphConfig{BaseSort: v.BaseSort}, host, &fakeShaders{host: host}, systems.NewTargetFactory(host, cameras))
	if err != nil {
		t.Fatal(err)
	}
	return &harness{host: host, graph: graph, textures: &fakeTextures{host: host}, view: view}
}

func build(t *testing.T, name string) (*Pipeline, *harness) {
	t.Helper()
	v, err := Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	h := newHarness(t, v)
	p, err := v.Build(h.graph, h.textures, h.view, 1)
	if err != nil {
		t.Fatalf("Build(%s) error = %v", name, err)
	}
	return p, h
}

func TestVariantsBuild(t *testing.T) {
	tests := []struct {
		name    string
		passes  int
		buffers int
		last    string
	}{
		{name: "basic", passes: 19, buffers: 19, last: "filmGrain"},
		{name: "demo", passes: 30, buffers: 29, last: "filmGrain"},
		{name: "demonstration", passes: 29, buffers: 36, last: "gammaCorrection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, h := build(t, tt.name)
			passes := p.Graph.Passes()
			if len(passes) != tt.passes {
				t.Errorf("passes = %d, want %d", len(passes), tt.passes)
			}
			if len(p.Buffers) != tt.buffers {
				t.Errorf("buffers = %d, want %d", len(p.Buffers), tt.buffers)
			}
			if got := passes[len(passes)-1].Name; got != tt.last {
				t.Errorf("last pass = %s, want %s", got, tt.last)
			}
			for _, e := range p.Graph.Edges() {
				producer, _ := p.Graph.Get(e.Producer)
				consumer, _ := p.Graph.Get(e.Consumer)
				if producer.Sort >= consumer.Sort {
					t.Errorf("%s (%d) feeds %s (%d)", e.Producer, producer.Sort, e.Consumer, consumer.Sort)
				}
			}
			for _, b := range p.Buffers {
				if _, err := p.Graph.Output(b.Pass, b.Plane); err != nil {
					t.Errorf("buffer %q: %v", b.Label, err)
				}
			}
			if _, err := systems.NewDisplaySelector(h.host, p.Graph, p.Buffers); err != nil {
				t.Errorf("NewDisplaySelector() error = %v", err)
			}
		})
	}
}

func TestVariantBaseSort(t *testing.T) {
	for _, name := range Names() {
		p, _ := build(t, name)
		for _, pass := range p.Graph.Passes() {
			if pass.Sort < p.Variant.BaseSort {
				t.Errorf("%s: pass %s sort %d below base %d", name, pass.Name, pass.Sort, p.Variant.BaseSort)
			}
		}
	}
}

func TestDemonstrationBaseSortFloor(t *testing.T) {
	p, _ := build(t, "demonstration")
	base, ok := p.Graph.Get("base")
	if !ok {
		t.Fatal("missing base pass")
	}
	if base.Sort < unsortedSortOrder+1 {
		t.Errorf("base sort = %d, want at least %d", base.Sort, unsortedSortOrder+1)
	}
	geometry0, _ := p.Graph.Get("geometry0")
	if geometry0.Sort != p.Variant.BaseSort {
		t.Errorf("geometry0 sort = %d, want %d", geometry0.Sort, p.Variant.BaseSort)
	}
}

func TestTagStatesOnlyOnScenePasses(t *testing.T) {
	want := map[string]map[string]bool{
		"basic":         {},
		"demo":          {"normalWithWater": true, "foamMask": true, "specular": true},
		"demonstration": {"geometry1": true, "geometry2": true, "base": true},
	}
	for name, passes := range want {
		p, _ := build(t, name)
		for _, pass := range p.Graph.Passes() {
			has := len(pass.Config.TagStates) > 0
			if has != passes[pass.Name] {
				t.Errorf("%s: pass %s has tag states = %v, want %v", name, pass.Name, has, passes[pass.Name])
			}
			if has && !pass.Config.Target.SceneFed {
				t.Errorf("%s: pass %s has tag states on a quad target", name, pass.Name)
			}
		}
	}
}

func TestDynamicInputsAreBound(t *testing.T) {
	for _, name := range Names() {
		p, _ := build(t, name)
		if len(p.Dynamic) == 0 {
			t.Errorf("%s: no dynamic inputs", name)
		}
		for _, d := range p.Dynamic {
			pass, ok := p.Graph.Get(d.Pass)
			if !ok {
				t.Errorf("%s: dynamic input on unknown pass %s", name, d.Pass)
				continue
			}
			if _, ok := pass.Bindings()[d.Name]; !ok {
				t.Errorf("%s: dynamic input %s.%s was not bound at build", name, d.Pass, d.Name)
			}
		}
	}
}

func TestPipelineUpdate(t *testing.T) {
	p, h := build(t, "basic")
	before := p.Graph.Passes()[0].Bindings().Names()

	h.view.Toggles[ToggleSSAO].Set(false)
	h.view.FocalLength = 42
	if err := p.Update(h.view); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	ssao := h.host.Bindings("ssao")
	if !ssao["enabled"].Equal(metadata.ToggleInput(false)) {
		t.Errorf("ssao enabled = %v, want off", ssao["enabled"])
	}
	if got := h.host.BindCount("ssao", "lensProjection"); got != 2 {
		t.Errorf("lensProjection bound %d times, want 2", got)
	}
	if !h.host.Bindings("depthOfField")["focalLength"].Equal(metadata.Vec2Input(42, 0)) {
		t.Errorf("focalLength = %v", h.host.Bindings("depthOfField")["focalLength"])
	}
	after := p.Graph.Passes()[0].Bindings().Names()
	if len(before) != len(after) {
		t.Errorf("input names changed: %v -> %v", before, after)
	}
}

func TestBuildLoadsImagesOnce(t *testing.T) {
	_, h := build(t, "demonstration")
	seen := map[string]int{}
	for _, name := range h.textures.requested {
		seen[name]++
	}
	if len(seen) == 0 {
		t.Fatal("no images requested")
	}
	for name, n := range seen {
		if n > 2 {
			t.Errorf("%s requested %d times", name, n)
		}
	}
}

func TestBuildFailsOnMissingImage(t *testing.T) {
	v := Demonstration()
	h := newHarness(t, v)
	h.textures.fail = true
	_, err := v.Build(h.graph, h.textures, h.view, 1)
	if !errors.Is(err, core.ErrAssetNotFound) {
		t.Fatalf("Build() error = %v, want %v", err, core.ErrAssetNotFound)
	}
	if h.graph.IsAssembled() {
		t.Error("graph assembled after a failed build")
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("deferred"); err == nil {
		t.Fatal("Lookup(deferred) error = nil")
	}
	if got := Names(); len(got) != 3 || got[0] != "basic" {
		t.Errorf("Names() = %v", got)
	}
}

func TestSSAOKernels(t *testing.T) {
	a := SSAOSamples(rand.New(rand.NewSource(7)), 64)
	b := SSAOSamples(rand.New(rand.NewSource(7)), 64)
	if len(a) != 64 {
		t.Fatalf("len = %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs for the same seed", i)
		}
		if a[i].Len() > 1.0001 {
			t.Errorf("sample %d length %f above 1", i, a[i].Len())
		}
		if a[i].Z() < 0 {
			t.Errorf("sample %d below the hemisphere: %v", i, a[i])
		}
	}

	for i, n := range SSAONoise(rand.New(rand.NewSource(7)), 16) {
		if n.Z() != 0 {
			t.Errorf("noise %d has z = %f", i, n.Z())
		}
		if n.X() < -1 || n.X() > 1 || n.Y() < -1 || n.Y() > 1 {
			t.Errorf("noise %d out of range: %v", i, n)
		}
	}
}
