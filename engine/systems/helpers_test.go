package systems

import (
	"testing"

	"github.com/google/uuid"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/components"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/headless"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

// fakeShaders declares the uniforms listed per fragment name.
type fakeShaders struct {
	host     renderer.Host
	uniforms map[string][]string
}

func (f *fakeShaders) Acquire(pair metadata.ShaderPair) (*metadata.Shader, error) {
	s := &metadata.Shader{Pair: pair, Uniforms: map[string]metadata.UniformDecl{}}
	for _, name := range f.uniforms[pair.Fragment] {
		s.Uniforms[name] = metadata.UniformDecl{Name: name}
	}
	return s, f.host.CreateShader(s)
}

func newTestGraph(t *testing.T, baseSort int, uniforms map[string][]string) (*RenderGraphSystem, *headless.Host) {
	t.Helper()
	host := headless.New()
	if err := host.Initialize(800, 600); err != nil {
		t.Fatal(err)
	}
	cameras, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 4,
		Lens:           components.NewPerspectiveLens(1, 150, 2000, 4.0/3.0),
	})
	if err != nil {
		t.Fatal(err)
	}
	graph, err := NewRenderGraphSystem(&RenderGraphConfig{BaseSort: baseSort}, host, &fakeShaders{host: host, uniforms: uniforms}, NewTargetFactory(host, cameras))
	if err != nil {
		t.Fatal(err)
	}
	return graph, host
}

func quadPass(name string, inputs metadata.Inputs) *metadata.PassConfig {
	return &metadata.PassConfig{
		Target: metadata.TextureTargetConfig{
			Name:   name,
			Format: metadata.FormatRGBA8,
			Planes: []metadata.PlaneConfig{{Name: name}},
		},
		Shader: metadata.ShaderPair{Vertex: "basic", Fragment: name},
		Inputs: inputs,
	}
}

func scenePass(name string, planes ...string) *metadata.PassConfig {
	pc := &metadata.PassConfig{
		Target: metadata.TextureTargetConfig{
			Name:     name,
			Format:   metadata.FormatRGBA32F,
			SceneFed: true,
		},
		Shader: metadata.ShaderPair{Vertex: "base", Fragment: name},
		Inputs: metadata.Inputs{},
	}
	for _, p := range planes {
		pc.Target.Planes = append(pc.Target.Planes, metadata.PlaneConfig{Name: p, ClearEnabled: true, ClearColor: math.NewVec4(0, 0, 0, 0)})
	}
	return pc
}

func imageTexture(name string) *metadata.TextureHandle {
	return &metadata.TextureHandle{ID: uuid.New().String(), Name: name}
}

func mustAdd(t *testing.T, g *RenderGraphSystem, pc *metadata.PassConfig) *Pass {
	t.Helper()
	p, err := g.AddPass(pc)
	if err != nil {
		t.Fatalf("AddPass(%s) error = %v", pc.PassName(), err)
	}
	return p
}
