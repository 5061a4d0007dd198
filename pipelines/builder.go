package pipelines

import (
	"golang.org/x/exp/rand"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/systems"
)

var (
	clearNone  = math.NewVec4(0, 0, 0, 0)
	clearBlack = math.NewVec4(0, 0, 0, 1)
	clearWhite = math.NewVec4(1, 1, 1, 0)

	linearSampler = metadata.Sampler{Filter: metadata.TextureFilterModeLinear, Repeat: metadata.TextureRepeatRepeat}
	lookupSampler = metadata.Sampler{Filter: metadata.TextureFilterModeNearest, Repeat: metadata.TextureRepeatClampToEdge}
)

/** @brief A dynamic input of a pass under construction. */
type dynamic struct {
	name  string
	value func(view *FrameView) metadata.Binding
}

func dyn(name string, value func(view *FrameView) metadata.Binding) dynamic {
	return dynamic{name: name, value: value}
}

func toggled(input, toggle string) dynamic {
	return dyn(input, func(v *FrameView) metadata.Binding { return v.toggle(toggle) })
}

func lensProjection() dynamic {
	return dyn("lensProjection", func(v *FrameView) metadata.Binding {
		return metadata.Mat4Input(v.Lens.ProjectionMatrix())
	})
}

func sunPosition() dynamic {
	return dyn("sunPosition", func(v *FrameView) metadata.Binding {
		return metadata.Vec2Input(v.SunPosition, 0)
	})
}

func fogNearFar() dynamic {
	return dyn("nearFar", func(v *FrameView) metadata.Binding {
		return metadata.Vec2Input(v.FogNear, v.FogFar)
	})
}

func focalLength() dynamic {
	return dyn("focalLength", func(v *FrameView) metadata.Binding {
		return metadata.Vec2Input(v.FocalLength, 0)
	})
}

/**
 * @brief Declares passes on a graph. The first error sticks and turns every
 * later call into a no-op, so variants read as a flat list of passes.
 */
type builder struct {
	graph    *systems.RenderGraphSystem
	textures systems.TextureProvider
	view     *FrameView
	settings *Settings
	rng      *rand.Rand
	images   map[string]*metadata.TextureHandle
	pipeline *Pipeline
	err      error
}

// image loads an image texture once per name and sampler.
func (b *builder) image(name string, sampler metadata.Sampler) *metadata.TextureHandle {
	if b.err != nil {
		return nil
	}
	key := name
	if sampler != linearSampler {
		key += "#lookup"
	}
	if t, ok := b.images[key]; ok {
		return t
	}
	t, err := b.textures.Acquire(name, sampler)
	if err != nil {
		b.err = err
		return nil
	}
	b.images[key] = t
	return t
}

// out returns a plane of an already declared pass.
func (b *builder) out(pass, plane string) *metadata.TextureHandle {
	if b.err != nil {
		return nil
	}
	t, err := b.graph.Output(pass, plane)
	if err != nil {
		b.err = err
		return nil
	}
	return t
}

// tex is the primary output of a single plane pass.
func (b *builder) tex(pass string) metadata.Binding {
	return metadata.TextureInput(b.out(pass, pass))
}

func (b *builder) plane(pass, plane string) metadata.Binding {
	return metadata.TextureInput(b.out(pass, plane))
}

func (b *builder) img(name string) metadata.Binding {
	return metadata.TextureInput(b.image(name, linearSampler))
}

// pass declares the pass. Dynamic inputs get their initial value from the
// view and are pushed again every frame.
func (b *builder) pass(pc *metadata.PassConfig, dynamics ...dynamic) {
	if b.err != nil {
		return
	}
	if pc.Inputs == nil {
		pc.Inputs = metadata.Inputs{}
	}
	name := pc.PassName()
	for _, d := range dynamics {
		pc.Inputs[d.name] = d.value(b.view)
	}
	if _, err := b.graph.AddPass(pc); err != nil {
		b.err = err
		return
	}
	for _, d := range dynamics {
		b.pipeline.Dynamic = append(b.pipeline.Dynamic, DynamicInput{Pass: name, Name: d.name, Value: d.value})
	}
}

// buffer adds a display entry for a plane. An empty plane means the
// primary plane of a single plane pass.
func (b *builder) buffer(label, pass, plane string, alpha bool) {
	if plane == "" {
		plane = pass
	}
	b.pipeline.Buffers = append(b.pipeline.Buffers, systems.DisplayEntry{
		Label: label,
		Pass:  pass,
		Plane: plane,
		Alpha: alpha,
	})
}

func shader(vertex, fragment string) metadata.ShaderPair {
	return metadata.ShaderPair{Vertex: vertex, Fragment: fragment}
}

func planes(clear math.Vec4, names ...string) []metadata.PlaneConfig {
	out := make([]metadata.PlaneConfig, len(names))
	for i, n := range names {
		out[i] = metadata.PlaneConfig{Name: n, ClearEnabled: true, ClearColor: clear}
	}
	return out
}

// sceneTarget is a scene-fed target. Without plane names its single plane
// takes the target name.
func sceneTarget(name string, format metadata.ColorFormat, clear math.Vec4, mask uint32, planeNames ...string) metadata.TextureTargetConfig {
	if len(planeNames) == 0 {
		planeNames = []string{name}
	}
	return metadata.TextureTargetConfig{
		Name:       name,
		Format:     format,
		Planes:     planes(clear, planeNames...),
		SceneFed:   true,
		CameraMask: mask,
	}
}

func quadTarget(name string, format metadata.ColorFormat, clear math.Vec4, planeNames ...string) metadata.TextureTargetConfig {
	if len(planeNames) == 0 {
		planeNames = []string{name}
	}
	return metadata.TextureTargetConfig{
		Name:   name,
		Format: format,
		Planes: planes(clear, planeNames...),
	}
}

// bit is a camera mask with only bit n set.
func bit(n uint) uint32 {
	return 1 << n
}
