package pipelines

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/components"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/systems"
)

/** @brief Names of the effect toggles the pipelines read. */
const (
	ToggleSSAO         = "ssao"
	ToggleBlinnPhong   = "blinnPhong"
	ToggleFresnel      = "fresnel"
	ToggleRimLight     = "rimLight"
	ToggleRefraction   = "refraction"
	ToggleReflection   = "reflection"
	ToggleFog          = "fog"
	ToggleOutline      = "outline"
	ToggleCelShading   = "celShading"
	ToggleNormalMaps   = "normalMaps"
	ToggleBloom        = "bloom"
	ToggleSharpen      = "sharpen"
	ToggleDepthOfField = "depthOfField"
	ToggleFilmGrain    = "filmGrain"
	ToggleFlowMaps     = "flowMaps"
	ToggleLookupTable  = "lookupTable"
	TogglePainterly    = "painterly"
	ToggleMotionBlur   = "motionBlur"
	TogglePosterize    = "posterize"
	TogglePixelize     = "pixelize"
)

var (
	/** @brief (pi, degrees to radians). */
	PiInput = metadata.Vec2Input(math.K_PI, math.K_DEG2RAD)
	/** @brief (gamma, 1 / gamma). */
	GammaInput = metadata.Vec2Input(2.2, 1/2.2)
)

/**
 * @brief The per-frame state dynamic inputs are computed from. The frame
 * loop fills it in before pushing the inputs.
 */
type FrameView struct {
	Toggles map[string]*core.FeatureToggle
	Lens    *components.Lens
	Camera  *components.Camera
	/** @brief The camera transform of the previous frame. */
	PreviousViewWorld math.Mat4
	/** @brief The sun pivot pitch in degrees. */
	SunPosition     float32
	FogNear         float32
	FogFar          float32
	RefractiveIndex float32
	FoamDepth       float32
	/** @brief The depth of field focus point in [0, 1] screen space. */
	FocusPoint math.Vec2
	/** @brief The environment origin relative to the camera. */
	Origin math.Vec3
	/** @brief The camera distance to the environment. */
	FocalLength float32
}

// Enabled reports a toggle. Unknown toggles are off.
func (fv *FrameView) Enabled(name string) bool {
	t, ok := fv.Toggles[name]
	return ok && t.Enabled()
}

func (fv *FrameView) toggle(name string) metadata.Binding {
	return metadata.ToggleInput(fv.Enabled(name))
}

/** @brief An input re-pushed every frame. */
type DynamicInput struct {
	Pass  string
	Name  string
	Value func(view *FrameView) metadata.Binding
}

/**
 * @brief Key names and rates steering the orbit. Rates are orbit units per
 * unit of movement, wheel zoom is per wheel step.
 */
type CameraKeys struct {
	ZoomIn  string
	ZoomOut string

	// Lower and raise phi. Empty names are unbound.
	TiltUp    string
	TiltDown  string
	ZoomRate  float32
	TiltRate  float32
	WheelZoom float32
}

/** @brief The orbit and lens a variant starts with. */
type CameraSettings struct {
	Radius float32
	Phi    float32
	Theta  float32
	LookAt math.Vec3
	Fov    float32
	Near   float32
	Far    float32

	// How close the radius may get to the near and far planes.
	NearMargin float32
	FarMargin  float32
	Keys       CameraKeys
}

// orbitKeys is the phi/zoom key layout of the demo and demonstration.
var orbitKeys = CameraKeys{
	ZoomIn:    "z",
	ZoomOut:   "x",
	TiltUp:    "w",
	TiltDown:  "s",
	ZoomRate:  4,
	TiltRate:  0.5,
	WheelZoom: 50,
}

/** @brief The tunable values of a variant and their initial state. */
type Settings struct {
	Camera           CameraSettings
	FogNear          float32
	FogFar           float32
	FoamDepth        float32
	RefractiveIndex  float32
	FocusPoint       math.Vec2
	BackgroundColors [2]math.Vec4
	SSAOSamples      int
	SSAONoise        int
	/**
	 * @brief Camera mask bits to hide scene nodes from, keyed by node name.
	 * Applied by the game when it builds the scene.
	 */
	Hide map[string]uint32
	/** @brief Tags selecting tag states, keyed by node name. */
	Tags map[string]map[string]string
}

/** @brief Scene nodes the pipelines refer to. */
const (
	NodeWater = "water-lp"
	NodeWheel = "wheel-lp"
	NodeSmoke = "smoke"
)

/**
 * @brief A named render pipeline. Build declares its passes on a graph,
 * each pass reading only what earlier passes produced.
 */
type Variant struct {
	Name     string
	BaseSort int
	Settings Settings
	build    func(b *builder)
}

/** @brief An assembled pipeline and what the frame loop needs to drive it. */
type Pipeline struct {
	Variant *Variant
	Graph   *systems.RenderGraphSystem
	Dynamic []DynamicInput
	Buffers []systems.DisplayEntry
}

var variants = map[string]func() *Variant{
	"basic":         Basic,
	"demo":          Demo,
	"demonstration": Demonstration,
}

// Lookup returns the named variant.
func Lookup(name string) (*Variant, error) {
	fn, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("unknown pipeline `%s`, expected one of %v", name, Names())
	}
	return fn(), nil
}

// Names lists the variants in lexical order.
func Names() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

/**
 * @brief Declares every pass of the variant on the graph, then assembles it.
 * The graph must have been created with the variant's base sort. Initial
 * dynamic values come from view. seed drives the SSAO kernels.
 */
func (v *Variant) Build(graph *systems.RenderGraphSystem, textures systems.TextureProvider, view *FrameView, seed uint64) (*Pipeline, error) {
	b := &builder{
		graph:    graph,
		textures: textures,
		view:     view,
		settings: &v.Settings,
		rng:      rand.New(rand.NewSource(seed)),
		images:   make(map[string]*metadata.TextureHandle),
		pipeline: &Pipeline{Variant: v, Graph: graph},
	}
	v.build(b)
	if b.err != nil {
		return nil, fmt.Errorf("pipeline `%s`: %w", v.Name, b.err)
	}
	if err := graph.Assemble(); err != nil {
		return nil, fmt.Errorf("pipeline `%s`: %w", v.Name, err)
	}
	core.LogInfo("pipeline `%s` built: %d passes, %d dynamic inputs, %d buffers", v.Name, len(graph.Passes()), len(b.pipeline.Dynamic), len(b.pipeline.Buffers))
	return b.pipeline, nil
}

// Update pushes every dynamic input computed from view.
func (p *Pipeline) Update(view *FrameView) error {
	for _, d := range p.Dynamic {
		if err := p.Graph.SetInput(d.Pass, d.Name, d.Value(view)); err != nil {
			return fmt.Errorf("dynamic input `%s` of `%s`: %w", d.Name, d.Pass, err)
		}
	}
	return nil
}
