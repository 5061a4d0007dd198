package systems

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

/** @brief Uniform prefixes the host fills in by itself. */
var builtinUniformPrefixes = []string{"p3d_", "osg_", "gl_"}

type RenderGraphConfig struct {
	/** @brief The sort of passes without pass dependencies. */
	BaseSort int
}

/**
 * @brief A pass of the graph: a target it owns, an immutable shader and
 * the current values of its inputs.
 */
type Pass struct {
	Name   string
	Config *metadata.PassConfig
	Target *metadata.RenderTarget
	Camera *metadata.CameraHandle
	Shader *metadata.Shader
	Sort   int

	bindings metadata.Inputs
	index    int
}

// Bindings returns a copy of the current input values.
func (p *Pass) Bindings() metadata.Inputs {
	return p.bindings.Clone()
}

// Output returns the texture of the named plane.
func (p *Pass) Output(plane string) (*metadata.TextureHandle, bool) {
	return p.Target.Plane(plane)
}

// Texture returns the primary plane texture.
func (p *Pass) Texture() *metadata.TextureHandle {
	return p.Target.Planes[0]
}

/** @brief A data dependency: Consumer reads a plane of Producer through Input. */
type Edge struct {
	Producer string
	Plane    string
	Consumer string
	Input    string
	/** @brief The tag state declaring the input, empty for default inputs. */
	TagState string
}

/**
 * @brief Builds the pass graph and keeps the pass inputs in sync with the
 * host. Passes are added in dependency order, each getting a sort one above
 * its deepest dependency. After Assemble the topology is frozen and only
 * input values change.
 */
type RenderGraphSystem struct {
	config  *RenderGraphConfig
	host    renderer.Host
	shaders ShaderProvider
	targets *TargetFactory

	passes      map[string]*Pass
	declared    []*Pass
	sorted      []*Pass
	edges       []Edge
	assembled   bool
	presentSort int
}

func NewRenderGraphSystem(config *RenderGraphConfig, host renderer.Host, shaders ShaderProvider, targets *TargetFactory) (*RenderGraphSystem, error) {
	if host == nil || shaders == nil || targets == nil {
		err := fmt.Errorf("NewRenderGraphSystem - host, shaders and targets are required")
		core.LogError(err.Error())
		return nil, err
	}
	return &RenderGraphSystem{
		config:  config,
		host:    host,
		shaders: shaders,
		targets: targets,
		passes:  make(map[string]*Pass),
	}, nil
}

func (rg *RenderGraphSystem) Shutdown() error {
	rg.passes = make(map[string]*Pass)
	rg.declared = nil
	rg.sorted = nil
	rg.edges = nil
	rg.assembled = false
	return nil
}

func (rg *RenderGraphSystem) fail(err error) error {
	core.LogError(err.Error())
	return err
}

// producerOf resolves a texture input to the pass and plane producing it.
// Images have no producer.
func (rg *RenderGraphSystem) producerOf(t *metadata.TextureHandle) (*Pass, string, error) {
	if t == nil {
		return nil, "", core.ErrUnknownTexture
	}
	if t.IsImage() {
		return nil, "", nil
	}
	p, ok := rg.passes[t.Producer]
	if !ok || t.Plane >= len(p.Target.Planes) || p.Target.Planes[t.Plane] != t {
		return nil, "", fmt.Errorf("%w: `%s` of `%s`", core.ErrUnknownTexture, t.Name, t.Producer)
	}
	return p, t.Name, nil
}

/**
 * @brief Declares a pass. Every texture input, tag-state overrides included,
 * must be an image or a plane of an already declared pass. The pass sort is
 * max(1 + deepest dependency, floor) or the base sort when nothing it reads
 * is rendered.
 */
func (rg *RenderGraphSystem) AddPass(config *metadata.PassConfig) (*Pass, error) {
	if rg.assembled {
		return nil, rg.fail(fmt.Errorf("%w: cannot add `%s`", core.ErrGraphAssembled, config.PassName()))
	}
	name := config.PassName()
	if name == "" {
		return nil, rg.fail(fmt.Errorf("pass name is required"))
	}
	if _, ok := rg.passes[name]; ok {
		return nil, rg.fail(fmt.Errorf("%w: `%s`", core.ErrDuplicatePass, name))
	}
	if config.Target.Name == "" {
		config.Target.Name = name
	}
	if config.Target.Name != name {
		return nil, rg.fail(fmt.Errorf("pass `%s` must own a target of the same name, got `%s`", name, config.Target.Name))
	}
	if err := config.Target.Validate(); err != nil {
		return nil, rg.fail(fmt.Errorf("pass `%s`: %w", name, err))
	}
	if len(config.TagStates) > 0 && !config.Target.SceneFed {
		return nil, rg.fail(fmt.Errorf("pass `%s`: tag states need a scene-fed target", name))
	}

	var edges []Edge
	collect := func(inputs metadata.Inputs, tagState string) error {
		for _, input := range inputs.Names() {
			b := inputs[input]
			if b.Kind != metadata.BindingTexture {
				continue
			}
			producer, plane, err := rg.producerOf(b.Texture)
			if err != nil {
				return fmt.Errorf("pass `%s` input `%s`: %w", name, input, err)
			}
			if producer != nil {
				edges = append(edges, Edge{Producer: producer.Name, Plane: plane, Consumer: name, Input: input, TagState: tagState})
			}
		}
		return nil
	}
	if err := collect(config.Inputs, ""); err != nil {
		return nil, rg.fail(err)
	}
	for _, ts := range config.TagStates {
		if ts.When == nil {
			return nil, rg.fail(fmt.Errorf("pass `%s` tag state `%s` has no predicate", name, ts.Name))
		}
		if err := collect(ts.Overrides, ts.Name); err != nil {
			return nil, rg.fail(err)
		}
	}

	sortKey := rg.config.BaseSort
	if len(edges) > 0 {
		deepest := rg.passes[edges[0].Producer].Sort
		for _, e := range edges[1:] {
			if s := rg.passes[e.Producer].Sort; s > deepest {
				deepest = s
			}
		}
		sortKey = deepest + 1
	}
	if config.HasSortFloor && config.SortFloor > sortKey {
		sortKey = config.SortFloor
	}

	shader, err := rg.shaders.Acquire(config.Shader)
	if err != nil {
		return nil, rg.fail(fmt.Errorf("pass `%s`: %w", name, err))
	}
	target, camera, err := rg.targets.Make(config.Target)
	if err != nil {
		return nil, fmt.Errorf("pass `%s`: %w", name, err)
	}
	if err := rg.host.SetShader(target, shader); err != nil {
		return nil, rg.fail(fmt.Errorf("pass `%s`: %w", name, err))
	}
	if err := rg.host.SetSort(target, sortKey); err != nil {
		return nil, rg.fail(fmt.Errorf("pass `%s`: %w", name, err))
	}

	pass := &Pass{
		Name:     name,
		Config:   config,
		Target:   target,
		Camera:   camera,
		Shader:   shader,
		Sort:     sortKey,
		bindings: metadata.Inputs{},
		index:    len(rg.declared),
	}
	for _, input := range config.Inputs.Names() {
		value := config.Inputs[input]
		if err := rg.host.BindUniform(target, input, value); err != nil {
			return nil, rg.fail(fmt.Errorf("pass `%s` input `%s`: %w", name, input, err))
		}
		pass.bindings[input] = value
	}
	if len(config.TagStates) > 0 {
		if err := rg.host.SetTagStates(target, config.TagStates); err != nil {
			return nil, rg.fail(fmt.Errorf("pass `%s`: %w", name, err))
		}
	}

	rg.passes[name] = pass
	rg.declared = append(rg.declared, pass)
	rg.edges = append(rg.edges, edges...)
	core.LogDebug("pass `%s` added with sort %d (%d inputs)", name, sortKey, len(pass.bindings))
	return pass, nil
}

func isBuiltinUniform(name string) bool {
	for _, prefix := range builtinUniformPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

/**
 * @brief Freezes the graph. Every uniform a shader declares must be bound
 * and every producer must sort strictly before its consumers.
 */
func (rg *RenderGraphSystem) Assemble() error {
	if rg.assembled {
		return rg.fail(core.ErrGraphAssembled)
	}
	for _, p := range rg.declared {
		for _, uniform := range sortedUniformNames(p.Shader) {
			if isBuiltinUniform(uniform) {
				continue
			}
			if _, ok := p.bindings[uniform]; !ok {
				return rg.fail(fmt.Errorf("%w: `%s` of pass `%s` (%s)", core.ErrUnboundUniform, uniform, p.Name, p.Shader.Pair))
			}
		}
	}
	for _, e := range rg.edges {
		producer, consumer := rg.passes[e.Producer], rg.passes[e.Consumer]
		if producer.Sort >= consumer.Sort {
			return rg.fail(fmt.Errorf("%w: `%s` (%d) feeds `%s` (%d)", core.ErrSortOrder, producer.Name, producer.Sort, consumer.Name, consumer.Sort))
		}
	}

	rg.sorted = append([]*Pass(nil), rg.declared...)
	sort.SliceStable(rg.sorted, func(i, j int) bool {
		if rg.sorted[i].Sort != rg.sorted[j].Sort {
			return rg.sorted[i].Sort < rg.sorted[j].Sort
		}
		return rg.sorted[i].index < rg.sorted[j].index
	})
	rg.presentSort = rg.config.BaseSort
	if n := len(rg.sorted); n > 0 {
		rg.presentSort = rg.sorted[n-1].Sort + 1
	}
	rg.assembled = true
	core.LogInfo("render graph assembled: %d passes, %d edges, present sort %d", len(rg.sorted), len(rg.edges), rg.presentSort)
	return nil
}

func sortedUniformNames(shader *metadata.Shader) []string {
	names := make([]string, 0, len(shader.Uniforms))
	for name := range shader.Uniforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

/**
 * @brief Updates an input of an assembled pass and pushes it to the host.
 * Only inputs bound at assembly can change, and only to a value of the same
 * kind. On error the bindings are left untouched.
 */
func (rg *RenderGraphSystem) SetInput(passName, input string, value metadata.Binding) error {
	if !rg.assembled {
		return core.ErrGraphNotAssembled
	}
	p, ok := rg.passes[passName]
	if !ok {
		return fmt.Errorf("%w: `%s`", core.ErrUnknownPass, passName)
	}
	current, ok := p.bindings[input]
	if !ok {
		return fmt.Errorf("%w: `%s` of pass `%s`", core.ErrUnknownUniform, input, passName)
	}
	if current.Kind != value.Kind {
		return fmt.Errorf("%w: `%s` of pass `%s` is %s, got %s", core.ErrBindingKind, input, passName, current.Kind, value.Kind)
	}
	if value.Kind == metadata.BindingTexture {
		producer, _, err := rg.producerOf(value.Texture)
		if err != nil {
			return fmt.Errorf("pass `%s` input `%s`: %w", passName, input, err)
		}
		if producer != nil && producer.Sort >= p.Sort {
			return fmt.Errorf("%w: `%s` (%d) cannot feed `%s` (%d)", core.ErrSortOrder, producer.Name, producer.Sort, passName, p.Sort)
		}
	}
	if err := rg.host.BindUniform(p.Target, input, value); err != nil {
		return err
	}
	p.bindings[input] = value
	return nil
}

func (rg *RenderGraphSystem) Get(name string) (*Pass, bool) {
	p, ok := rg.passes[name]
	return p, ok
}

// Output returns the texture of a plane of a declared pass.
func (rg *RenderGraphSystem) Output(passName, plane string) (*metadata.TextureHandle, error) {
	p, ok := rg.passes[passName]
	if !ok {
		return nil, fmt.Errorf("%w: `%s`", core.ErrUnknownPass, passName)
	}
	t, ok := p.Output(plane)
	if !ok {
		return nil, fmt.Errorf("%w: plane `%s` of `%s`", core.ErrUnknownTexture, plane, passName)
	}
	return t, nil
}

// Passes returns the passes in execution order once assembled, in
// declaration order before.
func (rg *RenderGraphSystem) Passes() []*Pass {
	if rg.assembled {
		return append([]*Pass(nil), rg.sorted...)
	}
	return append([]*Pass(nil), rg.declared...)
}

func (rg *RenderGraphSystem) Edges() []Edge {
	return append([]Edge(nil), rg.edges...)
}

func (rg *RenderGraphSystem) IsAssembled() bool {
	return rg.assembled
}

// PresentSort is the sort of the on-screen presentation, after every pass.
func (rg *RenderGraphSystem) PresentSort() int {
	return rg.presentSort
}
