package headless

import (
	"fmt"
	"image"
	"sort"

	"github.com/google/uuid"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/components"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/scene"
)

type target struct {
	rt        *metadata.RenderTarget
	camera    *metadata.CameraHandle
	lens      *components.Lens
	shader    *metadata.Shader
	bindings  metadata.Inputs
	tagStates []metadata.TagState
	bindCount map[string]int
}

/**
 * @brief A host that draws nothing. It records every call so the render
 * graph and the frame loop can run without a GPU.
 */
type Host struct {
	width, height uint32

	targets  map[string]*target
	shaders  map[string]*metadata.Shader
	textures map[string]*image.RGBA

	card      *metadata.TextureHandle
	cardAlpha bool
	overlay   *image.RGBA

	frames    int
	lastOrder []string
	// target name -> node name -> tag state name
	lastStates map[string]map[string]string

	/** @brief Makes MakeRenderTarget fail, to exercise allocation errors. */
	FailAllocation bool
}

func New() *Host {
	return &Host{
		targets:    make(map[string]*target),
		shaders:    make(map[string]*metadata.Shader),
		textures:   make(map[string]*image.RGBA),
		lastStates: make(map[string]map[string]string),
	}
}

func (h *Host) Initialize(width, height uint32) error {
	h.width, h.height = width, height
	core.LogDebug("headless host initialized %dx%d", width, height)
	return nil
}

func (h *Host) Shutdown() error {
	h.targets = make(map[string]*target)
	h.shaders = make(map[string]*metadata.Shader)
	h.textures = make(map[string]*image.RGBA)
	h.card = nil
	h.overlay = nil
	return nil
}

func (h *Host) Resize(width, height uint32) error {
	h.width, h.height = width, height
	return nil
}

func (h *Host) Size() (uint32, uint32) {
	return h.width, h.height
}

func (h *Host) MakeRenderTarget(config metadata.TextureTargetConfig) (*metadata.RenderTarget, error) {
	if h.FailAllocation {
		return nil, fmt.Errorf("%w: `%s`", core.ErrTargetAllocation, config.Name)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if _, ok := h.targets[config.Name]; ok {
		return nil, fmt.Errorf("target `%s` already allocated", config.Name)
	}
	rt := &metadata.RenderTarget{
		ID:     uuid.New().String(),
		Config: config,
		Planes: make([]*metadata.TextureHandle, len(config.Planes)),
	}
	for i, p := range config.Planes {
		rt.Planes[i] = &metadata.TextureHandle{
			ID:       uuid.New().String(),
			Name:     p.Name,
			Producer: config.Name,
			Plane:    i,
			Width:    h.width,
			Height:   h.height,
		}
	}
	h.targets[config.Name] = &target{
		rt:        rt,
		bindings:  metadata.Inputs{},
		bindCount: map[string]int{},
	}
	return rt, nil
}

func (h *Host) lookup(rt *metadata.RenderTarget) (*target, error) {
	if rt == nil {
		return nil, fmt.Errorf("nil render target")
	}
	t, ok := h.targets[rt.Config.Name]
	if !ok || t.rt != rt {
		return nil, fmt.Errorf("render target `%s` is not owned by this host", rt.Config.Name)
	}
	return t, nil
}

func (h *Host) AttachCamera(rt *metadata.RenderTarget, lens *components.Lens) (*metadata.CameraHandle, error) {
	t, err := h.lookup(rt)
	if err != nil {
		return nil, err
	}
	t.lens = lens
	t.camera = &metadata.CameraHandle{
		ID:        uuid.New().String(),
		SceneLens: rt.Config.SceneFed,
	}
	return t.camera, nil
}

func (h *Host) SetSort(rt *metadata.RenderTarget, sort int) error {
	t, err := h.lookup(rt)
	if err != nil {
		return err
	}
	t.rt.Sort = sort
	return nil
}

func (h *Host) CreateShader(shader *metadata.Shader) error {
	if shader.ID == "" {
		shader.ID = uuid.New().String()
	}
	h.shaders[shader.ID] = shader
	return nil
}

func (h *Host) SetShader(rt *metadata.RenderTarget, shader *metadata.Shader) error {
	t, err := h.lookup(rt)
	if err != nil {
		return err
	}
	if _, ok := h.shaders[shader.ID]; !ok {
		return fmt.Errorf("shader `%s` was not created", shader.Pair)
	}
	t.shader = shader
	return nil
}

func (h *Host) CreateTexture(texture *metadata.TextureHandle, pixels *image.RGBA) error {
	if texture.ID == "" {
		texture.ID = uuid.New().String()
	}
	if pixels != nil {
		texture.Width = uint32(pixels.Bounds().Dx())
		texture.Height = uint32(pixels.Bounds().Dy())
	}
	h.textures[texture.ID] = pixels
	return nil
}

func (h *Host) BindUniform(rt *metadata.RenderTarget, name string, value metadata.Binding) error {
	t, err := h.lookup(rt)
	if err != nil {
		return err
	}
	t.bindings[name] = value
	t.bindCount[name]++
	return nil
}

func (h *Host) SetTagStates(rt *metadata.RenderTarget, states []metadata.TagState) error {
	t, err := h.lookup(rt)
	if err != nil {
		return err
	}
	t.tagStates = states
	return nil
}

func (h *Host) ShowCard(texture *metadata.TextureHandle, alpha bool) error {
	if texture == nil {
		return fmt.Errorf("nil card texture")
	}
	h.card = texture
	h.cardAlpha = alpha
	return nil
}

func (h *Host) HideCard() {
	h.card = nil
	h.cardAlpha = false
}

func (h *Host) SetOverlay(overlay *image.RGBA) {
	h.overlay = overlay
}

// RenderFrame walks the targets in sort order and resolves the tag state
// of every visible node of the scene-fed ones.
func (h *Host) RenderFrame(packet *metadata.FramePacket) error {
	order := make([]*target, 0, len(h.targets))
	for _, t := range h.targets {
		order = append(order, t)
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].rt.Sort != order[j].rt.Sort {
			return order[i].rt.Sort < order[j].rt.Sort
		}
		return order[i].rt.Config.Name < order[j].rt.Config.Name
	})

	h.lastOrder = h.lastOrder[:0]
	h.lastStates = make(map[string]map[string]string)
	for _, t := range order {
		name := t.rt.Config.Name
		h.lastOrder = append(h.lastOrder, name)
		if !t.rt.Config.SceneFed || packet == nil || packet.Scene == nil {
			continue
		}
		states := map[string]string{}
		packet.Scene.Root.Walk(func(n *scene.Node) bool {
			if !n.VisibleTo(t.rt.Config.CameraMask) {
				return false
			}
			for _, ts := range t.tagStates {
				if ts.When.Matches(n.Tags) {
					states[n.Name] = ts.Name
					break
				}
			}
			return true
		})
		h.lastStates[name] = states
	}
	h.frames++
	return nil
}

// Frames is the number of rendered frames.
func (h *Host) Frames() int {
	return h.frames
}

// ExecutionOrder is the target order of the last frame.
func (h *Host) ExecutionOrder() []string {
	return append([]string(nil), h.lastOrder...)
}

// TagStatesApplied returns node name -> tag state name for a target in the
// last frame.
func (h *Host) TagStatesApplied(targetName string) map[string]string {
	return h.lastStates[targetName]
}

// Bindings returns a copy of the values bound on the named target.
func (h *Host) Bindings(targetName string) metadata.Inputs {
	t, ok := h.targets[targetName]
	if !ok {
		return nil
	}
	return t.bindings.Clone()
}

// BindCount is the number of times name was bound on the target.
func (h *Host) BindCount(targetName, name string) int {
	t, ok := h.targets[targetName]
	if !ok {
		return 0
	}
	return t.bindCount[name]
}

func (h *Host) Target(name string) (*metadata.RenderTarget, bool) {
	t, ok := h.targets[name]
	if !ok {
		return nil, false
	}
	return t.rt, true
}

func (h *Host) Camera(targetName string) (*metadata.CameraHandle, *components.Lens) {
	t, ok := h.targets[targetName]
	if !ok {
		return nil, nil
	}
	return t.camera, t.lens
}

func (h *Host) ShaderOf(targetName string) *metadata.Shader {
	t, ok := h.targets[targetName]
	if !ok {
		return nil
	}
	return t.shader
}

// Card returns the texture shown full-screen and whether it blends.
func (h *Host) Card() (*metadata.TextureHandle, bool) {
	return h.card, h.cardAlpha
}

func (h *Host) Overlay() *image.RGBA {
	return h.overlay
}

func (h *Host) TextureCount() int {
	return len(h.textures)
}
