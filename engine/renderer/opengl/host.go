package opengl

import (
	"fmt"
	"image"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/google/uuid"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/components"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/scene"
)

type target struct {
	rt        *metadata.RenderTarget
	format    textureFormat
	fbo       uint32
	depth     uint32
	textures  []uint32
	lens      *components.Lens
	program   *program
	bindings  metadata.Inputs
	tagStates []metadata.TagState
}

/**
 * @brief Executes render targets with OpenGL 4.1 core. Every target is a
 * framebuffer with one color attachment per plane and a depth buffer.
 * Needs a current context before Initialize.
 */
type Host struct {
	width, height uint32

	targets  map[string]*target
	programs map[string]*program
	images   map[string]uint32

	quad        *quad
	blitProgram *program

	card      *metadata.TextureHandle
	cardAlpha bool

	overlay      *image.RGBA
	overlayDirty bool
	overlayID    uint32

	// models already reported as having no drawable
	undrawable map[string]bool
}

func New() *Host {
	return &Host{
		targets:  make(map[string]*target),
		programs: make(map[string]*program),
		images:   make(map[string]uint32),

		undrawable: make(map[string]bool),
	}
}

func (h *Host) Initialize(width, height uint32) error {
	if err := gl.Init(); err != nil {
		core.LogError("failed to initialize OpenGL: %s", err)
		return err
	}
	core.LogInfo("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	h.width, h.height = width, height
	h.quad = newQuad()
	blit, err := newProgram(blitVertexSource, blitFragmentSource)
	if err != nil {
		core.LogError("failed to build the card program: %s", err)
		return err
	}
	h.blitProgram = blit
	return nil
}

func (h *Host) Shutdown() error {
	for _, t := range h.targets {
		h.release(t)
	}
	for _, p := range h.programs {
		p.delete()
	}
	for _, id := range h.images {
		id := id
		gl.DeleteTextures(1, &id)
	}
	if h.overlayID != 0 {
		gl.DeleteTextures(1, &h.overlayID)
	}
	if h.blitProgram != nil {
		h.blitProgram.delete()
	}
	if h.quad != nil {
		h.quad.delete()
	}
	h.targets = make(map[string]*target)
	h.programs = make(map[string]*program)
	h.images = make(map[string]uint32)
	return nil
}

func (h *Host) release(t *target) {
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteRenderbuffers(1, &t.depth)
	if len(t.textures) > 0 {
		gl.DeleteTextures(int32(len(t.textures)), &t.textures[0])
	}
}

// Resize reallocates the storage of every target. Texture names are kept so
// the bindings stay valid.
func (h *Host) Resize(width, height uint32) error {
	h.width, h.height = width, height
	for _, t := range h.targets {
		for i, id := range t.textures {
			allocate(id, t.format, width, height)
			t.rt.Planes[i].Width = width
			t.rt.Planes[i].Height = height
		}
		gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	}
	return nil
}

func (h *Host) MakeRenderTarget(config metadata.TextureTargetConfig) (*metadata.RenderTarget, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if _, ok := h.targets[config.Name]; ok {
		return nil, fmt.Errorf("target `%s` already allocated", config.Name)
	}
	f, err := lookupFormat(config.Format)
	if err != nil {
		return nil, err
	}

	t := &target{
		format:   f,
		textures: make([]uint32, len(config.Planes)),
		bindings: metadata.Inputs{},
	}
	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	gl.GenTextures(int32(len(t.textures)), &t.textures[0])
	for i, id := range t.textures {
		allocate(id, f, h.width, h.height)
		gl.BindTexture(gl.TEXTURE_2D, id)
		applySampler(metadata.Sampler{Repeat: metadata.TextureRepeatClampToEdge})
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(i), gl.TEXTURE_2D, id, 0)
	}

	gl.GenRenderbuffers(1, &t.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(h.width), int32(h.height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depth)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		h.release(t)
		return nil, fmt.Errorf("%w: `%s` framebuffer status 0x%x", core.ErrTargetAllocation, config.Name, status)
	}

	rt := &metadata.RenderTarget{
		ID:           uuid.New().String(),
		Config:       config,
		Planes:       make([]*metadata.TextureHandle, len(config.Planes)),
		InternalData: t.fbo,
	}
	for i, p := range config.Planes {
		rt.Planes[i] = &metadata.TextureHandle{
			ID:           uuid.New().String(),
			Name:         p.Name,
			Producer:     config.Name,
			Plane:        i,
			Width:        h.width,
			Height:       h.height,
			Sampler:      metadata.Sampler{Repeat: metadata.TextureRepeatClampToEdge},
			InternalData: t.textures[i],
		}
	}
	t.rt = rt
	h.targets[config.Name] = t
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
	return &metadata.CameraHandle{
		ID:           uuid.New().String(),
		SceneLens:    rt.Config.SceneFed,
		InternalData: lens,
	}, nil
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
	p, err := newProgram(string(shader.VertexSource), string(shader.FragmentSource))
	if err != nil {
		return fmt.Errorf("shader %s: %w", shader.Pair, err)
	}
	h.programs[shader.ID] = p
	shader.InternalData = p.id
	return nil
}

func (h *Host) SetShader(rt *metadata.RenderTarget, shader *metadata.Shader) error {
	t, err := h.lookup(rt)
	if err != nil {
		return err
	}
	p, ok := h.programs[shader.ID]
	if !ok {
		return fmt.Errorf("shader `%s` was not created", shader.Pair)
	}
	t.program = p
	return nil
}

func (h *Host) CreateTexture(texture *metadata.TextureHandle, pixels *image.RGBA) error {
	if pixels == nil {
		return fmt.Errorf("texture `%s` has no pixels", texture.Name)
	}
	if texture.ID == "" {
		texture.ID = uuid.New().String()
	}
	id := h.images[texture.ID]
	uploadRGBA(&id, pixels, false)
	gl.BindTexture(gl.TEXTURE_2D, id)
	applySampler(texture.Sampler)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	h.images[texture.ID] = id
	texture.Width = uint32(pixels.Bounds().Dx())
	texture.Height = uint32(pixels.Bounds().Dy())
	texture.InternalData = id
	return nil
}

func (h *Host) BindUniform(rt *metadata.RenderTarget, name string, value metadata.Binding) error {
	t, err := h.lookup(rt)
	if err != nil {
		return err
	}
	t.bindings[name] = value
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
	if _, ok := textureID(texture); !ok {
		return fmt.Errorf("card texture is not a GL texture")
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
	h.overlayDirty = true
}

func (h *Host) ordered() []*target {
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
	return order
}

// RenderFrame executes the targets in sort order and presents the card, or
// the last target when no card is shown, with the overlay on top.
func (h *Host) RenderFrame(packet *metadata.FramePacket) error {
	if packet != nil && packet.Scene != nil {
		for _, n := range packet.Scene.UndrawableModels() {
			if !h.undrawable[n.Model] {
				h.undrawable[n.Model] = true
				core.LogWarn("model `%s` at node `%s` has no drawable, scene passes will skip it", n.Model, n.Name)
			}
		}
	}
	order := h.ordered()
	w, hgt := int32(h.width), int32(h.height)

	gl.Enable(gl.DEPTH_TEST)
	for _, t := range order {
		gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
		gl.Viewport(0, 0, w, hgt)

		buffers := make([]uint32, len(t.textures))
		for i := range buffers {
			buffers[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
		}
		gl.DrawBuffers(int32(len(buffers)), &buffers[0])
		for i, p := range t.rt.Config.Planes {
			if p.ClearEnabled {
				c := p.ClearColor
				gl.ClearBufferfv(gl.COLOR, int32(i), &c[0])
			}
		}
		gl.Clear(gl.DEPTH_BUFFER_BIT)

		if t.program == nil {
			continue
		}
		gl.UseProgram(t.program.id)
		if t.rt.Config.SceneFed {
			h.drawScene(t, packet)
			continue
		}
		projection := math.NewMat4Identity()
		if t.lens != nil {
			projection = t.lens.ProjectionMatrix()
		}
		t.program.setMat4("p3d_ProjectionMatrix", projection)
		t.program.setMat4("p3d_ModelViewProjectionMatrix", projection)
		t.program.apply(t.bindings)
		gl.Disable(gl.DEPTH_TEST)
		h.quad.draw()
		gl.Enable(gl.DEPTH_TEST)
	}
	gl.Disable(gl.DEPTH_TEST)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, w, hgt)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	switch {
	case h.card != nil:
		id, _ := textureID(h.card)
		h.blit(id, h.cardAlpha)
	case len(order) > 0:
		h.blit(order[len(order)-1].textures[0], false)
	}

	if h.overlayDirty {
		if h.overlay != nil {
			uploadRGBA(&h.overlayID, h.overlay, true)
		}
		h.overlayDirty = false
	}
	if h.overlay != nil && h.overlayID != 0 {
		h.blit(h.overlayID, true)
	}

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", e)
	}
	return nil
}

/**
 * @brief Draws the visible nodes of the scene. Only nodes carrying a host
 * drawable produce geometry. Tag state overrides replace the pass inputs
 * for the nodes they match.
 */
func (h *Host) drawScene(t *target, packet *metadata.FramePacket) {
	if packet == nil || packet.Scene == nil {
		return
	}
	projection := packet.Projection
	t.program.setMat4("p3d_ProjectionMatrix", projection)
	t.program.setMat4("p3d_ViewMatrix", packet.View)

	packet.Scene.Root.Walk(func(n *scene.Node) bool {
		if !n.VisibleTo(t.rt.Config.CameraMask) {
			return false
		}
		d, ok := n.InternalData.(Drawable)
		if !ok {
			return true
		}
		inputs := t.bindings
		for _, ts := range t.tagStates {
			if ts.When.Matches(n.Tags) {
				inputs = inputs.Clone()
				for k, v := range ts.Overrides {
					inputs[k] = v
				}
				break
			}
		}
		modelView := packet.View.Mul4(n.WorldTransform())
		t.program.setMat4("p3d_ModelViewMatrix", modelView)
		t.program.setMat4("p3d_ModelViewProjectionMatrix", projection.Mul4(modelView))
		t.program.apply(inputs)
		d.Draw()
		return true
	})
}

/** @brief Geometry the host can draw for a scene node. */
type Drawable interface {
	Draw()
}
