package renderer

import (
	"fmt"
	"strings"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/headless"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/opengl"
)

type RendererType uint8

const (
	OpenGL RendererType = iota
	Headless
)

func (rt RendererType) String() string {
	switch rt {
	case OpenGL:
		return "opengl"
	case Headless:
		return "headless"
	}
	return "unknown"
}

func ParseRendererType(value string) (RendererType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "opengl", "gl":
		return OpenGL, nil
	case "headless":
		return Headless, nil
	}
	return OpenGL, fmt.Errorf("unknown renderer backend `%s`", value)
}

// NewHost creates the host of the given type. The OpenGL host needs a
// current context before Initialize.
func NewHost(rt RendererType) Host {
	switch rt {
	case Headless:
		return headless.New()
	default:
		return opengl.New()
	}
}

/**
 * @brief The renderer frontend. Wraps a host and draws frames.
 */
type Renderer struct {
	host  Host
	frame uint64
}

func New(host Host) *Renderer {
	return &Renderer{host: host}
}

func (r *Renderer) Host() Host {
	return r.host
}

func (r *Renderer) Initialize(width, height uint32) error {
	return r.host.Initialize(width, height)
}

func (r *Renderer) Shutdown() error {
	return r.host.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	return r.host.Resize(width, height)
}

func (r *Renderer) DrawFrame(packet *metadata.FramePacket) error {
	if err := r.host.RenderFrame(packet); err != nil {
		core.LogError("failed to draw frame %d: %s", r.frame, err)
		return err
	}
	r.frame++
	return nil
}

// FrameNumber is the count of frames drawn so far.
func (r *Renderer) FrameNumber() uint64 {
	return r.frame
}
