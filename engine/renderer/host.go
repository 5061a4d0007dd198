package renderer

import (
	"image"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/components"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

/**
 * @brief The scene host: allocates off-screen targets, owns the GPU
 * programs and textures, and executes targets in sort order every frame.
 */
type Host interface {
	Initialize(width, height uint32) error
	Shutdown() error
	Resize(width, height uint32) error

	/**
	 * @brief Allocates a window sized target with one texture per plane.
	 * Fails with ErrTargetAllocation when the GPU refuses it.
	 */
	MakeRenderTarget(config metadata.TextureTargetConfig) (*metadata.RenderTarget, error)
	/**
	 * @brief Attaches a camera to the target. Scene-fed targets share the
	 * given lens, quad targets get it as their orthographic quad lens.
	 */
	AttachCamera(target *metadata.RenderTarget, lens *components.Lens) (*metadata.CameraHandle, error)
	SetSort(target *metadata.RenderTarget, sort int) error

	CreateShader(shader *metadata.Shader) error
	SetShader(target *metadata.RenderTarget, shader *metadata.Shader) error
	/** @brief Uploads pixels into an image texture. */
	CreateTexture(texture *metadata.TextureHandle, pixels *image.RGBA) error
	BindUniform(target *metadata.RenderTarget, name string, value metadata.Binding) error
	SetTagStates(target *metadata.RenderTarget, states []metadata.TagState) error

	/** @brief Presents texture full-screen instead of the final pass output. */
	ShowCard(texture *metadata.TextureHandle, alpha bool) error
	HideCard()
	/** @brief Sets the 2D overlay drawn over the card, nil clears it. */
	SetOverlay(overlay *image.RGBA)

	RenderFrame(packet *metadata.FramePacket) error
}
