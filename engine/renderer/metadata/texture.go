package metadata

import (
	"fmt"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

/** @brief The maximum number of auxiliary planes a texture target can carry. */
const MaxAuxPlanes = 4

/**
 * @brief The color format of a texture target. Bits is the per channel
 * depth and Float selects floating point storage.
 */
type ColorFormat struct {
	Bits  uint8
	Float bool
}

var (
	/** @brief 8 bit normalized integer channels. */
	FormatRGBA8 = ColorFormat{Bits: 8}
	/** @brief 16 bit normalized integer channels. */
	FormatRGBA16 = ColorFormat{Bits: 16}
	/** @brief 16 bit floating point channels. */
	FormatRGBA16F = ColorFormat{Bits: 16, Float: true}
	/** @brief 32 bit floating point channels. */
	FormatRGBA32F = ColorFormat{Bits: 32, Float: true}
)

// Validate rejects bit depth and float combinations no host can allocate.
func (cf ColorFormat) Validate() error {
	switch cf {
	case FormatRGBA8, FormatRGBA16, FormatRGBA16F, FormatRGBA32F:
		return nil
	}
	return fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, cf)
}

func (cf ColorFormat) String() string {
	if cf.Float {
		return fmt.Sprintf("rgba%df", cf.Bits)
	}
	return fmt.Sprintf("rgba%d", cf.Bits)
}

/**
 * @brief One color plane of a texture target. Plane 0 is the primary
 * color output, the others are auxiliary outputs.
 */
type PlaneConfig struct {
	/** @brief The output name other passes use to refer to this plane. */
	Name string
	/** @brief Whether the plane is cleared before the pass draws. */
	ClearEnabled bool
	/** @brief The clear color used when ClearEnabled is set. */
	ClearColor math.Vec4
}

/**
 * @brief Describes an off-screen color target.
 */
type TextureTargetConfig struct {
	/** @brief The unique target name. */
	Name string
	/** @brief The channel format shared by all planes. */
	Format ColorFormat
	/** @brief The color planes, the first being the primary one. */
	Planes []PlaneConfig
	/**
	 * @brief When set the target renders the scene through a camera sharing the
	 * main lens, otherwise it renders a full-screen quad.
	 */
	SceneFed bool
	/**
	 * @brief Camera mask bits of the scene camera. Nodes hidden from any of
	 * these bits are not drawn. Ignored for quad targets.
	 */
	CameraMask uint32
}

// AuxPlanes returns the number of auxiliary planes.
func (c *TextureTargetConfig) AuxPlanes() int {
	if len(c.Planes) == 0 {
		return 0
	}
	return len(c.Planes) - 1
}

func (c *TextureTargetConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("texture target name is required")
	}
	if len(c.Planes) == 0 {
		return fmt.Errorf("texture target `%s` needs at least one plane", c.Name)
	}
	if c.AuxPlanes() > MaxAuxPlanes {
		return fmt.Errorf("texture target `%s` has %d aux planes, the maximum is %d", c.Name, c.AuxPlanes(), MaxAuxPlanes)
	}
	if err := c.Format.Validate(); err != nil {
		return fmt.Errorf("texture target `%s`: %w", c.Name, err)
	}
	seen := make(map[string]bool, len(c.Planes))
	for _, p := range c.Planes {
		if p.Name == "" {
			return fmt.Errorf("texture target `%s` has an unnamed plane", c.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("texture target `%s` has duplicate plane `%s`", c.Name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = iota
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest
)

type TextureRepeat int

const (
	TextureRepeatRepeat TextureRepeat = iota
	TextureRepeatClampToEdge
)

/** @brief Sampling state of a texture. */
type Sampler struct {
	Filter TextureFilter
	Repeat TextureRepeat
}

/**
 * @brief A texture a pass can read. Either a plane of a render target or
 * an image loaded from disk.
 */
type TextureHandle struct {
	/** @brief The unique texture identifier. */
	ID string
	/** @brief The output or image name. */
	Name string
	/** @brief The pass producing the texture. Empty for images. */
	Producer string
	/** @brief The plane index within the producer. */
	Plane int
	/** @brief The texture Width. Zero for window sized targets. */
	Width uint32
	/** @brief The texture Height. Zero for window sized targets. */
	Height uint32
	/** @brief Sampling state. */
	Sampler Sampler
	/** @brief A pointer to internal, host-specific data. */
	InternalData interface{}
}

// IsImage reports whether the texture was loaded rather than rendered.
func (th *TextureHandle) IsImage() bool {
	return th.Producer == ""
}
