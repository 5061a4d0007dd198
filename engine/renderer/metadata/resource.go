package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown or unsupported file. */
	ResourceTypeNone ResourceType = iota
	/** @brief GLSL shader source, vertex or fragment stage. */
	ResourceTypeShader
	/** @brief Image resource type (png, jpeg). */
	ResourceTypeImage
	/** @brief Bitmap font resource type (AngelCode .fnt). */
	ResourceTypeBitmapFont
	/** @brief TrueType or OpenType font resource type. */
	ResourceTypeFont
	/** @brief Streamed sound resource type. */
	ResourceTypeSound
	/** @brief Model resource type. Handed to the scene host as is. */
	ResourceTypeModel
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeBitmapFont:
		return "bitmap_font"
	case ResourceTypeFont:
		return "font"
	case ResourceTypeSound:
		return "sound"
	case ResourceTypeModel:
		return "model"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource, relative to the asset root. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type. */
	Type ResourceType
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}
