package metadata

import (
	"fmt"
	"sort"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

/** @brief The kinds of values a shader input can hold. */
type BindingKind uint8

const (
	BindingTexture BindingKind = iota
	BindingScalar
	BindingVec2
	BindingVec3
	BindingVec3Array
	BindingVec4
	BindingMat4
)

func (bk BindingKind) String() string {
	switch bk {
	case BindingTexture:
		return "texture"
	case BindingScalar:
		return "scalar"
	case BindingVec2:
		return "vec2"
	case BindingVec3:
		return "vec3"
	case BindingVec3Array:
		return "vec3[]"
	case BindingVec4:
		return "vec4"
	case BindingMat4:
		return "mat4"
	default:
		return "unknown"
	}
}

/**
 * @brief A value bound to a named shader input. Only the field matching
 * Kind is meaningful.
 */
type Binding struct {
	Kind    BindingKind
	Texture *TextureHandle
	Scalar  float32
	Vec2    math.Vec2
	Vec3    math.Vec3
	Vec3s   []math.Vec3
	Vec4    math.Vec4
	Mat4    math.Mat4
}

func TextureInput(t *TextureHandle) Binding {
	return Binding{Kind: BindingTexture, Texture: t}
}

func ScalarInput(v float32) Binding {
	return Binding{Kind: BindingScalar, Scalar: v}
}

func Vec2Input(x, y float32) Binding {
	return Binding{Kind: BindingVec2, Vec2: math.Vec2{x, y}}
}

func Vec3Input(v math.Vec3) Binding {
	return Binding{Kind: BindingVec3, Vec3: v}
}

func Vec3ArrayInput(values []math.Vec3) Binding {
	return Binding{Kind: BindingVec3Array, Vec3s: values}
}

func Vec4Input(v math.Vec4) Binding {
	return Binding{Kind: BindingVec4, Vec4: v}
}

func Mat4Input(m math.Mat4) Binding {
	return Binding{Kind: BindingMat4, Mat4: m}
}

// ToggleInput encodes a flag as the replicated vec2 shaders expect.
func ToggleInput(enabled bool) Binding {
	if enabled {
		return Vec2Input(1, 1)
	}
	return Vec2Input(0, 0)
}

// Equal compares two bindings by kind and value. Textures compare by identity.
func (b Binding) Equal(other Binding) bool {
	if b.Kind != other.Kind {
		return false
	}
	switch b.Kind {
	case BindingTexture:
		return b.Texture == other.Texture
	case BindingScalar:
		return b.Scalar == other.Scalar
	case BindingVec2:
		return b.Vec2 == other.Vec2
	case BindingVec3:
		return b.Vec3 == other.Vec3
	case BindingVec4:
		return b.Vec4 == other.Vec4
	case BindingMat4:
		return b.Mat4 == other.Mat4
	case BindingVec3Array:
		if len(b.Vec3s) != len(other.Vec3s) {
			return false
		}
		for i := range b.Vec3s {
			if b.Vec3s[i] != other.Vec3s[i] {
				return false
			}
		}
		return true
	}
	return false
}

func (b Binding) String() string {
	switch b.Kind {
	case BindingTexture:
		if b.Texture == nil {
			return "texture(nil)"
		}
		return fmt.Sprintf("texture(%s)", b.Texture.Name)
	case BindingScalar:
		return fmt.Sprintf("scalar(%g)", b.Scalar)
	case BindingVec2:
		return fmt.Sprintf("vec2%v", b.Vec2)
	case BindingVec3:
		return fmt.Sprintf("vec3%v", b.Vec3)
	case BindingVec4:
		return fmt.Sprintf("vec4%v", b.Vec4)
	case BindingMat4:
		return "mat4"
	case BindingVec3Array:
		return fmt.Sprintf("vec3[%d]", len(b.Vec3s))
	}
	return "unknown"
}

/** @brief A named set of shader input values. */
type Inputs map[string]Binding

// Names returns the input names in lexical order.
func (in Inputs) Names() []string {
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Textures returns every texture referenced by the set.
func (in Inputs) Textures() []*TextureHandle {
	var textures []*TextureHandle
	for _, name := range in.Names() {
		b := in[name]
		if b.Kind == BindingTexture && b.Texture != nil {
			textures = append(textures, b.Texture)
		}
	}
	return textures
}

// Clone returns a shallow copy of the set.
func (in Inputs) Clone() Inputs {
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
