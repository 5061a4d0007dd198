package math

import "github.com/go-gl/mathgl/mgl32"

// Vec2 represents a 2D vector
type Vec2 = mgl32.Vec2

// Vec3 represents a 3D vector
type Vec3 = mgl32.Vec3

// Vec4 represents a 4D vector, also used for RGBA colors.
type Vec4 = mgl32.Vec4

/** @brief a 4x4 column major matrix, typically used to represent object transformations. */
type Mat4 = mgl32.Mat4

func NewVec2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// NewVec2Splat replicates v into both components.
func NewVec2Splat(v float32) Vec2 {
	return Vec2{v, v}
}

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func NewVec3Zero() Vec3 {
	return Vec3{}
}

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

func NewMat4Identity() Mat4 {
	return mgl32.Ident4()
}

// NewVec3Up is the world up axis. The scene is Z-up.
func NewVec3Up() Vec3 {
	return Vec3{0, 0, 1}
}
