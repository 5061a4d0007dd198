package math

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

const (
	K_PI       float32 = stdmath.Pi
	K_DEG2RAD  float32 = K_PI / 180.0
	K_RAD2DEG  float32 = 180.0 / K_PI
	K_EPSILON  float32 = 1.192092896e-07
	K_INFINITY float32 = 1e30
)

func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD
}

func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG
}

func Sin(x float32) float32 {
	return float32(stdmath.Sin(float64(x)))
}

func Cos(x float32) float32 {
	return float32(stdmath.Cos(float64(x)))
}

func Pow(x, y float32) float32 {
	return float32(stdmath.Pow(float64(x), float64(y)))
}

// SinDeg and CosDeg take their angle in degrees.
func SinDeg(degrees float32) float32 {
	return Sin(DegToRad(degrees))
}

func CosDeg(degrees float32) float32 {
	return Cos(DegToRad(degrees))
}

// Lerp mixes a and b, t = 0 giving a.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// MixVec3 mixes two colors or points component wise.
func MixVec3(a, b Vec3, t float32) Vec3 {
	return Vec3{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}

func MixVec4(a, b Vec4, t float32) Vec4 {
	return Vec4{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t), Lerp(a[3], b[3], t)}
}

// WrapDegrees brings an angle that left [0, 360] by less than one turn back
// into range by a single +-360 step.
func WrapDegrees(degrees float32) float32 {
	if degrees > 360 {
		return degrees - 360
	}
	if degrees < 0 {
		return degrees + 360
	}
	return degrees
}

// SphericalToCartesian converts a (radius, phi, theta) triple in degrees
// around a Z-up origin.
func SphericalToCartesian(radius, phi, theta float32) Vec3 {
	return Vec3{
		radius * SinDeg(phi) * CosDeg(theta),
		radius * SinDeg(phi) * SinDeg(theta),
		radius * CosDeg(phi),
	}
}

// NewMat4Perspective builds a right handed projection. fov is the vertical
// field of view in degrees.
func NewMat4Perspective(fovDegrees, aspectRatio, near, far float32) Mat4 {
	return mgl32.Perspective(DegToRad(fovDegrees), aspectRatio, near, far)
}

func NewMat4Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	return mgl32.Ortho(left, right, bottom, top, near, far)
}

// NewMat4LookAt returns the world to view matrix of an eye looking at target.
func NewMat4LookAt(eye, target, up Vec3) Mat4 {
	return mgl32.LookAtV(eye, target, up)
}

func NewMat4Translation(position Vec3) Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2])
}

// TransformPoint applies m to p with w = 1.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// NewMat4RotationX and friends take their angle in degrees.
func NewMat4RotationX(degrees float32) Mat4 {
	return mgl32.HomogRotate3DX(DegToRad(degrees))
}

func NewMat4RotationY(degrees float32) Mat4 {
	return mgl32.HomogRotate3DY(DegToRad(degrees))
}

func NewMat4RotationZ(degrees float32) Mat4 {
	return mgl32.HomogRotate3DZ(DegToRad(degrees))
}

func NewMat4Scale(scale Vec3) Mat4 {
	return mgl32.Scale3D(scale[0], scale[1], scale[2])
}

// Clamp limits f to [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	return min(max(f, low), high)
}
