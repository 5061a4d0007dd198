package components

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

const (
	ORBIT_PHI_MIN float32 = 1
	ORBIT_PHI_MAX float32 = 179
	// Default radius margins from the lens near and far planes.
	ORBIT_NEAR_MARGIN float32 = 5
	ORBIT_FAR_MARGIN  float32 = 10
)

/**
 * @brief Spherical camera placement around a look-at point. Angles are in
 * degrees, phi measured from world up, theta around it.
 */
type CameraOrbit struct {
	Radius float32
	Phi    float32
	Theta  float32
	LookAt math.Vec3

	near       float32
	far        float32
	nearMargin float32
	farMargin  float32

	initialRadius float32
	initialPhi    float32
	initialTheta  float32
	initialLookAt math.Vec3
}

func NewCameraOrbit(radius, phi, theta float32, lookAt math.Vec3, lens *Lens) *CameraOrbit {
	co := &CameraOrbit{
		Radius:        radius,
		Phi:           phi,
		Theta:         theta,
		LookAt:        lookAt,
		near:          lens.Near,
		far:           lens.Far,
		nearMargin:    ORBIT_NEAR_MARGIN,
		farMargin:     ORBIT_FAR_MARGIN,
		initialRadius: radius,
		initialPhi:    phi,
		initialTheta:  theta,
		initialLookAt: lookAt,
	}
	co.Clamp()
	return co
}

// Clamp restores the orbit bounds: phi in [1, 179], theta in [0, 360] and
// the radius between the lens planes.
func (co *CameraOrbit) Clamp() {
	co.Phi = math.Clamp(co.Phi, ORBIT_PHI_MIN, ORBIT_PHI_MAX)
	for co.Theta > 360 {
		co.Theta -= 360
	}
	for co.Theta < 0 {
		co.Theta += 360
	}
	co.Radius = math.Clamp(co.Radius, co.near+co.nearMargin, co.far-co.farMargin)
}

// SetRadiusMargins changes how close the radius may get to the lens planes.
func (co *CameraOrbit) SetRadiusMargins(near, far float32) {
	co.nearMargin = near
	co.farMargin = far
	co.Clamp()
}

// Rotate adds to the angles and zoom, then clamps.
func (co *CameraOrbit) Rotate(deltaPhi, deltaTheta, deltaRadius float32) {
	co.Phi += deltaPhi
	co.Theta += deltaTheta
	co.Radius += deltaRadius
	co.Clamp()
}

// Pan moves the look-at point. upDown slides along the view direction
// projected by phi, leftRight slides sideways.
func (co *CameraOrbit) Pan(upDown, leftRight float32) {
	co.LookAt[0] += upDown * math.SinDeg(-co.Theta-90) * math.CosDeg(co.Phi)
	co.LookAt[1] += upDown * math.CosDeg(-co.Theta-90) * math.CosDeg(co.Phi)
	co.LookAt[2] -= -upDown * math.SinDeg(co.Phi)
	co.LookAt[0] += leftRight * math.SinDeg(-co.Theta)
	co.LookAt[1] += leftRight * math.CosDeg(-co.Theta)
}

// Position returns the camera position in world space.
func (co *CameraOrbit) Position() math.Vec3 {
	return math.SphericalToCartesian(co.Radius, co.Phi, co.Theta).Add(co.LookAt)
}

// Apply places the camera on the orbit, looking at the look-at point.
func (co *CameraOrbit) Apply(camera *Camera) {
	camera.SetPosition(co.Position())
	camera.LookAt(co.LookAt)
}

// Reset restores the values the orbit was created with.
func (co *CameraOrbit) Reset() {
	co.Radius = co.initialRadius
	co.Phi = co.initialPhi
	co.Theta = co.initialTheta
	co.LookAt = co.initialLookAt
	co.Clamp()
}
