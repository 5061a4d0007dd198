package components

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

/**
 * @brief Represents a camera that looks at a target point. Ideally,
 * these are created and managed by the camera system.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/** @brief The point the camera looks at. */
	Target math.Vec3
	/** @brief The lens shared by every pass rendering the scene. */
	Lens *Lens
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The world to view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix math.Mat4
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

func NewCamera(lens *Lens) *Camera {
	camera := &Camera{Lens: lens}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.Position = math.NewVec3(0, -1, 0)
	c.Target = math.NewVec3Zero()
	c.IsDirty = true
	c.ViewMatrix = math.NewMat4Identity()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

// LookAt points the camera at target, keeping world Z up.
func (c *Camera) LookAt(target math.Vec3) {
	c.Target = target
	c.IsDirty = true
}

// GetView returns the world to view matrix.
func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		c.ViewMatrix = math.NewMat4LookAt(c.Position, c.Target, math.NewVec3Up())
		c.IsDirty = false
	}
	return c.ViewMatrix
}

// GetViewWorld returns the camera transform, the inverse of the view matrix.
func (c *Camera) GetViewWorld() math.Mat4 {
	return c.GetView().Inv()
}

// Forward is the unit viewing direction in world space.
func (c *Camera) Forward() math.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() == 0 {
		return math.NewVec3(0, 1, 0)
	}
	return d.Normalize()
}

// Up is the camera's up direction in world space.
func (c *Camera) Up() math.Vec3 {
	forward := c.Forward()
	right := forward.Cross(math.NewVec3Up())
	if right.Len() == 0 {
		return math.NewVec3(0, 1, 0)
	}
	return right.Normalize().Cross(forward)
}

// RelativePoint expresses a world point in the camera's view space.
func (c *Camera) RelativePoint(world math.Vec3) math.Vec3 {
	return math.TransformPoint(c.GetView(), world)
}
