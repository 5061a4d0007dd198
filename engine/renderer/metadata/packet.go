package metadata

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/scene"
)

/**
 * @brief Everything the host needs to draw one frame.
 */
type FramePacket struct {
	/** @brief The elapsed time since the last frame in seconds. */
	DeltaTime float64
	/** @brief The scene drawn by scene-fed targets. */
	Scene *scene.Scene
	/** @brief The main camera world to view matrix. */
	View math.Mat4
	/** @brief The main lens projection. */
	Projection math.Mat4
}
