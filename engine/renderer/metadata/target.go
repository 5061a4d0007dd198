package metadata

/**
 * @brief An allocated texture target. Planes holds one texture per
 * configured plane.
 */
type RenderTarget struct {
	/** @brief The unique target identifier. */
	ID     string
	Config TextureTargetConfig
	Planes []*TextureHandle
	/** @brief The sort key the host executes the target with. */
	Sort int
	/** @brief A pointer to internal, host-specific data. */
	InternalData interface{}
}

// Plane returns the texture of the named plane.
func (rt *RenderTarget) Plane(name string) (*TextureHandle, bool) {
	for i, p := range rt.Config.Planes {
		if p.Name == name {
			return rt.Planes[i], true
		}
	}
	return nil, false
}

/** @brief Identifies a camera the host attached to a target. */
type CameraHandle struct {
	ID string
	/** @brief Whether the camera shares the main lens. */
	SceneLens bool
	/** @brief A pointer to internal, host-specific data. */
	InternalData interface{}
}
