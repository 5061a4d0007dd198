package assets

import "github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"

/**
 * @brief Reads one kind of asset from disk. params carries loader specific
 * options, e.g. *loaders.ImageResourceParams, and may be nil.
 */
type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
