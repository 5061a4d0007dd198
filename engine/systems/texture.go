package systems

import (
	"fmt"
	"image"

	"github.com/google/uuid"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/assets"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/assets/loaders"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

/** @brief Resolves an image asset to an uploaded texture. */
type TextureProvider interface {
	Acquire(name string, sampler metadata.Sampler) (*metadata.TextureHandle, error)
}

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

type textureKey struct {
	name    string
	sampler metadata.Sampler
}

type TextureSystem struct {
	Config *TextureSystemConfig
	// Hashtable for texture lookups.
	RegisteredTextureTable map[textureKey]*metadata.TextureHandle
	// sub systems
	assetManager *assets.AssetManager
	host         renderer.Host
}

func NewTextureSystem(config *TextureSystemConfig, am *assets.AssetManager, host renderer.Host) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &TextureSystem{
		Config:                 config,
		RegisteredTextureTable: make(map[textureKey]*metadata.TextureHandle),
		assetManager:           am,
		host:                   host,
	}, nil
}

func (ts *TextureSystem) Shutdown() error {
	ts.RegisteredTextureTable = make(map[textureKey]*metadata.TextureHandle)
	return nil
}

/**
 * @brief Loads the named image and uploads it with the given sampler. The
 * same image may be acquired with different samplers, each gets its own
 * texture.
 */
func (ts *TextureSystem) Acquire(name string, sampler metadata.Sampler) (*metadata.TextureHandle, error) {
	key := textureKey{name: name, sampler: sampler}
	if t, ok := ts.RegisteredTextureTable[key]; ok {
		return t, nil
	}
	if uint32(len(ts.RegisteredTextureTable)) >= ts.Config.MaxTextureCount {
		err := fmt.Errorf("texture system is full, cannot load `%s`", name)
		core.LogError(err.Error())
		return nil, err
	}

	res, err := ts.assetManager.LoadAsset(name, metadata.ResourceTypeImage, &loaders.ImageResourceParams{FlipY: true})
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	pixels, ok := res.Data.(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("image `%s` did not decode to RGBA", name)
	}

	t := &metadata.TextureHandle{
		ID:      uuid.New().String(),
		Name:    name,
		Sampler: sampler,
	}
	if err := ts.host.CreateTexture(t, pixels); err != nil {
		err = fmt.Errorf("failed to upload texture `%s`: %w", name, err)
		core.LogError(err.Error())
		return nil, err
	}
	_ = ts.assetManager.UnloadAsset(res)

	ts.RegisteredTextureTable[key] = t
	return t, nil
}
