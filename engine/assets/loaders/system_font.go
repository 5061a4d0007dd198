package loaders

import (
	"os"

	"golang.org/x/image/font/opentype"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

// SystemFontLoader parses a TrueType or OpenType file into *opentype.Font.
type SystemFontLoader struct{}

func (fl *SystemFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     resourceName(params),
		FullPath: path,
		Type:     metadata.ResourceTypeFont,
		DataSize: uint64(len(fontBytes)),
		Data:     f,
	}, nil
}

func (fl *SystemFontLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
