package loaders

import (
	"github.com/fzipp/bmfont"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

// BitmapFontLoader imports AngelCode .fnt descriptors together with their
// page sheets.
type BitmapFontLoader struct{}

func (fl *BitmapFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     resourceName(params),
		FullPath: path,
		Type:     metadata.ResourceTypeBitmapFont,
		DataSize: uint64(len(font.Descriptor.Chars)),
		Data:     font,
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
