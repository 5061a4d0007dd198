package loaders

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

/** @brief Parameters used when loading an image. */
type ImageResourceParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
}

// ImageLoader decodes png and jpeg files into *image.RGBA.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image `%s`: %w", path, err)
	}

	flip := false
	if p, ok := params.(*ImageResourceParams); ok && p != nil {
		flip = p.FlipY
	}
	rgba := toRGBA(img, flip)

	return &metadata.Resource{
		Name:     resourceName(params),
		FullPath: path,
		Type:     metadata.ResourceTypeImage,
		DataSize: uint64(len(rgba.Pix)),
		Data:     rgba,
	}, nil
}

func (il *ImageLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

func toRGBA(img image.Image, flipY bool) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	if !flipY {
		return rgba
	}
	// GL expects the first row at the bottom.
	h := rgba.Bounds().Dy()
	row := make([]byte, rgba.Stride)
	for y := 0; y < h/2; y++ {
		top := rgba.Pix[y*rgba.Stride : (y+1)*rgba.Stride]
		bottom := rgba.Pix[(h-1-y)*rgba.Stride : (h-y)*rgba.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
	return rgba
}
