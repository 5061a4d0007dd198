package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

type textureFormat struct {
	internal int32
	format   uint32
	xtype    uint32
}

var formats = map[metadata.ColorFormat]textureFormat{
	metadata.FormatRGBA8:   {internal: gl.RGBA8, format: gl.RGBA, xtype: gl.UNSIGNED_BYTE},
	metadata.FormatRGBA16:  {internal: gl.RGBA16, format: gl.RGBA, xtype: gl.UNSIGNED_SHORT},
	metadata.FormatRGBA16F: {internal: gl.RGBA16F, format: gl.RGBA, xtype: gl.HALF_FLOAT},
	metadata.FormatRGBA32F: {internal: gl.RGBA32F, format: gl.RGBA, xtype: gl.FLOAT},
}

func lookupFormat(cf metadata.ColorFormat) (textureFormat, error) {
	f, ok := formats[cf]
	if !ok {
		return textureFormat{}, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, cf)
	}
	return f, nil
}

func applySampler(sampler metadata.Sampler) {
	filter := int32(gl.LINEAR)
	if sampler.Filter == metadata.TextureFilterModeNearest {
		filter = gl.NEAREST
	}
	wrap := int32(gl.REPEAT)
	if sampler.Repeat == metadata.TextureRepeatClampToEdge {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
}

// allocate (re)creates the storage of a window sized texture.
func allocate(id uint32, f textureFormat, width, height uint32) {
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, f.internal, int32(width), int32(height), 0, f.format, f.xtype, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func textureID(t *metadata.TextureHandle) (uint32, bool) {
	if t == nil {
		return 0, false
	}
	id, ok := t.InternalData.(uint32)
	return id, ok
}
