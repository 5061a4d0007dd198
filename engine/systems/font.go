package systems

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path"

	"github.com/fzipp/bmfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/assets"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

type FontSystemConfig struct {
	/** @brief The font asset, a TrueType file or an AngelCode .fnt descriptor. */
	DefaultFont string
}

/**
 * @brief Rasterizes 2D text. System fonts are drawn at any pixel size,
 * bitmap fonts at the size they were baked with. Without a usable font
 * asset the embedded Go Regular face is used.
 */
type FontSystem struct {
	config       *FontSystemConfig
	assetManager *assets.AssetManager

	systemFont *opentype.Font
	bitmapFont *bmfont.BitmapFont
	faces      map[float64]font.Face
	scratch    *image.RGBA
}

func NewFontSystem(config *FontSystemConfig, am *assets.AssetManager) (*FontSystem, error) {
	return &FontSystem{
		config:       config,
		assetManager: am,
		faces:        make(map[float64]font.Face),
	}, nil
}

func (fs *FontSystem) Initialize() error {
	name := fs.config.DefaultFont
	if name != "" && fs.assetManager != nil && fs.assetManager.Has(name) {
		if path.Ext(name) == ".fnt" {
			res, err := fs.assetManager.LoadAsset(name, metadata.ResourceTypeBitmapFont, nil)
			if err != nil {
				return err
			}
			fs.bitmapFont = res.Data.(*bmfont.BitmapFont)
			core.LogDebug("bitmap font `%s` loaded", name)
			return nil
		}
		res, err := fs.assetManager.LoadAsset(name, metadata.ResourceTypeFont, nil)
		if err != nil {
			return err
		}
		fs.systemFont = res.Data.(*opentype.Font)
		core.LogDebug("system font `%s` loaded", name)
		return nil
	}

	core.LogWarn("font `%s` not found, using the embedded face", name)
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse the embedded font: %w", err)
	}
	fs.systemFont = f
	return nil
}

func (fs *FontSystem) Shutdown() error {
	for size, face := range fs.faces {
		_ = face.Close()
		delete(fs.faces, size)
	}
	return nil
}

func (fs *FontSystem) face(size float64) (font.Face, error) {
	if face, ok := fs.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(fs.systemFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	fs.faces[size] = face
	return face, nil
}

// DrawText draws text with its baseline starting at (x, y). size is the
// pixel height of system fonts.
func (fs *FontSystem) DrawText(dst *image.RGBA, x, y int, size float64, text string, c color.Color) error {
	if fs.bitmapFont != nil {
		// draw white glyphs, then use them as the mask of the color
		if fs.scratch == nil || fs.scratch.Bounds() != dst.Bounds() {
			fs.scratch = image.NewRGBA(dst.Bounds())
		} else {
			draw.Draw(fs.scratch, fs.scratch.Bounds(), image.Transparent, image.Point{}, draw.Src)
		}
		lineHeight := fs.bitmapFont.Descriptor.Common.LineHeight
		fs.bitmapFont.DrawText(fs.scratch, image.Pt(x, y-lineHeight), text)
		draw.DrawMask(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, fs.scratch, dst.Bounds().Min, draw.Over)
		return nil
	}
	if fs.systemFont == nil {
		return fmt.Errorf("font system is not initialized")
	}
	face, err := fs.face(size)
	if err != nil {
		return err
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
	return nil
}
