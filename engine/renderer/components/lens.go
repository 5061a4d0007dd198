package components

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

/**
 * @brief A camera lens. Perspective lenses use Fov, orthographic lenses use
 * FilmWidth and FilmHeight.
 */
type Lens struct {
	/** @brief Vertical field of view in degrees. */
	Fov          float32
	Near         float32
	Far          float32
	AspectRatio  float32
	Orthographic bool
	FilmWidth    float32
	FilmHeight   float32
}

func NewPerspectiveLens(fov, near, far, aspectRatio float32) *Lens {
	return &Lens{
		Fov:         fov,
		Near:        near,
		Far:         far,
		AspectRatio: aspectRatio,
	}
}

func NewOrthographicLens(filmWidth, filmHeight, near, far float32) *Lens {
	return &Lens{
		Near:         near,
		Far:          far,
		AspectRatio:  filmWidth / filmHeight,
		Orthographic: true,
		FilmWidth:    filmWidth,
		FilmHeight:   filmHeight,
	}
}

// NewQuadLens is the lens of full-screen quad passes: a 2x2 film over [-1, 1] depth.
func NewQuadLens() *Lens {
	return NewOrthographicLens(2, 2, -1, 1)
}

// SetAspectRatio follows window resizes. Orthographic lenses keep their film.
func (l *Lens) SetAspectRatio(width, height uint32) {
	if l.Orthographic || width == 0 || height == 0 {
		return
	}
	l.AspectRatio = float32(width) / float32(height)
}

func (l *Lens) ProjectionMatrix() math.Mat4 {
	if l.Orthographic {
		hw, hh := l.FilmWidth/2, l.FilmHeight/2
		return math.NewMat4Orthographic(-hw, hw, -hh, hh, l.Near, l.Far)
	}
	return math.NewMat4Perspective(l.Fov, l.AspectRatio, l.Near, l.Far)
}
