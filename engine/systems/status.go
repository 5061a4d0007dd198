package systems

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

type StatusTextConfig struct {
	/** @brief Seconds for a message to fade from opaque to invisible. */
	FadeRate float32
	Color    math.Vec3
	Shadow   math.Vec3
	/** @brief Position of the baseline start, in [-1, 1] screen coordinates. */
	Position math.Vec2
	/** @brief Text height as a fraction of the screen height in [-1, 1] units. */
	Scale float32
}

func DefaultStatusTextConfig() *StatusTextConfig {
	return &StatusTextConfig{
		FadeRate: 2,
		Color:    math.NewVec3(0.9, 0.9, 1),
		Shadow:   math.NewVec3(0.1, 0.1, 0.3),
		Position: math.NewVec2(-0.96, -0.95),
		Scale:    0.05,
	}
}

/**
 * @brief A one line status message. Each message starts opaque and fades
 * out at 1/FadeRate per second.
 */
type StatusText struct {
	config *StatusTextConfig
	fonts  *FontSystem
	text   string
	alpha  float32
	// alpha of the last rendered overlay, -1 forces a render
	rendered float32
	overlay  *image.RGBA
}

func NewStatusText(config *StatusTextConfig, fonts *FontSystem) *StatusText {
	if config.FadeRate <= 0 {
		config.FadeRate = 2
	}
	return &StatusText{config: config, fonts: fonts, rendered: -1}
}

// Set shows a new message at full opacity.
func (st *StatusText) Set(text string) {
	st.text = text
	st.alpha = 1
	st.rendered = -1
}

func (st *StatusText) Setf(format string, args ...interface{}) {
	st.Set(fmt.Sprintf(format, args...))
}

// Update fades the message.
func (st *StatusText) Update(deltaTime float64) {
	st.alpha = math.Clamp(st.alpha-float32(deltaTime)/st.config.FadeRate, 0, 1)
}

func (st *StatusText) Text() string {
	return st.text
}

func (st *StatusText) Alpha() float32 {
	return st.alpha
}

func (st *StatusText) Color() math.Vec4 {
	return st.config.Color.Vec4(st.alpha)
}

func (st *StatusText) ShadowColor() math.Vec4 {
	return st.config.Shadow.Vec4(st.alpha)
}

// Render draws the message into a window sized overlay. It returns false
// when the previous overlay is still current.
func (st *StatusText) Render(width, height uint32) (*image.RGBA, bool) {
	if width == 0 || height == 0 {
		return st.overlay, false
	}
	bounds := image.Rect(0, 0, int(width), int(height))
	resized := st.overlay == nil || st.overlay.Bounds() != bounds
	if !resized && st.rendered == st.alpha {
		return st.overlay, false
	}
	if resized {
		st.overlay = image.NewRGBA(bounds)
	} else {
		draw.Draw(st.overlay, bounds, image.Transparent, image.Point{}, draw.Src)
	}
	st.rendered = st.alpha
	if st.alpha <= 0 || st.text == "" || st.fonts == nil {
		return st.overlay, true
	}

	x := int((st.config.Position[0] + 1) / 2 * float32(width))
	y := int((1 - st.config.Position[1]) / 2 * float32(height))
	size := float64(st.config.Scale * float32(height) / 2)
	offset := int(size/16) + 1

	_ = st.fonts.DrawText(st.overlay, x+offset, y+offset, size, st.text, toColor(st.ShadowColor()))
	_ = st.fonts.DrawText(st.overlay, x, y, size, st.text, toColor(st.Color()))
	return st.overlay, true
}

func toColor(c math.Vec4) color.Color {
	a := math.Clamp(c[3], 0, 1)
	return color.NRGBA{
		R: uint8(math.Clamp(c[0], 0, 1) * 255),
		G: uint8(math.Clamp(c[1], 0, 1) * 255),
		B: uint8(math.Clamp(c[2], 0, 1) * 255),
		A: uint8(a * 255),
	}
}
