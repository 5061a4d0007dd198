package pipelines

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

// Basic is the first pipeline of the series: position and normal buffers,
// SSAO, screen space reflection and a short post-processing chain.
func Basic() *Variant {
	background := math.NewVec4(0.812, 0.604, 0.424, 1)
	return &Variant{
		Name:     "basic",
		BaseSort: -3000,
		Settings: Settings{
			Camera: CameraSettings{
				Radius: 1486.61,
				Phi:    70.346,
				Theta:  225,
				LookAt: math.NewVec3(0, 0, 5),
				Fov:    1,
				Near:   450,
				Far:    1510,

				NearMargin: 5,
				FarMargin:  10,
				Keys:       CameraKeys{ZoomIn: "w", ZoomOut: "s", ZoomRate: 2, WheelZoom: 20},
			},
			FogNear:          1490,
			FogFar:           1500,
			FoamDepth:        1,
			RefractiveIndex:  1,
			FocusPoint:       math.NewVec2(0.5, 0.5),
			BackgroundColors: [2]math.Vec4{background, background},
			SSAOSamples:      64,
			SSAONoise:        16,
		},
		build: buildBasic,
	}
}

func buildBasic(b *builder) {
	b.pass(&metadata.PassConfig{
		Target: sceneTarget("position", metadata.FormatRGBA32F, clearNone, 0),
		Shader: shader("base", "position"),
	})

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("normal", metadata.FormatRGBA32F, clearNone, 0),
		Shader: shader("base", "normal"),
	}, toggled("normalMapsEnabled", ToggleNormalMaps))

	samples, noise := b.ssaoKernels()
	b.pass(&metadata.PassConfig{
		Target: quadTarget("ssao", metadata.FormatRGBA8, clearWhite),
		Shader: shader("basic", "ssao"),
		Inputs: metadata.Inputs{
			"positionTexture": b.tex("position"),
			"normalTexture":   b.tex("normal"),
			"samples":         metadata.Vec3ArrayInput(samples),
			"noise":           metadata.Vec3ArrayInput(noise),
		},
	}, lensProjection(), toggled("enabled", ToggleSSAO))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("ssaoBlur", metadata.FormatRGBA8, clearWhite),
		Shader: shader("basic", "blur"),
		Inputs: metadata.Inputs{
			"blurTexture": b.tex("ssao"),
			"parameters":  metadata.Vec2Input(0.001, 5),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("ssr", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "ssr"),
		Inputs: metadata.Inputs{
			"positionTexture": b.tex("position"),
			"normalTexture":   b.tex("normal"),
		},
	}, lensProjection(), toggled("enabled", ToggleReflection))

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("materialDiffuse", metadata.FormatRGBA8, clearBlack, 0),
		Shader: shader("base", "material-diffuse"),
	})
	b.pass(&metadata.PassConfig{
		Target: sceneTarget("materialSpecular", metadata.FormatRGBA8, clearBlack, 0),
		Shader: shader("base", "material-specular"),
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("outline", metadata.FormatRGBA8, clearWhite),
		Shader: shader("basic", "outline"),
		Inputs: metadata.Inputs{
			"materialDiffuseTexture": b.tex("materialDiffuse"),
			"positionTexture":        b.tex("position"),
		},
	}, toggled("enabled", ToggleOutline), toggled("fogEnabled", ToggleFog))

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("base", metadata.FormatRGBA8, clearNone, 0),
		Shader: shader("base", "base"),
		Inputs: metadata.Inputs{"ssaoBlurTexture": b.tex("ssaoBlur")},
	}, toggled("normalMapsEnabled", ToggleNormalMaps), toggled("fogEnabled", ToggleFog))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("sharpen", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "sharpen"),
		Inputs: metadata.Inputs{"sharpenTexture": b.tex("base")},
	}, toggled("enabled", ToggleSharpen))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("reflection", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "reflection"),
		Inputs: metadata.Inputs{
			"reflectedTexture":        b.tex("sharpen"),
			"ssrTexture":              b.tex("ssr"),
			"materialSpecularTexture": b.tex("materialSpecular"),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("reflectionBlur", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "blur"),
		Inputs: metadata.Inputs{
			"blurTexture": b.tex("reflection"),
			"parameters":  metadata.Vec2Input(0.001, 17),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("bloom", metadata.FormatRGBA8, clearBlack),
		Shader: shader("basic", "bloom"),
		Inputs: metadata.Inputs{"bloomTexture": b.tex("base")},
	}, toggled("enabled", ToggleBloom))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("combine", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "combine"),
		Inputs: metadata.Inputs{
			"backgroundColor":         metadata.Vec4Input(b.settings.BackgroundColors[0]),
			"baseTexture":             b.tex("sharpen"),
			"materialSpecularTexture": b.tex("materialSpecular"),
			"reflectionTexture":       b.tex("reflection"),
			"reflectionBlurTexture":   b.tex("reflectionBlur"),
			"bloomTexture":            b.tex("bloom"),
			"outlineTexture":          b.tex("outline"),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("posterize", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "posterize"),
		Inputs: metadata.Inputs{"posterizeTexture": b.tex("combine")},
	}, toggled("enabled", TogglePosterize))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("combineBlur", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "blur"),
		Inputs: metadata.Inputs{
			"blurTexture": b.tex("posterize"),
			"parameters":  metadata.Vec2Input(0.001, 17),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("depthOfField", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "depth-of-field"),
		Inputs: metadata.Inputs{
			"positionTexture":   b.tex("position"),
			"focusTexture":      b.tex("posterize"),
			"outOfFocusTexture": b.tex("combineBlur"),
		},
	}, focalLength(), toggled("enabled", ToggleDepthOfField))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("pixelize", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "pixelize"),
		Inputs: metadata.Inputs{"pixelizeTexture": b.tex("depthOfField")},
	}, toggled("enabled", TogglePixelize))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("filmGrain", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "film-grain"),
		Inputs: metadata.Inputs{"filmGrainTexture": b.tex("pixelize")},
	}, toggled("enabled", ToggleFilmGrain))

	for _, e := range []struct{ label, pass string }{
		{"Position", "position"},
		{"Normal", "normal"},
		{"SSAO", "ssao"},
		{"SSAO Blur", "ssaoBlur"},
		{"SSR", "ssr"},
		{"Material Diffuse", "materialDiffuse"},
		{"Material Specular", "materialSpecular"},
		{"Outline", "outline"},
		{"Base", "base"},
		{"Sharpen", "sharpen"},
		{"Reflection", "reflection"},
		{"Reflection Blur", "reflectionBlur"},
		{"Bloom", "bloom"},
		{"Combine", "combine"},
		{"Posterize", "posterize"},
		{"Combine Blur", "combineBlur"},
		{"Depth of Field", "depthOfField"},
		{"Pixelize", "pixelize"},
		{"Film Grain", "filmGrain"},
	} {
		b.buffer(e.label, e.pass, "", e.pass == "outline")
	}
}
