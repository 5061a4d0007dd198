package pipelines

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

// Demo renders position and normal buffers with and without the water
// surface, and derives refraction, reflection and foam from the pair.
func Demo() *Variant {
	return &Variant{
		Name:     "demo",
		BaseSort: -30000,
		Settings: Settings{
			Camera: CameraSettings{
				Radius: 1486,
				Phi:    66,
				Theta:  236,
				LookAt: math.NewVec3(0, 0.5, 3),
				Fov:    1,
				Near:   450,
				Far:    2000,

				NearMargin: 10,
				FarMargin:  10,
				Keys:       orbitKeys,
			},
			FogNear:         1485,
			FogFar:          1493,
			FoamDepth:       4,
			RefractiveIndex: 1.05,
			FocusPoint:      math.NewVec2(0.5, 0.5),
			BackgroundColors: [2]math.Vec4{
				math.NewVec4(0.388, 0.424, 0.447, 1),
				math.NewVec4(0.820, 0.569, 0.427, 1),
			},
			SSAOSamples: 64,
			SSAONoise:   16,
			Hide: map[string]uint32{
				NodeWater: bit(30) | bit(0),
			},
			Tags: map[string]map[string]string{
				NodeWater: {
					"waterNormal":   "waterNormalTrue",
					"waterFoamMask": "waterFoamMaskTrue",
					"waterSpecular": "waterSpecularTrue",
				},
			},
		},
		build: buildDemo,
	}
}

func buildDemo(b *builder) {
	s := b.settings
	bg0 := metadata.Vec4Input(s.BackgroundColors[0])
	bg1 := metadata.Vec4Input(s.BackgroundColors[1])
	background := s.BackgroundColors[1]

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("position", metadata.FormatRGBA32F, clearNone, bit(30)),
		Shader: shader("base", "position"),
	})
	b.pass(&metadata.PassConfig{
		Target: sceneTarget("positionWithWater", metadata.FormatRGBA32F, clearNone, 0),
		Shader: shader("base", "position"),
	})

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("normal", metadata.FormatRGBA32F, clearNone, bit(30)),
		Shader: shader("base", "normal"),
		Inputs: metadata.Inputs{"flowTexture": b.img("images/still-flow.png")},
	}, toggled("normalMapsEnabled", ToggleNormalMaps), toggled("flowMapsEnabled", ToggleFlowMaps))

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("normalWithWater", metadata.FormatRGBA32F, clearNone, 0),
		Shader: shader("base", "normal"),
		Inputs: metadata.Inputs{"flowTexture": b.img("images/still-flow.png")},
		TagStates: []metadata.TagState{{
			Name:      "waterNormalTrue",
			When:      metadata.TagEquals{Key: "waterNormal", Value: "waterNormalTrue"},
			Overrides: metadata.Inputs{"flowTexture": b.img("images/up-flow.png")},
		}},
	}, toggled("normalMapsEnabled", ToggleNormalMaps), toggled("flowMapsEnabled", ToggleFlowMaps))

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("materialDiffuse", metadata.FormatRGBA8, clearBlack, 0),
		Shader: shader("base", "material-diffuse"),
	})
	b.pass(&metadata.PassConfig{
		Target: sceneTarget("materialSpecular", metadata.FormatRGBA8, clearBlack, 0),
		Shader: shader("base", "material-specular"),
	})

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("foamMask", metadata.FormatRGBA8, clearBlack, 0),
		Shader: shader("base", "foam-mask"),
		Inputs: metadata.Inputs{
			"foamPatternTexture": b.img("images/black.png"),
			"flowTexture":        b.img("images/still-flow.png"),
		},
		TagStates: []metadata.TagState{{
			Name: "waterFoamMaskTrue",
			When: metadata.TagEquals{Key: "waterFoamMask", Value: "waterFoamMaskTrue"},
			Overrides: metadata.Inputs{
				"flowTexture":        b.img("images/up-flow.png"),
				"foamPatternTexture": b.img("images/foam-pattern.png"),
			},
		}},
	}, toggled("flowMapsEnabled", ToggleFlowMaps))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("fog", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "fog"),
		Inputs: metadata.Inputs{
			"backgroundColor0": bg0,
			"backgroundColor1": bg1,
			"positionTexture":  b.tex("positionWithWater"),
		},
	}, toggled("enabled", ToggleFog), fogNearFar())

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
		Shader: shader("basic", "median-filter"),
		Inputs: metadata.Inputs{
			"colorTexture": b.tex("ssao"),
			"parameters":   metadata.Vec2Input(3, 10),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("refractionUv", metadata.FormatRGBA16, clearNone),
		Shader: shader("basic", "screen-space-refraction"),
		Inputs: metadata.Inputs{
			"positionFromTexture": b.tex("positionWithWater"),
			"positionToTexture":   b.tex("position"),
			"normalFromTexture":   b.tex("normalWithWater"),
		},
	},
		lensProjection(),
		toggled("enabled", ToggleRefraction),
		dyn("rior", func(v *FrameView) metadata.Binding { return metadata.Vec2Input(v.RefractiveIndex, v.RefractiveIndex) }),
	)

	b.pass(&metadata.PassConfig{
		Target: quadTarget("reflectionUv", metadata.FormatRGBA16, clearNone),
		Shader: shader("basic", "screen-space-reflection"),
		Inputs: metadata.Inputs{
			"positionTexture": b.tex("positionWithWater"),
			"normalTexture":   b.tex("normalWithWater"),
		},
	}, lensProjection(), toggled("enabled", ToggleReflection))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("outline", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "outline"),
		Inputs: metadata.Inputs{
			"materialDiffuseTexture": b.tex("materialDiffuse"),
			"fogTexture":             b.tex("fog"),
		},
	}, toggled("enabled", ToggleOutline))

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("base", metadata.FormatRGBA8, clearNone, bit(0)),
		Shader: shader("base", "base"),
		Inputs: metadata.Inputs{
			"ssaoBlurTexture": b.tex("ssaoBlur"),
			"flowTexture":     b.img("images/still-flow.png"),
			"specularOnly":    metadata.ToggleInput(false),
		},
	}, toggled("normalMapsEnabled", ToggleNormalMaps), toggled("flowMapsEnabled", ToggleFlowMaps))

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("specular", metadata.FormatRGBA8, clearNone, 0),
		Shader: shader("base", "base"),
		Inputs: metadata.Inputs{
			"ssaoBlurTexture": b.tex("ssaoBlur"),
			"flowTexture":     b.img("images/still-flow.png"),
			"specularOnly":    metadata.ToggleInput(true),
		},
		TagStates: []metadata.TagState{{
			Name:      "waterSpecularTrue",
			When:      metadata.TagEquals{Key: "waterSpecular", Value: "waterSpecularTrue"},
			Overrides: metadata.Inputs{"flowTexture": b.img("images/up-flow.png")},
		}},
	}, toggled("normalMapsEnabled", ToggleNormalMaps), toggled("flowMapsEnabled", ToggleFlowMaps))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("refraction", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "refraction"),
		Inputs: metadata.Inputs{
			"uvTexture":              b.tex("refractionUv"),
			"maskTexture":            b.tex("materialSpecular"),
			"positionFromTexture":    b.tex("positionWithWater"),
			"positionToTexture":      b.tex("position"),
			"backgroundColorTexture": b.tex("base"),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("foam", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "foam"),
		Inputs: metadata.Inputs{
			"maskTexture":         b.tex("foamMask"),
			"positionFromTexture": b.tex("positionWithWater"),
			"positionToTexture":   b.tex("position"),
		},
	}, dyn("foamDepth", func(v *FrameView) metadata.Binding { return metadata.Vec2Input(v.FoamDepth, v.FoamDepth) }))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("reflectionColor", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "reflection-color"),
		Inputs: metadata.Inputs{
			"colorTexture": b.tex("base"),
			"uvTexture":    b.tex("reflectionUv"),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("reflectionColorBlur", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "box-blur"),
		Inputs: metadata.Inputs{
			"colorTexture": b.tex("reflectionColor"),
			"parameters":   metadata.Vec2Input(8, 1),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("reflection", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "reflection"),
		Inputs: metadata.Inputs{
			"colorTexture":     b.tex("reflectionColor"),
			"colorBlurTexture": b.tex("reflectionColorBlur"),
			"specularTexture":  b.tex("materialSpecular"),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("baseCombine", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "base-combine"),
		Inputs: metadata.Inputs{
			"baseTexture":       b.tex("base"),
			"refractionTexture": b.tex("refraction"),
			"foamTexture":       b.tex("foam"),
			"reflectionTexture": b.tex("reflection"),
			"specularTexture":   b.tex("specular"),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("sharpen", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "sharpen"),
		Inputs: metadata.Inputs{"colorTexture": b.tex("baseCombine")},
	}, toggled("enabled", ToggleSharpen))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("posterizePreBlur", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "kuwahara-filter"),
		Inputs: metadata.Inputs{"colorTexture": b.tex("sharpen")},
	}, dyn("parameters", func(v *FrameView) metadata.Binding {
		if v.Enabled(TogglePosterize) {
			return metadata.Vec2Input(5, 0)
		}
		return metadata.Vec2Input(0, 0)
	}))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("posterize", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "posterize"),
		Inputs: metadata.Inputs{
			"colorTexture":    b.tex("posterizePreBlur"),
			"positionTexture": b.tex("position"),
		},
	}, toggled("enabled", TogglePosterize))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("bloom", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "bloom"),
		Inputs: metadata.Inputs{"colorTexture": b.tex("posterize")},
	}, toggled("enabled", ToggleBloom))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("sceneCombine", metadata.FormatRGBA8, background),
		Shader: shader("basic", "scene-combine"),
		Inputs: metadata.Inputs{
			"backgroundColor0": bg0,
			"backgroundColor1": bg1,
			"baseTexture":      b.tex("posterize"),
			"bloomTexture":     b.tex("bloom"),
			"outlineTexture":   b.tex("outline"),
			"fogTexture":       b.tex("fog"),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("outOfFocus", metadata.FormatRGBA8, background),
		Shader: shader("basic", "box-blur"),
		Inputs: metadata.Inputs{
			"colorTexture": b.tex("sceneCombine"),
			"parameters":   metadata.Vec2Input(8, 1),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("depthOfField", metadata.FormatRGBA8, background),
		Shader: shader("basic", "depth-of-field"),
		Inputs: metadata.Inputs{
			"positionTexture":   b.tex("position"),
			"focusTexture":      b.tex("sceneCombine"),
			"outOfFocusTexture": b.tex("outOfFocus"),
		},
	}, focalLength(), toggled("enabled", ToggleDepthOfField))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("pixelize", metadata.FormatRGBA8, background),
		Shader: shader("basic", "pixelize"),
		Inputs: metadata.Inputs{"colorTexture": b.tex("depthOfField")},
	}, toggled("enabled", TogglePixelize))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("filmGrain", metadata.FormatRGBA8, background),
		Shader: shader("basic", "film-grain"),
		Inputs: metadata.Inputs{"colorTexture": b.tex("pixelize")},
	}, toggled("enabled", ToggleFilmGrain))

	for _, e := range []struct{ label, pass string }{
		{"Position", "position"},
		{"Position With Water", "positionWithWater"},
		{"Normal", "normal"},
		{"Normal With Water", "normalWithWater"},
		{"Material Diffuse", "materialDiffuse"},
		{"Material Specular", "materialSpecular"},
		{"SSAO", "ssao"},
		{"SSAO Blur", "ssaoBlur"},
		{"Fog", "fog"},
		{"Outline", "outline"},
		{"Base", "base"},
		{"Refraction UV", "refractionUv"},
		{"Refraction", "refraction"},
		{"Reflection UV", "reflectionUv"},
		{"Reflection Color", "reflectionColor"},
		{"Reflection Blur", "reflectionColorBlur"},
		{"Reflection", "reflection"},
		{"Foam Mask", "foamMask"},
		{"Foam", "foam"},
		{"Specular", "specular"},
		{"Base Combine", "baseCombine"},
		{"Posterize Pre Blur", "posterizePreBlur"},
		{"Posterize", "posterize"},
		{"Bloom", "bloom"},
		{"Scene Combine", "sceneCombine"},
		{"Pixelize", "pixelize"},
		{"Out of Focus", "outOfFocus"},
		{"Depth of Field", "depthOfField"},
		{"Film Grain", "filmGrain"},
	} {
		alpha := e.pass == "outline" || e.pass == "foam" || e.pass == "fog"
		b.buffer(e.label, e.pass, "", alpha)
	}
}
