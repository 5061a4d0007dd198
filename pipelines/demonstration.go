package pipelines

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

const (
	backgroundSortOrder = 10
	unsortedSortOrder   = 50
)

var (
	waterTag    = metadata.TagEquals{Key: "geometryBuffer1", Value: "isWater"}
	smokeTag    = metadata.TagEquals{Key: "geometryBuffer2", Value: "isSmoke"}
	particleTag = metadata.TagEquals{Key: "baseBuffer", Value: "isParticle"}
	baseWater   = metadata.TagEquals{Key: "baseBuffer", Value: "isWater"}
)

// Demonstration is the full deferred pipeline: three geometry buffers,
// water, fog, smoke and the post-processing chain down to gamma correction.
func Demonstration() *Variant {
	return &Variant{
		Name:     "demonstration",
		BaseSort: backgroundSortOrder - 1,
		Settings: Settings{
			Camera: CameraSettings{
				Radius: 1100.83,
				Phi:    67.5095,
				Theta:  231.721,
				LookAt: math.NewVec3(1.00839, 1.20764, 5.85055),
				Fov:    1,
				Near:   150,
				Far:    2000,

				NearMargin: 5,
				FarMargin:  10,
				Keys:       orbitKeys,
			},
			FogNear:         2,
			FogFar:          9,
			FoamDepth:       1.5,
			RefractiveIndex: 1.05,
			FocusPoint:      math.NewVec2(0.509167, 0.598),
			BackgroundColors: [2]math.Vec4{
				math.NewVec4(0.392, 0.537, 0.561, 1),
				math.NewVec4(0.953, 0.733, 0.525, 1),
			},
			SSAOSamples: 8,
			SSAONoise:   4,
			Hide: map[string]uint32{
				NodeWater: bit(1),
				NodeSmoke: bit(1) | bit(2),
			},
			Tags: map[string]map[string]string{
				NodeWater: {"geometryBuffer1": "isWater", "baseBuffer": "isWater"},
			},
		},
		build: buildDemonstration,
	}
}

func buildDemonstration(b *builder) {
	s := b.settings
	bg0 := metadata.Vec4Input(s.BackgroundColors[0])
	bg1 := metadata.Vec4Input(s.BackgroundColors[1])
	nearFar := metadata.Vec2Input(s.Camera.Near, s.Camera.Far)
	off := metadata.ToggleInput(false)
	on := metadata.ToggleInput(true)

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("geometry0", metadata.FormatRGBA32F, clearNone, bit(1), "position", "normal"),
		Shader: shader("base", "geometry-buffer-0"),
	}, toggled("normalMapsEnabled", ToggleNormalMaps))

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("geometry1", metadata.FormatRGBA32F, clearNone, bit(2),
			"position", "normal", "reflectionMask", "refractionMask", "foamMask"),
		Shader: shader("base", "geometry-buffer-1"),
		Inputs: metadata.Inputs{
			"flowTexture":        b.img("images/still-flow.png"),
			"foamPatternTexture": b.img("images/blank.png"),
			"isWater":            off,
		},
		TagStates: []metadata.TagState{{
			Name: "isWater",
			When: waterTag,
			Overrides: metadata.Inputs{
				"isWater":            on,
				"flowTexture":        b.img("images/up-flow.png"),
				"foamPatternTexture": b.img("images/foam-pattern.png"),
			},
		}},
	}, toggled("normalMapsEnabled", ToggleNormalMaps), toggled("flowMapsEnabled", ToggleFlowMaps))

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("geometry2", metadata.FormatRGBA32F, clearNone, 0, "position", "smokeMask"),
		Shader: shader("base", "geometry-buffer-2"),
		Inputs: metadata.Inputs{
			"isSmoke":         off,
			"isParticle":      off,
			"positionTexture": b.plane("geometry1", "position"),
		},
		TagStates: []metadata.TagState{{
			Name:      "isSmoke",
			When:      smokeTag,
			Overrides: metadata.Inputs{"isSmoke": on, "isParticle": on},
		}},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("fog", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "fog"),
		Inputs: metadata.Inputs{
			"pi":               PiInput,
			"gamma":            GammaInput,
			"backgroundColor0": bg0,
			"backgroundColor1": bg1,
			"positionTexture0": b.plane("geometry1", "position"),
			"positionTexture1": b.plane("geometry2", "position"),
			"smokeMaskTexture": b.plane("geometry2", "smokeMask"),
		},
	},
		sunPosition(),
		dyn("origin", func(v *FrameView) metadata.Binding { return metadata.Vec3Input(v.Origin) }),
		fogNearFar(),
		toggled("enabled", ToggleFog),
	)

	samples, noise := b.ssaoKernels()
	b.pass(&metadata.PassConfig{
		Target: quadTarget("ssao", metadata.FormatRGBA8, clearWhite),
		Shader: shader("basic", "ssao"),
		Inputs: metadata.Inputs{
			"positionTexture": b.plane("geometry0", "position"),
			"normalTexture":   b.plane("geometry0", "normal"),
			"samples":         metadata.Vec3ArrayInput(samples),
			"noise":           metadata.Vec3ArrayInput(noise),
		},
	}, lensProjection(), toggled("enabled", ToggleSSAO))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("ssaoBlur", metadata.FormatRGBA8, clearWhite),
		Shader: shader("basic", "kuwahara-filter"),
		Inputs: metadata.Inputs{
			"colorTexture": b.tex("ssao"),
			"parameters":   metadata.Vec2Input(1, 0),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("refractionUv", metadata.FormatRGBA16, clearNone),
		Shader: shader("basic", "screen-space-refraction"),
		Inputs: metadata.Inputs{
			"positionFromTexture": b.plane("geometry1", "position"),
			"positionToTexture":   b.plane("geometry0", "position"),
			"normalFromTexture":   b.plane("geometry1", "normal"),
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
			"positionTexture": b.plane("geometry1", "position"),
			"normalTexture":   b.plane("geometry1", "normal"),
			"maskTexture":     b.plane("geometry1", "reflectionMask"),
		},
	}, lensProjection(), toggled("enabled", ToggleReflection))

	b.pass(&metadata.PassConfig{
		Target: sceneTarget("base", metadata.FormatRGBA8, clearNone, bit(6), "base", "specular"),
		Shader: shader("base", "base"),
		Inputs: metadata.Inputs{
			"pi":              PiInput,
			"gamma":           GammaInput,
			"ssaoBlurTexture": b.tex("ssaoBlur"),
			"flowTexture":     b.img("images/still-flow.png"),
			"specularOnly":    off,
			"isParticle":      off,
			"isWater":         off,
		},
		TagStates: []metadata.TagState{
			{
				Name:      "isParticle",
				When:      particleTag,
				Overrides: metadata.Inputs{"isSmoke": on, "isParticle": on},
			},
			{
				Name: "isWater",
				When: baseWater,
				Overrides: metadata.Inputs{
					"isWater":            on,
					"flowTexture":        b.img("images/up-flow.png"),
					"foamPatternTexture": b.img("images/foam-pattern.png"),
				},
			},
		},
		SortFloor:    unsortedSortOrder + 1,
		HasSortFloor: true,
	},
		toggled("normalMapsEnabled", ToggleNormalMaps),
		toggled("blinnPhongEnabled", ToggleBlinnPhong),
		toggled("fresnelEnabled", ToggleFresnel),
		toggled("rimLightEnabled", ToggleRimLight),
		toggled("celShadingEnabled", ToggleCelShading),
		toggled("flowMapsEnabled", ToggleFlowMaps),
		sunPosition(),
	)

	b.pass(&metadata.PassConfig{
		Target: quadTarget("refraction", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "refraction"),
		Inputs: metadata.Inputs{
			"pi":                     PiInput,
			"gamma":                  GammaInput,
			"uvTexture":              b.tex("refractionUv"),
			"maskTexture":            b.plane("geometry1", "refractionMask"),
			"positionFromTexture":    b.plane("geometry1", "position"),
			"positionToTexture":      b.plane("geometry0", "position"),
			"backgroundColorTexture": b.plane("base", "base"),
		},
	}, sunPosition())

	b.pass(&metadata.PassConfig{
		Target: quadTarget("foam", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "foam"),
		Inputs: metadata.Inputs{
			"pi":                  PiInput,
			"gamma":               GammaInput,
			"maskTexture":         b.plane("geometry1", "foamMask"),
			"positionFromTexture": b.plane("geometry1", "position"),
			"positionToTexture":   b.plane("geometry0", "position"),
		},
	},
		dyn("foamDepth", func(v *FrameView) metadata.Binding { return metadata.Vec2Input(v.FoamDepth, v.FoamDepth) }),
		dyn("viewWorldMat", func(v *FrameView) metadata.Binding { return metadata.Mat4Input(v.Camera.GetViewWorld()) }),
		sunPosition(),
	)

	b.pass(&metadata.PassConfig{
		Target: quadTarget("reflectionColor", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "reflection-color"),
		Inputs: metadata.Inputs{
			"colorTexture": b.tex("refraction"),
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
			"maskTexture":      b.plane("geometry1", "reflectionMask"),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("baseCombine", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "base-combine"),
		Inputs: metadata.Inputs{
			"baseTexture":       b.plane("base", "base"),
			"refractionTexture": b.tex("refraction"),
			"foamTexture":       b.tex("foam"),
			"reflectionTexture": b.tex("reflection"),
			"specularTexture":   b.plane("base", "specular"),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("sharpen", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "sharpen"),
		Inputs: metadata.Inputs{"colorTexture": b.tex("baseCombine")},
	}, toggled("enabled", ToggleSharpen))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("posterize", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "posterize"),
		Inputs: metadata.Inputs{
			"gamma":           GammaInput,
			"colorTexture":    b.tex("sharpen"),
			"positionTexture": b.plane("geometry2", "position"),
		},
	}, toggled("enabled", TogglePosterize))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("bloom", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "bloom"),
		Inputs: metadata.Inputs{"colorTexture": b.tex("posterize")},
	}, toggled("enabled", ToggleBloom))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("sceneCombine", metadata.FormatRGBA8, clearNone),
		Shader: shader("basic", "scene-combine"),
		Inputs: metadata.Inputs{
			"pi":                  PiInput,
			"gamma":               GammaInput,
			"lookupTableTextureN": metadata.TextureInput(b.image("images/lookup-table-neutral.png", lookupSampler)),
			"backgroundColor0":    bg0,
			"backgroundColor1":    bg1,
			"baseTexture":         b.tex("posterize"),
			"bloomTexture":        b.tex("bloom"),
			"fogTexture":          b.tex("fog"),
		},
	}, sunPosition())

	background := s.BackgroundColors[1]
	b.pass(&metadata.PassConfig{
		Target: quadTarget("outOfFocus", metadata.FormatRGBA8, background),
		Shader: shader("basic", "box-blur"),
		Inputs: metadata.Inputs{
			"colorTexture": b.tex("sceneCombine"),
			"parameters":   metadata.Vec2Input(2, 2),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("dilatedOutOfFocus", metadata.FormatRGBA8, background),
		Shader: shader("basic", "dilation"),
		Inputs: metadata.Inputs{
			"colorTexture": b.tex("outOfFocus"),
			"parameters":   metadata.Vec2Input(4, 2),
		},
	})

	b.pass(&metadata.PassConfig{
		Target: quadTarget("depthOfField", metadata.FormatRGBA8, background, "color", "blur"),
		Shader: shader("basic", "depth-of-field"),
		Inputs: metadata.Inputs{
			"positionTexture":   b.plane("geometry0", "position"),
			"focusTexture":      b.tex("sceneCombine"),
			"outOfFocusTexture": b.tex("dilatedOutOfFocus"),
			"nearFar":           nearFar,
		},
	},
		dyn("mouseFocusPoint", func(v *FrameView) metadata.Binding { return metadata.Vec2Input(v.FocusPoint[0], v.FocusPoint[1]) }),
		toggled("enabled", ToggleDepthOfField),
	)

	b.pass(&metadata.PassConfig{
		Target: quadTarget("outline", metadata.FormatRGBA8, background),
		Shader: shader("basic", "outline"),
		Inputs: metadata.Inputs{
			"gamma":               GammaInput,
			"positionTexture":     b.plane("geometry0", "position"),
			"colorTexture":        b.plane("depthOfField", "color"),
			"noiseTexture":        b.img("images/color-noise.png"),
			"depthOfFieldTexture": b.plane("depthOfField", "blur"),
			"fogTexture":          b.tex("fog"),
			"nearFar":             nearFar,
		},
	}, toggled("enabled", ToggleOutline))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("painterly", metadata.FormatRGBA8, background),
		Shader: shader("basic", "kuwahara-filter"),
		Inputs: metadata.Inputs{"colorTexture": b.tex("outline")},
	}, dyn("parameters", func(v *FrameView) metadata.Binding {
		if v.Enabled(TogglePainterly) {
			return metadata.Vec2Input(3, 0)
		}
		return metadata.Vec2Input(0, 0)
	}))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("pixelize", metadata.FormatRGBA8, background),
		Shader: shader("basic", "pixelize"),
		Inputs: metadata.Inputs{
			"colorTexture":    b.tex("painterly"),
			"positionTexture": b.plane("geometry2", "position"),
			"parameters":      metadata.Vec2Input(5, 0),
		},
	}, toggled("enabled", TogglePixelize))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("motionBlur", metadata.FormatRGBA8, background),
		Shader: shader("basic", "motion-blur"),
		Inputs: metadata.Inputs{
			"positionTexture": b.plane("geometry2", "position"),
			"colorTexture":    b.tex("pixelize"),
			"parameters":      metadata.Vec2Input(2, 1),
		},
	},
		dyn("previousViewWorldMat", func(v *FrameView) metadata.Binding { return metadata.Mat4Input(v.PreviousViewWorld) }),
		dyn("worldViewMat", func(v *FrameView) metadata.Binding { return metadata.Mat4Input(v.Camera.GetView()) }),
		lensProjection(),
		toggled("motionBlurEnabled", ToggleMotionBlur),
	)

	b.pass(&metadata.PassConfig{
		Target: quadTarget("filmGrain", metadata.FormatRGBA8, background),
		Shader: shader("basic", "film-grain"),
		Inputs: metadata.Inputs{
			"pi":           PiInput,
			"colorTexture": b.tex("motionBlur"),
		},
	}, toggled("enabled", ToggleFilmGrain))

	b.pass(&metadata.PassConfig{
		Target: quadTarget("lookupTable", metadata.FormatRGBA8, background),
		Shader: shader("basic", "lookup-table"),
		Inputs: metadata.Inputs{
			"pi":                  PiInput,
			"gamma":               GammaInput,
			"colorTexture":        b.tex("filmGrain"),
			"lookupTableTextureN": metadata.TextureInput(b.image("images/lookup-table-neutral.png", lookupSampler)),
			"lookupTableTexture0": metadata.TextureInput(b.image("images/lookup-table-0.png", lookupSampler)),
			"lookupTableTexture1": metadata.TextureInput(b.image("images/lookup-table-1.png", lookupSampler)),
		},
	}, toggled("enabled", ToggleLookupTable), sunPosition())

	b.pass(&metadata.PassConfig{
		Target: quadTarget("gammaCorrection", metadata.FormatRGBA8, background),
		Shader: shader("basic", "gamma-correction"),
		Inputs: metadata.Inputs{
			"gamma":        GammaInput,
			"colorTexture": b.tex("lookupTable"),
		},
	})

	b.buffer("Positions 0", "geometry0", "position", false)
	b.buffer("Normals 0", "geometry0", "normal", false)
	b.buffer("Positions 1", "geometry1", "position", false)
	b.buffer("Normals 1", "geometry1", "normal", false)
	b.buffer("Reflection Mask", "geometry1", "reflectionMask", false)
	b.buffer("Refraction Mask", "geometry1", "refractionMask", false)
	b.buffer("Foam Mask", "geometry1", "foamMask", false)
	b.buffer("Positions 2", "geometry2", "position", false)
	b.buffer("Smoke Mask", "geometry2", "smokeMask", false)
	b.buffer("SSAO", "ssao", "", false)
	b.buffer("SSAO Blur", "ssaoBlur", "", false)
	b.buffer("Refraction UV", "refractionUv", "", false)
	b.buffer("Refraction", "refraction", "", false)
	b.buffer("Reflection UV", "reflectionUv", "", false)
	b.buffer("Reflection Color", "reflectionColor", "", false)
	b.buffer("Reflection Blur", "reflectionColorBlur", "", false)
	b.buffer("Reflection", "reflection", "", false)
	b.buffer("Foam", "foam", "", true)
	b.buffer("Base", "base", "base", false)
	b.buffer("Specular", "base", "specular", false)
	b.buffer("Base Combine", "baseCombine", "", false)
	b.buffer("Painterly", "painterly", "", false)
	b.buffer("Posterize", "posterize", "", false)
	b.buffer("Bloom", "bloom", "", false)
	b.buffer("Outline", "outline", "", true)
	b.buffer("Fog", "fog", "", true)
	b.buffer("Scene Combine", "sceneCombine", "", false)
	b.buffer("Out of Focus", "outOfFocus", "", false)
	b.buffer("Dilation", "dilatedOutOfFocus", "", false)
	b.buffer("Depth of Field Blur", "depthOfField", "blur", false)
	b.buffer("Depth of Field", "depthOfField", "color", false)
	b.buffer("Pixelize", "pixelize", "", false)
	b.buffer("Motion Blur", "motionBlur", "", false)
	b.buffer("Film Grain", "filmGrain", "", false)
	b.buffer("Lookup Table", "lookupTable", "", false)
	b.buffer("Gamma Correction", "gammaCorrection", "", false)
}
