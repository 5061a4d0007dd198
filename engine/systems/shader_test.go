package systems

import (
	"testing"
)

func TestParseUniforms(t *testing.T) {
	src := []byte(`#version 150

#define NUMBER_OF_SAMPLES 8

uniform sampler2D positionTexture;
uniform sampler2D normalTexture;
// uniform vec2 commentedOut;
uniform vec3 samples[NUMBER_OF_SAMPLES];
uniform mat4 lensProjection;
/* uniform vec2 blockComment; */
uniform highp vec2 enabled, nearFar;
uniform vec4 p3d_ColorScale;

out vec4 fragColor;

void main() {
  fragColor = vec4(0);
}
`)
	got := ParseUniforms(src)

	want := map[string]struct {
		typ    string
		length int
	}{
		"positionTexture": {"sampler2D", 0},
		"normalTexture":   {"sampler2D", 0},
		"samples":         {"vec3", 8},
		"lensProjection":  {"mat4", 0},
		"enabled":         {"vec2", 0},
		"nearFar":         {"vec2", 0},
		"p3d_ColorScale":  {"vec4", 0},
	}
	if len(got) != len(want) {
		t.Fatalf("ParseUniforms() found %d uniforms, want %d: %v", len(got), len(want), got)
	}
	for name, w := range want {
		decl, ok := got[name]
		if !ok {
			t.Errorf("missing uniform %q", name)
			continue
		}
		if decl.Type != w.typ || decl.ArrayLength != w.length {
			t.Errorf("%s = (%s, %d), want (%s, %d)", name, decl.Type, decl.ArrayLength, w.typ, w.length)
		}
	}
}
