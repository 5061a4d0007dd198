package math

import (
	stdmath "math"
	"testing"
)

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{10, 10},
		{360, 360},
		{361, 1},
		{-5, 355},
		{0, 0},
	}
	for _, tt := range tests {
		if got := WrapDegrees(tt.in); got != tt.want {
			t.Errorf("WrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp[float32](200, 1, 179); got != 179 {
		t.Errorf("Clamp(200, 1, 179) = %v, want 179", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3, 0, 10) = %v, want 0", got)
	}
}

func TestSphericalToCartesian(t *testing.T) {
	p := SphericalToCartesian(10, 90, 0)
	if stdmath.Abs(float64(p[0]-10)) > 1e-4 || stdmath.Abs(float64(p[2])) > 1e-4 {
		t.Errorf("SphericalToCartesian(10, 90, 0) = %v, want [10 0 0]", p)
	}
	p = SphericalToCartesian(4, 0, 123)
	if stdmath.Abs(float64(p[2]-4)) > 1e-4 {
		t.Errorf("SphericalToCartesian(4, 0, 123) = %v, want z = 4", p)
	}
}

func TestMixVec3(t *testing.T) {
	got := MixVec3(Vec3{0, 0, 0}, Vec3{2, 4, 6}, 0.5)
	if got != (Vec3{1, 2, 3}) {
		t.Errorf("MixVec3() = %v, want [1 2 3]", got)
	}
}
