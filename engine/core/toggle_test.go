package core

import "testing"

func TestFeatureToggle(t *testing.T) {
	ft := NewFeatureToggle("ssao", "SSAO", false)

	if got := ft.Value(); got != [2]float32{0, 0} {
		t.Errorf("Value() = %v, want [0 0]", got)
	}
	if got := ft.Flip(); !got {
		t.Errorf("Flip() = %v, want true", got)
	}
	if got := ft.Value(); got != [2]float32{1, 1} {
		t.Errorf("Value() = %v, want [1 1]", got)
	}
	if got := ft.Status(); got != "SSAO On" {
		t.Errorf("Status() = %q, want %q", got, "SSAO On")
	}
	ft.Reset()
	if ft.Enabled() {
		t.Errorf("Enabled() after Reset = true, want false")
	}
	if got := ft.Status(); got != "SSAO Off" {
		t.Errorf("Status() = %q, want %q", got, "SSAO Off")
	}
}
