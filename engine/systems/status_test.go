package systems

import (
	"testing"
)

func TestStatusTextFades(t *testing.T) {
	st := NewStatusText(DefaultStatusTextConfig(), nil)
	st.Set("Ready")

	tests := []struct {
		delta float64
		want  float32
	}{
		{0.5, 0.75},
		{0.5, 0.5},
		{1.5, 0},
		{1.0, 0},
	}
	for i, tt := range tests {
		st.Update(tt.delta)
		if d := st.Alpha() - tt.want; d > 1e-6 || d < -1e-6 {
			t.Errorf("step %d: Alpha() = %v, want %v", i, st.Alpha(), tt.want)
		}
	}

	st.Setf("Fog Near %.1f", 2.1)
	if st.Alpha() != 1 || st.Text() != "Fog Near 2.1" {
		t.Errorf("Setf() = %q at %v", st.Text(), st.Alpha())
	}
	if c := st.ShadowColor(); c[3] != 1 || c[2] != float32(0.3) {
		t.Errorf("ShadowColor() = %v", c)
	}
}

func TestStatusTextRendersOnChange(t *testing.T) {
	fonts, err := NewFontSystem(&FontSystemConfig{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := fonts.Initialize(); err != nil {
		t.Fatal(err)
	}
	st := NewStatusText(DefaultStatusTextConfig(), fonts)
	st.Set("Ready")

	overlay, changed := st.Render(320, 200)
	if !changed || overlay == nil {
		t.Fatal("first Render() should draw")
	}
	drawn := false
	for i := 3; i < len(overlay.Pix); i += 4 {
		if overlay.Pix[i] != 0 {
			drawn = true
			break
		}
	}
	if !drawn {
		t.Error("overlay is empty")
	}
	if _, changed := st.Render(320, 200); changed {
		t.Error("Render() without changes should reuse the overlay")
	}
	st.Update(0.1)
	if _, changed := st.Render(320, 200); !changed {
		t.Error("Render() after a fade should redraw")
	}
}
