package core

import "testing"

func TestDebouncerHoldFlipsOnce(t *testing.T) {
	d := NewDebouncer(0.150)
	toggle := NewFeatureToggle("fog", "Fog", true)

	now := 0.0
	for i := 0; i < 10; i++ {
		now += 0.016
		if d.Allow(now) {
			toggle.Flip()
		}
	}

	if toggle.Enabled() {
		t.Errorf("toggle flipped an even number of times: Enabled() = true, want false")
	}
}

func TestDebouncerWindow(t *testing.T) {
	tests := []struct {
		name   string
		window float64
		times  []float64
		want   []bool
	}{
		{
			name:   "first action passes",
			window: 0.2,
			times:  []float64{0},
			want:   []bool{true},
		},
		{
			name:   "inside window is rejected",
			window: 0.2,
			times:  []float64{1.0, 1.1, 1.19},
			want:   []bool{true, false, false},
		},
		{
			name:   "window boundary is inclusive",
			window: 0.25,
			times:  []float64{1.0, 1.25, 1.5},
			want:   []bool{true, true, true},
		},
		{
			name:   "rejected actions do not extend the window",
			window: 0.2,
			times:  []float64{0, 0.1, 0.15, 0.2},
			want:   []bool{true, false, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDebouncer(tt.window)
			for i, at := range tt.times {
				if got := d.Allow(at); got != tt.want[i] {
					t.Errorf("Allow(%v) = %v, want %v", at, got, tt.want[i])
				}
			}
		})
	}
}

func TestDebouncerReset(t *testing.T) {
	d := NewDebouncer(10)
	d.Allow(0)
	if d.Ready(1) {
		t.Fatalf("Ready(1) = true, want false")
	}
	d.Reset()
	if !d.Ready(1) {
		t.Errorf("Ready(1) after Reset = false, want true")
	}
}
