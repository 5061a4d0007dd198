package core

// FeatureToggle is an on/off effect switch. Shaders receive it as a vec2 with
// the flag replicated into both components.
type FeatureToggle struct {
	Name    string
	Label   string
	initial bool
	enabled bool
}

func NewFeatureToggle(name, label string, enabled bool) *FeatureToggle {
	return &FeatureToggle{
		Name:    name,
		Label:   label,
		initial: enabled,
		enabled: enabled,
	}
}

func (ft *FeatureToggle) Enabled() bool {
	return ft.enabled
}

func (ft *FeatureToggle) Set(enabled bool) {
	ft.enabled = enabled
}

// Flip inverts the toggle and returns the new state.
func (ft *FeatureToggle) Flip() bool {
	ft.enabled = !ft.enabled
	return ft.enabled
}

// Reset restores the value the toggle was created with.
func (ft *FeatureToggle) Reset() {
	ft.enabled = ft.initial
}

// Value returns the replicated (0, 0) or (1, 1) pair.
func (ft *FeatureToggle) Value() [2]float32 {
	if ft.enabled {
		return [2]float32{1, 1}
	}
	return [2]float32{0, 0}
}

// Status is the text shown when the toggle changes, e.g. "Fog On".
func (ft *FeatureToggle) Status() string {
	if ft.enabled {
		return ft.Label + " On"
	}
	return ft.Label + " Off"
}
