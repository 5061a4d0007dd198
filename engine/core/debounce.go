package core

import "math"

// Debouncer gates discrete actions: an action is allowed when at least Window
// seconds passed since the last allowed one. Every allowed action shares the
// same timestamp, so pressing one key also holds off the others.
type Debouncer struct {
	Window     float64
	lastAction float64
}

func NewDebouncer(window float64) *Debouncer {
	return &Debouncer{
		Window:     window,
		lastAction: math.Inf(-1),
	}
}

// Ready reports whether an action at time now would pass the gate.
func (d *Debouncer) Ready(now float64) bool {
	return now-d.lastAction >= d.Window
}

// Allow consumes the gate at time now. It returns false, leaving the gate
// untouched, when called within the window.
func (d *Debouncer) Allow(now float64) bool {
	if !d.Ready(now) {
		return false
	}
	d.lastAction = now
	return true
}

// Reset makes the next action pass regardless of time.
func (d *Debouncer) Reset() {
	d.lastAction = math.Inf(-1)
}
