package core

import "testing"

func TestInputStateKeyNames(t *testing.T) {
	is := NewInputState(nil)
	is.ProcessKey(KEY_W, true)
	is.ProcessKey(KEY_RSHIFT, true)
	is.ProcessKey(KEY_LBRACKET, true)

	tests := []struct {
		name string
		want bool
	}{
		{"w", true},
		{"s", false},
		{"shift", true},
		{"[", true},
		{"]", false},
		{"not-a-key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := is.IsKeyDown(tt.name); got != tt.want {
				t.Errorf("IsKeyDown(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestInputStateWheelIsConsumed(t *testing.T) {
	is := NewInputState(nil)
	is.ProcessMouseWheel(1)

	if !is.WheelUp() {
		t.Fatalf("WheelUp() = false, want true")
	}
	if is.WheelUp() {
		t.Errorf("second WheelUp() = true, want false")
	}
	if is.WheelDown() {
		t.Errorf("WheelDown() = true, want false")
	}
}

func TestInputStateMousePosition(t *testing.T) {
	is := NewInputState(nil)
	is.SetViewport(200, 100)
	is.ProcessMouseMove(150, 25)

	x, y := is.MousePosition()
	if x != 0.5 || y != 0.5 {
		t.Errorf("MousePosition() = (%v, %v), want (0.5, 0.5)", x, y)
	}
}

func TestInputStateFiresEvents(t *testing.T) {
	bus := NewEventBus()
	var pressed []KeyCode
	bus.Register(EVENT_CODE_KEY_PRESSED, t, func(context EventContext) bool {
		pressed = append(pressed, context.Data.(*KeyEvent).KeyCode)
		return true
	})

	is := NewInputState(bus)
	is.ProcessKey(KEY_ESCAPE, true)
	// no state change, no event
	is.ProcessKey(KEY_ESCAPE, true)
	is.ProcessKey(KEY_ESCAPE, false)

	if len(pressed) != 1 || pressed[0] != KEY_ESCAPE {
		t.Errorf("pressed = %v, want [%v]", pressed, KEY_ESCAPE)
	}
}
