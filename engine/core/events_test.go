package core

import "testing"

func TestEventBusRegisterAndFire(t *testing.T) {
	bus := NewEventBus()
	first, second := 0, 0

	if !bus.Register(EVENT_CODE_RESIZED, "first", func(EventContext) bool { first++; return false }) {
		t.Fatalf("Register(first) = false, want true")
	}
	if bus.Register(EVENT_CODE_RESIZED, "first", func(EventContext) bool { return false }) {
		t.Errorf("duplicate Register(first) = true, want false")
	}
	bus.Register(EVENT_CODE_RESIZED, "second", func(EventContext) bool { second++; return true })

	if handled := bus.Fire(EventContext{Type: EVENT_CODE_RESIZED}); !handled {
		t.Errorf("Fire() = false, want true")
	}
	if first != 1 || second != 1 {
		t.Errorf("calls = (%d, %d), want (1, 1)", first, second)
	}

	if !bus.Unregister(EVENT_CODE_RESIZED, "second") {
		t.Errorf("Unregister(second) = false, want true")
	}
	if handled := bus.Fire(EventContext{Type: EVENT_CODE_RESIZED}); handled {
		t.Errorf("Fire() after Unregister = true, want false")
	}
}
