package core

import "strings"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_SHIFT     KeyCode = 0x10
	KEY_CONTROL   KeyCode = 0x11
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_DELETE    KeyCode = 0x2E
	KEY_0         KeyCode = 0x30
	KEY_1         KeyCode = 0x31
	KEY_2         KeyCode = 0x32
	KEY_3         KeyCode = 0x33
	KEY_4         KeyCode = 0x34
	KEY_5         KeyCode = 0x35
	KEY_6         KeyCode = 0x36
	KEY_7         KeyCode = 0x37
	KEY_8         KeyCode = 0x38
	KEY_9         KeyCode = 0x39
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEY_SEMICOLON KeyCode = 0xBA
	KEY_PLUS      KeyCode = 0xBB
	KEY_COMMA     KeyCode = 0xBC
	KEY_MINUS     KeyCode = 0xBD
	KEY_PERIOD    KeyCode = 0xBE
	KEY_SLASH     KeyCode = 0xBF
	KEY_GRAVE     KeyCode = 0xC0
	KEY_LBRACKET  KeyCode = 0xDB
	KEY_RBRACKET  KeyCode = 0xDD

	KEYS_MAX_KEYS = 256
)

var keyNames = map[string][]KeyCode{
	"tab":         {KEY_TAB},
	"enter":       {KEY_ENTER},
	"escape":      {KEY_ESCAPE},
	"space":       {KEY_SPACE},
	"backspace":   {KEY_BACKSPACE},
	"delete":      {KEY_DELETE},
	"shift":       {KEY_SHIFT, KEY_LSHIFT, KEY_RSHIFT},
	"control":     {KEY_CONTROL, KEY_LCONTROL, KEY_RCONTROL},
	"arrow_left":  {KEY_LEFT},
	"arrow_up":    {KEY_UP},
	"arrow_right": {KEY_RIGHT},
	"arrow_down":  {KEY_DOWN},
	";":           {KEY_SEMICOLON},
	"=":           {KEY_PLUS},
	",":           {KEY_COMMA},
	"-":           {KEY_MINUS},
	".":           {KEY_PERIOD},
	"/":           {KEY_SLASH},
	"`":           {KEY_GRAVE},
	"[":           {KEY_LBRACKET},
	"]":           {KEY_RBRACKET},
}

func init() {
	for c := KEY_0; c <= KEY_9; c++ {
		keyNames[string(rune(c))] = []KeyCode{c}
	}
	for c := KEY_A; c <= KEY_Z; c++ {
		keyNames[strings.ToLower(string(rune(c)))] = []KeyCode{c}
	}
}

// KeyCodesFromName returns the key codes bound to a button name such as "w",
// "shift" or "arrow_up".
func KeyCodesFromName(name string) ([]KeyCode, bool) {
	codes, ok := keyNames[name]
	return codes, ok
}

type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Input state structure that holds current and previous states for keyboard and mouse
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState

	bus       *EventBus
	hasMouse  bool
	width     float64
	height    float64
	wheelUp   bool
	wheelDown bool
}

func NewInputState(bus *EventBus) *InputState {
	LogInfo("Input subsystem initialized.")
	return &InputState{
		bus:    bus,
		width:  1,
		height: 1,
	}
}

// Update copies the current states to the previous states. Should be the
// last thing done in a frame.
func (is *InputState) Update(deltaTime float64) {
	is.KeyboardPrevious = is.KeyboardCurrent
	is.MousePrevious = is.MouseCurrent
}

// SetViewport records the window size used to normalize the mouse position.
func (is *InputState) SetViewport(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	is.width = float64(width)
	is.height = float64(height)
}

// IsKeyDown reports whether the named button is held. Unknown names are never down.
func (is *InputState) IsKeyDown(name string) bool {
	codes, ok := keyNames[name]
	if !ok {
		LogDebug("unmapped key name `%s`", name)
		return false
	}
	for _, c := range codes {
		if is.KeyboardCurrent.Keys[c] {
			return true
		}
	}
	return false
}

// keyboard input
func (is *InputState) IsKeyCodeDown(key KeyCode) bool {
	return is.KeyboardCurrent.Keys[key]
}

func (is *InputState) WasKeyCodeDown(key KeyCode) bool {
	return is.KeyboardPrevious.Keys[key]
}

func (is *InputState) ProcessKey(key KeyCode, pressed bool) {
	if key >= KEYS_MAX_KEYS {
		return
	}
	// Only handle this if the state actually changed.
	if is.KeyboardCurrent.Keys[key] == pressed {
		return
	}
	is.KeyboardCurrent.Keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	if is.bus != nil {
		is.bus.Fire(EventContext{
			Type: code,
			Data: &KeyEvent{KeyCode: key},
		})
	}
}

// mouse input
func (is *InputState) IsButtonDown(button Button) bool {
	return is.MouseCurrent.Buttons[button]
}

func (is *InputState) WasButtonDown(button Button) bool {
	return is.MousePrevious.Buttons[button]
}

// HasMouse reports whether the pointer is inside the window.
func (is *InputState) HasMouse() bool {
	return is.hasMouse
}

// MousePosition returns the pointer position in [-1, 1] with y pointing up.
func (is *InputState) MousePosition() (float32, float32) {
	x := (is.MouseCurrent.X/is.width)*2 - 1
	y := 1 - (is.MouseCurrent.Y/is.height)*2
	return float32(x), float32(y)
}

// WheelUp reports a wheel up step since the last call and clears it.
func (is *InputState) WheelUp() bool {
	v := is.wheelUp
	is.wheelUp = false
	return v
}

// WheelDown reports a wheel down step since the last call and clears it.
func (is *InputState) WheelDown() bool {
	v := is.wheelDown
	is.wheelDown = false
	return v
}

func (is *InputState) ProcessButton(button Button, pressed bool) {
	if button >= BUTTON_MAX_BUTTONS || is.MouseCurrent.Buttons[button] == pressed {
		return
	}
	is.MouseCurrent.Buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	if is.bus != nil {
		is.bus.Fire(EventContext{
			Type: code,
			Data: &MouseEvent{Button: button},
		})
	}
}

func (is *InputState) ProcessMouseMove(x, y float64) {
	if is.MouseCurrent.X == x && is.MouseCurrent.Y == y {
		return
	}
	is.MouseCurrent.X = x
	is.MouseCurrent.Y = y
	if is.bus != nil {
		is.bus.Fire(EventContext{
			Type: EVENT_CODE_MOUSE_MOVED,
			Data: &MouseEvent{X: x, Y: y},
		})
	}
}

func (is *InputState) ProcessMouseWheel(delta int8) {
	switch {
	case delta > 0:
		is.wheelUp = true
	case delta < 0:
		is.wheelDown = true
	default:
		return
	}
	if is.bus != nil {
		is.bus.Fire(EventContext{
			Type: EVENT_CODE_MOUSE_WHEEL,
			Data: &MouseEvent{WheelDelta: delta},
		})
	}
}

// ProcessMouseEnter records whether the pointer is over the window.
func (is *InputState) ProcessMouseEnter(entered bool) {
	is.hasMouse = entered
}
