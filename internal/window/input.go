package window

import "fmt"

// Key identifies a physical keyboard key independent of layout.
type Key uint16

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper
	KeyRightSuper

	KeySpace
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	KeyGraveAccent  // `
	KeyMinus        // -
	KeyEqual        // =
	KeyLeftBracket  // [
	KeyRightBracket // ]
	KeyBackslash    // \
	KeySemicolon    // ;
	KeyApostrophe   // '
	KeyComma        // ,
	KeyPeriod       // .
	KeySlash        // /

	KeyKeypad0
	KeyKeypad1
	KeyKeypad2
	KeyKeypad3
	KeyKeypad4
	KeyKeypad5
	KeyKeypad6
	KeyKeypad7
	KeyKeypad8
	KeyKeypad9
	KeyKeypadDecimal
	KeyKeypadDivide
	KeyKeypadMultiply
	KeyKeypadSubtract
	KeyKeypadAdd
	KeyKeypadEnter
	KeyKeypadEqual

	keyCount
)

var namedKeys = map[Key]string{
	KeyUnknown:        "unknown",
	KeyLeftShift:      "left_shift",
	KeyRightShift:     "right_shift",
	KeyLeftControl:    "left_control",
	KeyRightControl:   "right_control",
	KeyLeftAlt:        "left_alt",
	KeyRightAlt:       "right_alt",
	KeyLeftSuper:      "left_super",
	KeyRightSuper:     "right_super",
	KeySpace:          "space",
	KeyEnter:          "enter",
	KeyEscape:         "escape",
	KeyBackspace:      "backspace",
	KeyDelete:         "delete",
	KeyTab:            "tab",
	KeyCapsLock:       "caps_lock",
	KeyScrollLock:     "scroll_lock",
	KeyNumLock:        "num_lock",
	KeyPrintScreen:    "print_screen",
	KeyPause:          "pause",
	KeyUp:             "up",
	KeyDown:           "down",
	KeyLeft:           "left",
	KeyRight:          "right",
	KeyHome:           "home",
	KeyEnd:            "end",
	KeyPageUp:         "page_up",
	KeyPageDown:       "page_down",
	KeyInsert:         "insert",
	KeyGraveAccent:    "grave_accent",
	KeyMinus:          "minus",
	KeyEqual:          "equal",
	KeyLeftBracket:    "left_bracket",
	KeyRightBracket:   "right_bracket",
	KeyBackslash:      "backslash",
	KeySemicolon:      "semicolon",
	KeyApostrophe:     "apostrophe",
	KeyComma:          "comma",
	KeyPeriod:         "period",
	KeySlash:          "slash",
	KeyKeypadDecimal:  "keypad_decimal",
	KeyKeypadDivide:   "keypad_divide",
	KeyKeypadMultiply: "keypad_multiply",
	KeyKeypadSubtract: "keypad_subtract",
	KeyKeypadAdd:      "keypad_add",
	KeyKeypadEnter:    "keypad_enter",
	KeyKeypadEqual:    "keypad_equal",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + (k - KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + (k - Key0)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("f%d", k-KeyF1+1)
	case k >= KeyKeypad0 && k <= KeyKeypad9:
		return fmt.Sprintf("keypad_%d", k-KeyKeypad0)
	}
	if name, ok := namedKeys[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// KeyMods is the set of modifier keys held when an event was generated.
type KeyMods uint8

const (
	ModShift KeyMods = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

func (m KeyMods) String() string {
	if m == 0 {
		return "none"
	}
	s := ""
	for _, mod := range []struct {
		bit  KeyMods
		name string
	}{{ModShift, "shift"}, {ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModSuper, "super"}} {
		if m&mod.bit == 0 {
			continue
		}
		if s != "" {
			s += "+"
		}
		s += mod.name
	}
	return s
}

// KeyboardEventType describes the kind of keyboard event.
type KeyboardEventType uint8

const (
	KeyPress KeyboardEventType = iota
	KeyRelease
	KeyRepeat
	// KeyInput carries a translated character in Codepoint.
	KeyInput
)

func (t KeyboardEventType) String() string {
	switch t {
	case KeyPress:
		return "key_press"
	case KeyRelease:
		return "key_release"
	case KeyRepeat:
		return "key_repeat"
	case KeyInput:
		return "input"
	default:
		return fmt.Sprintf("KeyboardEventType(%d)", uint8(t))
	}
}

type KeyboardEvent struct {
	Type      KeyboardEventType
	Key       Key
	Mods      KeyMods
	Codepoint rune
}

func (e KeyboardEvent) String() string {
	if e.Type == KeyInput {
		return fmt.Sprintf("KeyboardEvent(%s %q)", e.Type, e.Codepoint)
	}
	return fmt.Sprintf("KeyboardEvent(%s %s mods=%s)", e.Type, e.Key, e.Mods)
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButton4
	MouseButton5
	MouseButtonUnknown
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	case MouseButton4:
		return "button4"
	case MouseButton5:
		return "button5"
	default:
		return "unknown"
	}
}

// MouseEventType describes the kind of mouse event.
type MouseEventType uint8

const (
	MouseButtonDown MouseEventType = iota
	MouseButtonUp
	MouseMove
	MouseScroll
)

func (t MouseEventType) String() string {
	switch t {
	case MouseButtonDown:
		return "button_down"
	case MouseButtonUp:
		return "button_up"
	case MouseMove:
		return "move"
	case MouseScroll:
		return "scroll"
	default:
		return fmt.Sprintf("MouseEventType(%d)", uint8(t))
	}
}

// Vec2 is a position or delta in window coordinates.
type Vec2 struct {
	X, Y float32
}

type MouseEvent struct {
	Type MouseEventType
	Pos  Vec2
	// Scroll is meaningful for MouseScroll, in wheel notches.
	Scroll Vec2
	// Button is meaningful for MouseButtonDown and MouseButtonUp.
	Button MouseButton
	Mods   KeyMods
}

func (e MouseEvent) String() string {
	switch e.Type {
	case MouseButtonDown, MouseButtonUp:
		return fmt.Sprintf("MouseEvent(%s %s at %g,%g)", e.Type, e.Button, e.Pos.X, e.Pos.Y)
	case MouseScroll:
		return fmt.Sprintf("MouseEvent(%s %g,%g at %g,%g)", e.Type, e.Scroll.X, e.Scroll.Y, e.Pos.X, e.Pos.Y)
	default:
		return fmt.Sprintf("MouseEvent(%s %g,%g)", e.Type, e.Pos.X, e.Pos.Y)
	}
}

// GamepadEventType describes the kind of gamepad event.
type GamepadEventType uint8

const (
	GamepadButtonDown GamepadEventType = iota
	GamepadButtonUp
	GamepadAxis
	GamepadConnected
	GamepadDisconnected
)

func (t GamepadEventType) String() string {
	switch t {
	case GamepadButtonDown:
		return "button_down"
	case GamepadButtonUp:
		return "button_up"
	case GamepadAxis:
		return "axis"
	case GamepadConnected:
		return "connected"
	case GamepadDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("GamepadEventType(%d)", uint8(t))
	}
}

type GamepadEvent struct {
	Type GamepadEventType
	// ID distinguishes connected gamepads.
	ID     int
	Button int
	Axis   int
	// Value is the axis position in [-1, 1].
	Value float32
}

func (e GamepadEvent) String() string {
	switch e.Type {
	case GamepadAxis:
		return fmt.Sprintf("GamepadEvent(%d %s %d=%g)", e.ID, e.Type, e.Axis, e.Value)
	case GamepadButtonDown, GamepadButtonUp:
		return fmt.Sprintf("GamepadEvent(%d %s %d)", e.ID, e.Type, e.Button)
	default:
		return fmt.Sprintf("GamepadEvent(%d %s)", e.ID, e.Type)
	}
}
