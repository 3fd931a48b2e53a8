//go:build !android

package window

import "github.com/BurntSushi/xgb/xproto"

// X11 keysyms outside the Latin-1 letter and digit ranges.
var x11Keysyms = map[uint32]Key{
	0x0020: KeySpace,
	0x0027: KeyApostrophe,
	0x002c: KeyComma,
	0x002d: KeyMinus,
	0x002e: KeyPeriod,
	0x002f: KeySlash,
	0x003b: KeySemicolon,
	0x003d: KeyEqual,
	0x005b: KeyLeftBracket,
	0x005c: KeyBackslash,
	0x005d: KeyRightBracket,
	0x0060: KeyGraveAccent,

	0xff08: KeyBackspace,
	0xff09: KeyTab,
	0xff0d: KeyEnter,
	0xff13: KeyPause,
	0xff14: KeyScrollLock,
	0xff1b: KeyEscape,
	0xff50: KeyHome,
	0xff51: KeyLeft,
	0xff52: KeyUp,
	0xff53: KeyRight,
	0xff54: KeyDown,
	0xff55: KeyPageUp,
	0xff56: KeyPageDown,
	0xff57: KeyEnd,
	0xff61: KeyPrintScreen,
	0xff63: KeyInsert,
	0xff7f: KeyNumLock,
	0xffff: KeyDelete,

	0xff8d: KeyKeypadEnter,
	0xffaa: KeyKeypadMultiply,
	0xffab: KeyKeypadAdd,
	0xffad: KeyKeypadSubtract,
	0xffae: KeyKeypadDecimal,
	0xffaf: KeyKeypadDivide,
	0xffbd: KeyKeypadEqual,

	0xffe1: KeyLeftShift,
	0xffe2: KeyRightShift,
	0xffe3: KeyLeftControl,
	0xffe4: KeyRightControl,
	0xffe5: KeyCapsLock,
	0xffe9: KeyLeftAlt,
	0xffea: KeyRightAlt,
	0xffeb: KeyLeftSuper,
	0xffec: KeyRightSuper,
}

func keyFromKeysym(sym uint32) Key {
	switch {
	case sym >= 'a' && sym <= 'z':
		return KeyA + Key(sym-'a')
	case sym >= 'A' && sym <= 'Z':
		return KeyA + Key(sym-'A')
	case sym >= '0' && sym <= '9':
		return Key0 + Key(sym-'0')
	case sym >= 0xffbe && sym <= 0xffc9:
		return KeyF1 + Key(sym-0xffbe)
	case sym >= 0xffb0 && sym <= 0xffb9:
		return KeyKeypad0 + Key(sym-0xffb0)
	}
	if key, ok := x11Keysyms[sym]; ok {
		return key
	}
	return KeyUnknown
}

func modsFromX11State(state uint16) KeyMods {
	var mods KeyMods
	if state&xproto.ModMaskShift != 0 {
		mods |= ModShift
	}
	if state&xproto.ModMaskControl != 0 {
		mods |= ModCtrl
	}
	if state&xproto.ModMask1 != 0 {
		mods |= ModAlt
	}
	if state&xproto.ModMask4 != 0 {
		mods |= ModSuper
	}
	return mods
}

func buttonFromX11(detail byte) MouseButton {
	switch detail {
	case 1:
		return MouseButtonLeft
	case 2:
		return MouseButtonMiddle
	case 3:
		return MouseButtonRight
	case 8:
		return MouseButton4
	case 9:
		return MouseButton5
	default:
		return MouseButtonUnknown
	}
}

// scrollFromX11Button maps the core protocol's wheel buttons 4-7 to a scroll delta.
func scrollFromX11Button(detail byte) (Vec2, bool) {
	switch detail {
	case 4:
		return Vec2{Y: 1}, true
	case 5:
		return Vec2{Y: -1}, true
	case 6:
		return Vec2{X: -1}, true
	case 7:
		return Vec2{X: 1}, true
	default:
		return Vec2{}, false
	}
}
