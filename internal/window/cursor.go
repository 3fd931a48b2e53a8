package window

import "fmt"

// CursorMode controls how the pointer behaves over the window.
type CursorMode uint8

const (
	CursorModeNormal CursorMode = iota
	// CursorModeHidden hides the pointer while it is over the window.
	CursorModeHidden
	// CursorModeDisabled hides the pointer and confines it to the window.
	CursorModeDisabled
)

func (m CursorMode) String() string {
	switch m {
	case CursorModeNormal:
		return "normal"
	case CursorModeHidden:
		return "hidden"
	case CursorModeDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("CursorMode(%d)", uint8(m))
	}
}
