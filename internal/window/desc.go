package window

import (
	"fmt"
	"strings"
)

// WindowMode is the initial presentation state requested for a window.
// Backends without a window manager ignore it.
type WindowMode uint8

const (
	WindowModeNormal WindowMode = iota
	WindowModeMinimized
	WindowModeMaximized
	WindowModeFullscreen
)

func (m WindowMode) String() string {
	switch m {
	case WindowModeNormal:
		return "normal"
	case WindowModeMinimized:
		return "minimized"
	case WindowModeMaximized:
		return "maximized"
	case WindowModeFullscreen:
		return "fullscreen"
	default:
		return fmt.Sprintf("WindowMode(%d)", uint8(m))
	}
}

// ParseWindowMode converts a mode name as produced by WindowMode.String.
// The empty string selects WindowModeNormal.
func ParseWindowMode(s string) (WindowMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return WindowModeNormal, nil
	case "minimized":
		return WindowModeMinimized, nil
	case "maximized":
		return WindowModeMaximized, nil
	case "fullscreen":
		return WindowModeFullscreen, nil
	default:
		return 0, fmt.Errorf("unknown window mode %q", s)
	}
}

// WindowDesc describes a window to create.
type WindowDesc struct {
	Width  uint32
	Height uint32
	Title  string

	// Mode and Resizable are hints; only backends with a window manager honour them.
	Mode      WindowMode
	Resizable bool
}

// DefaultWindowDesc returns the description used when the caller has no preference.
func DefaultWindowDesc() WindowDesc {
	return WindowDesc{
		Width:     1024,
		Height:    1024,
		Title:     "slangpy",
		Mode:      WindowModeNormal,
		Resizable: true,
	}
}

// Validate reports whether the description can be used to create a window.
func (d WindowDesc) Validate() error {
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("%w: width and height must be positive, got %dx%d", ErrInvalidDesc, d.Width, d.Height)
	}
	if d.Mode > WindowModeFullscreen {
		return fmt.Errorf("%w: %s", ErrInvalidDesc, d.Mode)
	}
	return nil
}
