package window

import (
	"fmt"
	"image"
)

// HandleKind tags which native surface a WindowHandle refers to.
type HandleKind uint8

const (
	HandleNone HandleKind = iota
	// HandleANativeWindow is an Android ANativeWindow pointer.
	HandleANativeWindow
	// HandleX11 is an X11 window XID.
	HandleX11
	// HandleOffscreen is an in-process RGBA surface.
	HandleOffscreen
)

func (k HandleKind) String() string {
	switch k {
	case HandleNone:
		return "none"
	case HandleANativeWindow:
		return "android-native-window"
	case HandleX11:
		return "x11"
	case HandleOffscreen:
		return "offscreen"
	default:
		return fmt.Sprintf("HandleKind(%d)", uint8(k))
	}
}

// WindowHandle is a non-owning view of the surface behind a Window, for
// consumers such as a graphics device. It carries at most one reference and
// must not outlive the Window's hold on that surface.
type WindowHandle struct {
	kind   HandleKind
	native uintptr
	image  *image.RGBA
}

func nativeHandle(kind HandleKind, native uintptr) WindowHandle {
	if native == 0 {
		return WindowHandle{}
	}
	return WindowHandle{kind: kind, native: native}
}

func offscreenHandle(img *image.RGBA) WindowHandle {
	if img == nil {
		return WindowHandle{}
	}
	return WindowHandle{kind: HandleOffscreen, image: img}
}

func (h WindowHandle) Kind() HandleKind { return h.kind }

// Native returns the native pointer or XID. It is zero for offscreen and empty handles.
func (h WindowHandle) Native() uintptr { return h.native }

// Image returns the offscreen surface, or nil for native handles.
func (h WindowHandle) Image() *image.RGBA { return h.image }

// IsValid reports whether the handle refers to a surface.
func (h WindowHandle) IsValid() bool {
	return h.kind != HandleNone
}

func (h WindowHandle) String() string {
	switch h.kind {
	case HandleNone:
		return "WindowHandle(none)"
	case HandleOffscreen:
		b := h.image.Bounds()
		return fmt.Sprintf("WindowHandle(%s %dx%d)", h.kind, b.Dx(), b.Dy())
	default:
		return fmt.Sprintf("WindowHandle(%s 0x%x)", h.kind, h.native)
	}
}
