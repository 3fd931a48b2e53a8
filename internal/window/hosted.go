package window

import "image"

// hostedBackend is the variant for hosts that own the native surface and only
// lend it to the window: no geometry, title bar, clipboard, cursor, icon or
// gamepad polling. The host pumps events and injects them through the
// Window's Handle* methods.
type hostedBackend struct {
	surfaces NativeSurfaces
	native   uintptr
}

var _ backend = (*hostedBackend)(nil)

func newHostedBackend(surfaces NativeSurfaces) *hostedBackend {
	return &hostedBackend{surfaces: surfaces}
}

func (b *hostedBackend) kind() Backend { return BackendHosted }

func (b *hostedBackend) capabilities() Capability { return 0 }

func (b *hostedBackend) adopt(token uintptr) (int32, int32, error) {
	if token == 0 {
		return 0, 0, ErrInvalidHandle
	}
	if b.native != 0 {
		return 0, 0, ErrAlreadyAdopted
	}
	b.surfaces.Acquire(token)
	b.native = token
	width, height := b.surfaces.Size(token)
	return width, height, nil
}

func (b *hostedBackend) release() {
	if b.native == 0 {
		return
	}
	b.surfaces.Release(b.native)
	b.native = 0
}

func (b *hostedBackend) destroy() error {
	b.release()
	return nil
}

func (b *hostedBackend) handle() WindowHandle {
	return nativeHandle(b.surfaces.HandleKind(), b.native)
}

// The host owns geometry; the Window cache is the only thing that changes.
func (b *hostedBackend) resize(width, height uint32) error { return nil }

func (b *hostedBackend) surfaceResized(width, height uint32) error { return nil }

func (b *hostedBackend) position() image.Point { return image.Point{} }

func (b *hostedBackend) setPosition(pos image.Point) {}

func (b *hostedBackend) setTitle(title string) {}

func (b *hostedBackend) setIcon(path string) error { return nil }

func (b *hostedBackend) setClipboard(text string) error { return nil }

func (b *hostedBackend) clipboard() (string, bool) { return "", false }

func (b *hostedBackend) setCursorMode(mode CursorMode) {}

func (b *hostedBackend) pollGamepad(sink eventSink) {}

func (b *hostedBackend) processEvents(sink eventSink) {}
