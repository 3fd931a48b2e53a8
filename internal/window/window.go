// Package window is a platform-neutral window with a uniform lifecycle and
// event-callback contract, backed by one platform variant per Window.
//
// A Window is not safe for concurrent use. Every method, including the
// Handle* entry points a host uses to inject events, must be called from the
// single context the application treats as its UI thread.
package window

import (
	"fmt"
	"image"
	"log/slog"
)

// Window is one logical surface. The cached size, title and cursor mode are
// always readable, whatever the backend supports.
type Window struct {
	width      uint32
	height     uint32
	title      string
	cursorMode CursorMode

	shouldClose bool
	destroyed   bool

	backend backend
	logger  *slog.Logger

	callbacks
}

// New creates a window from desc. On BackendHosted no native surface exists
// yet; the host hands one over later with AdoptNativeHandle.
func New(desc WindowDesc, opts ...Option) (*Window, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.backend == "" {
		b, err := DefaultBackend()
		if err != nil {
			return nil, err
		}
		o.backend = b
	}

	b, err := newBackend(desc, &o)
	if err != nil {
		return nil, fmt.Errorf("create %s window: %w", o.backend, err)
	}

	return &Window{
		width:   desc.Width,
		height:  desc.Height,
		title:   desc.Title,
		backend: b,
		logger:  o.logger.With("window_backend", string(b.kind())),
	}, nil
}

// AdoptNativeHandle binds the window to a host-owned native surface and takes
// a reference on it, released by ReleaseNativeHandle or Destroy. The window
// size is updated from the surface when the surface reports a positive size.
//
// A zero token fails with ErrInvalidHandle. Adopting while another handle is
// held fails with ErrAlreadyAdopted; backends that create their own surface
// fail with ErrSurfaceOwned.
func (w *Window) AdoptNativeHandle(token uintptr) error {
	if w.destroyed {
		return ErrDestroyed
	}

	if token == 0 {
		return fmt.Errorf("adopt native window: %w", ErrInvalidHandle)
	}

	w.logger.Debug("adopting native window", "token", fmt.Sprintf("0x%x", token))
	width, height, err := w.backend.adopt(token)
	if err != nil {
		return fmt.Errorf("adopt native window 0x%x: %w", token, err)
	}

	if width <= 0 || height <= 0 {
		w.logger.Warn("native window reported invalid dimensions; keeping current size",
			"reported_width", width, "reported_height", height,
			"width", w.width, "height", w.height)
		return nil
	}

	w.width = uint32(width)
	w.height = uint32(height)
	w.logger.Debug("native window adopted", "width", w.width, "height", w.height)
	return nil
}

// ReleaseNativeHandle drops the reference taken by AdoptNativeHandle, for
// hosts that revoke the surface while the window lives on. A later
// AdoptNativeHandle may bind a new surface. It is a no-op when nothing is held.
func (w *Window) ReleaseNativeHandle() {
	if w.destroyed {
		return
	}
	w.backend.release()
}

// Destroy releases every platform resource held by the window. It is safe to
// call more than once and on windows that never adopted a handle.
func (w *Window) Destroy() error {
	if w.destroyed {
		return nil
	}
	w.destroyed = true
	if err := w.backend.destroy(); err != nil {
		return fmt.Errorf("destroy %s window: %w", w.backend.kind(), err)
	}
	return nil
}

// WindowHandle returns a non-owning view of the native surface. It is empty
// before a hosted window adopts a handle and after Destroy.
func (w *Window) WindowHandle() WindowHandle {
	if w.destroyed {
		return WindowHandle{}
	}
	return w.backend.handle()
}

func (w *Window) Backend() Backend { return w.backend.kind() }

// Capabilities reports which operations the backend performs for real.
func (w *Window) Capabilities() Capability { return w.backend.capabilities() }

func (w *Window) Width() uint32 { return w.width }

func (w *Window) Height() uint32 { return w.height }

func (w *Window) Size() (width, height uint32) { return w.width, w.height }

func (w *Window) Title() string { return w.title }

// Resize updates the cached size and asks the backend to resize its surface.
// It never fires the resize callback; only HandleWindowSize does. Zero
// dimensions and sizes the backend cannot apply are ignored.
func (w *Window) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		w.logger.Warn("ignoring resize to empty size", "width", width, "height", height)
		return
	}
	if !w.destroyed {
		if err := w.backend.resize(width, height); err != nil {
			w.logger.Warn("ignoring resize", "width", width, "height", height, "error", err)
			return
		}
	}
	w.width = width
	w.height = height
}

func (w *Window) SetWidth(width uint32) { w.Resize(width, w.height) }

func (w *Window) SetHeight(height uint32) { w.Resize(w.width, height) }

func (w *Window) SetSize(width, height uint32) { w.Resize(width, height) }

// Position returns the window origin on screen, or (0, 0) when the backend
// has no notion of position.
func (w *Window) Position() image.Point {
	if w.destroyed {
		return image.Point{}
	}
	return w.backend.position()
}

func (w *Window) SetPosition(pos image.Point) {
	if w.destroyed {
		return
	}
	w.backend.setPosition(pos)
}

// SetTitle updates the cached title and the title bar, if there is one.
func (w *Window) SetTitle(title string) {
	w.title = title
	if !w.destroyed {
		w.backend.setTitle(title)
	}
}

// SetIcon loads a PNG icon from path. Backends without icons ignore it.
func (w *Window) SetIcon(path string) error {
	if w.destroyed {
		return nil
	}
	if err := w.backend.setIcon(path); err != nil {
		return fmt.Errorf("set icon %s: %w", path, err)
	}
	return nil
}

// SetClipboard places text on the system clipboard. Backends without a
// clipboard ignore it.
func (w *Window) SetClipboard(text string) error {
	if w.destroyed {
		return nil
	}
	return w.backend.setClipboard(text)
}

// Clipboard returns the clipboard text. The boolean is false when the backend
// has no clipboard or the clipboard holds no text.
func (w *Window) Clipboard() (string, bool) {
	if w.destroyed {
		return "", false
	}
	return w.backend.clipboard()
}

func (w *Window) CursorMode() CursorMode { return w.cursorMode }

func (w *Window) SetCursorMode(mode CursorMode) {
	w.cursorMode = mode
	if !w.destroyed {
		w.backend.setCursorMode(mode)
	}
}

// PollGamepadInput reads pending gamepad state and dispatches it to the
// gamepad callback. Backends that cannot poll leave it to the host.
func (w *Window) PollGamepadInput() {
	if w.destroyed {
		return
	}
	w.backend.pollGamepad(w)
}

// ProcessEvents drains the backend's native event queue and dispatches each
// event. Host-driven backends have no queue of their own.
func (w *Window) ProcessEvents() {
	if w.destroyed {
		return
	}
	w.backend.processEvents(w)
}

// Close marks the window as wanting to close. The flag never resets.
func (w *Window) Close() { w.shouldClose = true }

func (w *Window) ShouldClose() bool { return w.shouldClose }

func (w *Window) String() string {
	return fmt.Sprintf("Window(\n  width = %d,\n  height = %d,\n  title = \"%s\"\n)", w.width, w.height, w.title)
}
