package window

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
)

// Backend names a platform variant. Exactly one is the build default; the
// choice is made once when a Window is created.
type Backend string

const (
	// BackendHosted adopts a native surface created and owned by a host environment.
	BackendHosted Backend = "hosted"
	// BackendX11 creates and owns a top-level X11 window.
	BackendX11 Backend = "x11"
	// BackendHeadless owns an in-process offscreen surface.
	BackendHeadless Backend = "headless"
)

// BackendEnv overrides DefaultBackend for the whole process when set.
const BackendEnv = "SLANGPY_WINDOW_BACKEND"

// ParseBackend converts a backend name. The empty string selects DefaultBackend.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case "":
		return DefaultBackend()
	case BackendHosted, BackendX11, BackendHeadless:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// DefaultBackend returns the backend selected by BackendEnv, or the build
// default when it is unset. An unknown BackendEnv value is an error.
func DefaultBackend() (Backend, error) {
	name := os.Getenv(BackendEnv)
	if strings.TrimSpace(name) == "" {
		return buildBackend, nil
	}
	b, err := ParseBackend(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", BackendEnv, err)
	}
	return b, nil
}

// eventSink receives events a backend reads from its own platform queue.
// *Window implements it, so backend-originated events take the same path as
// host-injected ones.
type eventSink interface {
	HandleWindowSize(width, height uint32)
	HandleKeyboardEvent(event KeyboardEvent)
	HandleMouseEvent(event MouseEvent)
	HandleGamepadEvent(event GamepadEvent)
	HandleDropFiles(files []string)
	Close()
}

// backend is the contract every platform variant implements. Shape is
// identical across variants; operations outside capabilities() are no-ops.
type backend interface {
	kind() Backend
	capabilities() Capability

	// adopt takes a reference on a host-owned surface and reports its size.
	adopt(token uintptr) (width, height int32, err error)
	// release drops whatever adopt acquired. Safe to call repeatedly.
	release()
	// destroy tears down everything the backend holds, including release().
	destroy() error
	handle() WindowHandle

	// resize applies a size requested by the application. An error leaves
	// the surface at its previous size.
	resize(width, height uint32) error
	// surfaceResized follows a size the platform already applied. Backends
	// that own an offscreen surface reallocate it; the rest ignore it.
	surfaceResized(width, height uint32) error
	position() image.Point
	setPosition(pos image.Point)
	setTitle(title string)
	setIcon(path string) error
	setClipboard(text string) error
	clipboard() (string, bool)
	setCursorMode(mode CursorMode)
	pollGamepad(sink eventSink)
	processEvents(sink eventSink)
}

// Option configures New.
type Option func(*options)

type options struct {
	backend  Backend
	surfaces NativeSurfaces
	logger   *slog.Logger
}

// WithBackend overrides the default backend for one window. BackendEnv is
// not consulted when it is given.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithSurfaces supplies the native surface library used by BackendHosted.
// Without it the platform library is loaded, which only exists on Android.
func WithSurfaces(s NativeSurfaces) Option {
	return func(o *options) { o.surfaces = s }
}

// WithLogger sets the logger for diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newBackend(desc WindowDesc, o *options) (backend, error) {
	switch o.backend {
	case BackendHosted:
		surfaces := o.surfaces
		if surfaces == nil {
			var err error
			surfaces, err = systemSurfaces()
			if err != nil {
				return nil, err
			}
		}
		return newHostedBackend(surfaces), nil
	case BackendHeadless:
		return newHeadlessBackend(desc)
	case BackendX11:
		return newX11Backend(desc, o.logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, string(o.backend))
	}
}
