package window

import "errors"

var (
	// ErrInvalidDesc is returned by New when the description has a zero width or height.
	ErrInvalidDesc = errors.New("invalid window description")

	// ErrInvalidHandle is returned when a native surface token resolves to a null reference.
	// A window that failed adoption must not be used for presentation.
	ErrInvalidHandle = errors.New("invalid native window handle")

	// ErrAlreadyAdopted is returned when a native handle is adopted while another one is still held.
	ErrAlreadyAdopted = errors.New("native window handle already adopted")

	// ErrSurfaceOwned is returned by backends that create their own native surface.
	ErrSurfaceOwned = errors.New("backend owns its native surface")

	// ErrBackendUnavailable is returned when the selected backend cannot run in this process.
	ErrBackendUnavailable = errors.New("window backend unavailable")

	// ErrUnknownBackend is returned when parsing an unrecognised backend name.
	ErrUnknownBackend = errors.New("unknown window backend")

	ErrDestroyed = errors.New("window destroyed")
)
