//go:build !linux

package window

import (
	"fmt"
	"log/slog"
)

const buildBackend = BackendHeadless

func systemSurfaces() (NativeSurfaces, error) {
	return nil, fmt.Errorf("%w: no host surface library on this platform, use WithSurfaces", ErrBackendUnavailable)
}

func newX11Backend(desc WindowDesc, logger *slog.Logger) (backend, error) {
	return nil, fmt.Errorf("%w: x11 requires linux", ErrBackendUnavailable)
}
