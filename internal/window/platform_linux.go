//go:build !android

package window

import "fmt"

const buildBackend = BackendX11

func systemSurfaces() (NativeSurfaces, error) {
	return nil, fmt.Errorf("%w: no host surface library on this platform, use WithSurfaces", ErrBackendUnavailable)
}
