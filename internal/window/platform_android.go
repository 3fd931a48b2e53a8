//go:build android

package window

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ebitengine/purego"
)

const buildBackend = BackendHosted

// androidSurfaces binds the ANativeWindow reference-counting API from
// libandroid.so without cgo.
type androidSurfaces struct {
	acquire   func(uintptr)
	release   func(uintptr)
	getWidth  func(uintptr) int32
	getHeight func(uintptr) int32
}

var (
	androidOnce    sync.Once
	androidLib     *androidSurfaces
	androidLoadErr error
)

func systemSurfaces() (NativeSurfaces, error) {
	androidOnce.Do(func() {
		lib, err := purego.Dlopen("libandroid.so", purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			androidLoadErr = fmt.Errorf("%w: load libandroid.so: %v", ErrBackendUnavailable, err)
			return
		}
		s := &androidSurfaces{}
		purego.RegisterLibFunc(&s.acquire, lib, "ANativeWindow_acquire")
		purego.RegisterLibFunc(&s.release, lib, "ANativeWindow_release")
		purego.RegisterLibFunc(&s.getWidth, lib, "ANativeWindow_getWidth")
		purego.RegisterLibFunc(&s.getHeight, lib, "ANativeWindow_getHeight")
		androidLib = s
	})
	if androidLoadErr != nil {
		return nil, androidLoadErr
	}
	return androidLib, nil
}

func (s *androidSurfaces) Acquire(surface uintptr) { s.acquire(surface) }

func (s *androidSurfaces) Release(surface uintptr) { s.release(surface) }

func (s *androidSurfaces) Size(surface uintptr) (int32, int32) {
	return s.getWidth(surface), s.getHeight(surface)
}

func (s *androidSurfaces) HandleKind() HandleKind { return HandleANativeWindow }

func newX11Backend(desc WindowDesc, logger *slog.Logger) (backend, error) {
	return nil, fmt.Errorf("%w: x11 is not available on android", ErrBackendUnavailable)
}
