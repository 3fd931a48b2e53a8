package window

import "fmt"

// HostBridge translates a host's surface lifecycle into Window calls. Android
// delivers surfaceCreated, surfaceChanged and surfaceDestroyed; a surface may
// be destroyed and recreated many times while the window lives on.
type HostBridge struct {
	w *Window
}

func NewHostBridge(w *Window) *HostBridge {
	return &HostBridge{w: w}
}

func (h *HostBridge) Window() *Window { return h.w }

// SurfaceCreated adopts the new surface, dropping any surface the host forgot
// to revoke first.
func (h *HostBridge) SurfaceCreated(token uintptr) error {
	h.w.ReleaseNativeHandle()
	if err := h.w.AdoptNativeHandle(token); err != nil {
		return fmt.Errorf("surface created: %w", err)
	}
	return nil
}

// SurfaceChanged reports a new surface size to the window's subscribers.
func (h *HostBridge) SurfaceChanged(width, height uint32) {
	h.w.HandleWindowSize(width, height)
}

// SurfaceDestroyed gives the surface back to the host.
func (h *HostBridge) SurfaceDestroyed() {
	h.w.ReleaseNativeHandle()
}

// Terminate asks the application to close and destroys the window.
func (h *HostBridge) Terminate() error {
	h.w.Close()
	return h.w.Destroy()
}
