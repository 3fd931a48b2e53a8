package window

// NativeSurfaces is the reference-counting API of a host platform's native
// surface objects. Tokens are native pointers passed in by the host.
type NativeSurfaces interface {
	// Acquire adds a reference to the surface.
	Acquire(surface uintptr)
	// Release drops a reference added by Acquire.
	Release(surface uintptr)
	// Size reports the current surface size as the platform sees it.
	// Either value may be non-positive while the surface is not ready.
	Size(surface uintptr) (width, height int32)
	// HandleKind tags the handles built from these surfaces.
	HandleKind() HandleKind
}
