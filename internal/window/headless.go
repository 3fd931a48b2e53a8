package window

import (
	"fmt"
	"image"
	"image/draw"
)

// maxHeadlessDimension bounds each side of the offscreen surface. A square
// surface at the limit is 1 GiB of RGBA.
const maxHeadlessDimension = 1 << 14

// headlessBackend owns an offscreen RGBA surface that follows the window size.
// It has no presentation, so everything but resizing is a no-op.
type headlessBackend struct {
	img *image.RGBA
}

var _ backend = (*headlessBackend)(nil)

func newHeadlessBackend(desc WindowDesc) (*headlessBackend, error) {
	if err := checkHeadlessSize(desc.Width, desc.Height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDesc, err)
	}
	return &headlessBackend{
		img: image.NewRGBA(image.Rect(0, 0, int(desc.Width), int(desc.Height))),
	}, nil
}

func checkHeadlessSize(width, height uint32) error {
	if width > maxHeadlessDimension || height > maxHeadlessDimension {
		return fmt.Errorf("headless surface %dx%d exceeds %d pixels per side", width, height, maxHeadlessDimension)
	}
	return nil
}

func (b *headlessBackend) kind() Backend { return BackendHeadless }

func (b *headlessBackend) capabilities() Capability {
	return CapOwnsSurface | CapResizable
}

func (b *headlessBackend) adopt(token uintptr) (int32, int32, error) {
	return 0, 0, ErrSurfaceOwned
}

func (b *headlessBackend) release() {}

func (b *headlessBackend) destroy() error {
	b.img = nil
	return nil
}

func (b *headlessBackend) handle() WindowHandle {
	return offscreenHandle(b.img)
}

// resize reallocates the surface, keeping the overlapping pixels. Sizes the
// surface cannot hold leave it untouched.
func (b *headlessBackend) resize(width, height uint32) error {
	if b.img == nil {
		return nil
	}
	if err := checkHeadlessSize(width, height); err != nil {
		return err
	}
	bounds := image.Rect(0, 0, int(width), int(height))
	if bounds == b.img.Bounds() {
		return nil
	}
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, b.img, image.Point{}, draw.Src)
	b.img = img
	return nil
}

// surfaceResized keeps the owned surface sized to the window.
func (b *headlessBackend) surfaceResized(width, height uint32) error {
	return b.resize(width, height)
}

func (b *headlessBackend) position() image.Point { return image.Point{} }

func (b *headlessBackend) setPosition(pos image.Point) {}

func (b *headlessBackend) setTitle(title string) {}

func (b *headlessBackend) setIcon(path string) error { return nil }

func (b *headlessBackend) setClipboard(text string) error { return nil }

func (b *headlessBackend) clipboard() (string, bool) { return "", false }

func (b *headlessBackend) setCursorMode(mode CursorMode) {}

func (b *headlessBackend) pollGamepad(sink eventSink) {}

func (b *headlessBackend) processEvents(sink eventSink) {}
