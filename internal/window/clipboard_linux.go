//go:build !android

package window

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"
)

// x11Clipboard implements the CLIPBOARD selection over a private Xlib
// connection loaded with purego, so the package builds without cgo.
type x11Clipboard struct {
	once sync.Once
	dpy  uintptr
	// window owns the selection and receives converted data.
	window uintptr

	atomClipboard uintptr
	atomUTF8      uintptr
	atomProperty  uintptr

	// text is served while we own the selection.
	mu   sync.Mutex
	text string

	xOpenDisplay        func(*byte) uintptr
	xCloseDisplay       func(uintptr) int32
	xInternAtom         func(uintptr, *byte, int32) uintptr
	xDefaultRootWindow  func(uintptr) uintptr
	xCreateSimpleWindow func(uintptr, uintptr, int32, int32, uint32, uint32, uint32, uint64, uint64) uintptr
	xDestroyWindow      func(uintptr, uintptr) int32
	xGetSelectionOwner  func(uintptr, uintptr) uintptr
	xSetSelectionOwner  func(uintptr, uintptr, uintptr, uintptr) int32
	xConvertSelection   func(uintptr, uintptr, uintptr, uintptr, uintptr, uintptr)
	xGetWindowProperty  func(uintptr, uintptr, uintptr, int64, int64, int32, uintptr, *uintptr, *int32, *uint64, *uint64, *uintptr) int32
	xPending            func(uintptr) int32
	xNextEvent          func(uintptr, unsafe.Pointer)
	xFlush              func(uintptr)
	xFree               func(uintptr) int32
}

const (
	x11SelectionNotify = 31
	// Upper bound on clipboard text, in 32-bit units as XGetWindowProperty counts.
	x11ClipboardMaxLength = 1 << 20
	x11SelectionTimeout   = 100 * time.Millisecond
)

func newX11Clipboard() *x11Clipboard {
	return &x11Clipboard{}
}

func (c *x11Clipboard) init() {
	c.once.Do(func() {
		lib, err := purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return
		}

		purego.RegisterLibFunc(&c.xOpenDisplay, lib, "XOpenDisplay")
		purego.RegisterLibFunc(&c.xCloseDisplay, lib, "XCloseDisplay")
		purego.RegisterLibFunc(&c.xInternAtom, lib, "XInternAtom")
		purego.RegisterLibFunc(&c.xDefaultRootWindow, lib, "XDefaultRootWindow")
		purego.RegisterLibFunc(&c.xCreateSimpleWindow, lib, "XCreateSimpleWindow")
		purego.RegisterLibFunc(&c.xDestroyWindow, lib, "XDestroyWindow")
		purego.RegisterLibFunc(&c.xGetSelectionOwner, lib, "XGetSelectionOwner")
		purego.RegisterLibFunc(&c.xSetSelectionOwner, lib, "XSetSelectionOwner")
		purego.RegisterLibFunc(&c.xConvertSelection, lib, "XConvertSelection")
		purego.RegisterLibFunc(&c.xGetWindowProperty, lib, "XGetWindowProperty")
		purego.RegisterLibFunc(&c.xPending, lib, "XPending")
		purego.RegisterLibFunc(&c.xNextEvent, lib, "XNextEvent")
		purego.RegisterLibFunc(&c.xFlush, lib, "XFlush")
		purego.RegisterLibFunc(&c.xFree, lib, "XFree")

		c.dpy = c.xOpenDisplay(nil)
		if c.dpy == 0 {
			return
		}

		c.atomClipboard = c.xInternAtom(c.dpy, cString("CLIPBOARD"), 0)
		c.atomUTF8 = c.xInternAtom(c.dpy, cString("UTF8_STRING"), 0)
		c.atomProperty = c.xInternAtom(c.dpy, cString("SLANGPY_CLIPBOARD"), 0)

		root := c.xDefaultRootWindow(c.dpy)
		c.window = c.xCreateSimpleWindow(c.dpy, root, 0, 0, 1, 1, 0, 0, 0)
	})
}

// GetText returns the clipboard text, or "" when there is none.
func (c *x11Clipboard) GetText() string {
	c.init()
	if c.dpy == 0 {
		return ""
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	owner := c.xGetSelectionOwner(c.dpy, c.atomClipboard)
	if owner == 0 {
		return ""
	}
	if owner == c.window {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.text
	}

	c.xConvertSelection(c.dpy, c.atomClipboard, c.atomUTF8, c.atomProperty, c.window, 0)
	c.xFlush(c.dpy)

	var ev [24]uint64 // XEvent
	deadline := time.Now().Add(x11SelectionTimeout)
	for notified := false; !notified; {
		if c.xPending(c.dpy) == 0 {
			if time.Now().After(deadline) {
				return ""
			}
			time.Sleep(time.Millisecond)
			continue
		}
		c.xNextEvent(c.dpy, unsafe.Pointer(&ev[0]))
		notified = *(*int32)(unsafe.Pointer(&ev[0])) == x11SelectionNotify
	}

	var (
		actualType   uintptr
		actualFormat int32
		nItems       uint64
		bytesAfter   uint64
		data         uintptr
	)
	result := c.xGetWindowProperty(c.dpy, c.window, c.atomProperty,
		0, x11ClipboardMaxLength, 1, c.atomUTF8,
		&actualType, &actualFormat, &nItems, &bytesAfter, &data)
	if result != 0 || data == 0 {
		return ""
	}
	defer c.xFree(data)
	return goStringN(data, int(nItems))
}

// SetText takes ownership of the selection and serves text to this process.
func (c *x11Clipboard) SetText(text string) error {
	c.init()
	if c.dpy == 0 || c.window == 0 {
		return fmt.Errorf("%w: no X display for clipboard", ErrBackendUnavailable)
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	c.mu.Lock()
	c.text = text
	c.mu.Unlock()

	c.xSetSelectionOwner(c.dpy, c.atomClipboard, c.window, 0)
	c.xFlush(c.dpy)
	return nil
}

func (c *x11Clipboard) close() {
	if c.dpy == 0 {
		return
	}
	if c.window != 0 {
		c.xDestroyWindow(c.dpy, c.window)
		c.window = 0
	}
	c.xCloseDisplay(c.dpy)
	c.dpy = 0
}

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

func goStringN(ptr uintptr, n int) string {
	if ptr == 0 || n <= 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n))
}
