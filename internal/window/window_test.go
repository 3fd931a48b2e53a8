package window

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeSurfaces records reference counting on pretend native surfaces.
type fakeSurfaces struct {
	sizes    map[uintptr][2]int32
	refs     map[uintptr]int
	released []uintptr
}

func newFakeSurfaces() *fakeSurfaces {
	return &fakeSurfaces{
		sizes: make(map[uintptr][2]int32),
		refs:  make(map[uintptr]int),
	}
}

func (f *fakeSurfaces) add(token uintptr, width, height int32) uintptr {
	f.sizes[token] = [2]int32{width, height}
	return token
}

func (f *fakeSurfaces) Acquire(surface uintptr) { f.refs[surface]++ }

func (f *fakeSurfaces) Release(surface uintptr) {
	f.refs[surface]--
	f.released = append(f.released, surface)
}

func (f *fakeSurfaces) Size(surface uintptr) (int32, int32) {
	s := f.sizes[surface]
	return s[0], s[1]
}

func (f *fakeSurfaces) HandleKind() HandleKind { return HandleANativeWindow }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHostedWindow(t *testing.T, desc WindowDesc) (*Window, *fakeSurfaces) {
	t.Helper()
	surfaces := newFakeSurfaces()
	w, err := New(desc, WithBackend(BackendHosted), WithSurfaces(surfaces), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w, surfaces
}

func TestNewKeepsDescription(t *testing.T) {
	for _, desc := range []WindowDesc{
		{Width: 1, Height: 1, Title: ""},
		{Width: 640, Height: 480, Title: "demo"},
		{Width: 3840, Height: 2160, Title: "a title with spaces"},
	} {
		t.Run(fmt.Sprintf("%dx%d", desc.Width, desc.Height), func(t *testing.T) {
			w, _ := newHostedWindow(t, desc)
			if w.Width() != desc.Width || w.Height() != desc.Height {
				t.Fatalf("expected size %dx%d, got %dx%d", desc.Width, desc.Height, w.Width(), w.Height())
			}
			if w.Title() != desc.Title {
				t.Fatalf("expected title %q, got %q", desc.Title, w.Title())
			}
			s := w.String()
			for _, want := range []string{
				fmt.Sprint(desc.Width),
				fmt.Sprint(desc.Height),
				desc.Title,
			} {
				if !strings.Contains(s, want) {
					t.Fatalf("expected %q in %q", want, s)
				}
			}
		})
	}
}

func TestWindowString(t *testing.T) {
	w, _ := newHostedWindow(t, WindowDesc{Width: 800, Height: 600, Title: "main"})
	want := "Window(\n  width = 800,\n  height = 600,\n  title = \"main\"\n)"
	if got := w.String(); got != want {
		t.Fatalf("String() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestNewRejectsEmptySize(t *testing.T) {
	for _, desc := range []WindowDesc{
		{Width: 0, Height: 10},
		{Width: 10, Height: 0},
		{},
	} {
		_, err := New(desc, WithBackend(BackendHosted), WithSurfaces(newFakeSurfaces()))
		if !errors.Is(err, ErrInvalidDesc) {
			t.Fatalf("New(%+v) error = %v, want ErrInvalidDesc", desc, err)
		}
	}
}

func TestNewDoesNotAcquire(t *testing.T) {
	w, surfaces := newHostedWindow(t, DefaultWindowDesc())
	if len(surfaces.refs) != 0 {
		t.Fatalf("expected no references after New, got %v", surfaces.refs)
	}
	if w.WindowHandle().IsValid() {
		t.Fatalf("expected empty handle before adoption, got %v", w.WindowHandle())
	}
}

func TestAdoptNullHandle(t *testing.T) {
	w, surfaces := newHostedWindow(t, WindowDesc{Width: 320, Height: 240})

	err := w.AdoptNativeHandle(0)
	if !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("AdoptNativeHandle(0) error = %v, want ErrInvalidHandle", err)
	}
	if w.Width() != 320 || w.Height() != 240 {
		t.Fatalf("expected size unchanged at 320x240, got %dx%d", w.Width(), w.Height())
	}
	if len(surfaces.refs) != 0 {
		t.Fatalf("expected no references, got %v", surfaces.refs)
	}
}

func TestAdoptUpdatesSize(t *testing.T) {
	w, surfaces := newHostedWindow(t, WindowDesc{Width: 320, Height: 240})
	token := surfaces.add(0x1000, 800, 600)

	if err := w.AdoptNativeHandle(token); err != nil {
		t.Fatalf("AdoptNativeHandle() error = %v", err)
	}
	if w.Width() != 800 || w.Height() != 600 {
		t.Fatalf("expected 800x600, got %dx%d", w.Width(), w.Height())
	}
	if surfaces.refs[token] != 1 {
		t.Fatalf("expected one reference, got %d", surfaces.refs[token])
	}

	h := w.WindowHandle()
	if h.Kind() != HandleANativeWindow || h.Native() != token {
		t.Fatalf("unexpected handle %v", h)
	}
}

func TestAdoptInvalidDimensionsKeepsSize(t *testing.T) {
	for _, size := range [][2]int32{{0, 0}, {800, 0}, {0, 600}, {-1, 600}} {
		w, surfaces := newHostedWindow(t, WindowDesc{Width: 320, Height: 240})
		token := surfaces.add(0x2000, size[0], size[1])

		if err := w.AdoptNativeHandle(token); err != nil {
			t.Fatalf("AdoptNativeHandle() error = %v", err)
		}
		if w.Width() != 320 || w.Height() != 240 {
			t.Fatalf("surface %v: expected size to stay 320x240, got %dx%d", size, w.Width(), w.Height())
		}
		if !w.WindowHandle().IsValid() {
			t.Fatalf("surface %v: expected adoption to succeed", size)
		}
	}
}

func TestAdoptTwiceRejected(t *testing.T) {
	w, surfaces := newHostedWindow(t, DefaultWindowDesc())
	first := surfaces.add(0x1000, 800, 600)
	second := surfaces.add(0x2000, 1024, 768)

	if err := w.AdoptNativeHandle(first); err != nil {
		t.Fatalf("AdoptNativeHandle(first) error = %v", err)
	}
	if err := w.AdoptNativeHandle(second); !errors.Is(err, ErrAlreadyAdopted) {
		t.Fatalf("AdoptNativeHandle(second) error = %v, want ErrAlreadyAdopted", err)
	}
	if surfaces.refs[first] != 1 || surfaces.refs[second] != 0 {
		t.Fatalf("unexpected references %v", surfaces.refs)
	}
	if w.Width() != 800 || w.Height() != 600 {
		t.Fatalf("expected size from first surface, got %dx%d", w.Width(), w.Height())
	}
}

func TestAdoptFailureIsReturnedNotLogged(t *testing.T) {
	var buf bytes.Buffer
	surfaces := newFakeSurfaces()
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	w, err := New(DefaultWindowDesc(), WithBackend(BackendHosted), WithSurfaces(surfaces), WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	first := surfaces.add(0x1000, 800, 600)
	second := surfaces.add(0x2000, 1024, 768)

	if err := w.AdoptNativeHandle(first); err != nil {
		t.Fatalf("AdoptNativeHandle(first) error = %v", err)
	}
	if err := w.AdoptNativeHandle(second); !errors.Is(err, ErrAlreadyAdopted) {
		t.Fatalf("AdoptNativeHandle(second) error = %v, want ErrAlreadyAdopted", err)
	}
	if err := w.AdoptNativeHandle(0); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("AdoptNativeHandle(0) error = %v, want ErrInvalidHandle", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected failures only in the returned error, got log %q", buf.String())
	}
}

func TestReleaseThenAdopt(t *testing.T) {
	w, surfaces := newHostedWindow(t, DefaultWindowDesc())
	first := surfaces.add(0x1000, 800, 600)
	second := surfaces.add(0x2000, 1024, 768)

	if err := w.AdoptNativeHandle(first); err != nil {
		t.Fatalf("AdoptNativeHandle(first) error = %v", err)
	}
	w.ReleaseNativeHandle()
	w.ReleaseNativeHandle()
	if w.WindowHandle().IsValid() {
		t.Fatalf("expected empty handle after release")
	}

	if err := w.AdoptNativeHandle(second); err != nil {
		t.Fatalf("AdoptNativeHandle(second) error = %v", err)
	}
	if diff := cmp.Diff(map[uintptr]int{first: 0, second: 1}, surfaces.refs); diff != "" {
		t.Fatalf("references mismatch (-want +got):\n%s", diff)
	}
	if w.Width() != 1024 || w.Height() != 768 {
		t.Fatalf("expected 1024x768, got %dx%d", w.Width(), w.Height())
	}
}

func TestDestroyReleasesOnce(t *testing.T) {
	w, surfaces := newHostedWindow(t, DefaultWindowDesc())
	token := surfaces.add(0x1000, 800, 600)
	if err := w.AdoptNativeHandle(token); err != nil {
		t.Fatalf("AdoptNativeHandle() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := w.Destroy(); err != nil {
			t.Fatalf("Destroy() error = %v", err)
		}
	}
	if diff := cmp.Diff([]uintptr{token}, surfaces.released); diff != "" {
		t.Fatalf("released mismatch (-want +got):\n%s", diff)
	}
	if surfaces.refs[token] != 0 {
		t.Fatalf("expected balanced references, got %d", surfaces.refs[token])
	}
	if w.WindowHandle().IsValid() {
		t.Fatalf("expected empty handle after Destroy")
	}
	if err := w.AdoptNativeHandle(token); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("AdoptNativeHandle() after Destroy error = %v, want ErrDestroyed", err)
	}
}

func TestDestroyWithoutAdopt(t *testing.T) {
	w, surfaces := newHostedWindow(t, DefaultWindowDesc())
	if err := w.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if len(surfaces.released) != 0 || len(surfaces.refs) != 0 {
		t.Fatalf("expected no surface calls, got refs=%v released=%v", surfaces.refs, surfaces.released)
	}
}

func TestCloseIsMonotonic(t *testing.T) {
	w, _ := newHostedWindow(t, DefaultWindowDesc())
	if w.ShouldClose() {
		t.Fatalf("expected ShouldClose() false before Close")
	}
	for i := 0; i < 3; i++ {
		w.Close()
		if !w.ShouldClose() {
			t.Fatalf("expected ShouldClose() true after %d calls", i+1)
		}
	}
	w.HandleWindowSize(10, 10)
	w.ProcessEvents()
	if !w.ShouldClose() {
		t.Fatalf("expected ShouldClose() to stay true")
	}
}

func TestResizeDoesNotNotify(t *testing.T) {
	w, _ := newHostedWindow(t, DefaultWindowDesc())
	calls := 0
	w.SetOnResize(func(width, height uint32) { calls++ })

	w.Resize(400, 300)
	if w.Width() != 400 || w.Height() != 300 {
		t.Fatalf("expected 400x300, got %dx%d", w.Width(), w.Height())
	}
	w.SetWidth(500)
	w.SetHeight(250)
	if w.Width() != 500 || w.Height() != 250 {
		t.Fatalf("expected 500x250, got %dx%d", w.Width(), w.Height())
	}
	w.SetSize(640, 480)
	if width, height := w.Size(); width != 640 || height != 480 {
		t.Fatalf("expected 640x480, got %dx%d", width, height)
	}
	if calls != 0 {
		t.Fatalf("expected no resize callbacks, got %d", calls)
	}
}

func TestResizeIgnoresEmptySize(t *testing.T) {
	w, _ := newHostedWindow(t, WindowDesc{Width: 320, Height: 240})
	w.Resize(0, 100)
	w.SetWidth(0)
	w.SetHeight(0)
	if w.Width() != 320 || w.Height() != 240 {
		t.Fatalf("expected 320x240, got %dx%d", w.Width(), w.Height())
	}
}

func TestHandleWindowSizeNotifies(t *testing.T) {
	w, _ := newHostedWindow(t, DefaultWindowDesc())
	var got [][2]uint32
	w.SetOnResize(func(width, height uint32) {
		got = append(got, [2]uint32{width, height})
	})

	w.HandleWindowSize(400, 300)
	if w.Width() != 400 || w.Height() != 300 {
		t.Fatalf("expected 400x300, got %dx%d", w.Width(), w.Height())
	}
	if diff := cmp.Diff([][2]uint32{{400, 300}}, got); diff != "" {
		t.Fatalf("resize callbacks mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleWindowSizeWithoutCallback(t *testing.T) {
	w, _ := newHostedWindow(t, DefaultWindowDesc())
	w.HandleWindowSize(400, 300)
	if w.Width() != 400 || w.Height() != 300 {
		t.Fatalf("expected 400x300, got %dx%d", w.Width(), w.Height())
	}
}

func TestHostedCapabilityNoOps(t *testing.T) {
	w, surfaces := newHostedWindow(t, WindowDesc{Width: 320, Height: 240, Title: "before"})
	if err := w.AdoptNativeHandle(surfaces.add(0x1000, 800, 600)); err != nil {
		t.Fatalf("AdoptNativeHandle() error = %v", err)
	}

	if got := w.Capabilities(); got != 0 {
		t.Fatalf("expected no capabilities, got %s", got)
	}
	if got := w.Backend(); got != BackendHosted {
		t.Fatalf("expected hosted backend, got %s", got)
	}

	for _, pos := range []image.Point{{10, 20}, {-5, -5}, {1 << 20, 3}} {
		w.SetPosition(pos)
		if got := w.Position(); got != (image.Point{}) {
			t.Fatalf("SetPosition(%v): expected (0,0), got %v", pos, got)
		}
	}

	if err := w.SetClipboard("copied"); err != nil {
		t.Fatalf("SetClipboard() error = %v", err)
	}
	if text, ok := w.Clipboard(); ok || text != "" {
		t.Fatalf("expected absent clipboard, got %q, %v", text, ok)
	}
	if err := w.SetIcon("/does/not/exist.png"); err != nil {
		t.Fatalf("SetIcon() error = %v", err)
	}

	w.SetTitle("after")
	if w.Title() != "after" {
		t.Fatalf("expected cached title %q, got %q", "after", w.Title())
	}
	w.SetCursorMode(CursorModeDisabled)
	if w.CursorMode() != CursorModeDisabled {
		t.Fatalf("expected cached cursor mode disabled, got %s", w.CursorMode())
	}

	dispatched := 0
	w.SetOnGamepadEvent(func(GamepadEvent) { dispatched++ })
	w.SetOnResize(func(uint32, uint32) { dispatched++ })
	w.PollGamepadInput()
	w.ProcessEvents()
	if dispatched != 0 {
		t.Fatalf("expected no dispatch from polling, got %d", dispatched)
	}
	if w.Width() != 800 || w.Height() != 600 {
		t.Fatalf("expected size untouched, got %dx%d", w.Width(), w.Height())
	}
}

func TestKeyboardCallbackReplaced(t *testing.T) {
	w, _ := newHostedWindow(t, DefaultWindowDesc())
	first, second := 0, 0
	w.SetOnKeyboardEvent(func(KeyboardEvent) { first++ })
	w.HandleKeyboardEvent(KeyboardEvent{Type: KeyPress, Key: KeyA})
	w.SetOnKeyboardEvent(func(KeyboardEvent) { second++ })
	w.HandleKeyboardEvent(KeyboardEvent{Type: KeyPress, Key: KeyB})
	w.HandleKeyboardEvent(KeyboardEvent{Type: KeyRelease, Key: KeyB})

	if first != 1 || second != 2 {
		t.Fatalf("expected first=1 second=2, got first=%d second=%d", first, second)
	}

	w.SetOnKeyboardEvent(nil)
	w.HandleKeyboardEvent(KeyboardEvent{Type: KeyPress, Key: KeyC})
	if second != 2 {
		t.Fatalf("expected cleared callback not to fire, got %d", second)
	}
}

func TestDispatchPassesPayloadUnchanged(t *testing.T) {
	w, _ := newHostedWindow(t, DefaultWindowDesc())

	var (
		keys    []KeyboardEvent
		mice    []MouseEvent
		pads    []GamepadEvent
		dropped [][]string
	)
	w.SetOnKeyboardEvent(func(e KeyboardEvent) { keys = append(keys, e) })
	w.SetOnMouseEvent(func(e MouseEvent) { mice = append(mice, e) })
	w.SetOnGamepadEvent(func(e GamepadEvent) { pads = append(pads, e) })
	w.SetOnDropFiles(func(files []string) { dropped = append(dropped, files) })

	key := KeyboardEvent{Type: KeyInput, Codepoint: 'é', Mods: ModShift | ModAlt}
	mouse := MouseEvent{Type: MouseScroll, Pos: Vec2{X: 12.5, Y: 4}, Scroll: Vec2{Y: -1}, Mods: ModCtrl}
	pad := GamepadEvent{Type: GamepadAxis, ID: 2, Axis: 1, Value: -0.5}
	files := []string{"/sdcard/a.png", "/sdcard/b.obj"}

	w.HandleKeyboardEvent(key)
	w.HandleMouseEvent(mouse)
	w.HandleGamepadEvent(pad)
	w.HandleDropFiles(files)

	if diff := cmp.Diff([]KeyboardEvent{key}, keys); diff != "" {
		t.Fatalf("keyboard mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]MouseEvent{mouse}, mice); diff != "" {
		t.Fatalf("mouse mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]GamepadEvent{pad}, pads); diff != "" {
		t.Fatalf("gamepad mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{files}, dropped); diff != "" {
		t.Fatalf("drop files mismatch (-want +got):\n%s", diff)
	}
}

func TestEventsWithoutCallbacksAreDropped(t *testing.T) {
	w, _ := newHostedWindow(t, DefaultWindowDesc())
	w.HandleKeyboardEvent(KeyboardEvent{Type: KeyPress, Key: KeyEscape})
	w.HandleMouseEvent(MouseEvent{Type: MouseMove})
	w.HandleGamepadEvent(GamepadEvent{Type: GamepadConnected})
	w.HandleDropFiles([]string{"x"})
	w.HandleDropFiles(nil)
}
