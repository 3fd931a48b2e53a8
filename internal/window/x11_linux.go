//go:build !android

package window

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"unicode"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const x11EventMask = xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion | xproto.EventMaskStructureNotify

const x11PointerGrabMask = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion

// x11Backend owns a top-level X11 window and its event queue.
type x11Backend struct {
	xu     *xgbutil.XUtil
	win    *xwindow.Window
	logger *slog.Logger

	wmDeleteWindow xproto.Atom
	blankCursor    xproto.Cursor
	grabbed        bool

	// Size last seen from the server or requested by resize. ConfigureNotify
	// only reaches the window when it differs.
	width  uint32
	height uint32

	clip *x11Clipboard
	pads *joystickPoller
}

var _ backend = (*x11Backend)(nil)

func newX11Backend(desc WindowDesc, logger *slog.Logger) (backend, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: connect to X server: %v", ErrBackendUnavailable, err)
	}
	keybind.Initialize(xu)

	b := &x11Backend{
		xu:     xu,
		logger: logger,
		width:  desc.Width,
		height: desc.Height,
		clip:   newX11Clipboard(),
		pads:   newJoystickPoller(logger),
	}
	if err := b.create(desc); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	return b, nil
}

func (b *x11Backend) create(desc WindowDesc) error {
	win, err := xwindow.Generate(b.xu)
	if err != nil {
		return fmt.Errorf("allocate window id: %w", err)
	}
	err = win.CreateChecked(b.xu.RootWin(), 0, 0, int(desc.Width), int(desc.Height),
		xproto.CwEventMask, x11EventMask)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	b.win = win

	b.wmDeleteWindow, err = xprop.Atm(b.xu, "WM_DELETE_WINDOW")
	if err != nil {
		win.Destroy()
		return fmt.Errorf("intern WM_DELETE_WINDOW: %w", err)
	}
	if err := icccm.WmProtocolsSet(b.xu, win.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		b.logger.Warn("set WM_PROTOCOLS", "error", err)
	}

	b.setTitle(desc.Title)

	if !desc.Resizable {
		hints := &icccm.NormalHints{
			Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
			MinWidth:  uint(desc.Width),
			MinHeight: uint(desc.Height),
			MaxWidth:  uint(desc.Width),
			MaxHeight: uint(desc.Height),
		}
		if err := icccm.WmNormalHintsSet(b.xu, win.Id, hints); err != nil {
			b.logger.Warn("set WM_NORMAL_HINTS", "error", err)
		}
	}
	if desc.Mode == WindowModeMinimized {
		hints := &icccm.Hints{Flags: icccm.HintState, InitialState: icccm.StateIconic}
		if err := icccm.WmHintsSet(b.xu, win.Id, hints); err != nil {
			b.logger.Warn("set WM_HINTS", "error", err)
		}
	}

	win.Map()

	// _NET_WM_STATE changes are requests to the window manager and only
	// apply to mapped windows.
	var states []string
	switch desc.Mode {
	case WindowModeMaximized:
		states = []string{"_NET_WM_STATE_MAXIMIZED_VERT", "_NET_WM_STATE_MAXIMIZED_HORZ"}
	case WindowModeFullscreen:
		states = []string{"_NET_WM_STATE_FULLSCREEN"}
	}
	for _, state := range states {
		if err := ewmh.WmStateReq(b.xu, win.Id, ewmh.StateAdd, state); err != nil {
			b.logger.Warn("request window state", "state", state, "error", err)
		}
	}
	return nil
}

func (b *x11Backend) kind() Backend { return BackendX11 }

func (b *x11Backend) capabilities() Capability { return CapAll }

func (b *x11Backend) adopt(token uintptr) (int32, int32, error) {
	return 0, 0, ErrSurfaceOwned
}

func (b *x11Backend) release() {}

func (b *x11Backend) destroy() error {
	if b.xu == nil {
		return nil
	}
	conn := b.xu.Conn()
	if b.grabbed {
		xproto.UngrabPointer(conn, xproto.TimeCurrentTime)
		b.grabbed = false
	}
	if b.blankCursor != 0 {
		xproto.FreeCursor(conn, b.blankCursor)
		b.blankCursor = 0
	}
	b.win.Destroy()
	b.pads.close()
	b.clip.close()
	conn.Close()
	b.xu = nil
	return nil
}

func (b *x11Backend) handle() WindowHandle {
	if b.xu == nil {
		return WindowHandle{}
	}
	return nativeHandle(HandleX11, uintptr(b.win.Id))
}

func (b *x11Backend) resize(width, height uint32) error {
	b.width = width
	b.height = height
	b.win.Resize(int(width), int(height))
	return nil
}

// surfaceResized is a no-op: the server already resized the window.
func (b *x11Backend) surfaceResized(width, height uint32) error { return nil }

func (b *x11Backend) position() image.Point {
	reply, err := xproto.TranslateCoordinates(b.xu.Conn(), b.win.Id, b.xu.RootWin(), 0, 0).Reply()
	if err != nil {
		b.logger.Debug("translate window coordinates", "error", err)
		return image.Point{}
	}
	return image.Pt(int(reply.DstX), int(reply.DstY))
}

func (b *x11Backend) setPosition(pos image.Point) {
	b.win.Move(pos.X, pos.Y)
}

func (b *x11Backend) setTitle(title string) {
	if err := ewmh.WmNameSet(b.xu, b.win.Id, title); err != nil {
		b.logger.Debug("set _NET_WM_NAME", "error", err)
	}
	if err := icccm.WmNameSet(b.xu, b.win.Id, title); err != nil {
		b.logger.Debug("set WM_NAME", "error", err)
	}
}

func (b *x11Backend) setIcon(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decode png: %w", err)
	}
	return ewmh.WmIconSet(b.xu, b.win.Id, []ewmh.WmIcon{wmIconFromImage(img)})
}

// wmIconFromImage packs an image as the ARGB rows _NET_WM_ICON expects.
func wmIconFromImage(img image.Image) ewmh.WmIcon {
	bounds := img.Bounds()
	data := make([]uint, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			data = append(data, uint(a>>8)<<24|uint(r>>8)<<16|uint(g>>8)<<8|uint(bl>>8))
		}
	}
	return ewmh.WmIcon{Width: uint(bounds.Dx()), Height: uint(bounds.Dy()), Data: data}
}

func (b *x11Backend) setClipboard(text string) error {
	return b.clip.SetText(text)
}

func (b *x11Backend) clipboard() (string, bool) {
	text := b.clip.GetText()
	return text, text != ""
}

func (b *x11Backend) setCursorMode(mode CursorMode) {
	conn := b.xu.Conn()
	if b.grabbed && mode != CursorModeDisabled {
		xproto.UngrabPointer(conn, xproto.TimeCurrentTime)
		b.grabbed = false
	}

	if mode == CursorModeNormal {
		xproto.ChangeWindowAttributes(conn, b.win.Id, xproto.CwCursor, []uint32{0})
		return
	}

	cursor, err := b.invisibleCursor()
	if err != nil {
		b.logger.Warn("create invisible cursor", "error", err)
		return
	}
	xproto.ChangeWindowAttributes(conn, b.win.Id, xproto.CwCursor, []uint32{uint32(cursor)})

	if mode == CursorModeDisabled && !b.grabbed {
		reply, err := xproto.GrabPointer(conn, true, b.win.Id, uint16(x11PointerGrabMask),
			xproto.GrabModeAsync, xproto.GrabModeAsync, b.win.Id, cursor, xproto.TimeCurrentTime).Reply()
		if err != nil {
			b.logger.Warn("grab pointer", "error", err)
			return
		}
		b.grabbed = reply.Status == xproto.GrabStatusSuccess
	}
}

// invisibleCursor lazily builds a cursor from a cleared 1x1 bitmap.
func (b *x11Backend) invisibleCursor() (xproto.Cursor, error) {
	if b.blankCursor != 0 {
		return b.blankCursor, nil
	}
	conn := b.xu.Conn()

	pix, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, err
	}
	if err := xproto.CreatePixmapChecked(conn, 1, pix, xproto.Drawable(b.win.Id), 1, 1).Check(); err != nil {
		return 0, fmt.Errorf("create pixmap: %w", err)
	}
	defer xproto.FreePixmap(conn, pix)

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return 0, err
	}
	xproto.CreateGC(conn, gc, xproto.Drawable(pix), xproto.GcForeground, []uint32{0})
	xproto.PolyFillRectangle(conn, xproto.Drawable(pix), gc, []xproto.Rectangle{{Width: 1, Height: 1}})
	xproto.FreeGC(conn, gc)

	cursor, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, err
	}
	if err := xproto.CreateCursorChecked(conn, cursor, pix, pix, 0, 0, 0, 0, 0, 0, 0, 0).Check(); err != nil {
		return 0, fmt.Errorf("create cursor: %w", err)
	}
	b.blankCursor = cursor
	return cursor, nil
}

func (b *x11Backend) pollGamepad(sink eventSink) {
	b.pads.poll(sink)
}

func (b *x11Backend) processEvents(sink eventSink) {
	conn := b.xu.Conn()
	for {
		ev, xerr := conn.PollForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			b.logger.Debug("x11 protocol error", "error", xerr)
			continue
		}
		b.dispatch(ev, sink)
	}
}

func (b *x11Backend) dispatch(ev xgb.Event, sink eventSink) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		mods := modsFromX11State(e.State)
		sym := keybind.KeysymGet(b.xu, e.Detail, 0)
		sink.HandleKeyboardEvent(KeyboardEvent{Type: KeyPress, Key: keyFromKeysym(uint32(sym)), Mods: mods})
		if r := []rune(keybind.LookupString(b.xu, e.State, e.Detail)); len(r) == 1 && unicode.IsPrint(r[0]) {
			sink.HandleKeyboardEvent(KeyboardEvent{Type: KeyInput, Codepoint: r[0], Mods: mods})
		}

	case xproto.KeyReleaseEvent:
		sym := keybind.KeysymGet(b.xu, e.Detail, 0)
		sink.HandleKeyboardEvent(KeyboardEvent{Type: KeyRelease, Key: keyFromKeysym(uint32(sym)), Mods: modsFromX11State(e.State)})

	case xproto.ButtonPressEvent:
		pos := Vec2{X: float32(e.EventX), Y: float32(e.EventY)}
		mods := modsFromX11State(e.State)
		if scroll, ok := scrollFromX11Button(byte(e.Detail)); ok {
			sink.HandleMouseEvent(MouseEvent{Type: MouseScroll, Pos: pos, Scroll: scroll, Mods: mods})
			return
		}
		sink.HandleMouseEvent(MouseEvent{Type: MouseButtonDown, Pos: pos, Button: buttonFromX11(byte(e.Detail)), Mods: mods})

	case xproto.ButtonReleaseEvent:
		if _, ok := scrollFromX11Button(byte(e.Detail)); ok {
			return
		}
		pos := Vec2{X: float32(e.EventX), Y: float32(e.EventY)}
		sink.HandleMouseEvent(MouseEvent{Type: MouseButtonUp, Pos: pos, Button: buttonFromX11(byte(e.Detail)), Mods: modsFromX11State(e.State)})

	case xproto.MotionNotifyEvent:
		pos := Vec2{X: float32(e.EventX), Y: float32(e.EventY)}
		sink.HandleMouseEvent(MouseEvent{Type: MouseMove, Pos: pos, Mods: modsFromX11State(e.State)})

	case xproto.ConfigureNotifyEvent:
		if e.Window != b.win.Id {
			return
		}
		width, height := uint32(e.Width), uint32(e.Height)
		if width == b.width && height == b.height {
			return
		}
		b.width, b.height = width, height
		sink.HandleWindowSize(width, height)

	case xproto.ClientMessageEvent:
		if e.Format == 32 && len(e.Data.Data32) > 0 && xproto.Atom(e.Data.Data32[0]) == b.wmDeleteWindow {
			sink.Close()
		}

	case xproto.DestroyNotifyEvent:
		if e.Window == b.win.Id {
			sink.Close()
		}
	}
}
