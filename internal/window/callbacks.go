package window

type (
	ResizeFunc        func(width, height uint32)
	KeyboardEventFunc func(event KeyboardEvent)
	MouseEventFunc    func(event MouseEvent)
	GamepadEventFunc  func(event GamepadEvent)
	DropFilesFunc     func(files []string)
)

var _ eventSink = (*Window)(nil)

// callbacks holds one optional subscriber per event kind.
type callbacks struct {
	onResize        ResizeFunc
	onKeyboardEvent KeyboardEventFunc
	onMouseEvent    MouseEventFunc
	onGamepadEvent  GamepadEventFunc
	onDropFiles     DropFilesFunc
}

// SetOnResize replaces the resize callback. Passing nil removes it.
func (w *Window) SetOnResize(fn ResizeFunc) { w.onResize = fn }

func (w *Window) SetOnKeyboardEvent(fn KeyboardEventFunc) { w.onKeyboardEvent = fn }

func (w *Window) SetOnMouseEvent(fn MouseEventFunc) { w.onMouseEvent = fn }

func (w *Window) SetOnGamepadEvent(fn GamepadEventFunc) { w.onGamepadEvent = fn }

func (w *Window) SetOnDropFiles(fn DropFilesFunc) { w.onDropFiles = fn }

// HandleWindowSize records a size reported by the platform and notifies the
// resize callback. A backend that owns its surface resizes it to match.
// Callbacks run synchronously and must not re-enter the same Handle method.
func (w *Window) HandleWindowSize(width, height uint32) {
	w.width = width
	w.height = height
	if !w.destroyed {
		if err := w.backend.surfaceResized(width, height); err != nil {
			w.logger.Warn("surface kept at previous size", "width", width, "height", height, "error", err)
		}
	}
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *Window) HandleKeyboardEvent(event KeyboardEvent) {
	if w.onKeyboardEvent != nil {
		w.onKeyboardEvent(event)
	}
}

func (w *Window) HandleMouseEvent(event MouseEvent) {
	if w.onMouseEvent != nil {
		w.onMouseEvent(event)
	}
}

func (w *Window) HandleGamepadEvent(event GamepadEvent) {
	if w.onGamepadEvent != nil {
		w.onGamepadEvent(event)
	}
}

func (w *Window) HandleDropFiles(files []string) {
	if w.onDropFiles != nil {
		w.onDropFiles(files)
	}
}
