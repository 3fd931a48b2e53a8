package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/guoxx/slangpy/internal/config"
	"github.com/guoxx/slangpy/internal/window"
	"golang.org/x/term"
)

const frameInterval = 16 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sglwindow: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultFilename, "path to the YAML config file")
	backendFlag := flag.String("backend", "", "window backend: hosted, x11 or headless (default: platform-specific)")
	width := flag.Uint64("width", 0, "window width, overrides the config")
	height := flag.Uint64("height", 0, "window height, overrides the config")
	title := flag.String("title", "", "window title, overrides the config")
	nativeWindow := flag.String("native-window", "", "host-provided ANativeWindow pointer to adopt (hosted backend)")
	icon := flag.String("icon", "", "PNG icon to set on the window")
	frames := flag.Int("frames", 0, "exit after N frames (0 runs until closed)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Open a window, log its events and run until it is closed.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
	}
	if *width != 0 {
		if cfg.Window.Width, err = dimensionFlag("width", *width); err != nil {
			return err
		}
	}
	if *height != 0 {
		if cfg.Window.Height, err = dimensionFlag("height", *height); err != nil {
			return err
		}
	}
	if *title != "" {
		cfg.Window.Title = *title
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	desc, err := cfg.Desc()
	if err != nil {
		return err
	}
	kind, err := cfg.BackendKind()
	if err != nil {
		return err
	}

	w, err := window.New(desc, window.WithBackend(kind), window.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer w.Destroy()

	logger.Info("window created", "size", fmt.Sprintf("%dx%d", w.Width(), w.Height()), "capabilities", w.Capabilities().String())

	if *nativeWindow != "" {
		token, err := strconv.ParseUint(*nativeWindow, 0, 64)
		if err != nil {
			return fmt.Errorf("parse -native-window: %w", err)
		}
		bridge := window.NewHostBridge(w)
		if err := bridge.SurfaceCreated(uintptr(token)); err != nil {
			return err
		}
		defer bridge.SurfaceDestroyed()
	}

	if *icon != "" {
		if err := w.SetIcon(*icon); err != nil {
			logger.Warn("failed to set icon", "error", err)
		}
	}

	subscribe(w, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for frame := 0; !w.ShouldClose(); frame++ {
		if *frames > 0 && frame >= *frames {
			w.Close()
			break
		}
		select {
		case <-ctx.Done():
			logger.Info("interrupted")
			w.Close()
			continue
		case <-time.After(frameInterval):
		}
		w.ProcessEvents()
		w.PollGamepadInput()
	}

	logger.Info("window closed", "handle", w.WindowHandle().String())
	return w.Destroy()
}

func dimensionFlag(name string, v uint64) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("-%s %d out of range (max %d)", name, v, uint64(math.MaxUint32))
	}
	return uint32(v), nil
}

// newLogger picks a text handler for terminals and JSON otherwise, unless
// the config names a format.
func newLogger(cfg config.Config, out *os.File) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	format := cfg.Log.Format
	if format == "" {
		format = "json"
		if term.IsTerminal(int(out.Fd())) {
			format = "text"
		}
	}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(out, opts)), nil
	}
	return slog.New(slog.NewTextHandler(out, opts)), nil
}

func subscribe(w *window.Window, logger *slog.Logger) {
	w.SetOnResize(func(width, height uint32) {
		logger.Info("resize", "width", width, "height", height)
	})
	w.SetOnKeyboardEvent(func(e window.KeyboardEvent) {
		logger.Debug("keyboard", "event", e.String())
		if e.Type == window.KeyPress && e.Key == window.KeyEscape {
			w.Close()
		}
	})
	w.SetOnMouseEvent(func(e window.MouseEvent) {
		logger.Debug("mouse", "event", e.String())
	})
	w.SetOnGamepadEvent(func(e window.GamepadEvent) {
		logger.Info("gamepad", "event", e.String())
	})
	w.SetOnDropFiles(func(files []string) {
		logger.Info("drop files", "files", files)
	})
}
