//go:build !android

package window

import (
	"encoding/binary"
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Linux joystick API (linux/joystick.h): each read yields 8-byte js_event
// records {time u32, value s16, type u8, number u8}.
const (
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80
	jsEventSize   = 8
)

type joystick struct {
	id   int
	fd   int
	path string
}

// joystickPoller reads /dev/input/js* devices without blocking. Devices are
// discovered on the first poll.
type joystickPoller struct {
	logger  *slog.Logger
	pattern string
	scanned bool
	devices []*joystick
}

func newJoystickPoller(logger *slog.Logger) *joystickPoller {
	return &joystickPoller{logger: logger, pattern: "/dev/input/js*"}
}

func (p *joystickPoller) scan(sink eventSink) {
	p.scanned = true
	paths, err := filepath.Glob(p.pattern)
	if err != nil {
		return
	}
	for _, path := range paths {
		id, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(path), "js"))
		if err != nil {
			continue
		}
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err != nil {
			p.logger.Debug("open joystick", "path", path, "error", err)
			continue
		}
		p.devices = append(p.devices, &joystick{id: id, fd: fd, path: path})
		sink.HandleGamepadEvent(GamepadEvent{Type: GamepadConnected, ID: id})
	}
}

func (p *joystickPoller) poll(sink eventSink) {
	if !p.scanned {
		p.scan(sink)
	}
	var buf [64 * jsEventSize]byte
	live := p.devices[:0]
	for _, js := range p.devices {
		if p.drain(js, buf[:], sink) {
			live = append(live, js)
		}
	}
	p.devices = live
}

// drain dispatches every queued record and reports whether the device is still usable.
func (p *joystickPoller) drain(js *joystick, buf []byte, sink eventSink) bool {
	for {
		n, err := unix.Read(js.fd, buf)
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return true
		}
		if err != nil {
			p.logger.Debug("joystick disconnected", "path", js.path, "error", err)
			unix.Close(js.fd)
			sink.HandleGamepadEvent(GamepadEvent{Type: GamepadDisconnected, ID: js.id})
			return false
		}
		for off := 0; off+jsEventSize <= n; off += jsEventSize {
			if ev, ok := decodeJoystickEvent(js.id, buf[off:off+jsEventSize]); ok {
				sink.HandleGamepadEvent(ev)
			}
		}
		if n < len(buf) {
			return true
		}
	}
}

func (p *joystickPoller) close() {
	for _, js := range p.devices {
		unix.Close(js.fd)
	}
	p.devices = nil
}

// decodeJoystickEvent converts one js_event record. Synthetic init records
// report the state at open time and are decoded like live ones.
func decodeJoystickEvent(id int, rec []byte) (GamepadEvent, bool) {
	if len(rec) < jsEventSize {
		return GamepadEvent{}, false
	}
	value := int16(binary.LittleEndian.Uint16(rec[4:6]))
	number := int(rec[7])

	switch rec[6] &^ jsEventInit {
	case jsEventButton:
		typ := GamepadButtonUp
		if value != 0 {
			typ = GamepadButtonDown
		}
		return GamepadEvent{Type: typ, ID: id, Button: number}, true
	case jsEventAxis:
		v := float32(value) / 32767
		if v < -1 {
			v = -1
		}
		return GamepadEvent{Type: GamepadAxis, ID: id, Axis: number, Value: v}, true
	default:
		return GamepadEvent{}, false
	}
}
