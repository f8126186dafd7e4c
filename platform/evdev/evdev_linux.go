//go:build linux

// Package evdev provides a Linux platform backed by the kernel joystick
// interface: device enumeration and capability queries through the
// /dev/input/js* ioctls, attach/detach tracking through inotify, and a
// monitor loop that feeds raw controller events into a bridge handler.
package evdev

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/aknorr/inputbridge/bridge"
	"github.com/aknorr/inputbridge/event"
	"github.com/aknorr/inputbridge/platform"
)

const inputPath = "/dev/input"

// Joystick interface ioctl request numbers.
const (
	jsiocName    = 0x80006a13 + (128 << 16) // JSIOCGNAME(128)
	jsiocAxes    = 0x80016a11               // JSIOCGAXES
	jsiocButtons = 0x80016a12               // JSIOCGBUTTONS
	jsiocAxMap   = 0x80406a32               // JSIOCGAXMAP
)

// Hat axis codes in the kernel's absolute axis numbering.
const (
	absHat0X = 0x10
	absHat0Y = 0x11
)

// Raw joystick axis readings span the full signed 16 bit range.
const (
	axisMin   = -32767
	axisRange = 65534
)

// Platform implements platform.Platform over the kernel joystick devices.
type Platform struct {
	logger *slog.Logger
}

// New returns a Platform logging through the given logger.
func New(logger *slog.Logger) *Platform {
	return &Platform{logger: logger}
}

// DeviceIDs enumerates the indices of the js* device nodes.
func (p *Platform) DeviceIDs() []int {
	entries, err := os.ReadDir(inputPath)
	if err != nil {
		p.logger.Warn("reading input directory", "path", inputPath, "error", err)
		return nil
	}
	var ids []int
	for _, e := range entries {
		if id, ok := joystickIndex(e.Name()); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Device queries the js device node with the given index.
func (p *Platform) Device(id int) (platform.DeviceInfo, bool) {
	f, err := os.OpenFile(devicePath(id), os.O_RDONLY, 0)
	if err != nil {
		return platform.DeviceInfo{}, false
	}
	defer f.Close()

	var (
		name    string
		axes    uint8
		buttons uint8
		axMap   [64]uint8
	)
	if err := ioctlString(f, jsiocName, &name); err != nil {
		p.logger.Warn("querying device name", "id", id, "error", err)
		return platform.DeviceInfo{}, false
	}
	if err := ioctl(f, jsiocAxes, unsafe.Pointer(&axes)); err != nil {
		return platform.DeviceInfo{}, false
	}
	if err := ioctl(f, jsiocButtons, unsafe.Pointer(&buttons)); err != nil {
		return platform.DeviceInfo{}, false
	}
	if err := ioctl(f, jsiocAxMap, unsafe.Pointer(&axMap)); err != nil {
		return platform.DeviceInfo{}, false
	}

	info := platform.DeviceInfo{
		Name:    name,
		Sources: event.SourceGamepad | event.SourceJoystick,
	}
	for i := 0; i < int(axes); i++ {
		info.MotionRanges = append(info.MotionRanges, platform.MotionRange{
			Axis:  axisCode(i, axMap[i]),
			Min:   axisMin,
			Range: axisRange,
		})
	}
	return info, true
}

// ReportsActionButton is true: events synthesized here always carry the
// button that changed.
func (p *Platform) ReportsActionButton() bool { return true }

// axisCode maps a joystick axis position to the bridge's axis numbering:
// hat axes get the dedicated hat codes, everything else keeps its index.
func axisCode(index int, abs uint8) event.Axis {
	switch abs {
	case absHat0X:
		return event.AxisHatX
	case absHat0Y:
		return event.AxisHatY
	default:
		return event.Axis(index)
	}
}

func devicePath(id int) string {
	return filepath.Join(inputPath, fmt.Sprintf("js%d", id))
}

func joystickIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "js")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return id, true
}

func ioctl(f *os.File, req int, dest unsafe.Pointer) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uintptr(req), uintptr(dest))
	if errno != 0 {
		return fmt.Errorf("ioctl 0x%x: %w", req, errno)
	}
	return nil
}

func ioctlString(f *os.File, req int, dest *string) error {
	buf := make([]byte, 128)
	if err := ioctl(f, req, unsafe.Pointer(&buf[0])); err != nil {
		return err
	}
	if i := strings.IndexByte(string(buf), 0); i >= 0 {
		buf = buf[:i]
	}
	*dest = string(buf)
	return nil
}

// jsEvent is the kernel joystick event record.
type jsEvent struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

const (
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80
)

// rawItem funnels per-device reader output onto the single dispatch
// goroutine; the handler is never invoked concurrently.
type rawItem struct {
	id     int
	attach bool
	detach bool
	key    *event.Key
	down   bool
	motion *event.Motion
}

// Monitor feeds live controller events into the handler until the context
// is canceled. It registers currently attached devices, watches
// /dev/input for attach/detach, and reads every attached js device.
func (p *Platform) Monitor(ctx context.Context, h *bridge.Handler) error {
	items := make(chan rawItem, 64)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := p.watch(watchCtx, items); err != nil {
			p.logger.Error("device watch stopped", "error", err)
		}
	}()

	readers := map[int]context.CancelFunc{}
	startReader := func(id int) {
		if _, running := readers[id]; running {
			return
		}
		readerCtx, stop := context.WithCancel(watchCtx)
		readers[id] = stop
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.readDevice(readerCtx, id, items)
		}()
	}

	h.InitDevices()
	for _, id := range p.DeviceIDs() {
		startReader(id)
	}

	for {
		select {
		case <-ctx.Done():
			cancel()
			wg.Wait()
			return ctx.Err()
		case item := <-items:
			switch {
			case item.attach:
				h.HandleDeviceAdded(item.id)
				startReader(item.id)
			case item.detach:
				h.HandleDeviceRemoved(item.id)
				if stop, ok := readers[item.id]; ok {
					stop()
					delete(readers, item.id)
				}
			case item.key != nil:
				if item.down {
					h.HandleKeyDown(*item.key)
				} else {
					h.HandleKeyUp(*item.key)
				}
			case item.motion != nil:
				if _, err := h.HandleMotion(*item.motion); err != nil {
					cancel()
					wg.Wait()
					return err
				}
			}
		}
	}
}

// inotifyWatch wraps an inotify descriptor whose close can race between
// the read loop and the context watcher. Closing twice could tear down a
// descriptor number the kernel has already handed to another caller.
type inotifyWatch struct {
	fd   int
	once sync.Once
}

func (w *inotifyWatch) close() {
	w.once.Do(func() { unix.Close(w.fd) })
}

// watch reports js node creation and removal under /dev/input.
func (p *Platform) watch(ctx context.Context, items chan<- rawItem) error {
	fd, err := unix.InotifyInit()
	if err != nil {
		return fmt.Errorf("inotify init: %w", err)
	}
	w := &inotifyWatch{fd: fd}
	defer w.close()

	if _, err := unix.InotifyAddWatch(fd, inputPath, unix.IN_CREATE|unix.IN_DELETE); err != nil {
		return fmt.Errorf("inotify watch: %w", err)
	}

	go func() {
		<-ctx.Done()
		w.close()
	}()

	buf := make([]byte, 4096)
	for {
		n, err := unix.Read(fd, buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("inotify read: %w", err)
		}

		var offset uint32
		for offset+unix.SizeofInotifyEvent <= uint32(n) {
			ev := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			nameBytes := buf[offset+unix.SizeofInotifyEvent : offset+unix.SizeofInotifyEvent+ev.Len]
			name := strings.TrimRight(string(nameBytes), "\x00")
			if id, ok := joystickIndex(name); ok {
				var item rawItem
				switch {
				case ev.Mask&unix.IN_CREATE != 0:
					item = rawItem{id: id, attach: true}
				case ev.Mask&unix.IN_DELETE != 0:
					item = rawItem{id: id, detach: true}
				}
				if item.attach || item.detach {
					select {
					case items <- item:
					case <-ctx.Done():
						return nil
					}
				}
			}
			offset += unix.SizeofInotifyEvent + ev.Len
		}
	}
}

// readDevice converts the kernel event stream of one js device into raw
// key and motion events. Axis events carry a snapshot of all axis
// readings, the shape the classifier expects.
func (p *Platform) readDevice(ctx context.Context, id int, items chan<- rawItem) {
	f, err := os.OpenFile(devicePath(id), os.O_RDONLY, 0)
	if err != nil {
		p.logger.Warn("opening joystick", "id", id, "error", err)
		return
	}
	defer f.Close()

	go func() {
		<-ctx.Done()
		f.Close()
	}()

	info, ok := p.Device(id)
	if !ok {
		return
	}
	axes := make(map[event.Axis]float32, len(info.MotionRanges))

	for {
		var e jsEvent
		if err := binary.Read(f, binary.LittleEndian, &e); err != nil {
			if ctx.Err() == nil {
				// Device gone; inotify delivers the detach separately
				// when the node disappears.
				p.logger.Debug("joystick read ended", "id", id, "error", err)
			}
			return
		}

		init := e.Type&jsEventInit != 0
		switch {
		case e.Type&jsEventAxis != 0:
			if int(e.Number) < len(info.MotionRanges) {
				axes[info.MotionRanges[e.Number].Axis] = float32(e.Value)
			}
			if init {
				continue
			}
			snapshot := make(map[event.Axis]float32, len(axes))
			for a, v := range axes {
				snapshot[a] = v
			}
			m := event.Motion{
				DeviceID: id,
				Source:   event.SourceJoystick,
				Action:   int(event.ActionMove),
				Axes:     snapshot,
			}
			select {
			case items <- rawItem{id: id, motion: &m}:
			case <-ctx.Done():
				return
			}

		case e.Type&jsEventButton != 0:
			if init {
				continue
			}
			k := event.Key{
				DeviceID: id,
				Source:   event.SourceGamepad,
				Code:     buttonKeycode(e.Number),
			}
			select {
			case items <- rawItem{id: id, key: &k, down: e.Value != 0}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// namedButtons maps the kernel's gamepad button order (south, east, C,
// north, west, Z, TL, TR, TL2, TR2, select, start, mode, thumb L, thumb R)
// to the platform key codes the classifier's button table expects.
var namedButtons = []event.Keycode{
	event.KeycodeButtonA,
	event.KeycodeButtonB,
	event.KeycodeButtonC,
	event.KeycodeButtonX,
	event.KeycodeButtonY,
	event.KeycodeButtonZ,
	event.KeycodeButtonL1,
	event.KeycodeButtonR1,
	event.KeycodeButtonL2,
	event.KeycodeButtonR2,
	event.KeycodeButtonSelect,
	event.KeycodeButtonStart,
	event.KeycodeButtonMode,
	event.KeycodeButtonThumbL,
	event.KeycodeButtonThumbR,
}

func buttonKeycode(n uint8) event.Keycode {
	if int(n) < len(namedButtons) {
		return namedButtons[n]
	}
	return event.KeycodeButton1 + event.Keycode(int(n)-len(namedButtons))
}
