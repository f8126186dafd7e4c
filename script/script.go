// Package script loads recorded raw-event traces from YAML and replays
// them through a bridge handler. A trace is self-contained: it declares
// the devices the platform should report and the raw events in order, so
// an input session can be reproduced deterministically offline.
package script

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aknorr/inputbridge/bridge"
	"github.com/aknorr/inputbridge/event"
	"github.com/aknorr/inputbridge/platform"
)

// Device declares one platform device visible to the replayed session.
type Device struct {
	ID      int      `yaml:"id"`
	Name    string   `yaml:"name"`
	Sources []string `yaml:"sources"`
	Ranges  []Range  `yaml:"ranges,omitempty"`
}

// Range declares one motion range of a scripted device.
type Range struct {
	Axis  int     `yaml:"axis"`
	Min   float32 `yaml:"min"`
	Range float32 `yaml:"range"`
}

// Pointer is one active pointer of a scripted motion or touch event.
type Pointer struct {
	ID   int     `yaml:"id"`
	Tool int     `yaml:"tool"`
	X    float32 `yaml:"x"`
	Y    float32 `yaml:"y"`
}

// Step is one raw event of a trace. Kind selects which fields are read.
type Step struct {
	Kind string `yaml:"kind"`

	Device  int      `yaml:"device,omitempty"`
	Sources []string `yaml:"sources,omitempty"`

	Code     int `yaml:"code,omitempty"`
	ScanCode int `yaml:"scanCode,omitempty"`
	Unicode  int `yaml:"unicode,omitempty"`
	Repeat   int `yaml:"repeat,omitempty"`

	Action       int             `yaml:"action,omitempty"`
	ActionButton int             `yaml:"actionButton,omitempty"`
	Buttons      int             `yaml:"buttons,omitempty"`
	Pointers     []Pointer       `yaml:"pointers,omitempty"`
	Axes         map[int]float32 `yaml:"axes,omitempty"`

	Text string `yaml:"text,omitempty"`
}

// Script is a recorded input trace.
type Script struct {
	// ActionButton mirrors the host capability the trace was recorded
	// on; it selects the button resolution strategy on replay.
	ActionButton bool     `yaml:"reportsActionButton"`
	Devices      []Device `yaml:"devices,omitempty"`
	Events       []Step   `yaml:"events"`
}

// Load decodes a trace from r.
func Load(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("script: decode: %w", err)
	}
	return &s, nil
}

// LoadFile decodes a trace from the file at path.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	defer f.Close()
	return Load(f)
}

var sourceNames = map[string]event.Source{
	"keyboard":    event.SourceKeyboard,
	"dpad":        event.SourceDPad,
	"gamepad":     event.SourceGamepad,
	"touchscreen": event.SourceTouchscreen,
	"mouse":       event.SourceMouse,
	"stylus":      event.SourceStylus,
	"joystick":    event.SourceJoystick,
}

func parseSources(names []string) (event.Source, error) {
	var src event.Source
	for _, n := range names {
		s, ok := sourceNames[n]
		if !ok {
			return 0, fmt.Errorf("script: unknown source %q", n)
		}
		src |= s
	}
	return src, nil
}

// scriptPlatform serves the trace's declared devices as a platform.
type scriptPlatform struct {
	actionButton bool
	ids          []int
	devices      map[int]platform.DeviceInfo
}

func (p *scriptPlatform) DeviceIDs() []int { return p.ids }

func (p *scriptPlatform) Device(id int) (platform.DeviceInfo, bool) {
	info, ok := p.devices[id]
	return info, ok
}

func (p *scriptPlatform) ReportsActionButton() bool { return p.actionButton }

// Platform builds a platform.Platform backed by the trace's device
// declarations, preserving declaration order for enumeration.
func (s *Script) Platform() (platform.Platform, error) {
	p := &scriptPlatform{
		actionButton: s.ActionButton,
		devices:      map[int]platform.DeviceInfo{},
	}
	for _, d := range s.Devices {
		src, err := parseSources(d.Sources)
		if err != nil {
			return nil, fmt.Errorf("device %d: %w", d.ID, err)
		}
		ranges := make([]platform.MotionRange, len(d.Ranges))
		for i, r := range d.Ranges {
			ranges[i] = platform.MotionRange{Axis: event.Axis(r.Axis), Min: r.Min, Range: r.Range}
		}
		p.ids = append(p.ids, d.ID)
		p.devices[d.ID] = platform.DeviceInfo{Name: d.Name, Sources: src, MotionRanges: ranges}
	}
	return p, nil
}

func (st Step) key() (event.Key, error) {
	src, err := parseSources(st.Sources)
	if err != nil {
		return event.Key{}, err
	}
	return event.Key{
		DeviceID: st.Device,
		Source:   src,
		Code:     event.Keycode(st.Code),
		ScanCode: st.ScanCode,
		Unicode:  rune(st.Unicode),
		Repeat:   st.Repeat,
	}, nil
}

func (st Step) motion() (event.Motion, error) {
	src, err := parseSources(st.Sources)
	if err != nil {
		return event.Motion{}, err
	}
	m := event.Motion{
		DeviceID:     st.Device,
		Source:       src,
		Action:       st.Action,
		ActionButton: st.ActionButton,
		Buttons:      event.Buttons(st.Buttons),
	}
	for _, p := range st.Pointers {
		m.Pointers = append(m.Pointers, event.Pointer{
			ID:   p.ID,
			Tool: event.ToolType(p.Tool),
			X:    p.X,
			Y:    p.Y,
		})
	}
	if len(st.Axes) > 0 {
		m.Axes = make(map[event.Axis]float32, len(st.Axes))
		for a, v := range st.Axes {
			m.Axes[event.Axis(a)] = v
		}
	}
	return m, nil
}

// Replay feeds every trace event through the handler in order. Replay
// stops at the first fatal classification error.
func (s *Script) Replay(h *bridge.Handler) error {
	for i, st := range s.Events {
		if err := st.apply(h); err != nil {
			return fmt.Errorf("script: event %d (%s): %w", i, st.Kind, err)
		}
	}
	return nil
}

func (st Step) apply(h *bridge.Handler) error {
	switch st.Kind {
	case "key-down":
		k, err := st.key()
		if err != nil {
			return err
		}
		h.HandleKeyDown(k)
	case "key-up":
		k, err := st.key()
		if err != nil {
			return err
		}
		h.HandleKeyUp(k)
	case "motion":
		m, err := st.motion()
		if err != nil {
			return err
		}
		if _, err := h.HandleMotion(m); err != nil {
			return err
		}
	case "touch":
		m, err := st.motion()
		if err != nil {
			return err
		}
		h.HandleTouch(m)
	case "text":
		h.HandleText(st.Text)
	case "device-added":
		h.HandleDeviceAdded(st.Device)
	case "device-removed":
		h.HandleDeviceRemoved(st.Device)
	case "device-changed":
		h.HandleDeviceChanged(st.Device)
	case "init":
		h.InitDevices()
	default:
		return fmt.Errorf("unknown event kind %q", st.Kind)
	}
	return nil
}
