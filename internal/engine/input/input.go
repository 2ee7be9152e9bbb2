// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseDrag
	EventMouseWheel
	EventFileDrop
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Shift  bool
	Width  int
	Height int
	DX, DY float32 // drag delta in pixels or wheel delta in notches
	Path   string // dropped file
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	sdl.EventState(sdl.DROPFILE, sdl.ENABLE)
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			ev := Event{Key: e.Keysym.Scancode, Shift: e.Keysym.Mod&uint16(sdl.KMOD_SHIFT) != 0}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			} else {
				ev.Type = EventKeyUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseMotionEvent:
			if e.State&sdl.ButtonLMask() != 0 {
				i.events = append(i.events, Event{
					Type: EventMouseDrag,
					DX:   float32(e.XRel),
					DY:   float32(e.YRel),
				})
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type: EventMouseWheel,
				DX:   float32(e.X),
				DY:   float32(e.Y),
			})

		case *sdl.DropEvent:
			if e.Type == sdl.DROPFILE {
				i.events = append(i.events, Event{Type: EventFileDrop, Path: e.File})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
