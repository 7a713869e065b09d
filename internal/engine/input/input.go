// Package input turns SDL2 events into the few actions the viewer reacts to.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventScreenshot
)

// Event is a processed input event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Input polls and translates SDL events.
type Input struct {
	events []Event
}

// New creates an input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 8)}
}

// Update drains pending SDL events. It returns true when the window was
// closed or Escape was pressed.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e := Translate(event); e.Type != EventNone {
			i.events = append(i.events, e)
			if e.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

// Events returns the events gathered by the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Translate maps one SDL event. Anything else yields EventNone.
func Translate(event sdl.Event) Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			break
		}
		switch e.Keysym.Scancode {
		case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
			return Event{Type: EventQuit}
		case sdl.SCANCODE_F12:
			return Event{Type: EventScreenshot}
		}
	}
	return Event{Type: EventNone}
}
