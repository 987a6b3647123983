package onebit

import (
	"fmt"

	"github.com/32bitkid/onebit/device"
)

type EventType int

const (
	EventKeyDown EventType = iota + 1
	EventKeyUp
	EventWheelUp
	EventWheelDown
)

func (t EventType) String() string {
	switch t {
	case EventKeyDown:
		return "KeyDown"
	case EventKeyUp:
		return "KeyUp"
	case EventWheelUp:
		return "WheelUp"
	case EventWheelDown:
		return "WheelDown"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

type KeyCode int

const (
	KeyUp KeyCode = iota + 1
	KeyDown
	KeyLeft
	KeyRight
	KeyReturn
	KeyEscape
)

const (
	asciiReturn = '\r'
	asciiEscape = 27
)

// Event is a key transition or a wheel step. Key and ASCII are zero for
// wheel events.
type Event struct {
	Type  EventType
	Key   KeyCode
	ASCII byte
}

// buttonMapping is checked in order, so simultaneous edges are queued
// D-pad first.
var buttonMapping = []struct {
	button device.Buttons
	key    KeyCode
	ascii  byte
}{
	{device.ButtonUp, KeyUp, 0},
	{device.ButtonDown, KeyDown, 0},
	{device.ButtonLeft, KeyLeft, 0},
	{device.ButtonRight, KeyRight, 0},
	{device.ButtonA, KeyReturn, asciiReturn},
	{device.ButtonB, KeyEscape, asciiEscape},
}

// PollEvent returns the next pending event. When none is queued it samples
// the device once; every edge in that sample is queued, so nothing is lost
// when several buttons change together.
func (s *System) PollEvent() (Event, bool) {
	if len(s.events) == 0 {
		s.sampleInput()
	}
	if len(s.events) == 0 {
		return Event{}, false
	}
	e := s.events[0]
	s.events = s.events[1:]
	return e, true
}

func (s *System) sampleInput() {
	cur := s.dev.ButtonState()
	pressed := cur &^ s.prevButtons
	released := s.prevButtons &^ cur
	s.prevButtons = cur

	for _, m := range buttonMapping {
		if pressed&m.button != 0 {
			s.events = append(s.events, Event{Type: EventKeyDown, Key: m.key, ASCII: m.ascii})
		}
		if released&m.button != 0 {
			s.events = append(s.events, Event{Type: EventKeyUp, Key: m.key, ASCII: m.ascii})
		}
	}

	angle := s.dev.CrankAngle()
	delta := crankDelta(s.prevCrank, angle)
	s.prevCrank = angle

	switch {
	case delta > s.cfg.CrankThreshold:
		s.events = append(s.events, Event{Type: EventWheelUp})
	case delta < -s.cfg.CrankThreshold:
		s.events = append(s.events, Event{Type: EventWheelDown})
	}
}

// crankDelta is the signed rotation from prev to cur, in (-180,180].
func crankDelta(prev, cur float32) float32 {
	d := cur - prev
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}
