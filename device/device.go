// Package device describes the handheld's peripherals as small capability
// interfaces. A backend composes whichever ones it needs; Headless
// implements all of them in memory.
package device

import (
	"fmt"
	"time"
)

// Display is the 1-bit panel.
type Display interface {
	// Frame returns the packed framebuffer the panel scans out. The
	// slice stays valid for the lifetime of the display.
	Frame() []byte
	Size() (w, h int)

	// MarkUpdatedRows tells the driver rows start..end (inclusive) changed.
	MarkUpdatedRows(start, end int)
}

type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonB
	ButtonA
)

func (b Buttons) String() string {
	names := [...]string{"Left", "Right", "Up", "Down", "B", "A"}
	str := ""
	for i, name := range names {
		if b&(1<<uint(i)) != 0 {
			if str != "" {
				str += "|"
			}
			str += name
		}
	}
	return fmt.Sprintf("Buttons(%s)", str)
}

// Input is the D-pad, the two face buttons and the crank.
type Input interface {
	ButtonState() Buttons
	// CrankAngle is in degrees, [0,360).
	CrankAngle() float32
}

// Epoch is the reference point for Clock.SecondsSinceEpoch.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type Clock interface {
	// Millis is a free-running millisecond counter.
	Millis() uint32
	// SecondsSinceEpoch counts seconds since Epoch, not the Unix epoch.
	SecondsSinceEpoch() uint32
}

// Device bundles every capability.
type Device interface {
	Display
	Input
	Clock
}
