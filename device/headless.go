package device

import (
	"time"
)

// Headless is an in-memory device. Tests and the command line tool drive it
// by pressing buttons and turning the crank directly.
type Headless struct {
	frame  []byte
	width  int
	height int

	buttons Buttons
	crank   float32

	// Now defaults to time.Now.
	Now   func() time.Time
	start time.Time

	Updates  int
	LastMark [2]int
}

func NewHeadless(w, h int) *Headless {
	return &Headless{
		frame:  make([]byte, (w+7)/8*h),
		width:  w,
		height: h,
		Now:    time.Now,
	}
}

func (h *Headless) Frame() []byte    { return h.frame }
func (h *Headless) Size() (int, int) { return h.width, h.height }

func (h *Headless) MarkUpdatedRows(start, end int) {
	h.Updates++
	h.LastMark = [2]int{start, end}
}

func (h *Headless) ButtonState() Buttons { return h.buttons }
func (h *Headless) CrankAngle() float32  { return h.crank }

func (h *Headless) Press(b Buttons)   { h.buttons |= b }
func (h *Headless) Release(b Buttons) { h.buttons &^= b }

// TurnCrank rotates the crank by delta degrees, wrapping into [0,360).
func (h *Headless) TurnCrank(delta float32) {
	a := h.crank + delta
	for a >= 360 {
		a -= 360
	}
	for a < 0 {
		a += 360
	}
	h.crank = a
}

// Millis counts from the first call.
func (h *Headless) Millis() uint32 {
	if h.start.IsZero() {
		h.start = h.Now()
	}
	return uint32(h.Now().Sub(h.start) / time.Millisecond)
}

func (h *Headless) SecondsSinceEpoch() uint32 {
	return uint32(h.Now().Sub(Epoch) / time.Second)
}
