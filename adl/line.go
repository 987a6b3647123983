package adl

import (
	"image"

	"github.com/32bitkid/onebit/screen"
)

// DrawLine draws a four-connected line from p1 to p2 inclusive: every step
// moves either horizontally or vertically, never both.
func DrawLine(dst *screen.Surface, p1, p2 image.Point, color uint8) {
	deltaX, stepX := p2.X-p1.X, 1
	if deltaX < 0 {
		deltaX, stepX = -deltaX, -1
	}

	// deltaY is kept negative
	deltaY, stepY := p2.Y-p1.Y, -1
	if deltaY > 0 {
		deltaY, stepY = -deltaY, 1
	}

	p := p1
	steps := deltaX - deltaY + 1
	fraction := deltaX + deltaY

	for {
		dst.SetColorIndex(p.X, p.Y, color)

		if steps--; steps == 0 {
			return
		}

		if fraction < 0 {
			p.Y += stepY
			fraction += deltaX
		} else {
			p.X += stepX
			fraction += deltaY
		}
	}
}
