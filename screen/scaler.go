package screen

import (
	"image"

	"golang.org/x/image/draw"
)

// Scaler decides how a game surface of a given size is placed on the
// display and resamples it when the placement changes its size.
type Scaler interface {
	// Fit returns the destination rectangle, centred within display.
	Fit(size image.Point, display image.Rectangle) image.Rectangle
	Scale(dst draw.Image, dr image.Rectangle, src image.Image, sr image.Rectangle)
}

func centre(size image.Point, display image.Rectangle) image.Rectangle {
	off := display.Size().Sub(size).Div(2)
	return image.Rectangle{Max: size}.Add(display.Min.Add(off))
}

// Scaler1x1 centres the surface without resampling. Surfaces larger than the
// display are clipped evenly on both sides.
type Scaler1x1 struct{}

func (Scaler1x1) Fit(size image.Point, display image.Rectangle) image.Rectangle {
	return centre(size, display)
}

func (Scaler1x1) Scale(dst draw.Image, dr image.Rectangle, src image.Image, sr image.Rectangle) {
	draw.Draw(dst, dr, src, sr.Min, draw.Src)
}

// ScalerNearest enlarges by the largest integer factor that still fits,
// replicating pixels. It never shrinks.
type ScalerNearest struct{}

func (ScalerNearest) Factor(size image.Point, display image.Rectangle) int {
	if size.X <= 0 || size.Y <= 0 {
		return 1
	}
	f := min(display.Dx()/size.X, display.Dy()/size.Y)
	if f < 1 {
		return 1
	}
	return f
}

func (s ScalerNearest) Fit(size image.Point, display image.Rectangle) image.Rectangle {
	return centre(size.Mul(s.Factor(size, display)), display)
}

func (ScalerNearest) Scale(dst draw.Image, dr image.Rectangle, src image.Image, sr image.Rectangle) {
	draw.NearestNeighbor.Scale(dst, dr, src, sr, draw.Src, nil)
}
