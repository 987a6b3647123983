package screen

import (
	"fmt"
	"image"
)

// Source is anything that can be sampled as 8-bit luminance.
type Source interface {
	Bounds() image.Rectangle
	LumaAt(x, y int) uint8
}

// PalettedSource samples a Surface through a Palette. The luminance of every
// palette entry is computed once when the source is built.
type PalettedSource struct {
	*Surface
	lut [PaletteSize]uint8
}

func NewPalettedSource(s *Surface, pal *Palette) *PalettedSource {
	return &PalettedSource{Surface: s, lut: pal.Lumas()}
}

func (s *PalettedSource) LumaAt(x, y int) uint8 {
	return s.lut[s.Pix[y*s.Stride+x]]
}

// GraySource samples an *image.Gray directly.
type GraySource struct{ *image.Gray }

func (s GraySource) LumaAt(x, y int) uint8 {
	return s.Pix[s.PixOffset(x, y)]
}

// RGBASource samples an *image.RGBA, ignoring alpha.
type RGBASource struct{ *image.RGBA }

func (s RGBASource) LumaAt(x, y int) uint8 {
	i := s.PixOffset(x, y)
	return Luminance(s.Pix[i], s.Pix[i+1], s.Pix[i+2])
}

// Threshold is the luminance at and above which a pixel becomes white.
const Threshold = 128

type DitherMode int

const (
	FloydSteinberg DitherMode = iota
	DirectThreshold
)

func (m DitherMode) String() string {
	switch m {
	case FloydSteinberg:
		return "DitherMode(FloydSteinberg)"
	case DirectThreshold:
		return "DitherMode(DirectThreshold)"
	}
	return "DitherMode(UNKNOWN)"
}

// ExhaustedError reports that the error rows for a region would exceed the
// converter's budget. The region has still been written, using direct
// thresholding instead of error diffusion.
type ExhaustedError struct {
	Cells  int
	Budget int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("screen: error rows need %d cells, budget is %d; fell back to threshold", e.Cells, e.Budget)
}

// Converter turns luminance into black and white pixels.
//
// ErrorRowBudget caps the number of int16 cells a single conversion may
// allocate for its two error rows; zero means unlimited.
type Converter struct {
	Mode           DitherMode
	ErrorRowBudget int
}

// Convert renders the sr region of src into dst with its top-left corner at
// dp, shifted down by shakeY rows. Pixels landing outside dst are dropped.
//
// Error diffusion state starts at zero on every call and never outlives it,
// so converting the same input twice gives the same bits.
func (c Converter) Convert(dst *Framebuffer, dp image.Point, src Source, sr image.Rectangle, shakeY int) error {
	sr = sr.Intersect(src.Bounds())
	if sr.Empty() {
		return nil
	}
	dp.Y += shakeY

	if c.Mode == DirectThreshold {
		threshold(dst, dp, src, sr)
		return nil
	}

	cells := 2 * (sr.Dx() + 2)
	if c.ErrorRowBudget > 0 && cells > c.ErrorRowBudget {
		threshold(dst, dp, src, sr)
		return &ExhaustedError{Cells: cells, Budget: c.ErrorRowBudget}
	}

	diffuse(dst, dp, src, sr)
	return nil
}

// diffuse applies Floyd-Steinberg error diffusion:
//
//	      *   7/16
//	3/16 5/16 1/16
//
// Both rows carry one padding cell either side, so column x of the region
// lives at index x+1.
func diffuse(dst *Framebuffer, dp image.Point, src Source, sr image.Rectangle) {
	w := sr.Dx()
	cur := make([]int16, w+2)
	next := make([]int16, w+2)

	for y := 0; y < sr.Dy(); y++ {
		clear(next)
		for x := 0; x < w; x++ {
			luma := int16(src.LumaAt(sr.Min.X+x, sr.Min.Y+y)) + cur[x+1]
			if luma < 0 {
				luma = 0
			} else if luma > 255 {
				luma = 255
			}

			white := luma >= Threshold
			qerr := luma
			if white {
				qerr -= 255
			}

			cur[x+2] += qerr * 7 / 16
			next[x+0] += qerr * 3 / 16
			next[x+1] += qerr * 5 / 16
			next[x+2] += qerr * 1 / 16

			dst.Put(dp.X+x, dp.Y+y, white)
		}
		cur, next = next, cur
	}
}

func threshold(dst *Framebuffer, dp image.Point, src Source, sr image.Rectangle) {
	for y := 0; y < sr.Dy(); y++ {
		for x := 0; x < sr.Dx(); x++ {
			dst.Put(dp.X+x, dp.Y+y, src.LumaAt(sr.Min.X+x, sr.Min.Y+y) >= Threshold)
		}
	}
}
