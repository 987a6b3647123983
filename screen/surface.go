package screen

import (
	"image"
)

// Surface is an 8-bit paletted pixel buffer. The palette lives elsewhere so
// that one surface can be viewed through the game palette or the cursor
// palette without copying.
type Surface struct {
	Pix    []uint8
	Stride int
	W, H   int
}

func NewSurface(w, h int) *Surface {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Surface{
		Pix:    make([]uint8, w*h),
		Stride: w,
		W:      w,
		H:      h,
	}
}

func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.W, s.H)
}

func (s *Surface) In(x, y int) bool {
	return x >= 0 && x < s.W && y >= 0 && y < s.H
}

func (s *Surface) ColorIndexAt(x, y int) uint8 {
	if !s.In(x, y) {
		return 0
	}
	return s.Pix[y*s.Stride+x]
}

// SetColorIndex writes a single pixel; coordinates outside the surface are
// ignored.
func (s *Surface) SetColorIndex(x, y int, c uint8) {
	if !s.In(x, y) {
		return
	}
	s.Pix[y*s.Stride+x] = c
}

func (s *Surface) Clear(c uint8) {
	for i := range s.Pix {
		s.Pix[i] = c
	}
}

// FillRect fills r clipped to the surface.
func (s *Surface) FillRect(r image.Rectangle, c uint8) {
	r = r.Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := s.Pix[y*s.Stride+r.Min.X : y*s.Stride+r.Max.X]
		for i := range row {
			row[i] = c
		}
	}
}

// CopyRect copies a w×h block of indices from buf, whose rows are pitch
// bytes apart, to (x, y). The block is clipped to the surface; rows of buf
// that would fall outside it are never read.
func (s *Surface) CopyRect(buf []byte, pitch, x, y, w, h int) {
	dst := image.Rect(x, y, x+w, y+h).Intersect(s.Bounds())
	if dst.Empty() {
		return
	}
	sx, sy := dst.Min.X-x, dst.Min.Y-y
	n := dst.Dx()
	for row := 0; row < dst.Dy(); row++ {
		so := (sy+row)*pitch + sx
		if so < 0 || so+n > len(buf) {
			return
		}
		do := (dst.Min.Y+row)*s.Stride + dst.Min.X
		copy(s.Pix[do:do+n], buf[so:so+n])
	}
}

// Image exposes the surface through pal. The pixel slice is shared.
func (s *Surface) Image(pal *Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     s.Pix,
		Stride:  s.Stride,
		Rect:    s.Bounds(),
		Palette: pal.Colors(),
	}
}

// Luma renders the surface into a grayscale image through pal.
func (s *Surface) Luma(pal *Palette) *image.Gray {
	lut := pal.Lumas()
	dst := image.NewGray(s.Bounds())
	for y := 0; y < s.H; y++ {
		src := s.Pix[y*s.Stride : y*s.Stride+s.W]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+s.W]
		for x, c := range src {
			row[x] = lut[c]
		}
	}
	return dst
}

// SurfaceFrom copies the indices of a paletted image into a new surface.
func SurfaceFrom(img *image.Paletted) *Surface {
	b := img.Bounds()
	s := NewSurface(b.Dx(), b.Dy())
	for y := 0; y < s.H; y++ {
		o := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(s.Pix[y*s.Stride:y*s.Stride+s.W], img.Pix[o:o+s.W])
	}
	return s
}
