package screen

import (
	"errors"
	"fmt"
	"image/color"
)

// PaletteSize is the number of entries in every palette table.
const PaletteSize = 256

// RGB is a single opaque palette entry, 8 bits per channel.
type RGB struct{ R, G, B uint8 }

func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)<<8 | uint32(c.R)
	g = uint32(c.G)<<8 | uint32(c.G)
	b = uint32(c.B)<<8 | uint32(c.B)
	a = 0xFFFF
	return
}

// Luma is the BT.601 luminance of the entry.
func (c RGB) Luma() uint8 { return Luminance(c.R, c.G, c.B) }

// Luminance weights the channels 299:587:114 over 1000 using integer
// arithmetic only, so every call on every platform agrees bit for bit.
func Luminance(r, g, b uint8) uint8 {
	return uint8((uint32(r)*299 + uint32(g)*587 + uint32(b)*114) / 1000)
}

// Palette is a 256 entry lookup table for 8-bit surfaces. Every uint8 is a
// valid index, so lookups never go out of range; entries that were never
// set are black.
type Palette [PaletteSize]RGB

// ErrShortColors is returned when a color slice holds fewer than 3*count bytes.
var ErrShortColors = errors.New("screen: color data shorter than requested range")

// RangeError reports a palette range that does not fit in [0,256).
type RangeError struct {
	Start, Count int
}

func (e RangeError) Error() string {
	return fmt.Sprintf("screen: palette range [%d,%d) outside [0,%d)", e.Start, e.Start+e.Count, PaletteSize)
}

func checkRange(start, count int) error {
	if start < 0 || count < 0 || start+count > PaletteSize {
		return RangeError{Start: start, Count: count}
	}
	return nil
}

// SetRange copies count packed RGB triples from colors into the palette
// starting at start. Nothing is written when the range is rejected.
func (p *Palette) SetRange(colors []byte, start, count int) error {
	if err := checkRange(start, count); err != nil {
		return err
	}
	if len(colors) < count*3 {
		return ErrShortColors
	}
	for i := 0; i < count; i++ {
		p[start+i] = RGB{colors[i*3], colors[i*3+1], colors[i*3+2]}
	}
	return nil
}

// GrabRange is the inverse of SetRange.
func (p *Palette) GrabRange(dst []byte, start, count int) error {
	if err := checkRange(start, count); err != nil {
		return err
	}
	if len(dst) < count*3 {
		return ErrShortColors
	}
	for i := 0; i < count; i++ {
		c := p[start+i]
		dst[i*3], dst[i*3+1], dst[i*3+2] = c.R, c.G, c.B
	}
	return nil
}

// SetColors loads arbitrary colors starting at start.
func (p *Palette) SetColors(start int, colors color.Palette) error {
	if err := checkRange(start, len(colors)); err != nil {
		return err
	}
	for i, c := range colors {
		p[start+i] = toRGB(c)
	}
	return nil
}

// Lumas precomputes the luminance of every entry.
func (p *Palette) Lumas() (lut [PaletteSize]uint8) {
	for i, c := range p {
		lut[i] = c.Luma()
	}
	return
}

// Colors returns the palette as a color.Palette suitable for image.Paletted.
func (p *Palette) Colors() color.Palette {
	pal := make(color.Palette, PaletteSize)
	for i, c := range p {
		pal[i] = c
	}
	return pal
}

// NewPalette builds a Palette from the leading entries of colors.
func NewPalette(colors color.Palette) Palette {
	var p Palette
	if len(colors) > PaletteSize {
		colors = colors[:PaletteSize]
	}
	_ = p.SetColors(0, colors)
	return p
}

func grayRamp() color.Palette {
	pal := make(color.Palette, PaletteSize)
	for i := range pal {
		pal[i] = rgbMix(color.Black, color.White, float64(i)/float64(PaletteSize-1))
	}
	return pal
}

var DefaultPalettes = struct {
	EGA  color.Palette
	Gray color.Palette
	Mono color.Palette
}{
	EGA: color.Palette{
		rgb24Color(0x000000),
		rgb24Color(0x0000AA),
		rgb24Color(0x00AA00),
		rgb24Color(0x00AAAA),
		rgb24Color(0xAA0000),
		rgb24Color(0xAA00AA),
		rgb24Color(0xAA5500),
		rgb24Color(0xAAAAAA),

		rgb24Color(0x555555),
		rgb24Color(0x5555FF),
		rgb24Color(0x55FF55),
		rgb24Color(0x55FFFF),
		rgb24Color(0xFF5555),
		rgb24Color(0xFF55FF),
		rgb24Color(0xFFFF55),
		rgb24Color(0xFFFFFF),
	},
	Gray: grayRamp(),
	Mono: color.Palette{
		rgb24Color(0x000000),
		rgb24Color(0xFFFFFF),
	},
}
