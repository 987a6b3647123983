package adl

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/32bitkid/onebit/screen"
)

const (
	HGRWidth  = 280
	HGRHeight = 192

	// HGRSize is the length of one hi-res page.
	HGRSize = 0x2000

	hgrBytesPerRow = HGRWidth / 7
)

var ErrHGRSize = errors.New("adl: hi-res page must be 0x2000 bytes")

// HGRPalette maps the indices DecodeHGR produces.
var HGRPalette = color.Palette{color.Black, color.White}

// hgrAddr returns the offset of the byte holding pixel x of row y. Rows are
// interleaved in three groups of 64, each split into eight bands of eight.
func hgrAddr(x, y int) int {
	offset := y & 7
	row := (y / 8) & 7
	group := y / 64
	return 0x28*group + 0x80*row + 0x400*offset + x/7
}

// DecodeHGR unpacks a hi-res page into a 280×192 surface of HGRPalette
// indices. Each byte holds seven pixels, least significant bit first. The
// high bit only shifts NTSC color and is ignored.
func DecodeHGR(page []byte) (*screen.Surface, error) {
	if len(page) != HGRSize {
		return nil, fmt.Errorf("%w: got 0x%04x", ErrHGRSize, len(page))
	}

	s := screen.NewSurface(HGRWidth, HGRHeight)
	for y := 0; y < HGRHeight; y++ {
		row := s.Pix[y*s.Stride : y*s.Stride+HGRWidth]
		for col := 0; col < hgrBytesPerRow; col++ {
			val := page[hgrAddr(col*7, y)]
			for b := 0; b < 7; b++ {
				row[col*7+b] = (val >> uint(b)) & 1
			}
		}
	}
	return s, nil
}

// ReadHGR reads exactly one hi-res page from r and decodes it.
func ReadHGR(r io.Reader) (*screen.Surface, error) {
	page := make([]byte, HGRSize)
	if _, err := io.ReadFull(r, page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHGRSize, err)
	}
	return DecodeHGR(page)
}
