// Package adl renders the graphics of the hi-res adventure games: vector
// pictures drawn as four-connected line art, and raw Apple II hi-res screen
// dumps.
package adl

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/32bitkid/bitreader"

	"github.com/32bitkid/onebit/screen"
)

// ErrPictureTruncated is returned when a picture stream ends before its
// terminator.
var ErrPictureTruncated = errors.New("adl: picture truncated")

// PicColor is the palette index pictures are drawn with.
const PicColor uint8 = 0x7f

// MaxPicY is the last row a picture may touch; the rows below it belong to
// the text window.
const MaxPicY = 160

type picReader struct {
	bits bitreader.BitReader
}

// getPoint reads one x, y byte pair.
func (p picReader) getPoint() (uint8, uint8, error) {
	x, err := p.bits.Read8(8)
	if err != nil {
		return 0, 0, err
	}
	y, err := p.bits.Read8(8)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// DrawPic draws the picture stream in r onto dst, offset by pos.
//
// A picture is a list of x, y byte pairs. The pair 0,0 lifts the pen so the
// next point starts a new stroke, and 0xff,0xff ends the picture. Positions
// wrap at 8 bits after the offset is added and y never goes below MaxPicY.
// Strokes leaving the surface are clipped.
func DrawPic(r io.Reader, pos image.Point, dst *screen.Surface, color uint8) error {
	p := picReader{bitreader.NewReader(bufio.NewReader(r))}

	var (
		newLine    bool
		oldX, oldY uint8
	)

	for {
		x, y, err := p.getPoint()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPictureTruncated, err)
		}

		if x == 0xff && y == 0xff {
			return nil
		}

		if x == 0 && y == 0 {
			newLine = true
			continue
		}

		x += uint8(pos.X)
		y += uint8(pos.Y)

		if y > MaxPicY {
			y = MaxPicY
		}

		if newLine {
			dst.SetColorIndex(int(x), int(y), color)
			newLine = false
		} else {
			DrawLine(dst, image.Pt(int(oldX), int(oldY)), image.Pt(int(x), int(y)), color)
		}

		oldX, oldY = x, y
	}
}
