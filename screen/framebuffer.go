package screen

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/32bitkid/bitreader"
)

// Native size of the reflective 1-bit panel.
const (
	DisplayWidth  = 400
	DisplayHeight = 240
)

// Framebuffer is a packed 1-bit bitmap, row-major, eight pixels per byte with
// the leftmost pixel in the most significant bit.
//
// A set bit is white and a clear bit is black, which is what the panel
// expects: "on" pixels are the reflective background.
type Framebuffer struct {
	Pix    []byte
	Stride int
	Width  int
	Height int
}

// RowBytes is the stride of a packed row holding w pixels.
func RowBytes(w int) int {
	return (w + 7) / 8
}

func NewFramebuffer(w, h int) *Framebuffer {
	stride := RowBytes(w)
	return &Framebuffer{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Width:  w,
		Height: h,
	}
}

// FramebufferOver adopts pix, typically memory owned by a display driver,
// as a w×h framebuffer.
func FramebufferOver(pix []byte, w, h int) (*Framebuffer, error) {
	stride := RowBytes(w)
	if len(pix) < stride*h {
		return nil, fmt.Errorf("screen: frame of %d bytes too small for %dx%d (need %d)", len(pix), w, h, stride*h)
	}
	return &Framebuffer{
		Pix:    pix[:stride*h],
		Stride: stride,
		Width:  w,
		Height: h,
	}, nil
}

func (fb *Framebuffer) In(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

func (fb *Framebuffer) addr(x, y int) (int, uint8) {
	return y*fb.Stride + x/8, 1 << uint(7-x%8)
}

// SetBit turns (x, y) white. The caller guarantees the point is in bounds.
func (fb *Framebuffer) SetBit(x, y int) {
	i, m := fb.addr(x, y)
	fb.Pix[i] |= m
}

// ClearBit turns (x, y) black. The caller guarantees the point is in bounds.
func (fb *Framebuffer) ClearBit(x, y int) {
	i, m := fb.addr(x, y)
	fb.Pix[i] &^= m
}

func (fb *Framebuffer) Bit(x, y int) bool {
	i, m := fb.addr(x, y)
	return fb.Pix[i]&m != 0
}

// Put writes one pixel, silently dropping points outside the bitmap.
func (fb *Framebuffer) Put(x, y int, white bool) {
	if !fb.In(x, y) {
		return
	}
	if white {
		fb.SetBit(x, y)
	} else {
		fb.ClearBit(x, y)
	}
}

// Fill sets every pixel, padding bits included.
func (fb *Framebuffer) Fill(white bool) {
	var v byte
	if white {
		v = 0xFF
	}
	for i := range fb.Pix {
		fb.Pix[i] = v
	}
}

func (fb *Framebuffer) ColorModel() color.Model { return color.GrayModel }

func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

func (fb *Framebuffer) At(x, y int) color.Color {
	if !fb.In(x, y) || !fb.Bit(x, y) {
		return color.Gray{Y: 0x00}
	}
	return color.Gray{Y: 0xFF}
}

// Gray unpacks the bitmap into one byte per pixel.
func (fb *Framebuffer) Gray() (*image.Gray, error) {
	dst := image.NewGray(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		row := fb.Pix[y*fb.Stride : (y+1)*fb.Stride]
		bits := bitreader.NewReader(bufio.NewReader(bytes.NewReader(row)))
		for x := 0; x < fb.Width; x++ {
			on, err := bits.Read1()
			if err != nil {
				return nil, err
			}
			if on {
				dst.Pix[y*dst.Stride+x] = 0xFF
			}
		}
	}
	return dst, nil
}

// WritePBM encodes the bitmap as a binary portable bitmap (P4). PBM uses
// 1 for black, so every byte is inverted on the way out.
func (fb *Framebuffer) WritePBM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P4\n%d %d\n", fb.Width, fb.Height); err != nil {
		return err
	}
	row := make([]byte, fb.Stride)
	for y := 0; y < fb.Height; y++ {
		for i, b := range fb.Pix[y*fb.Stride : (y+1)*fb.Stride] {
			row[i] = ^b
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
