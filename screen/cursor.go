package screen

import (
	"encoding/binary"
	"image"
	"io"
)

// NoKeyColor disables transparency: no uint8 index can match it.
const NoKeyColor uint32 = 0xFFFFFFFF

// Cursor is a small paletted sprite drawn on top of a finished frame.
type Cursor struct {
	*Surface
	Hotspot image.Point

	// KeyColor is the transparent palette index. Values above 255 never
	// match, so every pixel is drawn.
	KeyColor uint32
}

func (c *Cursor) transparent(idx uint8) bool {
	return c.KeyColor <= 0xFF && uint32(idx) == c.KeyColor
}

// CompositeCursor draws c with its hotspot at pos. Pixels are thresholded
// one by one, without error diffusion; key-colored pixels are skipped and
// leave dst untouched.
func CompositeCursor(dst *Framebuffer, c *Cursor, pos image.Point, pal *Palette) {
	if c == nil || c.Surface == nil {
		return
	}
	origin := pos.Sub(c.Hotspot)
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			idx := c.Pix[y*c.Stride+x]
			if c.transparent(idx) {
				continue
			}
			dst.Put(origin.X+x, origin.Y+y, pal[idx].Luma() >= Threshold)
		}
	}
}

// Pixel indices used by cursors decoded with ReadCursor.
const (
	CursorBlack uint8 = 0
	CursorWhite uint8 = 1
	CursorKey   uint8 = 2
)

// CursorPalette is the palette matching ReadCursor's indices.
func CursorPalette() Palette {
	var p Palette
	p[CursorBlack] = RGB{0x00, 0x00, 0x00}
	p[CursorWhite] = RGB{0xFF, 0xFF, 0xFF}
	p[CursorKey] = RGB{0xFF, 0x00, 0xFF}
	return p
}

type cursorResource struct {
	Hotspot      struct{ X, Y int16 }
	Transparency [16]uint16
	Color        [16]uint16
}

// ReadCursor decodes a 16x16 two-mask cursor resource: a little-endian
// hotspot followed by sixteen transparency rows and sixteen color rows.
// Bit x of a row is column x.
func ReadCursor(r io.Reader) (*Cursor, error) {
	var res cursorResource
	if err := binary.Read(r, binary.LittleEndian, &res); err != nil {
		return nil, err
	}

	c := &Cursor{
		Surface:  NewSurface(16, 16),
		Hotspot:  image.Pt(int(res.Hotspot.X), int(res.Hotspot.Y)),
		KeyColor: uint32(CursorKey),
	}

	for i := 0; i < 256; i++ {
		x := uint16(i & 0xF)
		y := uint16(i >> 4)

		tr := (res.Transparency[y]>>x)&1 == 1
		clr := (res.Color[y]>>x)&1 == 1
		switch {
		case tr:
			c.Pix[i] = CursorKey
		case clr:
			c.Pix[i] = CursorWhite
		default:
			c.Pix[i] = CursorBlack
		}
	}
	return c, nil
}

func (c *Cursor) String() string {
	str := ""
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			idx := c.Pix[y*c.Stride+x]
			switch {
			case c.transparent(idx):
				str += " "
			case idx == CursorWhite:
				str += "█"
			default:
				str += "░"
			}
		}
		str += "\n"
	}
	return str
}
