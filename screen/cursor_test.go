package screen

import (
	"bytes"
	"encoding/binary"
	"image"
	"strings"
	"testing"
)

func TestCompositeCursorTransparency(t *testing.T) {
	pal := NewPalette(DefaultPalettes.EGA)
	c := &Cursor{
		Surface: surfaceOf(3, 1,
			0x0, 0x5, 0xF,
		),
		KeyColor: 0x5,
	}

	for _, background := range []bool{false, true} {
		fb := NewFramebuffer(8, 1)
		fb.Fill(background)

		CompositeCursor(fb, c, image.Pt(2, 0), &pal)

		if fb.Bit(2, 0) {
			t.Error("black cursor pixel should be black")
		}
		if fb.Bit(3, 0) != background {
			t.Error("key-colored pixel altered the framebuffer")
		}
		if !fb.Bit(4, 0) {
			t.Error("white cursor pixel should be white")
		}
	}
}

func TestCompositeCursorHotspotAndClip(t *testing.T) {
	var pal Palette
	pal[1] = RGB{0xFF, 0xFF, 0xFF}
	c := &Cursor{Surface: NewSurface(4, 4), Hotspot: image.Pt(2, 2), KeyColor: NoKeyColor}
	c.Clear(1)

	fb := NewFramebuffer(8, 8)
	CompositeCursor(fb, c, image.Pt(0, 0), &pal)

	if n := countWhite(fb, fb.Bounds()); n != 4 {
		t.Fatalf("expected the 2x2 in-bounds quarter of the cursor, got %d pixels", n)
	}
	if !fb.Bit(0, 0) || !fb.Bit(1, 1) {
		t.Fatal("hotspot offset not applied")
	}
}

func TestCompositeCursorThresholdsWithoutDiffusion(t *testing.T) {
	gray := NewPalette(DefaultPalettes.Gray)
	c := &Cursor{Surface: NewSurface(8, 1), KeyColor: NoKeyColor}
	c.Clear(127)

	fb := NewFramebuffer(8, 1)
	fb.Fill(true)
	CompositeCursor(fb, c, image.Point{}, &gray)
	if fb.Pix[0] != 0x00 {
		t.Fatalf("luma 127 should always be black, got %08b", fb.Pix[0])
	}

	c.Clear(128)
	CompositeCursor(fb, c, image.Point{}, &gray)
	if fb.Pix[0] != 0xFF {
		t.Fatalf("luma 128 should always be white, got %08b", fb.Pix[0])
	}
}

func TestReadCursor(t *testing.T) {
	var res cursorResource
	res.Hotspot.X, res.Hotspot.Y = 1, 2
	res.Transparency[0] = 0xFFFE
	res.Color[1] = 0x0001

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &res); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 68 {
		t.Fatalf("resource is %d bytes", buf.Len())
	}

	c, err := ReadCursor(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if c.Hotspot != image.Pt(1, 2) {
		t.Errorf("hotspot %v", c.Hotspot)
	}
	if c.ColorIndexAt(0, 0) != CursorBlack || c.ColorIndexAt(1, 0) != CursorKey {
		t.Error("row 0 decoded incorrectly")
	}
	if c.ColorIndexAt(0, 1) != CursorWhite || c.ColorIndexAt(1, 1) != CursorBlack {
		t.Error("row 1 decoded incorrectly")
	}

	lines := strings.Split(c.String(), "\n")
	if lines[0] != "░"+strings.Repeat(" ", 15) {
		t.Errorf("unexpected rendering %q", lines[0])
	}
}

func TestReadCursorShort(t *testing.T) {
	if _, err := ReadCursor(bytes.NewReader(make([]byte, 10))); err == nil {
		t.Fatal("expected error")
	}
}
