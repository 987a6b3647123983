package screen

import (
	"errors"
	"image/color"
	"testing"
)

func TestLuminance(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		expected uint8
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{255, 0, 0, 76},
		{0, 255, 0, 149},
		{0, 0, 255, 29},
		{0x55, 0x55, 0x55, 0x55},
		{0xAA, 0x55, 0x00, 100},
	}

	for i, c := range cases {
		if actual := Luminance(c.r, c.g, c.b); actual != c.expected {
			t.Errorf("%d: Luminance(%d,%d,%d) = %d, expected %d", i, c.r, c.g, c.b, actual, c.expected)
		}
	}
}

func TestLuminanceIsStable(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 3 {
			for b := 0; b < 256; b += 7 {
				l1 := Luminance(uint8(r), uint8(g), uint8(b))
				l2 := Luminance(uint8(r), uint8(g), uint8(b))
				if l1 != l2 {
					t.Fatalf("Luminance(%d,%d,%d) not deterministic: %d != %d", r, g, b, l1, l2)
				}
				lo, hi := min(r, g, b), max(r, g, b)
				if int(l1) < lo-1 || int(l1) > hi {
					t.Fatalf("Luminance(%d,%d,%d) = %d outside channel range", r, g, b, l1)
				}
			}
		}
	}
}

func TestPaletteSetRange(t *testing.T) {
	var p Palette
	if err := p.SetRange([]byte{1, 2, 3, 4, 5, 6}, 254, 2); err != nil {
		t.Fatal(err)
	}
	if p[254] != (RGB{1, 2, 3}) || p[255] != (RGB{4, 5, 6}) {
		t.Fatalf("unexpected entries %v %v", p[254], p[255])
	}

	out := make([]byte, 6)
	if err := p.GrabRange(out, 254, 2); err != nil {
		t.Fatal(err)
	}
	if string(out) != string([]byte{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("grab returned %v", out)
	}
}

func TestPaletteSetRangeRejectsOutOfBounds(t *testing.T) {
	var p Palette
	before := p

	cases := []struct{ start, count int }{
		{255, 2},
		{256, 1},
		{-1, 1},
		{0, 257},
	}
	for _, c := range cases {
		err := p.SetRange(make([]byte, 3*max(c.count, 0)), c.start, c.count)
		var rangeErr RangeError
		if !errors.As(err, &rangeErr) {
			t.Errorf("SetRange(%d,%d): expected RangeError, got %v", c.start, c.count, err)
		}
	}
	if p != before {
		t.Fatal("rejected ranges modified the palette")
	}

	if err := p.SetRange([]byte{1, 2}, 0, 1); err != ErrShortColors {
		t.Fatalf("expected ErrShortColors, got %v", err)
	}
}

func TestDefaultPalettes(t *testing.T) {
	gray := NewPalette(DefaultPalettes.Gray)
	for i, c := range gray {
		if c.Luma() != uint8(i) {
			t.Fatalf("gray[%d] has luma %d", i, c.Luma())
		}
	}

	ega := NewPalette(DefaultPalettes.EGA)
	if ega[15] != (RGB{0xFF, 0xFF, 0xFF}) || ega[6] != (RGB{0xAA, 0x55, 0x00}) {
		t.Fatalf("unexpected EGA entries %v %v", ega[15], ega[6])
	}
	if ega[16] != (RGB{}) {
		t.Fatal("unset entries should be black")
	}
}

func TestSetColorsFlattensAlpha(t *testing.T) {
	var p Palette
	if err := p.SetColors(10, color.Palette{color.RGBA{0x80, 0x40, 0x20, 0xFF}}); err != nil {
		t.Fatal(err)
	}
	if p[10] != (RGB{0x80, 0x40, 0x20}) {
		t.Fatalf("got %v", p[10])
	}
}
