package screen

import (
	"errors"
	"image"
	"math"
	"testing"
)

func blackWhite() *Palette {
	p := NewPalette(DefaultPalettes.Mono)
	return &p
}

func surfaceOf(w, h int, pix ...uint8) *Surface {
	s := NewSurface(w, h)
	copy(s.Pix, pix)
	return s
}

func countWhite(fb *Framebuffer, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if fb.Bit(x, y) {
				n++
			}
		}
	}
	return n
}

func TestConvertTwoPixels(t *testing.T) {
	fb := NewFramebuffer(8, 1)
	fb.Fill(true)
	src := NewPalettedSource(surfaceOf(2, 1, 0, 1), blackWhite())

	if err := (Converter{}).Convert(fb, image.Point{}, src, src.Bounds(), 0); err != nil {
		t.Fatal(err)
	}
	if fb.Bit(0, 0) {
		t.Error("pixel 0 should be black")
	}
	if !fb.Bit(1, 0) {
		t.Error("pixel 1 should be white")
	}
	if fb.Pix[0] != 0x7F {
		t.Errorf("pixels outside the region changed: %08b", fb.Pix[0])
	}
}

func TestConvertSolidRegions(t *testing.T) {
	cases := []struct {
		index uint8
		white bool
	}{
		{0, false},
		{1, true},
	}

	for _, c := range cases {
		fb := NewFramebuffer(64, 32)
		fb.Fill(!c.white)
		s := NewSurface(64, 32)
		s.Clear(c.index)

		if err := (Converter{}).Convert(fb, image.Point{}, NewPalettedSource(s, blackWhite()), s.Bounds(), 0); err != nil {
			t.Fatal(err)
		}
		expected := 0
		if c.white {
			expected = 64 * 32
		}
		if n := countWhite(fb, fb.Bounds()); n != expected {
			t.Errorf("index %d: %d white pixels, expected %d", c.index, n, expected)
		}
	}
}

func TestConvertPreservesAverageBrightness(t *testing.T) {
	cases := []struct {
		name   string
		c1, c2 RGB
	}{
		{"dark checker", RGB{0x60, 0x60, 0x60}, RGB{0x90, 0x90, 0x90}},
		{"ega checker", RGB{0xAA, 0x55, 0x00}, RGB{0x55, 0xFF, 0xFF}},
		{"light checker", RGB{0xB0, 0xB0, 0xB0}, RGB{0xE0, 0xE0, 0xE0}},
	}

	for _, c := range cases {
		var pal Palette
		pal[0], pal[1] = c.c1, c.c2

		const w, h = 128, 128
		s := NewSurface(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				s.Pix[y*s.Stride+x] = uint8((x ^ y) & 1)
			}
		}

		fb := NewFramebuffer(w, h)
		if err := (Converter{}).Convert(fb, image.Point{}, NewPalettedSource(s, &pal), s.Bounds(), 0); err != nil {
			t.Fatal(err)
		}

		expected := (float64(c.c1.Luma()) + float64(c.c2.Luma())) / 2 / 255
		actual := float64(countWhite(fb, fb.Bounds())) / (w * h)
		if math.Abs(expected-actual) > 0.03 {
			t.Errorf("%s: white fraction %.3f, expected %.3f", c.name, actual, expected)
		}
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	gray := NewPalette(DefaultPalettes.Gray)
	s := NewSurface(40, 30)
	for i := range s.Pix {
		s.Pix[i] = uint8(i * 7)
	}
	src := NewPalettedSource(s, &gray)

	a, b := NewFramebuffer(40, 30), NewFramebuffer(40, 30)
	_ = (Converter{}).Convert(a, image.Point{}, src, s.Bounds(), 0)
	_ = (Converter{}).Convert(b, image.Point{}, src, s.Bounds(), 0)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("byte %d differs between identical conversions", i)
		}
	}
}

func TestConvertClipsToFramebuffer(t *testing.T) {
	fb := NewFramebuffer(16, 8)
	fb.Fill(false)
	s := NewSurface(10, 10)
	s.Clear(1)
	src := NewPalettedSource(s, blackWhite())

	// Straddle the bottom-right corner.
	if err := (Converter{}).Convert(fb, image.Pt(12, 4), src, s.Bounds(), 0); err != nil {
		t.Fatal(err)
	}
	if n := countWhite(fb, fb.Bounds()); n != 4*4 {
		t.Fatalf("%d white pixels, expected 16", n)
	}
	if n := countWhite(fb, image.Rect(12, 4, 16, 8)); n != 16 {
		t.Fatalf("in-bounds corner not fully written: %d", n)
	}

	// Straddle the top-left corner.
	fb.Fill(false)
	if err := (Converter{}).Convert(fb, image.Pt(-7, -8), src, s.Bounds(), 0); err != nil {
		t.Fatal(err)
	}
	if n := countWhite(fb, image.Rect(0, 0, 3, 2)); n != 6 || countWhite(fb, fb.Bounds()) != 6 {
		t.Fatalf("unexpected top-left clip")
	}
}

func TestConvertShake(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Fill(false)
	s := NewSurface(8, 8)
	s.Clear(1)

	if err := (Converter{}).Convert(fb, image.Point{}, NewPalettedSource(s, blackWhite()), s.Bounds(), 3); err != nil {
		t.Fatal(err)
	}
	if n := countWhite(fb, image.Rect(0, 0, 8, 3)); n != 0 {
		t.Fatalf("rows above the shake offset were written: %d", n)
	}
	if n := countWhite(fb, image.Rect(0, 3, 8, 8)); n != 40 {
		t.Fatalf("shaken rows not written: %d", n)
	}
}

func TestConvertBudgetFallsBackToThreshold(t *testing.T) {
	gray := NewPalette(DefaultPalettes.Gray)
	s := NewSurface(32, 4)
	s.Clear(100)
	src := NewPalettedSource(s, &gray)

	fb := NewFramebuffer(32, 4)
	fb.Fill(true)
	err := Converter{ErrorRowBudget: 10}.Convert(fb, image.Point{}, src, s.Bounds(), 0)

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if exhausted.Cells != 68 {
		t.Errorf("cells = %d", exhausted.Cells)
	}
	if n := countWhite(fb, fb.Bounds()); n != 0 {
		t.Fatalf("threshold fallback should render luma 100 black, %d white", n)
	}

	fb.Fill(true)
	if err := (Converter{ErrorRowBudget: 68}).Convert(fb, image.Point{}, src, s.Bounds(), 0); err != nil {
		t.Fatalf("budget of exactly the needed size rejected: %v", err)
	}
	if n := countWhite(fb, fb.Bounds()); n == 0 {
		t.Fatal("error diffusion should turn some mid-gray pixels white")
	}
}

func TestConvertGraySource(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 9, 6))
	img.Pix[1], img.Pix[3] = 0xFF, 0xFF

	fb := NewFramebuffer(8, 1)
	if err := (Converter{Mode: DirectThreshold}).Convert(fb, image.Point{}, GraySource{img}, img.Bounds(), 0); err != nil {
		t.Fatal(err)
	}
	if fb.Pix[0] != 0x50 {
		t.Fatalf("got %08b", fb.Pix[0])
	}
}
