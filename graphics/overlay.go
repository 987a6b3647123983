package graphics

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/32bitkid/onebit/screen"
)

// OverlayFormat is the pixel format GUI code should target. The overlay is
// stored as RGBA; callers hand it any image.Image.
func (m *Manager) OverlayFormat() Format { return FormatRGB565 }

func (m *Manager) OverlayWidth() int  { return m.fb.Width }
func (m *Manager) OverlayHeight() int { return m.fb.Height }

// ShowOverlay switches the panel to the GUI overlay, allocating it on first
// use.
func (m *Manager) ShowOverlay(inGUI bool) {
	m.overlayVisible = true
	if m.overlay == nil {
		m.overlay = image.NewRGBA(m.fb.Bounds())
	}
}

func (m *Manager) HideOverlay()           { m.overlayVisible = false }
func (m *Manager) IsOverlayVisible() bool { return m.overlayVisible }

func (m *Manager) ClearOverlay() {
	if m.overlay == nil {
		return
	}
	draw.Draw(m.overlay, m.overlay.Bounds(), image.Black, image.Point{}, draw.Src)
}

// GrabOverlay copies the overlay into dst.
func (m *Manager) GrabOverlay(dst draw.Image) {
	if m.overlay == nil {
		return
	}
	draw.Draw(dst, dst.Bounds(), m.overlay, m.overlay.Bounds().Min, draw.Src)
}

// CopyRectToOverlay copies the sr region of src to dp on the overlay.
func (m *Manager) CopyRectToOverlay(dp image.Point, src image.Image, sr image.Rectangle) {
	if m.overlay == nil {
		return
	}
	dr := image.Rectangle{Min: dp, Max: dp.Add(sr.Size())}
	draw.Draw(m.overlay, dr, src, sr.Min, draw.Src)
}

func (m *Manager) drawOverlay() error {
	if m.overlay == nil {
		return nil
	}
	return m.conv.Convert(m.fb, image.Point{}, screen.RGBASource{RGBA: m.overlay}, m.overlay.Bounds(), 0)
}
