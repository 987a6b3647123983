package graphics

import (
	"image"

	"github.com/32bitkid/onebit/screen"
)

type Feature int

const (
	FeatureCursorPalette Feature = iota
)

func (m *Manager) HasFeature(f Feature) bool {
	return f == FeatureCursorPalette
}

func (m *Manager) SetFeatureState(f Feature, enable bool) {
	if f == FeatureCursorPalette {
		m.cursorPaletteEnabled = enable
	}
}

func (m *Manager) FeatureState(f Feature) bool {
	if f == FeatureCursorPalette {
		return m.cursorPaletteEnabled
	}
	return false
}

// ShowMouse sets cursor visibility and reports the previous state.
func (m *Manager) ShowMouse(visible bool) bool {
	last := m.cursorVisible
	m.cursorVisible = visible
	return last
}

func (m *Manager) WarpMouse(x, y int) {
	m.cursorPos = image.Pt(x, y)
}

func (m *Manager) MousePos() image.Point { return m.cursorPos }

// SetMouseCursor replaces the cursor bitmap with a w×h block of palette
// indices. buf may be nil to keep the current pixels when the size is
// unchanged.
func (m *Manager) SetMouseCursor(buf []byte, w, h, hotspotX, hotspotY int, keyColor uint32) {
	if m.cursor == nil || m.cursor.W != w || m.cursor.H != h {
		m.cursor = &screen.Cursor{Surface: screen.NewSurface(w, h)}
	}
	m.cursor.Hotspot = image.Pt(hotspotX, hotspotY)
	m.cursor.KeyColor = keyColor

	if buf != nil {
		m.cursor.CopyRect(buf, w, 0, 0, w, h)
	}
}

// SetCursor installs an already decoded cursor, such as one from
// screen.ReadCursor.
func (m *Manager) SetCursor(c *screen.Cursor) {
	m.cursor = c
}

func (m *Manager) SetCursorPalette(colors []byte, start, num int) error {
	return m.cursorPalette.SetRange(colors, start, num)
}
