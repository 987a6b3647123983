// Package graphics adapts a paletted game screen to the handheld's 1-bit
// panel.
//
// Every frame the Manager clears the panel to white, dithers either the
// game surface or the GUI overlay into it, draws the mouse cursor on top and
// tells the display which rows changed. Everything happens synchronously on
// the caller's goroutine.
package graphics

import (
	"image"
	"io"
	"log"

	"github.com/32bitkid/onebit/device"
	"github.com/32bitkid/onebit/screen"
)

// Config tunes the frame pipeline. The zero value centres the game screen
// without scaling and uses Floyd-Steinberg dithering with no memory limit.
type Config struct {
	Scaler         screen.Scaler
	Mode           screen.DitherMode
	ErrorRowBudget int
}

type Manager struct {
	display device.Display
	fb      *screen.Framebuffer
	conv    screen.Converter
	scaler  screen.Scaler
	logger  *log.Logger

	width, height  int
	screenChangeID int
	game           *screen.Surface
	palette        screen.Palette

	overlayVisible bool
	overlay        *image.RGBA

	cursorVisible        bool
	cursorPos            image.Point
	cursor               *screen.Cursor
	cursorPalette        screen.Palette
	cursorPaletteEnabled bool

	shake image.Point

	inTransaction bool
	pending       transactionDetails
}

// NewManager builds a manager drawing into display's framebuffer. A nil
// logger discards messages.
func NewManager(display device.Display, cfg Config, logger *log.Logger) (*Manager, error) {
	w, h := display.Size()
	fb, err := screen.FramebufferOver(display.Frame(), w, h)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	scaler := cfg.Scaler
	if scaler == nil {
		scaler = screen.Scaler1x1{}
	}

	return &Manager{
		display: display,
		fb:      fb,
		conv:    screen.Converter{Mode: cfg.Mode, ErrorRowBudget: cfg.ErrorRowBudget},
		scaler:  scaler,
		logger:  logger,
		width:   320,
		height:  200,
	}, nil
}

// Framebuffer is the packed panel memory the manager draws into.
func (m *Manager) Framebuffer() *screen.Framebuffer { return m.fb }

func (m *Manager) Width() int          { return m.width }
func (m *Manager) Height() int         { return m.height }
func (m *Manager) ScreenChangeID() int { return m.screenChangeID }

func (m *Manager) ScreenFormat() Format       { return FormatCLUT8 }
func (m *Manager) SupportedFormats() []Format { return []Format{FormatCLUT8} }

// InitSize resizes the game screen. Inside a transaction the request is only
// recorded; the last one wins when the transaction ends. A nil format means
// CLUT8.
func (m *Manager) InitSize(w, h int, format *Format) {
	f := FormatCLUT8
	if format != nil {
		f = *format
	}

	if m.inTransaction {
		m.pending = transactionDetails{width: w, height: h, format: f, sizeChanged: true}
		return
	}

	if f != FormatCLUT8 {
		m.logger.Printf("graphics: ignoring unsupported screen format %v", f)
	}
	m.resize(w, h)
}

func (m *Manager) resize(w, h int) {
	m.width, m.height = w, h
	m.game = screen.NewSurface(w, h)
	m.screenChangeID++
}

func (m *Manager) SetPalette(colors []byte, start, num int) error {
	return m.palette.SetRange(colors, start, num)
}

func (m *Manager) GrabPalette(dst []byte, start, num int) error {
	return m.palette.GrabRange(dst, start, num)
}

// CopyRectToScreen copies a w×h block of palette indices into the game
// screen. Parts outside the screen are clipped.
func (m *Manager) CopyRectToScreen(buf []byte, pitch, x, y, w, h int) {
	if m.game == nil {
		return
	}
	m.game.CopyRect(buf, pitch, x, y, w, h)
}

// LockScreen gives direct access to the game screen. It is nil until the
// first resize.
func (m *Manager) LockScreen() *screen.Surface { return m.game }
func (m *Manager) UnlockScreen()               {}

func (m *Manager) FillScreen(c uint8) {
	if m.game != nil {
		m.game.Clear(c)
	}
}

func (m *Manager) FillRect(r image.Rectangle, c uint8) {
	if m.game != nil {
		m.game.FillRect(r, c)
	}
}

// SetShakePos offsets the game screen. Only the vertical component is
// applied; rows uncovered by the shake stay white.
func (m *Manager) SetShakePos(x, y int) {
	m.shake = image.Pt(x, y)
}

func (m *Manager) ShakePos() image.Point { return m.shake }

// PaletteID selects which palette ConvertRegion reads through.
type PaletteID int

const (
	PaletteGame PaletteID = iota
	PaletteCursor
)

func (m *Manager) paletteFor(id PaletteID) *screen.Palette {
	if id == PaletteCursor {
		return &m.cursorPalette
	}
	return &m.palette
}

// ConvertRegion dithers the sr region of src onto the panel at dp, applying
// the current vertical shake. An *screen.ExhaustedError means the region was
// drawn with thresholding instead.
func (m *Manager) ConvertRegion(src *screen.Surface, id PaletteID, sr image.Rectangle, dp image.Point) error {
	if src == nil {
		return nil
	}
	return m.conv.Convert(m.fb, dp, screen.NewPalettedSource(src, m.paletteFor(id)), sr, m.shake.Y)
}

// CompositeCursor draws c over the panel with its hotspot at pos, without
// dithering.
func (m *Manager) CompositeCursor(c *screen.Cursor, pos image.Point, useCursorPalette bool) {
	id := PaletteGame
	if useCursorPalette {
		id = PaletteCursor
	}
	screen.CompositeCursor(m.fb, c, pos, m.paletteFor(id))
}

// UpdateScreen redraws the whole panel. A non-nil error reports that the
// frame was degraded, not that it was skipped.
func (m *Manager) UpdateScreen() error {
	m.fb.Fill(true)

	var err error
	switch {
	case m.overlayVisible:
		err = m.drawOverlay()
	case m.game != nil:
		err = m.drawGame()
	}
	if err != nil {
		m.logger.Printf("graphics: %v", err)
	}

	if m.cursorVisible && !m.overlayVisible {
		m.CompositeCursor(m.cursor, m.cursorPos, m.cursorPaletteEnabled)
	}

	m.display.MarkUpdatedRows(0, m.fb.Height-1)
	return err
}

func (m *Manager) drawGame() error {
	size := image.Pt(m.game.W, m.game.H)
	dr := m.scaler.Fit(size, m.fb.Bounds())

	if dr.Size() == size {
		return m.ConvertRegion(m.game, PaletteGame, m.game.Bounds(), dr.Min)
	}

	luma := m.game.Luma(&m.palette)
	scaled := image.NewGray(image.Rectangle{Max: dr.Size()})
	m.scaler.Scale(scaled, scaled.Bounds(), luma, luma.Bounds())
	return m.conv.Convert(m.fb, dr.Min, screen.GraySource{Gray: scaled}, scaled.Bounds(), m.shake.Y)
}
