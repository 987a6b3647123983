// Package onebit runs paletted games on a handheld with a 400x240 1-bit
// panel, a D-pad, two face buttons and a crank.
//
// A System owns the graphics manager and translates the device's buttons
// and crank into key and wheel events. It is not safe for concurrent use:
// the whole backend runs on the goroutine that calls Run.
package onebit

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/32bitkid/onebit/device"
	"github.com/32bitkid/onebit/graphics"
)

// DefaultCrankThreshold is the crank rotation, in degrees between two polls,
// that produces a wheel event.
const DefaultCrankThreshold = 15

var ErrNotInitialized = errors.New("onebit: system not initialized")

type Config struct {
	Graphics graphics.Config

	// CrankThreshold overrides DefaultCrankThreshold when positive.
	CrankThreshold float32

	// FrameInterval paces Run. Zero runs frames back to back.
	FrameInterval time.Duration
}

type System struct {
	dev    device.Device
	cfg    Config
	logger *log.Logger

	graphics *graphics.Manager
	start    uint32

	prevButtons device.Buttons
	prevCrank   float32
	events      []Event

	quit bool
}

// New wraps dev. Nothing touches the device until Init. A nil logger
// discards messages.
func New(dev device.Device, cfg Config, logger *log.Logger) *System {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg.CrankThreshold <= 0 {
		cfg.CrankThreshold = DefaultCrankThreshold
	}
	return &System{
		dev:    dev,
		cfg:    cfg,
		logger: logger,
	}
}

// Init records the start time, samples the initial input state and builds
// the graphics manager.
func (s *System) Init() error {
	gm, err := graphics.NewManager(s.dev, s.cfg.Graphics, s.logger)
	if err != nil {
		return err
	}
	s.graphics = gm
	s.start = s.dev.Millis()
	s.prevButtons = s.dev.ButtonState()
	s.prevCrank = s.dev.CrankAngle()
	s.events = s.events[:0]
	s.quit = false
	return nil
}

// Graphics is nil before Init.
func (s *System) Graphics() *graphics.Manager { return s.graphics }

// Quit asks Run to return after the current frame.
func (s *System) Quit() { s.quit = true }

// Run calls frame until it fails, Quit is called or ctx is done. After each
// frame the panel is redrawn; a degraded frame is logged, not fatal.
func (s *System) Run(ctx context.Context, frame func(*System) error) error {
	if s.graphics == nil {
		return ErrNotInitialized
	}

	var tick <-chan time.Time
	if s.cfg.FrameInterval > 0 {
		ticker := time.NewTicker(s.cfg.FrameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for !s.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := frame(s); err != nil {
			return err
		}
		if err := s.graphics.UpdateScreen(); err != nil {
			s.logger.Printf("onebit: frame degraded: %v", err)
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
	return nil
}

// Close releases the graphics manager. The System can be initialized
// again afterwards.
func (s *System) Close() error {
	s.graphics = nil
	s.events = nil
	return nil
}

// Millis counts milliseconds since Init.
func (s *System) Millis() uint32 {
	return s.dev.Millis() - s.start
}

// DelayMillis blocks for at least ms milliseconds.
func (s *System) DelayMillis(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// TimeAndDate is the device's wall clock in UTC.
func (s *System) TimeAndDate() time.Time {
	return device.Epoch.Add(time.Duration(s.dev.SecondsSinceEpoch()) * time.Second)
}

// NullMutex satisfies sync.Locker without locking anything. The backend is
// single threaded.
type NullMutex struct{}

func (NullMutex) Lock()   {}
func (NullMutex) Unlock() {}

func (s *System) NewMutex() sync.Locker { return NullMutex{} }

type LogKind int

const (
	LogInfo LogKind = iota
	LogWarning
	LogError
	LogDebug
)

func (k LogKind) String() string {
	switch k {
	case LogInfo:
		return "LogInfo"
	case LogWarning:
		return "LogWarning"
	case LogError:
		return "LogError"
	case LogDebug:
		return "LogDebug"
	}
	return "LogKind(UNKNOWN)"
}

// LogMessage writes msg to the system logger. Errors and warnings are
// tagged so they stand out in the console.
func (s *System) LogMessage(kind LogKind, msg string) {
	switch kind {
	case LogError:
		s.logger.Printf("[ERROR] %s", msg)
	case LogWarning:
		s.logger.Printf("[WARNING] %s", msg)
	default:
		s.logger.Print(msg)
	}
}
