// Package app orchestrates a full analysis run: decoding the two views,
// running pose detection on each, resolving coordinates into the display
// frame and deriving the joint metrics.
package app

import (
	"errors"
	"log"
	"sync"

	"github.com/langsard/pose/internal/detector"
	"github.com/langsard/pose/internal/store"
)

// ErrMissingInput is returned by Analyze when either view's image data is
// absent. The check runs before any detection work starts.
var ErrMissingInput = errors.New("missing input image")

// Config holds configuration options for the application.
type Config struct {
	// Store supplies user preferences; nil falls back to Defaults.
	Store *store.Store

	// Detector is the pose detector handle. It is passed in explicitly so
	// its lifecycle stays with the caller.
	Detector detector.Detector

	// CanvasSize is the side of the square canvas the detector consumes.
	CanvasSize int

	// Defaults are the settings used when the store has none saved.
	Defaults store.Settings
}

// App runs analysis passes against an injected detector and store.
type App struct {
	config Config

	mu       sync.RWMutex
	detector detector.Detector
	progress func(Event)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.CanvasSize <= 0 {
		config.CanvasSize = 512
	}
	if config.Defaults.DisplayWidth <= 0 {
		config.Defaults.DisplayWidth = 480
	}
	if config.Defaults.DisplayHeight <= 0 {
		config.Defaults.DisplayHeight = 360
	}
	return &App{config: config, detector: config.Detector}
}

// Detector returns the current pose detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// SetDetector swaps the pose detector implementation and closes the old
// one.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	old := a.detector
	a.detector = d
	a.mu.Unlock()

	if old != nil && old != d {
		if err := old.Close(); err != nil {
			log.Printf("close detector: %v", err)
		}
	}
}

// UseModel swaps the detector for one backed by the given registry entry.
// The new model is loaded before the swap, so a broken file leaves the
// current detector in place.
func (a *App) UseModel(m *store.Model) error {
	d := detector.NewMoveNet(detector.Config{
		ModelPath:         m.Path,
		InputSize:         m.InputSize,
		PresenceThreshold: a.settings().PresenceThreshold,
	})
	if err := d.Load(); err != nil {
		return err
	}
	a.SetDetector(d)
	log.Printf("switched to model %s", m.Name)
	return nil
}

// OnProgress installs a callback receiving per-run progress events. Events
// are delivered synchronously from the analysis goroutines.
func (a *App) OnProgress(fn func(Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.progress = fn
}

// Close releases the detector.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("close detector: %v", err)
		}
		a.detector = nil
	}
}

func (a *App) emit(ev Event) {
	a.mu.RLock()
	fn := a.progress
	a.mu.RUnlock()

	if fn != nil {
		fn(ev)
	}
}

// settings returns the stored preferences, or the configured defaults when
// no store is attached or the read fails.
func (a *App) settings() store.Settings {
	if a.config.Store == nil {
		return a.config.Defaults
	}
	s, err := a.config.Store.Settings().Get(a.config.Defaults)
	if err != nil {
		log.Printf("load settings: %v, using defaults", err)
		return a.config.Defaults
	}
	return s
}
