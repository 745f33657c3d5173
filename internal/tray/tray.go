// Package tray provides the system tray entry point for the PoseCheck
// analyzer.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onOpen func()
	onQuit func()
	mu     sync.RWMutex

	// Menu items stored for later updates
	menuDetector *systray.MenuItem
}

// New creates a new Tray instance.
func New() *Tray {
	return &Tray{}
}

// OnOpen sets the callback function to be called when the open menu item
// is clicked.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback function to be called when the quit menu item
// is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("PoseCheck")
	systray.SetTooltip("PoseCheck Posture Analyzer")

	menuOpen := systray.AddMenuItem("Open PoseCheck...", "Open the analyzer in a browser")
	systray.AddSeparator()

	t.menuDetector = systray.AddMenuItem("Model: uninitialized", "Pose model state")
	t.menuDetector.Disable()
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit PoseCheck")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-menuOpen.ClickedCh:
				t.handleOpen()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleOpen handles the open menu item click.
func (t *Tray) handleOpen() {
	t.mu.RLock()
	callback := t.onOpen
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetDetectorState updates the read-only model state line in the menu.
func (t *Tray) SetDetectorState(state string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuDetector != nil {
		t.menuDetector.SetTitle("Model: " + state)
	}
}
