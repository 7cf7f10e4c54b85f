// Package view tracks which of the genre grid, station panel, mini-player
// and large player are visible.
package view

import "time"

// State is the foreground view.
type State int

const (
	GenreGrid State = iota
	StationPanel
	MiniPlayer
	LargePlayer
)

func (s State) String() string {
	switch s {
	case GenreGrid:
		return "genre-grid"
	case StationPanel:
		return "station-panel"
	case MiniPlayer:
		return "mini-player"
	case LargePlayer:
		return "large-player"
	}
	return "unknown"
}

// Container names a view container that can be shown or hidden.
type Container int

const (
	GenreGridContainer Container = iota
	StationPanelContainer
	MiniPlayerContainer
	LargePlayerContainer
)

type overlay int

const (
	overlayClosed overlay = iota
	overlayOpen
	overlayClosing
)

// DefaultTeardown leaves the exit transition of the large player time to
// finish before the overlay leaves the layout.
const DefaultTeardown = 300 * time.Millisecond

// Machine is the view state machine. The zero value starts on the genre grid.
type Machine struct {
	panelOpen  bool
	overlay    overlay
	listened   bool
	hasStation bool
	teardown   time.Duration
}

// New returns a machine on the genre grid. teardown <= 0 selects
// DefaultTeardown.
func New(teardown time.Duration) *Machine {
	if teardown <= 0 {
		teardown = DefaultTeardown
	}
	return &Machine{teardown: teardown}
}

// Current returns the foreground state.
func (m *Machine) Current() State {
	switch {
	case m.overlay != overlayClosed:
		return LargePlayer
	case m.panelOpen:
		return StationPanel
	case m.MiniVisible():
		return MiniPlayer
	}
	return GenreGrid
}

// MiniVisible reports whether the mini-player is shown. It never is before
// the first listen or while the station panel is in front.
func (m *Machine) MiniVisible() bool {
	return m.listened && !m.panelOpen
}

// OverlayVisible reports whether the large player is in the layout. It stays
// true while the exit transition runs.
func (m *Machine) OverlayVisible() bool {
	return m.overlay != overlayClosed
}

// OverlayClosing reports whether the large player is running its exit
// transition.
func (m *Machine) OverlayClosing() bool {
	return m.overlay == overlayClosing
}

// Visible reports whether c is shown.
func (m *Machine) Visible(c Container) bool {
	switch c {
	case GenreGridContainer:
		return !m.panelOpen
	case StationPanelContainer:
		return m.panelOpen
	case MiniPlayerContainer:
		return m.MiniVisible()
	case LargePlayerContainer:
		return m.OverlayVisible()
	}
	return false
}

// HasEverListened mirrors the session flag.
func (m *Machine) HasEverListened() bool {
	return m.listened
}

// ShowPanel brings the station panel to the front after a successful fetch.
func (m *Machine) ShowPanel() {
	m.panelOpen = true
}

// Listened records that playback was started from the panel. The panel stays
// in front and the mini-player stays hidden.
func (m *Machine) Listened() {
	m.listened = true
	m.hasStation = true
}

// SetHasStation tells the machine whether a current station exists.
func (m *Machine) SetHasStation(ok bool) {
	m.hasStation = ok
}

// Back leaves the station panel. The mini-player appears if the user has
// listened before.
func (m *Machine) Back() {
	m.panelOpen = false
}

// OpenLarge shows the large player on top of the current view. It requires a
// current station.
func (m *Machine) OpenLarge() bool {
	if !m.hasStation {
		return false
	}
	m.overlay = overlayOpen
	return true
}

// CloseLarge starts the exit transition and returns how long to wait before
// calling Teardown. ok is false when the overlay was not open.
func (m *Machine) CloseLarge() (after time.Duration, ok bool) {
	if m.overlay != overlayOpen {
		return 0, false
	}
	m.overlay = overlayClosing
	return m.teardownDelay(), true
}

func (m *Machine) teardownDelay() time.Duration {
	if m.teardown <= 0 {
		return DefaultTeardown
	}
	return m.teardown
}

// Teardown removes a closing overlay from the layout. An overlay that was
// reopened in the meantime is left alone.
func (m *Machine) Teardown() {
	if m.overlay == overlayClosing {
		m.overlay = overlayClosed
	}
}

// Stopped returns to the genre grid and forgets the listen.
func (m *Machine) Stopped() {
	m.panelOpen = false
	m.overlay = overlayClosed
	m.listened = false
	m.hasStation = false
}
