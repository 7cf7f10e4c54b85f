package player

import "pixelwave.app/pixelwave/internal/stations"

// Session is the process-wide playback state. It is only mutated by the
// Controller that owns it.
type Session struct {
	current    stations.Station
	hasCurrent bool
	list       stations.StationList
	playing    bool
	volume     float64
	listened   bool
}

// Current returns the current station, if any.
func (s *Session) Current() (stations.Station, bool) {
	return s.current, s.hasCurrent
}

// List returns the station list the current station was picked from.
func (s *Session) List() stations.StationList {
	return s.list
}

// IsPlaying reports whether audio is flowing.
func (s *Session) IsPlaying() bool {
	return s.playing
}

// Volume returns the shared volume in [0,1].
func (s *Session) Volume() float64 {
	return s.volume
}

// HasEverListened reports whether listening started since the last stop.
func (s *Session) HasEverListened() bool {
	return s.listened
}
