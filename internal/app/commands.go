package app

import (
	"time"

	"pixelwave.app/pixelwave/internal/player"
	"pixelwave.app/pixelwave/internal/stations"
)

// Command is one user gesture or asynchronous outcome fed to Dispatch.
type Command interface {
	isCommand()
}

// SelectGenre asks for the stations of a genre.
type SelectGenre struct{ Tag string }

// StationsFetched carries a successful genre query.
type StationsFetched struct {
	Seq  uint64
	Tag  string
	List stations.StationList
}

// FetchFailed carries a failed genre query.
type FetchFailed struct {
	Seq uint64
	Tag string
	Err error
}

// BrowseNext moves the panel to the next fetched station.
type BrowseNext struct{}

// BrowsePrev moves the panel to the previous fetched station.
type BrowsePrev struct{}

// Enter starts listening to the station shown on the panel.
type Enter struct{}

// Back leaves the station panel.
type Back struct{}

// OpenLarge opens the large player.
type OpenLarge struct{}

// CloseLarge starts closing the large player.
type CloseLarge struct{}

// Teardown removes the closed large player from the layout.
type Teardown struct{}

// TogglePlay pauses or resumes.
type TogglePlay struct{}

// Stop halts playback and returns to the genre grid.
type Stop struct{}

// Next plays the following station of the list being listened to.
type Next struct{}

// Prev plays the preceding station of the list being listened to.
type Prev struct{}

// SetVolume sets the shared volume.
type SetVolume struct{ V float64 }

// NudgeVolume changes the shared volume by Delta.
type NudgeVolume struct{ Delta float64 }

// PlaybackStarted carries the outcome of a StartPlayback effect.
type PlaybackStarted struct {
	Attempt player.Attempt
	Err     error
}

// Media carries a native playback signal.
type Media struct{ Event player.Event }

// OpenHomepage opens the current station's homepage.
type OpenHomepage struct{}

func (SelectGenre) isCommand()     {}
func (StationsFetched) isCommand() {}
func (FetchFailed) isCommand()     {}
func (BrowseNext) isCommand()      {}
func (BrowsePrev) isCommand()      {}
func (Enter) isCommand()           {}
func (Back) isCommand()            {}
func (OpenLarge) isCommand()       {}
func (CloseLarge) isCommand()      {}
func (Teardown) isCommand()        {}
func (TogglePlay) isCommand()      {}
func (Stop) isCommand()            {}
func (Next) isCommand()            {}
func (Prev) isCommand()            {}
func (SetVolume) isCommand()       {}
func (NudgeVolume) isCommand()     {}
func (PlaybackStarted) isCommand() {}
func (Media) isCommand()           {}
func (OpenHomepage) isCommand()    {}

// Effect is asynchronous work requested by Dispatch. Front-ends run it with
// Execute off their UI goroutine and dispatch the returned command.
type Effect interface {
	isEffect()
}

// FetchStations queries the directory.
type FetchStations struct {
	Seq uint64
	Tag string
}

// StartPlayback starts audio for an attempt.
type StartPlayback struct{ Attempt player.Attempt }

// ScheduleTeardown asks for a Teardown command after a delay.
type ScheduleTeardown struct{ After time.Duration }

// OpenURL opens a link in the system browser.
type OpenURL struct{ URL string }

func (FetchStations) isEffect()    {}
func (StartPlayback) isEffect()    {}
func (ScheduleTeardown) isEffect() {}
func (OpenURL) isEffect()          {}
