package player

import (
	"context"
	"errors"
)

// ErrNoSource is returned by a MediaElement asked to play without a source.
var ErrNoSource = errors.New("no media source loaded")

// EventKind identifies a state change reported by the media element.
type EventKind int

const (
	// EventPlay fires when audio starts or resumes.
	EventPlay EventKind = iota
	// EventPause fires when playback is paused.
	EventPause
	// EventEnded fires when the current stream ended on its own.
	EventEnded
	// EventError fires when the stream failed after it had been loaded.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	}
	return "unknown"
}

// Event is a native playback state change.
type Event struct {
	Kind EventKind
	Err  error
}

// MediaElement is the host playback capability. Only one stream is live at a
// time: setting a new source supersedes the previous one.
type MediaElement interface {
	// SetSource loads url without starting audio.
	SetSource(url string) error
	// Play requests playback of the loaded source and returns once audio has
	// started, or with the reason it could not.
	Play(ctx context.Context) error
	Pause() error
	// Stop halts playback, rewinds and clears the source.
	Stop() error
	// SetVolume applies v in [0,1].
	SetVolume(v float64) error
	// Events delivers play, pause and ended signals.
	Events() <-chan Event
	Close() error
}
