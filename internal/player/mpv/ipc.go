package mpv

import (
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"pixelwave.app/pixelwave/internal/player"
)

// message is one JSON line received on the IPC socket: either a reply to a
// command (RequestID set, Event empty) or an asynchronous event.
type message struct {
	Event     string `mapstructure:"event"`
	Name      string `mapstructure:"name"`
	ID        int    `mapstructure:"id"`
	Data      any    `mapstructure:"data"`
	Reason    string `mapstructure:"reason"`
	FileError string `mapstructure:"file_error"`
	RequestID int    `mapstructure:"request_id"`
	Error     string `mapstructure:"error"`
}

type request struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

type reply struct {
	data any
	err  error
}

const (
	observePause    = 1
	observeCoreIdle = 2
)

func decodeMessage(line []byte) (message, error) {
	var raw map[string]any
	if err := json.Unmarshal(line, &raw); err != nil {
		return message{}, fmt.Errorf("decodeMessage: %w", err)
	}

	var msg message
	if err := mapstructure.Decode(raw, &msg); err != nil {
		return message{}, fmt.Errorf("decodeMessage: %w", err)
	}

	return msg, nil
}

func (m message) isReply() bool {
	return m.Event == "" && m.Error != ""
}

// toEvent maps an mpv event to the playback signal it stands for. Events
// that carry no play/pause/ended meaning return ok == false.
func (m message) toEvent() (player.Event, bool) {
	switch m.Event {
	case "property-change":
		if m.Name != "pause" {
			return player.Event{}, false
		}
		paused, isBool := m.Data.(bool)
		if !isBool {
			return player.Event{}, false
		}
		if paused {
			return player.Event{Kind: player.EventPause}, true
		}
		return player.Event{Kind: player.EventPlay}, true
	case "end-file":
		switch m.Reason {
		case "eof":
			return player.Event{Kind: player.EventEnded}, true
		case "error":
			return player.Event{Kind: player.EventError, Err: m.fileError()}, true
		}
	}
	return player.Event{}, false
}

func (m message) fileError() error {
	if m.FileError == "" {
		return fmt.Errorf("stream error")
	}
	return fmt.Errorf("stream error: %s", m.FileError)
}
