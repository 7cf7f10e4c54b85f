package player

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"pixelwave.app/pixelwave/internal/stations"
)

// ErrStaleAttempt is returned by Start for an attempt that was superseded by
// a later Load, resume or Stop.
var ErrStaleAttempt = errors.New("playback attempt superseded")

// DefaultStartTimeout bounds how long a playback start may take.
const DefaultStartTimeout = 15 * time.Second

// Attempt identifies one request to start audio.
type Attempt struct {
	seq     uint64
	Station stations.Station
}

// PlayResult is the outcome of an Attempt. A failed start is an expected
// outcome, not an error: the display still shows the attempted station.
type PlayResult struct {
	Attempt Attempt
	Failed  bool
	Stale   bool
	Err     error
}

// Controller owns the single MediaElement and the Session.
type Controller struct {
	media        MediaElement
	session      Session
	seq          atomic.Uint64
	ended        bool
	startTimeout time.Duration
	logger       zerolog.Logger
}

// NewController wraps media. volume is the initial shared volume.
func NewController(media MediaElement, volume float64, startTimeout time.Duration, logger zerolog.Logger) *Controller {
	if startTimeout <= 0 {
		startTimeout = DefaultStartTimeout
	}

	c := &Controller{
		media:        media,
		startTimeout: startTimeout,
		logger:       logger,
	}
	c.session.volume = clampVolume(volume, 1)

	if err := media.SetVolume(c.session.volume); err != nil {
		c.logger.Warn().Str("Method", "NewController").Err(err).Msg("initial volume not applied")
	}

	return c
}

// Session exposes the read-only session.
func (c *Controller) Session() *Session {
	return &c.session
}

func (c *Controller) next(st stations.Station) Attempt {
	return Attempt{seq: c.seq.Add(1), Station: st}
}

// Load makes st the current station and points the media element at its
// stream. The session is updated even when the media element rejects the
// source, in which case the error is returned along with a void attempt.
func (c *Controller) Load(st stations.Station, list stations.StationList) (Attempt, error) {
	a := c.next(st)

	c.session.current = st
	c.session.hasCurrent = true
	c.session.list = list
	c.session.playing = false
	c.ended = false

	c.logger.Debug().Str("Method", "Load").Str("Station", st.Name).Str("URL", st.StreamURL).Msg("loading station")

	if err := c.media.SetSource(st.StreamURL); err != nil {
		c.logger.Warn().Str("Method", "Load").Str("Station", st.Name).Err(err).Msg("source rejected")
		return a, fmt.Errorf("Load: %w", err)
	}

	return a, nil
}

// Start asks the media element to start a. It blocks until audio flows, the
// start fails or the start timeout expires, so callers run it off the UI
// goroutine and hand the outcome to Started.
func (c *Controller) Start(ctx context.Context, a Attempt) error {
	if a.seq != c.seq.Load() {
		return ErrStaleAttempt
	}

	ctx, cancel := context.WithTimeout(ctx, c.startTimeout)
	defer cancel()

	if err := c.media.Play(ctx); err != nil {
		return fmt.Errorf("Start: %w", err)
	}

	return nil
}

// Started folds the outcome of Start back into the session.
func (c *Controller) Started(a Attempt, err error) PlayResult {
	if a.seq != c.seq.Load() || errors.Is(err, ErrStaleAttempt) {
		c.logger.Debug().Str("Method", "Started").Str("Station", a.Station.Name).Msg("ignoring superseded attempt")
		return PlayResult{Attempt: a, Stale: true, Err: err}
	}

	if err != nil {
		c.session.playing = false
		c.logger.Warn().Str("Method", "Started").Str("Station", a.Station.Name).Err(err).Msg("playback start failed")
		// The session says paused, so the media element must be paused too.
		if perr := c.media.Pause(); perr != nil {
			c.logger.Warn().Str("Method", "Started").Err(perr).Msg("pause after failed start")
		}
		return PlayResult{Attempt: a, Failed: true, Err: err}
	}

	c.session.playing = true
	c.ended = false
	return PlayResult{Attempt: a}
}

// TogglePlayPause pauses when playing. Otherwise it returns an attempt to
// resume, which the caller starts like any other. Without a current station
// it does nothing and ok is false.
func (c *Controller) TogglePlayPause() (a Attempt, ok bool, err error) {
	st, has := c.session.Current()
	if !has {
		return Attempt{}, false, nil
	}

	if c.session.playing {
		// Invalidate a start that may still be in flight.
		c.next(st)
		if err := c.media.Pause(); err != nil {
			return Attempt{}, false, fmt.Errorf("TogglePlayPause: %w", err)
		}
		c.session.playing = false
		return Attempt{}, false, nil
	}

	if c.ended {
		// An ended stream has to be loaded again before it can resume.
		a, err := c.Load(st, c.session.list)
		return a, err == nil, err
	}

	return c.next(st), true, nil
}

// Stop halts playback, clears the source and the current station and resets
// the listened flag.
func (c *Controller) Stop() error {
	c.seq.Add(1)

	c.session.current = stations.Station{}
	c.session.hasCurrent = false
	c.session.list = stations.StationList{}
	c.session.playing = false
	c.session.listened = false
	c.ended = false

	if err := c.media.Stop(); err != nil {
		c.logger.Warn().Str("Method", "Stop").Err(err).Msg("media stop failed")
		return fmt.Errorf("Stop: %w", err)
	}

	return nil
}

// SetVolume clamps v to [0,1], applies it and returns the stored value.
func (c *Controller) SetVolume(v float64) (float64, error) {
	v = clampVolume(v, c.session.volume)
	c.session.volume = v

	if err := c.media.SetVolume(v); err != nil {
		return v, fmt.Errorf("SetVolume: %w", err)
	}

	return v, nil
}

// MarkListened records that the user started listening.
func (c *Controller) MarkListened() {
	c.session.listened = true
}

// HandleEvent applies a native playback signal to the session. It never
// drives the media element.
func (c *Controller) HandleEvent(e Event) {
	c.logger.Debug().Str("Method", "HandleEvent").Str("Event", e.Kind.String()).Msg("media event")

	switch e.Kind {
	case EventPlay:
		if !c.session.hasCurrent {
			return
		}
		c.session.playing = true
		c.ended = false
	case EventPause:
		c.session.playing = false
	case EventEnded:
		c.session.playing = false
		c.ended = c.session.hasCurrent
	case EventError:
		c.session.playing = false
		c.ended = c.session.hasCurrent
		c.logger.Warn().Str("Method", "HandleEvent").Err(e.Err).Msg("stream error")
	}
}

func clampVolume(v, fallback float64) float64 {
	switch {
	case math.IsNaN(v):
		return fallback
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
