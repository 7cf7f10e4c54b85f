// Package app owns the playback session, the view state machine and the
// browse context. Every user gesture and asynchronous outcome arrives as one
// Command; Dispatch applies it and then runs exactly one sync pass over the
// display surfaces.
package app

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/skratchdot/open-golang/open"
	"pixelwave.app/pixelwave/internal/player"
	"pixelwave.app/pixelwave/internal/screeninterfaces"
	"pixelwave.app/pixelwave/internal/stations"
	"pixelwave.app/pixelwave/internal/surfaces"
	"pixelwave.app/pixelwave/internal/view"
)

const (
	// NoticeNoResults is shown for a genre without stations.
	NoticeNoResults = "No stations found for this genre."
	// NoticeQueryError is shown when the directory could not be queried.
	NoticeQueryError = "Could not load stations."
	// NoticeUnknownGenre is shown for a tag outside the genre list.
	NoticeUnknownGenre = "Unknown genre."
)

// Fetcher looks stations up by genre.
type Fetcher interface {
	FetchByTag(ctx context.Context, tag string) (stations.StationList, error)
}

// Options wires an App.
type Options struct {
	Fetcher    Fetcher
	Controller *player.Controller
	// MediaEvents is the media element's event channel.
	MediaEvents <-chan player.Event
	View        *view.Machine
	Screen      screeninterfaces.Screen
	Logger      zerolog.Logger
}

// App is the single owner of all mutable player state. It is not safe for
// concurrent use: Dispatch is called from the front-end's UI goroutine only.
type App struct {
	fetcher Fetcher
	ctrl    *player.Controller
	events  <-chan player.Event
	view    *view.Machine
	screen  screeninterfaces.Screen
	logger  zerolog.Logger

	mini  *surfaces.Display
	modal *surfaces.Display

	fetchSeq uint64
	loading  string
	browse   stations.StationList
	cursor   int
}

// openURL is swapped in tests.
var openURL = open.Run

// New builds an App and runs the initial sync pass.
func New(opts Options) *App {
	vm := opts.View
	if vm == nil {
		vm = view.New(0)
	}

	a := &App{
		fetcher: opts.Fetcher,
		ctrl:    opts.Controller,
		events:  opts.MediaEvents,
		view:    vm,
		screen:  opts.Screen,
		logger:  opts.Logger,
		mini:    surfaces.NewDisplay("mini-player"),
		modal:   surfaces.NewDisplay("large-player"),
	}
	a.sync()

	return a
}

// SetScreen attaches the notice screen once the front-end exists.
func (a *App) SetScreen(scr screeninterfaces.Screen) {
	a.screen = scr
}

// Session returns the read-only playback session.
func (a *App) Session() *player.Session {
	return a.ctrl.Session()
}

// View returns the view state machine. Front-ends only read it.
func (a *App) View() *view.Machine {
	return a.view
}

// Mini returns the mini-player surface.
func (a *App) Mini() *surfaces.Display {
	return a.mini
}

// Modal returns the large player surface.
func (a *App) Modal() *surfaces.Display {
	return a.modal
}

// Loading returns the genre being fetched, or "".
func (a *App) Loading() string {
	return a.loading
}

func (a *App) sync() {
	surfaces.Sync(surfaces.Project(a.ctrl.Session()), a.mini, a.modal)
}

func (a *App) notice(msg string) {
	screeninterfaces.Emit(a.screen, msg)
}

// Dispatch applies cmd and returns the asynchronous work it requires.
func (a *App) Dispatch(cmd Command) []Effect {
	effects := a.apply(cmd)
	a.sync()
	return effects
}

func (a *App) apply(cmd Command) []Effect {
	switch c := cmd.(type) {
	case SelectGenre:
		return a.selectGenre(c.Tag)
	case StationsFetched:
		a.stationsFetched(c)
	case FetchFailed:
		a.fetchFailed(c)
	case BrowseNext:
		a.moveCursor(stations.Next)
	case BrowsePrev:
		a.moveCursor(stations.Prev)
	case Enter:
		return a.enter()
	case Back:
		a.view.Back()
	case OpenLarge:
		a.view.SetHasStation(a.hasStation())
		if !a.view.OpenLarge() {
			a.logger.Debug().Str("Method", "Dispatch").Msg("large player needs a current station")
		}
	case CloseLarge:
		if after, ok := a.view.CloseLarge(); ok {
			return []Effect{ScheduleTeardown{After: after}}
		}
	case Teardown:
		a.view.Teardown()
	case TogglePlay:
		return a.togglePlay()
	case Stop:
		if err := a.ctrl.Stop(); err != nil {
			a.logger.Warn().Str("Method", "Dispatch").Err(err).Msg("stop")
		}
		a.view.Stopped()
	case Next:
		return a.step(stations.Next)
	case Prev:
		return a.step(stations.Prev)
	case SetVolume:
		a.setVolume(c.V)
	case NudgeVolume:
		a.setVolume(a.ctrl.Session().Volume() + c.Delta)
	case PlaybackStarted:
		res := a.ctrl.Started(c.Attempt, c.Err)
		if res.Failed {
			a.logger.Warn().Str("Method", "Dispatch").Str("Station", res.Attempt.Station.Name).Err(res.Err).Msg("playback start failure")
		}
	case Media:
		a.ctrl.HandleEvent(c.Event)
	case OpenHomepage:
		if st, ok := a.ctrl.Session().Current(); ok && st.Homepage != "" {
			return []Effect{OpenURL{URL: st.Homepage}}
		}
	}
	return nil
}

func (a *App) hasStation() bool {
	_, ok := a.ctrl.Session().Current()
	return ok
}

func (a *App) selectGenre(tag string) []Effect {
	if !stations.ValidGenre(tag) {
		a.notice(NoticeUnknownGenre)
		return nil
	}

	a.fetchSeq++
	a.loading = tag
	return []Effect{FetchStations{Seq: a.fetchSeq, Tag: tag}}
}

func (a *App) stationsFetched(c StationsFetched) {
	if c.Seq != a.fetchSeq {
		a.logger.Debug().Str("Method", "Dispatch").Str("Tag", c.Tag).Msg("dropping stale station list")
		return
	}

	a.loading = ""
	if c.List.Len() == 0 {
		a.notice(NoticeNoResults)
		return
	}

	a.browse = c.List
	a.cursor = 0
	a.view.ShowPanel()
}

func (a *App) fetchFailed(c FetchFailed) {
	if c.Seq != a.fetchSeq {
		a.logger.Debug().Str("Method", "Dispatch").Str("Tag", c.Tag).Msg("dropping stale fetch failure")
		return
	}

	a.loading = ""
	if errors.Is(c.Err, stations.ErrNoResults) {
		a.notice(NoticeNoResults)
		return
	}

	a.logger.Error().Str("Method", "Dispatch").Str("Tag", c.Tag).Err(c.Err).Msg("query error")
	a.notice(NoticeQueryError)
}

func (a *App) moveCursor(move func(stations.StationList, stations.Station) (stations.Station, bool)) {
	if !a.view.Visible(view.StationPanelContainer) || a.browse.Len() == 0 {
		return
	}

	st, ok := move(a.browse, a.browse.At(a.cursor))
	if !ok {
		return
	}
	a.cursor = a.browse.IndexOf(st.ID)
}

func (a *App) enter() []Effect {
	if !a.view.Visible(view.StationPanelContainer) || a.browse.Len() == 0 {
		return nil
	}

	st := a.browse.At(a.cursor)
	attempt, err := a.ctrl.Load(st, a.browse)
	a.ctrl.MarkListened()
	a.view.Listened()

	if err != nil {
		a.logger.Warn().Str("Method", "Dispatch").Str("Station", st.Name).Err(err).Msg("playback start failure")
		return nil
	}
	return []Effect{StartPlayback{Attempt: attempt}}
}

func (a *App) togglePlay() []Effect {
	attempt, ok, err := a.ctrl.TogglePlayPause()
	if err != nil {
		a.logger.Warn().Str("Method", "Dispatch").Err(err).Msg("toggle play/pause")
	}
	if !ok {
		return nil
	}
	return []Effect{StartPlayback{Attempt: attempt}}
}

func (a *App) step(move func(stations.StationList, stations.Station) (stations.Station, bool)) []Effect {
	cur, has := a.ctrl.Session().Current()
	if !has {
		return nil
	}

	list := a.ctrl.Session().List()
	st, ok := move(list, cur)
	if !ok {
		return nil
	}

	attempt, err := a.ctrl.Load(st, list)
	a.view.SetHasStation(true)
	if err != nil {
		a.logger.Warn().Str("Method", "Dispatch").Str("Station", st.Name).Err(err).Msg("playback start failure")
		return nil
	}
	return []Effect{StartPlayback{Attempt: attempt}}
}

func (a *App) setVolume(v float64) {
	v = math.Round(v*100) / 100
	if _, err := a.ctrl.SetVolume(v); err != nil {
		a.logger.Warn().Str("Method", "Dispatch").Err(err).Msg("volume not applied")
	}
}

// Close stops playback and releases the screen. The front-end is done.
func (a *App) Close() {
	if err := a.ctrl.Stop(); err != nil {
		a.logger.Warn().Str("Method", "Close").Err(err).Msg("stop")
	}
	screeninterfaces.Close(a.screen)
}

// Execute runs e and returns the command carrying its outcome, or nil. It
// blocks, so front-ends call it off their UI goroutine.
func (a *App) Execute(ctx context.Context, e Effect) Command {
	switch eff := e.(type) {
	case FetchStations:
		list, err := a.fetcher.FetchByTag(ctx, eff.Tag)
		if err != nil {
			return FetchFailed{Seq: eff.Seq, Tag: eff.Tag, Err: err}
		}
		return StationsFetched{Seq: eff.Seq, Tag: eff.Tag, List: list}
	case StartPlayback:
		return PlaybackStarted{Attempt: eff.Attempt, Err: a.ctrl.Start(ctx, eff.Attempt)}
	case ScheduleTeardown:
		t := time.NewTimer(eff.After)
		defer t.Stop()
		select {
		case <-t.C:
			return Teardown{}
		case <-ctx.Done():
			return nil
		}
	case OpenURL:
		if err := openURL(eff.URL); err != nil {
			a.logger.Warn().Str("Method", "Execute").Str("URL", eff.URL).Err(err).Msg("open homepage")
		}
	}
	return nil
}

// WaitMedia blocks until the media element reports a state change and wraps
// it in a command. ok is false once the media element is gone.
func (a *App) WaitMedia(ctx context.Context) (Command, bool) {
	if a.events == nil {
		<-ctx.Done()
		return nil, false
	}

	select {
	case ev, ok := <-a.events:
		if !ok {
			return nil, false
		}
		return Media{Event: ev}, true
	case <-ctx.Done():
		return nil, false
	}
}
