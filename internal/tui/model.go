// Package tui is the full terminal front-end built on bubbletea. It turns key
// presses into app commands and runs the resulting effects as tea.Cmds.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"pixelwave.app/pixelwave/internal/app"
	"pixelwave.app/pixelwave/internal/stations"
	"pixelwave.app/pixelwave/internal/view"
)

const (
	gridColumns = 4
	volumeStep  = 0.05
)

// commandMsg carries the outcome of an effect back to the UI goroutine.
type commandMsg struct {
	cmd app.Command
}

// mediaMsg carries a media element signal.
type mediaMsg struct {
	cmd app.Command
}

// Model is the bubbletea model. It is also the app's notice screen.
type Model struct {
	app     *app.App
	ctx     context.Context
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	genre    int
	notice   string
	width    int
	quitting bool
}

// New returns a model driving a. ctx bounds every effect.
func New(ctx context.Context, a *app.App) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := &Model{
		app:     a,
		ctx:     ctx,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: s,
		width:   80,
	}
	a.SetScreen(m)

	return m
}

// EmitMsg shows a notice until the next key press.
func (m *Model) EmitMsg(s string) {
	m.notice = s
}

// Fini marks the model as done. The program exits on the next update.
func (m *Model) Fini() {
	m.quitting = true
}

// Init starts listening for media signals.
func (m *Model) Init() tea.Cmd {
	return m.waitMedia()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		m.notice = ""
		return m, m.handleKey(msg)
	case commandMsg:
		return m, m.dispatch(msg.cmd)
	case mediaMsg:
		return m, tea.Batch(m.dispatch(msg.cmd), m.waitMedia())
	case spinner.TickMsg:
		if m.app.Loading() == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Toggle):
		return m.dispatch(app.TogglePlay{})
	case key.Matches(msg, m.keys.Stop):
		return m.dispatch(app.Stop{})
	case key.Matches(msg, m.keys.VolUp):
		return m.dispatch(app.NudgeVolume{Delta: volumeStep})
	case key.Matches(msg, m.keys.VolDown):
		return m.dispatch(app.NudgeVolume{Delta: -volumeStep})
	case key.Matches(msg, m.keys.Homepage):
		return m.dispatch(app.OpenHomepage{})
	}

	switch m.app.View().Current() {
	case view.LargePlayer:
		return m.largeKey(msg)
	case view.StationPanel:
		return m.panelKey(msg)
	}
	return m.gridKey(msg)
}

func (m *Model) gridKey(msg tea.KeyMsg) tea.Cmd {
	n := len(stations.Genres)

	switch {
	case key.Matches(msg, m.keys.Left):
		m.genre = (m.genre - 1 + n) % n
	case key.Matches(msg, m.keys.Right):
		m.genre = (m.genre + 1) % n
	case key.Matches(msg, m.keys.Up):
		if m.genre-gridColumns >= 0 {
			m.genre -= gridColumns
		}
	case key.Matches(msg, m.keys.Down):
		if m.genre+gridColumns < n {
			m.genre += gridColumns
		}
	case key.Matches(msg, m.keys.Enter):
		return m.dispatch(app.SelectGenre{Tag: stations.Genres[m.genre]})
	case key.Matches(msg, m.keys.Large):
		return m.dispatch(app.OpenLarge{})
	case key.Matches(msg, m.keys.Next):
		return m.dispatch(app.Next{})
	case key.Matches(msg, m.keys.Prev):
		return m.dispatch(app.Prev{})
	}
	return nil
}

func (m *Model) panelKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		return m.dispatch(app.BrowsePrev{})
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		return m.dispatch(app.BrowseNext{})
	case key.Matches(msg, m.keys.Enter):
		return m.dispatch(app.Enter{})
	case key.Matches(msg, m.keys.Back):
		return m.dispatch(app.Back{})
	case key.Matches(msg, m.keys.Large):
		return m.dispatch(app.OpenLarge{})
	}
	return nil
}

func (m *Model) largeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Large):
		return m.dispatch(app.CloseLarge{})
	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Right):
		return m.dispatch(app.Next{})
	case key.Matches(msg, m.keys.Prev), key.Matches(msg, m.keys.Left):
		return m.dispatch(app.Prev{})
	}
	return nil
}

// dispatch applies cmd and turns its effects into tea.Cmds.
func (m *Model) dispatch(cmd app.Command) tea.Cmd {
	wasLoading := m.app.Loading() != ""

	var cmds []tea.Cmd
	for _, e := range m.app.Dispatch(cmd) {
		cmds = append(cmds, m.execute(e))
	}

	if !wasLoading && m.app.Loading() != "" {
		cmds = append(cmds, m.spinner.Tick)
	}

	return tea.Batch(cmds...)
}

func (m *Model) execute(e app.Effect) tea.Cmd {
	if td, ok := e.(app.ScheduleTeardown); ok {
		return tea.Tick(td.After, func(time.Time) tea.Msg {
			return commandMsg{cmd: app.Teardown{}}
		})
	}

	return func() tea.Msg {
		if next := m.app.Execute(m.ctx, e); next != nil {
			return commandMsg{cmd: next}
		}
		return nil
	}
}

func (m *Model) waitMedia() tea.Cmd {
	return func() tea.Msg {
		cmd, ok := m.app.WaitMedia(m.ctx)
		if !ok {
			return nil
		}
		return mediaMsg{cmd: cmd}
	}
}
