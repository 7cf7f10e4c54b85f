// Package interactive is the lite terminal front-end drawn directly with
// tcell. Effects run on goroutines and post their outcome back to the event
// loop as interrupt events.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/encoding"
	"github.com/mattn/go-runewidth"
	"pixelwave.app/pixelwave/internal/app"
	"pixelwave.app/pixelwave/internal/stations"
	"pixelwave.app/pixelwave/internal/surfaces"
	"pixelwave.app/pixelwave/internal/utils"
	"pixelwave.app/pixelwave/internal/view"
)

const (
	gridColumns = 4
	volumeStep  = 0.05
)

// NewScreen .
type NewScreen struct {
	Current    tcell.Screen
	app        *app.App
	ctx        context.Context
	genre      int
	lastAction string
	finished   bool
	// run executes an effect. Swapped in tests.
	run func(app.Effect)
}

func (p *NewScreen) emitStr(x, y int, style tcell.Style, str string) {
	s := p.Current
	for _, c := range str {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		s.SetContent(x, y, c, comb, style)
		x += w
	}
}

func (p *NewScreen) emitCentered(y int, style tcell.Style, str string) {
	w, _ := p.Current.Size()
	str = runewidth.Truncate(str, w-2, "…")
	p.emitStr(w/2-runewidth.StringWidth(str)/2, y, style, str)
}

// EmitMsg - Display a notice on the interactive terminal.
// Method to implement the screen interface
func (p *NewScreen) EmitMsg(inputtext string) {
	p.lastAction = inputtext
	p.render()
}

func (p *NewScreen) render() {
	s := p.Current
	if s == nil {
		return
	}

	w, h := s.Size()
	boldStyle := tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite).Bold(true)
	dimStyle := tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorGray)
	blinkStyle := boldStyle.Blink(true)

	s.Clear()

	p.emitStr(1, 1, boldStyle, stations.ProductName)
	p.emitStr(w-runewidth.StringWidth("Press q to exit.")-1, 1, dimStyle, "Press q to exit.")

	y := h/2 - 4
	vm := p.app.View()
	switch {
	case vm.Visible(view.LargePlayerContainer):
		style := boldStyle
		if vm.OverlayClosing() {
			style = dimStyle
		}
		v := p.app.Modal().Values()
		p.emitCentered(y, dimStyle, surfaces.CoverLabel(v.CoverURL))
		p.emitCentered(y+2, style, v.Title)
		p.emitCentered(y+4, style, "⏮   "+string(v.Glyph)+"   ⏭")
		p.emitCentered(y+6, tcell.StyleDefault, surfaces.VolumeBar(v.Volume, 20)+" "+surfaces.Percent(v.Volume))
		p.emitCentered(h-3, dimStyle, "n/p: next/prev  space: play/pause  +/-: volume  w: homepage  ESC: close")
	case vm.Visible(view.StationPanelContainer):
		if panel, ok := p.app.Panel(); ok {
			label := "[ " + panel.Button + " ]"
			if panel.Current {
				label = "[ Now playing ]"
			}
			p.emitCentered(y, dimStyle, surfaces.CoverLabel(panel.Station.CoverURL))
			p.emitCentered(y+2, boldStyle, panel.Station.Name)
			p.emitCentered(y+3, tcell.StyleDefault, panel.Subtitle)
			p.emitCentered(y+5, boldStyle.Reverse(true), label)
			p.emitCentered(y+7, dimStyle, fmt.Sprintf("‹ %d / %d ›", panel.Index+1, panel.Total))
		}
		p.emitCentered(h-3, dimStyle, "←/→: browse  Enter: listen  ESC: back")
	default:
		for i, row := range genreRows() {
			var b strings.Builder
			for j, g := range row {
				cell := fmt.Sprintf("  %-12s", utils.Capitalize(g))
				if i*gridColumns+j == p.genre {
					cell = fmt.Sprintf(" [%-12s]", utils.Capitalize(g))
				}
				b.WriteString(cell)
			}
			p.emitCentered(y+i*2, tcell.StyleDefault, b.String())
		}
		p.emitCentered(h-3, dimStyle, "Arrows: pick a genre  Enter: load stations  o: player")
	}

	if tag := p.app.Loading(); tag != "" {
		p.emitCentered(3, blinkStyle, "Loading "+utils.Capitalize(tag)+" stations...")
	}
	if p.lastAction != "" {
		p.emitCentered(4, boldStyle, p.lastAction)
	}

	if vm.Visible(view.MiniPlayerContainer) && !vm.Visible(view.LargePlayerContainer) {
		v := p.app.Mini().Values()
		line := string(v.Glyph) + "  " + v.Title + "  " + surfaces.Percent(v.Volume)
		p.emitStr(1, h-1, boldStyle, runewidth.Truncate(line, w-2, "…"))
	}

	s.Show()
}

func genreRows() [][]string {
	var rows [][]string
	for i := 0; i < len(stations.Genres); i += gridColumns {
		rows = append(rows, stations.Genres[i:min(i+gridColumns, len(stations.Genres))])
	}
	return rows
}

// InterInit - Start the interactive terminal. It returns once the user
// quits or ctx is done.
func (p *NewScreen) InterInit(ctx context.Context, a *app.App) error {
	p.app = a
	p.ctx = ctx
	if p.run == nil {
		p.run = p.runAsync
	}
	a.SetScreen(p)

	encoding.Register()
	s := p.Current
	if err := s.Init(); err != nil {
		return fmt.Errorf("InterInit: %w", err)
	}

	defStyle := tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite)
	s.SetStyle(defStyle)

	go p.watchMedia()
	go func() {
		<-ctx.Done()
		_ = s.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	p.render()

	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			s.Sync()
			p.render()
		case *tcell.EventKey:
			if !p.handle(ev.Key(), ev.Rune()) {
				p.Fini()
				return nil
			}
		case *tcell.EventInterrupt:
			cmd, ok := ev.Data().(app.Command)
			if !ok {
				if ctx.Err() != nil {
					p.Fini()
					return nil
				}
				continue
			}
			p.dispatch(cmd)
		}
	}
}

func (p *NewScreen) watchMedia() {
	for {
		cmd, ok := p.app.WaitMedia(p.ctx)
		if !ok {
			return
		}
		p.post(cmd)
	}
}

func (p *NewScreen) post(cmd app.Command) {
	for p.Current.PostEvent(tcell.NewEventInterrupt(cmd)) != nil {
		// Event queue full.
		select {
		case <-p.ctx.Done():
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func (p *NewScreen) runAsync(e app.Effect) {
	go func() {
		if next := p.app.Execute(p.ctx, e); next != nil {
			p.post(next)
		}
	}()
}

func (p *NewScreen) dispatch(cmd app.Command) {
	for _, e := range p.app.Dispatch(cmd) {
		p.run(e)
	}
	p.render()
}

// handle maps a key press onto the current view. It returns false when the
// user asked to quit.
func (p *NewScreen) handle(k tcell.Key, r rune) bool {
	if k == tcell.KeyCtrlC || (k == tcell.KeyRune && r == 'q') {
		return false
	}

	p.lastAction = ""

	if k == tcell.KeyRune {
		switch r {
		case ' ':
			p.dispatch(app.TogglePlay{})
			return true
		case 's':
			p.dispatch(app.Stop{})
			return true
		case '+', '=':
			p.dispatch(app.NudgeVolume{Delta: volumeStep})
			return true
		case '-':
			p.dispatch(app.NudgeVolume{Delta: -volumeStep})
			return true
		case 'w':
			p.dispatch(app.OpenHomepage{})
			return true
		}
	}

	var cmd app.Command
	switch p.app.View().Current() {
	case view.LargePlayer:
		cmd = largeCommand(k, r)
	case view.StationPanel:
		cmd = panelCommand(k, r)
	default:
		cmd = p.gridCommand(k, r)
	}

	if cmd != nil {
		p.dispatch(cmd)
	} else {
		p.render()
	}

	return true
}

func (p *NewScreen) gridCommand(k tcell.Key, r rune) app.Command {
	n := len(stations.Genres)

	switch {
	case k == tcell.KeyLeft || r == 'h':
		p.genre = (p.genre - 1 + n) % n
	case k == tcell.KeyRight || r == 'l':
		p.genre = (p.genre + 1) % n
	case k == tcell.KeyUp || r == 'k':
		if p.genre-gridColumns >= 0 {
			p.genre -= gridColumns
		}
	case k == tcell.KeyDown || r == 'j':
		if p.genre+gridColumns < n {
			p.genre += gridColumns
		}
	case k == tcell.KeyEnter:
		return app.SelectGenre{Tag: stations.Genres[p.genre]}
	case r == 'o':
		return app.OpenLarge{}
	case r == 'n':
		return app.Next{}
	case r == 'p':
		return app.Prev{}
	}
	return nil
}

func panelCommand(k tcell.Key, r rune) app.Command {
	switch {
	case k == tcell.KeyLeft || k == tcell.KeyUp || r == 'h' || r == 'k':
		return app.BrowsePrev{}
	case k == tcell.KeyRight || k == tcell.KeyDown || r == 'l' || r == 'j':
		return app.BrowseNext{}
	case k == tcell.KeyEnter:
		return app.Enter{}
	case k == tcell.KeyEscape || k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return app.Back{}
	case r == 'o':
		return app.OpenLarge{}
	}
	return nil
}

func largeCommand(k tcell.Key, r rune) app.Command {
	switch {
	case k == tcell.KeyEscape || r == 'o':
		return app.CloseLarge{}
	case k == tcell.KeyRight || r == 'n':
		return app.Next{}
	case k == tcell.KeyLeft || r == 'p':
		return app.Prev{}
	}
	return nil
}

// Fini Method to implement the screen interface
func (p *NewScreen) Fini() {
	if p.Current == nil || p.finished {
		return
	}
	p.finished = true
	p.Current.Fini()
}

// InitTcellNewScreen .
func InitTcellNewScreen() (*NewScreen, error) {
	s, e := tcell.NewScreen()
	if e != nil {
		return nil, errors.New("can't start new interactive screen")
	}
	return &NewScreen{
		Current: s,
	}, nil
}
