package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"pixelwave.app/pixelwave/internal/app"
	"pixelwave.app/pixelwave/internal/stations"
	"pixelwave.app/pixelwave/internal/surfaces"
	"pixelwave.app/pixelwave/internal/utils"
	"pixelwave.app/pixelwave/internal/view"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#1f5f8b", Dark: "#7ea6c7"}
	muted  = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#666666"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	noticeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e06c75")).Padding(0, 1)
	spinnerStyle = lipgloss.NewStyle().Foreground(accent)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)

	cellStyle     = lipgloss.NewStyle().Width(14).Padding(0, 1)
	selectedStyle = cellStyle.Bold(true).Reverse(true)

	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(1, 2)
	buttonStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#071021")).Background(accent).Padding(0, 2)

	miniStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(muted)
	largeStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 4)
	closingStyle = largeStyle.BorderForeground(muted).Faint(true)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(stations.ProductName))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if tag := m.app.Loading(); tag != "" {
		b.WriteString(" " + m.spinner.View() + " Loading " + utils.Capitalize(tag) + " stations…\n")
	}
	b.WriteString("\n")

	vm := m.app.View()
	switch {
	case vm.Visible(view.LargePlayerContainer):
		b.WriteString(m.largeView(vm.OverlayClosing()))
	case vm.Visible(view.StationPanelContainer):
		if p, ok := m.app.Panel(); ok {
			b.WriteString(m.panelView(p))
		}
	default:
		b.WriteString(m.gridView())
	}
	b.WriteString("\n")

	if vm.Visible(view.MiniPlayerContainer) && !vm.Visible(view.LargePlayerContainer) {
		b.WriteString(m.miniView())
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *Model) gridView() string {
	var rows []string
	var row []string

	for i, g := range stations.Genres {
		style := cellStyle
		if i == m.genre {
			style = selectedStyle
		}
		row = append(row, style.Render(utils.Capitalize(g)))

		if len(row) == gridColumns || i == len(stations.Genres)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) panelView(p app.Panel) string {
	inner := m.width - 12
	if inner < 20 {
		inner = 20
	}

	lines := []string{
		mutedStyle.Render(surfaces.CoverLabel(p.Station.CoverURL)),
		"",
		lipgloss.NewStyle().Bold(true).Render(truncate(p.Station.Name, inner)),
		truncate(p.Subtitle, inner),
	}
	if q := p.Station.Quality(); q != "" {
		lines = append(lines, mutedStyle.Render(q))
	}

	label := p.Button
	if p.Current {
		label = "Now playing"
	}
	lines = append(lines,
		"",
		buttonStyle.Render(truncate(label, inner-4)),
		"",
		mutedStyle.Render(fmt.Sprintf("‹ %d / %d ›", p.Index+1, p.Total)),
	)

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) miniView() string {
	v := m.app.Mini().Values()

	left := string(v.Glyph) + "  "
	right := "  " + surfaces.Percent(v.Volume)
	room := m.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)

	return miniStyle.Width(m.width).Render(left + truncate(v.Title, room) + right)
}

func (m *Model) largeView(closing bool) string {
	v := m.app.Modal().Values()

	lines := []string{
		mutedStyle.Render(surfaces.CoverLabel(v.CoverURL)),
		"",
		lipgloss.NewStyle().Bold(true).Render(truncate(v.Title, m.width-12)),
		"",
		"⏮   " + string(v.Glyph) + "   ⏭",
		"",
		surfaces.VolumeBar(v.Volume, 20) + " " + surfaces.Percent(v.Volume),
	}

	style := largeStyle
	if closing {
		style = closingStyle
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}
