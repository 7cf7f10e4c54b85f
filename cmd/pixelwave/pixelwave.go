package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"pixelwave.app/pixelwave/internal/app"
	"pixelwave.app/pixelwave/internal/launch"
	"pixelwave.app/pixelwave/internal/tui"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	launch.Check(launch.NewRootCmd(
		"pixelwave",
		"Browse genres and listen to internet radio in the terminal.",
		version,
		runTUI,
	).Execute())
}

func runTUI(ctx context.Context, a *app.App) error {
	m := tui.New(ctx, a)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run tui")
	}

	return nil
}
