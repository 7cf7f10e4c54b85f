package main

import (
	"context"

	"github.com/pkg/errors"
	"pixelwave.app/pixelwave/internal/app"
	"pixelwave.app/pixelwave/internal/interactive"
	"pixelwave.app/pixelwave/internal/launch"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	launch.Check(launch.NewRootCmd(
		"pixelwave-lite",
		"Internet radio for plain terminals.",
		version,
		runLite,
	).Execute())
}

func runLite(ctx context.Context, a *app.App) error {
	scr, err := interactive.InitTcellNewScreen()
	if err != nil {
		return errors.Wrap(err, "new screen")
	}

	return errors.Wrap(scr.InterInit(ctx, a), "interactive screen")
}
