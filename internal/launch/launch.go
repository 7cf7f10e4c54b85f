// Package launch wires configuration, logging, the mpv media element, the
// station directory and the app together behind a cobra root command shared
// by both binaries.
package launch

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
	"pixelwave.app/pixelwave/internal/app"
	"pixelwave.app/pixelwave/internal/config"
	"pixelwave.app/pixelwave/internal/logging"
	"pixelwave.app/pixelwave/internal/player"
	"pixelwave.app/pixelwave/internal/player/mpv"
	"pixelwave.app/pixelwave/internal/stations"
	"pixelwave.app/pixelwave/internal/view"
)

// FrontEnd runs a user interface over a until the user quits or ctx is done.
type FrontEnd func(ctx context.Context, a *app.App) error

// NewRootCmd returns the root command of a binary. --version, --debug and
// --log-file are available on every binary.
func NewRootCmd(use, short, version string, run FrontEnd) *cobra.Command {
	var (
		debug   bool
		logFile string
	)

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return errors.Wrap(err, "load config")
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug = debug
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}

			return Run(cmd.Context(), cfg, version, run)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Write debug level logs.")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Log file path. Defaults to the user cache directory.")

	return cmd
}

// Run starts mpv, builds the app and hands it to run.
func Run(ctx context.Context, cfg *config.Config, version string, run FrontEnd) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out, err := openLog(cfg.LogFile)
	if err != nil {
		return errors.Wrap(err, "open log")
	}
	defer out.Close()

	logger := logging.Setup(out, cfg.Debug)
	logger.Info().Str("Method", "Run").Str("Version", version).Msg("starting")

	media, err := mpv.Start(ctx, mpv.Options{
		Binary: cfg.MPV,
		Logger: logger.With().Str("Component", "mpv").Logger(),
	})
	if err != nil {
		return errors.Wrap(err, "start media player")
	}
	defer func() {
		if err := media.Close(); err != nil {
			logger.Warn().Str("Method", "Run").Err(err).Msg("media player close")
		}
	}()

	dir, err := stations.NewDirectory(stations.Options{
		BaseURL:   cfg.APIBase,
		Limit:     cfg.Limit,
		RetryMax:  cfg.RetryMax,
		RateLimit: rate.Limit(cfg.Rate),
		Timeout:   cfg.HTTPTimeout,
		UserAgent: stations.ProductName + "/" + version,
		Logger:    logger.With().Str("Component", "directory").Logger(),
	})
	if err != nil {
		return errors.Wrap(err, "station directory")
	}

	a := New(dir, media, cfg, logger)
	defer a.Close()

	return run(ctx, a)
}

// New builds an app over fetcher and media with the configured volume and
// start timeout.
func New(fetcher app.Fetcher, media player.MediaElement, cfg *config.Config, logger zerolog.Logger) *app.App {
	ctrl := player.NewController(media, cfg.Volume, cfg.StartTimeout, logger.With().Str("Component", "controller").Logger())

	return app.New(app.Options{
		Fetcher:     fetcher,
		Controller:  ctrl,
		MediaEvents: media.Events(),
		View:        view.New(view.DefaultTeardown),
		Logger:      logger.With().Str("Component", "app").Logger(),
	})
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func openLog(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{io.Discard}, nil
	}

	if path == "" {
		p, err := config.DefaultLogFile()
		if err != nil {
			// No cache dir, nowhere to log.
			return nopCloser{io.Discard}, nil
		}
		path = p
	}

	f, err := logging.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Check prints err and exits with status 1 when err is not nil.
func Check(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Encountered error(s): " + err.Error() + "\n")
		os.Exit(1)
	}
}
