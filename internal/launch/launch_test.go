package launch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"pixelwave.app/pixelwave/internal/app"
	"pixelwave.app/pixelwave/internal/config"
	"pixelwave.app/pixelwave/internal/player"
	"pixelwave.app/pixelwave/internal/player/mpv"
	"pixelwave.app/pixelwave/internal/stations"
)

func TestVersionFlag(t *testing.T) {
	called := false
	cmd := NewRootCmd("pixelwave", "test", "1.2.3", func(context.Context, *app.App) error {
		called = true
		return nil
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "1.2.3") {
		t.Fatalf("version output = %q", out.String())
	}
	if called {
		t.Fatal("front-end started for --version")
	}
}

func TestMissingPlayerBinary(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "pw.log")
	t.Setenv("PIXELWAVE_MPV", filepath.Join(t.TempDir(), "no-such-mpv"))

	cmd := NewRootCmd("pixelwave", "test", "dev", func(context.Context, *app.App) error {
		t.Fatal("front-end started without a media player")
		return nil
	})
	cmd.SetArgs([]string{"--log-file", logPath, "--debug"})

	err := cmd.Execute()
	if !errors.Is(err, mpv.ErrNotFound) {
		t.Fatalf("Execute() error = %v, want ErrNotFound", err)
	}
	if !strings.HasPrefix(err.Error(), "start media player") {
		t.Fatalf("error not wrapped: %v", err)
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "starting") {
		t.Fatalf("log file = %q", b)
	}
}

func TestBadConfig(t *testing.T) {
	t.Setenv("PIXELWAVE_VOLUME", "7")

	cmd := NewRootCmd("pixelwave", "test", "dev", nil)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); !errors.Is(err, config.ErrInvalidValue) {
		t.Fatalf("Execute() error = %v, want ErrInvalidValue", err)
	}
}

func TestRejectsArgs(t *testing.T) {
	cmd := NewRootCmd("pixelwave", "test", "dev", nil)
	cmd.SetArgs([]string{"jazz"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("positional argument accepted")
	}
}

type fakeMedia struct {
	volume float64
	events chan player.Event
}

func (m *fakeMedia) SetSource(string) error      { return nil }
func (m *fakeMedia) Play(context.Context) error  { return nil }
func (m *fakeMedia) Pause() error                { return nil }
func (m *fakeMedia) Stop() error                 { return nil }
func (m *fakeMedia) SetVolume(v float64) error   { m.volume = v; return nil }
func (m *fakeMedia) Events() <-chan player.Event { return m.events }
func (m *fakeMedia) Close() error                { return nil }

type emptyFetcher struct{}

func (emptyFetcher) FetchByTag(context.Context, string) (stations.StationList, error) {
	return stations.StationList{}, stations.ErrNoResults
}

func TestNewAppliesConfig(t *testing.T) {
	m := &fakeMedia{events: make(chan player.Event, 1)}
	cfg := &config.Config{Volume: 0.4, StartTimeout: time.Second}

	a := New(emptyFetcher{}, m, cfg, zerolog.Nop())

	if m.volume != 0.4 || a.Session().Volume() != 0.4 {
		t.Fatalf("volume media %v session %v, want 0.4", m.volume, a.Session().Volume())
	}
	if a.Mini().Values().Volume != 0.4 {
		t.Fatalf("mini volume = %v", a.Mini().Values().Volume)
	}

	m.events <- player.Event{Kind: player.EventPause}
	if _, ok := a.WaitMedia(context.Background()); !ok {
		t.Fatal("media events not wired")
	}
}

func TestOpenLogDiscard(t *testing.T) {
	w, err := openLog("-")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}
