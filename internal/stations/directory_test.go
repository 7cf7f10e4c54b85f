package stations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const jazzBody = `[
  {"stationuuid":"9617A958-0601-11E8-AE97-52543BE04C81","name":" Smooth Jazz ","url":"http://a/raw","url_resolved":"http://a/stream","favicon":"http://a/icon.png","country":"France","tags":"jazz, smooth ,","codec":"MP3","bitrate":128,"homepage":"http://a"},
  {"stationuuid":"b-2","name":"Bebop","url":"http://b/stream","url_resolved":"","favicon":"   ","country":""},
  {"stationuuid":"c-3","name":"Broken","url":"","url_resolved":""},
  {"stationuuid":"d-4","name":"Cool","url_resolved":"http://d/stream","favicon":"","country":"Japan"}
]`

func newTestDirectory(t *testing.T, h http.HandlerFunc) *Directory {
	t.Helper()

	s := httptest.NewServer(h)
	t.Cleanup(s.Close)

	d, err := NewDirectory(Options{
		BaseURL:   s.URL + "/json/",
		Limit:     20,
		RetryMax:  0,
		UserAgent: "PixelWave/test",
		Logger:    zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewDirectory() err = %v", err)
	}

	return d
}

func TestFetchByTag(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	d := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jazzBody))
	})

	list, err := d.FetchByTag(context.Background(), "jazz")
	if err != nil {
		t.Fatalf("FetchByTag() err = %v", err)
	}

	if gotPath != "/json/stations/bytag/jazz" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery != "limit=20" {
		t.Fatalf("query = %q", gotQuery)
	}
	if gotUA != "PixelWave/test" {
		t.Fatalf("user agent = %q", gotUA)
	}

	if list.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", list.Len())
	}
	if list.Tag() != "jazz" {
		t.Fatalf("Tag() = %q", list.Tag())
	}

	first := list.At(0)
	if first.ID != "9617a958-0601-11e8-ae97-52543be04c81" {
		t.Fatalf("ID not canonicalised: %q", first.ID)
	}
	if first.Name != "Smooth Jazz" {
		t.Fatalf("Name = %q", first.Name)
	}
	if first.StreamURL != "http://a/stream" {
		t.Fatalf("StreamURL = %q", first.StreamURL)
	}
	if !first.HasCover() || first.CoverURL != "http://a/icon.png" {
		t.Fatalf("CoverURL = %q", first.CoverURL)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "jazz" || first.Tags[1] != "smooth" {
		t.Fatalf("Tags = %v", first.Tags)
	}
	if first.Quality() != "MP3 128k" {
		t.Fatalf("Quality() = %q", first.Quality())
	}
	if first.Subtitle("jazz") != "jazz • France" {
		t.Fatalf("Subtitle() = %q", first.Subtitle("jazz"))
	}

	second := list.At(1)
	if second.ID != "b-2" || second.StreamURL != "http://b/stream" {
		t.Fatalf("second = %+v", second)
	}
	if second.HasCover() || !IsPlaceholderCover(second.CoverURL) {
		t.Fatalf("blank favicon did not fall back to placeholder: %q", second.CoverURL)
	}
	if second.Subtitle("jazz") != "jazz" {
		t.Fatalf("Subtitle() without country = %q", second.Subtitle("jazz"))
	}

	if list.At(2).ID != "d-4" {
		t.Fatalf("order not preserved: %q", list.At(2).ID)
	}
}

func TestFetchByTagEscapesTag(t *testing.T) {
	var gotPath string
	d := newTestDirectory(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(jazzBody))
	})

	if _, err := d.FetchByTag(context.Background(), "hip-hop"); err != nil {
		t.Fatalf("FetchByTag() err = %v", err)
	}

	if !strings.HasSuffix(gotPath, "/stations/bytag/hip-hop") {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestFetchByTagErrors(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "empty result",
			tag:  "lofi",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
			want: ErrNoResults,
		},
		{
			name: "only unplayable stations",
			tag:  "lofi",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[{"stationuuid":"x","name":"x"}]`))
			},
			want: ErrNoResults,
		},
		{
			name: "not found",
			tag:  "rock",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			want: ErrQueryError,
		},
		{
			name: "server error",
			tag:  "rock",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: ErrQueryError,
		},
		{
			name: "garbage body",
			tag:  "pop",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			want: ErrQueryError,
		},
		{
			name: "unknown genre",
			tag:  "polka",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				t.Errorf("directory must not be called for an unknown genre")
			},
			want: ErrInvalidGenre,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDirectory(t, tt.handler)

			_, err := d.FetchByTag(context.Background(), tt.tag)
			if !errors.Is(err, tt.want) {
				t.Fatalf("FetchByTag() err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetchByTagTransportFailure(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := s.URL
	s.Close()

	d, err := NewDirectory(Options{BaseURL: base, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewDirectory() err = %v", err)
	}

	_, err = d.FetchByTag(context.Background(), "jazz")
	if !errors.Is(err, ErrQueryError) {
		t.Fatalf("FetchByTag() err = %v, want ErrQueryError", err)
	}
	if errors.Is(err, ErrNoResults) {
		t.Fatalf("transport failure reported as no results")
	}
}

func TestNewDirectoryRejectsBadBase(t *testing.T) {
	if _, err := NewDirectory(Options{BaseURL: "ftp://example.com"}); err == nil {
		t.Fatal("NewDirectory() accepted ftp scheme")
	}
}

func TestPlaceholderCoverIsStable(t *testing.T) {
	a, b := PlaceholderCover(), PlaceholderCover()
	if a != b {
		t.Fatal("placeholder differs between calls")
	}
	if !strings.HasPrefix(a, "data:image/svg+xml") {
		t.Fatalf("placeholder = %q", a)
	}
	if !strings.Contains(a, ProductName) {
		t.Fatalf("placeholder is not labelled with %q", ProductName)
	}
}

func TestFetchByTagTimeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(s.Close)

	d, err := NewDirectory(Options{BaseURL: s.URL, Timeout: 100 * time.Millisecond, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewDirectory() err = %v", err)
	}

	start := time.Now()
	_, err = d.FetchByTag(context.Background(), "jazz")
	if !errors.Is(err, ErrQueryError) {
		t.Fatalf("FetchByTag() err = %v, want ErrQueryError", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("FetchByTag() took %v with a 100ms timeout", elapsed)
	}
}

func TestFetchByTagRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(jazzBody))
	}))
	t.Cleanup(s.Close)

	d, err := NewDirectory(Options{BaseURL: s.URL, RetryMax: 1, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewDirectory() err = %v", err)
	}

	list, err := d.FetchByTag(context.Background(), "jazz")
	if err != nil {
		t.Fatalf("FetchByTag() err = %v", err)
	}
	if list.Len() != 3 || hits.Load() != 2 {
		t.Fatalf("got %d stations after %d requests", list.Len(), hits.Load())
	}
}
