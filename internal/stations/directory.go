package stations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"pixelwave.app/pixelwave/internal/utils"
)

var (
	// ErrQueryError is returned when the directory could not be reached or
	// answered with a non-success status.
	ErrQueryError = errors.New("station query failed")
	// ErrNoResults is returned when the directory answered successfully
	// with an empty station set.
	ErrNoResults = errors.New("no stations found")
	// ErrInvalidGenre is returned for tags outside Genres.
	ErrInvalidGenre = errors.New("unknown genre")
)

// DefaultLimit caps the number of stations requested per genre.
const DefaultLimit = 20

// maxBodySize bounds the directory answer we are willing to decode.
const maxBodySize = 4 << 20

// Options configures a Directory.
type Options struct {
	BaseURL   string
	Limit     int
	RetryMax  int
	RateLimit rate.Limit
	// Timeout bounds each request. Zero selects DefaultTimeout.
	Timeout   time.Duration
	UserAgent string
	Logger    zerolog.Logger
}

// Directory looks stations up by tag on a radio-browser compatible API.
type Directory struct {
	base      *url.URL
	limit     int
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

// NewDirectory validates opts and returns a ready Directory.
func NewDirectory(opts Options) (*Directory, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("NewDirectory: failed to parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("NewDirectory: unsupported scheme %q", base.Scheme)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(opts.RateLimit, 1)
	}

	return &Directory{
		base:      base,
		limit:     limit,
		userAgent: opts.UserAgent,
		client:    newDirectoryClient(opts.Timeout, opts.RetryMax),
		limiter:   limiter,
		logger:    opts.Logger,
	}, nil
}

func (d *Directory) byTagURL(tag string) string {
	q := url.Values{"limit": []string{strconv.Itoa(d.limit)}}
	return d.base.String() + "/stations/bytag/" + utils.EscapePathSegment(tag) + "?" + q.Encode()
}

// FetchByTag returns the stations tagged with tag in the order the directory
// returned them. The error wraps ErrQueryError, ErrNoResults or
// ErrInvalidGenre.
func (d *Directory) FetchByTag(ctx context.Context, tag string) (StationList, error) {
	if !ValidGenre(tag) {
		return StationList{}, fmt.Errorf("FetchByTag %q: %w", tag, ErrInvalidGenre)
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return StationList{}, fmt.Errorf("FetchByTag %q: %w: %w", tag, ErrQueryError, err)
	}

	target := d.byTagURL(tag)
	d.logger.Debug().Str("Method", "FetchByTag").Str("URL", target).Msg("querying directory")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return StationList{}, fmt.Errorf("FetchByTag %q: %w: %w", tag, ErrQueryError, err)
	}
	req.Header.Set("Accept", "application/json")
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Error().Str("Method", "FetchByTag").Str("Tag", tag).Err(err).Msg("request failed")
		return StationList{}, fmt.Errorf("FetchByTag %q: %w: %w", tag, ErrQueryError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		d.logger.Error().Str("Method", "FetchByTag").Str("Tag", tag).Int("Status", resp.StatusCode).Msg("bad status")
		return StationList{}, fmt.Errorf("FetchByTag %q: %w: status %s", tag, ErrQueryError, resp.Status)
	}

	var raw []rawStation
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&raw); err != nil {
		return StationList{}, fmt.Errorf("FetchByTag %q: %w: decode: %w", tag, ErrQueryError, err)
	}

	items := make([]Station, 0, len(raw))
	for _, r := range raw {
		s, ok := normalize(r)
		if !ok {
			d.logger.Debug().Str("Method", "FetchByTag").Str("Station", r.Name).Msg("skipping station without stream url")
			continue
		}
		items = append(items, s)
	}

	if len(items) == 0 {
		return StationList{}, fmt.Errorf("FetchByTag %q: %w", tag, ErrNoResults)
	}

	d.logger.Debug().Str("Method", "FetchByTag").Str("Tag", tag).Int("Count", len(items)).Msg("stations fetched")

	return NewStationList(tag, items...), nil
}
