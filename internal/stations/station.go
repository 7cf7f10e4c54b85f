package stations

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ProductName labels the generated placeholder cover.
const ProductName = "PixelWave"

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400">` +
	`<rect width="100%" height="100%" fill="#071021"/>` +
	`<text x="50%" y="50%" fill="#7ea6c7" dominant-baseline="middle" text-anchor="middle" ` +
	`font-family="Inter, Arial" font-size="28">` + ProductName + `</text></svg>`

var placeholderCover = "data:image/svg+xml;utf8," + url.PathEscape(placeholderSVG)

// PlaceholderCover returns the cover used when a station has no favicon.
// The value is a data URL and is the same on every call.
func PlaceholderCover() string {
	return placeholderCover
}

// IsPlaceholderCover reports whether u is the generated placeholder.
func IsPlaceholderCover(u string) bool {
	return u == placeholderCover
}

// Station is a single internet radio stream entry. Values are built once by
// the directory and never modified afterwards.
type Station struct {
	ID        string
	Name      string
	Country   string
	CoverURL  string
	StreamURL string
	Homepage  string
	Tags      []string
	Codec     string
	Bitrate   int
}

// Same reports whether both values describe the same station.
func (s Station) Same(o Station) bool {
	return s.ID == o.ID
}

// HasCover reports whether the station carries its own cover image.
func (s Station) HasCover() bool {
	return s.CoverURL != "" && !IsPlaceholderCover(s.CoverURL)
}

// Subtitle renders "tag • country", dropping the country when unknown.
func (s Station) Subtitle(tag string) string {
	if s.Country == "" {
		return tag
	}
	return tag + " • " + s.Country
}

// rawStation mirrors the subset of the radio-browser station object we read.
type rawStation struct {
	StationUUID string `json:"stationuuid"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	URLResolved string `json:"url_resolved"`
	Homepage    string `json:"homepage"`
	Favicon     string `json:"favicon"`
	Tags        string `json:"tags"`
	Country     string `json:"country"`
	Codec       string `json:"codec"`
	Bitrate     int    `json:"bitrate"`
}

// normalize turns a directory record into a Station. The placeholder fallback
// for the cover is applied here and nowhere else.
func normalize(r rawStation) (Station, bool) {
	stream := strings.TrimSpace(r.URLResolved)
	if stream == "" {
		stream = strings.TrimSpace(r.URL)
	}
	if stream == "" {
		return Station{}, false
	}

	id := strings.TrimSpace(r.StationUUID)
	if parsed, err := uuid.Parse(id); err == nil {
		id = parsed.String()
	}
	if id == "" {
		// Navigation needs a stable key.
		id = stream
	}

	cover := strings.TrimSpace(r.Favicon)
	if cover == "" {
		cover = PlaceholderCover()
	}

	var tags []string
	for _, t := range strings.Split(r.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return Station{
		ID:        id,
		Name:      strings.TrimSpace(r.Name),
		Country:   strings.TrimSpace(r.Country),
		CoverURL:  cover,
		StreamURL: stream,
		Homepage:  strings.TrimSpace(r.Homepage),
		Tags:      tags,
		Codec:     strings.TrimSpace(r.Codec),
		Bitrate:   r.Bitrate,
	}, true
}

// Quality renders codec and bitrate, e.g. "MP3 128k".
func (s Station) Quality() string {
	switch {
	case s.Codec != "" && s.Bitrate > 0:
		return s.Codec + " " + strconv.Itoa(s.Bitrate) + "k"
	case s.Codec != "":
		return s.Codec
	case s.Bitrate > 0:
		return strconv.Itoa(s.Bitrate) + "k"
	}
	return ""
}

// StationList is the ordered result of one genre query. The order is the
// one the directory returned and drives circular navigation.
type StationList struct {
	tag      string
	stations []Station
}

// NewStationList copies items into a new list.
func NewStationList(tag string, items ...Station) StationList {
	cp := make([]Station, len(items))
	copy(cp, items)
	return StationList{tag: tag, stations: cp}
}

// Tag returns the genre the list was fetched for.
func (l StationList) Tag() string { return l.tag }

// Len returns the number of stations.
func (l StationList) Len() int { return len(l.stations) }

// At returns the station at index i.
func (l StationList) At(i int) Station { return l.stations[i] }

// IndexOf returns the position of the station with the given id, or -1.
func (l StationList) IndexOf(id string) int {
	for i, s := range l.stations {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Stations returns a copy of the entries.
func (l StationList) Stations() []Station {
	cp := make([]Station, len(l.stations))
	copy(cp, l.stations)
	return cp
}
