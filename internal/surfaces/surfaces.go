// Package surfaces projects the playback session onto every display surface
// so that the mini-player and the large player never disagree.
package surfaces

import (
	"pixelwave.app/pixelwave/internal/player"
	"pixelwave.app/pixelwave/internal/stations"
)

// Glyph is the play/pause control representation.
type Glyph string

const (
	// GlyphPlay is shown while paused or stopped.
	GlyphPlay Glyph = "▶"
	// GlyphPause is shown while audio plays.
	GlyphPause Glyph = "⏸"
)

const (
	// IdleTitle is shown when nothing is loaded.
	IdleTitle = "Nothing playing"
	// UntitledStation is shown for a station without a name.
	UntitledStation = "Now playing"
)

// Values are the four values every surface shows.
type Values struct {
	CoverURL string
	Title    string
	Glyph    Glyph
	Volume   float64
}

// Project computes the surface values for s. It has no side effects.
func Project(s *player.Session) Values {
	v := Values{
		CoverURL: stations.PlaceholderCover(),
		Title:    IdleTitle,
		Glyph:    GlyphPlay,
		Volume:   s.Volume(),
	}

	if st, ok := s.Current(); ok {
		v.CoverURL = st.CoverURL
		if v.CoverURL == "" {
			v.CoverURL = stations.PlaceholderCover()
		}
		v.Title = st.Name
		if v.Title == "" {
			v.Title = UntitledStation
		}
	}

	if s.IsPlaying() {
		v.Glyph = GlyphPause
	}

	return v
}

// Surface is anything that displays Values.
type Surface interface {
	Apply(v Values)
}

// Sync writes v to every surface. Nil surfaces do not exist in the current
// layout and are skipped.
func Sync(v Values, targets ...Surface) {
	for _, t := range targets {
		if t == nil {
			continue
		}
		if d, ok := t.(*Display); ok && d == nil {
			continue
		}
		t.Apply(v)
	}
}

// Display is an in-memory surface read by the front-ends when they render.
type Display struct {
	name     string
	values   Values
	revision uint64
}

// NewDisplay returns an empty display.
func NewDisplay(name string) *Display {
	return &Display{name: name}
}

// Name identifies the surface in logs.
func (d *Display) Name() string {
	return d.name
}

// Apply stores v. The revision only moves when a value changes.
func (d *Display) Apply(v Values) {
	if d.values == v {
		return
	}
	d.values = v
	d.revision++
}

// Values returns what the surface currently shows.
func (d *Display) Values() Values {
	return d.values
}

// Revision counts visible changes.
func (d *Display) Revision() uint64 {
	return d.revision
}
