package app

import (
	"pixelwave.app/pixelwave/internal/stations"
	"pixelwave.app/pixelwave/internal/view"
)

// Panel is what the station panel shows.
type Panel struct {
	Tag      string
	Station  stations.Station
	Subtitle string
	Button   string
	Index    int
	Total    int
	// Current is true when the panel station is the one loaded for playback.
	Current bool
}

// Panel returns the station panel content. ok is false while the panel is
// hidden.
func (a *App) Panel() (Panel, bool) {
	if !a.view.Visible(view.StationPanelContainer) || a.browse.Len() == 0 {
		return Panel{}, false
	}

	st := a.browse.At(a.cursor)
	name := st.Name
	if name == "" {
		name = "Station"
	}

	p := Panel{
		Tag:      a.browse.Tag(),
		Station:  st,
		Subtitle: st.Subtitle(a.browse.Tag()),
		Button:   "Listen: " + name,
		Index:    a.cursor,
		Total:    a.browse.Len(),
	}
	if cur, ok := a.ctrl.Session().Current(); ok && cur.Same(st) {
		p.Current = true
	}

	return p, true
}
