package stations

// Genres is the fixed set of tags offered on the genre grid.
var Genres = []string{
	"lofi",
	"jazz",
	"classical",
	"electronic",
	"ambient",
	"chillout",
	"rock",
	"pop",
	"funk",
	"blues",
	"hip-hop",
}

// ValidGenre reports whether tag is part of Genres.
func ValidGenre(tag string) bool {
	for _, g := range Genres {
		if g == tag {
			return true
		}
	}
	return false
}
