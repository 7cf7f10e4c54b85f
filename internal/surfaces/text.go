package surfaces

import (
	"net/url"
	"strconv"
	"strings"

	"pixelwave.app/pixelwave/internal/stations"
)

// CoverLabel is the textual stand-in for a cover image in a terminal.
func CoverLabel(coverURL string) string {
	if coverURL == "" || stations.IsPlaceholderCover(coverURL) {
		return "♪ " + stations.ProductName
	}

	u, err := url.Parse(coverURL)
	if err != nil || u.Host == "" {
		return "♪ cover"
	}
	return "♪ " + u.Host
}

// VolumeBar draws v in [0,1] as a bar of width cells.
func VolumeBar(v float64, width int) string {
	if width <= 0 {
		return ""
	}

	filled := int(v*float64(width) + 0.5)
	filled = min(max(filled, 0), width)

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Percent renders v in [0,1] as "80%".
func Percent(v float64) string {
	return strconv.Itoa(int(v*100+0.5)) + "%"
}
