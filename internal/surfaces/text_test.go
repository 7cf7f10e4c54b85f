package surfaces

import (
	"testing"

	"pixelwave.app/pixelwave/internal/stations"
)

func TestCoverLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"placeholder", stations.PlaceholderCover(), "♪ PixelWave"},
		{"empty", "", "♪ PixelWave"},
		{"favicon", "https://cdn.example.com/logo.png", "♪ cdn.example.com"},
		{"relative", "logo.png", "♪ cover"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoverLabel(tt.in); got != tt.want {
				t.Fatalf("CoverLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVolumeBar(t *testing.T) {
	tests := []struct {
		v     float64
		width int
		want  string
	}{
		{0, 4, "░░░░"},
		{1, 4, "████"},
		{0.5, 4, "██░░"},
		{0.8, 10, "████████░░"},
		{2, 3, "███"},
		{0.5, 0, ""},
	}

	for _, tt := range tests {
		if got := VolumeBar(tt.v, tt.width); got != tt.want {
			t.Errorf("VolumeBar(%v, %d) = %q, want %q", tt.v, tt.width, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.8); got != "80%" {
		t.Fatalf("Percent(0.8) = %q", got)
	}
	if got := Percent(0.35); got != "35%" {
		t.Fatalf("Percent(0.35) = %q", got)
	}
}
