package stations

import (
	"fmt"
	"testing"
)

func testList(n int) StationList {
	items := make([]Station, n)
	for i := range items {
		items[i] = Station{
			ID:        fmt.Sprintf("id-%d", i),
			Name:      fmt.Sprintf("Station %d", i),
			StreamURL: fmt.Sprintf("http://stream.example/%d", i),
			CoverURL:  PlaceholderCover(),
		}
	}
	return NewStationList("jazz", items...)
}

func TestNextWraps(t *testing.T) {
	list := NewStationList("jazz",
		Station{ID: "A"},
		Station{ID: "B"},
		Station{ID: "C"},
	)

	got, ok := Next(list, Station{ID: "B"})
	if !ok || got.ID != "C" {
		t.Fatalf("Next(B) = %q, %v, want C", got.ID, ok)
	}

	got, ok = Next(list, got)
	if !ok || got.ID != "A" {
		t.Fatalf("Next(C) = %q, %v, want A", got.ID, ok)
	}
}

func TestPrevWraps(t *testing.T) {
	list := NewStationList("jazz",
		Station{ID: "A"},
		Station{ID: "B"},
		Station{ID: "C"},
	)

	got, _ := Prev(list, Station{ID: "A"})
	if got.ID != "C" {
		t.Fatalf("Prev(A) = %q, want C", got.ID)
	}

	got, _ = Prev(list, Station{ID: "C"})
	if got.ID != "B" {
		t.Fatalf("Prev(C) = %q, want B", got.ID)
	}
}

func TestNavigationUnknownCurrent(t *testing.T) {
	list := testList(4)

	got, ok := Next(list, Station{ID: "missing"})
	if !ok || got.ID != "id-0" {
		t.Fatalf("Next(missing) = %q, want id-0", got.ID)
	}

	got, ok = Prev(list, Station{ID: "missing"})
	if !ok || got.ID != "id-2" {
		t.Fatalf("Prev(missing) = %q, want id-2", got.ID)
	}

	single := testList(1)
	got, _ = Prev(single, Station{ID: "missing"})
	if got.ID != "id-0" {
		t.Fatalf("Prev(missing) on single list = %q, want id-0", got.ID)
	}
}

func TestNavigationEmptyList(t *testing.T) {
	if _, ok := Next(StationList{}, Station{ID: "A"}); ok {
		t.Fatal("Next on empty list returned ok")
	}
	if _, ok := Prev(StationList{}, Station{ID: "A"}); ok {
		t.Fatal("Prev on empty list returned ok")
	}
}

func TestNavigationCycleClosure(t *testing.T) {
	for n := 1; n <= 7; n++ {
		list := testList(n)
		for start := 0; start < n; start++ {
			origin := list.At(start)

			cur := origin
			for i := 0; i < n; i++ {
				cur, _ = Next(list, cur)
			}
			if !cur.Same(origin) {
				t.Fatalf("n=%d start=%d: %d x Next = %q, want %q", n, start, n, cur.ID, origin.ID)
			}

			cur = origin
			for i := 0; i < n; i++ {
				cur, _ = Prev(list, cur)
			}
			if !cur.Same(origin) {
				t.Fatalf("n=%d start=%d: %d x Prev = %q, want %q", n, start, n, cur.ID, origin.ID)
			}
		}
	}
}

func TestNavigationInverse(t *testing.T) {
	for n := 1; n <= 6; n++ {
		list := testList(n)
		for _, s := range list.Stations() {
			next, _ := Next(list, s)
			back, _ := Prev(list, next)
			if !back.Same(s) {
				t.Fatalf("n=%d: Prev(Next(%q)) = %q", n, s.ID, back.ID)
			}

			prev, _ := Prev(list, s)
			fwd, _ := Next(list, prev)
			if !fwd.Same(s) {
				t.Fatalf("n=%d: Next(Prev(%q)) = %q", n, s.ID, fwd.ID)
			}
		}
	}
}
