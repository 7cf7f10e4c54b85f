package stations

// Next returns the station after current in list, wrapping to the first one
// after the last. A current station that is not in the list counts as index
// -1, so Next yields the first entry. ok is false only for an empty list.
func Next(list StationList, current Station) (Station, bool) {
	n := list.Len()
	if n == 0 {
		return Station{}, false
	}
	i := list.IndexOf(current.ID)
	return list.At((i + 1) % n), true
}

// Prev returns the station before current in list, wrapping to the last one
// before the first.
func Prev(list StationList, current Station) (Station, bool) {
	n := list.Len()
	if n == 0 {
		return Station{}, false
	}
	i := list.IndexOf(current.ID)
	return list.At(((i-1)%n + n) % n), true
}
