package entity

// Landmark is a named place inside a region.
type Landmark struct {
	ID       int64  `json:"id"`
	RegionID int64  `json:"region_id"`
	Name     string `json:"name"`
	Location *Point `json:"location,omitempty"`
}

// References returns the enclosing region.
func (l *Landmark) References() []Reference {
	return refs(Reference{KindRegion, l.RegionID})
}

// Matches reports whether the landmark satisfies the filter.
func (l *Landmark) Matches(f Filter) bool {
	return matchID(f.RegionID, l.RegionID)
}
