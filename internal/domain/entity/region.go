package entity

// Region is a circular play area owned by an adventurer.
type Region struct {
	ID           int64   `json:"id"`
	AdventurerID int64   `json:"adventurer_id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Center       *Point  `json:"center"`
	Radius       float64 `json:"radius"` // meters
}

// References returns the owning adventurer.
func (r *Region) References() []Reference {
	return refs(Reference{KindAdventurer, r.AdventurerID})
}

// Matches reports whether the region satisfies the filter.
func (r *Region) Matches(f Filter) bool {
	return matchID(f.AdventurerID, r.AdventurerID) && matchID(f.RegionID, r.ID)
}

// Contains reports whether p lies within the region's circle.
// A region without a center contains nothing.
func (r *Region) Contains(p Point) bool {
	if r.Center == nil {
		return false
	}

	return r.Center.DistanceTo(p) <= r.Radius
}
