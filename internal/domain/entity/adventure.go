package entity

// Adventure is a hunt laid out inside a region. Its tokens are collected in order.
type Adventure struct {
	ID           int64  `json:"id"`
	AdventurerID int64  `json:"adventurer_id"`
	RegionID     int64  `json:"region_id"`
	Name         string `json:"name"`
	TokenCount   int    `json:"token_count"`
	Location     *Point `json:"location,omitempty"`
}

// References returns the owner and the region, owner first.
func (a *Adventure) References() []Reference {
	return refs(Reference{KindAdventurer, a.AdventurerID}, Reference{KindRegion, a.RegionID})
}

// Matches reports whether the adventure satisfies the filter.
func (a *Adventure) Matches(f Filter) bool {
	return matchID(f.AdventurerID, a.AdventurerID) &&
		matchID(f.RegionID, a.RegionID) &&
		matchID(f.AdventureID, a.ID)
}
