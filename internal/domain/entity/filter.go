package entity

// Filter narrows a collection read. Nil fields do not constrain the result.
// Each entity decides which fields apply to it (see the Matches methods).
type Filter struct {
	AdventurerID *int64
	RegionID     *int64
	AdventureID  *int64
	Username     string
}

// ByAdventurer returns a filter on the owning adventurer.
func ByAdventurer(id int64) Filter {
	return Filter{AdventurerID: &id}
}

// ByRegion returns a filter on the owning region.
func ByRegion(id int64) Filter {
	return Filter{RegionID: &id}
}

// ByAdventure returns a filter on the owning adventure.
func ByAdventure(id int64) Filter {
	return Filter{AdventureID: &id}
}

func matchID(want *int64, got int64) bool {
	return want == nil || *want == got
}
