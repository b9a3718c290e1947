package entity

// Layouts used for CompletedAdventure dates and times on every tier.
const (
	CompletionDateLayout = "2006-01-02"
	CompletionTimeLayout = "15:04:05"
)

// CompletedAdventure records that an adventurer finished an adventure.
type CompletedAdventure struct {
	ID             int64  `json:"id"`
	AdventurerID   int64  `json:"adventurer_id"`
	AdventureID    int64  `json:"adventure_id"`
	CompletionDate string `json:"completion_date"`
	CompletionTime string `json:"completion_time"`
}

// References returns the adventurer and the completed adventure.
func (c *CompletedAdventure) References() []Reference {
	return refs(Reference{KindAdventurer, c.AdventurerID}, Reference{KindAdventure, c.AdventureID})
}

// Matches reports whether the completion satisfies the filter.
func (c *CompletedAdventure) Matches(f Filter) bool {
	return matchID(f.AdventurerID, c.AdventurerID) && matchID(f.AdventureID, c.AdventureID)
}
