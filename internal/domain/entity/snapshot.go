package entity

// Snapshot is a complete copy of all six collections, used by full sync.
type Snapshot struct {
	Adventurers         []*Adventurer
	Regions             []*Region
	Landmarks           []*Landmark
	Adventures          []*Adventure
	Tokens              []*Token
	CompletedAdventures []*CompletedAdventure
}

// Counts returns the number of rows per kind.
func (s *Snapshot) Counts() map[Kind]int {
	return map[Kind]int{
		KindAdventurer:         len(s.Adventurers),
		KindRegion:             len(s.Regions),
		KindLandmark:           len(s.Landmarks),
		KindAdventure:          len(s.Adventures),
		KindToken:              len(s.Tokens),
		KindCompletedAdventure: len(s.CompletedAdventures),
	}
}
