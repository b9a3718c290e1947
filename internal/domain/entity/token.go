package entity

import "cmp"

// Token is one collectible step of an adventure.
type Token struct {
	ID          int64  `json:"id"`
	AdventureID int64  `json:"adventure_id"`
	Location    *Point `json:"location,omitempty"`
	Hint        string `json:"hint"`
	TokenOrder  int    `json:"token_order"`
}

// References returns the adventure the token belongs to.
func (t *Token) References() []Reference {
	return refs(Reference{KindAdventure, t.AdventureID})
}

// Matches reports whether the token satisfies the filter.
func (t *Token) Matches(f Filter) bool {
	return matchID(f.AdventureID, t.AdventureID)
}

// CompareTokens orders tokens by collection order, then id.
func CompareTokens(a, b *Token) int {
	if c := cmp.Compare(a.TokenOrder, b.TokenOrder); c != 0 {
		return c
	}

	return cmp.Compare(a.ID, b.ID)
}
