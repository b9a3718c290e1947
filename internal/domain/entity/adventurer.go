package entity

// PlaintextPasswordWarning is surfaced to end users wherever an adventurer password is accepted.
// Passwords are stored and compared in plaintext on every tier.
const PlaintextPasswordWarning = "Passwords are stored without encryption. Do not reuse a password from another service."

// Adventurer is a player account. It owns regions, adventures and completions.
type Adventurer struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Password       string  `json:"password"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// References returns nil: adventurers own rows but reference none.
func (a *Adventurer) References() []Reference {
	return nil
}

// Matches reports whether the adventurer satisfies the filter.
// AdventurerID selects by id and Username selects by exact username.
func (a *Adventurer) Matches(f Filter) bool {
	if f.Username != "" && f.Username != a.Username {
		return false
	}

	return matchID(f.AdventurerID, a.ID)
}
