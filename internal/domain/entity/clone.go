package entity

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p

	return &v
}

// Clone returns a copy that shares no memory with a.
func (a *Adventurer) Clone() *Adventurer {
	out := *a
	out.ProfilePicture = clonePtr(a.ProfilePicture)

	return &out
}

func (r *Region) Clone() *Region {
	out := *r
	out.Description = clonePtr(r.Description)
	out.Center = clonePtr(r.Center)

	return &out
}

func (l *Landmark) Clone() *Landmark {
	out := *l
	out.Location = clonePtr(l.Location)

	return &out
}

func (a *Adventure) Clone() *Adventure {
	out := *a
	out.Location = clonePtr(a.Location)

	return &out
}

func (t *Token) Clone() *Token {
	out := *t
	out.Location = clonePtr(t.Location)

	return &out
}

func (c *CompletedAdventure) Clone() *CompletedAdventure {
	out := *c

	return &out
}
