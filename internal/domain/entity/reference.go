package entity

// Reference names a row another row points at through a foreign key.
type Reference struct {
	Kind Kind
	ID   int64
}

func refs(pairs ...Reference) []Reference {
	out := pairs[:0]
	for _, ref := range pairs {
		if ref.ID != 0 {
			out = append(out, ref)
		}
	}

	return out
}
