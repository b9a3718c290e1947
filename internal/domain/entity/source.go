package entity

// Source identifies the tier that produced a result.
type Source string

const (
	// SourceRemote means the remote HTTP service answered.
	SourceRemote Source = "remote"
	// SourceLocal means the embedded local store answered.
	SourceLocal Source = "local"
	// SourceFixture means the static fixture data answered.
	SourceFixture Source = "fixture"
)

// String returns the string representation of the Source.
func (s Source) String() string {
	return string(s)
}

// Kind names one of the six mirrored entity collections.
type Kind string

const (
	KindAdventurer         Kind = "adventurer"
	KindRegion             Kind = "region"
	KindLandmark           Kind = "landmark"
	KindAdventure          Kind = "adventure"
	KindToken              Kind = "token"
	KindCompletedAdventure Kind = "completed_adventure"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// Kinds lists every entity kind in dependency order: parents before children.
func Kinds() []Kind {
	return []Kind{
		KindAdventurer,
		KindRegion,
		KindLandmark,
		KindAdventure,
		KindToken,
		KindCompletedAdventure,
	}
}
