// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the orchestrator and the embedded local store.
package repository

import (
	"context"

	"quest/internal/domain/entity"
	"quest/internal/errors"
)

// ErrRecordNotFound is returned by single-row lookups that match nothing.
var ErrRecordNotFound = errors.New("record not found")

// AdventurerRepository defines the local persistence operations for adventurers.
type AdventurerRepository interface {
	// FindAdventurers returns every adventurer matching the filter, ordered by id.
	FindAdventurers(ctx context.Context, filter entity.Filter) ([]*entity.Adventurer, error)

	// FindAdventurerByID returns ErrRecordNotFound when no row has the id.
	FindAdventurerByID(ctx context.Context, id int64) (*entity.Adventurer, error)

	// CreateAdventurer inserts the adventurer. A zero ID is assigned by the store.
	CreateAdventurer(ctx context.Context, adventurer *entity.Adventurer) error

	// UpdateAdventurer overwrites the stored row with the same ID.
	UpdateAdventurer(ctx context.Context, adventurer *entity.Adventurer) error

	// UpsertAdventurers writes rows keyed by their existing IDs and returns how many were stored.
	UpsertAdventurers(ctx context.Context, adventurers []*entity.Adventurer) (int, error)
}

// RegionRepository defines the local persistence operations for regions.
type RegionRepository interface {
	FindRegions(ctx context.Context, filter entity.Filter) ([]*entity.Region, error)
	FindRegionByID(ctx context.Context, id int64) (*entity.Region, error)
	CreateRegion(ctx context.Context, region *entity.Region) error
	UpsertRegions(ctx context.Context, regions []*entity.Region) (int, error)
}

// LandmarkRepository defines the local persistence operations for landmarks.
type LandmarkRepository interface {
	FindLandmarks(ctx context.Context, filter entity.Filter) ([]*entity.Landmark, error)
	CreateLandmark(ctx context.Context, landmark *entity.Landmark) error
	UpsertLandmarks(ctx context.Context, landmarks []*entity.Landmark) (int, error)
}

// AdventureRepository defines the local persistence operations for adventures.
type AdventureRepository interface {
	FindAdventures(ctx context.Context, filter entity.Filter) ([]*entity.Adventure, error)
	FindAdventureByID(ctx context.Context, id int64) (*entity.Adventure, error)
	CreateAdventure(ctx context.Context, adventure *entity.Adventure) error
	UpsertAdventures(ctx context.Context, adventures []*entity.Adventure) (int, error)
}

// TokenRepository defines the local persistence operations for tokens.
// Reads are ordered by token order, then id.
type TokenRepository interface {
	FindTokens(ctx context.Context, filter entity.Filter) ([]*entity.Token, error)
	CreateToken(ctx context.Context, token *entity.Token) error
	UpsertTokens(ctx context.Context, tokens []*entity.Token) (int, error)
}

// CompletedAdventureRepository defines the local persistence operations for completions.
type CompletedAdventureRepository interface {
	FindCompletedAdventures(ctx context.Context, filter entity.Filter) ([]*entity.CompletedAdventure, error)
	CreateCompletedAdventure(ctx context.Context, completed *entity.CompletedAdventure) error
	UpsertCompletedAdventures(ctx context.Context, completed []*entity.CompletedAdventure) (int, error)
}

// SnapshotRepository covers whole-store operations.
type SnapshotRepository interface {
	// BulkReplace truncates all six tables and reinserts the snapshot in dependency
	// order, preserving the provided IDs.
	BulkReplace(ctx context.Context, snapshot *entity.Snapshot) error

	// IsAvailable reports whether the store is initialized and holds at least one adventurer.
	IsAvailable(ctx context.Context) bool

	// Counts returns the row count of every table.
	Counts(ctx context.Context) (map[entity.Kind]int64, error)
}

// LocalStore is the full embedded mirror of the remote entities.
type LocalStore interface {
	AdventurerRepository
	RegionRepository
	LandmarkRepository
	AdventureRepository
	TokenRepository
	CompletedAdventureRepository
	SnapshotRepository
}
