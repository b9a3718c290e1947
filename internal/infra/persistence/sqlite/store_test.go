package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"quest/config"
	"quest/internal/domain/entity"
	domainerrors "quest/internal/domain/errors"
	"quest/internal/domain/repository"
	"quest/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, path string, resetOnInit bool) *Store {
	t.Helper()

	store, err := Open(&config.LocalStoreConfig{
		Path:         path,
		ResetOnInit:  &resetOnInit,
		BusyTimeout:  time.Second,
		MaxOpenConns: 1,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func tempStore(t *testing.T) *Store {
	t.Helper()

	return newTestStore(t, filepath.Join(t.TempDir(), "quest.db"), true)
}

func pt(x, y float64) *entity.Point {
	return &entity.Point{X: x, Y: y}
}

func sampleSnapshot() *entity.Snapshot {
	return &entity.Snapshot{
		Adventurers: []*entity.Adventurer{
			{ID: 10, Username: "ada", Password: "pw"},
			{ID: 20, Username: "grace", Password: "pw"},
		},
		Regions: []*entity.Region{
			{ID: 100, AdventurerID: 10, Name: "Harbor", Center: pt(121.5, 25.03), Radius: 500},
			{ID: 200, AdventurerID: 20, Name: "Campus", Radius: 300},
		},
		Landmarks: []*entity.Landmark{
			{ID: 1000, RegionID: 100, Name: "Lighthouse", Location: pt(121.501, 25.031)},
		},
		Adventures: []*entity.Adventure{
			{ID: 5, AdventurerID: 10, RegionID: 100, Name: "Harbor Lights", TokenCount: 2},
		},
		Tokens: []*entity.Token{
			{ID: 51, AdventureID: 5, Hint: "second", TokenOrder: 2},
			{ID: 52, AdventureID: 5, Hint: "first", TokenOrder: 1, Location: pt(121.5, 25.03)},
		},
		CompletedAdventures: []*entity.CompletedAdventure{
			{ID: 7, AdventurerID: 20, AdventureID: 5, CompletionDate: "2024-03-02", CompletionTime: "10:15:00"},
		},
	}
}

func TestStore_LazyInitAndAvailability(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()

	assert.False(t, store.IsAvailable(ctx))

	require.NoError(t, store.CreateAdventurer(ctx, &entity.Adventurer{Username: "ada", Password: "pw"}))

	assert.True(t, store.IsAvailable(ctx))
}

func TestStore_CreateAssignsIDsAndFilters(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()

	owner := &entity.Adventurer{Username: "ada", Password: "pw"}
	require.NoError(t, store.CreateAdventurer(ctx, owner))
	other := &entity.Adventurer{Username: "grace", Password: "pw"}
	require.NoError(t, store.CreateAdventurer(ctx, other))
	assert.NotZero(t, owner.ID)
	assert.Greater(t, other.ID, owner.ID)

	first := &entity.Region{AdventurerID: owner.ID, Name: "Harbor", Center: pt(1, 2), Radius: 10}
	second := &entity.Region{AdventurerID: other.ID, Name: "Campus", Radius: 20}
	require.NoError(t, store.CreateRegion(ctx, first))
	require.NoError(t, store.CreateRegion(ctx, second))

	regions, err := store.FindRegions(ctx, entity.ByAdventurer(owner.ID))
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, first, regions[0])

	all, err := store.FindRegions(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := store.FindAdventurers(ctx, entity.Filter{Username: "grace"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, other.ID, byName[0].ID)

	got, err := store.FindRegionByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Campus", got.Name)

	_, err = store.FindRegionByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestStore_PointRoundTrip(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()

	require.NoError(t, store.BulkReplace(ctx, sampleSnapshot()))

	regions, err := store.FindRegions(ctx, entity.Filter{})
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, pt(121.5, 25.03), regions[0].Center)
	assert.Nil(t, regions[1].Center)

	adventure, err := store.FindAdventureByID(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, adventure.Location)
}

func TestStore_ForeignKeyViolation(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()

	err := store.CreateRegion(ctx, &entity.Region{AdventurerID: 99, Name: "Orphan"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForeignKeyViolation)

	regions, err := store.FindRegions(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestStore_BulkReplaceIsIdempotent(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAdventurer(ctx, &entity.Adventurer{Username: "local-only", Password: "pw"}))

	require.NoError(t, store.BulkReplace(ctx, sampleSnapshot()))
	firstCounts, err := store.Counts(ctx)
	require.NoError(t, err)
	firstRegions, err := store.FindRegions(ctx, entity.Filter{})
	require.NoError(t, err)

	require.NoError(t, store.BulkReplace(ctx, sampleSnapshot()))
	secondCounts, err := store.Counts(ctx)
	require.NoError(t, err)
	secondRegions, err := store.FindRegions(ctx, entity.Filter{})
	require.NoError(t, err)

	assert.Equal(t, firstCounts, secondCounts)
	assert.Equal(t, firstRegions, secondRegions)
	assert.Equal(t, map[entity.Kind]int64{
		entity.KindAdventurer:         2,
		entity.KindRegion:             2,
		entity.KindLandmark:           1,
		entity.KindAdventure:          1,
		entity.KindToken:              2,
		entity.KindCompletedAdventure: 1,
	}, secondCounts)

	adventurers, err := store.FindAdventurers(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), adventurers[0].ID)
	assert.Equal(t, int64(20), adventurers[1].ID)
}

func TestStore_BulkReplaceRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()

	require.NoError(t, store.BulkReplace(ctx, sampleSnapshot()))
	before, err := store.Counts(ctx)
	require.NoError(t, err)

	broken := sampleSnapshot()
	broken.Tokens = append(broken.Tokens, &entity.Token{ID: 99, AdventureID: 404, Hint: "nowhere"})

	err = store.BulkReplace(ctx, broken)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForeignKeyViolation)

	after, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_UpsertSkipsFailingRows(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAdventurer(ctx, &entity.Adventurer{ID: 1, Username: "ada", Password: "pw"}))

	stored, err := store.UpsertRegions(ctx, []*entity.Region{
		{ID: 10, AdventurerID: 1, Name: "Commons"},
		{ID: 11, AdventurerID: 404, Name: "Orphan"},
		{ID: 12, Name: "Unowned"},
	})

	assert.Equal(t, 2, stored)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 rows skipped")

	stored, err = store.UpsertRegions(ctx, []*entity.Region{{ID: 10, AdventurerID: 1, Name: "Renamed"}})
	require.NoError(t, err)
	assert.Equal(t, 1, stored)

	regions, err := store.FindRegions(ctx, entity.Filter{})
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "Renamed", regions[0].Name)
	assert.Zero(t, regions[1].AdventurerID)
}

func TestStore_UpdateAdventurer(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()

	adventurer := &entity.Adventurer{Username: "ada", Password: "pw"}
	require.NoError(t, store.CreateAdventurer(ctx, adventurer))

	picture := "https://example.com/ada.png"
	adventurer.Password = "new"
	adventurer.ProfilePicture = &picture
	require.NoError(t, store.UpdateAdventurer(ctx, adventurer))

	got, err := store.FindAdventurerByID(ctx, adventurer.ID)
	require.NoError(t, err)
	assert.Equal(t, adventurer, got)

	err = store.UpdateAdventurer(ctx, &entity.Adventurer{ID: 999, Username: "ghost"})
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestStore_TokensAreOrdered(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()

	require.NoError(t, store.BulkReplace(ctx, sampleSnapshot()))

	tokens, err := store.FindTokens(ctx, entity.ByAdventure(5))
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "first", tokens[0].Hint)
	assert.Equal(t, pt(121.5, 25.03), tokens[0].Location)
	assert.Equal(t, "second", tokens[1].Hint)

	landmarks, err := store.FindLandmarks(ctx, entity.ByRegion(100))
	require.NoError(t, err)
	assert.Len(t, landmarks, 1)

	completed, err := store.FindCompletedAdventures(ctx, entity.ByAdventurer(20))
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "10:15:00", completed[0].CompletionTime)
}

func TestStore_ResetOnInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "quest.db")
	ctx := context.Background()

	first := newTestStore(t, path, true)
	require.NoError(t, first.BulkReplace(ctx, sampleSnapshot()))
	require.NoError(t, first.Close())

	kept := newTestStore(t, path, false)
	assert.True(t, kept.IsAvailable(ctx))
	require.NoError(t, kept.Close())

	reset := newTestStore(t, path, true)
	assert.False(t, reset.IsAvailable(ctx))
}

func TestStore_ReinitializesAfterMissingTable(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "quest.db"), false)
	ctx := context.Background()

	require.NoError(t, store.BulkReplace(ctx, sampleSnapshot()))
	require.NoError(t, store.db.Exec("DROP TABLE completed_adventures").Error)

	_, err := store.FindCompletedAdventures(ctx, entity.Filter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrLocalStoreFailed)

	completed, err := store.FindCompletedAdventures(ctx, entity.Filter{})
	require.NoError(t, err)
	assert.Empty(t, completed)
	assert.True(t, store.IsAvailable(ctx))
}

func TestStore_ClosedStoreFails(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()

	require.NoError(t, store.Close())

	_, err := store.FindRegions(ctx, entity.Filter{})
	assert.ErrorIs(t, err, domainerrors.ErrLocalStoreFailed)
	assert.False(t, store.IsAvailable(ctx))
	assert.NoError(t, store.Close())
}

func TestTransactionManager_RollsBack(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	ctx := context.Background()
	tm := NewTransactionManager(store)
	errAbort := errors.New("abort")

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewAdventurerRepository().CreateAdventurer(ctx, &entity.Adventurer{Username: "ada", Password: "pw"}); err != nil {
			return err
		}

		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)
	assert.False(t, store.IsAvailable(ctx))

	err = tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.NewAdventurerRepository().CreateAdventurer(ctx, &entity.Adventurer{Username: "ada", Password: "pw"})
	})
	require.NoError(t, err)
	assert.True(t, store.IsAvailable(ctx))
}
