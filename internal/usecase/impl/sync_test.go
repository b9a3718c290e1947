package impl

import (
	"context"
	"net/http"
	"testing"

	"quest/internal/domain/entity"
	domainerrors "quest/internal/domain/errors"
	"quest/internal/domain/service"
	"quest/internal/errors"
	"quest/internal/usecase"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registerRemoteSnapshot(transport *httpmock.MockTransport, failing string) {
	bodies := map[string]string{
		endpointAdventurers:         `[{"id":1,"username":"ada","password":"pw"},{"id":2,"username":"lin","password":"pw"}]`,
		endpointRegions:             `[{"id":10,"adventurer_id":1,"name":"Commons","center":{"x":121.5,"y":25.0},"radius":300}]`,
		endpointLandmarks:           `[{"id":100,"region_id":10,"name":"Clock Tower"}]`,
		endpointAdventures:          `[{"id":5,"adventurer_id":1,"region_id":10,"name":"Bells","token_count":1}]`,
		endpointTokens:              `[{"id":50,"adventure_id":5,"hint":"listen","token_order":1}]`,
		endpointCompletedAdventures: `[{"id":7,"adventurer_id":2,"adventure_id":5,"completion_date":"2026-01-02","completion_time":"08:00:00"}]`,
	}

	for endpoint, body := range bodies {
		status := http.StatusOK
		if endpoint == failing {
			status, body = http.StatusInternalServerError, `{"error":"boom"}`
		}
		transport.RegisterResponder(http.MethodGet, testRemoteURL+endpoint, httpmock.NewStringResponder(status, body))
	}
}

func TestHybridService_FullSync_ReplacesLocalStore(t *testing.T) {
	t.Parallel()

	f := createTestHybridService(t)
	seedLocal(t, f)
	registerRemoteSnapshot(f.transport, "")

	f.publisher.EXPECT().
		PublishSyncEvent(mock.Anything, mock.MatchedBy(func(event *service.SyncEvent) bool {
			return event.Success && event.EventID != "" && event.Counts["token"] == 1
		})).
		Return(nil).
		Once()

	assert.Nil(t, f.service.GetLastSyncTime())

	result := f.service.FullSync(context.Background())

	require.True(t, result.Success, result.Error)
	assert.Equal(t, map[entity.Kind]int{
		entity.KindAdventurer:         2,
		entity.KindRegion:             1,
		entity.KindLandmark:           1,
		entity.KindAdventure:          1,
		entity.KindToken:              1,
		entity.KindCompletedAdventure: 1,
	}, result.Counts)

	counts, err := f.store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[entity.KindAdventurer])
	assert.Empty(t, mustFindRegions(t, f, entity.ByRegion(410)))

	last := f.service.GetLastSyncTime()
	require.NotNil(t, last)
	assert.Equal(t, result.FinishedAt, *last)
}

func TestHybridService_FullSync_AllOrNothing(t *testing.T) {
	t.Parallel()

	f := createTestHybridService(t)
	seedLocal(t, f)
	registerRemoteSnapshot(f.transport, endpointTokens)

	before, err := f.store.Counts(context.Background())
	require.NoError(t, err)

	f.publisher.EXPECT().
		PublishSyncEvent(mock.Anything, mock.MatchedBy(func(event *service.SyncEvent) bool {
			return !event.Success && event.Error != ""
		})).
		Return(errors.New("topic gone")).
		Once()

	result := f.service.FullSync(context.Background())

	assert.False(t, result.Success)
	require.ErrorIs(t, result.Err, domainerrors.ErrSyncFailed)
	assert.Contains(t, result.Error, "token")
	assert.Nil(t, f.service.GetLastSyncTime())

	after, err := f.store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, mustFindRegions(t, f, entity.ByRegion(410)), 1)
}

func TestHybridService_FullSync_RejectsConcurrentRun(t *testing.T) {
	t.Parallel()

	f := createTestHybridService(t)
	f.service.syncMu.Lock()
	defer f.service.syncMu.Unlock()

	result := f.service.FullSync(context.Background())

	assert.False(t, result.Success)
	require.ErrorIs(t, result.Err, domainerrors.ErrSyncInProgress)
	assert.Zero(t, f.transport.GetTotalCallCount())
}

func TestHybridService_GetStatus(t *testing.T) {
	t.Parallel()

	t.Run("all tiers up", func(t *testing.T) {
		t.Parallel()

		f := createTestHybridService(t)
		seedLocal(t, f)
		f.transport.RegisterResponder(http.MethodGet, testRemoteURL+"/health",
			httpmock.NewStringResponder(http.StatusOK, `{"status":"ok"}`))

		status := f.service.GetStatus(context.Background())

		assert.Equal(t, &usecase.Status{Remote: true, Local: true, Fixture: true}, status)
	})

	t.Run("only fixture", func(t *testing.T) {
		t.Parallel()

		f := createTestHybridService(t)

		status := f.service.GetStatus(context.Background())

		assert.Equal(t, &usecase.Status{Remote: false, Local: false, Fixture: true}, status)
	})
}

func mustFindRegions(t *testing.T, f hybridFixtures, filter entity.Filter) []*entity.Region {
	t.Helper()

	regions, err := f.store.FindRegions(context.Background(), filter)
	require.NoError(t, err)

	return regions
}
