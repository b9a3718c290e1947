package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quest/config"
	"quest/internal/delivery/api/router"
	"quest/internal/delivery/api/router/handler"
	deliverycontext "quest/internal/delivery/context"
	workerhandler "quest/internal/delivery/worker/handler"
	"quest/internal/domain/entity"
	"quest/internal/infra/fixture"
	"quest/internal/infra/metrics"
	"quest/internal/infra/persistence/sqlite"
	"quest/internal/infra/remote"
	mockService "quest/internal/mocks/service"
	"quest/internal/usecase"
	"quest/internal/usecase/impl"

	"github.com/jarcoal/httpmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

const testRemoteURL = "https://remote.test/api"

type apiFixtures struct {
	echo      *echo.Echo
	store     *sqlite.Store
	transport *httpmock.MockTransport
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string   `json:"request_id"`
		Warnings  []string `json:"warnings"`
	} `json:"meta"`
}

func newTestAPI(t *testing.T) apiFixtures {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Remote: &config.RemoteConfig{
			BaseURL:       testRemoteURL,
			Timeout:       time.Second,
			ProbeEndpoint: "/health",
			ProbeTimeout:  time.Second,
		},
		LocalStore: &config.LocalStoreConfig{
			Path:         filepath.Join(t.TempDir(), "quest.db"),
			BusyTimeout:  time.Second,
			MaxOpenConns: 1,
		},
		Replication: &config.ReplicationConfig{QueueSize: 16, Workers: 1, WriteTimeout: time.Second},
		Sync:        &config.SyncConfig{Timeout: 5 * time.Second},
		Metrics:     &config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	cfg.Env.Env = "local"
	cfg.HTTP.MaxRequestBodySize = "100KB"

	store, err := sqlite.Open(cfg.LocalStore, logger, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	registry := metrics.NewRegistry()
	hybridMetrics, err := metrics.NewHybridMetrics(registry)
	require.NoError(t, err)

	lc := fxtest.NewLifecycle(t)
	replicator := impl.NewReplicator(impl.ReplicatorParams{
		Lifecycle: lc,
		Config:    cfg,
		Logger:    logger,
		Metrics:   hybridMetrics,
	})
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	transport := httpmock.NewMockTransport()
	client := remote.NewClient(cfg.Remote, logger, remote.WithHTTPClient(&http.Client{Transport: transport}))

	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().PublishSyncEvent(mock.Anything, mock.Anything).Return(nil).Maybe()

	hybridUC := impl.NewHybridService(impl.HybridServiceParams{
		Config:     cfg,
		Logger:     logger,
		Remote:     client,
		Local:      store,
		TxManager:  sqlite.NewTransactionManager(store),
		Fixture:    fixture.New(),
		Publisher:  publisher,
		Metrics:    hybridMetrics,
		Replicator: replicator,
	})

	e := newEcho(cfg, logger, router.RouterParams{
		AdventurerHandler: handler.NewAdventurerHandler(handler.AdventurerHandlerParams{HybridUC: hybridUC}),
		RegionHandler:     handler.NewRegionHandler(handler.RegionHandlerParams{HybridUC: hybridUC}),
		AdventureHandler:  handler.NewAdventureHandler(handler.AdventureHandlerParams{HybridUC: hybridUC}),
		SyncHandler:       handler.NewSyncHandler(handler.SyncHandlerParams{HybridUC: hybridUC}),
		PushHandler: workerhandler.NewPushHandler(workerhandler.PushHandlerParams{
			Config:   cfg,
			Logger:   logger,
			HybridUC: hybridUC,
		}),
		Registry: registry,
		Config:   cfg,
	})

	return apiFixtures{echo: e, store: store, transport: transport}
}

func (f apiFixtures) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func TestAPI_ListRegionsFallsBackToFixture(t *testing.T) {
	t.Parallel()

	f := newTestAPI(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/regions?adventurer_id=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fixture", rec.Header().Get(deliverycontext.HeaderXDataSource))
	assert.NotEmpty(t, env.Meta.RequestID)
	assert.Equal(t, env.Meta.RequestID, rec.Header().Get(deliverycontext.HeaderXRequestID))

	var result struct {
		Data []struct {
			ID           int64 `json:"id"`
			AdventurerID int64 `json:"adventurer_id"`
		} `json:"data"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "fixture", result.Source)
	require.NotEmpty(t, result.Data)
	for _, region := range result.Data {
		assert.Equal(t, int64(1), region.AdventurerID)
	}
}

func TestAPI_GetAdventurerByUsername(t *testing.T) {
	t.Parallel()

	f := newTestAPI(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/adventurers/by-username/cartographer", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fixture", rec.Header().Get(deliverycontext.HeaderXDataSource))
	var result struct {
		Data struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, int64(2), result.Data.ID)

	rec, env = f.do(t, http.MethodGet, "/api/v1/adventurers/by-username/nobody", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ADVENTURER_NOT_FOUND", env.Error.Code)
}

func TestAPI_RequestIDIsEchoed(t *testing.T) {
	t.Parallel()

	f := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()

	f.echo.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Contains(t, rec.Body.String(), `"request_id":"req-123"`)
}

func TestAPI_CreateAdventurer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantSource string
	}{
		{
			name:       "stored locally while remote fails",
			body:       `{"username":"ivy","password":"pw"}`,
			wantStatus: http.StatusCreated,
			wantSource: "local",
		},
		{
			name:       "missing username",
			body:       `{"password":"pw"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newTestAPI(t)
			f.transport.RegisterResponder(http.MethodPost, testRemoteURL+"/adventurers",
				httpmock.NewStringResponder(http.StatusInternalServerError, `{"error":"boom"}`))

			rec, env := f.do(t, http.MethodPost, "/api/v1/adventurers", tt.body)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantCode != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantCode, env.Error.Code)

				return
			}
			assert.Equal(t, tt.wantSource, rec.Header().Get(deliverycontext.HeaderXDataSource))
			assert.Equal(t, []string{entity.PlaintextPasswordWarning}, env.Meta.Warnings)
		})
	}
}

func TestAPI_UpdateAdventurer_WarnsAboutPlaintextPassword(t *testing.T) {
	t.Parallel()

	f := newTestAPI(t)
	require.NoError(t, f.store.BulkReplace(context.Background(), &entity.Snapshot{
		Adventurers: []*entity.Adventurer{{ID: 5, Username: "ivy", Password: "pw"}},
	}))
	f.transport.RegisterResponder(http.MethodPut, testRemoteURL+"/adventurers/5",
		httpmock.NewStringResponder(http.StatusInternalServerError, `{"error":"boom"}`))

	rec, env := f.do(t, http.MethodPut, "/api/v1/adventurers/5", `{"password":"new-pw"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "local", rec.Header().Get(deliverycontext.HeaderXDataSource))
	assert.Equal(t, []string{entity.PlaintextPasswordWarning}, env.Meta.Warnings)
}

func TestAPI_ReadsCarryNoWarnings(t *testing.T) {
	t.Parallel()

	f := newTestAPI(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/regions", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, env.Meta.Warnings)
	assert.NotContains(t, rec.Body.String(), "warnings")
}

func TestAPI_ValidationDetailsNameFields(t *testing.T) {
	t.Parallel()

	f := newTestAPI(t)

	rec, env := f.do(t, http.MethodPost, "/api/v1/regions", `{"adventurer_id":1,"name":"Park","radius":-5}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "center: required")
	assert.Contains(t, env.Error.Details, "radius: gt=0")
}

func TestAPI_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		closeStore bool
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown adventurer",
			method:     http.MethodGet,
			target:     "/api/v1/adventurers/9999",
			wantStatus: http.StatusNotFound,
			wantCode:   "ADVENTURER_NOT_FOUND",
		},
		{
			name:       "unknown adventure",
			method:     http.MethodGet,
			target:     "/api/v1/adventures/9999",
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "non numeric id",
			method:     http.MethodGet,
			target:     "/api/v1/regions/abc",
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "non numeric filter",
			method:     http.MethodGet,
			target:     "/api/v1/tokens?adventure_id=x",
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "local rejects dangling reference",
			method:     http.MethodPost,
			target:     "/api/v1/tokens",
			body:       `{"adventure_id":4242,"hint":"nowhere","token_order":1}`,
			wantStatus: http.StatusConflict,
			wantCode:   "FOREIGN_KEY_VIOLATION",
		},
		{
			name:       "both tiers down",
			method:     http.MethodPost,
			target:     "/api/v1/landmarks",
			body:       `{"region_id":1,"name":"Fountain"}`,
			closeStore: true,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "ALL_TIERS_FAILED",
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			target:     "/api/v1/unknown",
			wantStatus: http.StatusNotFound,
			wantCode:   "HTTP_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newTestAPI(t)
			if tt.closeStore {
				require.NoError(t, f.store.Close())
			}

			rec, env := f.do(t, tt.method, tt.target, tt.body)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestAPI_LocateRegions(t *testing.T) {
	t.Parallel()

	f := newTestAPI(t)
	rec, env := f.do(t, http.MethodGet, "/api/v1/regions/locate?x=121.5090&y=25.0330", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var result usecase.Result[[]struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}]
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Old Harbor", result.Data[0].Name)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/regions/locate?x=east", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_SyncEndpoints(t *testing.T) {
	t.Parallel()

	f := newTestAPI(t)

	rec, env := f.do(t, http.MethodGet, "/api/v1/sync/last", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"last_sync":null}`, string(env.Data))

	rec, env = f.do(t, http.MethodPost, "/api/v1/sync", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SYNC_FAILED", env.Error.Code)

	rec, env = f.do(t, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"remote":false,"local":false,"fixture":true}`, string(env.Data))
}

func TestAPI_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	f := newTestAPI(t)
	f.do(t, http.MethodGet, "/api/v1/landmarks", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `quest_requests_served_total{entity="landmark",operation="read",source="fixture"} 1`)
	assert.Contains(t, rec.Body.String(), `quest_tier_failures_total{entity="landmark",tier="remote"} 1`)
}
