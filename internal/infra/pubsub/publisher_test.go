package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"quest/config"
	"quest/internal/domain/constants"
	"quest/internal/domain/service"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEndpoint = "http://localhost:8090/events"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() *service.SyncEvent {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	return &service.SyncEvent{
		RequestID:  "req-1",
		EventID:    "evt-1",
		Success:    true,
		Counts:     map[string]int{"region": 3},
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
	}
}

func TestLocalHTTPPublisher_SendsPushEnvelope(t *testing.T) {
	t.Parallel()

	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodPost, testEndpoint, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "req-1", req.Header.Get("X-Request-Id"))

		var push PushMessage
		if err := json.NewDecoder(req.Body).Decode(&push); err != nil {
			return nil, err
		}
		assert.Equal(t, "evt-1", push.Message.MessageID)
		assert.Equal(t, "true", push.Message.Attributes["success"])
		assert.Equal(t, constants.MessageTypeSyncEvent, push.Message.Attributes[constants.AttributeMessageType])

		data, err := base64.StdEncoding.DecodeString(push.Message.Data)
		if err != nil {
			return nil, err
		}
		var event service.SyncEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return nil, err
		}
		assert.Equal(t, 3, event.Counts["region"])

		return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
	})

	publisher := newLocalHTTPPublisher(testEndpoint, &http.Client{Transport: transport}, discardLogger())

	require.NoError(t, publisher.PublishSyncEvent(context.Background(), sampleEvent()))
	assert.Equal(t, 1, transport.GetTotalCallCount())
	assert.NoError(t, publisher.Close())
}

func TestLocalHTTPPublisher_RejectsNonSuccess(t *testing.T) {
	t.Parallel()

	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodPost, testEndpoint, httpmock.NewStringResponder(http.StatusBadGateway, "down"))

	publisher := newLocalHTTPPublisher(testEndpoint, &http.Client{Transport: transport}, discardLogger())

	err := publisher.PublishSyncEvent(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewPublisher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	publisher, err := newPublisher(ctx, nil, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, publisher)
	assert.NoError(t, publisher.PublishSyncEvent(ctx, sampleEvent()))

	publisher, err = newPublisher(ctx, &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: testEndpoint}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, publisher)

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, discardLogger())
	assert.Error(t, err)

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}, discardLogger())
	assert.Error(t, err)

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: "kafka"}, discardLogger())
	assert.ErrorContains(t, err, "unknown pubsub provider")
}
