// Package handler receives Pub/Sub push requests for the sync worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"quest/config"
	deliverycontext "quest/internal/delivery/context"
	"quest/internal/domain/constants"
	domainerrors "quest/internal/domain/errors"
	"quest/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// SyncRequest is the optional JSON payload of a push message asking for a full sync.
type SyncRequest struct {
	RequestID string `json:"request_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// tokenValidator checks a Google-signed push token against an audience.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler runs a full sync for each push message it receives
type PushHandler struct {
	verifyPushAuth bool
	validateToken  tokenValidator
	logger         *slog.Logger
	hybridUC       usecase.HybridUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	HybridUC usecase.HybridUsecase
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Google push requests carry a signed token outside of development
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop &&
		params.Config.Env.Env != constants.EnvLocal

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		validateToken:  idtoken.Validate,
		logger:         params.Logger,
		hybridUC:       params.HybridUC,
	}
}

// HandlePush acknowledges with 200 unless a retry could succeed, in which case it
// answers 503 so Pub/Sub redelivers.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	if pushMsg.Message.Attributes[constants.AttributeMessageType] == constants.MessageTypeSyncEvent {
		h.logger.Debug("[Worker] Ignoring sync event", slog.String("message_id", pushMsg.Message.MessageID))

		return c.NoContent(http.StatusOK)
	}

	var req SyncRequest
	if pushMsg.Message.Data != "" {
		data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
		if err != nil {
			h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

			return c.NoContent(http.StatusBadRequest)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			h.logger.Error("[Worker] Failed to parse sync request", slog.Any("error", err))

			return c.NoContent(http.StatusBadRequest)
		}
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &req)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Sync requested",
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.String("reason", req.Reason),
	)

	result := h.hybridUC.FullSync(ctx)
	switch {
	case result.Success:
		return c.NoContent(http.StatusOK)
	case errors.Is(result.Err, domainerrors.ErrSyncInProgress):
		// The running sync serves this request too.
		return c.NoContent(http.StatusOK)
	default:
		reqLogger.Warn("[Worker] Requested sync failed, asking for redelivery", slog.String("error", result.Error))

		return c.NoContent(http.StatusServiceUnavailable)
	}
}

// extractRequestID prefers message attributes, then the payload, then the incoming request.
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, req *SyncRequest) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if req.RequestID != "" {
		return req.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := h.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
