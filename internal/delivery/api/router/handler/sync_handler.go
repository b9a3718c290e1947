package handler

import (
	"net/http"
	"time"

	"quest/internal/delivery/api/response"
	"quest/internal/usecase"
	"quest/internal/util"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SyncHandlerParams holds dependencies for SyncHandler, injected by Fx.
type SyncHandlerParams struct {
	fx.In

	HybridUC usecase.HybridUsecase
}

// SyncHandler exposes full sync and tier health.
type SyncHandler struct {
	hybridUC usecase.HybridUsecase
	now      func() time.Time
}

// NewSyncHandler is the constructor for SyncHandler
func NewSyncHandler(params SyncHandlerParams) *SyncHandler {
	return &SyncHandler{
		hybridUC: params.HybridUC,
		now:      time.Now,
	}
}

// LastSyncResponse describes the most recent successful sync.
type LastSyncResponse struct {
	LastSync *time.Time `json:"last_sync"`
	Age      string     `json:"age,omitempty"`
}

// FullSync handles POST /sync. A failed sync is reported through its own error code.
func (h *SyncHandler) FullSync(c echo.Context) error {
	result := h.hybridUC.FullSync(c.Request().Context())
	if !result.Success {
		return result.Err
	}

	return response.Success(c, http.StatusOK, result)
}

// GetLastSync handles GET /sync/last
func (h *SyncHandler) GetLastSync(c echo.Context) error {
	last := h.hybridUC.GetLastSyncTime()

	resp := LastSyncResponse{LastSync: last}
	if last != nil {
		resp.Age = util.FormatDuration(h.now().Sub(*last))
	}

	return response.Success(c, http.StatusOK, resp)
}

// GetStatus handles GET /status
func (h *SyncHandler) GetStatus(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.hybridUC.GetStatus(c.Request().Context()))
}
