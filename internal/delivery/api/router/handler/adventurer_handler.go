package handler

import (
	"net/http"

	"quest/internal/domain/entity"
	domainerrors "quest/internal/domain/errors"
	"quest/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdventurerHandlerParams holds dependencies for AdventurerHandler, injected by Fx.
type AdventurerHandlerParams struct {
	fx.In

	HybridUC usecase.HybridUsecase
}

// AdventurerHandler serves adventurer accounts.
type AdventurerHandler struct {
	hybridUC usecase.HybridUsecase
}

// NewAdventurerHandler is the constructor for AdventurerHandler
func NewAdventurerHandler(params AdventurerHandlerParams) *AdventurerHandler {
	return &AdventurerHandler{hybridUC: params.HybridUC}
}

// ListAdventurers handles GET /adventurers, filtered by ?username= when given.
func (h *AdventurerHandler) ListAdventurers(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	result, err := h.hybridUC.FetchAdventurers(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

// GetAdventurer handles GET /adventurers/:id
func (h *AdventurerHandler) GetAdventurer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	result, err := h.hybridUC.FetchAdventurer(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

// GetAdventurerByUsername handles GET /adventurers/by-username/:username
func (h *AdventurerHandler) GetAdventurerByUsername(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return domainerrors.ErrValidationFailed.WithDetails("username: required")
	}

	result, err := h.hybridUC.FetchAdventurerByUsername(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

// CreateAdventurer handles POST /adventurers
func (h *AdventurerHandler) CreateAdventurer(c echo.Context) error {
	var req usecase.CreateAdventurerInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.hybridUC.CreateAdventurer(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, result, entity.PlaintextPasswordWarning)
}

// UpdateAdventurer handles PUT /adventurers/:id
func (h *AdventurerHandler) UpdateAdventurer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req usecase.UpdateAdventurerInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.hybridUC.UpdateAdventurer(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result, entity.PlaintextPasswordWarning)
}
