package handler

import (
	"net/http"

	"quest/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdventureHandlerParams holds dependencies for AdventureHandler, injected by Fx.
type AdventureHandlerParams struct {
	fx.In

	HybridUC usecase.HybridUsecase
}

// AdventureHandler serves adventures, their tokens and completions.
type AdventureHandler struct {
	hybridUC usecase.HybridUsecase
}

// NewAdventureHandler is the constructor for AdventureHandler
func NewAdventureHandler(params AdventureHandlerParams) *AdventureHandler {
	return &AdventureHandler{hybridUC: params.HybridUC}
}

func (h *AdventureHandler) ListAdventures(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	result, err := h.hybridUC.FetchAdventures(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

func (h *AdventureHandler) GetAdventure(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	result, err := h.hybridUC.FetchAdventure(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

func (h *AdventureHandler) CreateAdventure(c echo.Context) error {
	var req usecase.CreateAdventureInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.hybridUC.CreateAdventure(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, result)
}

// ListTokens returns tokens in collection order.
func (h *AdventureHandler) ListTokens(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	result, err := h.hybridUC.FetchTokens(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

func (h *AdventureHandler) CreateToken(c echo.Context) error {
	var req usecase.CreateTokenInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.hybridUC.CreateToken(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, result)
}

func (h *AdventureHandler) ListCompletedAdventures(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	result, err := h.hybridUC.FetchCompletedAdventures(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

// CreateCompletedAdventure records a completion; date and time default to now.
func (h *AdventureHandler) CreateCompletedAdventure(c echo.Context) error {
	var req usecase.CreateCompletedAdventureInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.hybridUC.CreateCompletedAdventure(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, result)
}
