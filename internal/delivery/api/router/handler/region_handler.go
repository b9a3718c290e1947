package handler

import (
	"net/http"

	"quest/internal/domain/entity"
	"quest/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RegionHandlerParams holds dependencies for RegionHandler, injected by Fx.
type RegionHandlerParams struct {
	fx.In

	HybridUC usecase.HybridUsecase
}

// RegionHandler serves regions and the landmarks inside them.
type RegionHandler struct {
	hybridUC usecase.HybridUsecase
}

// NewRegionHandler is the constructor for RegionHandler
func NewRegionHandler(params RegionHandlerParams) *RegionHandler {
	return &RegionHandler{hybridUC: params.HybridUC}
}

func (h *RegionHandler) ListRegions(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	result, err := h.hybridUC.FetchRegions(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

func (h *RegionHandler) GetRegion(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	result, err := h.hybridUC.FetchRegion(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

func (h *RegionHandler) CreateRegion(c echo.Context) error {
	var req usecase.CreateRegionInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.hybridUC.CreateRegion(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, result)
}

// LocateRegions handles GET /regions/locate?x=<lng>&y=<lat>
func (h *RegionHandler) LocateRegions(c echo.Context) error {
	x, err := parseCoordinate(c, "x")
	if err != nil {
		return err
	}
	y, err := parseCoordinate(c, "y")
	if err != nil {
		return err
	}

	result, err := h.hybridUC.LocateRegions(c.Request().Context(), entity.Point{X: x, Y: y})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

func (h *RegionHandler) ListLandmarks(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	result, err := h.hybridUC.FetchLandmarks(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, result)
}

func (h *RegionHandler) CreateLandmark(c echo.Context) error {
	var req usecase.CreateLandmarkInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.hybridUC.CreateLandmark(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, result)
}
