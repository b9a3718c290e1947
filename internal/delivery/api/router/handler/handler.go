// Package handler exposes the hybrid usecase over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"quest/internal/delivery/api/response"
	deliverycontext "quest/internal/delivery/context"
	"quest/internal/domain/entity"
	domainerrors "quest/internal/domain/errors"
	"quest/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// respond writes a tiered result and names its tier in X-Data-Source.
func respond[T any](c echo.Context, statusCode int, result *usecase.Result[T], warnings ...string) error {
	deliverycontext.SetDataSource(c, result.Source.String())

	return response.Success(c, statusCode, result, warnings...)
}

// bindAndValidate decodes the JSON body into req and checks its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return c.Validate(req)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("id: must be a positive integer")
	}

	return id, nil
}

// parseFilter reads adventurer_id, region_id, adventure_id and username from the query.
func parseFilter(c echo.Context) (entity.Filter, error) {
	var filter entity.Filter

	ids := []struct {
		param string
		dst   **int64
	}{
		{"adventurer_id", &filter.AdventurerID},
		{"region_id", &filter.RegionID},
		{"adventure_id", &filter.AdventureID},
	}
	for _, id := range ids {
		raw := c.QueryParam(id.param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return entity.Filter{}, domainerrors.ErrValidationFailed.WithDetails(id.param + ": must be an integer")
		}
		*id.dst = &value
	}
	filter.Username = c.QueryParam("username")

	return filter, nil
}

func parseCoordinate(c echo.Context, name string) (float64, error) {
	value, err := strconv.ParseFloat(c.QueryParam(name), 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails(name + ": must be a number")
	}

	return value, nil
}
