// Package handler contains the HTTP handlers for the API.
package handler

import (
	"net/http"
	"strconv"

	"pharmacy/internal/delivery/api/response"
	domainerrors "pharmacy/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving requests.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// bindAndValidate decodes the JSON body into req and runs the registered validator.
// Decoding and validation failures are returned unchanged for the error handler.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}

	return c.Validate(req)
}

// pathID parses the numeric :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.NewValidationError("path", map[string]string{"id": "must be a positive integer"})
	}

	return id, nil
}
