// Package response renders the JSON bodies returned by the API.
package response

import (
	"net/http"
	"time"

	deliverycontext "pharmacy/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`   // HTTP reason phrase
	Code             string            `json:"code"`    // Machine-readable error code, e.g. "VALIDATION_FAILED"
	Message          string            `json:"message"` // User-friendly error message
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
	Path             string            `json:"path"`
	RequestID        string            `json:"requestId"`
}

// Success writes data as the JSON body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// NoContent writes an empty 204 response.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error writes an ErrorResponse. Field errors are only reported on 400 responses.
func Error(c echo.Context, statusCode int, errorCode string, message string, validationErrors map[string]string) error {
	if statusCode != http.StatusBadRequest {
		validationErrors = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Timestamp:        time.Now().UTC(),
		Status:           statusCode,
		Error:            http.StatusText(statusCode),
		Code:             errorCode,
		Message:          message,
		ValidationErrors: validationErrors,
		Path:             c.Request().URL.Path,
		RequestID:        deliverycontext.GetRequestID(c),
	})
}
