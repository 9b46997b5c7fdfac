// Package middleware contains the API-specific echo middleware.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"pharmacy/internal/delivery/api/response"
	deliverycontext "pharmacy/internal/delivery/context"
	domainerrors "pharmacy/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is the echo.HTTPErrorHandler. Domain errors keep their status
// and code; anything unexpected becomes a generic 500.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		_ = response.Error(c, validationErr.HTTPCode(), validationErr.ErrorCode(), validationErr.Message(), validationErr.Fields())

		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.internalError(c, err)

			return
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), nil)

		return
	}

	// A JSON value of the wrong type names the offending field.
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fieldErr := domainerrors.NewValidationError("request", map[string]string{
			typeErr.Field: "must be a valid " + jsonKind(typeErr.Type.Kind().String()),
		})
		_ = response.Error(c, fieldErr.HTTPCode(), fieldErr.ErrorCode(), fieldErr.Message(), fieldErr.Fields())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			m.internalError(c, err)

			return
		}

		code := statusCode(httpErr.Code)
		message := http.StatusText(httpErr.Code)
		if httpErr.Code == http.StatusBadRequest {
			code = domainerrors.ErrInvalidInput.ErrorCode()
			message = domainerrors.ErrInvalidInput.Message()
		}
		_ = response.Error(c, httpErr.Code, code, message, nil)

		return
	}

	m.internalError(c, err)
}

func (m *ErrorMiddleware) internalError(c echo.Context, err error) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.Error(c, http.StatusInternalServerError,
		domainerrors.ErrInternalError.ErrorCode(), domainerrors.ErrInternalError.Message(), nil)
}

// statusCode turns a status into an error code, e.g. 404 -> NOT_FOUND.
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "HTTP_ERROR"
	}

	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
}

func jsonKind(kind string) string {
	switch {
	case strings.HasPrefix(kind, "float"), strings.HasPrefix(kind, "int"), strings.HasPrefix(kind, "uint"):
		return "number"
	case kind == "bool":
		return "boolean"
	case kind == "slice", kind == "array":
		return "array"
	case kind == "struct", kind == "map":
		return "object"
	default:
		return kind
	}
}
