package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"pharmacy/internal/delivery/api/response"
	domainerrors "pharmacy/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, response.ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/drugs/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError(err, c)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestHandleHTTPError_AppError(t *testing.T) {
	rec, body := handleError(t, errors.Wrap(domainerrors.DrugNotFound(5), "get drug"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "DRUG_NOT_FOUND", body.Code)
	assert.Equal(t, "Drug with id 5 was not found", body.Message)
	assert.Equal(t, "/api/drugs/5", body.Path)
	assert.Nil(t, body.ValidationErrors)
}

func TestHandleHTTPError_ValidationError(t *testing.T) {
	fields := map[string]string{"ma": "must be in format AA123456"}

	rec, body := handleError(t, domainerrors.NewValidationError("createDrugRequest", fields))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)
	assert.Equal(t, fields, body.ValidationErrors)
}

func TestHandleHTTPError_TypeMismatchNamesField(t *testing.T) {
	typeErr := &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(0.0), Field: "price"}
	bindErr := echo.NewHTTPError(http.StatusBadRequest, typeErr.Error()).SetInternal(typeErr)

	rec, body := handleError(t, bindErr)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)
	assert.Equal(t, map[string]string{"price": "must be a valid number"}, body.ValidationErrors)
}

func TestHandleHTTPError_EchoErrors(t *testing.T) {
	rec, body := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "syntax error"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", body.Code)

	rec, body = handleError(t, echo.ErrMethodNotAllowed)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", body.Code)

	rec, body = handleError(t, echo.ErrStatusRequestEntityTooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", body.Code)
}

func TestHandleHTTPError_InternalErrorsAreHidden(t *testing.T) {
	errs := []error{
		errors.New("pq: connection refused"),
		domainerrors.NewDatabaseExecuteError(errors.New("deadlock detected"), "insert drug"),
		echo.ErrInternalServerError,
	}

	for _, err := range errs {
		rec, body := handleError(t, err)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_ERROR", body.Code)
		assert.Equal(t, domainerrors.ErrInternalError.Message(), body.Message)
		assert.NotContains(t, rec.Body.String(), "deadlock")
		assert.NotContains(t, rec.Body.String(), "connection refused")
	}
}

func TestHandleHTTPError_CommittedResponseIsLeftAlone(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.NoContent(http.StatusNoContent))

	NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError(errors.New("late"), c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", statusCode(http.StatusNotFound))
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", statusCode(http.StatusUnsupportedMediaType))
	assert.Equal(t, "HTTP_ERROR", statusCode(599))
}
