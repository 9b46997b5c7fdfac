package context

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharmacy/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestRequestID(t *testing.T) {
	c := newTestContext()

	generated := GetRequestID(c)
	assert.NotEmpty(t, generated)

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))
	assert.Equal(t, "req-1", GetRequestIDFromContext(c.Request().Context()))
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
}

func TestPrincipal(t *testing.T) {
	c := newTestContext()

	_, ok := GetPrincipal(c)
	assert.False(t, ok)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c.SetRequest(c.Request().WithContext(WithLogger(c.Request().Context(), logger)))

	SetPrincipal(c, &entity.Principal{Username: "alice", UserID: 7})

	principal, ok := GetPrincipal(c)
	require.True(t, ok)
	assert.Equal(t, "alice", principal.Username)

	fromCtx, ok := PrincipalFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Equal(t, int64(7), fromCtx.UserID)

	GetLogger(c.Request().Context()).Info("hello")
	assert.Contains(t, buf.String(), "username=alice")
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.Default()
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))

	scoped := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}
