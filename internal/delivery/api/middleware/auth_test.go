package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "pharmacy/internal/delivery/context"
	"pharmacy/internal/domain/authz"
	domainerrors "pharmacy/internal/domain/errors"
	"pharmacy/internal/domain/service"
	mockservice "pharmacy/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	middleware *AuthMiddleware
	tokens     *mockservice.MockTokenService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	rules, err := authz.DefaultRules(true)
	require.NoError(t, err)

	tokens := mockservice.NewMockTokenService(t)

	return &authFixture{
		middleware: NewAuthMiddleware(AuthMiddlewareParams{
			Rules:        rules,
			TokenService: tokens,
			Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		}),
		tokens: tokens,
	}
}

// run sends one request through Authenticate and reports whether the handler ran.
func (f *authFixture) run(method, path, authorization string) (bool, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := f.middleware.Authenticate(func(c echo.Context) error {
		called = true

		return nil
	})(c)

	return called, c, err
}

func validClaims() *service.Claims {
	claims := &service.Claims{UserID: 7}
	claims.Subject = "alice"

	return claims
}

func TestAuthenticate_PublicRouteWithoutToken(t *testing.T) {
	f := newAuthFixture(t)

	called, c, err := f.run(http.MethodGet, "/api/drugs", "")

	require.NoError(t, err)
	assert.True(t, called)
	_, ok := deliverycontext.GetPrincipal(c)
	assert.False(t, ok)
}

func TestAuthenticate_ProtectedRouteWithoutToken(t *testing.T) {
	f := newAuthFixture(t)

	for _, header := range []string{"", "Basic YWxpY2U6c2VjcmV0", "Bearer"} {
		called, _, err := f.run(http.MethodPost, "/api/drugs", header)

		assert.False(t, called, header)
		assert.ErrorIs(t, err, domainerrors.ErrTokenMissing, header)
	}
}

func TestAuthenticate_ValidTokenAttachesPrincipal(t *testing.T) {
	f := newAuthFixture(t)
	f.tokens.On("Validate", "good-token").Return(validClaims(), nil).Once()

	called, c, err := f.run(http.MethodPost, "/api/drugs", "Bearer good-token")

	require.NoError(t, err)
	assert.True(t, called)

	principal, ok := deliverycontext.GetPrincipal(c)
	require.True(t, ok)
	assert.Equal(t, "alice", principal.Username)
	assert.Equal(t, int64(7), principal.UserID)

	fromCtx, ok := deliverycontext.PrincipalFromContext(c.Request().Context())
	require.True(t, ok)
	assert.Equal(t, principal, fromCtx)
}

func TestAuthenticate_InvalidTokenOnProtectedRoute(t *testing.T) {
	causes := []error{
		service.ErrTokenMalformed,
		service.ErrTokenSignatureInvalid,
		service.ErrTokenExpired,
	}

	for _, cause := range causes {
		t.Run(cause.Error(), func(t *testing.T) {
			f := newAuthFixture(t)
			f.tokens.On("Validate", "bad-token").Return(nil, cause).Once()

			called, _, err := f.run(http.MethodDelete, "/api/drugs/1", "Bearer bad-token")

			assert.False(t, called)
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
			assert.Equal(t, "TOKEN_INVALID", appErr.ErrorCode())
		})
	}
}

func TestAuthenticate_TokenWithoutSubjectIsRejected(t *testing.T) {
	f := newAuthFixture(t)
	f.tokens.On("Validate", "anonymous").Return(&service.Claims{UserID: 1}, nil).Once()

	called, _, err := f.run(http.MethodGet, "/api/users/me", "Bearer anonymous")

	assert.False(t, called)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthenticate_InvalidTokenOnPublicRouteIsIgnored(t *testing.T) {
	f := newAuthFixture(t)
	f.tokens.On("Validate", "bad-token").Return(nil, service.ErrTokenExpired).Once()

	called, c, err := f.run(http.MethodGet, "/api/drugs/3", "Bearer bad-token")

	require.NoError(t, err)
	assert.True(t, called)
	_, ok := deliverycontext.GetPrincipal(c)
	assert.False(t, ok)
}

func TestAuthenticate_PreflightIsPublic(t *testing.T) {
	f := newAuthFixture(t)

	called, _, err := f.run(http.MethodOptions, "/api/users/1", "")

	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthenticate_UnknownRouteRequiresToken(t *testing.T) {
	f := newAuthFixture(t)

	called, _, err := f.run(http.MethodGet, "/admin/stats", "")

	assert.False(t, called)
	assert.ErrorIs(t, err, domainerrors.ErrTokenMissing)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		token   string
		present bool
	}{
		{header: "Bearer abc.def.ghi", token: "abc.def.ghi", present: true},
		{header: "bearer abc", token: "abc", present: true},
		{header: "  Bearer   abc  ", token: "abc", present: true},
		{header: "Bearer", present: false},
		{header: "Basic abc", present: false},
		{header: "", present: false},
	}

	for _, tt := range tests {
		token, present := bearerToken(tt.header)
		assert.Equal(t, tt.present, present, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}
