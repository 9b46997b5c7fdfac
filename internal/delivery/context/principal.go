package context

import (
	"context"
	"log/slog"

	"pharmacy/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is the key for the authenticated caller.
const KeyPrincipal ContextKey = "principal"

// SetPrincipal attaches the authenticated caller to echo.Context and to the
// request's context.Context, and tags the request-scoped logger with it.
func SetPrincipal(c echo.Context, principal *entity.Principal) {
	c.Set(string(KeyPrincipal), principal)

	ctx := WithPrincipal(c.Request().Context(), principal)
	if logger := GetLogger(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With(slog.String("username", principal.Username)))
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	principal, ok := c.Get(string(KeyPrincipal)).(*entity.Principal)

	return principal, ok && principal != nil
}

// WithPrincipal returns a new context carrying the authenticated caller.
func WithPrincipal(ctx context.Context, principal *entity.Principal) context.Context {
	return context.WithValue(ctx, KeyPrincipal, principal)
}

// PrincipalFromContext returns the authenticated caller stored in ctx, if any.
func PrincipalFromContext(ctx context.Context) (*entity.Principal, bool) {
	principal, ok := ctx.Value(KeyPrincipal).(*entity.Principal)

	return principal, ok && principal != nil
}
