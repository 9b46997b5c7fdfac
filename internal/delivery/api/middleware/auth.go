package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "pharmacy/internal/delivery/context"
	"pharmacy/internal/domain/authz"
	"pharmacy/internal/domain/entity"
	domainerrors "pharmacy/internal/domain/errors"
	"pharmacy/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bearerScheme = "Bearer"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Rules        *authz.RuleSet
	TokenService service.TokenService
	Logger       *slog.Logger
}

// AuthMiddleware decides per request whether a bearer token is required and
// attaches the authenticated principal when one is presented.
type AuthMiddleware struct {
	rules    *authz.RuleSet
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		rules:    params.Rules,
		tokenSvc: params.TokenService,
		logger:   params.Logger,
	}
}

// Authenticate evaluates the rule set for the request. Public routes always
// proceed; a valid token on them still identifies the caller. Authenticated
// routes are rejected with TOKEN_INVALID before the handler runs unless a
// valid bearer token is presented.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		access := m.rules.Resolve(req.Method, req.URL.Path)

		token, present := bearerToken(req.Header.Get(echo.HeaderAuthorization))
		if !present {
			if access == authz.AccessPublic {
				return next(c)
			}

			return domainerrors.ErrTokenMissing
		}

		principal, err := m.authenticate(token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).Debug("Bearer token rejected",
				slog.String("path", req.URL.Path),
				slog.String("access", access.String()),
				slog.Any("reason", err),
			)

			if access == authz.AccessPublic {
				return next(c)
			}

			return errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
		}

		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

func (m *AuthMiddleware) authenticate(token string) (*entity.Principal, error) {
	claims, err := m.tokenSvc.Validate(token)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.Wrap(service.ErrTokenMalformed, "token has no subject")
	}

	return &entity.Principal{
		Username: claims.Subject,
		UserID:   claims.UserID,
	}, nil
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>"
// header. Other schemes count as no token at all.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	return strings.TrimSpace(token), true
}

// GetPrincipal returns the caller attached by Authenticate.
func GetPrincipal(c echo.Context) (*entity.Principal, bool) {
	return deliverycontext.GetPrincipal(c)
}
