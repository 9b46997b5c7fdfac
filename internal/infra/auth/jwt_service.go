package auth

import (
	"time"

	"pharmacy/config"
	"pharmacy/internal/domain/service"
	"pharmacy/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretLength = 32

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Secret and validity are copied at construction and never change afterwards.
type jwtService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg == nil || cfg.Auth == nil {
		return nil, errors.New("auth configuration must be provided")
	}

	return newJWTService(cfg.Auth.Token.Secret, cfg.Auth.Token.Validity, time.Now)
}

func newJWTService(secret string, validity time.Duration, now func() time.Time) (*jwtService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if len(secret) < minSecretLength {
		return nil, errors.Errorf("jwt secret must be at least %d bytes", minSecretLength)
	}
	if validity <= 0 {
		return nil, errors.New("jwt validity must be positive")
	}

	return &jwtService{
		secret:   []byte(secret),
		validity: validity,
		now:      now,
		// Registered claims are checked by hand after the signature so the
		// two failure causes stay distinguishable.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithStrictDecoding(),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Issue creates a signed token whose subject is the username.
func (s *jwtService) Issue(subject string, userID int64) (string, error) {
	issuedAt := s.now()
	claims := &service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,                                      // Subject (who the token is for)
			IssuedAt:  jwt.NewNumericDate(issuedAt),                 // Issued At
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.validity)), // Expiration Time
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate parses the token, verifies the signature and then the expiration.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenUnverifiable) {
			return nil, errors.Wrap(service.ErrTokenSignatureInvalid, err.Error())
		}

		return nil, errors.Wrap(service.ErrTokenMalformed, err.Error())
	}

	if claims.ExpiresAt == nil || !s.now().Before(claims.ExpiresAt.Time) {
		return nil, errors.WithStack(service.ErrTokenExpired)
	}

	return claims, nil
}

// Verify reports whether the token is currently valid.
func (s *jwtService) Verify(tokenString string) bool {
	_, err := s.Validate(tokenString)

	return err == nil
}

// ExtractSubject returns the subject of a token without re-checking it.
// Callers must Verify first.
func (s *jwtService) ExtractSubject(tokenString string) string {
	claims := &service.Claims{}
	if _, _, err := s.parser.ParseUnverified(tokenString, claims); err != nil {
		return ""
	}

	return claims.Subject
}
