package service

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Reasons a token is rejected. The policy gate logs them but answers every
// case with the same unauthorized response.
var (
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token is expired")
)

// Claims defines the custom claims for the JWT tokens.
// Subject carries the username.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue signs a token for the given subject and numeric user key.
	Issue(subject string, userID int64) (string, error)

	// Validate checks signature first and expiration second, returning the
	// claims or one of the ErrToken* reasons.
	Validate(tokenString string) (*Claims, error)

	// Verify reports whether the token has a valid signature and has not expired.
	Verify(tokenString string) bool

	// ExtractSubject returns the subject claim. Only meaningful after Verify succeeded.
	ExtractSubject(tokenString string) string
}
