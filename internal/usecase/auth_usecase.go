// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// LoginInput defines the credentials presented by a user logging in.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput carries the bearer token issued after a successful login.
type LoginOutput struct {
	Token string
}

// AuthUsecase exchanges credentials for a bearer token.
type AuthUsecase interface {
	// Login returns domainerrors.ErrInvalidCredentials for an unknown username
	// and for a wrong password alike.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
