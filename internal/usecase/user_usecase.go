package usecase

import (
	"context"

	"pharmacy/internal/domain/entity"
)

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Username string
	Password string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*entity.User, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	// EnsureUser creates the account unless the username already exists.
	EnsureUser(ctx context.Context, input *RegisterUserInput) (created bool, err error)
}
