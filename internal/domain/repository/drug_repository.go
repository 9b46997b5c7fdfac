package repository

import (
	"context"
	"errors"

	"pharmacy/internal/domain/entity"
)

var (
	// ErrDrugNotFound is returned when no drug exists for the requested key.
	ErrDrugNotFound = errors.New("drug not found")
	// ErrDrugMAExists is returned by Create when the MA number is already registered.
	ErrDrugMAExists = errors.New("drug MA number already exists")
)

// DrugRepository defines the standard operations for drug persistence.
type DrugRepository interface {
	// FindByID retrieves a single drug by its numeric key.
	FindByID(ctx context.Context, id int64) (*entity.Drug, error)

	// List returns every drug ordered by key.
	List(ctx context.Context) ([]*entity.Drug, error)

	// Create persists a new drug and fills in the generated ID and timestamp.
	Create(ctx context.Context, drug *entity.Drug) error

	// Delete removes the drug with the given key, or returns ErrDrugNotFound.
	Delete(ctx context.Context, id int64) error
}
