package usecase

import (
	"context"

	"pharmacy/internal/domain/entity"
)

// DrugUsecase defines the catalog operations exposed to the delivery layer.
type DrugUsecase interface {
	GetDrug(ctx context.Context, id int64) (*entity.Drug, error)
	ListDrugs(ctx context.Context) ([]*entity.Drug, error)
	// CreateDrug fills default descriptive texts and persists the drug.
	CreateDrug(ctx context.Context, drug *entity.Drug) (*entity.Drug, error)
	DeleteDrug(ctx context.Context, id int64) error
}
