package service

import (
	"context"

	"pharmacy/internal/domain/entity"
)

// DrugCache is a read-through cache in front of the drug repository.
// A miss is reported with found == false and a nil error.
type DrugCache interface {
	Get(ctx context.Context, id int64) (drug *entity.Drug, found bool, err error)
	Set(ctx context.Context, drug *entity.Drug) error
	Delete(ctx context.Context, id int64) error
}
