package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"pharmacy/internal/domain/entity"
	"pharmacy/internal/domain/repository"
)

type drugRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*entity.Drug
	byMA   map[string]int64
	now    func() time.Time
}

// NewDrugRepository creates an empty in-memory repository.DrugRepository.
func NewDrugRepository() repository.DrugRepository {
	return &drugRepository{
		byID: make(map[int64]*entity.Drug),
		byMA: make(map[string]int64),
		now:  time.Now,
	}
}

func (repo *drugRepository) FindByID(_ context.Context, id int64) (*entity.Drug, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	drug, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrDrugNotFound
	}

	return cloneDrug(drug), nil
}

func (repo *drugRepository) List(_ context.Context) ([]*entity.Drug, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	drugs := make([]*entity.Drug, 0, len(repo.byID))
	for _, drug := range repo.byID {
		drugs = append(drugs, cloneDrug(drug))
	}
	slices.SortFunc(drugs, func(a, b *entity.Drug) int {
		return int(a.ID - b.ID)
	})

	return drugs, nil
}

func (repo *drugRepository) Create(ctx context.Context, drug *entity.Drug) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byMA[drug.MA]; exists {
		return repository.ErrDrugMAExists
	}

	repo.nextID++
	drug.ID = repo.nextID
	drug.CreatedAt = repo.now().UTC()

	repo.byID[drug.ID] = cloneDrug(drug)
	repo.byMA[drug.MA] = drug.ID

	return nil
}

func (repo *drugRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	drug, ok := repo.byID[id]
	if !ok {
		return repository.ErrDrugNotFound
	}

	delete(repo.byMA, drug.MA)
	delete(repo.byID, id)

	return nil
}

func cloneDrug(drug *entity.Drug) *entity.Drug {
	cloned := *drug

	return &cloned
}
