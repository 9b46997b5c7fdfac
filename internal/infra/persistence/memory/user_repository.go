// Package memory provides process-local repositories used by the memory storage driver and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"pharmacy/internal/domain/entity"
	"pharmacy/internal/domain/repository"
)

type userRepository struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]*entity.User
	byUsername map[string]int64
	now        func() time.Time
}

// NewUserRepository creates an empty in-memory repository.UserRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:       make(map[int64]*entity.User),
		byUsername: make(map[string]int64),
		now:        time.Now,
	}
}

func (repo *userRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (repo *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byUsername[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(repo.byID[id]), nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byUsername[user.Username]; exists {
		return repository.ErrUsernameTaken
	}

	repo.nextID++
	user.ID = repo.nextID
	user.CreatedAt = repo.now().UTC()

	repo.byID[user.ID] = cloneUser(user)
	repo.byUsername[user.Username] = user.ID

	return nil
}

func cloneUser(user *entity.User) *entity.User {
	cloned := *user

	return &cloned
}
