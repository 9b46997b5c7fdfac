package repository

import (
	"context"

	"pharmacy/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockDrugRepository is a mock of repository.DrugRepository.
type MockDrugRepository struct {
	mock.Mock
}

// NewMockDrugRepository creates a mock that asserts its expectations when the test ends.
func NewMockDrugRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDrugRepository {
	m := &MockDrugRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDrugRepository) FindByID(ctx context.Context, id int64) (*entity.Drug, error) {
	args := m.Called(ctx, id)
	drug, _ := args.Get(0).(*entity.Drug)

	return drug, args.Error(1)
}

func (m *MockDrugRepository) List(ctx context.Context) ([]*entity.Drug, error) {
	args := m.Called(ctx)
	drugs, _ := args.Get(0).([]*entity.Drug)

	return drugs, args.Error(1)
}

func (m *MockDrugRepository) Create(ctx context.Context, drug *entity.Drug) error {
	args := m.Called(ctx, drug)

	return args.Error(0)
}

func (m *MockDrugRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
