package service

import (
	"context"

	"pharmacy/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockDrugCache is a mock of service.DrugCache.
type MockDrugCache struct {
	mock.Mock
}

// NewMockDrugCache creates a mock that asserts its expectations when the test ends.
func NewMockDrugCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDrugCache {
	m := &MockDrugCache{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDrugCache) Get(ctx context.Context, id int64) (*entity.Drug, bool, error) {
	args := m.Called(ctx, id)
	drug, _ := args.Get(0).(*entity.Drug)

	return drug, args.Bool(1), args.Error(2)
}

func (m *MockDrugCache) Set(ctx context.Context, drug *entity.Drug) error {
	args := m.Called(ctx, drug)

	return args.Error(0)
}

func (m *MockDrugCache) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
