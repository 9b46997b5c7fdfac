package service

import (
	"pharmacy/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock that asserts its expectations when the test ends.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Issue(subject string, userID int64) (string, error) {
	args := m.Called(subject, userID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(token string) (*service.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *MockTokenService) Verify(token string) bool {
	args := m.Called(token)

	return args.Bool(0)
}

func (m *MockTokenService) ExtractSubject(token string) string {
	args := m.Called(token)

	return args.String(0)
}
