package mocks

import (
	"github.com/stretchr/testify/mock"

	"tributo/internal/domain"
)

// MockPayrollService is a mock implementation of service.PayrollService.
type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) Reconcile(body []byte) (*domain.ReconciliationResult, error) {
	args := m.Called(body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationResult), args.Error(1)
}

func (m *MockPayrollService) Tolerance() string {
	args := m.Called()
	return args.String(0)
}
