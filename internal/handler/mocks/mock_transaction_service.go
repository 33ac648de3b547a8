package mocks

import (
	"context"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockTransactionService is a testify mock of handler.TransactionService.
type MockTransactionService struct {
	mock.Mock
}

func NewMockTransactionService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionService {
	m := &MockTransactionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	ret := m.Called(ctx)

	var r0 []models.Transaction
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Transaction)
	}
	return r0, ret.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	ret := m.Called(ctx, t)
	return ret.Error(0)
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	ret := m.Called(ctx, id)

	var r0 *models.Transaction
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Transaction)
	}
	return r0, ret.Error(1)
}

func (m *MockTransactionService) CheckDatabase(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}
