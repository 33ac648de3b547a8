package mocks

import (
	"context"

	"github.com/Dan9191/finance-service/internal/models/events"
	"github.com/stretchr/testify/mock"
)

// MockPublisher is a testify mock of service.Publisher.
type MockPublisher struct {
	mock.Mock
}

func NewMockPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPublisher {
	m := &MockPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPublisher) Publish(ctx context.Context, event events.TransactionCreated) error {
	ret := m.Called(ctx, event)
	return ret.Error(0)
}
