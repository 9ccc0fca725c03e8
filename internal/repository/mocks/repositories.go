package mocks

import (
	"context"

	"catering-bot/internal/models"

	"github.com/stretchr/testify/mock"
)

// Mock LunchOrderRepository
type LunchOrderRepository struct {
	mock.Mock
}

func (m *LunchOrderRepository) Save(ctx context.Context, order *models.LunchOrder) (*models.LunchOrder, error) {
	args := m.Called(ctx, order)
	saved, _ := args.Get(0).(*models.LunchOrder)
	return saved, args.Error(1)
}

func (m *LunchOrderRepository) Recent(ctx context.Context, limit int) ([]models.LunchOrder, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]models.LunchOrder)
	return orders, args.Error(1)
}

// Mock SessionStateRepository
type SessionStateRepository struct {
	mock.Mock
}

func (m *SessionStateRepository) Get(ctx context.Context, sessionID string) (*models.OrderState, error) {
	args := m.Called(ctx, sessionID)
	state, _ := args.Get(0).(*models.OrderState)
	return state, args.Error(1)
}

func (m *SessionStateRepository) Put(ctx context.Context, state *models.OrderState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}
