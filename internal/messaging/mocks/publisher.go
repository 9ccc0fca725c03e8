package mocks

import (
	"context"

	"catering-bot/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// Mock OrderEventPublisher
type OrderEventPublisher struct {
	mock.Mock
}

func (m *OrderEventPublisher) PublishOrderPlaced(ctx context.Context, event messaging.OrderPlacedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
