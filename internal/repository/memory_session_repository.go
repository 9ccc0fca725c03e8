package repository

import (
	"context"
	"sync"

	"catering-bot/internal/models"
)

// Compile-time check to ensure memorySessionRepository implements SessionStateRepository
var _ SessionStateRepository = (*memorySessionRepository)(nil)

// memorySessionRepository - in-memory реализация для тестов и запуска без Redis.
// Ходы одной сессии транспорт сериализует, но сессии разные ходят параллельно,
// поэтому карта под мьютексом.
type memorySessionRepository struct {
	mu     sync.RWMutex
	states map[string]models.OrderState
}

// NewMemorySessionRepository creates a new in-memory SessionStateRepository.
func NewMemorySessionRepository() SessionStateRepository {
	return &memorySessionRepository{states: make(map[string]models.OrderState)}
}

func (r *memorySessionRepository) Get(_ context.Context, sessionID string) (*models.OrderState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if state, ok := r.states[sessionID]; ok {
		copied := state
		return &copied, nil
	}
	return &models.OrderState{SessionID: sessionID}, nil
}

func (r *memorySessionRepository) Put(_ context.Context, state *models.OrderState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state.SessionID] = *state
	return nil
}
