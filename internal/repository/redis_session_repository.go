package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catering-bot/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure redisSessionRepository implements SessionStateRepository
var _ SessionStateRepository = (*redisSessionRepository)(nil)

type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionRepository creates a new Redis-backed SessionStateRepository.
// Состояние хранится как JSON-блоб под ключом order_state:{sessionID} с TTL.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) SessionStateRepository {
	return &redisSessionRepository{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisSessionRepo"),
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("order_state:%s", sessionID)
}

// Get возвращает состояние сессии. Отсутствие ключа - не ошибка: новая
// сессия начинается с пустого состояния.
func (r *redisSessionRepository) Get(ctx context.Context, sessionID string) (*models.OrderState, error) {
	raw, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.OrderState{SessionID: sessionID}, nil
	}
	if err != nil {
		r.logger.Error("Failed to get session state from redis",
			zap.String("sessionID", sessionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: get session %s: %v", models.ErrSessionState, sessionID, err)
	}

	var state models.OrderState
	if err := json.Unmarshal(raw, &state); err != nil {
		// Испорченный блоб: логируем и начинаем сессию заново,
		// ронять ход из-за него нет смысла.
		r.logger.Warn("Corrupted session state blob, resetting session",
			zap.String("sessionID", sessionID),
			zap.Error(err),
		)
		return &models.OrderState{SessionID: sessionID}, nil
	}
	return &state, nil
}

// Put сохраняет состояние сессии, продлевая TTL.
func (r *redisSessionRepository) Put(ctx context.Context, state *models.OrderState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: marshal session %s: %v", models.ErrSessionState, state.SessionID, err)
	}

	if err := r.client.Set(ctx, sessionKey(state.SessionID), raw, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to put session state to redis",
			zap.String("sessionID", state.SessionID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: put session %s: %v", models.ErrSessionState, state.SessionID, err)
	}
	return nil
}
