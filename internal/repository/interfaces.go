package repository

import (
	"context"

	"catering-bot/internal/models"
)

// LunchOrderRepository - хранилище завершенных заказов.
// Заказы неизменяемы: только вставка и выборка последних.
type LunchOrderRepository interface {
	// Save сохраняет заказ, присваивая id (и order_created, если он нулевой).
	Save(ctx context.Context, order *models.LunchOrder) (*models.LunchOrder, error)
	// Recent возвращает до limit последних заказов, новые первыми
	// (order_created DESC, при равенстве - id DESC). Если заказов меньше
	// limit, возвращается короткий список - это не ошибка.
	Recent(ctx context.Context, limit int) ([]models.LunchOrder, error)
}

// SessionStateRepository - keyed store состояния заказа по сессиям.
// Абстракция над framework-managed user state исходной платформы.
type SessionStateRepository interface {
	// Get возвращает состояние сессии; если его нет - новое пустое состояние.
	Get(ctx context.Context, sessionID string) (*models.OrderState, error)
	// Put сохраняет состояние сессии.
	Put(ctx context.Context, state *models.OrderState) error
}
