package repository

import (
	"context"
	"fmt"
	"time"

	"catering-bot/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	lunchOrderFields = `id, session_id, activity_id, order_created, entre, drink`

	insertLunchOrderQuery = `
        INSERT INTO lunch_orders (session_id, activity_id, order_created, entre, drink)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, order_created
    `
	recentLunchOrdersQuery = `
        SELECT ` + lunchOrderFields + `
        FROM lunch_orders
        ORDER BY order_created DESC, id DESC
        LIMIT $1
    `
)

// Compile-time check to ensure pgLunchOrderRepository implements LunchOrderRepository
var _ LunchOrderRepository = (*pgLunchOrderRepository)(nil)

type pgLunchOrderRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  *zap.Logger
}

// NewPgLunchOrderRepository creates a new PostgreSQL-backed LunchOrderRepository.
// timeout ограничивает каждый поход в БД; зависший стор должен вернуться
// ошибкой, а не повиснуть на весь ход.
func NewPgLunchOrderRepository(pool *pgxpool.Pool, timeout time.Duration, logger *zap.Logger) LunchOrderRepository {
	return &pgLunchOrderRepository{
		pool:    pool,
		timeout: timeout,
		logger:  logger.Named("PgLunchOrderRepo"),
	}
}

// Save сохраняет завершенный заказ. Инвариант хранилища: entre и drink
// непустые у любой сохраненной записи.
func (r *pgLunchOrderRepository) Save(ctx context.Context, order *models.LunchOrder) (*models.LunchOrder, error) {
	if order.Entre == "" || order.Drink == "" {
		return nil, fmt.Errorf("%w: entre=%q drink=%q", models.ErrIncompleteOrder, order.Entre, order.Drink)
	}

	orderCreated := order.OrderCreated
	if orderCreated.IsZero() {
		orderCreated = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	saved := *order
	err := r.pool.QueryRow(ctx, insertLunchOrderQuery,
		order.SessionID,
		order.ActivityID,
		orderCreated,
		order.Entre,
		order.Drink,
	).Scan(&saved.ID, &saved.OrderCreated)
	if err != nil {
		r.logger.Error("Failed to insert lunch order",
			zap.String("sessionID", order.SessionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: insert lunch order: %v", models.ErrPersistence, err)
	}

	r.logger.Debug("Lunch order saved",
		zap.Int64("orderID", saved.ID),
		zap.String("sessionID", saved.SessionID),
	)
	return &saved, nil
}

// Recent возвращает до limit последних заказов, новые первыми.
func (r *pgLunchOrderRepository) Recent(ctx context.Context, limit int) ([]models.LunchOrder, error) {
	if limit <= 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, recentLunchOrdersQuery, limit)
	if err != nil {
		r.logger.Error("Failed to query recent lunch orders", zap.Int("limit", limit), zap.Error(err))
		return nil, fmt.Errorf("%w: query recent orders: %v", models.ErrPersistence, err)
	}
	defer rows.Close()

	orders := make([]models.LunchOrder, 0, limit)
	for rows.Next() {
		var o models.LunchOrder
		if err := rows.Scan(&o.ID, &o.SessionID, &o.ActivityID, &o.OrderCreated, &o.Entre, &o.Drink); err != nil {
			r.logger.Error("Failed to scan lunch order row", zap.Error(err))
			return nil, fmt.Errorf("%w: scan lunch order: %v", models.ErrPersistence, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Row iteration error on recent lunch orders", zap.Error(err))
		return nil, fmt.Errorf("%w: iterate recent orders: %v", models.ErrPersistence, err)
	}

	return orders, nil
}
