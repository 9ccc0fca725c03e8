package service

import (
	"context"
	"fmt"
	"time"

	"catering-bot/internal/cards"
	"catering-bot/internal/messaging"
	"catering-bot/internal/models"
	"catering-bot/internal/repository"

	"go.uber.org/zap"
)

// recentOrdersShown - сколько последних заказов попадает в карточку ReviewAll.
const recentOrdersShown = 3

// orderCreatedLayout - формат таймстампов заказов в контексте карточки.
const orderCreatedLayout = "2006-01-02 15:04:05"

// CateringService - стейт-машина диалога заказа. Сама она стадий не
// выводит: канал (по нажатой кнопке) всегда говорит, какую карточку
// показывать следующей. Задачи машины: проверить verb, применить мутацию
// текущей стадии, при необходимости сохранить заказ и собрать контекст
// рендера для следующей карточки.
type CateringService struct {
	orders    repository.LunchOrderRepository
	publisher messaging.OrderEventPublisher
	renderer  *cards.Renderer
	logger    *zap.Logger
}

// NewCateringService создает новый CateringService.
// publisher может быть nil - тогда события заказов не публикуются.
func NewCateringService(
	orders repository.LunchOrderRepository,
	publisher messaging.OrderEventPublisher,
	renderer *cards.Renderer,
	logger *zap.Logger,
) *CateringService {
	return &CateringService{
		orders:    orders,
		publisher: publisher,
		renderer:  renderer,
		logger:    logger.Named("CateringService"),
	}
}

// BeginOrder - единственный переход, который машина делает сама: первое
// обычное сообщение в сессии начинает заказ со стадии Entre. Таймстамп
// создания и correlation id перезаписываются на каждом таком сообщении.
func (s *CateringService) BeginOrder(_ context.Context, state *models.OrderState, activityID string) (map[string]any, error) {
	state.ActivityID = activityID
	state.OrderCreated = time.Now().UTC()

	return s.renderer.Render(cards.CardEntre, nil)
}

// HandleAction обрабатывает провалидированное card action: мутация по
// текущей карточке, затем рендер следующей. Мутация и рендер независимы:
// упавший рендер не откатывает уже примененный выбор пользователя.
func (s *CateringService) HandleAction(ctx context.Context, state *models.OrderState, action *ActionPayload) (map[string]any, error) {
	if action.Verb != models.OrderVerb {
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedVerb, action.Verb)
	}

	switch action.CurrentCard {
	case cards.CardEntre:
		state.Entre = action.ChosenValue()
	case cards.CardDrink:
		state.Drink = action.ChosenValue()
	case cards.CardReview:
		// Состояние сессии не очищаем: confirmation и review-all
		// после сабмита все еще читают его.
		if err := s.placeOrder(ctx, state); err != nil {
			return nil, err
		}
	}

	renderCtx, err := s.renderContext(ctx, state, action.NextCard)
	if err != nil {
		return nil, err
	}

	return s.renderer.Render(action.NextCard, renderCtx)
}

// placeOrder сохраняет накопленный заказ и публикует событие о нем.
// Ошибка публикации не роняет ход: строка заказа уже в БД.
func (s *CateringService) placeOrder(ctx context.Context, state *models.OrderState) error {
	saved, err := s.orders.Save(ctx, state.ToOrder())
	if err != nil {
		return err
	}

	s.logger.Info("Lunch order placed",
		zap.Int64("orderID", saved.ID),
		zap.String("sessionID", saved.SessionID),
		zap.String("entre", saved.Entre),
		zap.String("drink", saved.Drink),
	)

	if s.publisher != nil {
		event := messaging.OrderPlacedEvent{
			OrderID:      saved.ID,
			SessionID:    saved.SessionID,
			Entre:        saved.Entre,
			Drink:        saved.Drink,
			OrderCreated: saved.OrderCreated,
		}
		if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
			s.logger.Error("Failed to publish order placed event",
				zap.Int64("orderID", saved.ID),
				zap.Error(err),
			)
		}
	}

	return nil
}

// renderContext собирает контекст для следующей карточки: всегда текущие
// entre/drink, для ReviewAll - еще и блок последних заказов.
func (s *CateringService) renderContext(ctx context.Context, state *models.OrderState, next cards.Card) (map[string]string, error) {
	renderCtx := map[string]string{
		"entre": state.Entre,
		"drink": state.Drink,
	}

	if next == cards.CardReviewAll {
		if err := s.addRecentOrders(ctx, renderCtx); err != nil {
			return nil, err
		}
	}

	return renderCtx, nil
}

// addRecentOrders добавляет entre{1..3}/drink{1..3}/orderCreated{1..3} для
// последних заказов, новые первыми. Если заказов меньше трех, лишние слоты
// просто не заполняются - шаблон отрендерит их пустыми.
func (s *CateringService) addRecentOrders(ctx context.Context, renderCtx map[string]string) error {
	orders, err := s.orders.Recent(ctx, recentOrdersShown)
	if err != nil {
		return err
	}

	for i := 0; i < len(orders) && i < recentOrdersShown; i++ {
		slot := i + 1
		renderCtx[fmt.Sprintf("entre%d", slot)] = orders[i].Entre
		renderCtx[fmt.Sprintf("drink%d", slot)] = orders[i].Drink
		renderCtx[fmt.Sprintf("orderCreated%d", slot)] = orders[i].OrderCreated.UTC().Format(orderCreatedLayout)
	}

	return nil
}
