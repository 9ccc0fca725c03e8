package handler

import (
	"context"
	"net/http"

	"catering-bot/internal/models"
	"catering-bot/internal/repository"
	"catering-bot/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// welcomeText - приветствие новым участникам разговора.
const welcomeText = "Hello and welcome! Type any message to begin placing a lunch order."

// BotHandler - диспетчер ходов: разбирает входящее activity, прогоняет его
// через валидацию и стейт-машину и ровно один раз коммитит состояние сессии
// после обработчика - независимо от исхода хода.
type BotHandler struct {
	service  *service.CateringService
	sessions repository.SessionStateRepository
	logger   *zap.Logger
}

// NewBotHandler создает новый BotHandler.
func NewBotHandler(svc *service.CateringService, sessions repository.SessionStateRepository, logger *zap.Logger) *BotHandler {
	return &BotHandler{
		service:  svc,
		sessions: sessions,
		logger:   logger.Named("BotHandler"),
	}
}

// RegisterRoutes регистрирует эндпоинт бота.
func (h *BotHandler) RegisterRoutes(router *gin.Engine, middlewares ...gin.HandlerFunc) {
	handlers := append(middlewares, h.handleActivity)
	router.POST("/api/messages", handlers...)
}

func (h *BotHandler) handleActivity(c *gin.Context) {
	var activity models.Activity
	if err := c.ShouldBindJSON(&activity); err != nil {
		h.logger.Warn("Malformed inbound activity", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "malformed activity"})
		return
	}

	if activity.Conversation == nil || activity.Conversation.ID == "" {
		h.logger.Warn("Inbound activity without conversation id", zap.String("type", activity.Type))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing conversation id"})
		return
	}

	ctx := c.Request.Context()
	sessionID := activity.Conversation.ID

	state, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		h.logger.Error("Failed to load session state", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "session state unavailable"})
		return
	}

	status, body := h.dispatch(ctx, state, &activity)

	// Коммит состояния после хода - ровно один раз, даже если ход упал:
	// мутация отражает выбор пользователя независимо от исхода рендера.
	if err := h.sessions.Put(ctx, state); err != nil {
		h.logger.Error("Failed to commit session state", zap.String("sessionID", sessionID), zap.Error(err))
	}

	if body == nil {
		c.Status(status)
		return
	}
	c.JSON(status, body)
}

// dispatch маршрутизирует ход по типу activity. Возвращает HTTP-статус и
// тело ответа (nil - пустое тело).
func (h *BotHandler) dispatch(ctx context.Context, state *models.OrderState, activity *models.Activity) (int, any) {
	switch activity.Type {
	case models.ActivityTypeMessage:
		return h.handleMessage(ctx, state, activity)
	case models.ActivityTypeConversationUpdate:
		return h.handleConversationUpdate(activity)
	case models.ActivityTypeInvoke:
		return h.handleInvoke(ctx, state, activity)
	default:
		h.logger.Info("Unsupported activity type", zap.String("type", activity.Type))
		return http.StatusNotImplemented, models.ErrorResponse{Error: "not implemented"}
	}
}

// handleMessage - первый (или повторный) текстовый ход: сбрасываем таймстамп
// заказа и показываем карточку Entre.
func (h *BotHandler) handleMessage(ctx context.Context, state *models.OrderState, activity *models.Activity) (int, any) {
	payload, err := h.service.BeginOrder(ctx, state, activity.ID)
	if err != nil {
		h.logger.Error("Failed to begin order",
			zap.String("sessionID", state.SessionID),
			zap.Error(err),
		)
		return http.StatusInternalServerError, models.ErrorResponse{Error: "failed to render card"}
	}
	return http.StatusOK, models.NewCardActivity(payload)
}

// handleConversationUpdate приветствует новых участников (кроме самого бота).
func (h *BotHandler) handleConversationUpdate(activity *models.Activity) (int, any) {
	for _, member := range activity.MembersAdded {
		if activity.Recipient != nil && member.ID == activity.Recipient.ID {
			continue
		}
		return http.StatusOK, models.NewTextActivity(welcomeText)
	}
	return http.StatusOK, nil
}

func (h *BotHandler) handleInvoke(ctx context.Context, state *models.OrderState, activity *models.Activity) (int, any) {
	switch activity.Name {
	case models.InvokeNameAdaptiveCardAction:
		return h.handleCardAction(ctx, state, activity)
	case models.InvokeNameSignInVerifyState, models.InvokeNameSignInTokenExchange:
		// Верификация sign-in - забота хост-платформы; подтверждаем и только.
		h.logger.Debug("Acknowledged sign-in invoke", zap.String("name", activity.Name))
		return http.StatusOK, nil
	default:
		h.logger.Info("Unsupported invoke name", zap.String("name", activity.Name))
		return http.StatusNotImplemented, nil
	}
}

// handleCardAction - основной путь: валидация invoke value, стейт-машина,
// ответ с карточкой. Ошибки валидации до машины не доходят.
func (h *BotHandler) handleCardAction(ctx context.Context, state *models.OrderState, activity *models.Activity) (int, any) {
	action, err := service.ParseInvokeValue(activity)
	if err != nil {
		return h.invokeErrorResponse(state.SessionID, err)
	}

	payload, err := h.service.HandleAction(ctx, state, action)
	if err != nil {
		return h.invokeErrorResponse(state.SessionID, err)
	}

	return http.StatusOK, models.NewInvokeCardResponse(payload)
}
