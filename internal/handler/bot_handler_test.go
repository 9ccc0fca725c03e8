package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catering-bot/internal/cards"
	"catering-bot/internal/handler"
	"catering-bot/internal/models"
	"catering-bot/internal/repository"
	repositoryMocks "catering-bot/internal/repository/mocks"
	"catering-bot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testBot struct {
	router     *gin.Engine
	mockOrders *repositoryMocks.LunchOrderRepository
	sessions   repository.SessionStateRepository
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()

	mockOrders := new(repositoryMocks.LunchOrderRepository)
	sessions := repository.NewMemorySessionRepository()
	svc := service.NewCateringService(mockOrders, nil, cards.NewRenderer(zap.NewNop()), zap.NewNop())
	botHandler := handler.NewBotHandler(svc, sessions, zap.NewNop())

	router := gin.New()
	botHandler.RegisterRoutes(router)

	return &testBot{router: router, mockOrders: mockOrders, sessions: sessions}
}

func (b *testBot) post(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	return w
}

func invokeBody(value any) map[string]any {
	body := map[string]any{
		"type":         models.ActivityTypeInvoke,
		"name":         models.InvokeNameAdaptiveCardAction,
		"id":           "act-1",
		"conversation": map[string]any{"id": "conv-1"},
	}
	if value != nil {
		body["value"] = value
	}
	return body
}

func decodeInvokeResponse(t *testing.T, w *httptest.ResponseRecorder) (string, map[string]any) {
	t.Helper()
	var resp struct {
		StatusCode int            `json:"statusCode"`
		Type       string         `json:"type"`
		Value      map[string]any `json:"value"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, w.Code, resp.StatusCode)
	return resp.Type, resp.Value
}

func TestMessageTurn(t *testing.T) {
	bot := newTestBot(t)

	w := bot.post(t, map[string]any{
		"type":         models.ActivityTypeMessage,
		"id":           "act-1",
		"text":         "lunch please",
		"conversation": map[string]any{"id": "conv-1"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var reply models.Activity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, models.ActivityTypeMessage, reply.Type)
	require.Len(t, reply.Attachments, 1)
	assert.Equal(t, models.ContentTypeAdaptiveCard, reply.Attachments[0].ContentType)

	// Состояние закоммичено: таймстамп заказа проставлен
	state, err := bot.sessions.Get(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "act-1", state.ActivityID)
	assert.False(t, state.OrderCreated.IsZero())
}

func TestConversationUpdateTurn(t *testing.T) {
	bot := newTestBot(t)

	w := bot.post(t, map[string]any{
		"type":         models.ActivityTypeConversationUpdate,
		"conversation": map[string]any{"id": "conv-1"},
		"recipient":    map[string]any{"id": "bot-id"},
		"membersAdded": []map[string]any{{"id": "user-1"}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var reply models.Activity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Contains(t, reply.Text, "welcome")
}

func TestInvokeTurn(t *testing.T) {
	t.Run("Full entre selection turn", func(t *testing.T) {
		bot := newTestBot(t)

		w := bot.post(t, invokeBody(map[string]any{
			"action": map[string]any{
				"type": "Action.Execute",
				"verb": "order",
				"data": map[string]any{"currentCard": 0, "nextCardToSend": 1, "option": "Pasta"},
			},
		}))

		require.Equal(t, http.StatusOK, w.Code)
		contentType, card := decodeInvokeResponse(t, w)
		assert.Equal(t, models.ContentTypeAdaptiveCard, contentType)
		assert.Equal(t, "drink-options", card["card"])

		state, err := bot.sessions.Get(context.Background(), "conv-1")
		require.NoError(t, err)
		assert.Equal(t, "Pasta", state.Entre)
	})

	t.Run("Missing value: 400, no mutation, no store call", func(t *testing.T) {
		bot := newTestBot(t)

		w := bot.post(t, invokeBody(nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
		contentType, errValue := decodeInvokeResponse(t, w)
		assert.Equal(t, models.ContentTypeInvokeError, contentType)
		assert.Equal(t, models.InvokeErrorCodeBadRequest, errValue["code"])

		state, err := bot.sessions.Get(context.Background(), "conv-1")
		require.NoError(t, err)
		assert.Empty(t, state.Entre)
		assert.Empty(t, state.Drink)
		bot.mockOrders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Unsupported action type: NotSupported, machine unreached", func(t *testing.T) {
		bot := newTestBot(t)

		w := bot.post(t, invokeBody(map[string]any{
			"action": map[string]any{
				"type": "Action.Submit",
				"verb": "order",
				"data": map[string]any{"currentCard": 0, "nextCardToSend": 1, "option": "Pasta"},
			},
		}))

		require.Equal(t, http.StatusBadRequest, w.Code)
		_, errValue := decodeInvokeResponse(t, w)
		assert.Equal(t, models.InvokeErrorCodeNotSupported, errValue["code"])

		// Мутации не было
		state, err := bot.sessions.Get(context.Background(), "conv-1")
		require.NoError(t, err)
		assert.Empty(t, state.Entre)
	})

	t.Run("Review submit persists the order", func(t *testing.T) {
		bot := newTestBot(t)
		created := time.Now().UTC()
		require.NoError(t, bot.sessions.Put(context.Background(), &models.OrderState{
			SessionID:    "conv-1",
			OrderCreated: created,
			Entre:        "Pasta",
			Drink:        "Oat Milk Latte",
		}))

		bot.mockOrders.On("Save", mock.Anything, mock.MatchedBy(func(order *models.LunchOrder) bool {
			return order.Entre == "Pasta" && order.Drink == "Oat Milk Latte"
		})).Return(&models.LunchOrder{
			ID: 1, SessionID: "conv-1", OrderCreated: created,
			Entre: "Pasta", Drink: "Oat Milk Latte",
		}, nil).Once()

		w := bot.post(t, invokeBody(map[string]any{
			"action": map[string]any{
				"type": "Action.Execute",
				"verb": "order",
				"data": map[string]any{"currentCard": 2, "nextCardToSend": 4},
			},
		}))

		require.Equal(t, http.StatusOK, w.Code)
		_, card := decodeInvokeResponse(t, w)
		assert.Equal(t, "confirmation", card["card"])
		bot.mockOrders.AssertExpectations(t)
	})

	t.Run("Persistence failure: 500, mutation still committed", func(t *testing.T) {
		bot := newTestBot(t)
		require.NoError(t, bot.sessions.Put(context.Background(), &models.OrderState{
			SessionID: "conv-1", Entre: "Pasta", Drink: "Tea",
		}))

		bot.mockOrders.On("Save", mock.Anything, mock.Anything).
			Return(nil, models.ErrPersistence).Once()

		w := bot.post(t, invokeBody(map[string]any{
			"action": map[string]any{
				"type": "Action.Execute",
				"verb": "order",
				"data": map[string]any{"currentCard": 2, "nextCardToSend": 4},
			},
		}))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		_, errValue := decodeInvokeResponse(t, w)
		assert.Equal(t, models.InvokeErrorCodeInternal, errValue["code"])
		bot.mockOrders.AssertExpectations(t)
	})

	t.Run("Sign-in invokes are acknowledged", func(t *testing.T) {
		bot := newTestBot(t)

		body := invokeBody(nil)
		body["name"] = models.InvokeNameSignInVerifyState

		w := bot.post(t, body)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown invoke name: 501", func(t *testing.T) {
		bot := newTestBot(t)

		body := invokeBody(nil)
		body["name"] = "composeExtension/query"

		w := bot.post(t, body)
		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})
}

func TestUnsupportedActivityType(t *testing.T) {
	bot := newTestBot(t)

	w := bot.post(t, map[string]any{
		"type":         "typing",
		"conversation": map[string]any{"id": "conv-1"},
	})

	assert.Equal(t, http.StatusNotImplemented, w.Code)
	bot.mockOrders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMissingConversation(t *testing.T) {
	bot := newTestBot(t)

	w := bot.post(t, map[string]any{"type": models.ActivityTypeMessage})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "conversation")
}
