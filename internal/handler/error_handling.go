package handler

import (
	"errors"
	"net/http"

	"catering-bot/internal/models"

	"go.uber.org/zap"
)

// invokeErrorResponse - единственное место, где ошибки хода превращаются в
// invoke-ответ и запись в лог. Ничего не глотаем: каждая ветка логирует.
func (h *BotHandler) invokeErrorResponse(sessionID string, err error) (int, any) {
	sessionField := zap.String("sessionID", sessionID)

	switch {
	case errors.Is(err, models.ErrMissingValue),
		errors.Is(err, models.ErrMalformedValue),
		errors.Is(err, models.ErrMissingAction):
		h.logger.Warn("Invalid invoke payload", sessionField, zap.Error(err))
		return http.StatusBadRequest,
			models.NewInvokeErrorResponse(http.StatusBadRequest, models.InvokeErrorCodeBadRequest, err.Error())

	case errors.Is(err, models.ErrIncompleteOrder):
		h.logger.Warn("Order submitted before both fields were chosen", sessionField, zap.Error(err))
		return http.StatusBadRequest,
			models.NewInvokeErrorResponse(http.StatusBadRequest, models.InvokeErrorCodeBadRequest, err.Error())

	case errors.Is(err, models.ErrUnknownCard):
		// Клиенту это BadRequest, но расхождение тега с каталогом - дефект,
		// поэтому в лог уходит как ошибка.
		h.logger.Error("Card number does not match the catalog", sessionField, zap.Error(err))
		return http.StatusBadRequest,
			models.NewInvokeErrorResponse(http.StatusBadRequest, models.InvokeErrorCodeBadRequest, err.Error())

	case errors.Is(err, models.ErrNotSupported),
		errors.Is(err, models.ErrUnsupportedVerb):
		h.logger.Warn("Unsupported action", sessionField, zap.Error(err))
		return http.StatusBadRequest,
			models.NewInvokeErrorResponse(http.StatusBadRequest, models.InvokeErrorCodeNotSupported, err.Error())

	case errors.Is(err, models.ErrMalformedTemplate):
		h.logger.Error("Card template failure", sessionField, zap.Error(err))
		return http.StatusInternalServerError,
			models.NewInvokeErrorResponse(http.StatusInternalServerError, models.InvokeErrorCodeInternal, "an internal error occurred")

	case errors.Is(err, models.ErrPersistence):
		h.logger.Error("Order storage failure", sessionField, zap.Error(err))
		return http.StatusInternalServerError,
			models.NewInvokeErrorResponse(http.StatusInternalServerError, models.InvokeErrorCodeInternal, "an internal error occurred")

	default:
		h.logger.Error("Unhandled turn error", sessionField, zap.Error(err))
		return http.StatusInternalServerError,
			models.NewInvokeErrorResponse(http.StatusInternalServerError, models.InvokeErrorCodeInternal, "an internal error occurred")
	}
}
