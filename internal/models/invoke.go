package models

// ActionTypeExecute - единственный поддерживаемый тип card action.
const ActionTypeExecute = "Action.Execute"

// OrderVerb - единственный распознаваемый verb у карточек заказа.
const OrderVerb = "order"

// CardOptions - данные, которые карточка передает при submit'е.
// Неизвестные ключи в data допустимы (forward-compatible схемы карточек),
// поэтому структура декодируется без строгой проверки полей.
type CardOptions struct {
	NextCardToSend *int   `json:"nextCardToSend"`
	CurrentCard    *int   `json:"currentCard"`
	Option         string `json:"option"`
	Custom         string `json:"custom"`
}

// AdaptiveCardInvokeAction - вложенный объект action invoke-события.
type AdaptiveCardInvokeAction struct {
	Type string      `json:"type"`
	Verb string      `json:"verb"`
	Data CardOptions `json:"data"`
}

// AdaptiveCardInvokeValue - значение invoke-события adaptiveCard/action.
type AdaptiveCardInvokeValue struct {
	Action *AdaptiveCardInvokeAction `json:"action"`
}

// AdaptiveCardInvokeResponse - тело ответа на invoke. StatusCode дублирует
// HTTP-статус, Value - либо карточка, либо InvokeError.
type AdaptiveCardInvokeResponse struct {
	StatusCode int    `json:"statusCode"`
	Type       string `json:"type"`
	Value      any    `json:"value,omitempty"`
}

// InvokeError - стандартное тело ошибки invoke-ответа.
type InvokeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Коды ошибок, которые видит клиент.
const (
	InvokeErrorCodeBadRequest   = "BadRequest"
	InvokeErrorCodeNotSupported = "NotSupported"
	InvokeErrorCodeInternal     = "InternalError"
)

// NewInvokeErrorResponse собирает ответ-ошибку для invoke-события.
func NewInvokeErrorResponse(statusCode int, code, message string) *AdaptiveCardInvokeResponse {
	return &AdaptiveCardInvokeResponse{
		StatusCode: statusCode,
		Type:       ContentTypeInvokeError,
		Value:      InvokeError{Code: code, Message: message},
	}
}

// NewInvokeCardResponse собирает успешный ответ с карточкой.
func NewInvokeCardResponse(card any) *AdaptiveCardInvokeResponse {
	return &AdaptiveCardInvokeResponse{
		StatusCode: 200,
		Type:       ContentTypeAdaptiveCard,
		Value:      card,
	}
}
