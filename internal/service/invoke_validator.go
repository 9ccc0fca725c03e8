package service

import (
	"encoding/json"
	"fmt"

	"catering-bot/internal/cards"
	"catering-bot/internal/models"
)

// ActionPayload - провалидированное card action. Теги карточек уже
// разрешены через каталог: до стейт-машины невалидный payload не доходит.
type ActionPayload struct {
	Verb        string
	CurrentCard cards.Card
	NextCard    cards.Card
	Option      string
	Custom      string
}

// ChosenValue возвращает выбор пользователя: custom, если он заполнен,
// иначе option.
func (a *ActionPayload) ChosenValue() string {
	if a.Custom != "" {
		return a.Custom
	}
	return a.Option
}

// ParseInvokeValue валидирует value invoke-события adaptiveCard/action.
// Каждое нарушение дает свою ошибку; неизвестные ключи в data допускаются
// ради forward-compatible схем карточек.
func ParseInvokeValue(activity *models.Activity) (*ActionPayload, error) {
	if len(activity.Value) == 0 || string(activity.Value) == "null" {
		return nil, models.ErrMissingValue
	}

	var value models.AdaptiveCardInvokeValue
	if err := json.Unmarshal(activity.Value, &value); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedValue, err)
	}

	if value.Action == nil {
		return nil, models.ErrMissingAction
	}

	if value.Action.Type != models.ActionTypeExecute {
		return nil, fmt.Errorf("%w: the action '%s' is not supported", models.ErrNotSupported, value.Action.Type)
	}

	data := value.Action.Data
	if data.CurrentCard == nil {
		return nil, fmt.Errorf("%w: currentCard is missing", models.ErrMalformedValue)
	}
	if data.NextCardToSend == nil {
		return nil, fmt.Errorf("%w: nextCardToSend is missing", models.ErrMalformedValue)
	}

	currentCard, err := cards.ByNumber(*data.CurrentCard)
	if err != nil {
		return nil, err
	}
	nextCard, err := cards.ByNumber(*data.NextCardToSend)
	if err != nil {
		return nil, err
	}

	return &ActionPayload{
		Verb:        value.Action.Verb,
		CurrentCard: currentCard,
		NextCard:    nextCard,
		Option:      data.Option,
		Custom:      data.Custom,
	}, nil
}
