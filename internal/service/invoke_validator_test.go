package service_test

import (
	"encoding/json"
	"testing"

	"catering-bot/internal/cards"
	"catering-bot/internal/models"
	"catering-bot/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeActivity(t *testing.T, value string) *models.Activity {
	t.Helper()
	return &models.Activity{
		Type:         models.ActivityTypeInvoke,
		Name:         models.InvokeNameAdaptiveCardAction,
		Conversation: &models.ConversationAccount{ID: "conv-1"},
		Value:        json.RawMessage(value),
	}
}

func TestParseInvokeValue(t *testing.T) {
	t.Run("Valid action parses and resolves cards", func(t *testing.T) {
		activity := invokeActivity(t, `{
			"action": {
				"type": "Action.Execute",
				"verb": "order",
				"data": {"currentCard": 0, "nextCardToSend": 1, "option": "Pasta", "custom": ""}
			}
		}`)

		action, err := service.ParseInvokeValue(activity)
		require.NoError(t, err)
		assert.Equal(t, "order", action.Verb)
		assert.Equal(t, cards.CardEntre, action.CurrentCard)
		assert.Equal(t, cards.CardDrink, action.NextCard)
		assert.Equal(t, "Pasta", action.ChosenValue())
	})

	t.Run("Unknown data keys are tolerated", func(t *testing.T) {
		activity := invokeActivity(t, `{
			"action": {
				"type": "Action.Execute",
				"verb": "order",
				"data": {"currentCard": 1, "nextCardToSend": 2, "option": "Tea", "futureField": "whatever"}
			}
		}`)

		action, err := service.ParseInvokeValue(activity)
		require.NoError(t, err)
		assert.Equal(t, "Tea", action.Option)
	})

	t.Run("Missing value", func(t *testing.T) {
		activity := invokeActivity(t, "")
		activity.Value = nil

		_, err := service.ParseInvokeValue(activity)
		assert.ErrorIs(t, err, models.ErrMissingValue)
	})

	t.Run("Null value", func(t *testing.T) {
		activity := invokeActivity(t, "null")

		_, err := service.ParseInvokeValue(activity)
		assert.ErrorIs(t, err, models.ErrMissingValue)
	})

	t.Run("Undecodable value", func(t *testing.T) {
		activity := invokeActivity(t, `"just a string"`)

		_, err := service.ParseInvokeValue(activity)
		assert.ErrorIs(t, err, models.ErrMalformedValue)
	})

	t.Run("Missing action", func(t *testing.T) {
		activity := invokeActivity(t, `{"action": null}`)

		_, err := service.ParseInvokeValue(activity)
		assert.ErrorIs(t, err, models.ErrMissingAction)
	})

	t.Run("Unsupported action type", func(t *testing.T) {
		activity := invokeActivity(t, `{
			"action": {"type": "Action.Submit", "verb": "order", "data": {"currentCard": 0, "nextCardToSend": 1}}
		}`)

		_, err := service.ParseInvokeValue(activity)
		assert.ErrorIs(t, err, models.ErrNotSupported)
	})

	t.Run("Missing card numbers", func(t *testing.T) {
		activity := invokeActivity(t, `{
			"action": {"type": "Action.Execute", "verb": "order", "data": {"option": "Pasta"}}
		}`)

		_, err := service.ParseInvokeValue(activity)
		assert.ErrorIs(t, err, models.ErrMalformedValue)
	})

	t.Run("Unknown card number", func(t *testing.T) {
		activity := invokeActivity(t, `{
			"action": {"type": "Action.Execute", "verb": "order", "data": {"currentCard": 0, "nextCardToSend": 9}}
		}`)

		_, err := service.ParseInvokeValue(activity)
		assert.ErrorIs(t, err, models.ErrUnknownCard)
	})

	t.Run("Custom wins over option", func(t *testing.T) {
		action := &service.ActionPayload{Option: "Coffee", Custom: "Oat Milk Latte"}
		assert.Equal(t, "Oat Milk Latte", action.ChosenValue())

		action.Custom = ""
		assert.Equal(t, "Coffee", action.ChosenValue())
	})
}
