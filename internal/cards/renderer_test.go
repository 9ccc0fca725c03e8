package cards_test

import (
	"testing"

	"catering-bot/internal/cards"
	"catering-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestByNumber(t *testing.T) {
	t.Run("All five cards resolve", func(t *testing.T) {
		expected := map[int]cards.Card{
			0: cards.CardEntre,
			1: cards.CardDrink,
			2: cards.CardReview,
			3: cards.CardReviewAll,
			4: cards.CardConfirmation,
		}
		for number, want := range expected {
			card, err := cards.ByNumber(number)
			require.NoError(t, err)
			assert.Equal(t, want, card)
			assert.Equal(t, number, card.Number())
		}
	})

	t.Run("Out of range number fails loudly", func(t *testing.T) {
		for _, number := range []int{-1, 5, 42} {
			_, err := cards.ByNumber(number)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrUnknownCard)
		}
	})
}

func TestRender(t *testing.T) {
	renderer := cards.NewRenderer(zap.NewNop())

	t.Run("Entre card renders without context", func(t *testing.T) {
		payload, err := renderer.Render(cards.CardEntre, nil)
		require.NoError(t, err)
		assert.Equal(t, "entre-options", payload["card"])
		assert.NotEmpty(t, payload["choices"])
	})

	t.Run("All five templates parse with an empty context", func(t *testing.T) {
		all := []cards.Card{
			cards.CardEntre,
			cards.CardDrink,
			cards.CardReview,
			cards.CardReviewAll,
			cards.CardConfirmation,
		}
		for _, card := range all {
			payload, err := renderer.Render(card, map[string]string{})
			require.NoError(t, err, "card %s", card)
			assert.NotEmpty(t, payload, "card %s", card)
		}
	})

	t.Run("Context values are substituted", func(t *testing.T) {
		payload, err := renderer.Render(cards.CardReview, map[string]string{
			"entre": "Pasta",
			"drink": "Tea",
		})
		require.NoError(t, err)
		assert.Equal(t, "Pasta", payload["entre"])
		assert.Equal(t, "Tea", payload["drink"])
	})

	t.Run("Unresolved variables render as empty strings", func(t *testing.T) {
		// История всего из одного заказа: слоты 2 и 3 должны остаться пустыми,
		// а не уронить рендер.
		payload, err := renderer.Render(cards.CardReviewAll, map[string]string{
			"entre1":        "Steak",
			"drink1":        "Coffee",
			"orderCreated1": "2026-08-28 12:00:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "Steak", payload["entre1"])
		assert.Equal(t, "", payload["entre2"])
		assert.Equal(t, "", payload["drink3"])
		assert.Equal(t, "", payload["orderCreated2"])
	})
}
