package cards

import (
	"fmt"

	"catering-bot/internal/models"
)

// Card - один шаг диалога заказа. Набор закрытый: пять карточек,
// числовые теги ходят по проводу в currentCard/nextCardToSend.
type Card int

const (
	CardEntre Card = iota
	CardDrink
	CardReview
	CardReviewAll
	CardConfirmation
)

// cardTemplates - полная таблица карточка -> ресурс шаблона.
var cardTemplates = map[Card]string{
	CardEntre:        "templates/EntreOptions.json",
	CardDrink:        "templates/DrinkOptions.json",
	CardReview:       "templates/ReviewOrder.json",
	CardReviewAll:    "templates/RecentOrders.json",
	CardConfirmation: "templates/Confirmation.json",
}

// ByNumber возвращает карточку по числовому тегу из payload'а.
// Тег вне таблицы - ошибка, никакого значения по умолчанию.
func ByNumber(number int) (Card, error) {
	card := Card(number)
	if _, ok := cardTemplates[card]; !ok {
		return 0, fmt.Errorf("%w: %d", models.ErrUnknownCard, number)
	}
	return card, nil
}

// Number возвращает числовой тег карточки.
func (c Card) Number() int {
	return int(c)
}

// TemplateFile возвращает путь к ресурсу шаблона внутри embed FS.
func (c Card) TemplateFile() string {
	return cardTemplates[c]
}

func (c Card) String() string {
	switch c {
	case CardEntre:
		return "Entre"
	case CardDrink:
		return "Drink"
	case CardReview:
		return "Review"
	case CardReviewAll:
		return "ReviewAll"
	case CardConfirmation:
		return "Confirmation"
	default:
		return fmt.Sprintf("Card(%d)", int(c))
	}
}
