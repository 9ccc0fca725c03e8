package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderPlacedEvent - событие об оформленном заказе для downstream-потребителей
// (кухня, уведомления). Публикуется после успешной записи заказа в БД.
type OrderPlacedEvent struct {
	OrderID      int64     `json:"orderId"`
	SessionID    string    `json:"sessionId"`
	Entre        string    `json:"entre"`
	Drink        string    `json:"drink"`
	OrderCreated time.Time `json:"orderCreated"`
}

// OrderEventPublisher defines the interface for publishing order events.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
}

// rabbitMQPublisher implements OrderEventPublisher for RabbitMQ.
type rabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
}

// NewRabbitMQOrderEventPublisher creates a new instance of OrderEventPublisher.
// Паблишер объявляет очередь сам, чтобы не зависеть от порядка запуска сервисов.
// Важно, чтобы параметры очереди совпадали с теми, что у консьюмера.
func NewRabbitMQOrderEventPublisher(conn *amqp.Connection, queueName string) (OrderEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("order event publisher: не удалось открыть канал: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		log.Printf("OrderEventPublisher ERROR: Не удалось объявить очередь '%s': %v", queueName, err)
		ch.Close()
		return nil, fmt.Errorf("order event publisher: не удалось объявить очередь '%s': %w", queueName, err)
	}

	return &rabbitMQPublisher{channel: ch, queueName: queueName}, nil
}

// PublishOrderPlaced публикует событие о новом заказе.
func (p *rabbitMQPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка сериализации OrderPlacedEvent: %w", err)
	}
	return p.publishMessage(ctx, body)
}

func (p *rabbitMQPublisher) publishMessage(ctx context.Context, body []byte) error {
	if p.channel == nil {
		return errors.New("канал RabbitMQ не инициализирован")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := p.channel.PublishWithContext(ctx,
		"",          // exchange (используем default)
		p.queueName, // routing key (имя очереди)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
			AppId:        "catering-bot",
		},
	)
	if err != nil {
		return fmt.Errorf("ошибка публикации в очередь %s: %w", p.queueName, err)
	}
	return nil
}

var _ OrderEventPublisher = (*rabbitMQPublisher)(nil)
