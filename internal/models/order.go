package models

import "time"

// LunchOrder представляет сохраненный заказ (одна строка в lunch_orders).
// После сохранения запись неизменяема: хранилище умеет только вставку
// и выборку последних заказов.
type LunchOrder struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"sessionId"`
	ActivityID   string    `json:"activityId"`
	OrderCreated time.Time `json:"orderCreated"`
	Entre        string    `json:"entre"`
	Drink        string    `json:"drink"`
}

// OrderState - состояние заказа в рамках одной сессии (разговора).
// Мутируется только стейт-машиной; сохраняется в session store после каждого хода.
type OrderState struct {
	SessionID    string    `json:"sessionId"`
	ActivityID   string    `json:"activityId"`
	OrderCreated time.Time `json:"orderCreated"`
	Entre        string    `json:"entre"`
	Drink        string    `json:"drink"`
}

// ToOrder собирает LunchOrder из накопленного состояния сессии.
func (s *OrderState) ToOrder() *LunchOrder {
	return &LunchOrder{
		SessionID:    s.SessionID,
		ActivityID:   s.ActivityID,
		OrderCreated: s.OrderCreated,
		Entre:        s.Entre,
		Drink:        s.Drink,
	}
}
