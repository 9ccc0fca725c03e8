package models

import "encoding/json"

// Типы входящих activity, которые различает диспетчер.
const (
	ActivityTypeMessage            = "message"
	ActivityTypeInvoke             = "invoke"
	ActivityTypeConversationUpdate = "conversationUpdate"
)

// Имена invoke-событий.
const (
	InvokeNameAdaptiveCardAction  = "adaptiveCard/action"
	InvokeNameSignInVerifyState   = "signin/verifyState"
	InvokeNameSignInTokenExchange = "signin/tokenExchange"
)

// Content types для исходящих attachment'ов и ошибок invoke.
const (
	ContentTypeAdaptiveCard = "application/vnd.microsoft.card.adaptive"
	ContentTypeInvokeError  = "application/vnd.microsoft.error"
)

// ChannelAccount идентифицирует участника разговора на стороне канала.
type ChannelAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ConversationAccount идентифицирует сам разговор (наш session id).
type ConversationAccount struct {
	ID string `json:"id"`
}

// Activity - входящее/исходящее событие канала. Поля Value не декодируем
// заранее: invoke-валидация сама решает, что с ним делать.
type Activity struct {
	Type         string               `json:"type"`
	ID           string               `json:"id,omitempty"`
	Name         string               `json:"name,omitempty"`
	Text         string               `json:"text,omitempty"`
	Conversation *ConversationAccount `json:"conversation,omitempty"`
	From         *ChannelAccount      `json:"from,omitempty"`
	Recipient    *ChannelAccount      `json:"recipient,omitempty"`
	MembersAdded []ChannelAccount     `json:"membersAdded,omitempty"`
	Value        json.RawMessage      `json:"value,omitempty"`
	Attachments  []Attachment         `json:"attachments,omitempty"`
}

// Attachment - вложение исходящего activity (карточка).
type Attachment struct {
	ContentType string `json:"contentType"`
	Content     any    `json:"content"`
}

// NewCardActivity собирает ответное message-activity с одной карточкой.
func NewCardActivity(card any) *Activity {
	return &Activity{
		Type: ActivityTypeMessage,
		Attachments: []Attachment{
			{ContentType: ContentTypeAdaptiveCard, Content: card},
		},
	}
}

// NewTextActivity собирает ответное message-activity с текстом.
func NewTextActivity(text string) *Activity {
	return &Activity{Type: ActivityTypeMessage, Text: text}
}
