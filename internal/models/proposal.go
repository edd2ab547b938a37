package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы предложения обмена
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// ExchangeProposal представляет предложение об обмене одного объявления на другое.
// Инициатор — владелец объявления-отправителя, отвечает владелец объявления-получателя.
type ExchangeProposal struct {
	ID             uuid.UUID `json:"id"`
	SenderAdID     uuid.UUID `json:"sender_ad_id"`
	ReceiverAdID   uuid.UUID `json:"receiver_ad_id"`
	SenderUserID   uuid.UUID `json:"sender_user_id"`
	ReceiverUserID uuid.UUID `json:"receiver_user_id"`
	Comment        string    `json:"comment"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`

	// Дополнительные поля для API
	SenderAd   *Ad `json:"sender_ad,omitempty"`
	ReceiverAd *Ad `json:"receiver_ad,omitempty"`
}

// IsValidStatus проверяет, что строка является одним из статусов предложения
func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusRejected
}

// IsTransitionStatus проверяет допустимость целевого статуса перехода:
// из pending можно перейти только в accepted или rejected
func IsTransitionStatus(s string) bool {
	return s == StatusAccepted || s == StatusRejected
}

// IsTerminal сообщает, находится ли предложение в конечном статусе.
// Из конечного статуса переходов нет.
func (p *ExchangeProposal) IsTerminal() bool {
	return p.Status != StatusPending
}
