package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage stores one assistant exchange (user message plus bot reply).
type ChatMessage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Message   string    `gorm:"column:message;not null" json:"message"`
	Response  string    `gorm:"column:response;not null" json:"response"`
	IsBot     bool      `gorm:"column:is_bot;not null;default:true" json:"isBot"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
}
