package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/enums"
)

// Order is the purchase record the analytics engine aggregates over.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	User      *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	Total     decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
