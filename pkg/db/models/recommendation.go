package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/techstoreperu/storefront-backend/pkg/enums"
)

// Recommendation persists one scored product suggestion per (user, type).
type Recommendation struct {
	ID        uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index:idx_reco_user_type" json:"userId"`
	ProductID uuid.UUID                `gorm:"column:product_id;type:uuid;not null" json:"productId"`
	Product   *Product                 `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Score     float64                  `gorm:"column:score;not null" json:"score"`
	Reason    string                   `gorm:"column:reason;not null;default:''" json:"reason"`
	Type      enums.RecommendationType `gorm:"column:type;type:text;not null;index:idx_reco_user_type" json:"type"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
