package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem holds a product selection that has not been checked out yet.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_cart_user_product,unique" json:"userId"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index:idx_cart_user_product,unique" json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
