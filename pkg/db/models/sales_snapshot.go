package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/techstoreperu/storefront-backend/pkg/db/types"
)

// SalesSnapshot is the append-only historical record written after each
// analytics run. TopProducts holds a JSON array of product ids.
type SalesSnapshot struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Date          time.Time       `gorm:"column:date;not null;index" json:"date"`
	TotalSales    decimal.Decimal `gorm:"column:total_sales;type:numeric(14,2);not null" json:"totalSales"`
	TotalOrders   int             `gorm:"column:total_orders;not null" json:"totalOrders"`
	AvgOrderValue decimal.Decimal `gorm:"column:avg_order_value;type:numeric(12,2);not null" json:"avgOrderValue"`
	TopProducts   dbtypes.StringList `gorm:"column:top_products;type:text;not null;default:'[]'" json:"topProducts"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
