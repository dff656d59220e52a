package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
)

// The aggregator only ever sees these normalized record shapes. Store rows
// are converted once at the boundary so the computation pipeline stays free
// of persistence concerns.

// OrderRecord is one order inside or near the metric window.
type OrderRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Total     decimal.Decimal
	CreatedAt time.Time
	Items     []OrderItemRecord
}

// OrderItemRecord is one purchased line with the unit price at purchase time.
type OrderItemRecord struct {
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// ProductRecord is one catalog product with its review ratings flattened.
type ProductRecord struct {
	ID       uuid.UUID
	Name     string
	Category string
	Price    decimal.Decimal
	Stock    int
	Ratings  []int
}

// Dataset bundles the record collections one aggregation run consumes.
type Dataset struct {
	Orders   []OrderRecord
	Products []ProductRecord
}

// Empty reports whether the dataset carries no usable records.
func (d Dataset) Empty() bool {
	return len(d.Orders) == 0 && len(d.Products) == 0
}

// OrderRecordsFromModels normalizes store order rows.
func OrderRecordsFromModels(orders []models.Order) []OrderRecord {
	out := make([]OrderRecord, 0, len(orders))
	for _, order := range orders {
		items := make([]OrderItemRecord, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, OrderItemRecord{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
		out = append(out, OrderRecord{
			ID:        order.ID,
			UserID:    order.UserID,
			Total:     order.Total,
			CreatedAt: order.CreatedAt,
			Items:     items,
		})
	}
	return out
}

// ProductRecordsFromModels normalizes store product rows, flattening review
// ratings and the category name.
func ProductRecordsFromModels(products []models.Product) []ProductRecord {
	out := make([]ProductRecord, 0, len(products))
	for _, product := range products {
		ratings := make([]int, 0, len(product.Reviews))
		for _, review := range product.Reviews {
			ratings = append(ratings, review.Rating)
		}
		category := ""
		if product.Category != nil {
			category = product.Category.Name
		}
		out = append(out, ProductRecord{
			ID:       product.ID,
			Name:     product.Name,
			Category: category,
			Price:    product.Price,
			Stock:    product.Stock,
			Ratings:  ratings,
		})
	}
	return out
}
