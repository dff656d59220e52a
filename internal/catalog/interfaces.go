package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	"github.com/techstoreperu/storefront-backend/pkg/pagination"
)

// ListFilter narrows the product listing.
type ListFilter struct {
	Category string
	Search   string
}

// Repository defines the catalog read surface.
type Repository interface {
	ListProducts(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Product, int64, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}
