package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
)

// Repository defines the cart store access.
type Repository interface {
	FindItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error)
	FindItemByProduct(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	FindActiveProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	Save(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) error
}
