package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	"github.com/techstoreperu/storefront-backend/pkg/pagination"
)

// ErrInsufficientStock is returned by the checkout transaction when a line
// can no longer be covered by the product's stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// Repository defines the order store access.
type Repository interface {
	FindCartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	CreateFromCart(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Order, int64, error)
	FindByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
}
