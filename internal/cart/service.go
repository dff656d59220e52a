package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	pkgerrors "github.com/techstoreperu/storefront-backend/pkg/errors"
)

// Cart is the quoted cart payload: all lines plus the running subtotal.
type Cart struct {
	Items     []models.CartItem `json:"items"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	ItemCount int               `json:"itemCount"`
}

// AddItemInput adds (or merges) one product selection.
type AddItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// Service manages per-user cart state.
type Service interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID string, input AddItemInput) (*Cart, error)
	UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*Cart, error)
	Clear(ctx context.Context, userID string) error
}

type service struct {
	repo Repository
}

// NewService builds the cart service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("cart repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, rawUserID string) (*Cart, error) {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, userID)
}

// AddItem merges the selection into an existing line for the same product or
// creates a new one, guarding against overselling the current stock.
func (s *service) AddItem(ctx context.Context, rawUserID string, input AddItemInput) (*Cart, error) {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be at least 1")
	}
	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid product id")
	}

	product, err := s.repo.FindActiveProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to update cart")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}

	item, err := s.repo.FindItemByProduct(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to update cart")
	}

	quantity := input.Quantity
	if item != nil {
		quantity += item.Quantity
	}
	if quantity > product.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Insufficient stock").
			WithDetails(map[string]any{"productId": productID, "stock": product.Stock})
	}

	if item == nil {
		item = &models.CartItem{UserID: userID, ProductID: productID}
	}
	item.Quantity = quantity
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to update cart")
	}

	return s.quote(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, rawUserID, rawItemID string, quantity int) (*Cart, error) {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		return nil, err
	}
	itemID, err := uuid.Parse(rawItemID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid cart item id")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be at least 1")
	}

	item, err := s.repo.FindItem(ctx, userID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to update cart")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Cart item not found")
	}
	if item.Product != nil && quantity > item.Product.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Insufficient stock").
			WithDetails(map[string]any{"productId": item.ProductID, "stock": item.Product.Stock})
	}

	item.Quantity = quantity
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to update cart")
	}

	return s.quote(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, rawUserID, rawItemID string) (*Cart, error) {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		return nil, err
	}
	itemID, err := uuid.Parse(rawItemID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid cart item id")
	}

	if err := s.repo.Delete(ctx, userID, itemID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to update cart")
	}
	return s.quote(ctx, userID)
}

func (s *service) Clear(ctx context.Context, rawUserID string) error {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAll(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to update cart")
	}
	return nil
}

func (s *service) quote(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	items, err := s.repo.FindItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch cart")
	}

	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		count += item.Quantity
		if item.Product != nil {
			line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			subtotal = subtotal.Add(line)
		}
	}
	return &Cart{Items: items, Subtotal: subtotal, ItemCount: count}, nil
}

func parseUserID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "User ID is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid user id")
	}
	return id, nil
}
