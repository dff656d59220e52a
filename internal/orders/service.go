package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	"github.com/techstoreperu/storefront-backend/pkg/enums"
	pkgerrors "github.com/techstoreperu/storefront-backend/pkg/errors"
	"github.com/techstoreperu/storefront-backend/pkg/pagination"
)

// OrderPage is one listing page plus pagination metadata.
type OrderPage struct {
	Orders     []models.Order  `json:"orders"`
	Pagination pagination.Meta `json:"pagination"`
}

// Service turns carts into orders and serves order history.
type Service interface {
	Create(ctx context.Context, userID string) (*models.Order, error)
	List(ctx context.Context, userID string, page pagination.Params) (*OrderPage, error)
	Get(ctx context.Context, userID, orderID string) (*models.Order, error)
}

type service struct {
	repo Repository
}

// NewService builds the orders service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("orders repository required")
	}
	return &service{repo: repo}, nil
}

// Create checks the user's cart out into a pending order. Unit prices are
// snapshotted from the catalog at purchase time.
func (s *service) Create(ctx context.Context, rawUserID string) (*models.Order, error) {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindCartItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to create order")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Cart is empty")
	}

	total := decimal.Zero
	lines := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Product no longer available").
				WithDetails(map[string]any{"productId": item.ProductID})
		}
		if item.Quantity > item.Product.Stock {
			return nil, insufficientStock(item.ProductID, item.Product.Stock)
		}
		lines = append(lines, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &models.Order{
		UserID: userID,
		Status: enums.OrderStatusPending,
		Total:  total,
		Items:  lines,
	}
	if err := s.repo.CreateFromCart(ctx, order); err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Insufficient stock")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to create order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, rawUserID string, page pagination.Params) (*OrderPage, error) {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		return nil, err
	}

	page = pagination.Normalize(page)
	orders, total, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch orders")
	}
	return &OrderPage{Orders: orders, Pagination: pagination.NewMeta(page, total)}, nil
}

func (s *service) Get(ctx context.Context, rawUserID, rawOrderID string) (*models.Order, error) {
	userID, err := parseUserID(rawUserID)
	if err != nil {
		return nil, err
	}
	orderID, err := uuid.Parse(rawOrderID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid order id")
	}

	order, err := s.repo.FindByID(ctx, userID, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
	}
	return order, nil
}

func insufficientStock(productID uuid.UUID, stock int) error {
	return pkgerrors.New(pkgerrors.CodeConflict, "Insufficient stock").
		WithDetails(map[string]any{"productId": productID, "stock": stock})
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
