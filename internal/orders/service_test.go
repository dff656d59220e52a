package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	"github.com/techstoreperu/storefront-backend/pkg/enums"
	pkgerrors "github.com/techstoreperu/storefront-backend/pkg/errors"
	"github.com/techstoreperu/storefront-backend/pkg/pagination"
)

type fakeOrdersRepo struct {
	cartItems []models.CartItem
	cartErr   error
	created   *models.Order
	createErr error
	orders    []models.Order
	total     int64
	order     *models.Order

	lastPage pagination.Params
}

func (f *fakeOrdersRepo) FindCartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return f.cartItems, f.cartErr
}

func (f *fakeOrdersRepo) CreateFromCart(ctx context.Context, order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = order
	return nil
}

func (f *fakeOrdersRepo) ListByUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Order, int64, error) {
	f.lastPage = page
	return f.orders, f.total, nil
}

func (f *fakeOrdersRepo) FindByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	return f.order, nil
}

func cartLine(price float64, quantity, stock int) models.CartItem {
	productID := uuid.New()
	return models.CartItem{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		Product: &models.Product{
			ID:    productID,
			Price: decimal.NewFromFloat(price),
			Stock: stock,
		},
	}
}

func newOrdersService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestCreateSnapshotsPricesAndTotals(t *testing.T) {
	repo := &fakeOrdersRepo{cartItems: []models.CartItem{
		cartLine(1199.99, 1, 10),
		cartLine(249.99, 2, 10),
	}}
	svc := newOrdersService(t, repo)

	order, err := svc.Create(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("unexpected status %s", order.Status)
	}
	want := decimal.NewFromFloat(1699.97)
	if !order.Total.Equal(want) {
		t.Fatalf("total = %s, want %s", order.Total, want)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Items))
	}
	if !order.Items[1].Price.Equal(decimal.NewFromFloat(249.99)) || order.Items[1].Quantity != 2 {
		t.Fatalf("unexpected snapshot line %+v", order.Items[1])
	}
	if repo.created == nil {
		t.Fatalf("order was not persisted")
	}
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	svc := newOrdersService(t, &fakeOrdersRepo{})

	_, err := svc.Create(context.Background(), uuid.NewString())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "Cart is empty" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestCreateGuardsStockUpFront(t *testing.T) {
	repo := &fakeOrdersRepo{cartItems: []models.CartItem{cartLine(100, 3, 2)}}
	svc := newOrdersService(t, repo)

	_, err := svc.Create(context.Background(), uuid.NewString())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if repo.created != nil {
		t.Fatalf("order must not be persisted on stock failure")
	}
}

func TestCreateMapsTransactionStockFailure(t *testing.T) {
	repo := &fakeOrdersRepo{
		cartItems: []models.CartItem{cartLine(100, 1, 5)},
		createErr: ErrInsufficientStock,
	}
	svc := newOrdersService(t, repo)

	_, err := svc.Create(context.Background(), uuid.NewString())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateWrapsStoreFailure(t *testing.T) {
	repo := &fakeOrdersRepo{
		cartItems: []models.CartItem{cartLine(100, 1, 5)},
		createErr: errors.New("db down"),
	}
	svc := newOrdersService(t, repo)

	_, err := svc.Create(context.Background(), uuid.NewString())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if typed.Message() != "Failed to create order" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestListNormalizesPage(t *testing.T) {
	repo := &fakeOrdersRepo{orders: []models.Order{{ID: uuid.New()}}, total: 1}
	svc := newOrdersService(t, repo)

	page, err := svc.List(context.Background(), uuid.NewString(), pagination.Params{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastPage.Page != 1 || repo.lastPage.Limit != pagination.DefaultLimit {
		t.Fatalf("page not normalized: %+v", repo.lastPage)
	}
	if len(page.Orders) != 1 || page.Pagination.Total != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newOrdersService(t, &fakeOrdersRepo{})

	_, err := svc.Get(context.Background(), uuid.NewString(), uuid.NewString())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if typed.Message() != "Order not found" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestUserIDValidation(t *testing.T) {
	svc := newOrdersService(t, &fakeOrdersRepo{})

	for _, id := range []string{"", "nope"} {
		if _, err := svc.Create(context.Background(), id); pkgerrors.As(err) == nil {
			t.Fatalf("expected validation error for userID %q", id)
		}
		if _, err := svc.List(context.Background(), id, pagination.Params{}); pkgerrors.As(err) == nil {
			t.Fatalf("expected validation error for userID %q", id)
		}
	}
}
