package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	pkgerrors "github.com/techstoreperu/storefront-backend/pkg/errors"
	"github.com/techstoreperu/storefront-backend/pkg/pagination"
)

// ProductView is a catalog row with its review aggregates precomputed.
type ProductView struct {
	models.Product
	AvgRating   float64 `json:"avgRating"`
	ReviewCount int     `json:"reviewCount"`
}

// ProductPage is one listing page plus pagination metadata.
type ProductPage struct {
	Products   []ProductView   `json:"products"`
	Pagination pagination.Meta `json:"pagination"`
}

// ListQuery carries the listing inputs from the HTTP surface.
type ListQuery struct {
	Category string
	Search   string
	Page     pagination.Params
}

// Service serves the storefront browsing surface.
type Service interface {
	ListProducts(ctx context.Context, query ListQuery) (*ProductPage, error)
	GetProduct(ctx context.Context, id string) (*ProductView, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, query ListQuery) (*ProductPage, error) {
	page := pagination.Normalize(query.Page)
	products, total, err := s.repo.ListProducts(ctx, ListFilter{Category: query.Category, Search: query.Search}, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch products")
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return &ProductPage{Products: views, Pagination: pagination.NewMeta(page, total)}, nil
}

func (s *service) GetProduct(ctx context.Context, rawID string) (*ProductView, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid product id")
	}

	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}

	view := newProductView(*product)
	return &view, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch categories")
	}
	return categories, nil
}

func newProductView(p models.Product) ProductView {
	return ProductView{
		Product:     p,
		AvgRating:   meanRating(p.Reviews),
		ReviewCount: len(p.Reviews),
	}
}

func meanRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
