package recommendations

import (
	"context"

	"github.com/google/uuid"

	"github.com/techstoreperu/storefront-backend/pkg/ai"
	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	"github.com/techstoreperu/storefront-backend/pkg/enums"
)

// Repository defines the store access the recommender needs.
type Repository interface {
	FindUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindActiveProducts(ctx context.Context) ([]models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	FindByUserAndType(ctx context.Context, userID uuid.UUID, recType enums.RecommendationType, limit int) ([]models.Recommendation, error)
	ReplaceForUser(ctx context.Context, userID uuid.UUID, recType enums.RecommendationType, recs []models.Recommendation) error
}

// Generator is the external text-completion collaborator.
type Generator interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (string, error)
}
