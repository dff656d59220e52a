package analytics

import (
	"context"

	"github.com/techstoreperu/storefront-backend/pkg/ai"
	"github.com/techstoreperu/storefront-backend/pkg/db/models"
)

// Repository defines the record-store access the aggregator needs: in-window
// order reads, catalog reads, and the append-only snapshot write.
type Repository interface {
	FindOrdersInWindow(ctx context.Context, window PeriodWindow) ([]models.Order, error)
	FindProducts(ctx context.Context) ([]models.Product, error)
	CreateSnapshot(ctx context.Context, snapshot *models.SalesSnapshot) error
}

// InsightGenerator is the external text-completion collaborator.
type InsightGenerator interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (string, error)
}
