package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/techstoreperu/storefront-backend/pkg/ai"
	"github.com/techstoreperu/storefront-backend/pkg/db/models"
)

// Repository defines the store access the assistant needs: customer context,
// the active catalog, and the exchange log.
type Repository interface {
	FindUserWithRecentOrders(ctx context.Context, userID uuid.UUID, orderLimit int) (*models.User, error)
	FindActiveProducts(ctx context.Context) ([]models.Product, error)
	FindRecentMessages(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error)
	CreateMessage(ctx context.Context, message *models.ChatMessage) error
}

// ReplyGenerator is the external text-completion collaborator.
type ReplyGenerator interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (string, error)
}
