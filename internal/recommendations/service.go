package recommendations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/techstoreperu/storefront-backend/pkg/ai"
	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	"github.com/techstoreperu/storefront-backend/pkg/enums"
	pkgerrors "github.com/techstoreperu/storefront-backend/pkg/errors"
	"github.com/techstoreperu/storefront-backend/pkg/logger"
	"github.com/techstoreperu/storefront-backend/pkg/metrics"
)

const (
	generateTemperature = 0.7
	generateMaxTokens   = 1000
	listLimit           = 10
)

// GenerateRequest asks for a fresh suggestion set. ProductID narrows the
// similar-products and bought-together strategies.
type GenerateRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Type      string `json:"type"`
}

// RecommendedProduct is one suggested catalog row with its score and reason.
type RecommendedProduct struct {
	models.Product
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Result is the suggestion payload returned to the HTTP surface.
type Result struct {
	Recommendations []RecommendedProduct     `json:"recommendations"`
	Type            enums.RecommendationType `json:"type"`
	UserID          string                   `json:"userId"`
}

// Service produces and serves per-user product suggestions.
type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (*Result, error)
	List(ctx context.Context, userID, recType string) (*Result, error)
}

// ServiceParams collects the service dependencies. Repo is required; without
// a generator the service degrades to rating-ranked picks.
type ServiceParams struct {
	Repo      Repository
	Generator Generator
	AIMetrics *metrics.AIMetrics
	Logger    *logger.Logger
}

type service struct {
	repo      Repository
	generator Generator
	aiMetrics *metrics.AIMetrics
	logg      *logger.Logger
}

// NewService builds the recommendations service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("recommendations repository required")
	}
	return &service{
		repo:      params.Repo,
		generator: params.Generator,
		aiMetrics: params.AIMetrics,
		logg:      params.Logger,
	}, nil
}

// Generate builds a fresh suggestion set for the user, replaces the stored
// set for the (user, type) pair, and returns the enriched rows.
func (s *service) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	userID, recType, err := s.resolveTarget(req.UserID, req.Type)
	if err != nil {
		return nil, err
	}
	if s.logg != nil {
		ctx = s.logg.WithUserID(ctx, userID.String())
	}

	orders, err := s.repo.FindUserOrders(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to generate recommendations")
	}
	products, err := s.repo.FindActiveProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to generate recommendations")
	}

	profile := buildUserProfile(userID.String(), orders)
	catalog := summarizeProducts(products)

	suggestions, err := s.suggest(ctx, recType, profile, catalog, req.ProductID)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Recommendation, 0, len(suggestions))
	for _, sg := range suggestions {
		rows = append(rows, models.Recommendation{
			UserID:    userID,
			ProductID: sg.ProductID,
			Score:     sg.Score,
			Reason:    sg.Reason,
			Type:      recType,
		})
	}
	if err := s.repo.ReplaceForUser(ctx, userID, recType, rows); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to generate recommendations")
	}

	enriched, err := s.enrich(ctx, suggestions)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to generate recommendations")
	}

	return &Result{Recommendations: enriched, Type: recType, UserID: userID.String()}, nil
}

// List serves the stored suggestion set, regenerating it when the pair has
// none yet. A failed regeneration still answers with the empty set.
func (s *service) List(ctx context.Context, rawUserID, rawType string) (*Result, error) {
	userID, recType, err := s.resolveTarget(rawUserID, rawType)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.FindByUserAndType(ctx, userID, recType, listLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to fetch recommendations")
	}

	if len(stored) == 0 {
		fresh, genErr := s.Generate(ctx, GenerateRequest{UserID: rawUserID, Type: string(recType)})
		if genErr == nil {
			return fresh, nil
		}
		if s.logg != nil {
			s.logg.Error(ctx, "recommendation regeneration failed", genErr)
		}
	}

	out := make([]RecommendedProduct, 0, len(stored))
	for _, rec := range stored {
		if rec.Product == nil {
			continue
		}
		out = append(out, RecommendedProduct{Product: *rec.Product, Score: rec.Score, Reason: rec.Reason})
	}
	return &Result{Recommendations: out, Type: recType, UserID: userID.String()}, nil
}

// suggest runs the strategy prompt through the model, or ranks by rating when
// no generator is wired.
func (s *service) suggest(ctx context.Context, recType enums.RecommendationType, profile userProfile, catalog []productSummary, targetID string) ([]ScoredProduct, error) {
	if s.generator == nil {
		return fallbackSuggestions(catalog), nil
	}

	prompt := BuildPrompt(recType, profile, catalog, targetID)

	started := time.Now()
	raw, err := s.generator.Complete(ctx, ai.CompletionRequest{
		SystemInstruction: SystemInstruction,
		UserPrompt:        prompt,
		Temperature:       generateTemperature,
		MaxTokens:         generateMaxTokens,
	})
	s.aiMetrics.ObserveCall("recommendations", time.Since(started), err)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to generate recommendations")
	}
	return ParseSuggestions(raw, catalog), nil
}

// enrich resolves suggested ids to catalog rows, preserving suggestion order
// and dropping ids that no longer exist.
func (s *service) enrich(ctx context.Context, suggestions []ScoredProduct) ([]RecommendedProduct, error) {
	ids := make([]uuid.UUID, 0, len(suggestions))
	for _, sg := range suggestions {
		ids = append(ids, sg.ProductID)
	}
	products, err := s.repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]RecommendedProduct, 0, len(suggestions))
	for _, sg := range suggestions {
		product, ok := byID[sg.ProductID]
		if !ok {
			continue
		}
		out = append(out, RecommendedProduct{Product: product, Score: sg.Score, Reason: sg.Reason})
	}
	return out, nil
}

func (s *service) resolveTarget(rawUserID, rawType string) (uuid.UUID, enums.RecommendationType, error) {
	if rawUserID == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeValidation, "User ID is required")
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeValidation, "Invalid user id")
	}
	recType, err := enums.ParseRecommendationType(rawType)
	if err != nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeValidation, "Invalid recommendation type")
	}
	return userID, recType, nil
}
