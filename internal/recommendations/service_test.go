package recommendations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/ai"
	"github.com/techstoreperu/storefront-backend/pkg/db/models"
	"github.com/techstoreperu/storefront-backend/pkg/enums"
	pkgerrors "github.com/techstoreperu/storefront-backend/pkg/errors"
)

type fakeRecoRepo struct {
	orders      []models.Order
	ordersErr   error
	products    []models.Product
	productsErr error
	stored      []models.Recommendation
	storedErr   error

	replacedType enums.RecommendationType
	replacedRows []models.Recommendation
	replaceErr   error
}

func (f *fakeRecoRepo) FindUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return f.orders, f.ordersErr
}

func (f *fakeRecoRepo) FindActiveProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, f.productsErr
}

func (f *fakeRecoRepo) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakeRecoRepo) FindByUserAndType(ctx context.Context, userID uuid.UUID, recType enums.RecommendationType, limit int) ([]models.Recommendation, error) {
	return f.stored, f.storedErr
}

func (f *fakeRecoRepo) ReplaceForUser(ctx context.Context, userID uuid.UUID, recType enums.RecommendationType, recs []models.Recommendation) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedType = recType
	f.replacedRows = recs
	return nil
}

type stubGenerator struct {
	lastRequest ai.CompletionRequest
	reply       string
	err         error
	calls       int
}

func (s *stubGenerator) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	s.calls++
	s.lastRequest = req
	return s.reply, s.err
}

func catalogProducts() []models.Product {
	return []models.Product{
		{
			ID:       uuid.New(),
			Name:     "Teclado",
			Price:    decimal.NewFromFloat(120.50),
			Category: &models.Category{Name: "Accesorios"},
			Reviews:  []models.Review{{Rating: 4}, {Rating: 5}},
			IsActive: true,
		},
		{
			ID:       uuid.New(),
			Name:     "Laptop",
			Price:    decimal.NewFromFloat(3500.00),
			Category: &models.Category{Name: "Laptops"},
			Reviews:  []models.Review{{Rating: 5}},
			IsActive: true,
		},
	}
}

func newRecoService(t *testing.T, repo Repository, gen Generator) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Generator: gen})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatalf("expected error for missing repository")
	}
}

func TestGenerateValidatesInput(t *testing.T) {
	svc := newRecoService(t, &fakeRecoRepo{}, nil)

	_, err := svc.Generate(context.Background(), GenerateRequest{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing user, got %v", err)
	}
	if typed.Message() != "User ID is required" {
		t.Fatalf("unexpected message %q", typed.Message())
	}

	_, err = svc.Generate(context.Background(), GenerateRequest{UserID: "nope"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad user id, got %v", err)
	}

	_, err = svc.Generate(context.Background(), GenerateRequest{UserID: uuid.NewString(), Type: "WILD_GUESS"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad type, got %v", err)
	}
}

func TestGenerateStoresAndEnriches(t *testing.T) {
	products := catalogProducts()
	repo := &fakeRecoRepo{products: products}
	gen := &stubGenerator{reply: fmt.Sprintf(
		`[{"productId": %q, "score": 0.9, "reason": "encaja con su historial"}, {"productId": %q, "score": 0.6}]`,
		products[1].ID, products[0].ID,
	)}
	svc := newRecoService(t, repo, gen)

	userID := uuid.New()
	result, err := svc.Generate(context.Background(), GenerateRequest{UserID: userID.String()})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if gen.lastRequest.SystemInstruction != SystemInstruction {
		t.Fatalf("unexpected system instruction")
	}
	if !strings.Contains(gen.lastRequest.UserPrompt, "Perfil del Usuario:") {
		t.Fatalf("expected personalized prompt by default")
	}
	if gen.lastRequest.Temperature != 0.7 || gen.lastRequest.MaxTokens != 1000 {
		t.Fatalf("unexpected completion knobs %+v", gen.lastRequest)
	}

	if repo.replacedType != enums.RecommendationTypePersonalized {
		t.Fatalf("expected personalized rows stored, got %s", repo.replacedType)
	}
	if len(repo.replacedRows) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(repo.replacedRows))
	}
	if repo.replacedRows[0].UserID != userID || repo.replacedRows[0].ProductID != products[1].ID {
		t.Fatalf("unexpected stored row %+v", repo.replacedRows[0])
	}

	if len(result.Recommendations) != 2 {
		t.Fatalf("expected 2 enriched rows, got %d", len(result.Recommendations))
	}
	// suggestion order wins over catalog order
	if result.Recommendations[0].Name != "Laptop" || result.Recommendations[0].Score != 0.9 {
		t.Fatalf("unexpected first recommendation %+v", result.Recommendations[0])
	}
	if result.Recommendations[1].Reason != defaultReason {
		t.Fatalf("expected default reason, got %q", result.Recommendations[1].Reason)
	}
	if result.UserID != userID.String() || result.Type != enums.RecommendationTypePersonalized {
		t.Fatalf("unexpected result envelope %+v", result)
	}
}

func TestGenerateUnparseableReplyRanksByRating(t *testing.T) {
	products := catalogProducts()
	repo := &fakeRecoRepo{products: products}
	gen := &stubGenerator{reply: "no puedo generar JSON ahora"}
	svc := newRecoService(t, repo, gen)

	result, err := svc.Generate(context.Background(), GenerateRequest{UserID: uuid.NewString()})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(result.Recommendations) != 2 {
		t.Fatalf("expected full catalog fallback, got %d", len(result.Recommendations))
	}
	// Laptop rates 5.0, Teclado 4.5
	if result.Recommendations[0].Name != "Laptop" || result.Recommendations[0].Score != fallbackScore {
		t.Fatalf("unexpected fallback ranking %+v", result.Recommendations[0])
	}
	if result.Recommendations[0].Reason != fallbackReason {
		t.Fatalf("unexpected fallback reason %q", result.Recommendations[0].Reason)
	}
}

func TestGenerateSurfacesGeneratorFailure(t *testing.T) {
	repo := &fakeRecoRepo{products: catalogProducts()}
	gen := &stubGenerator{err: errors.New("upstream down")}
	svc := newRecoService(t, repo, gen)

	_, err := svc.Generate(context.Background(), GenerateRequest{UserID: uuid.NewString()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if typed.Message() != "Failed to generate recommendations" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestGenerateWithoutGeneratorRanksByRating(t *testing.T) {
	repo := &fakeRecoRepo{products: catalogProducts()}
	svc := newRecoService(t, repo, nil)

	result, err := svc.Generate(context.Background(), GenerateRequest{UserID: uuid.NewString()})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(result.Recommendations) == 0 {
		t.Fatalf("expected rating-ranked fallback set")
	}
}

func TestListReturnsStoredRows(t *testing.T) {
	product := catalogProducts()[0]
	repo := &fakeRecoRepo{stored: []models.Recommendation{
		{Product: &product, Score: 0.95, Reason: "compra frecuente"},
	}}
	gen := &stubGenerator{}
	svc := newRecoService(t, repo, gen)

	result, err := svc.List(context.Background(), uuid.NewString(), "TRENDING")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("stored rows must not trigger regeneration")
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0].Score != 0.95 {
		t.Fatalf("unexpected stored mapping %+v", result.Recommendations)
	}
	if result.Type != enums.RecommendationTypeTrending {
		t.Fatalf("unexpected type %s", result.Type)
	}
}

func TestListRegeneratesWhenEmpty(t *testing.T) {
	products := catalogProducts()
	repo := &fakeRecoRepo{products: products}
	gen := &stubGenerator{reply: fmt.Sprintf(`[{"productId": %q, "score": 0.7}]`, products[0].ID)}
	svc := newRecoService(t, repo, gen)

	result, err := svc.List(context.Background(), uuid.NewString(), "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one regeneration call, got %d", gen.calls)
	}
	if len(result.Recommendations) != 1 {
		t.Fatalf("expected regenerated set, got %d rows", len(result.Recommendations))
	}
}

func TestListSurvivesFailedRegeneration(t *testing.T) {
	repo := &fakeRecoRepo{ordersErr: errors.New("db down")}
	svc := newRecoService(t, repo, &stubGenerator{})

	result, err := svc.List(context.Background(), uuid.NewString(), "")
	if err != nil {
		t.Fatalf("failed regeneration must not surface: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("expected empty set, got %d rows", len(result.Recommendations))
	}
}

func TestListWrapsStoreFailure(t *testing.T) {
	repo := &fakeRecoRepo{storedErr: errors.New("db down")}
	svc := newRecoService(t, repo, nil)

	_, err := svc.List(context.Background(), uuid.NewString(), "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if typed.Message() != "Failed to fetch recommendations" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}
