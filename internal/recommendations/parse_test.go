package recommendations

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func ratedCatalog(n int) []productSummary {
	out := make([]productSummary, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, productSummary{
			ID:        uuid.NewString(),
			Name:      fmt.Sprintf("Producto %d", i),
			Price:     decimal.NewFromInt(int64(100 + i)),
			AvgRating: float64(i), // later entries rate higher
		})
	}
	return out
}

func TestParseSuggestionsDecodesArray(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	raw := fmt.Sprintf("```json\n[\n"+
		`{"productId": %q, "score": 0.9, "reason": "combina bien"},`+"\n"+
		`{"productId": %q, "score": 0.5},`+"\n"+
		`{"productId": "", "score": 0.4},`+"\n"+
		`{"productId": "not-a-uuid", "score": 0.4},`+"\n"+
		`{"productId": %q}`+"\n"+
		"]\n```", first, second, uuid.New())

	got := ParseSuggestions(raw, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 usable suggestions, got %d", len(got))
	}
	if got[0].ProductID != first || got[0].Score != 0.9 || got[0].Reason != "combina bien" {
		t.Fatalf("unexpected first suggestion %+v", got[0])
	}
	if got[1].ProductID != second || got[1].Reason != defaultReason {
		t.Fatalf("expected default reason for second suggestion, got %+v", got[1])
	}
}

func TestParseSuggestionsFallsBackOnGarbage(t *testing.T) {
	catalog := ratedCatalog(7)

	got := ParseSuggestions("lo siento, no puedo ayudarte", catalog)
	if len(got) != suggestionCap {
		t.Fatalf("expected %d fallback suggestions, got %d", suggestionCap, len(got))
	}
	// fallback ranks by rating, so the last catalog entry comes first
	if got[0].ProductID.String() != catalog[6].ID {
		t.Fatalf("expected best-rated product first, got %s", got[0].ProductID)
	}
	for _, sg := range got {
		if sg.Score != fallbackScore || sg.Reason != fallbackReason {
			t.Fatalf("unexpected fallback suggestion %+v", sg)
		}
	}
}

func TestParseSuggestionsEmptyInputFallsBack(t *testing.T) {
	catalog := ratedCatalog(2)
	got := ParseSuggestions("   ", catalog)
	if len(got) != 2 {
		t.Fatalf("expected fallback over the whole small catalog, got %d", len(got))
	}
}
