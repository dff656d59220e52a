package recommendations

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	fallbackScore  = 0.8
	fallbackReason = "Producto popular con buenas calificaciones"
	defaultReason  = "Recomendación IA"
	suggestionCap  = 5
)

// ScoredProduct is one validated model suggestion.
type ScoredProduct struct {
	ProductID uuid.UUID
	Score     float64
	Reason    string
}

type rawSuggestion struct {
	ProductID string   `json:"productId"`
	Score     *float64 `json:"score"`
	Reason    string   `json:"reason"`
}

// ParseSuggestions decodes the model's JSON array, dropping entries without a
// usable product id or score. Undecodable output degrades to a rating-sorted
// pick from the catalog rather than an error.
func ParseSuggestions(raw string, catalog []productSummary) []ScoredProduct {
	cleaned := stripCodeFences(raw)

	var parsed []rawSuggestion
	if cleaned == "" || json.Unmarshal([]byte(cleaned), &parsed) != nil {
		return fallbackSuggestions(catalog)
	}

	out := make([]ScoredProduct, 0, len(parsed))
	for _, s := range parsed {
		if s.ProductID == "" || s.Score == nil {
			continue
		}
		id, err := uuid.Parse(s.ProductID)
		if err != nil {
			continue
		}
		reason := s.Reason
		if reason == "" {
			reason = defaultReason
		}
		out = append(out, ScoredProduct{ProductID: id, Score: *s.Score, Reason: reason})
	}
	return out
}

// fallbackSuggestions returns the best-rated catalog entries at a flat score.
func fallbackSuggestions(catalog []productSummary) []ScoredProduct {
	ranked := make([]productSummary, len(catalog))
	copy(ranked, catalog)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AvgRating > ranked[j].AvgRating
	})

	out := make([]ScoredProduct, 0, suggestionCap)
	for _, p := range ranked {
		if len(out) == suggestionCap {
			break
		}
		id, err := uuid.Parse(p.ID)
		if err != nil {
			continue
		}
		out = append(out, ScoredProduct{ProductID: id, Score: fallbackScore, Reason: fallbackReason})
	}
	return out
}

func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
