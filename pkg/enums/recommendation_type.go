package enums

import "fmt"

// RecommendationType describes the supported recommendation strategies.
type RecommendationType string

const (
	RecommendationTypePersonalized   RecommendationType = "PERSONALIZED"
	RecommendationTypeSimilar        RecommendationType = "SIMILAR_PRODUCTS"
	RecommendationTypeBoughtTogether RecommendationType = "FREQUENTLY_BOUGHT_TOGETHER"
	RecommendationTypeTrending       RecommendationType = "TRENDING"
	RecommendationTypeCategoryBased  RecommendationType = "CATEGORY_BASED"
)

var validRecommendationTypes = []RecommendationType{
	RecommendationTypePersonalized,
	RecommendationTypeSimilar,
	RecommendationTypeBoughtTogether,
	RecommendationTypeTrending,
	RecommendationTypeCategoryBased,
}

// IsValid reports whether the value matches a supported strategy.
func (r RecommendationType) IsValid() bool {
	for _, candidate := range validRecommendationTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRecommendationType converts the raw string to RecommendationType,
// defaulting empty input to the personalized strategy.
func ParseRecommendationType(value string) (RecommendationType, error) {
	if value == "" {
		return RecommendationTypePersonalized, nil
	}
	for _, candidate := range validRecommendationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid recommendation type %q", value)
}

func (r RecommendationType) String() string {
	return string(r)
}
