package analytics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// InsightSystemInstruction primes the external generator for the analysis task.
const InsightSystemInstruction = "You are an expert in e-commerce data analysis and business intelligence. Provide precise, actionable insights based on data."

// InsightSource tells callers whether an insight payload came from the
// external generator or from the canned fallback.
type InsightSource string

const (
	InsightSourceGenerated InsightSource = "generated"
	InsightSourceFallback  InsightSource = "fallback"
)

// Insights is the structured commentary attached to an analytics report.
type Insights struct {
	Trends          []string       `json:"trends"`
	Predictions     map[string]any `json:"predictions"`
	Recommendations []string       `json:"recommendations"`
	Opportunities   []string       `json:"opportunities"`
	Risks           []string       `json:"risks"`
	Source          InsightSource  `json:"source"`
}

// EmptyInsights returns a structurally complete zero payload for report
// types that skip insight generation.
func EmptyInsights() Insights {
	return Insights{
		Trends:          []string{},
		Predictions:     map[string]any{},
		Recommendations: []string{},
		Opportunities:   []string{},
		Risks:           []string{},
	}
}

// FallbackInsights is the fixed substitute payload used whenever the external
// generator fails or its output cannot be parsed. The projected figure uses
// the configured fallback growth multiplier over the window's total sales.
func FallbackInsights(totalSales decimal.Decimal, fallbackGrowth float64) Insights {
	projected := totalSales.Mul(decimal.NewFromFloat(fallbackGrowth))
	return Insights{
		Trends:          []string{"analysis unavailable"},
		Predictions:     map[string]any{"next30Days": projected.InexactFloat64()},
		Recommendations: []string{"keep monitoring sales"},
		Opportunities:   []string{"none identified"},
		Risks:           []string{"none identified"},
		Source:          InsightSourceFallback,
	}
}

// BuildInsightPrompt renders the sole contract with the insight generator:
// the window's headline metrics, the last 14 daily buckets, and the leading
// products and categories, all money values fixed to two decimals.
func BuildInsightPrompt(period string, overview Overview, last14 []DailyBucket, topProducts []ProductPerformance, topCategories []CategoryPerformance) string {
	var b strings.Builder

	b.WriteString("Analyze the following e-commerce sales data and provide predictive insights:\n\n")
	fmt.Fprintf(&b, "Analysis period: %s\n", period)
	b.WriteString("Key metrics:\n")
	fmt.Fprintf(&b, "- Total sales: %s\n", overview.TotalSales.StringFixed(2))
	fmt.Fprintf(&b, "- Total orders: %d\n", overview.TotalOrders)
	fmt.Fprintf(&b, "- Average order value: %s\n", overview.AvgOrderValue.StringFixed(2))
	fmt.Fprintf(&b, "- Unique customers: %d\n", overview.TotalCustomers)

	b.WriteString("\nDaily trend (last 14 days):\n")
	for _, bucket := range last14 {
		fmt.Fprintf(&b, "%s: %s (%d orders)\n", bucket.Date, bucket.Sales.StringFixed(2), bucket.Orders)
	}

	b.WriteString("\nTop 5 products:\n")
	for i, p := range topProducts {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%s: %s (%d units)\n", p.Name, p.Revenue.StringFixed(2), p.QuantitySold)
	}

	b.WriteString("\nTop 5 categories:\n")
	for i, c := range topCategories {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%s: %s (%d units)\n", c.Category, c.Revenue.StringFixed(2), c.Quantity)
	}

	b.WriteString(`
Provide:
1. Trend and pattern analysis
2. Sales predictions for the next 30 days
3. Strategic recommendations
4. Identified opportunities and risks
5. Customer behavior insights

Respond in JSON format with the following keys:
- trends: array of strings with trend analysis
- predictions: object with numeric predictions
- recommendations: array of strings with recommendations
- opportunities: array of strings with opportunities
- risks: array of strings with identified risks`)

	return b.String()
}

// ParseInsightResponse parses the generator's free-form reply. Malformed or
// empty payloads resolve to the fixed fallback, never to an error.
func ParseInsightResponse(raw string, totalSales decimal.Decimal, fallbackGrowth float64) Insights {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return FallbackInsights(totalSales, fallbackGrowth)
	}

	var parsed Insights
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return FallbackInsights(totalSales, fallbackGrowth)
	}

	if parsed.Trends == nil {
		parsed.Trends = []string{}
	}
	if parsed.Predictions == nil {
		parsed.Predictions = map[string]any{}
	}
	if parsed.Recommendations == nil {
		parsed.Recommendations = []string{}
	}
	if parsed.Opportunities == nil {
		parsed.Opportunities = []string{}
	}
	if parsed.Risks == nil {
		parsed.Risks = []string{}
	}
	parsed.Source = InsightSourceGenerated
	return parsed
}

// stripCodeFences tolerates generators that wrap JSON in markdown fences.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
