package analytics

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseInsightResponseMalformed(t *testing.T) {
	got := ParseInsightResponse("not json", decimal.NewFromInt(1000), 1.1)

	want := Insights{
		Trends:          []string{"analysis unavailable"},
		Predictions:     map[string]any{"next30Days": 1100.0},
		Recommendations: []string{"keep monitoring sales"},
		Opportunities:   []string{"none identified"},
		Risks:           []string{"none identified"},
		Source:          InsightSourceFallback,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected exact fallback payload, got %+v", got)
	}
}

func TestParseInsightResponseEmpty(t *testing.T) {
	got := ParseInsightResponse("   ", decimal.NewFromInt(200), 1.1)
	if got.Source != InsightSourceFallback {
		t.Fatalf("empty payload must fall back, got source %s", got.Source)
	}
	if got.Predictions["next30Days"] != 220.0 {
		t.Fatalf("expected projected 220.0, got %v", got.Predictions["next30Days"])
	}
}

func TestParseInsightResponseValid(t *testing.T) {
	raw := `{"trends":["sales accelerating"],"predictions":{"next30Days":500},"recommendations":["restock laptops"],"opportunities":["bundle deals"],"risks":["stockouts"]}`
	got := ParseInsightResponse(raw, decimal.Zero, 1.1)

	if got.Source != InsightSourceGenerated {
		t.Fatalf("expected generated source, got %s", got.Source)
	}
	if len(got.Trends) != 1 || got.Trends[0] != "sales accelerating" {
		t.Fatalf("unexpected trends %v", got.Trends)
	}
	if got.Predictions["next30Days"] != 500.0 {
		t.Fatalf("unexpected predictions %v", got.Predictions)
	}
}

func TestParseInsightResponseStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"trends\":[\"steady\"]}\n```"
	got := ParseInsightResponse(raw, decimal.Zero, 1.1)
	if got.Source != InsightSourceGenerated {
		t.Fatalf("fenced JSON should parse, got source %s", got.Source)
	}
	if len(got.Trends) != 1 || got.Trends[0] != "steady" {
		t.Fatalf("unexpected trends %v", got.Trends)
	}
	if got.Recommendations == nil || got.Risks == nil {
		t.Fatalf("missing keys must resolve to empty slices, not nil")
	}
}

func TestBuildInsightPromptFormatting(t *testing.T) {
	overview := Overview{
		TotalSales:     decimal.NewFromFloat(1234.5),
		TotalOrders:    12,
		AvgOrderValue:  decimal.NewFromFloat(102.875),
		TotalCustomers: 7,
	}
	daily := []DailyBucket{{Date: "2026-03-14", Sales: decimal.NewFromFloat(99.9), Orders: 3}}
	products := make([]ProductPerformance, 0, 7)
	for i := 0; i < 7; i++ {
		products = append(products, ProductPerformance{
			Name:         "Product " + string(rune('A'+i)),
			Revenue:      decimal.NewFromInt(int64(700 - i*100)),
			QuantitySold: i + 1,
		})
	}
	categories := []CategoryPerformance{{Category: "Computers", Revenue: decimal.NewFromInt(500), Quantity: 4}}

	prompt := BuildInsightPrompt("30d", overview, daily, products, categories)

	for _, want := range []string{
		"Analysis period: 30d",
		"- Total sales: 1234.50",
		"- Average order value: 102.88",
		"2026-03-14: 99.90 (3 orders)",
		"Computers: 500.00 (4 units)",
		"Respond in JSON format",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// Only the first five products are listed.
	if !strings.Contains(prompt, "Product E") {
		t.Errorf("prompt should include the fifth product")
	}
	if strings.Contains(prompt, "Product F") {
		t.Errorf("prompt should cap the product list at five")
	}
}
