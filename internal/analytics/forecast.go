package analytics

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/techstoreperu/storefront-backend/pkg/config"
)

// Forecast is a fixed-multiplier extrapolation of the current window. This is
// intentionally not a statistical model: the growth factors are configured
// constants, not fitted values.
type Forecast struct {
	Next30Days         Next30Days       `json:"next30Days"`
	TopGrowingProducts []GrowingProduct `json:"topGrowingProducts"`
	SeasonalTrends     SeasonalTrend    `json:"seasonalTrends"`
}

// Next30Days projects the headline metrics forward one month.
type Next30Days struct {
	Sales         float64 `json:"sales"`
	Orders        int     `json:"orders"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	Customers     int     `json:"customers"`
}

// GrowingProduct tags a top product with the configured growth placeholder.
type GrowingProduct struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	GrowthRate float64   `json:"growthRate"`
}

// SeasonalTrend compares the last seven daily buckets against the seven
// before them.
type SeasonalTrend struct {
	Direction        string  `json:"direction"`
	ChangePercentage float64 `json:"changePercentage"`
	RecentAverage    float64 `json:"recentAverage"`
	OlderAverage     float64 `json:"olderAverage"`
}

// Trend directions reported by the seasonal comparison.
const (
	TrendUpward   = "upward"
	TrendDownward = "downward"
	TrendStable   = "stable"
)

// ComputeForecast extrapolates the overview with the configured multipliers,
// ranks the top three products by revenue per unit price, and attaches the
// seasonal trend of the daily series.
func ComputeForecast(cfg config.AnalyticsConfig, overview Overview, rows []ProductPerformance, daily []DailyBucket) Forecast {
	sales := overview.TotalSales.Mul(decimal.NewFromFloat(cfg.SalesGrowth))
	aov := overview.AvgOrderValue.Mul(decimal.NewFromFloat(cfg.AOVGrowth))

	return Forecast{
		Next30Days: Next30Days{
			Sales:         sales.InexactFloat64(),
			Orders:        int(math.Round(float64(overview.TotalOrders) * cfg.OrdersGrowth)),
			AvgOrderValue: aov.InexactFloat64(),
			Customers:     int(math.Round(float64(overview.TotalCustomers) * cfg.CustomersGrowth)),
		},
		TopGrowingProducts: topGrowingProducts(rows, cfg.ProductGrowth),
		SeasonalTrends:     detectSeasonalTrend(daily),
	}
}

// topGrowingProducts ranks by revenue/price as a rough efficiency proxy and
// keeps the first three. Zero-priced products rank last rather than dividing
// by zero.
func topGrowingProducts(rows []ProductPerformance, growthRate float64) []GrowingProduct {
	ranked := make([]ProductPerformance, len(rows))
	copy(ranked, rows)

	efficiency := func(p ProductPerformance) decimal.Decimal {
		if p.Price.IsZero() {
			return decimal.Zero
		}
		return p.Revenue.Div(p.Price)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return efficiency(ranked[i]).GreaterThan(efficiency(ranked[j]))
	})

	limit := 3
	if len(ranked) < limit {
		limit = len(ranked)
	}
	top := make([]GrowingProduct, 0, limit)
	for _, p := range ranked[:limit] {
		top = append(top, GrowingProduct{ID: p.ID, Name: p.Name, GrowthRate: growthRate})
	}
	return top
}

// detectSeasonalTrend compares the mean sales of the last 7 buckets against
// the preceding 7. With fewer than 7 prior buckets the older average defaults
// to the recent one, and a zero older average yields a zero change.
func detectSeasonalTrend(daily []DailyBucket) SeasonalTrend {
	if len(daily) == 0 {
		return SeasonalTrend{Direction: TrendStable}
	}

	recentStart := len(daily) - 7
	if recentStart < 0 {
		recentStart = 0
	}
	recent := daily[recentStart:]
	older := daily[maxInt(0, recentStart-7):recentStart]

	recentAvg := meanSales(recent)
	olderAvg := recentAvg
	if len(older) > 0 {
		olderAvg = meanSales(older)
	}

	direction := TrendStable
	switch {
	case recentAvg > olderAvg:
		direction = TrendUpward
	case recentAvg < olderAvg:
		direction = TrendDownward
	}

	change := 0.0
	if olderAvg > 0 {
		change = (recentAvg - olderAvg) / olderAvg * 100
	}

	return SeasonalTrend{
		Direction:        direction,
		ChangePercentage: change,
		RecentAverage:    recentAvg,
		OlderAverage:     olderAvg,
	}
}

func meanSales(buckets []DailyBucket) float64 {
	if len(buckets) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, b := range buckets {
		sum = sum.Add(b.Sales)
	}
	return sum.Div(decimal.NewFromInt(int64(len(buckets)))).InexactFloat64()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
