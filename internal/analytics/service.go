package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/techstoreperu/storefront-backend/pkg/ai"
	"github.com/techstoreperu/storefront-backend/pkg/config"
	dbtypes "github.com/techstoreperu/storefront-backend/pkg/db/types"
	pkgerrors "github.com/techstoreperu/storefront-backend/pkg/errors"
	"github.com/techstoreperu/storefront-backend/pkg/logger"
	"github.com/techstoreperu/storefront-backend/pkg/metrics"

	"github.com/techstoreperu/storefront-backend/pkg/db/models"
)

// Report types requested via the type query parameter. Insight generation
// and the forecast only run for overview and predictions.
const (
	ReportTypeOverview    = "overview"
	ReportTypePredictions = "predictions"
)

const (
	insightTemperature    = 0.7
	topProductsInPrompt   = 10
	topCategoriesInPrompt = 5
	dailyBucketsInPrompt  = 14
	topProductsInSnapshot = 10
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

// Service assembles the analytics dashboard payload for one period.
type Service interface {
	Generate(ctx context.Context, period, reportType string) (*Report, error)
}

// ReportCache stores rendered reports keyed by period and type.
type ReportCache interface {
	CacheKey(scope, id string) string
	GetCached(ctx context.Context, key string, dest any) (bool, error)
	SetCached(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Report is the full dashboard payload returned to the HTTP surface. Every
// field is always present; zero, empty, or fallback values stand in when a
// section does not apply.
type Report struct {
	Period              string          `json:"period"`
	Overview            OverviewPayload `json:"overview"`
	DailySales          []DailyPoint    `json:"dailySales"`
	ProductPerformance  []ProductRow    `json:"productPerformance"`
	CategoryPerformance []CategoryRow   `json:"categoryPerformance"`
	AIInsights          Insights        `json:"aiInsights"`
	Predictions         Forecast        `json:"predictions"`
	Timestamp           string          `json:"timestamp"`
}

// OverviewPayload mirrors Overview with plain JSON numbers.
type OverviewPayload struct {
	TotalSales     float64 `json:"totalSales"`
	TotalOrders    int     `json:"totalOrders"`
	AvgOrderValue  float64 `json:"avgOrderValue"`
	TotalCustomers int     `json:"totalCustomers"`
}

// DailyPoint is one daily bucket in wire form.
type DailyPoint struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// ProductRow is one product performance row in wire form.
type ProductRow struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	QuantitySold int       `json:"quantitySold"`
	Revenue      float64   `json:"revenue"`
	AvgRating    float64   `json:"avgRating"`
	ReviewCount  int       `json:"reviewCount"`
}

// CategoryRow is one category performance row in wire form.
type CategoryRow struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
	Products int     `json:"products"`
}

// ServiceParams collects the service dependencies. Repo is required; the
// insight generator, cache, snapshot writer, and metrics are optional and
// degrade to local fallbacks when absent.
type ServiceParams struct {
	Repo         Repository
	Insights     InsightGenerator
	Cache        ReportCache
	Snapshots    *SnapshotWriter
	AIMetrics    *metrics.AIMetrics
	Analytics    config.AnalyticsConfig
	Logger       *logger.Logger
	FallbackData *Dataset
}

type service struct {
	repo      Repository
	insights  InsightGenerator
	cache     ReportCache
	snapshots *SnapshotWriter
	aiMetrics *metrics.AIMetrics
	cfg       config.AnalyticsConfig
	logg      *logger.Logger
	fallback  *Dataset
	loc       *time.Location
}

// NewService builds the analytics service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("analytics repository required")
	}
	return &service{
		repo:      params.Repo,
		insights:  params.Insights,
		cache:     params.Cache,
		snapshots: params.Snapshots,
		aiMetrics: params.AIMetrics,
		cfg:       params.Analytics,
		logg:      params.Logger,
		fallback:  params.FallbackData,
		loc:       params.Analytics.Location(),
	}, nil
}

func (s *service) Generate(ctx context.Context, period, reportType string) (*Report, error) {
	if period == "" {
		period = PeriodDefault
	}
	if reportType == "" {
		reportType = ReportTypeOverview
	}
	if s.logg != nil {
		ctx = s.logg.WithPeriod(ctx, period)
	}

	cacheKey := ""
	if s.cache != nil {
		cacheKey = s.cache.CacheKey("analytics", period+":"+reportType)
		var cached Report
		hit, err := s.cache.GetCached(ctx, cacheKey, &cached)
		if err != nil && s.logg != nil {
			s.logg.Error(ctx, "analytics cache read failed", err)
		}
		if hit {
			return &cached, nil
		}
	}

	now := timeNowUTC().In(s.loc)
	window := ResolveWindow(period, now)

	orders, err := s.repo.FindOrdersInWindow(ctx, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to generate analytics")
	}
	products, err := s.repo.FindProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Failed to generate analytics")
	}

	dataset := Dataset{
		Orders:   OrderRecordsFromModels(orders),
		Products: ProductRecordsFromModels(products),
	}
	if dataset.Empty() && s.fallback != nil {
		dataset = *s.fallback
	}

	overview := ComputeOverview(dataset.Orders, window)
	daily := ComputeDailySeries(dataset.Orders, window, s.loc)
	perf := ComputeProductPerformance(dataset.Products, dataset.Orders, window)
	categories := ComputeCategoryPerformance(perf)

	insights := EmptyInsights()
	var forecast Forecast
	if reportType == ReportTypeOverview || reportType == ReportTypePredictions {
		insights = s.generateInsights(ctx, period, overview, daily, perf, categories)
		forecast = ComputeForecast(s.cfg, overview, perf, daily)
	}

	s.writeSnapshot(window, overview, perf)

	report := &Report{
		Period:              period,
		Overview:            overviewPayload(overview),
		DailySales:          dailyPoints(daily),
		ProductPerformance:  productRows(perf),
		CategoryPerformance: categoryRows(categories),
		AIInsights:          insights,
		Predictions:         forecast,
		Timestamp:           now.UTC().Format(time.RFC3339),
	}

	if s.cache != nil && s.cfg.CacheTTL > 0 {
		if err := s.cache.SetCached(ctx, cacheKey, report, s.cfg.CacheTTL); err != nil && s.logg != nil {
			s.logg.Error(ctx, "analytics cache write failed", err)
		}
	}

	return report, nil
}

// generateInsights calls the external generator with a bounded deadline and
// falls back to the canned payload on any failure. Errors never escape.
func (s *service) generateInsights(ctx context.Context, period string, overview Overview, daily []DailyBucket, perf []ProductPerformance, categories []CategoryPerformance) Insights {
	if s.insights == nil {
		return FallbackInsights(overview.TotalSales, s.cfg.FallbackGrowth)
	}

	prompt := BuildInsightPrompt(
		period,
		overview,
		lastBuckets(daily, dailyBucketsInPrompt),
		headProducts(perf, topProductsInPrompt),
		headCategories(categories, topCategoriesInPrompt),
	)

	callCtx := ctx
	if s.cfg.InsightTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.InsightTimeout)
		defer cancel()
	}

	started := time.Now()
	raw, err := s.insights.Complete(callCtx, ai.CompletionRequest{
		SystemInstruction: InsightSystemInstruction,
		UserPrompt:        prompt,
		Temperature:       insightTemperature,
		MaxTokens:         s.cfg.InsightTokens,
	})
	s.aiMetrics.ObserveCall("insights", time.Since(started), err)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "insight generation failed", err)
		}
		return FallbackInsights(overview.TotalSales, s.cfg.FallbackGrowth)
	}

	return ParseInsightResponse(raw, overview.TotalSales, s.cfg.FallbackGrowth)
}

// writeSnapshot schedules the historical record append. The write is not on
// the critical path and its failure never reaches the caller.
func (s *service) writeSnapshot(window PeriodWindow, overview Overview, perf []ProductPerformance) {
	if s.snapshots == nil {
		return
	}
	top := make(dbtypes.StringList, 0, topProductsInSnapshot)
	for i, row := range perf {
		if i >= topProductsInSnapshot {
			break
		}
		top = append(top, row.ID.String())
	}
	s.snapshots.WriteAsync(&models.SalesSnapshot{
		Date:          window.End,
		TotalSales:    overview.TotalSales,
		TotalOrders:   overview.TotalOrders,
		AvgOrderValue: overview.AvgOrderValue,
		TopProducts:   top,
	})
}

func overviewPayload(o Overview) OverviewPayload {
	return OverviewPayload{
		TotalSales:     o.TotalSales.InexactFloat64(),
		TotalOrders:    o.TotalOrders,
		AvgOrderValue:  o.AvgOrderValue.InexactFloat64(),
		TotalCustomers: o.TotalCustomers,
	}
}

func dailyPoints(buckets []DailyBucket) []DailyPoint {
	out := make([]DailyPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, DailyPoint{Date: b.Date, Sales: b.Sales.InexactFloat64(), Orders: b.Orders})
	}
	return out
}

func productRows(rows []ProductPerformance) []ProductRow {
	out := make([]ProductRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductRow{
			ID:           r.ID,
			Name:         r.Name,
			Category:     r.Category,
			Price:        r.Price.InexactFloat64(),
			Stock:        r.Stock,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue.InexactFloat64(),
			AvgRating:    r.AvgRating,
			ReviewCount:  r.ReviewCount,
		})
	}
	return out
}

func categoryRows(groups []CategoryPerformance) []CategoryRow {
	out := make([]CategoryRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, CategoryRow{
			Category: g.Category,
			Revenue:  g.Revenue.InexactFloat64(),
			Quantity: g.Quantity,
			Products: g.Products,
		})
	}
	return out
}

func lastBuckets(buckets []DailyBucket, n int) []DailyBucket {
	if len(buckets) <= n {
		return buckets
	}
	return buckets[len(buckets)-n:]
}

func headProducts(rows []ProductPerformance, n int) []ProductPerformance {
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}

func headCategories(groups []CategoryPerformance, n int) []CategoryPerformance {
	if len(groups) <= n {
		return groups
	}
	return groups[:n]
}
