package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Overview holds the headline metrics for one window.
type Overview struct {
	TotalSales     decimal.Decimal
	TotalOrders    int
	AvgOrderValue  decimal.Decimal
	TotalCustomers int
}

// DailyBucket is one calendar day's order subset within the window.
type DailyBucket struct {
	Date   string
	Sales  decimal.Decimal
	Orders int
}

// ProductPerformance is one product's in-window sales row.
type ProductPerformance struct {
	ID           uuid.UUID
	Name         string
	Category     string
	Price        decimal.Decimal
	Stock        int
	QuantitySold int
	Revenue      decimal.Decimal
	AvgRating    float64
	ReviewCount  int
}

// CategoryPerformance aggregates product rows sharing a category name.
type CategoryPerformance struct {
	Category string
	Revenue  decimal.Decimal
	Quantity int
	Products int
}

// ComputeOverview rolls up orders whose createdAt falls inside the window.
// Averages over empty sets resolve to zero rather than failing.
func ComputeOverview(orders []OrderRecord, window PeriodWindow) Overview {
	totalSales := decimal.Zero
	totalOrders := 0
	customers := make(map[uuid.UUID]struct{})

	for _, order := range orders {
		if !window.Contains(order.CreatedAt) {
			continue
		}
		totalSales = totalSales.Add(order.Total)
		totalOrders++
		customers[order.UserID] = struct{}{}
	}

	avg := decimal.Zero
	if totalOrders > 0 {
		avg = totalSales.Div(decimal.NewFromInt(int64(totalOrders)))
	}

	return Overview{
		TotalSales:     totalSales,
		TotalOrders:    totalOrders,
		AvgOrderValue:  avg,
		TotalCustomers: len(customers),
	}
}

// ComputeDailySeries emits one bucket per calendar day from start to end
// inclusive, oldest first, including days with zero orders. Orders are
// assigned to days by calendar date in loc, not by 24h offsets.
func ComputeDailySeries(orders []OrderRecord, window PeriodWindow, loc *time.Location) []DailyBucket {
	if loc == nil {
		loc = time.UTC
	}

	start := dayOf(window.Start, loc)
	end := dayOf(window.End, loc)

	var buckets []DailyBucket
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		sales := decimal.Zero
		count := 0
		for _, order := range orders {
			if sameDay(order.CreatedAt.In(loc), d) {
				sales = sales.Add(order.Total)
				count++
			}
		}
		buckets = append(buckets, DailyBucket{
			Date:   d.Format("2006-01-02"),
			Sales:  sales,
			Orders: count,
		})
	}
	return buckets
}

// ComputeProductPerformance rolls up in-window order items per product.
// Products with nothing sold are dropped; the rest are ordered by revenue
// descending with ties preserving catalog order.
func ComputeProductPerformance(products []ProductRecord, orders []OrderRecord, window PeriodWindow) []ProductPerformance {
	type tally struct {
		quantity int
		revenue  decimal.Decimal
	}
	sold := make(map[uuid.UUID]tally)
	for _, order := range orders {
		if !window.Contains(order.CreatedAt) {
			continue
		}
		for _, item := range order.Items {
			t := sold[item.ProductID]
			t.quantity += item.Quantity
			t.revenue = t.revenue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			sold[item.ProductID] = t
		}
	}

	rows := make([]ProductPerformance, 0, len(products))
	for _, product := range products {
		t, ok := sold[product.ID]
		if !ok || t.quantity == 0 {
			continue
		}
		rows = append(rows, ProductPerformance{
			ID:           product.ID,
			Name:         product.Name,
			Category:     product.Category,
			Price:        product.Price,
			Stock:        product.Stock,
			QuantitySold: t.quantity,
			Revenue:      t.revenue,
			AvgRating:    meanRating(product.Ratings),
			ReviewCount:  len(product.Ratings),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue.GreaterThan(rows[j].Revenue)
	})
	return rows
}

// ComputeCategoryPerformance groups product rows by category name. Group keys
// keep first-seen order before the revenue sort so ties stay deterministic.
func ComputeCategoryPerformance(rows []ProductPerformance) []CategoryPerformance {
	index := make(map[string]int)
	var groups []CategoryPerformance
	for _, row := range rows {
		i, ok := index[row.Category]
		if !ok {
			i = len(groups)
			index[row.Category] = i
			groups = append(groups, CategoryPerformance{Category: row.Category, Revenue: decimal.Zero})
		}
		groups[i].Revenue = groups[i].Revenue.Add(row.Revenue)
		groups[i].Quantity += row.QuantitySold
		groups[i].Products++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Revenue.GreaterThan(groups[j].Revenue)
	})
	return groups
}

func meanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
