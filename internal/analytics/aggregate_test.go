package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testWindow(days int) PeriodWindow {
	end := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	return PeriodWindow{Start: end.AddDate(0, 0, -days), End: end}
}

func orderAt(userID uuid.UUID, total float64, at time.Time) OrderRecord {
	return OrderRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Total:     decimal.NewFromFloat(total),
		CreatedAt: at,
	}
}

func TestComputeOverviewEmptyOrders(t *testing.T) {
	o := ComputeOverview(nil, testWindow(30))
	if !o.TotalSales.IsZero() || o.TotalOrders != 0 || !o.AvgOrderValue.IsZero() || o.TotalCustomers != 0 {
		t.Fatalf("expected all-zero overview, got %+v", o)
	}
}

func TestComputeOverviewEndToEnd(t *testing.T) {
	w := testWindow(7)
	buyerA := uuid.New()
	buyerB := uuid.New()
	orders := []OrderRecord{
		orderAt(buyerA, 100, w.Start.Add(24*time.Hour)),
		orderAt(buyerB, 200, w.Start.Add(48*time.Hour)),
		orderAt(buyerA, 999, w.Start.Add(-time.Hour)), // outside window
	}

	o := ComputeOverview(orders, w)
	if got := o.TotalSales.InexactFloat64(); got != 300 {
		t.Fatalf("expected totalSales 300, got %f", got)
	}
	if o.TotalOrders != 2 {
		t.Fatalf("expected 2 orders, got %d", o.TotalOrders)
	}
	if got := o.AvgOrderValue.InexactFloat64(); got != 150 {
		t.Fatalf("expected avgOrderValue 150, got %f", got)
	}
	if o.TotalCustomers != 2 {
		t.Fatalf("expected 2 distinct customers, got %d", o.TotalCustomers)
	}
}

func TestComputeDailySeriesCoversEveryDay(t *testing.T) {
	w := testWindow(7)
	buckets := ComputeDailySeries(nil, w, time.UTC)

	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets for inclusive 7-day window, got %d", len(buckets))
	}
	for i := 1; i < len(buckets); i++ {
		prev, err := time.Parse("2006-01-02", buckets[i-1].Date)
		if err != nil {
			t.Fatalf("bad bucket date %q: %v", buckets[i-1].Date, err)
		}
		cur, err := time.Parse("2006-01-02", buckets[i].Date)
		if err != nil {
			t.Fatalf("bad bucket date %q: %v", buckets[i].Date, err)
		}
		if !cur.Equal(prev.AddDate(0, 0, 1)) {
			t.Fatalf("dates must be strictly increasing with no gaps: %s then %s", buckets[i-1].Date, buckets[i].Date)
		}
	}
	for _, b := range buckets {
		if !b.Sales.IsZero() || b.Orders != 0 {
			t.Fatalf("expected zero bucket, got %+v", b)
		}
	}
}

func TestDailySeriesSumMatchesOverview(t *testing.T) {
	w := testWindow(7)
	buyer := uuid.New()
	orders := []OrderRecord{
		orderAt(buyer, 100, w.Start.Add(26*time.Hour)),
		orderAt(buyer, 200, w.Start.Add(50*time.Hour)),
		orderAt(buyer, 50, w.End.Add(-time.Hour)),
	}

	overview := ComputeOverview(orders, w)
	buckets := ComputeDailySeries(orders, w, time.UTC)

	sum := decimal.Zero
	for _, b := range buckets {
		sum = sum.Add(b.Sales)
	}
	if !sum.Equal(overview.TotalSales) {
		t.Fatalf("daily sales %s should sum to totalSales %s", sum, overview.TotalSales)
	}
}

func TestComputeProductPerformanceFiltersAndSorts(t *testing.T) {
	w := testWindow(30)
	cheap := ProductRecord{ID: uuid.New(), Name: "Mouse", Category: "Accessories", Price: decimal.NewFromInt(20)}
	pricey := ProductRecord{ID: uuid.New(), Name: "Laptop", Category: "Computers", Price: decimal.NewFromInt(1000)}
	unsold := ProductRecord{ID: uuid.New(), Name: "Webcam", Category: "Accessories", Price: decimal.NewFromInt(50)}

	buyer := uuid.New()
	order := orderAt(buyer, 1040, w.Start.Add(time.Hour))
	order.Items = []OrderItemRecord{
		{ProductID: cheap.ID, Quantity: 2, Price: decimal.NewFromInt(20)},
		{ProductID: pricey.ID, Quantity: 1, Price: decimal.NewFromInt(1000)},
	}

	rows := ComputeProductPerformance([]ProductRecord{cheap, pricey, unsold}, []OrderRecord{order}, w)
	if len(rows) != 2 {
		t.Fatalf("expected unsold product dropped, got %d rows", len(rows))
	}
	if rows[0].Name != "Laptop" {
		t.Fatalf("expected revenue-descending order, got %s first", rows[0].Name)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Revenue.GreaterThan(rows[i-1].Revenue) {
			t.Fatalf("revenue sequence must be non-increasing")
		}
	}
	if rows[1].QuantitySold != 2 {
		t.Fatalf("expected quantitySold 2, got %d", rows[1].QuantitySold)
	}
	if got := rows[1].Revenue.InexactFloat64(); got != 40 {
		t.Fatalf("expected revenue 40, got %f", got)
	}
}

func TestProductPerformanceRevenueTiesAreStable(t *testing.T) {
	w := testWindow(30)
	first := ProductRecord{ID: uuid.New(), Name: "Keyboard A", Category: "Accessories", Price: decimal.NewFromInt(50)}
	second := ProductRecord{ID: uuid.New(), Name: "Keyboard B", Category: "Accessories", Price: decimal.NewFromInt(50)}

	buyer := uuid.New()
	order := orderAt(buyer, 100, w.Start.Add(time.Hour))
	order.Items = []OrderItemRecord{
		{ProductID: first.ID, Quantity: 1, Price: decimal.NewFromInt(50)},
		{ProductID: second.ID, Quantity: 1, Price: decimal.NewFromInt(50)},
	}

	rows := ComputeProductPerformance([]ProductRecord{first, second}, []OrderRecord{order}, w)
	if len(rows) != 2 || rows[0].Name != "Keyboard A" || rows[1].Name != "Keyboard B" {
		t.Fatalf("ties must preserve catalog order, got %+v", rows)
	}
}

func TestProductPerformanceAvgRating(t *testing.T) {
	w := testWindow(30)
	rated := ProductRecord{ID: uuid.New(), Name: "Laptop", Category: "Computers", Price: decimal.NewFromInt(1000), Ratings: []int{5, 4, 5}}
	unrated := ProductRecord{ID: uuid.New(), Name: "Mouse", Category: "Accessories", Price: decimal.NewFromInt(20)}

	buyer := uuid.New()
	order := orderAt(buyer, 1020, w.Start.Add(time.Hour))
	order.Items = []OrderItemRecord{
		{ProductID: rated.ID, Quantity: 1, Price: decimal.NewFromInt(1000)},
		{ProductID: unrated.ID, Quantity: 1, Price: decimal.NewFromInt(20)},
	}

	rows := ComputeProductPerformance([]ProductRecord{rated, unrated}, []OrderRecord{order}, w)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := 14.0 / 3.0
	if rows[0].AvgRating != want {
		t.Fatalf("expected avgRating %f, got %f", want, rows[0].AvgRating)
	}
	if rows[0].ReviewCount != 3 {
		t.Fatalf("expected reviewCount 3, got %d", rows[0].ReviewCount)
	}
	if rows[1].AvgRating != 0 {
		t.Fatalf("expected zero avgRating without reviews, got %f", rows[1].AvgRating)
	}
}

func TestComputeCategoryPerformanceGroupsAndSorts(t *testing.T) {
	rows := []ProductPerformance{
		{Name: "Mouse", Category: "Accessories", QuantitySold: 2, Revenue: decimal.NewFromInt(40)},
		{Name: "Laptop", Category: "Computers", QuantitySold: 1, Revenue: decimal.NewFromInt(1000)},
		{Name: "Keyboard", Category: "Accessories", QuantitySold: 1, Revenue: decimal.NewFromInt(60)},
	}

	groups := ComputeCategoryPerformance(rows)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Category != "Computers" {
		t.Fatalf("expected Computers first by revenue, got %s", groups[0].Category)
	}
	accessories := groups[1]
	if got := accessories.Revenue.InexactFloat64(); got != 100 {
		t.Fatalf("expected Accessories revenue 100, got %f", got)
	}
	if accessories.Quantity != 3 || accessories.Products != 2 {
		t.Fatalf("unexpected accessories group %+v", accessories)
	}
}
