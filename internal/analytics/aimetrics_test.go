package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

func TestBuildAIMetrics(t *testing.T) {
	v := testVariant(7, "40.00", 12)
	v.CompareAtPrice = decimal.NewNullDecimal(decimal.RequireFromString("50.00"))
	p := testProduct(60, v)
	orders := []domain.Order{
		testOrder(1, daysAgo(40), 1, item(7, 1, "40.00")),
		testOrder(2, daysAgo(20), 1, item(7, 2, "40.00")),
		testOrder(3, daysAgo(10), 2, item(7, 1, "40.00")),
		testOrder(4, daysAgo(5), 3, item(8, 1, "10.00")),
	}
	m := CalculateVariantMetrics(v, p, orders, testNow)
	stale := AnalyzeStaleness(m.UnitsSold, m.EstimatedInitialInventory, p.LiveSince(), testNow, DefaultStaleThresholdPercent)

	got := BuildAIMetrics(p, v, "fitness", domain.CategorySourceTags, m, stale, orders)

	if got.Category != "fitness" || got.CategorySource != domain.CategorySourceTags {
		t.Fatalf("unexpected category %q/%q", got.Category, got.CategorySource)
	}
	if got.UnitsSold != 4 || got.Revenue != 160 {
		t.Fatalf("expected 4 units / 160 revenue, got %d / %v", got.UnitsSold, got.Revenue)
	}
	// customer 1 bought twice, customer 2 once; customer 3 bought another variant
	if got.RepeatPurchaseRate != 0.5 || got.ChurnRateEstimate != 0.5 {
		t.Fatalf("unexpected repeat/churn %v/%v", got.RepeatPurchaseRate, got.ChurnRateEstimate)
	}
	if got.AverageOrderValue != 53.33 {
		t.Fatalf("expected 160 / 3 orders = 53.33, got %v", got.AverageOrderValue)
	}
	if got.CompareAtPrice == nil || *got.CompareAtPrice != 50 || got.Price != 40 {
		t.Fatalf("unexpected prices %+v", got)
	}
	if got.SampleWindow == "" || got.IsStale != stale.IsStale {
		t.Fatalf("expected sample window and staleness to be carried over")
	}
}
