package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

func TestSummarizeProducts(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Status: "active", Vendor: "Acme", ProductType: "Shoes", Variants: []domain.Variant{
			testVariant(11, "10.00", 0),
			testVariant(12, "30.00", 5),
		}},
		{ID: 2, Status: "draft", Vendor: "Acme", Variants: []domain.Variant{
			testVariant(21, "20.00", 100),
			testVariant(22, "20.00", -2),
		}},
	}
	a := SummarizeProducts(products)

	if a.TotalProducts != 2 || a.TotalVariants != 4 {
		t.Fatalf("unexpected counts %+v", a)
	}
	if a.ByStatus["active"] != 1 || a.ByStatus["draft"] != 1 || a.ByVendor["Acme"] != 2 || a.ByProductType["unknown"] != 1 {
		t.Fatalf("unexpected groupings %+v", a)
	}
	if a.Price.Min != 10 || a.Price.Max != 30 || a.Price.Average != 20 {
		t.Fatalf("unexpected price stats %+v", a.Price)
	}
	if a.Inventory.Total != 105 || a.Inventory.LowStockVariants != 1 || a.Inventory.OutOfStockVariants != 2 {
		t.Fatalf("unexpected inventory stats %+v", a.Inventory)
	}
	if a.Inventory.AveragePerVariant != 26.25 {
		t.Fatalf("expected 26.25 average, got %v", a.Inventory.AveragePerVariant)
	}
}

func TestSummarizeProducts_Empty(t *testing.T) {
	a := SummarizeProducts(nil)
	if a.TotalVariants != 0 || a.Price != (PriceStats{}) || a.Inventory.AveragePerVariant != 0 {
		t.Fatalf("expected zero stats, got %+v", a)
	}
}

func TestSummarizeOrders(t *testing.T) {
	fulfilled := "fulfilled"
	o1 := testOrder(1, daysAgo(3), 1, item(7, 2, "10.00"))
	o1.FinancialStatus = "paid"
	o1.FulfillmentStatus = &fulfilled
	o1.TotalShippingPriceSet = &domain.PriceSet{ShopMoney: domain.Money{Amount: decimal.RequireFromString("5.00")}}

	o2 := testOrder(2, daysAgo(2), 1, item(8, 1, "50.00"))
	o2.FinancialStatus = "partially_refunded"
	o2.Refunds = []domain.Refund{{RefundLineItems: []domain.RefundLineItem{{Quantity: 1, Subtotal: decimal.RequireFromString("12.50")}}}}

	o3 := testOrder(3, daysAgo(1), 0, item(7, 1, "10.00"))
	o3.FinancialStatus = "paid"

	a := SummarizeOrders([]domain.Order{o1, o2, o3}, 1)

	if a.TotalOrders != 3 || a.TotalRevenue != 80 || a.AverageOrderValue != 26.67 {
		t.Fatalf("unexpected totals %+v", a)
	}
	if a.ByFinancialStatus["paid"] != 2 || a.ByFulfillmentStatus["fulfilled"] != 1 || a.ByFulfillmentStatus["unfulfilled"] != 2 {
		t.Fatalf("unexpected status groupings %+v", a)
	}
	if a.RefundedOrders != 1 || a.RefundedAmount != 12.5 || a.ShippingRevenue != 5 {
		t.Fatalf("unexpected refund/shipping %+v", a)
	}
	if a.UniqueCustomers != 1 {
		t.Fatalf("expected 1 identified customer, got %d", a.UniqueCustomers)
	}
	// all line items reference product 1
	if len(a.TopProducts) != 1 || a.TopProducts[0].Revenue != 80 || a.TopProducts[0].Units != 4 {
		t.Fatalf("unexpected top products %+v", a.TopProducts)
	}
}

func TestSummarizeCustomers(t *testing.T) {
	customers := []domain.Customer{
		{ID: 1, FirstName: "Ada", LastName: "L", OrdersCount: 3, TotalSpent: decimal.RequireFromString("300.00"), UpdatedAt: daysAgo(400)},
		{ID: 2, FirstName: "Bo", OrdersCount: 1, TotalSpent: decimal.RequireFromString("50.00"), UpdatedAt: daysAgo(10)},
		{ID: 3, OrdersCount: 1, TotalSpent: decimal.RequireFromString("20.00"), UpdatedAt: daysAgo(365)},
		{ID: 4, OrdersCount: 0, TotalSpent: decimal.Zero, UpdatedAt: daysAgo(1)},
	}
	orders := []domain.Order{testOrder(9, daysAgo(5), 1, item(7, 1, "10.00"))}

	a := SummarizeCustomers(customers, orders, testNow, 2)

	if a.TotalCustomers != 4 || a.TotalSpent != 370 || a.AverageSpent != 92.5 {
		t.Fatalf("unexpected totals %+v", a)
	}
	if a.RepeatCustomers != 1 || a.RepeatRate != 0.25 {
		t.Fatalf("unexpected repeat stats %+v", a)
	}
	// customer 3 last active a year ago, customer 4 never ordered
	if a.InactiveCustomers != 2 {
		t.Fatalf("expected 2 inactive customers, got %d", a.InactiveCustomers)
	}
	if a.ChurnRateEstimate != 0.08 {
		t.Fatalf("expected churn 0.5/6 = 0.08, got %v", a.ChurnRateEstimate)
	}
	if len(a.TopCustomers) != 2 || a.TopCustomers[0].ID != 1 || a.TopCustomers[0].Name != "Ada L" || a.TopCustomers[1].ID != 2 {
		t.Fatalf("unexpected top customers %+v", a.TopCustomers)
	}
}

func TestChurnEstimate_Clamped(t *testing.T) {
	tests := []struct {
		Inactive, Total int
		Expected        float64
	}{
		{0, 0, MinChurnRate},
		{0, 100, MinChurnRate},
		{100, 100, 1.0 / 6},
		{3, 1, MaxChurnRate},
	}
	for _, tt := range tests {
		if got := ChurnEstimate(tt.Inactive, tt.Total); got != tt.Expected {
			t.Fatalf("ChurnEstimate(%d, %d) = %v, expected %v", tt.Inactive, tt.Total, got, tt.Expected)
		}
	}
}

func TestAnalyzeLTVCAC(t *testing.T) {
	orders := []domain.Order{
		testOrder(1, daysAgo(40), 1, item(7, 1, "100.00")),
		testOrder(2, daysAgo(20), 1, item(7, 1, "100.00")),
		testOrder(3, daysAgo(10), 2, item(7, 1, "100.00")),
		testOrder(4, daysAgo(5), 3, item(7, 1, "100.00")),
	}
	customers := []domain.Customer{
		{ID: 1, CreatedAt: daysAgo(60)},
		{ID: 2, CreatedAt: daysAgo(12)},
		{ID: 3, CreatedAt: daysAgo(6)},
	}

	tests := []struct {
		Title         string
		AdSpend       float64
		ExpectedCAC   float64
		ExpectedRatio float64
		Recommends    string
	}{
		{Title: "no ad spend", AdSpend: 0, ExpectedCAC: 0, ExpectedRatio: 0, Recommends: "Add your advertising spend"},
		{Title: "healthy", AdSpend: 100, ExpectedCAC: 50, ExpectedRatio: 4, Recommends: "Healthy"},
		{Title: "needs work", AdSpend: 300, ExpectedCAC: 150, ExpectedRatio: 1.33, Recommends: "below the 3:1"},
		{Title: "unprofitable", AdSpend: 1000, ExpectedCAC: 500, ExpectedRatio: 0.4, Recommends: "costs more"},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			r := AnalyzeLTVCAC(orders, customers, tt.AdSpend, testNow)
			// AOV 100, frequency 4/3, repeat 1/3 so lifespan 1.5: LTV 200
			if r.LTV != 200 || r.AverageOrderValue != 100 || r.NewCustomers != 2 {
				t.Fatalf("unexpected base metrics %+v", r)
			}
			if r.CAC != tt.ExpectedCAC || r.Ratio != tt.ExpectedRatio {
				t.Fatalf("expected cac %v ratio %v, got %v %v", tt.ExpectedCAC, tt.ExpectedRatio, r.CAC, r.Ratio)
			}
			if !containsFold(r.Recommendation, tt.Recommends) {
				t.Fatalf("expected recommendation mentioning %q, got %q", tt.Recommends, r.Recommendation)
			}
		})
	}
}

func TestAnalyzeLTVCAC_NoData(t *testing.T) {
	r := AnalyzeLTVCAC(nil, nil, 500, testNow)
	if r.LTV != 0 || r.CAC != 0 || r.Ratio != 0 {
		t.Fatalf("expected zeros without data, got %+v", r)
	}
	if !containsFold(r.Recommendation, "No new customers") {
		t.Fatalf("unexpected recommendation %q", r.Recommendation)
	}
}
