package analytics

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

func searchCatalog() []domain.Product {
	variant := func(id int64, sku, price string, stock int) domain.Variant {
		return domain.Variant{ID: id, SKU: sku, Barcode: sku + "-BC", Price: decimal.RequireFromString(price), InventoryQuantity: stock}
	}
	return []domain.Product{
		{ID: 1, Title: "Yoga Mat", Vendor: "Flexi", ProductType: "Fitness", Status: "active", Tags: "yoga, mat",
			CreatedAt: daysAgo(30), Variants: []domain.Variant{variant(11, "YM-1", "35.00", 20)}},
		{ID: 2, Title: "Yoga Mat Bag", Vendor: "Flexi", ProductType: "Accessories", Status: "active", Tags: "bag",
			CreatedAt: daysAgo(20), Variants: []domain.Variant{variant(21, "YB-1", "15.00", 3)}},
		{ID: 3, Title: "Oak Chair", Vendor: "Woodco", ProductType: "Furniture", Status: "draft", Tags: "home, yoga-room",
			CreatedAt: daysAgo(10), Variants: []domain.Variant{variant(31, "OC-1", "250.00", 0), variant(32, "OC-2", "270.00", 4)}},
	}
}

func ids(hits []ScoredProduct) []int64 {
	out := make([]int64, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.ID)
	}
	return out
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int { return &i }

func TestFilterAndScore(t *testing.T) {
	tests := []struct {
		Title    string
		Params   ProductSearchParams
		Expected []int64
	}{
		{Title: "no filters keeps catalog order", Params: ProductSearchParams{}, Expected: []int64{1, 2, 3}},
		{Title: "search ranks exact title first", Params: ProductSearchParams{Search: "yoga mat"}, Expected: []int64{1, 2}},
		{Title: "search matches tags", Params: ProductSearchParams{Search: "yoga"}, Expected: []int64{1, 2, 3}},
		{Title: "tags filter", Params: ProductSearchParams{Tags: "bag, shoes"}, Expected: []int64{2}},
		{Title: "sku filter", Params: ProductSearchParams{SKU: "oc-"}, Expected: []int64{3}},
		{Title: "barcode filter", Params: ProductSearchParams{Barcode: "YB-1-BC"}, Expected: []int64{2}},
		{Title: "price range", Params: ProductSearchParams{PriceMin: floatPtr(20), PriceMax: floatPtr(100)}, Expected: []int64{1}},
		{Title: "inventory range", Params: ProductSearchParams{InventoryQuantityMax: intPtr(5)}, Expected: []int64{2, 3}},
		{Title: "status and vendor", Params: ProductSearchParams{Status: "ACTIVE", Vendor: "flexi"}, Expected: []int64{1, 2}},
		{Title: "sort by price desc", Params: ProductSearchParams{SortBy: "price", SortOrder: "desc"}, Expected: []int64{3, 1, 2}},
		{Title: "sort by title", Params: ProductSearchParams{SortBy: "title"}, Expected: []int64{3, 1, 2}},
		{Title: "created after", Params: ProductSearchParams{CreatedAtMin: daysAgo(25).Format("2006-01-02T15:04:05Z07:00")}, Expected: []int64{2, 3}},
		{Title: "limit", Params: ProductSearchParams{SortBy: "created_at", SortOrder: "desc", Limit: 1}, Expected: []int64{3}},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			got := ids(FilterAndScore(searchCatalog(), tt.Params))
			if len(got) != len(tt.Expected) {
				t.Fatalf("expected %v, got %v", tt.Expected, got)
			}
			for i := range got {
				if got[i] != tt.Expected[i] {
					t.Fatalf("expected %v, got %v", tt.Expected, got)
				}
			}
		})
	}
}

func TestFilterAndScore_Scores(t *testing.T) {
	hits := FilterAndScore(searchCatalog(), ProductSearchParams{Search: "yoga mat"})
	// exact title + sku miss + tag miss ("yoga, mat" does not contain "yoga mat")
	if hits[0].RelevanceScore != scoreTitleExact {
		t.Fatalf("expected exact title score, got %d", hits[0].RelevanceScore)
	}
	if hits[1].RelevanceScore != scoreTitleContains {
		t.Fatalf("expected title contains score, got %d", hits[1].RelevanceScore)
	}
}

func TestProductSearchParams_NeedsClientSideFiltering(t *testing.T) {
	if (ProductSearchParams{Title: "x", Vendor: "y", Status: "active"}).NeedsClientSideFiltering() {
		t.Fatalf("server-side filters must not trigger a catalog walk")
	}
	for _, p := range []ProductSearchParams{
		{Search: "x"}, {Tags: "x"}, {SKU: "x"}, {Barcode: "x"},
		{PriceMin: floatPtr(1)}, {InventoryQuantityMax: intPtr(1)},
	} {
		if !p.NeedsClientSideFiltering() {
			t.Fatalf("expected %+v to need client-side filtering", p)
		}
	}
}

func TestProductSearchParams_Validate(t *testing.T) {
	if err := (ProductSearchParams{CreatedAtMin: "2024-01-01T00:00:00Z", SortBy: "price", SortOrder: "asc"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ProductSearchParams{CreatedAtMin: "yesterday", PriceMin: floatPtr(10), PriceMax: floatPtr(5), SortBy: "color"}.Validate()
	var verr *apperrors.ErrValidation
	if !errors.As(err, &verr) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, field := range []string{"created_at_min", "price_min", "sort_by"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected %s to be reported, got %v", field, verr.Fields)
		}
	}
}
