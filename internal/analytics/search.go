package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

// ProductSearchParams is the advanced product search body
type ProductSearchParams struct {
	Title                string   `json:"title"`
	Vendor               string   `json:"vendor"`
	ProductType          string   `json:"product_type"`
	Status               string   `json:"status"`
	Search               string   `json:"search"`
	Tags                 string   `json:"tags"`
	SKU                  string   `json:"sku"`
	Barcode              string   `json:"barcode"`
	PriceMin             *float64 `json:"price_min"`
	PriceMax             *float64 `json:"price_max"`
	InventoryQuantityMin *int     `json:"inventory_quantity_min"`
	InventoryQuantityMax *int     `json:"inventory_quantity_max"`
	CreatedAtMin         string   `json:"created_at_min"`
	CreatedAtMax         string   `json:"created_at_max"`
	UpdatedAtMin         string   `json:"updated_at_min"`
	UpdatedAtMax         string   `json:"updated_at_max"`
	SortBy               string   `json:"sort_by"`
	SortOrder            string   `json:"sort_order"`
	Limit                int      `json:"limit"`
}

// Relevance weights for free-text search
const (
	scoreTitleExact    = 100
	scoreTitleContains = 50
	scoreSKU           = 30
	scoreTags          = 20
	scoreVendorOrType  = 10
)

var sortFields = map[string]bool{
	"": true, "relevance": true, "title": true, "price": true, "inventory": true, "created_at": true, "updated_at": true,
}

// Validate rejects malformed dates, ranges and sort options
func (p ProductSearchParams) Validate() error {
	fields := map[string]string{}
	for name, v := range map[string]string{
		"created_at_min": p.CreatedAtMin,
		"created_at_max": p.CreatedAtMax,
		"updated_at_min": p.UpdatedAtMin,
		"updated_at_max": p.UpdatedAtMax,
	} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339, v); err != nil {
			fields[name] = "must be an RFC3339 timestamp"
		}
	}
	if p.PriceMin != nil && p.PriceMax != nil && *p.PriceMin > *p.PriceMax {
		fields["price_min"] = "must not exceed price_max"
	}
	if p.InventoryQuantityMin != nil && p.InventoryQuantityMax != nil && *p.InventoryQuantityMin > *p.InventoryQuantityMax {
		fields["inventory_quantity_min"] = "must not exceed inventory_quantity_max"
	}
	if !sortFields[strings.ToLower(p.SortBy)] {
		fields["sort_by"] = "must be one of relevance, title, price, inventory, created_at, updated_at"
	}
	if o := strings.ToLower(p.SortOrder); o != "" && o != "asc" && o != "desc" {
		fields["sort_order"] = "must be asc or desc"
	}
	if len(fields) > 0 {
		return &apperrors.ErrValidation{Message: "invalid search parameters", Fields: fields}
	}
	return nil
}

// NeedsClientSideFiltering reports whether any filter Shopify cannot apply is present.
// Those searches walk the whole catalog.
func (p ProductSearchParams) NeedsClientSideFiltering() bool {
	return p.Search != "" || p.Tags != "" || p.SKU != "" || p.Barcode != "" ||
		p.PriceMin != nil || p.PriceMax != nil ||
		p.InventoryQuantityMin != nil || p.InventoryQuantityMax != nil
}

// ScoredProduct is a search hit
type ScoredProduct struct {
	domain.Product
	RelevanceScore int `json:"relevance_score"`
}

// FilterAndScore applies every filter, scores free-text matches and sorts.
// Products that do not match a non-empty Search term are dropped.
func FilterAndScore(products []domain.Product, p ProductSearchParams) []ScoredProduct {
	term := strings.ToLower(strings.TrimSpace(p.Search))
	wantTags := splitTags(p.Tags)

	hits := make([]ScoredProduct, 0, len(products))
	for _, prod := range products {
		if !matchesFilters(prod, p, wantTags) {
			continue
		}
		score := 0
		if term != "" {
			score = relevance(prod, term)
			if score == 0 {
				continue
			}
		}
		hits = append(hits, ScoredProduct{Product: prod, RelevanceScore: score})
	}

	sortHits(hits, p, term != "")
	if p.Limit > 0 && len(hits) > p.Limit {
		hits = hits[:p.Limit]
	}
	return hits
}

func matchesFilters(prod domain.Product, p ProductSearchParams, wantTags []string) bool {
	if p.Title != "" && !containsFold(prod.Title, p.Title) {
		return false
	}
	if p.Vendor != "" && !strings.EqualFold(prod.Vendor, p.Vendor) {
		return false
	}
	if p.ProductType != "" && !strings.EqualFold(prod.ProductType, p.ProductType) {
		return false
	}
	if p.Status != "" && !strings.EqualFold(prod.Status, p.Status) {
		return false
	}
	if !inTimeRange(prod.CreatedAt, p.CreatedAtMin, p.CreatedAtMax) || !inTimeRange(prod.UpdatedAt, p.UpdatedAtMin, p.UpdatedAtMax) {
		return false
	}
	if len(wantTags) > 0 {
		have := splitTags(prod.Tags)
		found := false
		for _, w := range wantTags {
			for _, h := range have {
				if h == w {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	if p.SKU != "" && !anyVariant(prod, func(v domain.Variant) bool { return containsFold(v.SKU, p.SKU) }) {
		return false
	}
	if p.Barcode != "" && !anyVariant(prod, func(v domain.Variant) bool { return v.Barcode == p.Barcode }) {
		return false
	}
	if p.PriceMin != nil || p.PriceMax != nil {
		inRange := anyVariant(prod, func(v domain.Variant) bool {
			price := v.Price.InexactFloat64()
			return (p.PriceMin == nil || price >= *p.PriceMin) && (p.PriceMax == nil || price <= *p.PriceMax)
		})
		if !inRange {
			return false
		}
	}
	if p.InventoryQuantityMin != nil || p.InventoryQuantityMax != nil {
		total := totalInventory(prod)
		if p.InventoryQuantityMin != nil && total < *p.InventoryQuantityMin {
			return false
		}
		if p.InventoryQuantityMax != nil && total > *p.InventoryQuantityMax {
			return false
		}
	}
	return true
}

func relevance(prod domain.Product, term string) int {
	score := 0
	title := strings.ToLower(prod.Title)
	switch {
	case title == term:
		score += scoreTitleExact
	case strings.Contains(title, term):
		score += scoreTitleContains
	}
	if anyVariant(prod, func(v domain.Variant) bool { return containsFold(v.SKU, term) }) {
		score += scoreSKU
	}
	if containsFold(prod.Tags, term) {
		score += scoreTags
	}
	if containsFold(prod.Vendor, term) || containsFold(prod.ProductType, term) {
		score += scoreVendorOrType
	}
	return score
}

func sortHits(hits []ScoredProduct, p ProductSearchParams, searching bool) {
	by := strings.ToLower(p.SortBy)
	if by == "" {
		if !searching {
			return
		}
		by = "relevance"
	}
	desc := strings.ToLower(p.SortOrder) == "desc" || (p.SortOrder == "" && by == "relevance")

	less := func(a, b ScoredProduct) bool {
		switch by {
		case "title":
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case "price":
			return minPrice(a.Product) < minPrice(b.Product)
		case "inventory":
			return totalInventory(a.Product) < totalInventory(b.Product)
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.RelevanceScore < b.RelevanceScore
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if desc {
			return less(hits[j], hits[i])
		}
		return less(hits[i], hits[j])
	})
}

func inTimeRange(t time.Time, minStr, maxStr string) bool {
	if minStr != "" {
		if lo, err := time.Parse(time.RFC3339, minStr); err == nil && t.Before(lo) {
			return false
		}
	}
	if maxStr != "" {
		if hi, err := time.Parse(time.RFC3339, maxStr); err == nil && t.After(hi) {
			return false
		}
	}
	return true
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func anyVariant(p domain.Product, fn func(domain.Variant) bool) bool {
	for _, v := range p.Variants {
		if fn(v) {
			return true
		}
	}
	return false
}

func totalInventory(p domain.Product) int {
	total := 0
	for _, v := range p.Variants {
		total += v.InventoryQuantity
	}
	return total
}

func minPrice(p domain.Product) float64 {
	if len(p.Variants) == 0 {
		return 0
	}
	m := p.Variants[0].Price.InexactFloat64()
	for _, v := range p.Variants[1:] {
		if f := v.Price.InexactFloat64(); f < m {
			m = f
		}
	}
	return m
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
