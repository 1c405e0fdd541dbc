package domain

import (
	"encoding/json"
	"testing"
	"time"
)

const productJSON = `{
  "id": 632910392,
  "title": "IPod Nano - 8GB",
  "vendor": "Apple",
  "product_type": "Cult Products",
  "status": "active",
  "tags": "Emotive, Flash Memory, MP3, Music",
  "published_at": null,
  "created_at": "2024-01-10T10:00:00-05:00",
  "variants": [
    {"id": 808950810, "product_id": 632910392, "sku": "IPOD2008PINK", "price": "199.00", "compare_at_price": null, "inventory_quantity": 10, "requires_shipping": true, "weight": 1.25},
    {"id": 49148385, "product_id": 632910392, "sku": "IPOD2008RED", "price": "149.50", "compare_at_price": "199.00", "inventory_quantity": 20}
  ]
}`

func TestProductDecode(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(productJSON), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(p.Variants))
	}
	if got := p.Variants[0].Price.InexactFloat64(); got != 199 {
		t.Fatalf("expected price 199, got %v", got)
	}
	if p.Variants[0].CompareAtPrice.Valid {
		t.Fatalf("expected null compare_at_price to decode as invalid")
	}
	if !p.Variants[1].CompareAtPrice.Valid || p.Variants[1].CompareAtPrice.Decimal.InexactFloat64() != 199 {
		t.Fatalf("expected compare_at_price 199, got %+v", p.Variants[1].CompareAtPrice)
	}
	if p.PublishedAt != nil {
		t.Fatalf("expected nil published_at")
	}
}

func TestProductLiveSince(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	published := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	p := Product{CreatedAt: created}
	if !p.LiveSince().Equal(created) {
		t.Fatalf("expected creation date when unpublished, got %v", p.LiveSince())
	}
	p.PublishedAt = &published
	if !p.LiveSince().Equal(published) {
		t.Fatalf("expected publish date, got %v", p.LiveSince())
	}
}

func TestProductFindVariant(t *testing.T) {
	p := Product{Variants: []Variant{{ID: 1}, {ID: 2}}}
	v, ok := p.FindVariant(2)
	if !ok || v.ID != 2 {
		t.Fatalf("expected variant 2, got %+v %v", v, ok)
	}
	if _, ok := p.FindVariant(3); ok {
		t.Fatalf("expected variant 3 to be absent")
	}
}

func TestOrderShippingTotal(t *testing.T) {
	var withSet, withLines Order
	if err := json.Unmarshal([]byte(`{"total_shipping_price_set":{"shop_money":{"amount":"12.50","currency_code":"USD"}},"shipping_lines":[{"price":"99.00"}]}`), &withSet); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := withSet.ShippingTotal().InexactFloat64(); got != 12.5 {
		t.Fatalf("expected shop money total 12.5, got %v", got)
	}
	if err := json.Unmarshal([]byte(`{"shipping_lines":[{"price":"4.00"},{"price":"6.00"}]}`), &withLines); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := withLines.ShippingTotal().InexactFloat64(); got != 10 {
		t.Fatalf("expected summed shipping lines 10, got %v", got)
	}
}

func TestPriorityRank(t *testing.T) {
	order := []Priority{PriorityCritical, PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() <= order[i].Rank() {
			t.Fatalf("expected %s to outrank %s", order[i-1], order[i])
		}
	}
}
