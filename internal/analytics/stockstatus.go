package analytics

import (
	"time"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

// VariantStockStatus is one variant's line in a product stock report
type VariantStockStatus struct {
	VariantID            int64                  `json:"variant_id"`
	Title                string                 `json:"title"`
	SKU                  string                 `json:"sku"`
	CurrentInventory     int                    `json:"current_inventory"`
	UnitsSold            int                    `json:"units_sold"`
	DailySalesRate       float64                `json:"daily_sales_rate"`
	DaysOfStockRemaining float64                `json:"days_of_stock_remaining"`
	StockoutRisk         bool                   `json:"stockout_risk"`
	InventoryStatus      domain.InventoryStatus `json:"inventory_status"`
}

// StockStatus reports the stock position of every variant of product
func StockStatus(product domain.Product, orders []domain.Order, now time.Time) []VariantStockStatus {
	out := make([]VariantStockStatus, 0, len(product.Variants))
	for _, v := range product.Variants {
		m := CalculateVariantMetrics(v, product, orders, now)
		out = append(out, VariantStockStatus{
			VariantID:            v.ID,
			Title:                v.Title,
			SKU:                  v.SKU,
			CurrentInventory:     v.InventoryQuantity,
			UnitsSold:            m.UnitsSold,
			DailySalesRate:       Round2(m.DailySalesRate),
			DaysOfStockRemaining: Round2(m.DaysOfStockRemaining),
			StockoutRisk:         m.StockoutRisk == 1,
			InventoryStatus:      InventoryStatusFor(v.InventoryQuantity, m.DaysOfStockRemaining),
		})
	}
	return out
}
