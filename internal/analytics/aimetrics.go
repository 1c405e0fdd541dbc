package analytics

import (
	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

// AIMetrics is the payload sent to the strategy prediction service,
// and returned as-is when that service is unavailable.
type AIMetrics struct {
	ProductID                int64                  `json:"product_id"`
	VariantID                int64                  `json:"variant_id"`
	ProductTitle             string                 `json:"product_title"`
	VariantTitle             string                 `json:"variant_title"`
	SKU                      string                 `json:"sku"`
	Category                 string                 `json:"category"`
	CategorySource           domain.CategorySource  `json:"category_source"`
	Price                    float64                `json:"price"`
	CompareAtPrice           *float64               `json:"compare_at_price"`
	CurrentInventory         int                    `json:"current_inventory"`
	UnitsSold                int                    `json:"total_units_sold"`
	Revenue                  float64                `json:"total_revenue"`
	DaysLive                 int                    `json:"days_live"`
	MonthlySalesRate         float64                `json:"monthly_sales_rate"`
	InventoryTurnoverRate    float64                `json:"inventory_turnover_rate"`
	DaysOfStockRemaining     float64                `json:"days_of_stock_remaining"`
	SalesAcceleration        float64                `json:"sales_acceleration"`
	SeasonalityScore         float64                `json:"seasonality_score"`
	PriceElasticityIndicator float64                `json:"price_elasticity_indicator"`
	RepeatPurchaseRate       float64                `json:"repeat_purchase_rate"`
	ChurnRateEstimate        float64                `json:"churn_rate_estimate"`
	AverageOrderValue        float64                `json:"average_order_value"`
	IsStale                  bool                   `json:"is_stale"`
	PercentSoldPerMonth      float64                `json:"percent_sold_per_month"`
	InventoryStatus          domain.InventoryStatus `json:"inventory_status"`
	Trend                    domain.Trend           `json:"trend"`
	SampleWindow             string                 `json:"sample_window"`
}

// BuildAIMetrics flattens variant metrics, staleness and buyer behaviour into one record.
// Repeat rate counts buyers of this variant who appear in more than one order of the sample.
func BuildAIMetrics(product domain.Product, variant domain.Variant, category string, source domain.CategorySource,
	metrics VariantMetrics, stale StaleAnalysisResult, orders []domain.Order) AIMetrics {
	buyers := map[int64]int{}
	for _, o := range orders {
		id := o.CustomerID()
		if id == 0 {
			continue
		}
		for _, li := range o.LineItems {
			if li.MatchesVariant(variant.ID) {
				buyers[id]++
				break
			}
		}
	}
	repeat := 0
	for _, n := range buyers {
		if n > 1 {
			repeat++
		}
	}
	repeatRate := safeDiv(float64(repeat), float64(len(buyers)))
	churn := 0.0
	if len(buyers) > 0 {
		churn = 1 - repeatRate
	}

	var compareAt *float64
	if variant.CompareAtPrice.Valid {
		c := variant.CompareAtPrice.Decimal.Round(2).InexactFloat64()
		compareAt = &c
	}

	rounded := metrics.Rounded()
	return AIMetrics{
		ProductID:                product.ID,
		VariantID:                variant.ID,
		ProductTitle:             product.Title,
		VariantTitle:             variant.Title,
		SKU:                      variant.SKU,
		Category:                 category,
		CategorySource:           source,
		Price:                    variant.Price.Round(2).InexactFloat64(),
		CompareAtPrice:           compareAt,
		CurrentInventory:         metrics.CurrentInventory,
		UnitsSold:                metrics.UnitsSold,
		Revenue:                  rounded.Revenue,
		DaysLive:                 metrics.DaysLive,
		MonthlySalesRate:         rounded.MonthlySalesRate,
		InventoryTurnoverRate:    rounded.InventoryTurnoverRate,
		DaysOfStockRemaining:     rounded.DaysOfStockRemaining,
		SalesAcceleration:        rounded.SalesAcceleration,
		SeasonalityScore:         rounded.SeasonalityScore,
		PriceElasticityIndicator: rounded.PriceElasticityIndicator,
		RepeatPurchaseRate:       Round2(repeatRate),
		ChurnRateEstimate:        Round2(churn),
		AverageOrderValue:        Round2(safeDiv(metrics.Revenue, float64(metrics.OrdersWithVariant))),
		IsStale:                  stale.IsStale,
		PercentSoldPerMonth:      stale.PercentSoldPerMonth,
		InventoryStatus:          InventoryStatusFor(metrics.CurrentInventory, metrics.DaysOfStockRemaining),
		Trend:                    TrendFor(metrics.SalesAcceleration),
		SampleWindow:             metrics.SampleWindow,
	}
}
