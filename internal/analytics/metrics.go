package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

// VariantMetrics is derived from one bounded page of recent orders, never full history.
// SampleWindow says so in every response.
type VariantMetrics struct {
	UnitsSold                 int        `json:"total_units_sold"`
	Revenue                   float64    `json:"total_revenue"`
	OrdersWithVariant         int        `json:"orders_with_variant"`
	FirstSaleAt               *time.Time `json:"first_sale_date"`
	LastSaleAt                *time.Time `json:"last_sale_date"`
	DaysLive                  int        `json:"days_live"`
	MonthsLive                float64    `json:"months_live"`
	MonthlySalesRate          float64    `json:"monthly_sales_rate"`
	DailySalesRate            float64    `json:"daily_sales_rate"`
	CurrentInventory          int        `json:"current_inventory"`
	EstimatedInitialInventory int        `json:"estimated_initial_inventory"`
	InventoryTurnoverRate     float64    `json:"inventory_turnover_rate"`
	DaysOfStockRemaining      float64    `json:"days_of_stock_remaining"`
	StockoutRisk              int        `json:"stockout_risk"`
	SalesAcceleration         float64    `json:"sales_acceleration"`
	SeasonalityScore          float64    `json:"seasonality_score"`
	PriceElasticityIndicator  float64    `json:"price_elasticity_indicator"`
	OrdersAnalyzed            int        `json:"orders_analyzed"`
	SampleWindow              string     `json:"sample_window"`
}

type saleEvent struct {
	at    time.Time
	units int
}

// CalculateVariantMetrics reduces the order line items matching variant into metrics.
// Values are unrounded; call Rounded before returning them to a client.
func CalculateVariantMetrics(variant domain.Variant, product domain.Product, orders []domain.Order, now time.Time) VariantMetrics {
	m := VariantMetrics{
		CurrentInventory: variant.InventoryQuantity,
		OrdersAnalyzed:   len(orders),
		SampleWindow:     SampleWindow(len(orders)),
	}

	var events []saleEvent
	for _, order := range orders {
		units := 0
		for _, li := range order.LineItems {
			if !li.MatchesVariant(variant.ID) {
				continue
			}
			units += li.Quantity
			m.Revenue += li.Price.InexactFloat64() * float64(li.Quantity)
		}
		if units == 0 {
			continue
		}
		m.UnitsSold += units
		m.OrdersWithVariant++
		events = append(events, saleEvent{at: order.CreatedAt, units: units})

		at := order.CreatedAt
		if m.FirstSaleAt == nil || at.Before(*m.FirstSaleAt) {
			m.FirstSaleAt = &at
		}
		if m.LastSaleAt == nil || at.After(*m.LastSaleAt) {
			last := at
			m.LastSaleAt = &last
		}
	}

	m.DaysLive, m.MonthsLive = LiveDuration(product.LiveSince(), now)
	m.MonthlySalesRate = float64(m.UnitsSold) / m.MonthsLive
	m.DailySalesRate = float64(m.UnitsSold) / float64(m.DaysLive)

	m.EstimatedInitialInventory = EstimatedInitialInventory(m.CurrentInventory, m.UnitsSold)
	m.InventoryTurnoverRate = safeDiv(float64(m.UnitsSold), float64(m.EstimatedInitialInventory))

	m.DaysOfStockRemaining = DaysOfStockRemaining(m.CurrentInventory, m.DailySalesRate)
	if m.DaysOfStockRemaining <= StockoutRiskDays {
		m.StockoutRisk = 1
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })
	m.SalesAcceleration = salesAcceleration(events)
	m.SeasonalityScore = seasonalityScore(events)
	m.PriceElasticityIndicator = priceElasticity(variant, m.UnitsSold)

	return m
}

// Rounded returns a copy with money and rate fields rounded for output
func (m VariantMetrics) Rounded() VariantMetrics {
	m.Revenue = Round2(m.Revenue)
	m.MonthsLive = Round2(m.MonthsLive)
	m.MonthlySalesRate = Round2(m.MonthlySalesRate)
	m.DailySalesRate = Round2(m.DailySalesRate)
	m.InventoryTurnoverRate = Round2(m.InventoryTurnoverRate)
	m.DaysOfStockRemaining = Round2(m.DaysOfStockRemaining)
	m.SalesAcceleration = Round2(m.SalesAcceleration)
	m.SeasonalityScore = Round2(m.SeasonalityScore)
	m.PriceElasticityIndicator = Round2(m.PriceElasticityIndicator)
	return m
}

// SampleWindow describes the order sample the metrics were computed from
func SampleWindow(orders int) string {
	return fmt.Sprintf("last %d orders (most recent page only, not full order history)", orders)
}

// LiveDuration returns whole days live (at least 1) and months live (at least one day's worth).
func LiveDuration(since, now time.Time) (int, float64) {
	days := 1
	if !since.IsZero() {
		if d := int(math.Ceil(now.Sub(since).Hours() / 24)); d > days {
			days = d
		}
	}
	months := math.Max(float64(days)/DaysPerMonth, MinMonthsLive)
	return days, months
}

// EstimatedInitialInventory is on-hand stock plus units sold. There is no inventory
// ledger, so this is an estimate.
func EstimatedInitialInventory(current, unitsSold int) int {
	if current < 0 {
		current = 0
	}
	return current + unitsSold
}

// DaysOfStockRemaining is 0 with nothing on hand and MaxDaysOfStock when nothing sells.
func DaysOfStockRemaining(stock int, dailyRate float64) float64 {
	if stock <= 0 {
		return 0
	}
	if dailyRate <= 0 {
		return MaxDaysOfStock
	}
	return math.Min(float64(stock)/dailyRate, MaxDaysOfStock)
}

// InventoryStatusFor labels stock with the same day boundaries the inventory rule uses.
func InventoryStatusFor(stock int, daysOfStock float64) domain.InventoryStatus {
	switch {
	case stock <= 0:
		return domain.InventoryOutOfStock
	case daysOfStock <= CriticalStockDays:
		return domain.InventoryCriticalLow
	case daysOfStock <= LowStockDays:
		return domain.InventoryLow
	case daysOfStock <= OptimalStockDays:
		return domain.InventoryOptimal
	case daysOfStock <= OverstockDays:
		return domain.InventoryHigh
	default:
		return domain.InventoryOverstocked
	}
}

// TrendFor labels acceleration with the coarse ±0.1 band
func TrendFor(acceleration float64) domain.Trend {
	switch {
	case acceleration > TrendLabelAcceleration:
		return domain.TrendImproving
	case acceleration < -TrendLabelAcceleration:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// minAccelerationSpan keeps same-moment orders from dividing by zero
const minAccelerationSpan = time.Hour

// salesAcceleration compares the daily rate of the later half of sales with the earlier half.
// The halves are adjacent windows meeting at the boundary sale, and each sale counts toward
// the window that ends at it, so an even pace gives 0. events must be sorted by time.
func salesAcceleration(events []saleEvent) float64 {
	if len(events) < 3 {
		return 0
	}
	mid := len(events) / 2
	first := windowRate(events[:mid+1])
	if first == 0 {
		return 0
	}
	second := windowRate(events[mid:])
	return (second - first) / first
}

// windowRate is units per day from the first to the last event, not counting the opening sale.
func windowRate(events []saleEvent) float64 {
	units := 0
	for _, e := range events[1:] {
		units += e.units
	}
	span := events[len(events)-1].at.Sub(events[0].at)
	if span < minAccelerationSpan {
		span = minAccelerationSpan
	}
	return float64(units) / (span.Hours() / 24)
}

// seasonalityScore is the coefficient of variation of units per calendar month,
// over months that had sales.
func seasonalityScore(events []saleEvent) float64 {
	var byMonth [12]float64
	for _, e := range events {
		byMonth[e.at.Month()-1] += float64(e.units)
	}
	var totals []float64
	for _, v := range byMonth {
		if v > 0 {
			totals = append(totals, v)
		}
	}
	if len(totals) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range totals {
		mean += v
	}
	mean /= float64(len(totals))

	variance := 0.0
	for _, v := range totals {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(totals))
	return safeDiv(math.Sqrt(variance), mean)
}

// priceElasticity is units sold per unit of relative discount from the compare-at price.
// A crude proxy, not a calibrated elasticity.
func priceElasticity(v domain.Variant, unitsSold int) float64 {
	if !v.CompareAtPrice.Valid || v.Price.IsZero() || v.CompareAtPrice.Decimal.IsZero() {
		return 0
	}
	if v.Price.Equal(v.CompareAtPrice.Decimal) {
		return 0
	}
	change := v.Price.Sub(v.CompareAtPrice.Decimal).Div(v.CompareAtPrice.Decimal).Abs().InexactFloat64()
	return safeDiv(float64(unitsSold), change)
}
