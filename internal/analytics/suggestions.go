package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

// Suggestion is one recommendation for a variant
type Suggestion struct {
	Type            domain.SuggestionType `json:"type"`
	Priority        domain.Priority       `json:"priority"`
	Action          string                `json:"action"`
	Reason          string                `json:"reason"`
	SuggestedPrice  *float64              `json:"suggested_price,omitempty"`
	ReorderQuantity *int                  `json:"reorder_quantity,omitempty"`
}

// SuggestionInput carries everything the rules look at
type SuggestionInput struct {
	Price                float64
	MonthlySalesRate     float64
	Threshold            ThresholdExplanation
	CurrentInventory     int
	DaysOfStockRemaining float64
	TotalRevenue         float64
	MonthsLive           float64
	SalesAcceleration    float64
	SeasonalityScore     float64
	Stale                *StaleAnalysisResult
	TotalUnitsSold       *int
}

// PerformanceSummary compares the variant's monthly rate with its target
type PerformanceSummary struct {
	CurrentMonthlyRate  float64                `json:"current_monthly_rate"`
	TargetMonthlyRate   float64                `json:"target_monthly_rate"`
	PerformanceRatio    float64                `json:"performance_ratio"`
	InventoryStatus     domain.InventoryStatus `json:"inventory_status"`
	Trend               domain.Trend           `json:"trend"`
	IsStale             *bool                  `json:"is_stale,omitempty"`
	PercentSoldPerMonth *float64               `json:"percent_sold_per_month,omitempty"`
}

// SuggestionReport is the full engine output
type SuggestionReport struct {
	Suggestions          []Suggestion         `json:"suggestions"`
	Performance          PerformanceSummary   `json:"performance_summary"`
	ThresholdExplanation ThresholdExplanation `json:"threshold_explanation"`
}

// GenerateSuggestions runs every rule in order, keeps all that fire and ranks them by priority.
func GenerateSuggestions(in SuggestionInput) SuggestionReport {
	target := in.Threshold.FinalThreshold
	dailyRate := in.MonthlySalesRate / DaysPerMonth

	var out []Suggestion
	if s, ok := inventoryRule(in, dailyRate); ok {
		out = append(out, s)
	}
	if s, ok := performanceRule(in, target); ok {
		out = append(out, s)
	}
	if s, ok := trendRule(in); ok {
		out = append(out, s)
	}
	if in.MonthlySalesRate >= target && in.Price > 0 {
		proposed := Round2(in.Price * PriceIncreaseFactor)
		out = append(out, Suggestion{
			Type:           domain.SuggestionPricingOpportunity,
			Priority:       domain.PriorityMedium,
			Action:         fmt.Sprintf("Test a price increase from %.2f to %.2f", in.Price, proposed),
			Reason:         fmt.Sprintf("Demand of %.2f units/month meets the %.2f target, so there is room to improve margin", in.MonthlySalesRate, target),
			SuggestedPrice: &proposed,
		})
	}
	if in.SeasonalityScore > SeasonalityAlertScore {
		out = append(out, Suggestion{
			Type:     domain.SuggestionSeasonalPlanning,
			Priority: domain.PriorityMedium,
			Action:   "Plan stock and promotions around peak months",
			Reason:   fmt.Sprintf("Monthly sales vary strongly (seasonality score %.2f)", in.SeasonalityScore),
		})
	}
	if in.MonthlySalesRate < target && in.TotalRevenue > 0 {
		out = append(out, Suggestion{
			Type:     domain.SuggestionBundlingOpportunity,
			Priority: domain.PriorityLow,
			Action:   "Bundle with a best seller or offer it as an add-on",
			Reason:   fmt.Sprintf("It sells (%.2f revenue so far) but below the %.2f units/month target", in.TotalRevenue, target),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority.Rank() > out[j].Priority.Rank() })
	if out == nil {
		out = []Suggestion{}
	}

	summary := PerformanceSummary{
		CurrentMonthlyRate: Round2(in.MonthlySalesRate),
		TargetMonthlyRate:  Round2(target),
		PerformanceRatio:   Round2(safeDiv(in.MonthlySalesRate, target)),
		InventoryStatus:    InventoryStatusFor(in.CurrentInventory, in.DaysOfStockRemaining),
		Trend:              TrendFor(in.SalesAcceleration),
	}
	if in.Stale != nil {
		stale, pct := in.Stale.IsStale, in.Stale.PercentSoldPerMonth
		summary.IsStale = &stale
		summary.PercentSoldPerMonth = &pct
	}

	return SuggestionReport{
		Suggestions:          out,
		Performance:          summary,
		ThresholdExplanation: in.Threshold,
	}
}

func inventoryRule(in SuggestionInput, dailyRate float64) (Suggestion, bool) {
	days := in.DaysOfStockRemaining
	switch {
	case in.CurrentInventory <= 0:
		return Suggestion{
			Type:     domain.SuggestionCriticalInventory,
			Priority: domain.PriorityCritical,
			Action:   "Restock immediately",
			Reason:   fmt.Sprintf("Out of stock while selling %.2f units/month", in.MonthlySalesRate),
		}, true
	case days <= CriticalStockDays:
		qty := reorderQuantity(in.CurrentInventory, dailyRate)
		return Suggestion{
			Type:            domain.SuggestionLowInventory,
			Priority:        domain.PriorityUrgent,
			Action:          fmt.Sprintf("Reorder %d units now", qty),
			Reason:          fmt.Sprintf("Only %.1f days of stock left at the current sales rate", days),
			ReorderQuantity: &qty,
		}, true
	case days <= LowStockDays:
		qty := reorderQuantity(in.CurrentInventory, dailyRate)
		return Suggestion{
			Type:            domain.SuggestionInventoryWarning,
			Priority:        domain.PriorityHigh,
			Action:          fmt.Sprintf("Plan a reorder of about %d units", qty),
			Reason:          fmt.Sprintf("%.1f days of stock left, under %.0f days", days, LowStockDays),
			ReorderQuantity: &qty,
		}, true
	case days > OverstockDays:
		return Suggestion{
			Type:     domain.SuggestionOverstock,
			Priority: domain.PriorityMedium,
			Action:   "Reduce stock with a promotion, markdown or bundle",
			Reason:   fmt.Sprintf("%d units on hand cover %.0f days of sales, over %.0f days", in.CurrentInventory, days, OverstockDays),
		}, true
	}
	return Suggestion{}, false
}

func performanceRule(in SuggestionInput, target float64) (Suggestion, bool) {
	rate := in.MonthlySalesRate
	switch {
	case rate == 0:
		reason := fmt.Sprintf("No sales in the analyzed orders after %.1f months live", in.MonthsLive)
		if in.Stale != nil && in.Stale.IsStale {
			reason += fmt.Sprintf("; stale at %.2f%% of inventory sold per month", in.Stale.PercentSoldPerMonth)
		}
		return Suggestion{
			Type:     domain.SuggestionNoSales,
			Priority: domain.PriorityHigh,
			Action:   "Review listing visibility, imagery and price, or consider delisting",
			Reason:   reason,
		}, true
	case rate < PoorPerformanceRatio*target:
		return Suggestion{
			Type:     domain.SuggestionPoorPerformance,
			Priority: domain.PriorityHigh,
			Action:   "Run a targeted promotion or rework the product page",
			Reason:   fmt.Sprintf("%.2f units/month is under %.0f%% of the %.2f target%s", rate, PoorPerformanceRatio*100, target, unitsNote(in.TotalUnitsSold)),
		}, true
	case rate < target:
		return Suggestion{
			Type:     domain.SuggestionBelowTarget,
			Priority: domain.PriorityMedium,
			Action:   "Boost visibility with merchandising or small discounts",
			Reason:   fmt.Sprintf("%.2f units/month is below the %.2f target%s", rate, target, unitsNote(in.TotalUnitsSold)),
		}, true
	case rate >= HighPerformerRatio*target:
		return Suggestion{
			Type:     domain.SuggestionHighPerformer,
			Priority: domain.PriorityLow,
			Action:   "Keep it in stock and feature it in campaigns",
			Reason:   fmt.Sprintf("%.2f units/month is at least %.0fx the %.2f target", rate, HighPerformerRatio, target),
		}, true
	}
	return Suggestion{}, false
}

func trendRule(in SuggestionInput) (Suggestion, bool) {
	switch {
	case in.SalesAcceleration < -TrendAlertAcceleration:
		return Suggestion{
			Type:     domain.SuggestionDecliningTrend,
			Priority: domain.PriorityHigh,
			Action:   "Investigate the slowdown and refresh marketing",
			Reason:   fmt.Sprintf("Recent sales pace is %.0f%% below the earlier pace", math.Abs(in.SalesAcceleration)*100),
		}, true
	case in.SalesAcceleration > TrendAlertAcceleration:
		return Suggestion{
			Type:     domain.SuggestionPositiveMomentum,
			Priority: domain.PriorityLow,
			Action:   "Increase stock and ad spend while demand grows",
			Reason:   fmt.Sprintf("Recent sales pace is %.0f%% above the earlier pace", in.SalesAcceleration*100),
		}, true
	}
	return Suggestion{}, false
}

// reorderQuantity tops stock up to ReorderCoverageDays of sales, at least one unit
func reorderQuantity(stock int, dailyRate float64) int {
	qty := int(math.Ceil(dailyRate*ReorderCoverageDays)) - stock
	if qty < 1 {
		qty = 1
	}
	return qty
}

func unitsNote(units *int) string {
	if units == nil {
		return ""
	}
	return fmt.Sprintf(" (%d units sold in the analyzed orders)", *units)
}
