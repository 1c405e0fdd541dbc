package analytics

import (
	"fmt"
	"time"
)

// StaleAnalysisResult classifies a variant as stale by the share of its inventory sold per month
type StaleAnalysisResult struct {
	IsStale                 bool    `json:"is_stale"`
	PercentSoldPerMonth     float64 `json:"percent_sold_per_month"`
	MonthsLive              float64 `json:"months_live"`
	ThresholdPercent        float64 `json:"threshold_percent"`
	UnitsSold               int     `json:"units_sold"`
	EstimatedTotalInventory int     `json:"estimated_total_inventory"`
	Method                  string  `json:"method"`
}

// AnalyzeStaleness compares the monthly sell-through percentage against thresholdPercent.
// Returned figures are rounded; the classification uses the unrounded percentage.
func AnalyzeStaleness(unitsSold, estimatedTotalInventory int, liveSince, evaluatedAt time.Time, thresholdPercent float64) StaleAnalysisResult {
	if thresholdPercent < 0 {
		thresholdPercent = 0
	}
	_, months := LiveDuration(liveSince, evaluatedAt)

	percent := 0.0
	if estimatedTotalInventory > 0 {
		percent = float64(unitsSold) / months / float64(estimatedTotalInventory) * 100
	}

	return StaleAnalysisResult{
		IsStale:                 percent < thresholdPercent,
		PercentSoldPerMonth:     Round2(percent),
		MonthsLive:              Round2(months),
		ThresholdPercent:        thresholdPercent,
		UnitsSold:               unitsSold,
		EstimatedTotalInventory: estimatedTotalInventory,
		Method: fmt.Sprintf("(%d units sold / %.2f months live) / %d estimated total inventory x 100 = %.2f%% per month, stale below %.2f%%",
			unitsSold, months, estimatedTotalInventory, percent, thresholdPercent),
	}
}
