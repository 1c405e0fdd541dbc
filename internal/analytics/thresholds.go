package analytics

import (
	"fmt"
	"strings"
)

// Every tunable number the analytics use. Change them here, nowhere else.
const (
	// DaysPerMonth converts days live into months live
	DaysPerMonth = 30.0
	// MinMonthsLive floors months live at one day so same-day products do not divide by ~0
	MinMonthsLive = 1.0 / DaysPerMonth

	// MaxDaysOfStock is reported when nothing is selling but stock remains,
	// and caps every other days-of-stock figure
	MaxDaysOfStock = 999.0
	// StockoutRiskDays flags a variant that will run out within a month
	StockoutRiskDays = 30.0

	// Inventory day boundaries, shared by the inventory rule and the status label
	CriticalStockDays   = 7.0
	LowStockDays        = 30.0
	OptimalStockDays    = 90.0
	OverstockDays       = 180.0
	ReorderCoverageDays = 60.0

	// Performance rule, as fractions of the monthly threshold
	PoorPerformanceRatio = 0.3
	HighPerformerRatio   = 2.0

	// TrendAlertAcceleration fires DECLINING_TREND / POSITIVE_MOMENTUM
	TrendAlertAcceleration = 0.3
	// TrendLabelAcceleration is the coarser band for the IMPROVING/DECLINING/STABLE label
	TrendLabelAcceleration = 0.1

	// PriceIncreaseFactor is the proposed price for a pricing opportunity
	PriceIncreaseFactor = 1.15
	// SeasonalityAlertScore fires SEASONAL_PLANNING
	SeasonalityAlertScore = 0.5

	// DefaultStaleThresholdPercent is the percent of inventory that must sell per month
	DefaultStaleThresholdPercent = 10.0

	// Aggregate analytics
	LowStockUnits      = 10
	InactiveAfterDays  = 180
	ChurnWindowMonths  = 6.0
	MinChurnRate       = 0.01
	MaxChurnRate       = 0.5
	NewCustomerDays    = 30
	HealthyLTVCACRatio = 3.0
	DefaultTopN        = 5
)

// GeneralCategory is used when no category could be determined
const GeneralCategory = "general"

// CategoryBaseThresholds is the expected monthly unit sales per category
var CategoryBaseThresholds = map[string]float64{
	"furniture":     2,
	"fashion":       10,
	"food":          20,
	"fitness":       8,
	"electronics":   5,
	GeneralCategory: 10,
}

type ageTier struct {
	maxDays int // inclusive; 0 means unbounded
	factor  float64
	reason  string
}

// Younger products get a lower bar while they find their audience
var ageTiers = []ageTier{
	{maxDays: 30, factor: 0.5, reason: "launched within the last 30 days"},
	{maxDays: 365, factor: 1.0, reason: "established product"},
	{maxDays: 0, factor: 1.2, reason: "mature product live for over a year"},
}

type priceTier struct {
	minPrice float64
	factor   float64
	reason   string
}

// Expensive items are expected to move fewer units. First match wins.
var priceTiers = []priceTier{
	{minPrice: 500, factor: 0.3, reason: "premium price point (500+)"},
	{minPrice: 100, factor: 0.6, reason: "high price point (100-499)"},
	{minPrice: 50, factor: 0.8, reason: "mid price point (50-99)"},
	{minPrice: 0, factor: 1.0, reason: "standard price point (under 50)"},
}

// ThresholdExplanation shows how the monthly sales target was derived
type ThresholdExplanation struct {
	Category       string  `json:"category"`
	BaseThreshold  float64 `json:"base_threshold"`
	AgeFactor      float64 `json:"age_factor"`
	AgeReason      string  `json:"age_reason"`
	PriceFactor    float64 `json:"price_factor"`
	PriceReason    string  `json:"price_reason"`
	FinalThreshold float64 `json:"final_threshold"`
	Summary        string  `json:"summary"`
}

// ThresholdFor derives the monthly unit-sales target from category, age and price
func ThresholdFor(category string, daysLive int, price float64) ThresholdExplanation {
	category = strings.ToLower(strings.TrimSpace(category))
	base, ok := CategoryBaseThresholds[category]
	if !ok {
		category = GeneralCategory
		base = CategoryBaseThresholds[GeneralCategory]
	}

	age := ageTiers[len(ageTiers)-1]
	for _, tier := range ageTiers {
		if tier.maxDays == 0 || daysLive <= tier.maxDays {
			age = tier
			break
		}
	}

	pt := priceTiers[len(priceTiers)-1]
	for _, tier := range priceTiers {
		if price >= tier.minPrice {
			pt = tier
			break
		}
	}

	final := Round2(base * age.factor * pt.factor)
	return ThresholdExplanation{
		Category:       category,
		BaseThreshold:  base,
		AgeFactor:      age.factor,
		AgeReason:      age.reason,
		PriceFactor:    pt.factor,
		PriceReason:    pt.reason,
		FinalThreshold: final,
		Summary: fmt.Sprintf("%s base of %.0f units/month x %.1f (%s) x %.1f (%s) = %.2f units/month",
			category, base, age.factor, age.reason, pt.factor, pt.reason, final),
	}
}
