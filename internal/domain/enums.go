package domain

// SuggestionType tags what a recommendation is about
type SuggestionType string

const (
	SuggestionCriticalInventory   SuggestionType = "CRITICAL_INVENTORY"
	SuggestionLowInventory        SuggestionType = "LOW_INVENTORY"
	SuggestionInventoryWarning    SuggestionType = "INVENTORY_WARNING"
	SuggestionOverstock           SuggestionType = "OVERSTOCK"
	SuggestionNoSales             SuggestionType = "NO_SALES"
	SuggestionPoorPerformance     SuggestionType = "POOR_PERFORMANCE"
	SuggestionBelowTarget         SuggestionType = "BELOW_TARGET"
	SuggestionHighPerformer       SuggestionType = "HIGH_PERFORMER"
	SuggestionDecliningTrend      SuggestionType = "DECLINING_TREND"
	SuggestionPositiveMomentum    SuggestionType = "POSITIVE_MOMENTUM"
	SuggestionPricingOpportunity  SuggestionType = "PRICING_OPPORTUNITY"
	SuggestionSeasonalPlanning    SuggestionType = "SEASONAL_PLANNING"
	SuggestionBundlingOpportunity SuggestionType = "BUNDLING_OPPORTUNITY"
)

// Priority of a suggestion
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityUrgent   Priority = "URGENT"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// Rank orders priorities, higher is more pressing
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 5
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// InventoryStatus labels a variant's stock position
type InventoryStatus string

const (
	InventoryOutOfStock  InventoryStatus = "OUT_OF_STOCK"
	InventoryCriticalLow InventoryStatus = "CRITICAL_LOW"
	InventoryLow         InventoryStatus = "LOW"
	InventoryOptimal     InventoryStatus = "OPTIMAL"
	InventoryHigh        InventoryStatus = "HIGH"
	InventoryOverstocked InventoryStatus = "OVERSTOCKED"
)

// Trend labels the direction of sales
type Trend string

const (
	TrendImproving Trend = "IMPROVING"
	TrendDeclining Trend = "DECLINING"
	TrendStable    Trend = "STABLE"
)

// CategorySource tells how a product category was determined
type CategorySource string

const (
	CategorySourceTags        CategorySource = "tags"
	CategorySourceAI          CategorySource = "ai"
	CategorySourceProductType CategorySource = "product_type"
	CategorySourceDefault     CategorySource = "default"
)
