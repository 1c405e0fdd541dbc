package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

// LTVCACResult compares customer lifetime value with acquisition cost.
// Repeat and churn rates come from the order sample and are estimates.
type LTVCACResult struct {
	LTV               float64  `json:"ltv"`
	CAC               float64  `json:"cac"`
	Ratio             float64  `json:"ltv_cac_ratio"`
	AverageOrderValue float64  `json:"average_order_value"`
	PurchaseFrequency float64  `json:"purchase_frequency"`
	RepeatRate        float64  `json:"repeat_rate"`
	ChurnRateEstimate float64  `json:"churn_rate_estimate"`
	CustomerLifespan  float64  `json:"customer_lifespan"`
	NewCustomers      int      `json:"new_customers"`
	AdSpend           float64  `json:"ad_spend"`
	Recommendation    string   `json:"recommendation"`
	Notes             []string `json:"notes"`
}

// AnalyzeLTVCAC computes LTV = AOV x frequency x lifespan and CAC = adSpend / new customers.
func AnalyzeLTVCAC(orders []domain.Order, customers []domain.Customer, adSpend float64, now time.Time) LTVCACResult {
	if adSpend < 0 {
		adSpend = 0
	}
	r := LTVCACResult{AdSpend: Round2(adSpend)}

	revenue := decimal.Zero
	perBuyer := map[int64]int{}
	identified := 0
	for _, o := range orders {
		revenue = revenue.Add(o.TotalPrice)
		if id := o.CustomerID(); id != 0 {
			perBuyer[id]++
			identified++
		}
	}

	aov := 0.0
	if len(orders) > 0 {
		aov = revenue.Div(decimal.NewFromInt(int64(len(orders)))).InexactFloat64()
	}
	repeaters := 0
	for _, n := range perBuyer {
		if n > 1 {
			repeaters++
		}
	}
	frequency := safeDiv(float64(identified), float64(len(perBuyer)))
	repeatRate := safeDiv(float64(repeaters), float64(len(perBuyer)))
	churn := 1 - repeatRate
	if churn < MinChurnRate {
		churn = MinChurnRate
	}
	lifespan := 1 / churn
	ltv := aov * frequency * lifespan

	cutoff := now.AddDate(0, 0, -NewCustomerDays)
	for _, c := range customers {
		if !c.CreatedAt.Before(cutoff) {
			r.NewCustomers++
		}
	}

	var cac float64
	if adSpend > 0 && r.NewCustomers > 0 {
		cac = adSpend / float64(r.NewCustomers)
	}
	ratio := safeDiv(ltv, cac)

	r.LTV = Round2(ltv)
	r.CAC = Round2(cac)
	r.Ratio = Round2(ratio)
	r.AverageOrderValue = Round2(aov)
	r.PurchaseFrequency = Round2(frequency)
	r.RepeatRate = Round2(repeatRate)
	r.ChurnRateEstimate = Round2(churn)
	r.CustomerLifespan = Round2(lifespan)
	r.Recommendation = ltvcacRecommendation(adSpend, r.NewCustomers, ratio)
	r.Notes = []string{
		fmt.Sprintf("based on the last %d orders and %d customers fetched", len(orders), len(customers)),
		"churn is estimated as 1 - repeat purchase rate",
		fmt.Sprintf("new customers are those created in the last %d days", NewCustomerDays),
	}
	return r
}

func ltvcacRecommendation(adSpend float64, newCustomers int, ratio float64) string {
	switch {
	case adSpend <= 0:
		return "Add your advertising spend to calculate CAC and the LTV:CAC ratio."
	case newCustomers == 0:
		return fmt.Sprintf("No new customers in the last %d days: ad spend of %.2f has not produced acquisitions, review targeting and channels.", NewCustomerDays, adSpend)
	case ratio >= HealthyLTVCACRatio:
		return fmt.Sprintf("Healthy LTV:CAC ratio of %.2f:1. You can scale acquisition spend.", ratio)
	case ratio >= 1:
		return fmt.Sprintf("LTV:CAC ratio of %.2f:1 is below the 3:1 benchmark. Improve retention or lower acquisition cost.", ratio)
	default:
		return fmt.Sprintf("LTV:CAC ratio of %.2f:1 means each new customer costs more than they return. Cut CAC or raise order value.", ratio)
	}
}
