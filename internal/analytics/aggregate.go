package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

type PriceStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

type InventoryStats struct {
	Total              int     `json:"total"`
	AveragePerVariant  float64 `json:"average_per_variant"`
	LowStockVariants   int     `json:"low_stock_variants"`
	OutOfStockVariants int     `json:"out_of_stock_variants"`
}

// ProductAnalytics is the catalog rollup for the dashboard summary
type ProductAnalytics struct {
	TotalProducts int            `json:"total_products"`
	TotalVariants int            `json:"total_variants"`
	ByStatus      map[string]int `json:"by_status"`
	ByVendor      map[string]int `json:"by_vendor"`
	ByProductType map[string]int `json:"by_product_type"`
	Price         PriceStats     `json:"price"`
	Inventory     InventoryStats `json:"inventory"`
}

// SummarizeProducts rolls up a page of products
func SummarizeProducts(products []domain.Product) ProductAnalytics {
	a := ProductAnalytics{
		TotalProducts: len(products),
		ByStatus:      map[string]int{},
		ByVendor:      map[string]int{},
		ByProductType: map[string]int{},
	}

	var priceSum decimal.Decimal
	minPrice, maxPrice := decimal.Zero, decimal.Zero
	for _, p := range products {
		a.ByStatus[orUnknown(p.Status)]++
		a.ByVendor[orUnknown(p.Vendor)]++
		a.ByProductType[orUnknown(p.ProductType)]++

		for _, v := range p.Variants {
			if a.TotalVariants == 0 || v.Price.LessThan(minPrice) {
				minPrice = v.Price
			}
			if a.TotalVariants == 0 || v.Price.GreaterThan(maxPrice) {
				maxPrice = v.Price
			}
			a.TotalVariants++
			priceSum = priceSum.Add(v.Price)

			q := v.InventoryQuantity
			if q > 0 {
				a.Inventory.Total += q
			}
			switch {
			case q <= 0:
				a.Inventory.OutOfStockVariants++
			case q < LowStockUnits:
				a.Inventory.LowStockVariants++
			}
		}
	}

	if a.TotalVariants > 0 {
		a.Price = PriceStats{
			Min:     minPrice.Round(2).InexactFloat64(),
			Max:     maxPrice.Round(2).InexactFloat64(),
			Average: priceSum.Div(decimal.NewFromInt(int64(a.TotalVariants))).Round(2).InexactFloat64(),
		}
		a.Inventory.AveragePerVariant = Round2(float64(a.Inventory.Total) / float64(a.TotalVariants))
	}
	return a
}

type ProductSales struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Units     int     `json:"units"`
	Revenue   float64 `json:"revenue"`
}

// OrderAnalytics is the rollup of one page of orders
type OrderAnalytics struct {
	TotalOrders         int            `json:"total_orders"`
	TotalRevenue        float64        `json:"total_revenue"`
	AverageOrderValue   float64        `json:"average_order_value"`
	ByFinancialStatus   map[string]int `json:"by_financial_status"`
	ByFulfillmentStatus map[string]int `json:"by_fulfillment_status"`
	RefundedOrders      int            `json:"refunded_orders"`
	RefundedAmount      float64        `json:"refunded_amount"`
	ShippingRevenue     float64        `json:"shipping_revenue"`
	UniqueCustomers     int            `json:"unique_customers"`
	TopProducts         []ProductSales `json:"top_products"`
}

// SummarizeOrders rolls up a page of orders, keeping the topN products by revenue
func SummarizeOrders(orders []domain.Order, topN int) OrderAnalytics {
	if topN <= 0 {
		topN = DefaultTopN
	}
	a := OrderAnalytics{
		TotalOrders:         len(orders),
		ByFinancialStatus:   map[string]int{},
		ByFulfillmentStatus: map[string]int{},
	}

	revenue, refunded, shipping := decimal.Zero, decimal.Zero, decimal.Zero
	customers := map[int64]struct{}{}
	type productAgg struct {
		title   string
		units   int
		revenue decimal.Decimal
	}
	byProduct := map[int64]*productAgg{}

	for _, o := range orders {
		revenue = revenue.Add(o.TotalPrice)
		shipping = shipping.Add(o.ShippingTotal())
		a.ByFinancialStatus[orUnknown(o.FinancialStatus)]++
		fulfillment := "unfulfilled"
		if o.FulfillmentStatus != nil && *o.FulfillmentStatus != "" {
			fulfillment = *o.FulfillmentStatus
		}
		a.ByFulfillmentStatus[fulfillment]++

		if id := o.CustomerID(); id != 0 {
			customers[id] = struct{}{}
		}

		if len(o.Refunds) > 0 {
			a.RefundedOrders++
			for _, r := range o.Refunds {
				for _, rli := range r.RefundLineItems {
					refunded = refunded.Add(rli.Subtotal)
				}
			}
		}

		for _, li := range o.LineItems {
			if li.ProductID == nil {
				continue
			}
			agg, ok := byProduct[*li.ProductID]
			if !ok {
				agg = &productAgg{title: li.Title}
				byProduct[*li.ProductID] = agg
			}
			agg.units += li.Quantity
			agg.revenue = agg.revenue.Add(li.Price.Mul(decimal.NewFromInt(int64(li.Quantity))))
		}
	}

	a.TotalRevenue = revenue.Round(2).InexactFloat64()
	a.RefundedAmount = refunded.Round(2).InexactFloat64()
	a.ShippingRevenue = shipping.Round(2).InexactFloat64()
	a.UniqueCustomers = len(customers)
	if len(orders) > 0 {
		a.AverageOrderValue = revenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2).InexactFloat64()
	}

	top := make([]ProductSales, 0, len(byProduct))
	for id, agg := range byProduct {
		top = append(top, ProductSales{ProductID: id, Title: agg.title, Units: agg.units, Revenue: agg.revenue.Round(2).InexactFloat64()})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Revenue != top[j].Revenue {
			return top[i].Revenue > top[j].Revenue
		}
		return top[i].ProductID < top[j].ProductID
	})
	if len(top) > topN {
		top = top[:topN]
	}
	a.TopProducts = top
	return a
}

type CustomerSpend struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	OrdersCount int     `json:"orders_count"`
	TotalSpent  float64 `json:"total_spent"`
}

// CustomerAnalytics is the rollup of one page of customers. Churn is an estimate.
type CustomerAnalytics struct {
	TotalCustomers    int             `json:"total_customers"`
	TotalSpent        float64         `json:"total_spent"`
	AverageSpent      float64         `json:"average_spent"`
	RepeatCustomers   int             `json:"repeat_customers"`
	RepeatRate        float64         `json:"repeat_rate"`
	InactiveCustomers int             `json:"inactive_customers"`
	ChurnRateEstimate float64         `json:"churn_rate_estimate"`
	TopCustomers      []CustomerSpend `json:"top_customers"`
}

// SummarizeCustomers rolls up customers. orders is the recent order page, used to find
// each customer's last purchase; customers absent from it fall back to their update time.
func SummarizeCustomers(customers []domain.Customer, orders []domain.Order, now time.Time, topN int) CustomerAnalytics {
	if topN <= 0 {
		topN = DefaultTopN
	}
	a := CustomerAnalytics{TotalCustomers: len(customers)}

	lastOrder := map[int64]time.Time{}
	for _, o := range orders {
		id := o.CustomerID()
		if id == 0 {
			continue
		}
		if o.CreatedAt.After(lastOrder[id]) {
			lastOrder[id] = o.CreatedAt
		}
	}

	cutoff := now.AddDate(0, 0, -InactiveAfterDays)
	spent := decimal.Zero
	top := make([]CustomerSpend, 0, len(customers))
	for _, c := range customers {
		spent = spent.Add(c.TotalSpent)
		if c.OrdersCount > 1 {
			a.RepeatCustomers++
		}

		last, ok := lastOrder[c.ID]
		if !ok && c.OrdersCount > 0 {
			last = c.UpdatedAt
		}
		if last.IsZero() || last.Before(cutoff) {
			a.InactiveCustomers++
		}

		top = append(top, CustomerSpend{
			ID:          c.ID,
			Email:       c.Email,
			Name:        joinName(c.FirstName, c.LastName),
			OrdersCount: c.OrdersCount,
			TotalSpent:  c.TotalSpent.Round(2).InexactFloat64(),
		})
	}

	a.TotalSpent = spent.Round(2).InexactFloat64()
	if a.TotalCustomers > 0 {
		a.AverageSpent = spent.Div(decimal.NewFromInt(int64(a.TotalCustomers))).Round(2).InexactFloat64()
		a.RepeatRate = Round2(float64(a.RepeatCustomers) / float64(a.TotalCustomers))
	}
	a.ChurnRateEstimate = Round2(ChurnEstimate(a.InactiveCustomers, a.TotalCustomers))

	sort.SliceStable(top, func(i, j int) bool { return top[i].TotalSpent > top[j].TotalSpent })
	if len(top) > topN {
		top = top[:topN]
	}
	a.TopCustomers = top
	return a
}

// ChurnEstimate spreads the inactive share over the six-month inactivity window, clamped.
func ChurnEstimate(inactive, total int) float64 {
	return clamp(safeDiv(float64(inactive), float64(total))/ChurnWindowMonths, MinChurnRate, MaxChurnRate)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
