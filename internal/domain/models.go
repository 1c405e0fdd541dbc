package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the Shopify REST product resource (read-only, fetched per request)
type Product struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	BodyHTML    string     `json:"body_html,omitempty"`
	Vendor      string     `json:"vendor"`
	ProductType string     `json:"product_type"`
	Handle      string     `json:"handle,omitempty"`
	Status      string     `json:"status"`
	Tags        string     `json:"tags"` // comma-joined free text
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Variants    []Variant  `json:"variants"`
	Images      []Image    `json:"images,omitempty"`
}

// LiveSince is the moment the product started selling: publish time, else creation time.
func (p Product) LiveSince() time.Time {
	if p.PublishedAt != nil && !p.PublishedAt.IsZero() {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

// FindVariant returns the variant with the given id, if the product has it.
func (p Product) FindVariant(variantID int64) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// Variant mirrors the Shopify REST variant resource
type Variant struct {
	ID                int64               `json:"id"`
	ProductID         int64               `json:"product_id"`
	Title             string              `json:"title"`
	SKU               string              `json:"sku"`
	Barcode           string              `json:"barcode,omitempty"`
	Price             decimal.Decimal     `json:"price"`
	CompareAtPrice    decimal.NullDecimal `json:"compare_at_price"`
	InventoryQuantity int                 `json:"inventory_quantity"`
	Weight            float64             `json:"weight"`
	WeightUnit        string              `json:"weight_unit,omitempty"`
	RequiresShipping  bool                `json:"requires_shipping"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// Order is the subset of the Shopify REST order resource the analytics use
type Order struct {
	ID                    int64           `json:"id"`
	Name                  string          `json:"name"`
	CreatedAt             time.Time       `json:"created_at"`
	FinancialStatus       string          `json:"financial_status"`
	FulfillmentStatus     *string         `json:"fulfillment_status"`
	Currency              string          `json:"currency"`
	TotalPrice            decimal.Decimal `json:"total_price"`
	SubtotalPrice         decimal.Decimal `json:"subtotal_price"`
	TotalDiscounts        decimal.Decimal `json:"total_discounts"`
	Customer              *OrderCustomer  `json:"customer"`
	LineItems             []LineItem      `json:"line_items"`
	Refunds               []Refund        `json:"refunds"`
	ShippingLines         []ShippingLine  `json:"shipping_lines"`
	TotalShippingPriceSet *PriceSet       `json:"total_shipping_price_set"`
}

// CustomerID is the id of the ordering customer, 0 for guest checkouts.
func (o Order) CustomerID() int64 {
	if o.Customer == nil {
		return 0
	}
	return o.Customer.ID
}

// ShippingTotal prefers the shop-money shipping total and falls back to summing shipping lines.
func (o Order) ShippingTotal() decimal.Decimal {
	if o.TotalShippingPriceSet != nil {
		return o.TotalShippingPriceSet.ShopMoney.Amount
	}
	total := decimal.Zero
	for _, sl := range o.ShippingLines {
		total = total.Add(sl.Price)
	}
	return total
}

type OrderCustomer struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// LineItem references a product and variant. Both ids are null for custom items.
type LineItem struct {
	ID        int64           `json:"id"`
	ProductID *int64          `json:"product_id"`
	VariantID *int64          `json:"variant_id"`
	Title     string          `json:"title"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// MatchesVariant reports whether the line item sold the given variant.
func (li LineItem) MatchesVariant(variantID int64) bool {
	return li.VariantID != nil && *li.VariantID == variantID
}

type Refund struct {
	ID              int64            `json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	RefundLineItems []RefundLineItem `json:"refund_line_items"`
}

type RefundLineItem struct {
	LineItemID int64           `json:"line_item_id"`
	Quantity   int             `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type ShippingLine struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type PriceSet struct {
	ShopMoney Money `json:"shop_money"`
}

type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
}

// Customer mirrors the Shopify REST customer resource
type Customer struct {
	ID          int64           `json:"id"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	State       string          `json:"state"`
	OrdersCount int             `json:"orders_count"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	Tags        string          `json:"tags"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Shop is the subset of the Shopify shop resource used for token validation
type Shop struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Domain          string `json:"domain"`
	MyShopifyDomain string `json:"myshopify_domain"`
	PlanName        string `json:"plan_name"`
	Currency        string `json:"currency"`
}
