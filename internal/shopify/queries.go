package shopify

import "fmt"

// Admin REST resource paths (relative to /admin/api/<version>/)
const (
	ProductsPath  = "products.json"
	OrdersPath    = "orders.json"
	CustomersPath = "customers.json"
	ShopPath      = "shop.json"
)

// ProductPath is the single-product resource
func ProductPath(productID int64) string {
	return fmt.Sprintf("products/%d.json", productID)
}

// Page sizes and safety limits
const (
	DefaultPageSize = 50
	MaxPageSize     = 250
	// MaxCatalogPages bounds full-catalog pagination regardless of what the Link header claims
	MaxCatalogPages = 50
)

// OrderFields limits the order payload to what the analytics read
const OrderFields = "id,name,created_at,financial_status,fulfillment_status,currency,total_price,subtotal_price,total_discounts,customer,line_items,refunds,shipping_lines,total_shipping_price_set"

// CustomerFields limits the customer payload
const CustomerFields = "id,email,first_name,last_name,state,orders_count,total_spent,tags,created_at,updated_at"
