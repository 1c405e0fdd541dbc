package shopify

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/domain"
)

// ProductListOptions are the server-side filters Shopify understands.
// When PageInfo is set Shopify only accepts limit alongside it.
type ProductListOptions struct {
	Limit        int
	PageInfo     string
	Title        string
	Vendor       string
	ProductType  string
	Status       string
	CreatedAtMin string
	CreatedAtMax string
	UpdatedAtMin string
	UpdatedAtMax string
}

func (o ProductListOptions) values() url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(o.Limit)))
	if o.PageInfo != "" {
		q.Set("page_info", o.PageInfo)
		return q
	}
	setIf(q, "title", o.Title)
	setIf(q, "vendor", o.Vendor)
	setIf(q, "product_type", o.ProductType)
	setIf(q, "status", o.Status)
	setIf(q, "created_at_min", o.CreatedAtMin)
	setIf(q, "created_at_max", o.CreatedAtMax)
	setIf(q, "updated_at_min", o.UpdatedAtMin)
	setIf(q, "updated_at_max", o.UpdatedAtMax)
	return q
}

// ProductPage is one page of products plus the cursors around it
type ProductPage struct {
	Products   []domain.Product
	Pagination Pagination
}

// ListProducts fetches a single page of products
func (c *Client) ListProducts(ctx context.Context, opts ProductListOptions) (*ProductPage, error) {
	var payload struct {
		Products []domain.Product `json:"products"`
	}
	resp, err := c.getInto(ctx, ProductsPath, opts.values(), &payload)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: payload.Products, Pagination: resp.Pagination()}, nil
}

// GetAllProducts follows the Link header until the catalog is exhausted or
// MaxCatalogPages pages have been fetched. The second return value is true
// when the page ceiling cut the walk short.
func (c *Client) GetAllProducts(ctx context.Context, opts ProductListOptions) ([]domain.Product, bool, error) {
	opts.Limit = MaxPageSize
	var all []domain.Product
	for page := 1; page <= MaxCatalogPages; page++ {
		res, err := c.ListProducts(ctx, opts)
		if err != nil {
			return nil, false, err
		}
		all = append(all, res.Products...)
		if !res.Pagination.HasNext || res.Pagination.Next == "" {
			return all, false, nil
		}
		opts = ProductListOptions{Limit: MaxPageSize, PageInfo: res.Pagination.Next}
	}
	c.logger.Warn("Product pagination stopped at page ceiling",
		zap.String("shop", c.shopDomain),
		zap.Int("pages", MaxCatalogPages),
		zap.Int("products", len(all)),
	)
	return all, true, nil
}

// GetProduct fetches one product with its variants
func (c *Client) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var payload struct {
		Product domain.Product `json:"product"`
	}
	if _, err := c.getInto(ctx, ProductPath(productID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Product, nil
}

// OrderListOptions selects a page of orders
type OrderListOptions struct {
	Limit        int
	PageInfo     string
	Status       string // open, closed, cancelled, any (default any)
	CreatedAtMin string
}

func (o OrderListOptions) values() url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(o.Limit)))
	if o.PageInfo != "" {
		q.Set("page_info", o.PageInfo)
		return q
	}
	status := o.Status
	if status == "" {
		status = "any"
	}
	q.Set("status", status)
	q.Set("fields", OrderFields)
	setIf(q, "created_at_min", o.CreatedAtMin)
	return q
}

// OrderPage is one page of orders
type OrderPage struct {
	Orders     []domain.Order
	Pagination Pagination
}

// ListOrders fetches a single page of orders (newest first, at most 250)
func (c *Client) ListOrders(ctx context.Context, opts OrderListOptions) (*OrderPage, error) {
	var payload struct {
		Orders []domain.Order `json:"orders"`
	}
	resp, err := c.getInto(ctx, OrdersPath, opts.values(), &payload)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: payload.Orders, Pagination: resp.Pagination()}, nil
}

// RecentOrders is the bounded order window the analytics run over
func (c *Client) RecentOrders(ctx context.Context) ([]domain.Order, error) {
	page, err := c.ListOrders(ctx, OrderListOptions{Limit: MaxPageSize})
	if err != nil {
		return nil, err
	}
	return page.Orders, nil
}

// CustomerPage is one page of customers
type CustomerPage struct {
	Customers  []domain.Customer
	Pagination Pagination
}

// ListCustomers fetches a single page of customers
func (c *Client) ListCustomers(ctx context.Context, limit int, pageInfo string) (*CustomerPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit)))
	if pageInfo != "" {
		q.Set("page_info", pageInfo)
	} else {
		q.Set("fields", CustomerFields)
	}
	var payload struct {
		Customers []domain.Customer `json:"customers"`
	}
	resp, err := c.getInto(ctx, CustomersPath, q, &payload)
	if err != nil {
		return nil, err
	}
	return &CustomerPage{Customers: payload.Customers, Pagination: resp.Pagination()}, nil
}

// GetShop is the cheapest authenticated call; used to validate tokens
func (c *Client) GetShop(ctx context.Context) (*domain.Shop, error) {
	var payload struct {
		Shop domain.Shop `json:"shop"`
	}
	if _, err := c.getInto(ctx, ShopPath, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Shop, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
