package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Credentials{ShopDomain: "demo.myshopify.com", AccessToken: "shpat_test"}, zap.NewNop(),
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithAPIVersion("2024-10"),
	)
}

func TestNormalizeShopDomain(t *testing.T) {
	tests := []struct {
		In       string
		Expected string
	}{
		{In: "https://demo.myshopify.com/", Expected: "demo.myshopify.com"},
		{In: "http://demo.myshopify.com", Expected: "demo.myshopify.com"},
		{In: "  demo.myshopify.com ", Expected: "demo.myshopify.com"},
	}
	for _, tt := range tests {
		if got := NormalizeShopDomain(tt.In); got != tt.Expected {
			t.Fatalf("NormalizeShopDomain(%q) = %q, expected %q", tt.In, got, tt.Expected)
		}
	}
}

func TestClientGet_SendsTokenAndVersion(t *testing.T) {
	var gotPath, gotToken string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		fmt.Fprint(w, `{"shop":{"id":1,"name":"Demo","plan_name":"basic"}}`)
	})
	shop, err := c.GetShop(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/admin/api/2024-10/shop.json" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotToken != "shpat_test" {
		t.Fatalf("expected access token header, got %q", gotToken)
	}
	if shop.Name != "Demo" {
		t.Fatalf("expected shop name Demo, got %q", shop.Name)
	}
}

func TestClientGet_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":"[API] Invalid API key or access token"}`)
	})
	_, err := c.GetProduct(context.Background(), 42)
	var upstream *apperrors.ErrUpstream
	if !errors.As(err, &upstream) {
		t.Fatalf("expected ErrUpstream, got %T %v", err, err)
	}
	if upstream.StatusCode != http.StatusUnauthorized || upstream.Status != "Unauthorized" {
		t.Fatalf("unexpected upstream error %+v", upstream)
	}
	if !strings.Contains(upstream.Body, "Invalid API key") {
		t.Fatalf("expected body to be preserved, got %q", upstream.Body)
	}
}

func TestClientGet_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	WithTimeout(50 * time.Millisecond)(c)
	_, err := c.GetShop(context.Background())
	var upstream *apperrors.ErrUpstream
	if !errors.As(err, &upstream) {
		t.Fatalf("expected ErrUpstream on timeout, got %T %v", err, err)
	}
}

func TestListProducts_QueryAndPagination(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Link", `<https://demo.myshopify.com/admin/api/2024-10/products.json?limit=50&page_info=nxt>; rel="next"`)
		fmt.Fprint(w, `{"products":[{"id":1,"title":"A"},{"id":2,"title":"B"}]}`)
	})
	page, err := c.ListProducts(context.Background(), ProductListOptions{Limit: 500, Vendor: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(page.Products))
	}
	if !page.Pagination.HasNext || page.Pagination.Next != "nxt" {
		t.Fatalf("unexpected pagination %+v", page.Pagination)
	}
	if !strings.Contains(gotQuery, "limit=250") || !strings.Contains(gotQuery, "vendor=Acme") {
		t.Fatalf("expected clamped limit and vendor filter, got %q", gotQuery)
	}
}

func TestListProducts_PageInfoDropsFilters(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"products":[]}`)
	})
	if _, err := c.ListProducts(context.Background(), ProductListOptions{PageInfo: "abc", Vendor: "Acme"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(gotQuery, "vendor") || !strings.Contains(gotQuery, "page_info=abc") {
		t.Fatalf("expected only limit and page_info, got %q", gotQuery)
	}
}

func TestGetAllProducts_StopsAtPageCeiling(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		w.Header().Set("Link", fmt.Sprintf(`<https://x/admin/api/2024-10/products.json?page_info=p%d>; rel="next"`, n))
		fmt.Fprintf(w, `{"products":[{"id":%d}]}`, n)
	})
	products, truncated, err := c.GetAllProducts(context.Background(), ProductListOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != MaxCatalogPages {
		t.Fatalf("expected %d page fetches, got %d", MaxCatalogPages, got)
	}
	if len(products) != MaxCatalogPages || !truncated {
		t.Fatalf("expected %d products and truncation, got %d %v", MaxCatalogPages, len(products), truncated)
	}
}

func TestGetAllProducts_FollowsCursorToEnd(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			w.Header().Set("Link", `<https://x/products.json?page_info=second>; rel="next"`)
			fmt.Fprint(w, `{"products":[{"id":1},{"id":2}]}`)
			return
		}
		if r.URL.Query().Get("page_info") != "second" {
			t.Errorf("expected page_info=second, got %q", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"products":[{"id":3}]}`)
	})
	products, truncated, err := c.GetAllProducts(context.Background(), ProductListOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 3 || truncated || calls != 2 {
		t.Fatalf("expected 3 products over 2 calls, got %d products, %d calls, truncated=%v", len(products), calls, truncated)
	}
}

func TestRecentOrders_UsesBoundedWindow(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"orders":[{"id":1,"created_at":"2024-05-01T00:00:00Z","line_items":[{"variant_id":7,"quantity":2,"price":"10.00"}]}]}`)
	})
	orders, err := c.RecentOrders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 || !orders[0].LineItems[0].MatchesVariant(7) {
		t.Fatalf("unexpected orders %+v", orders)
	}
	if !strings.Contains(gotQuery, "limit=250") || !strings.Contains(gotQuery, "status=any") {
		t.Fatalf("expected limit=250&status=any, got %q", gotQuery)
	}
}
