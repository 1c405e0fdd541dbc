package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/config"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/shopify"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

// Checks that a token carries every read scope the analytics endpoints need
func main() {
	shop := flag.String("shop", os.Getenv("SHOPIFY_SHOP_DOMAIN"), "shop domain, e.g. demo.myshopify.com")
	token := flag.String("token", os.Getenv("SHOPIFY_ACCESS_TOKEN"), "Admin API access token")
	flag.Parse()

	if *shop == "" || *token == "" {
		fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/check-permissions -shop demo.myshopify.com -token shpat_xxx")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(shopify.Credentials{ShopDomain: *shop, AccessToken: *token}, logger,
		shopify.WithAPIVersion(cfg.Shopify.APIVersion),
		shopify.WithTimeout(cfg.Shopify.UpstreamTimeout),
	)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Printf("Checking API permissions for %s...\n", client.ShopDomain())

	checks := []struct {
		scope string
		call  func() (int, error)
	}{
		{"read_products", func() (int, error) {
			page, err := client.ListProducts(ctx, shopify.ProductListOptions{Limit: 1})
			if err != nil {
				return 0, err
			}
			return len(page.Products), nil
		}},
		{"read_orders", func() (int, error) {
			page, err := client.ListOrders(ctx, shopify.OrderListOptions{Limit: 1})
			if err != nil {
				return 0, err
			}
			return len(page.Orders), nil
		}},
		{"read_customers", func() (int, error) {
			page, err := client.ListCustomers(ctx, 1, "")
			if err != nil {
				return 0, err
			}
			return len(page.Customers), nil
		}},
	}

	failed := 0
	for i, check := range checks {
		fmt.Printf("%d. Testing '%s' permission...\n", i+1, check.scope)
		n, err := check.call()
		if err != nil {
			failed++
			fmt.Printf("   Failed: %v\n", err)
			var upstream *apperrors.ErrUpstream
			if errors.As(err, &upstream) && upstream.StatusCode == http.StatusForbidden {
				fmt.Printf("   -> add the '%s' scope to your app and reinstall it\n", check.scope)
			}
			continue
		}
		fmt.Printf("   OK (%d record(s) visible)\n", n)
	}

	if failed > 0 {
		os.Exit(1)
	}
	fmt.Println("All required permissions present.")
}
