package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/config"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/service"
)

// Prints stock status for every variant of a product, or full analytics for one variant.
func main() {
	shop := flag.String("shop", os.Getenv("SHOPIFY_SHOP_DOMAIN"), "shop domain, e.g. demo.myshopify.com")
	token := flag.String("token", os.Getenv("SHOPIFY_ACCESS_TOKEN"), "Admin API access token")
	productID := flag.Int64("product", 0, "product id")
	variantID := flag.Int64("variant", 0, "variant id; omit for a stock summary of all variants")
	threshold := flag.Float64("threshold", -1, "stale threshold percent; default from DEFAULT_STALE_THRESHOLD")
	flag.Parse()

	if *productID <= 0 {
		fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/variant-report -shop demo.myshopify.com -token shpat_xxx -product 123 [-variant 456] [-threshold 10]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	services := service.NewServices(cfg, service.Deps{}, logger)
	creds := service.ShopCredentials{ShopDomain: *shop, AccessToken: *token}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Shopify.UpstreamTimeout+cfg.AI.Timeout)
	defer cancel()

	var out interface{}
	if *variantID > 0 {
		req := service.VariantAnalyticsRequest{ShopCredentials: creds}
		if *threshold >= 0 {
			req.ThresholdPercent = threshold
		}
		out, err = services.Products.VariantAnalytics(ctx, *productID, *variantID, req)
	} else {
		out, err = services.Products.StockStatus(ctx, *productID, creds)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode report: %v\n", err)
		os.Exit(1)
	}
}
