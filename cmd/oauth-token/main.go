package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/config"
	"github.com/prime-sourabh/revenue-model-optimizer/internal/shopify"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/oauth-token <shop-domain> [code]")
		fmt.Println("Example: go run ./cmd/oauth-token demo.myshopify.com")
		fmt.Println("\nReads SHOPIFY_API_KEY, SHOPIFY_API_SECRET, SHOPIFY_SCOPES and SHOPIFY_REDIRECT_URI from the environment or .env.")
		fmt.Println("1. Run with only the shop domain to get the authorization URL")
		fmt.Println("2. Approve the app in the browser and copy the 'code' from the redirect URL")
		fmt.Println("3. Run again with the code to print the access token")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Shopify.OAuthConfigured() {
		fmt.Fprintln(os.Stderr, "SHOPIFY_API_KEY and SHOPIFY_API_SECRET must be set")
		os.Exit(1)
	}

	shop := shopify.NormalizeShopDomain(os.Args[1])
	if !shopify.IsValidShopDomain(shop) {
		fmt.Fprintf(os.Stderr, "%q is not a <name>.myshopify.com domain\n", shop)
		os.Exit(1)
	}
	oauth := shopify.NewOAuth(cfg.Shopify)

	if len(os.Args) >= 3 {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		tok, err := oauth.Exchange(ctx, shop, os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get access token: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Access token obtained for %s (scope: %s)\n\n", shop, tok.Scope)
		fmt.Printf("Send it with every API request:\n")
		fmt.Printf(`{"shopDomain":"%s","accessToken":"%s"}`+"\n", shop, tok.AccessToken)
		return
	}

	fmt.Printf("Step 1: Authorize the app\n\n")
	fmt.Printf("Visit this URL in your browser:\n")
	fmt.Printf("%s\n\n", oauth.AuthorizeURL(shop, uuid.New().String()))
	fmt.Printf("Then run:\n")
	fmt.Printf("go run ./cmd/oauth-token %s <code>\n", shop)
}
