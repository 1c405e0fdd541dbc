package shopify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prime-sourabh/revenue-model-optimizer/internal/config"
	apperrors "github.com/prime-sourabh/revenue-model-optimizer/pkg/errors"
)

var testShopifyConfig = config.ShopifyConfig{
	APIKey:      "client-id",
	APISecret:   "client-secret",
	Scopes:      "read_products,read_orders",
	RedirectURI: "https://app.example.com/api/auth/callback",
}

func TestAuthorizeURL(t *testing.T) {
	o := NewOAuth(testShopifyConfig)
	raw := o.AuthorizeURL("https://demo.myshopify.com/", "state-1")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid url: %v", err)
	}
	if u.Host != "demo.myshopify.com" || u.Path != "/admin/oauth/authorize" {
		t.Fatalf("unexpected authorize endpoint %s", raw)
	}
	q := u.Query()
	if q.Get("client_id") != "client-id" || q.Get("state") != "state-1" || q.Get("scope") != "read_products,read_orders" {
		t.Fatalf("unexpected query %v", q)
	}
	if q.Get("redirect_uri") != testShopifyConfig.RedirectURI {
		t.Fatalf("unexpected redirect_uri %q", q.Get("redirect_uri"))
	}
}

func TestExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/oauth/access_token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = r.ParseForm()
		if r.PostForm.Get("code") != "good-code" || r.PostForm.Get("client_secret") != "client-secret" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_request"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"shpat_abc","scope":"read_products,read_orders"}`)
	}))
	defer srv.Close()

	o := NewOAuth(testShopifyConfig, WithOAuthOrigin(srv.URL), WithOAuthHTTPClient(srv.Client()))

	res, err := o.Exchange(context.Background(), "demo.myshopify.com", "good-code")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AccessToken != "shpat_abc" || res.Scope != "read_products,read_orders" {
		t.Fatalf("unexpected token %+v", res)
	}

	_, err = o.Exchange(context.Background(), "demo.myshopify.com", "bad-code")
	var upstream *apperrors.ErrUpstream
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected upstream 400, got %T %v", err, err)
	}
}

func TestVerifyWebhookHMAC(t *testing.T) {
	body := []byte(`{"shop_domain":"demo.myshopify.com"}`)
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write(body)
	valid := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if !VerifyWebhookHMAC("secret", body, valid) {
		t.Fatalf("expected valid signature")
	}
	if VerifyWebhookHMAC("other", body, valid) {
		t.Fatalf("expected wrong secret to fail")
	}
	if VerifyWebhookHMAC("", body, valid) || VerifyWebhookHMAC("secret", body, "") {
		t.Fatalf("expected missing secret or header to fail")
	}
}

func TestVerifyQueryHMAC(t *testing.T) {
	q := url.Values{}
	q.Set("code", "abc")
	q.Set("shop", "demo.myshopify.com")
	q.Set("state", "s1")
	q.Set("timestamp", "1700000000")
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("code=abc&shop=demo.myshopify.com&state=s1&timestamp=1700000000"))
	q.Set("hmac", hex.EncodeToString(mac.Sum(nil)))

	if !VerifyQueryHMAC(q, "secret") {
		t.Fatalf("expected valid query signature")
	}
	q.Set("shop", "evil.myshopify.com")
	if VerifyQueryHMAC(q, "secret") {
		t.Fatalf("expected tampered query to fail")
	}
}

func TestIsValidShopDomain(t *testing.T) {
	tests := map[string]bool{
		"demo.myshopify.com":       true,
		"a.myshopify.com":          true,
		"demo.example.com":         false,
		"evil.com/x.myshopify.com": false,
		"demo.myshopify.com?x=1":   false,
		".myshopify.com":           false,
	}
	for shop, expected := range tests {
		if got := IsValidShopDomain(shop); got != expected {
			t.Fatalf("IsValidShopDomain(%q) = %v, expected %v", shop, got, expected)
		}
	}
}
