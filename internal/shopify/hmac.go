package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// VerifyWebhookHMAC checks X-Shopify-Hmac-Sha256 (base64 HMAC-SHA256 over the raw body)
func VerifyWebhookHMAC(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(header)))
}

// VerifyQueryHMAC checks the hmac parameter Shopify appends to OAuth redirects.
// The message is the sorted query string without hmac and signature.
func VerifyQueryHMAC(q url.Values, secret string) bool {
	if secret == "" || q.Get("hmac") == "" {
		return false
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		if k == "hmac" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		for _, v := range q[k] {
			parts = append(parts, k+"="+v)
		}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(strings.Join(parts, "&")))
	expected := mac.Sum(nil)

	got, err := hex.DecodeString(q.Get("hmac"))
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}

// IsValidShopDomain accepts only <name>.myshopify.com hosts
func IsValidShopDomain(shop string) bool {
	if !strings.HasSuffix(shop, ".myshopify.com") {
		return false
	}
	if strings.ContainsAny(shop, "/ ?#@") {
		return false
	}
	return len(shop) >= len("a.myshopify.com")
}
