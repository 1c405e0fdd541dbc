package errors

import (
	"net/http"
	"strings"
	"testing"
)

func TestErrUpstream_HTTPStatus(t *testing.T) {
	tests := []struct {
		Title    string
		Upstream int
		Expected int
	}{
		{Title: "unauthorized passes through", Upstream: 401, Expected: http.StatusUnauthorized},
		{Title: "forbidden passes through", Upstream: 403, Expected: http.StatusForbidden},
		{Title: "not found passes through", Upstream: 404, Expected: http.StatusNotFound},
		{Title: "throttled passes through", Upstream: 429, Expected: http.StatusTooManyRequests},
		{Title: "server error is bad gateway", Upstream: 500, Expected: http.StatusBadGateway},
		{Title: "transport failure is bad gateway", Upstream: 0, Expected: http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			err := &ErrUpstream{Service: "shopify", StatusCode: tt.Upstream}
			if got := err.HTTPStatus(); got != tt.Expected {
				t.Fatalf("expected %d, got %d", tt.Expected, got)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		Title    string
		Err      error
		Expected string
	}{
		{Title: "upstream with status", Err: &ErrUpstream{Service: "shopify", StatusCode: 502, Status: "Bad Gateway"}, Expected: "shopify API error: 502 Bad Gateway"},
		{Title: "upstream transport", Err: &ErrUpstream{Service: "shopify", Body: "dial tcp"}, Expected: "shopify request failed: dial tcp"},
		{Title: "not found default", Err: &ErrNotFound{Resource: "variant", ID: "7"}, Expected: "variant not found: 7"},
		{Title: "not found custom", Err: &ErrNotFound{Message: "gone"}, Expected: "gone"},
		{Title: "missing credentials", Err: &ErrMissingCredentials{Missing: []string{"accessToken"}}, Expected: "accessToken"},
		{Title: "validation default", Err: &ErrValidation{}, Expected: "validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			if !strings.Contains(tt.Err.Error(), tt.Expected) {
				t.Fatalf("expected '%s' in error, but got: %v", tt.Expected, tt.Err)
			}
		})
	}
}
