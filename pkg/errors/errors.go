package errors

import (
	"fmt"
	"net/http"
)

// ErrMissingCredentials is returned when a request omits shopDomain or accessToken
type ErrMissingCredentials struct {
	Missing []string
}

func (e *ErrMissingCredentials) Error() string {
	return fmt.Sprintf("missing required credentials: %v", e.Missing)
}

// ErrUpstream is returned when Shopify or another upstream answers non-2xx
type ErrUpstream struct {
	Service    string
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrUpstream) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s request failed: %s", e.Service, e.Body)
	}
	return fmt.Sprintf("%s API error: %d %s", e.Service, e.StatusCode, e.Status)
}

// HTTPStatus is the status the API answers with for this upstream failure.
// Auth, not-found and throttling answers pass through; the rest are a bad gateway.
func (e *ErrUpstream) HTTPStatus() int {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusTooManyRequests:
		return e.StatusCode
	default:
		return http.StatusBadGateway
	}
}

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
	Message  string
}

func (e *ErrNotFound) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrNotConfigured is returned when an endpoint needs settings the server was started without
type ErrNotConfigured struct {
	Feature string
	Missing []string
}

func (e *ErrNotConfigured) Error() string {
	return fmt.Sprintf("%s is not configured: set %v", e.Feature, e.Missing)
}
