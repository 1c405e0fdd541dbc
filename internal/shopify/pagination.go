package shopify

import (
	"net/url"
	"strings"
)

// Pagination holds the cursor tokens advertised by Shopify's Link header
type Pagination struct {
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	HasNext  bool   `json:"hasNext"`
	HasPrev  bool   `json:"hasPrevious"`
}

// ParseLinkHeader extracts page_info tokens from a header like
// `<https://shop/admin/api/2024-10/products.json?limit=50&page_info=abc>; rel="next"`.
func ParseLinkHeader(header string) Pagination {
	var p Pagination
	if strings.TrimSpace(header) == "" {
		return p
	}

	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		rawURL := strings.Trim(strings.TrimSpace(segments[0]), "<>")
		u, err := url.Parse(rawURL)
		if err != nil {
			continue
		}
		token := u.Query().Get("page_info")
		if token == "" {
			continue
		}
		for _, attr := range segments[1:] {
			attr = strings.TrimSpace(attr)
			switch attr {
			case `rel="next"`, "rel=next":
				p.Next = token
				p.HasNext = true
			case `rel="previous"`, "rel=previous":
				p.Previous = token
				p.HasPrev = true
			}
		}
	}
	return p
}
