package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Product is a single record of the affiliate product feed. The feed is an
// external collaborator and is taken as-is: every field besides ID may be
// blank and no schema validation is applied.
type Product struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl"`
	Category    string       `json:"category"`
	Badge       string       `json:"badge"`
	Stores      []StoreOffer `json:"stores"`
}

// StoreOffer is a per-retailer purchase link attached to a product.
type StoreOffer struct {
	Store        string `json:"store"`
	StoreLabel   string `json:"storeLabel"`
	AffiliateURL string `json:"affiliateUrl"`
}

// UnmarshalJSON coerces numeric feed ids to strings so that id equality
// works regardless of how the feed encodes them.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.ID = coerceID(aux.ID)
	return nil
}

// coerceID renders a raw JSON id value as the string used for lookups.
func coerceID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}
	// Numeric ids: keep the literal digits.
	return s
}

// FindByID returns the first product whose id equals the given id after
// string coercion on both sides, or nil if none matches.
func FindByID(products []Product, id string) *Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}
