// Package redirect resolves a product + preferred store pair into a terminal
// outcome for the affiliate redirect page: the product and offer to show, or
// one of the not-found / load-error / link-unavailable states.
package redirect

import (
	"regexp"
	"strings"

	"github.com/achoumais/achoumais/internal/catalog"
)

// State is the terminal outcome of one redirect resolution pass.
type State int

const (
	// StateSuccess means an offer with a usable affiliate URL was resolved.
	StateSuccess State = iota
	// StateNotFound means the id parameter was missing or unknown.
	StateNotFound
	// StateLoadError means the product feed could not be loaded.
	StateLoadError
	// StateUnavailable means the product exists but no usable offer does.
	StateUnavailable
)

// Resolution carries everything the redirect page needs to render.
type Resolution struct {
	State        State
	Product      *catalog.Product
	Offer        *catalog.StoreOffer
	Store        string // canonical store key of the chosen offer
	AffiliateURL string // normalized destination
}

// Store alias table for the redirect flow. The catalog flow intentionally
// does not use it (see service.CatalogService).
var storeAliases = map[string]string{
	"ml": "ml", "mercadolivre": "ml", "mercado-livre": "ml", "meli": "ml", "mercado": "ml",
	"shopee": "shopee", "sh": "shopee", "sp": "shopee", "shoppe": "shopee", "shoppee": "shopee",
	"amazon": "amazon", "amz": "amazon", "az": "amazon",
}

// NormalizeStoreKey lowercases and trims a requested store key and maps it
// through the alias table. Unrecognized keys pass through unchanged; a blank
// key defaults to ml.
func NormalizeStoreKey(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	if canonical, ok := storeAliases[s]; ok {
		return canonical
	}
	if s == "" {
		return "ml"
	}
	return s
}

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL trims an affiliate URL and forces an https scheme onto
// protocol-relative or schemeless values. Already-schemed URLs are returned
// unchanged.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	if !schemeRe.MatchString(u) {
		return "https://" + u
	}
	return u
}

// NotFound builds the terminal not-found resolution.
func NotFound() Resolution { return Resolution{State: StateNotFound} }

// LoadError builds the terminal feed-failure resolution.
func LoadError() Resolution { return Resolution{State: StateLoadError} }

// Resolve picks the offer for a product given the requested store key.
// Preference order: offer matching the normalized requested store, else an
// ml offer, else the first offer in feed order. Offer store keys are alias
// normalized before comparison. If the chosen offer has no usable affiliate
// URL the resolution is terminal Unavailable.
func Resolve(product *catalog.Product, requestedStore string) Resolution {
	if product == nil {
		return NotFound()
	}

	storeKey := NormalizeStoreKey(requestedStore)

	preferred := findByStore(product.Stores, storeKey)
	if preferred == nil {
		preferred = findByStore(product.Stores, "ml")
	}
	if preferred == nil && len(product.Stores) > 0 {
		preferred = &product.Stores[0]
	}

	if preferred == nil {
		return Resolution{State: StateUnavailable, Product: product}
	}

	affiliateURL := NormalizeURL(preferred.AffiliateURL)
	if affiliateURL == "" {
		return Resolution{State: StateUnavailable, Product: product}
	}

	resolved := NormalizeStoreKey(preferred.Store)
	return Resolution{
		State:        StateSuccess,
		Product:      product,
		Offer:        preferred,
		Store:        resolved,
		AffiliateURL: affiliateURL,
	}
}

func findByStore(offers []catalog.StoreOffer, canonical string) *catalog.StoreOffer {
	for i := range offers {
		if NormalizeStoreKey(offers[i].Store) == canonical {
			return &offers[i]
		}
	}
	return nil
}
