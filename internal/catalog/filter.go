package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a string and strips Unicode combining marks, so that
// "Promoção" and "promocao" compare equal.
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	folded, _, err := transform.String(foldTransformer, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// Filter returns the products whose normalized title contains the normalized
// query as a substring. A blank or whitespace-only query returns a copy of
// the full list.
func Filter(products []Product, query string) []Product {
	q := Normalize(strings.TrimSpace(query))
	if q == "" {
		out := make([]Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(Normalize(p.Title), q) {
			out = append(out, p)
		}
	}
	return out
}

// Page is one rendered slice of a filtered product list.
type Page struct {
	Items      []Product
	Number     int
	TotalPages int
	TotalItems int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Paginate slices filtered into the requested 1-based page. Total pages is
// never below 1, so an empty result set still yields page 1 of 1 with zero
// items, and the page number is clamped into [1, totalPages].
func Paginate(filtered []Product, page, pageSize int) Page {
	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{
		Items:      filtered[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: len(filtered),
	}
}
