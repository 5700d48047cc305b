package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "PROMO", expected: "promo"},
		{name: "strips diacritics", input: "Promoção", expected: "promocao"},
		{name: "mixed accents", input: "Relâmpago Elétrico", expected: "relampago eletrico"},
		{name: "cedilla", input: "Cabeça", expected: "cabeca"},
		{name: "already plain", input: "fone bluetooth", expected: "fone bluetooth"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestFilter(t *testing.T) {
	products := []Product{
		{ID: "1", Title: "Promoção Relâmpago"},
		{ID: "2", Title: "Fone Bluetooth"},
		{ID: "3", Title: "Cafeteira Elétrica"},
	}

	t.Run("blank query returns a copy of the full list", func(t *testing.T) {
		out := Filter(products, "   ")
		require.Len(t, out, 3)

		out[0].Title = "mutated"
		assert.Equal(t, "Promoção Relâmpago", products[0].Title)
	})

	t.Run("query without accents matches accented title", func(t *testing.T) {
		out := Filter(products, "promocao")
		require.Len(t, out, 1)
		assert.Equal(t, "1", out[0].ID)
	})

	t.Run("accented query matches too", func(t *testing.T) {
		out := Filter(products, "Elétrica")
		require.Len(t, out, 1)
		assert.Equal(t, "3", out[0].ID)
	})

	t.Run("substring match is case insensitive", func(t *testing.T) {
		out := Filter(products, "BLUE")
		require.Len(t, out, 1)
		assert.Equal(t, "2", out[0].ID)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		out := Filter(products, "geladeira")
		assert.Empty(t, out)
	})
}

func TestPaginate(t *testing.T) {
	makeProducts := func(n int) []Product {
		out := make([]Product, n)
		for i := range out {
			out[i] = Product{ID: fmt.Sprintf("%d", i+1)}
		}
		return out
	}

	t.Run("empty list yields page 1 of 1 with zero items", func(t *testing.T) {
		page := Paginate(nil, 1, 20)
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, 0, page.TotalItems)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasPrev())
		assert.False(t, page.HasNext())
	})

	t.Run("exact multiple of page size", func(t *testing.T) {
		page := Paginate(makeProducts(40), 2, 20)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Items, 20)
		assert.Equal(t, "21", page.Items[0].ID)
		assert.True(t, page.HasPrev())
		assert.False(t, page.HasNext())
	})

	t.Run("last partial page", func(t *testing.T) {
		page := Paginate(makeProducts(25), 2, 20)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Items, 5)
		assert.Equal(t, "21", page.Items[0].ID)
	})

	t.Run("page clamped above total", func(t *testing.T) {
		page := Paginate(makeProducts(25), 99, 20)
		assert.Equal(t, 2, page.Number)
		assert.Len(t, page.Items, 5)
	})

	t.Run("page clamped below one", func(t *testing.T) {
		page := Paginate(makeProducts(25), 0, 20)
		assert.Equal(t, 1, page.Number)
		assert.Len(t, page.Items, 20)
	})

	t.Run("pages cover the whole list without overlap", func(t *testing.T) {
		products := makeProducts(47)
		seen := map[string]bool{}
		total := Paginate(products, 1, 20).TotalPages
		require.Equal(t, 3, total)
		for p := 1; p <= total; p++ {
			for _, item := range Paginate(products, p, 20).Items {
				assert.False(t, seen[item.ID], "id %s repeated", item.ID)
				seen[item.ID] = true
			}
		}
		assert.Len(t, seen, 47)
	})
}
