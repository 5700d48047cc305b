package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		expectedID string
	}{
		{name: "string id", payload: `{"id":"42","title":"A"}`, expectedID: "42"},
		{name: "numeric id", payload: `{"id":42,"title":"A"}`, expectedID: "42"},
		{name: "missing id", payload: `{"title":"A"}`, expectedID: ""},
		{name: "null id", payload: `{"id":null,"title":"A"}`, expectedID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &p))
			assert.Equal(t, tt.expectedID, p.ID)
			assert.Equal(t, "A", p.Title)
		})
	}
}

func TestProductUnmarshalJSONStores(t *testing.T) {
	payload := `{
		"id": 7,
		"title": "Fone",
		"stores": [
			{"store": "ml", "storeLabel": "Mercado Livre", "affiliateUrl": "https://x/1"}
		]
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(payload), &p))
	assert.Equal(t, "7", p.ID)
	require.Len(t, p.Stores, 1)
	assert.Equal(t, "ml", p.Stores[0].Store)
	assert.Equal(t, "Mercado Livre", p.Stores[0].StoreLabel)
	assert.Equal(t, "https://x/1", p.Stores[0].AffiliateURL)
}

func TestFindByID(t *testing.T) {
	products := []Product{
		{ID: "1", Title: "A"},
		{ID: "2", Title: "B"},
	}

	t.Run("found", func(t *testing.T) {
		p := FindByID(products, "2")
		require.NotNil(t, p)
		assert.Equal(t, "B", p.Title)
	})

	t.Run("not found", func(t *testing.T) {
		assert.Nil(t, FindByID(products, "99"))
	})

	t.Run("empty id", func(t *testing.T) {
		assert.Nil(t, FindByID(products, ""))
	})
}
