package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidOffers(t *testing.T) {
	offers := []StoreOffer{
		{Store: "ml", AffiliateURL: "https://x/1"},
		{Store: "", AffiliateURL: "https://x/2"},
		{Store: "sp", AffiliateURL: ""},
		{Store: "amz", AffiliateURL: "https://x/3"},
	}

	out := ValidOffers(offers)
	require.Len(t, out, 2)
	assert.Equal(t, "ml", out[0].Store)
	assert.Equal(t, "amz", out[1].Store)
}

func TestSortOffers(t *testing.T) {
	t.Run("retailer priority order", func(t *testing.T) {
		offers := []StoreOffer{
			{Store: "amz", AffiliateURL: "https://x/1"},
			{Store: "sp", AffiliateURL: "https://x/2"},
			{Store: "ml", AffiliateURL: "https://x/3"},
		}

		out := SortOffers(offers)
		require.Len(t, out, 3)
		assert.Equal(t, "ml", out[0].Store)
		assert.Equal(t, "sp", out[1].Store)
		assert.Equal(t, "amz", out[2].Store)
	})

	t.Run("unknown stores sink but keep feed order", func(t *testing.T) {
		offers := []StoreOffer{
			{Store: "lojaB", AffiliateURL: "https://x/1"},
			{Store: "sp", AffiliateURL: "https://x/2"},
			{Store: "lojaA", AffiliateURL: "https://x/3"},
		}

		out := SortOffers(offers)
		require.Len(t, out, 3)
		assert.Equal(t, "sp", out[0].Store)
		assert.Equal(t, "lojaB", out[1].Store)
		assert.Equal(t, "lojaA", out[2].Store)
	})

	t.Run("case insensitive store keys", func(t *testing.T) {
		offers := []StoreOffer{
			{Store: "AMZ", AffiliateURL: "https://x/1"},
			{Store: "ML", AffiliateURL: "https://x/2"},
		}

		out := SortOffers(offers)
		require.Len(t, out, 2)
		assert.Equal(t, "ML", out[0].Store)
	})

	t.Run("alias names do not get catalog priority", func(t *testing.T) {
		// "shopee" spelled out is a redirect-flow alias; the catalog flow
		// ranks only the raw ml/sp/amz keys.
		offers := []StoreOffer{
			{Store: "shopee", AffiliateURL: "https://x/1"},
			{Store: "amz", AffiliateURL: "https://x/2"},
		}

		out := SortOffers(offers)
		require.Len(t, out, 2)
		assert.Equal(t, "amz", out[0].Store)
		assert.Equal(t, "shopee", out[1].Store)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		offers := []StoreOffer{
			{Store: "amz", AffiliateURL: "https://x/1"},
			{Store: "ml", AffiliateURL: "https://x/2"},
		}

		SortOffers(offers)
		assert.Equal(t, "amz", offers[0].Store)
	})
}
