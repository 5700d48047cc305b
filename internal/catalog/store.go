package catalog

import (
	"sort"
	"strings"
)

// Retailer priority for card button ordering. Keys outside the canonical set
// sink below the known retailers but keep their feed order among themselves.
var storePriority = map[string]int{
	"ml":  1,
	"sp":  2,
	"amz": 3,
}

const otherStorePriority = 99

// ValidOffers drops offers missing a store key or an affiliate URL.
func ValidOffers(offers []StoreOffer) []StoreOffer {
	out := make([]StoreOffer, 0, len(offers))
	for _, o := range offers {
		if o.Store != "" && o.AffiliateURL != "" {
			out = append(out, o)
		}
	}
	return out
}

// SortOffers filters invalid offers and orders the rest by retailer priority
// (ml, then sp, then amz, then everything else), preserving feed order among
// equal priorities. Store keys are matched on their raw lowercased form; the
// catalog flow does not apply the redirect flow's alias table.
func SortOffers(offers []StoreOffer) []StoreOffer {
	out := ValidOffers(offers)
	sort.SliceStable(out, func(i, j int) bool {
		return offerPriority(out[i]) < offerPriority(out[j])
	})
	return out
}

func offerPriority(o StoreOffer) int {
	if p, ok := storePriority[strings.ToLower(o.Store)]; ok {
		return p
	}
	return otherStorePriority
}
