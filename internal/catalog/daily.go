package catalog

import (
	"fmt"
	"time"
)

// DayKey formats a time as the YYYY-MM-DD string that seeds the daily pick.
// Local time is used on purpose: the pick rolls over at local midnight.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// HashIndex reduces a string to an index in [0, max) using the 31-multiplier
// rolling hash under unsigned 32-bit wraparound. The same key and max always
// yield the same index, so every visitor sees the same product of the day.
func HashIndex(s string, max int) int {
	var h uint32
	for _, c := range s {
		h = h*31 + uint32(c)
	}
	if max <= 0 {
		return 0
	}
	return int(h % uint32(max))
}

// DailyPick selects the product of the day for the given moment. The number
// of store buttons shown for the pick is capped at three, sorted by the same
// retailer priority as the catalog cards. Returns false when the feed is
// empty.
func DailyPick(products []Product, now time.Time) (Product, string, bool) {
	if len(products) == 0 {
		return Product{}, "", false
	}
	key := DayKey(now)
	idx := HashIndex(key, len(products))
	return products[idx], key, true
}

// DailyOffers returns the pick's store buttons: valid offers, priority
// sorted, at most three.
func DailyOffers(p Product) []StoreOffer {
	offers := SortOffers(p.Stores)
	if len(offers) > 3 {
		offers = offers[:3]
	}
	return offers
}
