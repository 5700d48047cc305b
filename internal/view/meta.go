// Package view renders the site's HTML surface: product cards, pagination
// controls, the daily-pick section and the redirect interstitial. All
// user-facing strings are Portuguese and part of the observable contract.
package view

import "strings"

// StoreMeta describes how a retailer is displayed on a card button.
type StoreMeta struct {
	Key      string
	Label    string
	BtnClass string
	Icon     string
	Text     string
}

// MetaForStore maps a raw store key to its display metadata. Unrecognized
// keys fall back to a generic store button.
func MetaForStore(storeKey string) StoreMeta {
	switch strings.ToLower(storeKey) {
	case "ml":
		return StoreMeta{Key: "ml", Label: "Mercado Livre", BtnClass: "btnML", Icon: "/assets/svg/ml.svg", Text: "Comprar no Mercado Livre"}
	case "sp":
		return StoreMeta{Key: "sp", Label: "Shopee", BtnClass: "btnSP", Icon: "/assets/svg/shopee.svg", Text: "Comprar na Shopee"}
	case "amz":
		return StoreMeta{Key: "amz", Label: "Amazon", BtnClass: "btnAMZ", Icon: "/assets/svg/amazon.svg", Text: "Comprar na Amazon"}
	}
	return StoreMeta{Key: strings.ToLower(storeKey), Label: "Loja", BtnClass: "btnML", Icon: "/assets/svg/ml.svg", Text: "Comprar"}
}

// BtnClassForCanonical maps a canonical (alias-normalized) store key to the
// interstitial CTA class. Unknown stores get no extra class.
func BtnClassForCanonical(store string) string {
	switch store {
	case "ml":
		return "btnML"
	case "shopee":
		return "btnSP"
	case "amazon":
		return "btnAMZ"
	}
	return ""
}
