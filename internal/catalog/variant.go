package catalog

import (
	"sort"
	"strings"
)

// OptionAssignment maps axis name to the option chosen for one combination.
type OptionAssignment map[string]string

// VariantKey is the canonical form of an OptionAssignment, e.g. "Color=Red|Size=M".
type VariantKey string

// KeyOf returns the canonical key of an assignment. Pairs are sorted so the
// key does not depend on map or axis order. Both the import builder and the
// interactive regeneration key through this function.
func KeyOf(options OptionAssignment) VariantKey {
	if len(options) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(options))
	for name, value := range options {
		pairs = append(pairs, name+"="+value)
	}
	sort.Strings(pairs)
	return VariantKey(strings.Join(pairs, "|"))
}

// Equal reports whether two assignments select the same combination.
func (o OptionAssignment) Equal(other OptionAssignment) bool {
	return KeyOf(o) == KeyOf(other)
}

// VariantItem is one purchasable combination with its own price and stock.
type VariantItem struct {
	Key               VariantKey       `json:"key"`
	Options           OptionAssignment `json:"options"`
	SKU               string           `json:"sku,omitempty"`
	Price             float64          `json:"price"`
	WholesalePrice    *float64         `json:"wholesalePrice,omitempty"`
	PriceUSD          *float64         `json:"priceUsd,omitempty"`
	WholesalePriceUSD *float64         `json:"wholesalePriceUsd,omitempty"`
	Stock             int              `json:"stock"`
}

// Name renders the option values in axis order, e.g. "Red / M".
func (v VariantItem) Name(axes []VariationAxis) string {
	parts := make([]string, 0, len(v.Options))
	for _, axis := range axes {
		if value, ok := v.Options[axis.Name]; ok {
			parts = append(parts, value)
		}
	}
	if len(parts) == 0 {
		return string(v.Key)
	}
	return strings.Join(parts, " / ")
}
