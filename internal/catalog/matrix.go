package catalog

import "math"

// maxPrealloc bounds the up-front allocation of a regenerated matrix.
const maxPrealloc = 1024

// rowVariant is what a single sheet row contributes to the variant matrix.
type rowVariant struct {
	options           OptionAssignment
	sku               string
	price             *float64
	wholesalePrice    *float64
	priceUSD          *float64
	wholesalePriceUSD *float64
	stock             int
}

// matrixAccumulator holds variant items in first-insertion order, unique by key.
type matrixAccumulator struct {
	index map[VariantKey]int
	items []VariantItem
}

func newMatrixAccumulator() *matrixAccumulator {
	return &matrixAccumulator{index: make(map[VariantKey]int)}
}

// merge inserts rv or folds it into the item already holding its key.
func (a *matrixAccumulator) merge(rv rowVariant, basePrice *float64) {
	key := KeyOf(rv.options)
	i, exists := a.index[key]
	if !exists {
		price := 0.0
		switch {
		case rv.price != nil:
			price = *rv.price
		case basePrice != nil:
			price = *basePrice
		}
		a.index[key] = len(a.items)
		a.items = append(a.items, VariantItem{
			Key:               key,
			Options:           rv.options,
			SKU:               rv.sku,
			Price:             price,
			WholesalePrice:    rv.wholesalePrice,
			PriceUSD:          rv.priceUSD,
			WholesalePriceUSD: rv.wholesalePriceUSD,
			Stock:             rv.stock,
		})
		return
	}

	item := &a.items[i]
	item.Stock += rv.stock
	// Lowest positive price wins; a zero price is replaced by any positive one.
	if rv.price != nil && *rv.price > 0 && (item.Price == 0 || *rv.price < item.Price) {
		item.Price = *rv.price
	}
	if item.SKU == "" {
		item.SKU = rv.sku
	}
	if item.WholesalePrice == nil {
		item.WholesalePrice = rv.wholesalePrice
	}
	if item.PriceUSD == nil {
		item.PriceUSD = rv.priceUSD
	}
	if item.WholesalePriceUSD == nil {
		item.WholesalePriceUSD = rv.wholesalePriceUSD
	}
}

// BuildFromRows builds the deduplicated variant matrix of an imported product.
//
// A row takes part when it has an option for at least one of the given axes
// or a variant SKU. Rows landing on the same combination are merged: stock
// is summed, the lowest positive price is kept and the first SKU seen is
// kept. Items come back in first-insertion order.
func BuildFromRows(group ProductGroup, axes []VariationAxis) []VariantItem {
	if len(group.Rows) == 0 {
		return nil
	}

	wanted := make(map[string]struct{}, len(axes))
	for _, axis := range axes {
		wanted[axis.Name] = struct{}{}
	}
	var columns []declaredAxis
	for _, d := range declaredAxes(group) {
		if _, ok := wanted[d.name]; ok {
			columns = append(columns, d)
		}
	}

	basePrice := resolveDecimalPtr(group.Rows[0], ColPrice)
	acc := newMatrixAccumulator()
	for _, row := range group.Rows {
		options := make(OptionAssignment, len(columns))
		for _, c := range columns {
			if v, ok := Resolve(row, c.optionColumn); ok {
				options[c.name] = v
			}
		}
		sku, hasSKU := Resolve(row, ColVariantSKU)
		if len(options) == 0 && !hasSKU {
			continue
		}

		stock, _ := resolveQuantity(row, ColQuantity)
		acc.merge(rowVariant{
			options:           options,
			sku:               sku,
			price:             resolveDecimalPtr(row, ColPrice),
			wholesalePrice:    resolveDecimalPtr(row, ColWholesalePrice),
			priceUSD:          resolveDecimalPtr(row, ColPriceUSD),
			wholesalePriceUSD: resolveDecimalPtr(row, ColWholesalePriceUSD),
			stock:             stock,
		}, basePrice)
	}
	return acc.items
}

// CombinationCount returns how many items Regenerate would produce for axes.
// Counts that do not fit in an int saturate at math.MaxInt.
func CombinationCount(axes []VariationAxis) int {
	axes = NormalizeAxes(axes)
	if len(axes) == 0 {
		return 0
	}
	n := 1
	for _, axis := range axes {
		opts := len(axis.Options)
		if n > math.MaxInt/opts {
			return math.MaxInt
		}
		n *= opts
	}
	return n
}

// Regenerate expands axes into the full cartesian variant matrix.
//
// Items of existing whose key still occurs are carried over untouched, so
// prices, SKUs and stock typed in the admin form survive edits to unrelated
// axes or options. New combinations start empty with zero stock. Output
// follows the enumeration order (last axis varies fastest), which keeps row
// positions stable in the editor. No axes means no items.
func Regenerate(axes []VariationAxis, existing []VariantItem) []VariantItem {
	axes = NormalizeAxes(axes)
	if len(axes) == 0 {
		return []VariantItem{}
	}

	previous := make(map[VariantKey]VariantItem, len(existing))
	for _, item := range existing {
		key := KeyOf(item.Options)
		if key == "" {
			key = item.Key
		}
		if _, dup := previous[key]; !dup {
			previous[key] = item
		}
	}

	out := make([]VariantItem, 0, min(CombinationCount(axes), maxPrealloc))
	cursor := make([]int, len(axes))
	for {
		options := make(OptionAssignment, len(axes))
		for i, axis := range axes {
			options[axis.Name] = axis.Options[cursor[i]]
		}
		key := KeyOf(options)
		if item, ok := previous[key]; ok {
			item.Key = key
			item.Options = options
			out = append(out, item)
		} else {
			out = append(out, VariantItem{Key: key, Options: options})
		}

		// Odometer step: advance the last axis, carrying leftwards.
		i := len(axes) - 1
		for ; i >= 0; i-- {
			cursor[i]++
			if cursor[i] < len(axes[i].Options) {
				break
			}
			cursor[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}
