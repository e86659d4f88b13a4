package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// CategoryLookup returns the canonical name of a category id.
// It must not block; callers preload whatever directory it reads from.
type CategoryLookup func(id int64) (name string, ok bool)

// BaseFields are the product-level fields of a draft.
type BaseFields struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	CategoryID     *int64   `json:"categoryId,omitempty"`
	CategoryLabel  string   `json:"categoryLabel"`
	SKU            string   `json:"sku,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	WholesalePrice *float64 `json:"wholesalePrice,omitempty"`
	Stock          *int     `json:"stock,omitempty"`
	Weight         *float64 `json:"weight,omitempty"`
	Dimensions     string   `json:"dimensions,omitempty"` // LxWxH
	Images         []string `json:"images,omitempty"`
}

// ProductDraft is a normalized product ready to be persisted.
//
// When Variants is non-empty, Price and Stock are nil: each variant carries
// its own price and stock.
type ProductDraft struct {
	BaseFields
	Axes     []VariationAxis `json:"axes"`
	Variants []VariantItem   `json:"variants"`
}

// HasVariants reports whether price and stock live on the variants.
func (d *ProductDraft) HasVariants() bool {
	return len(d.Variants) > 0
}

// ValidationError rejects a single draft. Its message is shown to operators as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Assemble builds the draft of an imported product from its first row,
// its axes and its variant matrix.
func Assemble(group ProductGroup, axes []VariationAxis, variants []VariantItem, lookup CategoryLookup) (*ProductDraft, error) {
	if len(group.Rows) == 0 {
		return nil, invalid("name", "Product name is required")
	}
	return NewDraft(baseFieldsFromRow(group.Rows[0], lookup), axes, variants)
}

// NewDraft validates base fields, axes and variants and returns the draft.
// Base price and stock are discarded when variants are present.
func NewDraft(base BaseFields, axes []VariationAxis, variants []VariantItem) (*ProductDraft, error) {
	base.Name = strings.TrimSpace(base.Name)
	if base.Name == "" {
		return nil, invalid("name", "Product name is required")
	}
	if strings.TrimSpace(base.CategoryLabel) == "" {
		base.CategoryLabel = UncategorizedLabel
	}
	base.Images = uniqueImages(base.Images)

	draft := &ProductDraft{BaseFields: base, Axes: axes, Variants: variants}
	if draft.Axes == nil {
		draft.Axes = []VariationAxis{}
	}
	if draft.Variants == nil {
		draft.Variants = []VariantItem{}
	}

	if draft.HasVariants() {
		draft.Price = nil
		draft.Stock = nil
		for _, v := range draft.Variants {
			if v.Price < 0 {
				return nil, invalid("variants", "Variant %q has a negative price", v.Key)
			}
			if v.Stock < 0 {
				return nil, invalid("variants", "Variant %q has negative stock", v.Key)
			}
		}
		return draft, nil
	}

	if draft.Price == nil {
		return nil, invalid("price", "Price is required for products without variants")
	}
	if *draft.Price < 0 {
		return nil, invalid("price", "Price must not be negative")
	}
	if draft.Stock == nil {
		return nil, invalid("stock", "Stock is required for products without variants")
	}
	if *draft.Stock < 0 {
		return nil, invalid("stock", "Stock must not be negative")
	}
	return draft, nil
}

func baseFieldsFromRow(row Row, lookup CategoryLookup) BaseFields {
	var base BaseFields
	base.Name, _ = Resolve(row, ColName)
	base.Description, _ = Resolve(row, ColDescription)
	base.SKU, _ = Resolve(row, ColSKU)
	base.Price = resolveDecimalPtr(row, ColPrice)
	base.WholesalePrice = resolveDecimalPtr(row, ColWholesalePrice)
	if stock, ok := resolveQuantity(row, ColQuantity); ok {
		base.Stock = &stock
	}
	base.Weight = resolveDecimalPtr(row, ColWeight)
	base.Dimensions = dimensions(row)
	base.CategoryID, base.CategoryLabel = resolveCategory(row, lookup)

	images := make([]string, 0, MaxImages)
	if cover, ok := Resolve(row, ColCoverImage); ok {
		images = append(images, cover)
	}
	for n := 1; n <= ImageSlots; n++ {
		if url, ok := Resolve(row, ImageColumn(n)); ok {
			images = append(images, url)
		}
	}
	base.Images = images
	return base
}

// resolveCategory turns the category cell into an id and a label. Numeric
// cells go through lookup; any other text is taken as the label itself.
func resolveCategory(row Row, lookup CategoryLookup) (*int64, string) {
	raw, ok := Resolve(row, ColCategory)
	if !ok {
		return nil, UncategorizedLabel
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, raw
	}
	if lookup != nil {
		if name, found := lookup(id); found {
			return &id, name
		}
	}
	return nil, UncategorizedLabel
}

// dimensions joins length, width and height as "LxWxH" when any is set.
func dimensions(row Row) string {
	parts := [3]string{"0", "0", "0"}
	found := false
	for i, label := range [3]string{ColLength, ColWidth, ColHeight} {
		if v, ok := Resolve(row, label); ok {
			parts[i] = v
			found = true
		}
	}
	if !found {
		return ""
	}
	return strings.Join(parts[:], "x")
}

func uniqueImages(urls []string) []string {
	set := newOrderedSet()
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			set.add(u)
		}
	}
	if len(set.items) > MaxImages {
		return set.items[:MaxImages]
	}
	return set.items
}
