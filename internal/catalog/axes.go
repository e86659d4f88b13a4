package catalog

import "strings"

// VariationAxis is one dimension of variation with its options in insertion order.
type VariationAxis struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// orderedSet keeps unique strings in first-seen order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// declaredAxis ties an axis to the sheet column holding its options.
type declaredAxis struct {
	name         string
	optionColumn string
}

// declaredAxes reads which axes the first row of a group declares.
//
// Only the first row counts. A later row filling an option column for an
// axis the first row left blank is ignored; that is a property of the legacy
// column scheme and is kept as is.
func declaredAxes(group ProductGroup) []declaredAxis {
	if len(group.Rows) == 0 {
		return nil
	}
	first := group.Rows[0]
	var out []declaredAxis
	seen := make(map[string]struct{}, MaxAxes)
	for n := 1; n <= MaxAxes; n++ {
		name, ok := Resolve(first, AxisNameColumn(n))
		if !ok {
			continue
		}
		// A repeated name keeps its first column only.
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, declaredAxis{name: name, optionColumn: AxisOptionColumn(n)})
	}
	return out
}

// CollectAxes derives the variation axes of a product group: zero, one or
// two, depending on what the group's first row declares. Each axis collects
// the distinct non-blank option values of all rows, in first-seen order.
func CollectAxes(group ProductGroup) []VariationAxis {
	declared := declaredAxes(group)
	axes := make([]VariationAxis, 0, len(declared))
	for _, d := range declared {
		opts := newOrderedSet()
		for _, row := range group.Rows {
			if v, ok := Resolve(row, d.optionColumn); ok {
				opts.add(v)
			}
		}
		axes = append(axes, VariationAxis{Name: d.name, Options: opts.items})
	}
	return axes
}

// NormalizeAxes trims names and options, drops blank and repeated options,
// and drops axes that end up without a name, without options, or repeating
// an earlier axis name.
func NormalizeAxes(axes []VariationAxis) []VariationAxis {
	names := make(map[string]struct{}, len(axes))
	out := make([]VariationAxis, 0, len(axes))
	for _, axis := range axes {
		name := strings.TrimSpace(axis.Name)
		if name == "" {
			continue
		}
		if _, dup := names[name]; dup {
			continue
		}
		opts := newOrderedSet()
		for _, o := range axis.Options {
			if o = strings.TrimSpace(o); o != "" {
				opts.add(o)
			}
		}
		if len(opts.items) == 0 {
			continue
		}
		names[name] = struct{}{}
		out = append(out, VariationAxis{Name: name, Options: opts.items})
	}
	return out
}
