package catalog

// Prepare turns sheet rows into batch items: one per product, in order of
// first appearance. Products failing validation come back with Err set so
// the runner reports them next to the ones that succeed.
func Prepare(rows []Row, lookup CategoryLookup) []BatchItem {
	groups := GroupRows(rows)
	items := make([]BatchItem, 0, len(groups))
	for _, group := range groups {
		axes := CollectAxes(group)
		variants := BuildFromRows(group, axes)
		draft, err := Assemble(group, axes, variants, lookup)
		items = append(items, BatchItem{
			Reference: group.Reference(),
			Draft:     draft,
			Err:       err,
		})
	}
	return items
}
