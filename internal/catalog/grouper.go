package catalog

import "fmt"

// headerRows is the number of sheet rows above the first data row.
const headerRows = 1

// ProductGroup is the run of rows describing one product.
type ProductGroup struct {
	// Name is the trimmed product name shared by every row of the group.
	Name string
	Rows []Row
	// FirstIndex is the position of the group's first row in the input slice.
	FirstIndex int
}

// Reference is the human label used when reporting on the group, e.g. "Row 2: Shoe A".
// The number is the sheet row, counting the header.
func (g ProductGroup) Reference() string {
	return fmt.Sprintf("Row %d: %s", g.FirstIndex+headerRows+1, g.Name)
}

// groupAccumulator collects groups in first-seen order.
type groupAccumulator struct {
	index  map[string]int
	groups []ProductGroup
}

func newGroupAccumulator() *groupAccumulator {
	return &groupAccumulator{index: make(map[string]int)}
}

func (a *groupAccumulator) add(pos int, name string, row Row) {
	if i, ok := a.index[name]; ok {
		a.groups[i].Rows = append(a.groups[i].Rows, row)
		return
	}
	a.index[name] = len(a.groups)
	a.groups = append(a.groups, ProductGroup{Name: name, Rows: []Row{row}, FirstIndex: pos})
}

// GroupRows splits rows into products keyed by trimmed product name.
//
// Rows without a name are skipped. Names are compared case-sensitively:
// product names are labels typed by people, not keys, so "Shoe" and "shoe"
// stay separate products. Group order and row order within a group follow
// first appearance.
func GroupRows(rows []Row) []ProductGroup {
	acc := newGroupAccumulator()
	for pos, row := range rows {
		name, ok := Resolve(row, ColName)
		if !ok {
			continue
		}
		acc.add(pos, name, row)
	}
	return acc.groups
}
