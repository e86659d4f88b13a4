package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRows_FirstAppearanceOrder(t *testing.T) {
	rows := []Row{
		{ColName: "Boot"},
		{ColName: "Shoe A"},
		{ColName: " Boot ", ColPrice: "2"},
		{ColName: ""},
		{ColPrice: "9"},
		{ColName: "Sandal"},
		{ColName: "Shoe A", ColPrice: "3"},
	}

	groups := GroupRows(rows)

	require.Len(t, groups, 3)
	assert.Equal(t, "Boot", groups[0].Name)
	assert.Equal(t, "Shoe A", groups[1].Name)
	assert.Equal(t, "Sandal", groups[2].Name)

	assert.Len(t, groups[0].Rows, 2)
	assert.Equal(t, "2", groups[0].Rows[1][ColPrice])
	assert.Len(t, groups[1].Rows, 2)
	assert.Equal(t, "3", groups[1].Rows[1][ColPrice])
}

func TestGroupRows_CaseIsPreserved(t *testing.T) {
	groups := GroupRows([]Row{{ColName: "Shoe"}, {ColName: "shoe"}})

	require.Len(t, groups, 2)
	assert.Equal(t, "Shoe", groups[0].Name)
	assert.Equal(t, "shoe", groups[1].Name)
}

func TestGroupRows_BlankNamesExcluded(t *testing.T) {
	rows := []Row{{ColName: "  "}, {ColDescription: "orphan"}, {}}

	assert.Empty(t, GroupRows(rows))
}

func TestProductGroup_Reference(t *testing.T) {
	groups := GroupRows([]Row{{}, {ColName: "Shoe A"}})

	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].FirstIndex)
	// Header is sheet row 1, so input index 1 is sheet row 3.
	assert.Equal(t, "Row 3: Shoe A", groups[0].Reference())
}

func TestCollectAxes_DeclaredByFirstRow(t *testing.T) {
	group := ProductGroup{Name: "Shoe", Rows: []Row{
		{AxisNameColumn(1): "Color", AxisNameColumn(2): "Size", AxisOptionColumn(1): "Red", AxisOptionColumn(2): "M"},
		{AxisOptionColumn(1): "Blue", AxisOptionColumn(2): "M"},
		{AxisOptionColumn(1): "Red", AxisOptionColumn(2): "G"},
		{AxisOptionColumn(1): " ", AxisOptionColumn(2): "P"},
	}}

	axes := CollectAxes(group)

	require.Len(t, axes, 2)
	assert.Equal(t, VariationAxis{Name: "Color", Options: []string{"Red", "Blue"}}, axes[0])
	assert.Equal(t, VariationAxis{Name: "Size", Options: []string{"M", "G", "P"}}, axes[1])
}

func TestCollectAxes_LaterRowCannotDeclareAxis(t *testing.T) {
	group := ProductGroup{Name: "Shoe", Rows: []Row{
		{AxisNameColumn(1): "Color", AxisOptionColumn(1): "Red"},
		{AxisNameColumn(2): "Size", AxisOptionColumn(1): "Blue", AxisOptionColumn(2): "M"},
	}}

	axes := CollectAxes(group)

	require.Len(t, axes, 1)
	assert.Equal(t, "Color", axes[0].Name)
	assert.Equal(t, []string{"Red", "Blue"}, axes[0].Options)
}

func TestCollectAxes_NoAxes(t *testing.T) {
	group := ProductGroup{Name: "Mug", Rows: []Row{{ColName: "Mug", AxisOptionColumn(1): "Red"}}}

	assert.Empty(t, CollectAxes(group))
}
