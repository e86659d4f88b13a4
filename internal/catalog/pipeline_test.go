package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare_TwoRowsOneProduct(t *testing.T) {
	rows := []Row{
		{ColName: "Shoe A", AxisNameColumn(1): "Color", AxisOptionColumn(1): "Red", ColPrice: "59,90", ColQuantity: "5"},
		{ColName: "Shoe A", AxisOptionColumn(1): "Blue", ColPrice: "55.00", ColQuantity: "3"},
	}

	items := Prepare(rows, nil)

	require.Len(t, items, 1)
	require.NoError(t, items[0].Err)
	draft := items[0].Draft
	assert.Equal(t, []VariationAxis{{Name: "Color", Options: []string{"Red", "Blue"}}}, draft.Axes)
	require.Len(t, draft.Variants, 2)
	assert.InDelta(t, 59.90, draft.Variants[0].Price, 1e-9)
	assert.Equal(t, 5, draft.Variants[0].Stock)
	assert.InDelta(t, 55.0, draft.Variants[1].Price, 1e-9)
	assert.Equal(t, 3, draft.Variants[1].Stock)
	assert.Nil(t, draft.Price)
	assert.Nil(t, draft.Stock)
}

func TestPrepare_InvalidProductKeepsItsPlace(t *testing.T) {
	rows := []Row{
		{ColName: "Mug", ColPrice: "10", ColQuantity: "1"},
		{ColName: "Plate", ColQuantity: "1"},
		{ColName: "Bowl", ColPrice: "8", ColQuantity: "4"},
	}

	items := Prepare(rows, nil)
	require.Len(t, items, 3)
	assert.NoError(t, items[0].Err)
	assert.Error(t, items[1].Err)
	assert.Equal(t, "Row 3: Plate", items[1].Reference)

	result := NewRunner(nil).Run(context.Background(), items, func(_ context.Context, d *ProductDraft) (string, error) {
		return "id-" + d.Name, nil
	})

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 1, result.Failed)
}
