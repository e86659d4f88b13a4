package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_MatchOrder(t *testing.T) {
	tests := []struct {
		name  string
		row   Row
		label string
		want  string
		found bool
	}{
		{name: "exact key", row: Row{"Preço": "10"}, label: "Preço", want: "10", found: true},
		{name: "label with spaces", row: Row{"Preço": "10"}, label: "  Preço ", want: "10", found: true},
		{name: "lower-cased key", row: Row{"nome": "Shoe"}, label: "Nome", want: "Shoe", found: true},
		{name: "upper-cased key", row: Row{"SKU": "A-1"}, label: "sku", want: "A-1", found: true},
		{name: "padded mixed-case header", row: Row{"  QuAnTiDaDe ": "3"}, label: "Quantidade", want: "3", found: true},
		{name: "exact wins over scan", row: Row{"Nome": "exact", " nome ": "scan"}, label: "Nome", want: "exact", found: true},
		{name: "missing column", row: Row{"Nome": "Shoe"}, label: "Preço", found: false},
		{name: "blank value is absent", row: Row{"Preço": "   "}, label: "Preço", found: false},
		{name: "value is trimmed", row: Row{"Nome": "  Shoe A  "}, label: "Nome", want: "Shoe A", found: true},
		{name: "nil row", row: nil, label: "Nome", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.row, tt.label)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_CaseOnlyDuplicateHeadersAreStable(t *testing.T) {
	row := Row{"nOme": "A", "NoMe": "B"}

	for i := 0; i < 200; i++ {
		got, ok := Resolve(row, "Nome")
		assert.True(t, ok)
		assert.Equal(t, "B", got)
	}
}

func TestParseDecimal(t *testing.T) {
	v, ok := ParseDecimal("59,90")
	assert.True(t, ok)
	assert.InDelta(t, 59.90, v, 1e-9)

	v, ok = ParseDecimal(" 55.00 ")
	assert.True(t, ok)
	assert.InDelta(t, 55.0, v, 1e-9)

	for _, bad := range []string{"", "abc", "NaN", "Inf", "1,2,3"} {
		_, ok := ParseDecimal(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseQuantity(t *testing.T) {
	q, ok := ParseQuantity("5")
	assert.True(t, ok)
	assert.Equal(t, 5, q)

	q, ok = ParseQuantity("3,0")
	assert.True(t, ok)
	assert.Equal(t, 3, q)

	_, ok = ParseQuantity("lots")
	assert.False(t, ok)
}
