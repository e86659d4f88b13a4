package events

import (
	"encoding/json"
	"testing"

	"catalog-service/internal/catalog"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductEvent_WithVariants(t *testing.T) {
	axes := []catalog.VariationAxis{{Name: "Color", Options: []string{"Red", "Blue"}}}
	items := catalog.Regenerate(axes, nil)
	items[0].Stock = 5
	items[1].Stock = 3
	draft, err := catalog.NewDraft(catalog.BaseFields{Name: "Shoe A", SKU: "SHOE-A"}, axes, items)
	require.NoError(t, err)

	event := NewProductEvent(SubjectProductImported, "tenant-1", "p-1", draft)

	assert.Equal(t, SubjectProductImported, event.EventType)
	assert.Equal(t, "tenant-1", event.TenantID)
	assert.Equal(t, "p-1", event.ProductID)
	assert.Equal(t, []string{"Color"}, event.Axes)
	assert.Equal(t, 2, event.VariantCount)
	assert.Equal(t, 8, event.TotalStock)
	assert.Equal(t, catalog.UncategorizedLabel, event.CategoryLabel)
	assert.NotEmpty(t, event.EventID)
}

func TestNewProductEvent_Simple(t *testing.T) {
	price, stock := 10.0, 4
	draft, err := catalog.NewDraft(catalog.BaseFields{Name: "Mug", Price: &price, Stock: &stock}, nil, nil)
	require.NoError(t, err)

	event := NewProductEvent(SubjectProductCreated, "tenant-1", "p-2", draft)

	assert.Equal(t, 4, event.TotalStock)
	assert.Zero(t, event.VariantCount)

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event_type":"catalog.product.created"`)
	assert.NotContains(t, string(data), `"axes"`)
}

func TestNewPublisher_RequiresURL(t *testing.T) {
	_, err := NewPublisher("", logrus.New())

	assert.Error(t, err)
}
