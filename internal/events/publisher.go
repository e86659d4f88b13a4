package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/internal/catalog"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Subjects published by the catalog service.
const (
	SubjectProductImported = "catalog.product.imported"
	SubjectProductCreated  = "catalog.product.created"
)

// ProductEvent announces a product that entered the catalog.
type ProductEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	TenantID      string    `json:"tenant_id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	SKU           string    `json:"sku,omitempty"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	CategoryLabel string    `json:"category_label"`
	Axes          []string  `json:"axes,omitempty"`
	VariantCount  int       `json:"variant_count"`
	TotalStock    int       `json:"total_stock"`
	Timestamp     time.Time `json:"timestamp"`
}

// Publisher sends product events over NATS.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS and returns a product events publisher.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	if natsURL == "" {
		return nil, fmt.Errorf("NATS_URL not set")
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("catalog-service-publisher"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

// Conn exposes the connection so subscribers can share it.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the NATS connection
func (p *Publisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

// PublishProductImported announces a product created by a spreadsheet import.
func (p *Publisher) PublishProductImported(ctx context.Context, tenantID, productID string, draft *catalog.ProductDraft) error {
	return p.publish(ctx, SubjectProductImported, NewProductEvent(SubjectProductImported, tenantID, productID, draft))
}

// PublishProductCreated announces a product created from the admin form.
func (p *Publisher) PublishProductCreated(ctx context.Context, tenantID, productID string, draft *catalog.ProductDraft) error {
	return p.publish(ctx, SubjectProductCreated, NewProductEvent(SubjectProductCreated, tenantID, productID, draft))
}

// NewProductEvent builds the event payload for a stored draft.
func NewProductEvent(eventType, tenantID, productID string, draft *catalog.ProductDraft) *ProductEvent {
	event := &ProductEvent{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		TenantID:      tenantID,
		ProductID:     productID,
		ProductName:   draft.Name,
		SKU:           draft.SKU,
		CategoryID:    draft.CategoryID,
		CategoryLabel: draft.CategoryLabel,
		VariantCount:  len(draft.Variants),
		Timestamp:     time.Now().UTC(),
	}
	for _, axis := range draft.Axes {
		event.Axes = append(event.Axes, axis.Name)
	}
	if draft.HasVariants() {
		for _, v := range draft.Variants {
			event.TotalStock += v.Stock
		}
	} else if draft.Stock != nil {
		event.TotalStock = *draft.Stock
	}
	return event
}

func (p *Publisher) publish(ctx context.Context, subject string, event *ProductEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	fields := logrus.Fields{
		"subject":    subject,
		"product_id": event.ProductID,
		"tenant_id":  event.TenantID,
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithFields(fields).WithError(err).Error("Failed to publish product event")
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	p.logger.WithFields(fields).Debug("Product event published")
	return nil
}
