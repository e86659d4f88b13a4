package subscribers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// SubjectCategoryEvents matches every event of the categories-service.
const SubjectCategoryEvents = "category.>"

// CategoryEvent is the part of a category event the catalog cares about.
type CategoryEvent struct {
	EventType  string `json:"event_type"`
	TenantID   string `json:"tenant_id"`
	CategoryID string `json:"category_id,omitempty"`
}

// DirectoryInvalidator drops cached category directories.
type DirectoryInvalidator interface {
	Invalidate(ctx context.Context, tenantID string) error
}

// CategorySubscriber keeps cached category names fresh. Imports resolve
// category ids against the cache, so a renamed or deleted category must
// evict the tenant's directory.
type CategorySubscriber struct {
	conn      *nats.Conn
	directory DirectoryInvalidator
	logger    *logrus.Entry
	sub       *nats.Subscription
}

// NewCategorySubscriber creates a subscriber on an existing connection
func NewCategorySubscriber(conn *nats.Conn, directory DirectoryInvalidator, logger *logrus.Logger) *CategorySubscriber {
	return &CategorySubscriber{
		conn:      conn,
		directory: directory,
		logger:    logger.WithField("component", "category-subscriber"),
	}
}

// Start begins listening for category events
func (s *CategorySubscriber) Start() error {
	sub, err := s.conn.Subscribe(SubjectCategoryEvents, func(msg *nats.Msg) {
		s.handle(context.Background(), msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", SubjectCategoryEvents, err)
	}
	s.sub = sub

	s.logger.WithField("subject", SubjectCategoryEvents).Info("Category subscriber started")
	return nil
}

// handle reports whether the tenant's directory was invalidated.
func (s *CategorySubscriber) handle(ctx context.Context, subject string, data []byte) bool {
	var event CategoryEvent
	if err := json.Unmarshal(data, &event); err != nil {
		s.logger.WithError(err).WithField("subject", subject).Error("Failed to unmarshal category event")
		return false
	}

	tenantID := strings.TrimSpace(event.TenantID)
	if tenantID == "" {
		s.logger.WithField("subject", subject).Debug("Ignoring category event without tenant")
		return false
	}

	if err := s.directory.Invalidate(ctx, tenantID); err != nil {
		s.logger.WithError(err).WithField("tenant_id", tenantID).Warn("Failed to invalidate category directory")
		return false
	}

	s.logger.WithFields(logrus.Fields{
		"subject":     subject,
		"tenant_id":   tenantID,
		"category_id": event.CategoryID,
	}).Debug("Category directory invalidated")
	return true
}

// Stop unsubscribes from category events
func (s *CategorySubscriber) Stop() {
	if s.sub != nil {
		_ = s.sub.Unsubscribe()
	}
	s.logger.Info("Category subscriber stopped")
}
