package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"catalog-service/internal/catalog"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CategoryDirectoryTTL is how long a tenant's category names stay cached.
const CategoryDirectoryTTL = 30 * time.Minute

// CategoriesClient reads the category directory from the categories-service.
type CategoriesClient struct {
	baseURL    string
	httpClient *http.Client
	redis      *redis.Client
	logger     *logrus.Entry
}

// Category represents a category from categories-service
type Category struct {
	ID       json.RawMessage `json:"id"`
	TenantID string          `json:"tenantId"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	ParentID *string         `json:"parentId,omitempty"`
	Level    int             `json:"level"`
	Status   string          `json:"status"`
	IsActive bool            `json:"isActive"`
}

// NumericID returns the id as an integer. Ids may arrive as JSON numbers
// or quoted strings.
func (c Category) NumericID() (int64, bool) {
	raw := strings.Trim(strings.TrimSpace(string(c.ID)), `"`)
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}

// CategoryListResponse from categories-service
type CategoryListResponse struct {
	Success bool       `json:"success"`
	Data    []Category `json:"data,omitempty"`
}

// NewCategoriesClient creates a new categories client. redis may be nil.
func NewCategoriesClient(baseURL string, redis *redis.Client, logger *logrus.Entry) *CategoriesClient {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &CategoriesClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		redis:  redis,
		logger: logger.WithField("component", "clients.categories"),
	}
}

func categoryDirectoryKey(tenantID string) string {
	return fmt.Sprintf("catalog:categories:%s", tenantID)
}

// CategoryNames returns the tenant's category names keyed by numeric id.
// Categories whose id is not numeric are left out.
func (c *CategoriesClient) CategoryNames(ctx context.Context, tenantID string) (map[int64]string, error) {
	if names, ok := c.cachedNames(ctx, tenantID); ok {
		return names, nil
	}

	url := fmt.Sprintf("%s/api/v1/categories?limit=1000", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Tenant-ID", tenantID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call categories API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("failed to list categories: %d - %s", resp.StatusCode, string(body))
	}

	var result CategoryListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode categories response: %w", err)
	}

	names := make(map[int64]string, len(result.Data))
	for _, cat := range result.Data {
		id, ok := cat.NumericID()
		if !ok {
			continue
		}
		names[id] = cat.Name
	}

	c.cacheNames(ctx, tenantID, names)
	c.logger.WithFields(logrus.Fields{
		"tenant_id":  tenantID,
		"categories": len(names),
	}).Debug("Category directory loaded")
	return names, nil
}

// Lookup preloads the tenant's directory and returns it as a lookup for
// the import pipeline. A failing directory yields an empty lookup: imports
// fall back to the uncategorized label instead of failing.
func (c *CategoriesClient) Lookup(ctx context.Context, tenantID string) catalog.CategoryLookup {
	names, err := c.CategoryNames(ctx, tenantID)
	if err != nil {
		c.logger.WithError(err).WithField("tenant_id", tenantID).Warn("Category directory unavailable, importing without category names")
		names = map[int64]string{}
	}
	return func(id int64) (string, bool) {
		name, ok := names[id]
		return name, ok
	}
}

// Invalidate drops the cached directory of a tenant.
func (c *CategoriesClient) Invalidate(ctx context.Context, tenantID string) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Del(ctx, categoryDirectoryKey(tenantID)).Err()
}

// The cache stores ids as strings: JSON object keys cannot be numbers.
func (c *CategoriesClient) cachedNames(ctx context.Context, tenantID string) (map[int64]string, bool) {
	if c.redis == nil {
		return nil, false
	}
	val, err := c.redis.Get(ctx, categoryDirectoryKey(tenantID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).Debug("Category cache read failed")
		}
		return nil, false
	}
	var raw map[string]string
	if err := json.Unmarshal([]byte(val), &raw); err != nil {
		return nil, false
	}
	names := make(map[int64]string, len(raw))
	for k, v := range raw {
		if id, err := strconv.ParseInt(k, 10, 64); err == nil {
			names[id] = v
		}
	}
	return names, true
}

func (c *CategoriesClient) cacheNames(ctx context.Context, tenantID string, names map[int64]string) {
	if c.redis == nil {
		return
	}
	raw := make(map[string]string, len(names))
	for id, name := range names {
		raw[strconv.FormatInt(id, 10)] = name
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, categoryDirectoryKey(tenantID), data, CategoryDirectoryTTL).Err(); err != nil {
		c.logger.WithError(err).Debug("Category cache write failed")
	}
}
