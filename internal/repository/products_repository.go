package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Cache TTL constants
const (
	ProductCacheTTL = 5 * time.Minute
)

var (
	// ErrDuplicateSKU is returned when a product or variant SKU is already taken in the tenant.
	ErrDuplicateSKU = errors.New("duplicate SKU")
	// ErrProductNotFound is returned when no product matches the tenant and id.
	ErrProductNotFound = errors.New("product not found")
)

type ProductsRepository struct {
	db       *gorm.DB
	redis    *redis.Client
	currency string
	logger   *logrus.Entry
}

func NewProductsRepository(db *gorm.DB, redis *redis.Client, currency string, logger *logrus.Entry) *ProductsRepository {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ProductsRepository{
		db:       db,
		redis:    redis,
		currency: currency,
		logger:   logger.WithField("component", "repository.products"),
	}
}

func productCacheKey(tenantID string, productID uuid.UUID) string {
	return fmt.Sprintf("catalog:product:%s:%s", tenantID, productID.String())
}

// CreateFromDraft stores a draft as a product and its variants in one
// transaction and returns the new product id.
func (r *ProductsRepository) CreateFromDraft(ctx context.Context, tenantID string, draft *catalog.ProductDraft, source models.ProductSource) (string, error) {
	product, err := productFromDraft(draft, r.currency)
	if err != nil {
		return "", err
	}
	product.TenantID = tenantID
	product.Source = source
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Soft-deleted rows still hold the unique index.
		var existingCount int64
		if err := tx.Unscoped().Model(&models.Product{}).
			Where("tenant_id = ? AND sku = ?", tenantID, product.SKU).
			Count(&existingCount).Error; err != nil {
			return fmt.Errorf("failed to check for duplicate SKU: %w", err)
		}
		if existingCount > 0 {
			return fmt.Errorf("%w: product with SKU '%s' already exists for this tenant", ErrDuplicateSKU, product.SKU)
		}

		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	r.setCached(ctx, product)
	r.logger.WithFields(logrus.Fields{
		"tenant_id":  tenantID,
		"product_id": product.ID.String(),
		"variants":   len(product.Variants),
		"source":     source,
	}).Debug("Product created")
	return product.ID.String(), nil
}

// GetProductByID retrieves a product with its variants, read through Redis.
func (r *ProductsRepository) GetProductByID(ctx context.Context, tenantID string, productID uuid.UUID) (*models.Product, error) {
	if product, ok := r.getCached(ctx, tenantID, productID); ok {
		return product, nil
	}

	var product models.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		Preload("Variants").
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	r.setCached(ctx, &product)
	return &product, nil
}

func (r *ProductsRepository) getCached(ctx context.Context, tenantID string, productID uuid.UUID) (*models.Product, bool) {
	if r.redis == nil {
		return nil, false
	}
	val, err := r.redis.Get(ctx, productCacheKey(tenantID, productID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WithError(err).Debug("Product cache read failed")
		}
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (r *ProductsRepository) setCached(ctx context.Context, product *models.Product) {
	if r.redis == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, productCacheKey(product.TenantID, product.ID), data, ProductCacheTTL).Err(); err != nil {
		r.logger.WithError(err).Debug("Product cache write failed")
	}
}

// productFromDraft maps a validated draft onto the gorm models. Missing
// product SKUs are derived from the slug; missing variant SKUs from the
// product SKU and the variant position.
func productFromDraft(draft *catalog.ProductDraft, currency string) (*models.Product, error) {
	if draft == nil {
		return nil, errors.New("no product data")
	}

	product := &models.Product{
		ID:            uuid.New(),
		Name:          draft.Name,
		CategoryID:    draft.CategoryID,
		CategoryLabel: draft.CategoryLabel,
		Status:        models.ProductStatusDraft,
	}

	slug := fmt.Sprintf("%s-%s", generateSlug(draft.Name), product.ID.String()[:8])
	product.Slug = &slug

	product.SKU = strings.TrimSpace(draft.SKU)
	if product.SKU == "" {
		product.SKU = strings.ToUpper(slug)
	}
	if draft.Description != "" {
		product.Description = stringPtr(draft.Description)
	}
	if currency != "" {
		product.CurrencyCode = stringPtr(currency)
	}
	product.Price = formatPricePtr(draft.Price)
	product.WholesalePrice = formatPricePtr(draft.WholesalePrice)
	if draft.Stock != nil {
		qty := *draft.Stock
		product.Quantity = &qty
	}
	if draft.Weight != nil {
		product.Weight = stringPtr(strconv.FormatFloat(*draft.Weight, 'f', -1, 64))
	}
	product.Dimensions = parseDimensions(draft.Dimensions)

	if len(draft.Images) > 0 {
		images := make(models.JSONArray, 0, len(draft.Images))
		for i, url := range draft.Images {
			images = append(images, models.ProductImage{ID: uuid.New().String(), URL: url, Position: i})
		}
		product.Images = &images
	}

	if len(draft.Axes) > 0 {
		axes := make(models.JSONArray, 0, len(draft.Axes))
		for _, axis := range draft.Axes {
			axes = append(axes, axis)
		}
		product.Axes = &axes
	}

	seenSKU := make(map[string]bool, len(draft.Variants))
	product.Variants = make([]*models.ProductVariant, 0, len(draft.Variants))
	for i, item := range draft.Variants {
		sku := strings.TrimSpace(item.SKU)
		if sku == "" {
			sku = fmt.Sprintf("%s-%d", product.SKU, i+1)
		}
		if seenSKU[sku] {
			return nil, fmt.Errorf("%w: SKU '%s' is used more than once in this product", ErrDuplicateSKU, sku)
		}
		seenSKU[sku] = true

		key := string(item.Key)
		if key == "" {
			// SKU-only rows carry no option values.
			key = "sku=" + sku
		}

		var options *models.JSON
		if len(item.Options) > 0 {
			opts := make(models.JSON, len(item.Options))
			for name, value := range item.Options {
				opts[name] = value
			}
			options = &opts
		}

		name := item.Name(draft.Axes)
		if name == "" {
			name = sku
		}

		product.Variants = append(product.Variants, &models.ProductVariant{
			ID:                uuid.New(),
			ProductID:         product.ID,
			VariantKey:        key,
			SKU:               sku,
			Name:              name,
			Options:           options,
			Price:             formatPrice(item.Price),
			WholesalePrice:    formatPricePtr(item.WholesalePrice),
			PriceUSD:          formatPricePtr(item.PriceUSD),
			WholesalePriceUSD: formatPricePtr(item.WholesalePriceUSD),
			Quantity:          item.Stock,
		})
	}

	return product, nil
}

// parseDimensions splits "LxWxH" into the dimensions document.
func parseDimensions(s string) *models.JSON {
	parts := strings.Split(s, "x")
	if s == "" || len(parts) != 3 {
		return nil
	}
	dims := models.JSON{
		"length": strings.TrimSpace(parts[0]),
		"width":  strings.TrimSpace(parts[1]),
		"height": strings.TrimSpace(parts[2]),
		"unit":   "cm",
	}
	return &dims
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPricePtr(v *float64) *string {
	if v == nil {
		return nil
	}
	s := formatPrice(*v)
	return &s
}

func stringPtr(s string) *string {
	return &s
}

// generateSlug creates a URL-friendly slug from a name
func generateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	if result.Len() == 0 {
		return "product"
	}
	return result.String()
}
