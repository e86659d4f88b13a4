package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"catalog-service/internal/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// ProductSource records how a product entered the catalog
type ProductSource string

const (
	ProductSourceImport ProductSource = "IMPORT"
	ProductSourceForm   ProductSource = "FORM"
)

// JSON type for PostgreSQL JSONB (object/map)
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// JSONArray type for PostgreSQL JSONB (array)
type JSONArray []interface{}

func (j JSONArray) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONArray, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// ProductImage represents a product image
type ProductImage struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// Dimensions represents product dimensions
type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
	Unit   string `json:"unit"`
}

// Product represents a catalog product. Prices are stored as decimal strings.
// Price and Quantity are nil when the product has variants.
type Product struct {
	ID             uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID       string            `json:"tenantId" gorm:"not null;index:idx_products_tenant_id;index:idx_products_tenant_category;index:idx_products_tenant_sku,unique;index:idx_products_tenant_slug,unique"`
	CategoryID     *int64            `json:"categoryId,omitempty" gorm:"index:idx_products_tenant_category"`
	CategoryLabel  string            `json:"categoryLabel" gorm:"not null"`
	Name           string            `json:"name" gorm:"not null"`
	Slug           *string           `json:"slug,omitempty" gorm:"index:idx_products_tenant_slug,unique"`
	SKU            string            `json:"sku" gorm:"not null;index:idx_products_tenant_sku,unique"`
	Description    *string           `json:"description,omitempty"`
	Price          *string           `json:"price,omitempty"`
	WholesalePrice *string           `json:"wholesalePrice,omitempty"`
	CurrencyCode   *string           `json:"currencyCode,omitempty"`
	Status         ProductStatus     `json:"status" gorm:"not null;default:'DRAFT'"`
	Source         ProductSource     `json:"source" gorm:"not null;default:'FORM'"`
	Quantity       *int              `json:"quantity,omitempty"`
	Weight         *string           `json:"weight,omitempty"`
	Dimensions     *JSON             `json:"dimensions,omitempty" gorm:"type:jsonb"`
	Images         *JSONArray        `json:"images,omitempty" gorm:"type:jsonb"`
	Axes           *JSONArray        `json:"axes,omitempty" gorm:"type:jsonb"`
	Variants       []*ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	DeletedAt      *gorm.DeletedAt   `json:"deletedAt,omitempty" gorm:"index"`
	CreatedBy      *string           `json:"createdBy,omitempty"`
}

// ProductVariant is one combination of a product's axes.
type ProductVariant struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID         uuid.UUID       `json:"productId" gorm:"type:uuid;not null;index;index:idx_variants_product_key,unique"`
	VariantKey        string          `json:"variantKey" gorm:"not null;index:idx_variants_product_key,unique"`
	SKU               string          `json:"sku" gorm:"not null;index"`
	Name              string          `json:"name" gorm:"not null"`
	Options           *JSON           `json:"options,omitempty" gorm:"type:jsonb"`
	Price             string          `json:"price" gorm:"not null"`
	WholesalePrice    *string         `json:"wholesalePrice,omitempty"`
	PriceUSD          *string         `json:"priceUsd,omitempty" gorm:"column:price_usd"`
	WholesalePriceUSD *string         `json:"wholesalePriceUsd,omitempty" gorm:"column:wholesale_price_usd"`
	Quantity          int             `json:"quantity" gorm:"not null;default:0"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	DeletedAt         *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// CreateProductRequest is the admin form submission. Variants are re-keyed
// against Axes before validation, so a stale matrix cannot be stored.
type CreateProductRequest struct {
	Name           string                  `json:"name" binding:"required"`
	Description    string                  `json:"description,omitempty"`
	CategoryID     *int64                  `json:"categoryId,omitempty"`
	CategoryLabel  string                  `json:"categoryLabel,omitempty"`
	SKU            string                  `json:"sku,omitempty"`
	Price          *float64                `json:"price,omitempty"`
	Stock          *int                    `json:"stock,omitempty"`
	WholesalePrice *float64                `json:"wholesalePrice,omitempty"`
	Weight         *float64                `json:"weight,omitempty"`
	Dimensions     string                  `json:"dimensions,omitempty"`
	Images         []string                `json:"images,omitempty"`
	Axes           []catalog.VariationAxis `json:"axes,omitempty"`
	Variants       []catalog.VariantItem   `json:"variants,omitempty"`
}

// RegenerateVariantsRequest carries the form's current axes and matrix.
type RegenerateVariantsRequest struct {
	Axes  []catalog.VariationAxis `json:"axes"`
	Items []catalog.VariantItem   `json:"items"`
}

type RegenerateVariantsResponse struct {
	Success bool                  `json:"success"`
	Count   int                   `json:"count"`
	Items   []catalog.VariantItem `json:"items"`
}

type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data"`
	Message *string  `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Details *JSON  `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TableName returns the table name for the ProductVariant model
func (ProductVariant) TableName() string {
	return "product_variants"
}
