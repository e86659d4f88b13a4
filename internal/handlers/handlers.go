package handlers

import (
	"context"
	"net/http"
	"time"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductStore persists drafts and reads products back.
type ProductStore interface {
	CreateFromDraft(ctx context.Context, tenantID string, draft *catalog.ProductDraft, source models.ProductSource) (string, error)
	GetProductByID(ctx context.Context, tenantID string, productID uuid.UUID) (*models.Product, error)
}

// CategoryDirectory resolves category ids to names for a tenant.
type CategoryDirectory interface {
	Lookup(ctx context.Context, tenantID string) catalog.CategoryLookup
}

// ProductEvents announces stored products. Optional: handlers skip
// publishing when it is nil.
type ProductEvents interface {
	PublishProductImported(ctx context.Context, tenantID, productID string, draft *catalog.ProductDraft) error
	PublishProductCreated(ctx context.Context, tenantID, productID string, draft *catalog.ProductDraft) error
}

func respondError(c *gin.Context, status int, code, message, field string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func badRequest(c *gin.Context, code, message string) {
	respondError(c, http.StatusBadRequest, code, message, "")
}
