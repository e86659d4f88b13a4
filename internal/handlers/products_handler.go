package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"catalog-service/internal/catalog"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProductLimits bounds what a single form submission may carry.
type ProductLimits struct {
	MaxImages   int
	MaxVariants int
}

type ProductsHandler struct {
	store      ProductStore
	categories CategoryDirectory
	events     ProductEvents
	limits     ProductLimits
	logger     *logrus.Entry
}

func NewProductsHandler(store ProductStore, categories CategoryDirectory, events ProductEvents, limits ProductLimits, logger *logrus.Entry) *ProductsHandler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ProductsHandler{
		store:      store,
		categories: categories,
		events:     events,
		limits:     limits,
		logger:     logger.WithField("component", "handlers.products"),
	}
}

// RegenerateVariants rebuilds the variant matrix after the form's axes change
// @Summary Regenerate variant matrix
// @Description Expands the axes into every combination, keeping values of combinations that still exist.
// @Tags Products
// @Accept json
// @Produce json
// @Param request body models.RegenerateVariantsRequest true "Axes and current matrix"
// @Success 200 {object} models.RegenerateVariantsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products/variants/regenerate [post]
func (h *ProductsHandler) RegenerateVariants(c *gin.Context) {
	var req models.RegenerateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	if !h.withinVariantLimit(c, req.Axes) {
		return
	}

	items := catalog.Regenerate(req.Axes, req.Items)
	c.JSON(http.StatusOK, models.RegenerateVariantsResponse{
		Success: true,
		Count:   len(items),
		Items:   items,
	})
}

// CreateProduct stores a product submitted from the admin form
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product data"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	ctx := c.Request.Context()

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	if h.limits.MaxImages > 0 && len(req.Images) > h.limits.MaxImages {
		respondError(c, http.StatusBadRequest, "TOO_MANY_IMAGES",
			fmt.Sprintf("A product can have at most %d images", h.limits.MaxImages), "images")
		return
	}

	axes := catalog.NormalizeAxes(req.Axes)
	variants := req.Variants
	if len(axes) > 0 {
		if !h.withinVariantLimit(c, axes) {
			return
		}
		// Re-key against the submitted axes so a stale matrix cannot be stored.
		variants = catalog.Regenerate(axes, req.Variants)
	}

	base := catalog.BaseFields{
		Name:           req.Name,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		CategoryLabel:  req.CategoryLabel,
		SKU:            req.SKU,
		Price:          req.Price,
		WholesalePrice: req.WholesalePrice,
		Stock:          req.Stock,
		Weight:         req.Weight,
		Dimensions:     req.Dimensions,
		Images:         req.Images,
	}
	if base.CategoryLabel == "" && base.CategoryID != nil {
		if name, ok := h.categories.Lookup(ctx, tenantID)(*base.CategoryID); ok {
			base.CategoryLabel = name
		}
	}

	draft, err := catalog.NewDraft(base, axes, variants)
	if err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message, verr.Field)
			return
		}
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	id, err := h.store.CreateFromDraft(ctx, tenantID, draft, models.ProductSourceForm)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			respondError(c, http.StatusConflict, "DUPLICATE_SKU", err.Error(), "sku")
			return
		}
		h.logger.WithError(err).WithField("tenant_id", tenantID).Error("Failed to create product")
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create product", "")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"tenant_id":  tenantID,
		"user_id":    middleware.GetUserID(c),
		"product_id": id,
		"variants":   len(draft.Variants),
	}).Info("Product created")

	if h.events != nil {
		if err := h.events.PublishProductCreated(ctx, tenantID, id, draft); err != nil {
			h.logger.WithError(err).WithField("product_id", id).Warn("Failed to publish product created event")
		}
	}

	message := "Product created successfully"
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"id": id},
		Message: &message,
	})
}

// GetProduct returns a product with its variants
// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ProductResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "INVALID_ID", "Invalid product ID format")
		return
	}

	product, err := h.store.GetProductByID(c.Request.Context(), tenantID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Product not found", "")
			return
		}
		h.logger.WithError(err).WithField("product_id", productID).Error("Failed to load product")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load product", "")
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{
		Success: true,
		Data:    product,
	})
}

func (h *ProductsHandler) withinVariantLimit(c *gin.Context, axes []catalog.VariationAxis) bool {
	count := catalog.CombinationCount(axes)
	if h.limits.MaxVariants > 0 && count > h.limits.MaxVariants {
		respondError(c, http.StatusBadRequest, "TOO_MANY_VARIANTS",
			fmt.Sprintf("Axes exceed the limit of %d variants", h.limits.MaxVariants), "axes")
		return false
	}
	return true
}
