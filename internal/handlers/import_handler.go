package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog-service/internal/catalog"
	"catalog-service/internal/metrics"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ImportHandler struct {
	store        ProductStore
	categories   CategoryDirectory
	events       ProductEvents
	metrics      *metrics.Metrics
	runner       *catalog.Runner
	maxFileBytes int64
	logger       *logrus.Entry
}

func NewImportHandler(store ProductStore, categories CategoryDirectory, events ProductEvents, m *metrics.Metrics, maxFileBytes int64, logger *logrus.Entry) *ImportHandler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ImportHandler{
		store:        store,
		categories:   categories,
		events:       events,
		metrics:      m,
		runner:       catalog.NewRunner(logger),
		maxFileBytes: maxFileBytes,
		logger:       logger.WithField("component", "handlers.import"),
	}
}

// GetImportTemplate returns the import template definition or file
// @Summary Product import template
// @Tags Import
// @Produce json
// @Param format query string false "json, xlsx or csv" default(json)
// @Success 200 {object} models.ImportTemplate
// @Failure 500 {object} models.ErrorResponse
// @Router /products/import/template [get]
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	template := models.ProductImportTemplate()

	switch format {
	case "csv":
		h.generateCSVTemplate(c, template)
	case "xlsx":
		h.generateXLSXTemplate(c)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

// generateCSVTemplate downloads the header row only
func (h *ImportHandler) generateCSVTemplate(c *gin.Context, template models.ImportTemplate) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename=produtos_modelo.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	if err := writer.Write(headers); err != nil {
		h.logger.WithError(err).Error("Failed to write CSV template")
	}
}

// generateXLSXTemplate downloads the workbook with example rows and instructions
func (h *ImportHandler) generateXLSXTemplate(c *gin.Context) {
	data, err := catalog.EmitTemplate()
	if err != nil {
		h.logger.WithError(err).Error("Failed to build import template")
		respondError(c, http.StatusInternalServerError, "TEMPLATE_ERROR", "Failed to generate template", "")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=produtos_modelo.xlsx")
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ImportProducts imports products from a CSV or Excel upload
// @Summary Import products
// @Description Rows sharing a product name become one product; each row is one variant.
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Param validateOnly formData bool false "Dry run: validate without storing"
// @Success 200 {object} models.ImportResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Router /products/import [post]
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	startTime := time.Now()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "FILE_REQUIRED", "Please upload a CSV or Excel file")
		return
	}
	defer file.Close()

	if h.maxFileBytes > 0 && header.Size > h.maxFileBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d MB limit", h.maxFileBytes>>20), "file")
		return
	}

	format, ok := models.ImportFormatFromFilename(header.Filename)
	if !ok {
		badRequest(c, "INVALID_FORMAT", "Only CSV and XLSX files are supported")
		return
	}

	validateOnly := c.DefaultPostForm("validateOnly", c.DefaultQuery("validateOnly", "false")) == "true"

	rows, err := readUpload(format, file)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNoSheet):
			badRequest(c, "NO_SHEET", "The workbook has no sheets")
		case errors.Is(err, catalog.ErrNoDataRows):
			badRequest(c, "EMPTY_FILE", "The file contains no data rows")
		default:
			badRequest(c, "PARSE_ERROR", err.Error())
		}
		return
	}

	ctx := c.Request.Context()
	items := catalog.Prepare(rows, h.categories.Lookup(ctx, tenantID))
	result := h.runner.Run(ctx, items, h.createFunc(tenantID, validateOnly))
	h.metrics.RecordImport(result, validateOnly)

	h.logger.WithFields(logrus.Fields{
		"tenant_id":     tenantID,
		"user_id":       middleware.GetUserID(c),
		"file":          header.Filename,
		"validate_only": validateOnly,
		"total":         result.Total,
		"failed":        result.Failed,
	}).Info("Product import processed")

	c.JSON(http.StatusOK, models.ImportResponse{
		Success:      true,
		ValidateOnly: validateOnly,
		ProcessingMs: time.Since(startTime).Milliseconds(),
		Data:         result,
	})
}

// createFunc stores drafts, or only accepts them on a dry run.
func (h *ImportHandler) createFunc(tenantID string, validateOnly bool) catalog.CreateFunc {
	if validateOnly {
		return func(ctx context.Context, draft *catalog.ProductDraft) (string, error) {
			return "", nil
		}
	}
	return func(ctx context.Context, draft *catalog.ProductDraft) (string, error) {
		id, err := h.store.CreateFromDraft(ctx, tenantID, draft, models.ProductSourceImport)
		if err != nil {
			return "", err
		}
		if h.events != nil {
			if err := h.events.PublishProductImported(ctx, tenantID, id, draft); err != nil {
				h.logger.WithError(err).WithField("product_id", id).Warn("Failed to publish product imported event")
			}
		}
		return id, nil
	}
}

func readUpload(format models.ImportFormat, r io.Reader) ([]catalog.Row, error) {
	if format == models.ImportFormatCSV {
		return catalog.ReadCSV(r)
	}
	return catalog.ReadWorkbook(r)
}
