package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"catalog-service/internal/catalog"
	"catalog-service/internal/metrics"
	"catalog-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const importCSV = "Nome,Preço,Quantidade,Variante1,OpçãoVariante1,SKU Variante\n" +
	"Tênis Run,199.90,4,Tamanho,40,RUN-40\n" +
	"Tênis Run,189.90,2,,41,RUN-41\n" +
	"Prato,,3,,,\n" +
	"Caneca,29.90,10,,,\n"

type importFixture struct {
	store      *MockProductStore
	categories *MockCategoryDirectory
	events     *MockProductEvents
	metrics    *metrics.Metrics
	handler    *ImportHandler
}

func newImportFixture(maxFileBytes int64) *importFixture {
	f := &importFixture{
		store:      new(MockProductStore),
		categories: new(MockCategoryDirectory),
		events:     new(MockProductEvents),
		metrics:    metrics.New("catalog", "test", prometheus.NewRegistry()),
	}
	f.handler = NewImportHandler(f.store, f.categories, f.events, f.metrics, maxFileBytes, nil)
	return f
}

func (f *importFixture) router() *gin.Engine {
	router := setupTestRouter()
	router.GET("/products/import/template", f.handler.GetImportTemplate)
	router.POST("/products/import", f.handler.ImportProducts)
	return router
}

// ===========================================
// Template Tests
// ===========================================

func TestGetImportTemplate_JSON(t *testing.T) {
	router := newImportFixture(0).router()

	w := doJSON(router, http.MethodGet, "/products/import/template", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success  bool                  `json:"success"`
		Template models.ImportTemplate `json:"template"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, catalog.ProductsSheet, resp.Template.Sheet)
	assert.Equal(t, catalog.ColName, resp.Template.Columns[0].Name)
	assert.True(t, resp.Template.Columns[0].Required)
}

func TestGetImportTemplate_XLSX(t *testing.T) {
	router := newImportFixture(0).router()

	w := doJSON(router, http.MethodGet, "/products/import/template?format=xlsx", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	rows, err := catalog.ReadWorkbook(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Len(t, catalog.Prepare(rows, nil), 1)
}

func TestGetImportTemplate_CSV(t *testing.T) {
	router := newImportFixture(0).router()

	w := doJSON(router, http.MethodGet, "/products/import/template?format=csv", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, catalog.ColName, records[0][0])
}

// ===========================================
// Import Tests
// ===========================================

func TestImportProducts_PersistsAndReportsPerProduct(t *testing.T) {
	f := newImportFixture(1 << 20)
	f.categories.On("Lookup", mock.Anything, testTenantID).Return(map[int64]string{})
	f.store.On("CreateFromDraft", mock.Anything, testTenantID, mock.MatchedBy(func(d *catalog.ProductDraft) bool {
		return d.Name == "Tênis Run"
	}), models.ProductSourceImport).Return("id-run", nil).Once()
	f.store.On("CreateFromDraft", mock.Anything, testTenantID, mock.MatchedBy(func(d *catalog.ProductDraft) bool {
		return d.Name == "Caneca"
	}), models.ProductSourceImport).Return("", errors.New("duplicate SKU")).Once()
	f.events.On("PublishProductImported", mock.Anything, testTenantID, "id-run", mock.Anything).Return(nil).Once()

	w := doUpload(t, f.router(), "/products/import", "produtos.csv", []byte(importCSV), nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.ValidateOnly)
	require.NotNil(t, resp.Data)
	assert.Equal(t, 3, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Success)
	assert.Equal(t, 2, resp.Data.Failed)

	require.Len(t, resp.Data.Results, 3)
	assert.Equal(t, "Row 2: Tênis Run", resp.Data.Results[0].Reference)
	assert.Equal(t, "id-run", resp.Data.Results[0].ProductID)
	assert.Equal(t, "Row 4: Prato", resp.Data.Results[1].Reference)
	assert.NotEmpty(t, resp.Data.Results[1].Error)
	assert.Equal(t, "duplicate SKU", resp.Data.Results[2].Error)

	f.store.AssertExpectations(t)
	f.events.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ImportRuns.WithLabelValues("import")))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.ImportDrafts.WithLabelValues("import", "failed")))
}

func TestImportProducts_ValidateOnlyStoresNothing(t *testing.T) {
	f := newImportFixture(1 << 20)
	f.categories.On("Lookup", mock.Anything, testTenantID).Return(map[int64]string{})

	w := doUpload(t, f.router(), "/products/import", "produtos.csv", []byte(importCSV), map[string]string{"validateOnly": "true"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.ValidateOnly)
	assert.Equal(t, 2, resp.Data.Success)
	assert.Equal(t, 1, resp.Data.Failed)
	assert.Empty(t, resp.Data.Results[0].ProductID)
	f.store.AssertNotCalled(t, "CreateFromDraft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "PublishProductImported", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestImportProducts_RequestErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		maxBytes int64
		status   int
		code     string
	}{
		{name: "missing file", status: http.StatusBadRequest, code: "FILE_REQUIRED"},
		{name: "unsupported extension", filename: "produtos.txt", content: "Nome\nCaneca\n", status: http.StatusBadRequest, code: "INVALID_FORMAT"},
		{name: "header only", filename: "produtos.csv", content: "Nome,Preço\n", status: http.StatusBadRequest, code: "EMPTY_FILE"},
		{name: "broken workbook", filename: "produtos.xlsx", content: "not a zip", status: http.StatusBadRequest, code: "PARSE_ERROR"},
		{name: "too large", filename: "produtos.csv", content: importCSV, maxBytes: 16, status: http.StatusRequestEntityTooLarge, code: "FILE_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newImportFixture(tt.maxBytes)

			w := doUpload(t, f.router(), "/products/import", tt.filename, []byte(tt.content), nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Error.Code)
			f.store.AssertNotCalled(t, "CreateFromDraft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
