package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===========================================
// Mocks
// ===========================================

type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) CreateFromDraft(ctx context.Context, tenantID string, draft *catalog.ProductDraft, source models.ProductSource) (string, error) {
	args := m.Called(ctx, tenantID, draft, source)
	return args.String(0), args.Error(1)
}

func (m *MockProductStore) GetProductByID(ctx context.Context, tenantID string, productID uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type MockCategoryDirectory struct {
	mock.Mock
}

func (m *MockCategoryDirectory) Lookup(ctx context.Context, tenantID string) catalog.CategoryLookup {
	args := m.Called(ctx, tenantID)
	names := args.Get(0).(map[int64]string)
	return func(id int64) (string, bool) {
		name, ok := names[id]
		return name, ok
	}
}

type MockProductEvents struct {
	mock.Mock
}

func (m *MockProductEvents) PublishProductImported(ctx context.Context, tenantID, productID string, draft *catalog.ProductDraft) error {
	args := m.Called(ctx, tenantID, productID, draft)
	return args.Error(0)
}

func (m *MockProductEvents) PublishProductCreated(ctx context.Context, tenantID, productID string, draft *catalog.ProductDraft) error {
	args := m.Called(ctx, tenantID, productID, draft)
	return args.Error(0)
}

// ===========================================
// Helpers
// ===========================================

const testTenantID = "tenant-1"

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("tenant_id", testTenantID)
		c.Next()
	})
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, router *gin.Engine, path, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
