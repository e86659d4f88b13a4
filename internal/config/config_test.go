package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MAX_PRODUCT_VARIANTS", "")
	t.Setenv("CATEGORIES_SERVICE_URL", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, 100, cfg.MaxProductVariants)
	assert.Equal(t, 10, cfg.MaxProductImages)
	assert.Equal(t, int64(10<<20), cfg.MaxImportFileBytes())
	assert.Equal(t, "http://categories-service:8080", cfg.CategoriesServiceURL)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MAX_PRODUCT_VARIANTS", "25")
	t.Setenv("MAX_IMPORT_FILE_MB", "oops")
	t.Setenv("CATEGORIES_SERVICE_URL", "http://categories:9000/")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_NAME", "catalog_test")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, ,http://localhost:4302")

	cfg := Load()

	assert.Equal(t, 25, cfg.MaxProductVariants)
	assert.Equal(t, 10, cfg.MaxImportFileMB)
	assert.Equal(t, "http://categories:9000", cfg.CategoriesServiceURL)
	assert.True(t, cfg.IsProduction())
	assert.Contains(t, cfg.DSN(), "dbname=catalog_test")
	assert.Equal(t, []string{"https://admin.example.com", "http://localhost:4302"}, cfg.CORSAllowedOrigins)
}

func TestNewLogger_Level(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, NewLogger(&Config{Environment: "production"}).GetLevel())
	assert.Equal(t, logrus.DebugLevel, NewLogger(&Config{Environment: "development"}).GetLevel())
}
