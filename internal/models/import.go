package models

import (
	"path/filepath"
	"strings"

	"catalog-service/internal/catalog"
)

// ImportFormat represents the file format for import
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// ImportFormatFromFilename picks the format from the upload's extension.
func ImportFormatFromFilename(name string) (ImportFormat, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ImportFormatCSV, true
	case ".xlsx":
		return ImportFormatXLSX, true
	}
	return "", false
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity  string                   `json:"entity"`
	Version string                   `json:"version"`
	Sheet   string                   `json:"sheet"`
	Columns []catalog.TemplateColumn `json:"columns"`
}

// ProductImportTemplate returns the template definition for products
func ProductImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "products",
		Version: "2.0",
		Sheet:   catalog.ProductsSheet,
		Columns: catalog.TemplateColumns(),
	}
}

// ImportResponse wraps a batch report. ValidateOnly reports are dry runs:
// nothing was stored and no product ids are returned.
type ImportResponse struct {
	Success      bool                  `json:"success"`
	ValidateOnly bool                  `json:"validateOnly"`
	ProcessingMs int64                 `json:"processingMs"`
	Data         *catalog.ImportResult `json:"data"`
}
