package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Structural failures: the whole upload is rejected before any grouping.
var (
	ErrNoSheet    = errors.New("no sheets found in workbook")
	ErrNoDataRows = errors.New("file must have a header row and at least one data row")
)

// ProductsSheet is the preferred sheet name when a workbook has several.
const ProductsSheet = "Produtos"

// requiredMarker is appended to required headers in the template.
const requiredMarker = " *"

// ReadWorkbook reads the product sheet of an .xlsx upload into rows.
// The first row is the header; blank lines are kept so row positions
// match the sheet.
func ReadWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, ProductsSheet) {
			sheetName = name
			break
		}
	}

	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	return rowsFromRecords(records)
}

// ReadCSV reads a CSV upload into rows, same layout as ReadWorkbook.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return rowsFromRecords(records)
}

func rowsFromRecords(records [][]string) ([]Row, error) {
	if len(records) < 2 {
		return nil, ErrNoDataRows
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSuffix(strings.TrimSpace(h), requiredMarker)
	}

	rows := make([]Row, 0, len(records)-1)
	filled := 0
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		blank := true
		for i, value := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if _, dup := row[headers[i]]; dup {
				continue
			}
			row[headers[i]] = value
			if strings.TrimSpace(value) != "" {
				blank = false
			}
		}
		if !blank {
			filled++
		}
		rows = append(rows, row)
	}

	if filled == 0 {
		return nil, ErrNoDataRows
	}
	return rows, nil
}
