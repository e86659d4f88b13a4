package catalog

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// InstructionsSheet holds the column documentation of the template.
const InstructionsSheet = "Instruções"

// templateExample is one product with two axes (Cor × Tamanho) spread over
// two rows: the first row carries the base data and declares the axes, the
// second adds another combination of the same product.
var templateExample = []Row{
	{
		ColName:              "Camiseta Básica",
		ColDescription:       "Camiseta 100% algodão",
		ColCategory:          "12",
		ColSKU:               "CAM-001",
		ColPrice:             "59,90",
		ColWholesalePrice:    "45,00",
		ColPriceUSD:          "11.50",
		ColWholesalePriceUSD: "9.00",
		ColQuantity:          "10",
		ColWeight:            "0,3",
		ColLength:            "30",
		ColWidth:             "20",
		ColHeight:            "2",
		ColCoverImage:        "https://cdn.example.com/cam-001.jpg",
		ImageColumn(1):       "https://cdn.example.com/cam-001-back.jpg",
		AxisNameColumn(1):    "Cor",
		AxisNameColumn(2):    "Tamanho",
		AxisOptionColumn(1):  "Azul",
		AxisOptionColumn(2):  "M",
		ColVariantSKU:        "CAM-001-AZ-M",
	},
	{
		ColName:             "Camiseta Básica",
		ColPrice:            "59,90",
		ColQuantity:         "5",
		AxisOptionColumn(1): "Azul",
		AxisOptionColumn(2): "G",
		ColVariantSKU:       "CAM-001-AZ-G",
	},
}

// EmitTemplate renders the example import workbook as .xlsx bytes.
func EmitTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	columns := TemplateColumns()
	if err := f.SetSheetName("Sheet1", ProductsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	requiredStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		header := col.Name
		style := headerStyle
		if col.Required {
			header += requiredMarker
			style = requiredStyle
		}
		if err := f.SetCellValue(ProductsSheet, cell, header); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(ProductsSheet, cell, cell, style)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(ProductsSheet, colName, colName, 20)

		for r, example := range templateExample {
			value, ok := example[col.Name]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(ProductsSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := writeInstructions(f, columns); err != nil {
		return nil, err
	}

	idx, err := f.GetSheetIndex(ProductsSheet)
	if err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeInstructions(f *excelize.File, columns []TemplateColumn) error {
	if _, err := f.NewSheet(InstructionsSheet); err != nil {
		return fmt.Errorf("failed to add instructions sheet: %w", err)
	}

	lines := []string{
		"Product Import Instructions",
		"",
		"One row per product, or one row per combination for products with variants.",
		"Rows with the same '" + ColName + "' are merged into one product; the first row carries the base data.",
		"Variation axes are declared by '" + AxisNameColumn(1) + "' and '" + AxisNameColumn(2) + "' on the product's first row only.",
		"Repeated combinations add up their stock and keep the lowest positive price.",
		"Products with variants take price and stock from the variant rows.",
	}
	for i, line := range lines {
		if line == "" {
			continue
		}
		if err := f.SetCellValue(InstructionsSheet, fmt.Sprintf("A%d", i+1), line); err != nil {
			return err
		}
	}

	start := len(lines) + 2
	for i, h := range []string{"Column", "Description", "Required", "Type", "Example"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, start)
		_ = f.SetCellValue(InstructionsSheet, cell, h)
	}
	for i, col := range columns {
		row := start + 1 + i
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		_ = f.SetCellValue(InstructionsSheet, fmt.Sprintf("A%d", row), col.Name)
		_ = f.SetCellValue(InstructionsSheet, fmt.Sprintf("B%d", row), col.Description)
		_ = f.SetCellValue(InstructionsSheet, fmt.Sprintf("C%d", row), required)
		_ = f.SetCellValue(InstructionsSheet, fmt.Sprintf("D%d", row), col.Type)
		_ = f.SetCellValue(InstructionsSheet, fmt.Sprintf("E%d", row), col.Example)
	}

	_ = f.SetColWidth(InstructionsSheet, "A", "A", 25)
	_ = f.SetColWidth(InstructionsSheet, "B", "B", 70)
	_ = f.SetColWidth(InstructionsSheet, "C", "D", 15)
	_ = f.SetColWidth(InstructionsSheet, "E", "E", 40)
	return nil
}
