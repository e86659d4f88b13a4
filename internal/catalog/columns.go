package catalog

import "fmt"

// Column labels of the product spreadsheet. The labels come from the legacy
// back-office sheet and are matched through Resolve, so header case and
// surrounding whitespace do not matter.
const (
	ColName              = "Nome"
	ColDescription       = "Descrição"
	ColCategory          = "Categoria"
	ColSKU               = "SKU"
	ColPrice             = "Preço"
	ColWholesalePrice    = "Preço Atacado"
	ColPriceUSD          = "Preço USD"
	ColWholesalePriceUSD = "Preço Atacado USD"
	ColQuantity          = "Quantidade"
	ColWeight            = "Peso"
	ColLength            = "Comprimento"
	ColWidth             = "Largura"
	ColHeight            = "Altura"
	ColCoverImage        = "Imagem Capa"
	ColVariantSKU        = "SKU Variante"
)

const (
	// MaxAxes is the number of variation axes the column scheme can express.
	MaxAxes = 2
	// ImageSlots is the number of numbered image columns after the cover.
	ImageSlots = 9
	// MaxImages is the cover plus every numbered slot.
	MaxImages = ImageSlots + 1

	// UncategorizedLabel is used when the category cell is empty or cannot be resolved.
	UncategorizedLabel = "Sem categoria"
)

// AxisNameColumn returns the label holding the name of axis n (1-based), e.g. "Variante1".
func AxisNameColumn(n int) string {
	return fmt.Sprintf("Variante%d", n)
}

// AxisOptionColumn returns the label holding a row's option for axis n (1-based).
func AxisOptionColumn(n int) string {
	return fmt.Sprintf("OpçãoVariante%d", n)
}

// ImageColumn returns the label of numbered image slot n (1-based).
func ImageColumn(n int) string {
	return fmt.Sprintf("Imagem%d", n)
}

// TemplateColumn describes one column of the import sheet.
type TemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string, number, integer, url
	Example     string `json:"example"`
}

// TemplateColumns returns the full column contract in sheet order.
func TemplateColumns() []TemplateColumn {
	cols := []TemplateColumn{
		{Name: ColName, Description: "Product name. Rows sharing a name form one product", Required: true, Type: "string", Example: "Camiseta Básica"},
		{Name: ColDescription, Description: "Product description (read from the product's first row)", Type: "string", Example: "Camiseta 100% algodão"},
		{Name: ColCategory, Description: "Category id or name. Unknown categories fall back to '" + UncategorizedLabel + "'", Type: "string", Example: "12"},
		{Name: ColSKU, Description: "Base product SKU", Type: "string", Example: "CAM-001"},
		{Name: ColPrice, Description: "Price. Accepts '.' or ',' as decimal separator. Required when the product has no variants", Required: true, Type: "number", Example: "59,90"},
		{Name: ColWholesalePrice, Description: "Wholesale price", Type: "number", Example: "45,00"},
		{Name: ColPriceUSD, Description: "Price in USD", Type: "number", Example: "11.50"},
		{Name: ColWholesalePriceUSD, Description: "Wholesale price in USD", Type: "number", Example: "9.00"},
		{Name: ColQuantity, Description: "Stock. Required when the product has no variants; summed for repeated combinations", Required: true, Type: "integer", Example: "10"},
		{Name: ColWeight, Description: "Weight (kg)", Type: "number", Example: "0,3"},
		{Name: ColLength, Description: "Length (cm)", Type: "number", Example: "30"},
		{Name: ColWidth, Description: "Width (cm)", Type: "number", Example: "20"},
		{Name: ColHeight, Description: "Height (cm)", Type: "number", Example: "2"},
		{Name: ColCoverImage, Description: "Cover image URL", Type: "url", Example: "https://cdn.example.com/cam-001.jpg"},
	}
	for i := 1; i <= ImageSlots; i++ {
		cols = append(cols, TemplateColumn{Name: ImageColumn(i), Description: fmt.Sprintf("Additional image URL #%d", i), Type: "url"})
	}
	axisExamples := [MaxAxes][2]string{{"Cor", "Azul"}, {"Tamanho", "M"}}
	for i := 1; i <= MaxAxes; i++ {
		cols = append(cols, TemplateColumn{
			Name:        AxisNameColumn(i),
			Description: fmt.Sprintf("Name of variation axis %d. Only the product's first row declares axes", i),
			Type:        "string",
			Example:     axisExamples[i-1][0],
		})
	}
	for i := 1; i <= MaxAxes; i++ {
		cols = append(cols, TemplateColumn{
			Name:        AxisOptionColumn(i),
			Description: fmt.Sprintf("This row's option for variation axis %d", i),
			Type:        "string",
			Example:     axisExamples[i-1][1],
		})
	}
	cols = append(cols, TemplateColumn{Name: ColVariantSKU, Description: "SKU of this row's combination", Type: "string", Example: "CAM-001-AZ-M"})
	return cols
}
