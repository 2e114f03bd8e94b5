// Package pdf implementa los reportes en PDF (ventas y stock) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + CNPJ + dirección  │  Título + generado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FILTROS / PERÍODO                                          │
//	│  RESUMEN: totales o contadores de stock                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLAS: ventas | top productos | categorías | productos    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// Etiquetas del estado de stock en los reportes.
var stockStatusLabels = map[string]string{
	entity.StockStatusOutOfStock: "Sem estoque",
	entity.StockStatusLow:        "Estoque baixo",
	entity.StockStatusOK:         "OK",
}

// column describe una columna de tabla: título, ancho (grid de 12) y alineación.
type column struct {
	label string
	size  int
	align align.Type
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportRenderer usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

var _ ports.ReportRenderer = (*MarotoReportGenerator)(nil)

// RenderSalesReport genera el reporte de ventas y devuelve sus bytes.
func (g *MarotoReportGenerator) RenderSalesReport(data *ports.SalesReportData) ([]byte, error) {
	m := newDocument("Relatório de Vendas", data.Store)

	m.AddRows(headerRow(data.Store, "RELATÓRIO DE VENDAS", data.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow("Período: " + periodLabel(data.Period)))
	m.AddRows(filterRows(data.Filters)...)

	m.AddRows(summaryRow([][2]string{
		{"Faturamento", formatBRL(data.Totals.Revenue)},
		{"Vendas", strconv.Itoa(data.Totals.Transactions)},
		{"Unidades", strconv.Itoa(data.Totals.Units)},
	}))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Vendas"))
	saleCols := []column{
		{"Data", 2, align.Left},
		{"Produto", 4, align.Left},
		{"Qtd.", 1, align.Center},
		{"Preço Unit.", 2, align.Right},
		{"Total", 3, align.Right},
	}
	m.AddRows(tableHeaderRow(saleCols))
	if len(data.Sales) == 0 {
		m.AddRows(emptyRow("Nenhuma venda no período."))
	}
	for _, s := range data.Sales {
		m.AddRows(tableRow(saleCols, []string{
			s.SoldAt.In(data.GeneratedAt.Location()).Format("02/01/2006"),
			s.ProductName,
			strconv.Itoa(s.Quantity),
			formatBRL(s.UnitPrice),
			formatBRL(s.TotalValue),
		}, nil))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("Produtos mais vendidos"))
	topCols := []column{
		{"Produto", 5, align.Left},
		{"Categoria", 3, align.Left},
		{"Qtd.", 1, align.Center},
		{"Faturamento", 3, align.Right},
	}
	m.AddRows(tableHeaderRow(topCols))
	if len(data.TopProducts) == 0 {
		m.AddRows(emptyRow("Sem dados."))
	}
	for _, p := range data.TopProducts {
		m.AddRows(tableRow(topCols, []string{
			p.ProductName, p.CategoryName, strconv.Itoa(p.Quantity), formatBRL(p.Revenue),
		}, nil))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("Vendas por categoria"))
	catCols := []column{
		{"Categoria", 5, align.Left},
		{"Produtos", 2, align.Center},
		{"Qtd.", 2, align.Center},
		{"Faturamento", 3, align.Right},
	}
	m.AddRows(tableHeaderRow(catCols))
	if len(data.Categories) == 0 {
		m.AddRows(emptyRow("Sem dados."))
	}
	for _, c := range data.Categories {
		m.AddRows(tableRow(catCols, []string{
			c.CategoryName, strconv.Itoa(c.ProductCount), strconv.Itoa(c.Quantity), formatBRL(c.Revenue),
		}, nil))
	}

	return generate(m)
}

// RenderStockReport genera el reporte de stock y devuelve sus bytes.
func (g *MarotoReportGenerator) RenderStockReport(data *ports.StockReportData) ([]byte, error) {
	title := "RELATÓRIO DE ESTOQUE"
	if data.OnlyLow {
		title = "RELATÓRIO DE ESTOQUE BAIXO"
	}
	m := newDocument("Relatório de Estoque", data.Store)

	m.AddRows(headerRow(data.Store, title, data.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(filterRows(data.Filters)...)

	sum := data.Summary
	m.AddRows(summaryRow([][2]string{
		{"Produtos", strconv.Itoa(sum.Products)},
		{"Sem estoque", strconv.Itoa(sum.OutOfStock)},
		{"Estoque baixo", strconv.Itoa(sum.Low)},
		{"Unidades", strconv.Itoa(sum.Units)},
	}))
	m.AddRows(infoRow("Valor total em estoque: " + formatBRL(sum.InventoryValue)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	cols := []column{
		{"Produto", 4, align.Left},
		{"Categoria", 3, align.Left},
		{"Preço", 2, align.Right},
		{"Estoque", 1, align.Center},
		{"Situação", 2, align.Center},
	}
	m.AddRows(tableHeaderRow(cols))
	if len(data.Products) == 0 {
		m.AddRows(emptyRow("Nenhum produto encontrado."))
	}
	for _, p := range data.Products {
		var color *props.Color
		if p.StockStatus() != entity.StockStatusOK {
			color = colorAlert
		}
		m.AddRows(tableRow(cols, []string{
			p.Name,
			p.CategoryName,
			formatBRL(p.Price),
			strconv.Itoa(p.Stock),
			stockStatusLabels[p.StockStatus()],
		}, color))
	}

	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func newDocument(title string, store *entity.StoreSettings) core.Maroto {
	author := entity.DefaultCompanyName
	if store != nil && store.CompanyName != "" {
		author = store.CompanyName
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa + CNPJ + dirección (izq) y título + fecha de generación (der).
func headerRow(store *entity.StoreSettings, title, generatedAt string) core.Row {
	if store == nil {
		store = &entity.StoreSettings{CompanyName: entity.DefaultCompanyName}
	}
	taxID := ""
	if store.TaxID != "" {
		taxID = "CNPJ: " + store.TaxID
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(store.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(taxID, props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New(addressLine(store), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(contactLine(store), props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Gerado em: "+generatedAt, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func infoRow(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 9, Top: 1}),
	))
}

func filterRows(filters []string) []core.Row {
	rows := make([]core.Row, 0, len(filters))
	for _, f := range filters {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(f, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	return rows
}

// summaryRow: bloque de indicadores (etiqueta arriba, valor abajo).
func summaryRow(items [][2]string) core.Row {
	size := 12 / len(items)
	cols := make([]core.Col, 0, len(items))
	for _, it := range items {
		cols = append(cols, col.New(size).Add(
			text.New(it[0], props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(it[1], props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 7,
			}),
		))
	}
	return row.New(16).Add(cols...)
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(strings.ToUpper(s), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func tableHeaderRow(cols []column) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cs...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(cols []column, values []string, color *props.Color) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		cs = append(cs, col.New(c.size).Add(text.New(values[i], props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1, Color: color,
		})))
	}
	return row.New(6).Add(cs...)
}

func emptyRow(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatBRL formatea un valor monetario en reales: 1234.5 → "R$ 1.234,50".
func formatBRL(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return brl.Sprintf("R$ %v", number.Decimal(f, number.Scale(2)))
}

// periodLabel describe el rango de fechas en formato DD/MM/AAAA.
func periodLabel(r entity.DateRange) string {
	from, to := "início", "hoje"
	if !r.Start.IsZero() {
		from = r.Start.Format("02/01/2006")
	}
	if !r.End.IsZero() {
		to = r.End.AddDate(0, 0, -1).Format("02/01/2006")
	}
	return from + " a " + to
}

func addressLine(s *entity.StoreSettings) string {
	parts := make([]string, 0, 5)
	street := strings.TrimSpace(strings.Join(nonEmptyParts(s.Street, s.Number), ", "))
	if street != "" {
		parts = append(parts, street)
	}
	parts = append(parts, nonEmptyParts(s.District, cityState(s), s.PostalCode)...)
	return strings.Join(parts, " - ")
}

func contactLine(s *entity.StoreSettings) string {
	return strings.Join(nonEmptyParts(s.Phone, s.Email), "   |   ")
}

func cityState(s *entity.StoreSettings) string {
	if s.State == "" {
		return s.City
	}
	if s.City == "" {
		return s.State
	}
	return s.City + "/" + s.State
}

func nonEmptyParts(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
