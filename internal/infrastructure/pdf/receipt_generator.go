// Package pdf genera el comprobante de venta en PDF.
//
// Layout A6 vertical:
//
//	┌───────────────────────────────┐
//	│  Tienda          │ Comprobante│
//	│  ───────────────────────────  │
//	│  Producto / SKU               │
//	│  Cant | P.Unit | Total        │
//	│  ───────────────────────────  │
//	│  TOTAL                        │
//	│  QR (id de la venta)          │
//	└───────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
)

var _ ports.ReceiptRenderer = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa ports.ReceiptRenderer con Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// RenderReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) RenderReceipt(shopName string, sale dto.SaleResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(shopName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(shopName, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(productRow(sale))
	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(shopName string, sale dto.SaleResponse) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(shopName, "Tienda"), props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE", props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 6,
			}),
			text.New(sale.Timestamp.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func productRow(sale dto.SaleResponse) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(sale.ProductName, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}),
			text.New("SKU: "+nonEmpty(sale.ProductSKU, "—"), props.Text{Size: 7, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Cant.", 3, align.Center),
		h("Precio Unit.", 4, align.Right),
		h("Total", 5, align.Right),
	)
}

func detailRow(sale dto.SaleResponse) core.Row {
	return row.New(6).Add(
		col.New(3).Add(text.New(fmt.Sprintf("%d", sale.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(4).Add(text.New("$"+formatMoney(sale.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(5).Add(text.New("$"+formatMoney(sale.TotalAmount), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

func totalRow(sale dto.SaleResponse) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(6).Add(text.New("$"+formatMoney(sale.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}

func footerRow(sale dto.SaleResponse) core.Row {
	return row.New(30).Add(
		col.New(5).Add(code.NewQr(sale.ID, props.Rect{Percent: 95, Center: true})),
		col.New(7).Add(
			text.New("Venta "+sale.ID, props.Text{Size: 6, Top: 4, Left: 2, Color: colorGray}),
			text.New("Gracias por su compra.", props.Text{Style: fontstyle.Bold, Size: 8, Top: 14, Left: 2}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) <= 8 {
		return strings.ToUpper(id)
	}
	return strings.ToUpper(id[:8])
}

// formatMoney dos decimales con puntos de miles y coma decimal.
// Ej: 25000.5 → "25.000,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
