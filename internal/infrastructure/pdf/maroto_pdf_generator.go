// Package pdf genera el reporte de estado de resultados (P&L) de la tienda.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + título      │  Periodo + fecha de emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESULTADOS: ventas / otros ingresos / costo / IVA / gastos │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UTILIDAD NETA + MARGEN                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CAJA: ingresos y egresos del periodo, saldo histórico      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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

	appfinance "github.com/jhoicas/boutique-api/internal/application/finance"
	pnl "github.com/jhoicas/boutique-api/internal/domain/finance"
)

var _ appfinance.StatsReportRenderer = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa finance.StatsReportRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	storeName string
	now       func() time.Time
}

// NewMarotoPDFGenerator construye el generador con el nombre que va en el encabezado.
func NewMarotoPDFGenerator(storeName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{storeName: storeName, now: time.Now}
}

// RenderStats genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderStats(_ context.Context, s *pnl.Stats) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de resultados", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("RESULTADOS DEL PERIODO"))
	for _, r := range resultRows(s) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(netProfitRow(s))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionRow("CAJA"))
	for _, r := range cashRows(s) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"Ventas reconocidas: pedidos pagados o posteriores creados en el periodo (%d pedidos). "+
				"IVA incluido en el precio a una tasa de %s%%.",
			s.OrderCount, s.VATRate.Mul(decimal.NewFromInt(100)).StringFixed(2),
		), props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(s *pnl.Stats) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.storeName, "Boutique"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado de resultados", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERIODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(s.From.Format("02/01/2006")+" - "+s.To.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// amountRow: etiqueta a la izquierda, monto a la derecha.
func amountRow(label string, amount decimal.Decimal, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	value := props.Text{Size: 9, Align: align.Right, Right: 1, Style: style, Top: 1}
	if amount.IsNegative() {
		value.Color = colorLoss
	}
	return row.New(6).Add(
		col.New(2),
		col.New(6).Add(text.New(label, props.Text{Size: 9, Style: style, Top: 1})),
		col.New(4).Add(text.New(formatMoney(amount), value)),
	)
}

func resultRows(s *pnl.Stats) []core.Row {
	return []core.Row{
		amountRow("Ventas (pedidos)", s.OrderRevenue, false),
		amountRow("Otros ingresos", s.OtherIncome, false),
		amountRow("Ingreso bruto", s.GrossRevenue, true),
		amountRow("(-) Costo de ventas", s.COGS, false),
		amountRow("(-) IVA incluido", s.VAT, false),
		amountRow("(-) Gastos operativos", s.OperationalExpenses, false),
	}
}

func netProfitRow(s *pnl.Stats) core.Row {
	color := colorPrimary
	if s.NetProfit.IsNegative() {
		color = colorLoss
	}
	grand := props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: color, Right: 1, Top: 2}
	return row.New(12).Add(
		col.New(2),
		col.New(6).Add(
			text.New("UTILIDAD NETA", props.Text{Style: fontstyle.Bold, Size: 11, Color: color, Top: 2}),
			text.New("Margen: "+s.Margin.StringFixed(2)+"%", props.Text{Size: 8, Color: colorGray, Top: 8}),
		),
		col.New(4).Add(text.New(formatMoney(s.NetProfit), grand)),
	)
}

func cashRows(s *pnl.Stats) []core.Row {
	return []core.Row{
		amountRow("Ingresos del periodo (libro de caja)", s.PeriodIncome, false),
		amountRow("Egresos del periodo (libro de caja)", s.PeriodExpense, false),
		amountRow("Saldo de caja histórico", s.CashBalance, true),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000 → "$25.000,00", -1234.5 → "-$1.234,50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "," + frac
}
