// Package pdf renders posted sales invoices.
//
// Page layout (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: invoice id + status  │  posted date                 │
//	│  CUSTOMER: name + id                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Item | Unit price | Amount                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Keg deposits / TOTAL                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: keg codes shipped + QR                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/brewery-api/internal/domain/entity"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 70, Blue: 15}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implements billing.InvoicePDFGenerator with Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator builds the generator; company is printed as the author.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateInvoicePDF renders the invoice and returns the document bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	customer *entity.Customer,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.ID, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(invoice.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(invoice) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func headerRow(company string, invoice *entity.Invoice) core.Row {
	posted := "-"
	if invoice.PostedDate != nil {
		posted = invoice.PostedDate.Format("2006-01-02")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("SALES INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.ID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Posted: "+posted, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Customer ID: "+customer.ID, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 6, align.Left),
		h("Unit price", 2, align.Right),
		h("Amount", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(items []entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		price, amount := "-", "-"
		if it.Price != nil {
			price = it.Price.StringFixed(2)
			amount = it.Price.Mul(it.Quantity).StringFixed(2)
		}
		desc := it.Identifier
		if it.Description != "" {
			desc += " - " + it.Description
		}
		if it.HasKegDeposit {
			desc += " (keg deposit)"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(desc, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(price, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(amount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Keg deposits:", 7),
			label("TOTAL:", 13),
		),
		col.New(3).Add(
			value(invoice.Subtotal.StringFixed(2), 1),
			value(invoice.KegDepositTotal.StringFixed(2), 7),
			value(invoice.Total.StringFixed(2), 13),
		),
	)
}

// footerRows lists the kegs handed to the customer and a QR code carrying the
// invoice id and keg codes for scanning at pickup.
func footerRows(invoice *entity.Invoice) []core.Row {
	var kegs []string
	for _, it := range invoice.Items {
		kegs = append(kegs, it.KegCodes...)
	}
	kegText := "No kegs on this invoice."
	if len(kegs) > 0 {
		kegText = "Kegs shipped: " + strings.Join(kegs, ", ")
	}
	payload := invoice.ID
	if len(kegs) > 0 {
		payload += "|" + strings.Join(kegs, ",")
	}
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(payload, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(
				text.New(kegText, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
				text.New("Keg deposits are refunded when the kegs are returned.", props.Text{
					Size: 7, Top: 20, Left: 3, Color: colorGray,
				}),
			),
		),
	}
}
