// Package pdf renders invoices as PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Line is one invoice row.
type Line struct {
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Invoice is the fully resolved document handed to the renderer and to the
// bill detail view.
type Invoice struct {
	Number        uint
	Client        string
	PaymentMethod string
	Date          time.Time
	Lines         []Line
	Total         decimal.Decimal
}

// FormatAmount renders a money value as "12.50 Bs".
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2) + " Bs"
}

// Render produces the invoice PDF: a centered title, the client and payment
// method header lines, and a bordered line-item table.
func Render(inv *Invoice) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 12, tr(fmt.Sprintf("Factura N° %d", inv.Number)), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Arial", "", 11)
	doc.CellFormat(0, 7, tr("Cliente: "+inv.Client), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, tr("Método de Pago: "+inv.PaymentMethod), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, tr("Fecha: "+inv.Date.Format("02/01/2006")), "", 1, "L", false, 0, "")
	doc.Ln(6)

	widths := []float64{80, 25, 40, 40}
	headers := []string{"Producto", "Cantidad", "Precio Unitario", "Total"}
	doc.SetFont("Arial", "B", 11)
	for i, head := range headers {
		doc.CellFormat(widths[i], 8, tr(head), "1", 0, "C", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", 11)
	for _, line := range inv.Lines {
		doc.CellFormat(widths[0], 8, tr(line.Product), "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		doc.CellFormat(widths[2], 8, tr(FormatAmount(line.UnitPrice)), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[3], 8, tr(FormatAmount(line.Total)), "1", 0, "R", false, 0, "")
		doc.Ln(-1)
	}

	doc.Ln(4)
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, tr("Total: "+FormatAmount(inv.Total)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %d: %w", inv.Number, err)
	}
	return buf.Bytes(), nil
}
