// Package receipt renders transaction receipts as JSON, HTML or PDF. Every
// format presents the same data set; only the encoding differs.
package receipt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	apperr "fluidit/internal/errors"
	"fluidit/internal/services/transaction"

	"github.com/jung-kurt/gofpdf"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// Renderer turns receipt data into one of the supported formats.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the HTML template once up front.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("receipt").Funcs(template.FuncMap{
			"money": formatMoney,
			"title": titleCase,
		}).Parse(receiptHTML)),
	}
}

// Render encodes the receipt in the requested format and returns the bytes
// with their content type.
func (r *Renderer) Render(receipt *transaction.Receipt, format string) ([]byte, string, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.Marshal(receipt)
		if err != nil {
			return nil, "", fmt.Errorf("failed to render receipt: %w", err)
		}
		return data, "application/json", nil
	case FormatHTML:
		data, err := r.html(receipt)
		return data, "text/html; charset=utf-8", err
	case FormatPDF:
		data, err := r.pdf(receipt)
		return data, "application/pdf", err
	default:
		return nil, "", apperr.ErrValidation.WithMessage(
			fmt.Sprintf("unsupported receipt format: %s", format))
	}
}

func (r *Renderer) html(receipt *transaction.Receipt) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, receipt); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) pdf(receipt *transaction.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Transaction Receipt")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Reference", receipt.Reference},
		{"Type", titleCase(receipt.Type)},
		{"Status", titleCase(receipt.Status)},
		{"Date", receipt.Date.UTC().Format("2 Jan 2006 15:04 MST")},
		{"From", participantLine(receipt.SenderName, receipt.SenderWalletID)},
	}
	if receipt.RecipientWalletID != "" {
		rows = append(rows, [2]string{"To", participantLine(receipt.RecipientName, receipt.RecipientWalletID)})
	}
	rows = append(rows,
		[2]string{"Amount", formatMoney(receipt.Amount)},
		[2]string{"Fee", formatMoney(receipt.Fee)},
		[2]string{"Total", formatMoney(receipt.Total)},
	)
	if receipt.Note != "" {
		rows = append(rows, [2]string{"Note", receipt.Note})
	}

	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 8, row[1], "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func participantLine(name, walletID string) string {
	if name == "" {
		return walletID
	}
	return fmt.Sprintf("%s (%s)", name, walletID)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("NGN %.2f", v)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const receiptHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Receipt {{.Reference}}</title>
  <style>
    body { font-family: Arial, sans-serif; max-width: 480px; margin: 2em auto; color: #222; }
    h1 { font-size: 1.3em; border-bottom: 2px solid #222; padding-bottom: 0.4em; }
    table { width: 100%; border-collapse: collapse; }
    td { padding: 0.4em 0; vertical-align: top; }
    td:first-child { font-weight: bold; width: 8em; }
    .total td { border-top: 1px solid #ccc; font-size: 1.1em; }
  </style>
</head>
<body>
  <h1>Transaction Receipt</h1>
  <table>
    <tr><td>Reference</td><td>{{.Reference}}</td></tr>
    <tr><td>Type</td><td>{{title .Type}}</td></tr>
    <tr><td>Status</td><td>{{title .Status}}</td></tr>
    <tr><td>Date</td><td>{{.Date.UTC.Format "2 Jan 2006 15:04 MST"}}</td></tr>
    <tr><td>From</td><td>{{.SenderName}} ({{.SenderWalletID}})</td></tr>
    {{if .RecipientWalletID}}<tr><td>To</td><td>{{.RecipientName}} ({{.RecipientWalletID}})</td></tr>{{end}}
    <tr><td>Amount</td><td>{{money .Amount}}</td></tr>
    <tr><td>Fee</td><td>{{money .Fee}}</td></tr>
    <tr class="total"><td>Total</td><td>{{money .Total}}</td></tr>
    {{if .Note}}<tr><td>Note</td><td>{{.Note}}</td></tr>{{end}}
  </table>
</body>
</html>
`
