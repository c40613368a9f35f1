package services

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/cavedevelopers/finance-docs/internal/constants"
	"github.com/cavedevelopers/finance-docs/internal/types"
)

var pdfReadyTemplate = template.Must(template.New("pdf_ready").Funcs(htmlEmailFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<title>{{.Title}} {{.Doc.DocNo}}</title>
<style>
  @page { size: A4; margin: 18mm 16mm; }
  * { box-sizing: border-box; }
  body { font-family: Georgia, "Times New Roman", serif; color: #1b1f3b; margin: 0; font-size: 12px; }
  .page { width: 178mm; margin: 0 auto; }
  header { display: flex; justify-content: space-between; align-items: flex-start; border-bottom: 3px solid #1b1f3b; padding-bottom: 12px; }
  header h1 { font-size: 26px; margin: 0; letter-spacing: 1px; text-transform: uppercase; }
  .meta { text-align: right; font-size: 11px; color: #55597a; }
  .parties { display: flex; justify-content: space-between; margin: 16px 0; }
  .party { max-width: 48%; line-height: 1.5; }
  .party .label { font-size: 10px; text-transform: uppercase; letter-spacing: 2px; color: #8a8db0; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 8px; }
  table.items th { background: #1b1f3b; color: #fff; padding: 6px 8px; text-align: left; font-size: 11px; }
  table.items td { padding: 6px 8px; border-bottom: 1px solid #e4e6f2; vertical-align: top; }
  td.num, th.num { text-align: right; }
  .totals { width: 70mm; margin-left: auto; margin-top: 12px; border-collapse: collapse; }
  .totals td { padding: 4px 8px; }
  .totals td:last-child { text-align: right; }
  .totals tr.grand td { border-top: 2px solid #1b1f3b; font-weight: bold; font-size: 14px; padding-top: 8px; }
  .words { text-align: right; font-style: italic; color: #55597a; margin-top: 6px; }
  section { margin-top: 14px; page-break-inside: avoid; }
  section h2 { font-size: 12px; text-transform: uppercase; letter-spacing: 2px; color: #8a8db0; margin: 0 0 6px; }
  .bank { background: #f4f6ff; padding: 10px 12px; border-radius: 4px; line-height: 1.6; }
  .qr { text-align: center; margin-top: 16px; }
  .qr img { width: 36mm; height: 36mm; }
  .qr .uri { font-size: 9px; color: #8a8db0; word-break: break-all; }
  footer { margin-top: 24px; border-top: 1px solid #e4e6f2; padding-top: 8px; font-size: 10px; color: #8a8db0; text-align: center; }
  @media print { .page { width: auto; } }
</style>
</head>
<body>
<div class="page">
  <header>
    <div>
      {{if .Doc.Company.LogoURL}}<img src="{{.Doc.Company.LogoURL}}" alt="{{.Doc.Company.Name}}" style="max-height:40px;" />{{end}}
      <h1>{{.Title}}</h1>
      <div>{{.Doc.DocNo}}</div>
    </div>
    <div class="meta">
      <div>Date: {{.Doc.DocDate}}</div>
      {{if .DueValue}}<div>{{.DueLabel}}: {{.DueValue}}</div>{{end}}
    </div>
  </header>

  <div class="parties">
    <div class="party">
      <div class="label">From</div>
      <strong>{{.Doc.Company.Name}}</strong>{{if .Doc.Company.Tagline}}<br/><em>{{.Doc.Company.Tagline}}</em>{{end}}{{if .Doc.Company.Address}}<br/>{{.Doc.Company.Address}}{{end}}{{if .Doc.Company.GST}}<br/>GST: {{.Doc.Company.GST}}{{end}}{{if .Doc.Company.Email}}<br/>{{.Doc.Company.Email}}{{end}}{{if .Doc.Company.Phone}}<br/>{{.Doc.Company.Phone}}{{end}}{{if .Doc.Company.Website}}<br/>{{.Doc.Company.Website}}{{end}}
    </div>
    <div class="party" style="text-align:right;">
      <div class="label">Bill To</div>
      <strong>{{.Doc.BillTo.Name}}</strong>{{if .Doc.BillTo.Address}}<br/>{{.Doc.BillTo.Address}}{{end}}{{if .Doc.BillTo.GST}}<br/>GST: {{.Doc.BillTo.GST}}{{end}}{{if .Doc.BillTo.Email}}<br/>{{.Doc.BillTo.Email}}{{end}}{{if .Doc.BillTo.Phone}}<br/>{{.Doc.BillTo.Phone}}{{end}}
    </div>
  </div>

  <table class="items">
    <thead>
      <tr>
        <th>#</th><th>Description</th><th>HSN/SAC</th><th>Qty</th><th class="num">Unit Price</th><th class="num">Discount</th><th class="num">Tax</th><th class="num">Amount</th>
      </tr>
    </thead>
    <tbody>
      {{range $i, $line := .Totals.Lines}}<tr>
        <td>{{inc $i}}</td>
        <td>{{$line.Description}}</td>
        <td>{{$line.HSNSAC}}</td>
        <td>{{qty $line.Quantity}} {{$line.Unit}}</td>
        <td class="num">{{inr $line.UnitPrice}}</td>
        <td class="num">{{inr $line.Discount}}</td>
        <td class="num">{{inr $line.TaxAmount}}</td>
        <td class="num">{{inr $line.Amount}}</td>
      </tr>{{end}}
    </tbody>
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td>{{inr .Totals.Subtotal}}</td></tr>
    {{range .TaxRows}}<tr><td>{{.Name}}</td><td>{{inr .Amount}}</td></tr>{{end}}
    {{if gt .Totals.Shipping 0.0}}<tr><td>Shipping</td><td>{{inr .Totals.Shipping}}</td></tr>{{end}}
    {{range .Doc.AdditionalCharges}}<tr><td>{{.Label}}</td><td>{{inr .Amount}}</td></tr>{{end}}
    {{if .HasRoundOff}}<tr><td>Round Off</td><td>{{inr .Totals.RoundingAdjustment}}</td></tr>{{end}}
    <tr class="grand"><td>Grand Total</td><td>{{inr .Totals.RoundedGrandTotal}}</td></tr>
  </table>
  {{if .ShowWords}}<div class="words">{{.Derived.AmountInWords}}</div>{{end}}

  {{if .Doc.Notes}}<section><h2>Notes</h2><div>{{.Doc.Notes}}</div></section>{{end}}
  {{if .Doc.Terms}}<section><h2>Terms</h2><ol>{{range .Doc.Terms}}<li>{{.}}</li>{{end}}</ol></section>{{end}}
  {{if .HasBank}}<section><h2>Bank Details</h2>
    <div class="bank">{{with .Doc.BankDetails}}{{if .AccountName}}Account Name: {{.AccountName}}<br/>{{end}}{{if .Bank}}Bank: {{.Bank}}<br/>{{end}}{{if .AccountNo}}Account Number: {{.AccountNo}}<br/>{{end}}{{if .IFSC}}IFSC: {{.IFSC}}<br/>{{end}}{{if .UPIID}}UPI: {{.UPIID}}{{end}}{{end}}</div>
  </section>{{end}}
  {{if .ShowQR}}<div class="qr">
    {{if .Derived.QRDataURL}}<img src="{{safeURL .Derived.QRDataURL}}" alt="UPI payment QR" />{{end}}
    <div class="uri">{{.Derived.QRString}}</div>
  </div>{{end}}

  <footer>{{.Doc.Company.Name}}{{if .Doc.Company.Website}} &middot; {{.Doc.Company.Website}}{{end}}</footer>
</div>
</body>
</html>
`))

// RenderPDFReady renders a standalone print-oriented HTML document meant
// for an external HTML-to-PDF converter. No rasterization happens here.
func RenderPDFReady(doc *types.DocumentInput, totals *types.Totals, derived *DerivedArtifacts) (string, error) {
	ctx := buildRenderContext(doc, totals, derived)

	var b strings.Builder
	if err := pdfReadyTemplate.Execute(&b, ctx); err != nil {
		return "", &RenderError{Format: constants.FormatPDFReady, Err: fmt.Errorf("template execution: %w", err)}
	}
	return b.String(), nil
}
