package services

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/cavedevelopers/finance-docs/internal/constants"
	"github.com/cavedevelopers/finance-docs/internal/types"
)

var htmlEmailFuncs = template.FuncMap{
	"inr": formatINR,
	"qty": formatQuantity,
	"inc": func(i int) int { return i + 1 },
	// safeURL lets the QR data URL through the URL filter; the payload is
	// produced locally by the QR encoder, never from user input.
	"safeURL": func(s string) template.URL { return template.URL(s) },
}

var htmlEmailTemplate = template.Must(template.New("html_email").Funcs(htmlEmailFuncs).Parse(`<div style="font-family:Arial,Helvetica,sans-serif;max-width:640px;margin:0 auto;color:#1b1f3b;background:#ffffff;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="border-collapse:collapse;">
    <tr>
      <td style="padding:24px 0;border-bottom:2px solid #1b1f3b;">
        {{if .Doc.Company.LogoURL}}<img src="{{.Doc.Company.LogoURL}}" alt="{{.Doc.Company.Name}}" style="max-height:48px;margin-bottom:8px;" />{{end}}
        <h1 style="margin:0;font-size:22px;">{{.Title}} {{.Doc.DocNo}}</h1>
        <p style="margin:4px 0 0;font-size:13px;color:#55597a;">Date: {{.Doc.DocDate}}{{if .DueValue}} &middot; {{.DueLabel}}: {{.DueValue}}{{end}}</p>
      </td>
    </tr>
    <tr>
      <td style="padding:16px 0;">
        <table role="presentation" width="100%" cellpadding="0" cellspacing="0"><tr>
          <td style="vertical-align:top;font-size:13px;line-height:1.5;">
            <strong>{{.Doc.Company.Name}}</strong>{{if .Doc.Company.Tagline}}<br/><em>{{.Doc.Company.Tagline}}</em>{{end}}{{if .Doc.Company.Address}}<br/>{{.Doc.Company.Address}}{{end}}{{if .Doc.Company.GST}}<br/>GST: {{.Doc.Company.GST}}{{end}}{{if .Doc.Company.Email}}<br/>{{.Doc.Company.Email}}{{end}}{{if .Doc.Company.Phone}}<br/>{{.Doc.Company.Phone}}{{end}}
          </td>
          <td style="vertical-align:top;font-size:13px;line-height:1.5;text-align:right;">
            <span style="color:#55597a;">Bill To</span><br/>
            <strong>{{.Doc.BillTo.Name}}</strong>{{if .Doc.BillTo.Address}}<br/>{{.Doc.BillTo.Address}}{{end}}{{if .Doc.BillTo.GST}}<br/>GST: {{.Doc.BillTo.GST}}{{end}}{{if .Doc.BillTo.Email}}<br/>{{.Doc.BillTo.Email}}{{end}}{{if .Doc.BillTo.Phone}}<br/>{{.Doc.BillTo.Phone}}{{end}}
          </td>
        </tr></table>
      </td>
    </tr>
    <tr>
      <td>
        <table width="100%" cellpadding="8" cellspacing="0" style="border-collapse:collapse;font-size:13px;">
          <tr style="background:#1b1f3b;color:#ffffff;text-align:left;">
            <th style="padding:8px;">#</th>
            <th style="padding:8px;">Description</th>
            <th style="padding:8px;">Qty</th>
            <th style="padding:8px;text-align:right;">Unit Price</th>
            <th style="padding:8px;text-align:right;">Tax</th>
            <th style="padding:8px;text-align:right;">Amount</th>
          </tr>
          {{range $i, $line := .Totals.Lines}}<tr style="border-bottom:1px solid #e4e6f2;">
            <td style="padding:8px;">{{inc $i}}</td>
            <td style="padding:8px;">{{$line.Description}}{{if $line.HSNSAC}}<br/><span style="color:#8a8db0;font-size:11px;">HSN/SAC: {{$line.HSNSAC}}</span>{{end}}</td>
            <td style="padding:8px;">{{qty $line.Quantity}} {{$line.Unit}}</td>
            <td style="padding:8px;text-align:right;">{{inr $line.UnitPrice}}</td>
            <td style="padding:8px;text-align:right;">{{inr $line.TaxAmount}}</td>
            <td style="padding:8px;text-align:right;">{{inr $line.Amount}}</td>
          </tr>{{end}}
        </table>
      </td>
    </tr>
    <tr>
      <td style="padding:16px 0;">
        <table role="presentation" cellpadding="4" cellspacing="0" style="margin-left:auto;font-size:13px;min-width:260px;">
          <tr><td style="color:#55597a;">Subtotal</td><td style="text-align:right;">{{inr .Totals.Subtotal}}</td></tr>
          {{range .TaxRows}}<tr><td style="color:#55597a;">{{.Name}}</td><td style="text-align:right;">{{inr .Amount}}</td></tr>{{end}}
          {{if gt .Totals.Shipping 0.0}}<tr><td style="color:#55597a;">Shipping</td><td style="text-align:right;">{{inr .Totals.Shipping}}</td></tr>{{end}}
          {{range .Doc.AdditionalCharges}}<tr><td style="color:#55597a;">{{.Label}}</td><td style="text-align:right;">{{inr .Amount}}</td></tr>{{end}}
          {{if .HasRoundOff}}<tr><td style="color:#55597a;">Round Off</td><td style="text-align:right;">{{inr .Totals.RoundingAdjustment}}</td></tr>{{end}}
          <tr style="font-weight:bold;border-top:2px solid #1b1f3b;"><td style="padding-top:8px;">Grand Total</td><td style="padding-top:8px;text-align:right;">{{inr .Totals.RoundedGrandTotal}}</td></tr>
        </table>
        {{if .ShowWords}}<p style="font-size:12px;color:#55597a;text-align:right;margin:8px 0 0;"><em>{{.Derived.AmountInWords}}</em></p>{{end}}
      </td>
    </tr>
    {{if .Doc.Notes}}<tr><td style="padding:8px 0;font-size:13px;"><strong>Notes</strong><br/>{{.Doc.Notes}}</td></tr>{{end}}
    {{if .Doc.Terms}}<tr><td style="padding:8px 0;font-size:13px;"><strong>Terms</strong><ol style="margin:4px 0 0;padding-left:20px;">{{range .Doc.Terms}}<li>{{.}}</li>{{end}}</ol></td></tr>{{end}}
    {{if .HasBank}}<tr>
      <td style="padding:12px;background:#f4f6ff;border-radius:8px;font-size:13px;line-height:1.6;">
        <strong>Bank Details</strong><br/>
        {{with .Doc.BankDetails}}{{if .AccountName}}Account Name: {{.AccountName}}<br/>{{end}}{{if .Bank}}Bank: {{.Bank}}<br/>{{end}}{{if .AccountNo}}Account Number: {{.AccountNo}}<br/>{{end}}{{if .IFSC}}IFSC: {{.IFSC}}<br/>{{end}}{{if .UPIID}}UPI: {{.UPIID}}{{end}}{{end}}
      </td>
    </tr>{{end}}
    {{if .ShowQR}}<tr>
      <td style="padding:16px 0;text-align:center;">
        {{if .Derived.QRDataURL}}<img src="{{safeURL .Derived.QRDataURL}}" alt="UPI payment QR" width="144" height="144" style="display:block;margin:0 auto;" />{{end}}
        <p style="font-size:11px;color:#8a8db0;margin:8px 0 0;">{{.Derived.QRString}}</p>
      </td>
    </tr>{{end}}
  </table>
</div>
`))

// RenderHTMLEmail renders a self-contained inline-styled HTML fragment
// suitable for injection into an email body or a preview pane.
func RenderHTMLEmail(doc *types.DocumentInput, totals *types.Totals, derived *DerivedArtifacts) (string, error) {
	ctx := buildRenderContext(doc, totals, derived)

	var b strings.Builder
	if err := htmlEmailTemplate.Execute(&b, ctx); err != nil {
		return "", &RenderError{Format: constants.FormatHTMLEmail, Err: fmt.Errorf("template execution: %w", err)}
	}
	return b.String(), nil
}
