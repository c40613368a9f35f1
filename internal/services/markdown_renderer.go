package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cavedevelopers/finance-docs/internal/types"
)

// RenderMarkdown renders the document as a plain Markdown file: header
// block, line-item table, totals block, notes, terms and bank details.
func RenderMarkdown(doc *types.DocumentInput, totals *types.Totals, derived *DerivedArtifacts) (string, error) {
	ctx := buildRenderContext(doc, totals, derived)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n\n", ctx.Title, doc.DocNo)

	fmt.Fprintf(&b, "- **Date:** %s\n", doc.DocDate)
	if ctx.DueValue != "" {
		fmt.Fprintf(&b, "- **%s:** %s\n", ctx.DueLabel, ctx.DueValue)
	}
	b.WriteString("\n")

	b.WriteString("## From\n\n")
	writeMarkdownParty(&b, doc.Company)
	b.WriteString("\n## Bill To\n\n")
	writeMarkdownParty(&b, doc.BillTo)

	b.WriteString("\n## Line Items\n\n")
	b.WriteString("| # | Description | HSN/SAC | Qty | Unit | Unit Price | Discount | Tax | Amount |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for i, line := range totals.Lines {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			i+1,
			markdownCell(line.Description),
			markdownCell(line.HSNSAC),
			formatQuantity(line.Quantity),
			markdownCell(line.Unit),
			formatINR(line.UnitPrice),
			formatINR(line.Discount),
			formatINR(line.TaxAmount),
			formatINR(line.Amount),
		)
	}

	b.WriteString("\n## Totals\n\n")
	b.WriteString("| | |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Subtotal | %s |\n", formatINR(totals.Subtotal))
	for _, row := range ctx.TaxRows {
		fmt.Fprintf(&b, "| %s | %s |\n", markdownCell(row.Name), formatINR(row.Amount))
	}
	if totals.Shipping > 0 {
		fmt.Fprintf(&b, "| Shipping | %s |\n", formatINR(totals.Shipping))
	}
	for _, charge := range doc.AdditionalCharges {
		fmt.Fprintf(&b, "| %s | %s |\n", markdownCell(charge.Label), formatINR(charge.Amount))
	}
	if ctx.HasRoundOff {
		fmt.Fprintf(&b, "| Round Off | %s |\n", formatINR(totals.RoundingAdjustment))
	}
	fmt.Fprintf(&b, "| **Grand Total** | **%s** |\n", formatINR(totals.RoundedGrandTotal))

	if ctx.ShowWords {
		fmt.Fprintf(&b, "\n**Amount in Words:** %s\n", derived.AmountInWords)
	}

	if doc.Notes != "" {
		fmt.Fprintf(&b, "\n## Notes\n\n%s\n", doc.Notes)
	}
	if len(doc.Terms) > 0 {
		b.WriteString("\n## Terms\n\n")
		for i, term := range doc.Terms {
			fmt.Fprintf(&b, "%d. %s\n", i+1, term)
		}
	}

	if ctx.HasBank {
		b.WriteString("\n## Bank Details\n\n")
		bank := doc.BankDetails
		if bank.AccountName != "" {
			fmt.Fprintf(&b, "- **Account Name:** %s\n", bank.AccountName)
		}
		if bank.Bank != "" {
			fmt.Fprintf(&b, "- **Bank:** %s\n", bank.Bank)
		}
		if bank.AccountNo != "" {
			fmt.Fprintf(&b, "- **Account Number:** %s\n", bank.AccountNo)
		}
		if bank.IFSC != "" {
			fmt.Fprintf(&b, "- **IFSC:** %s\n", bank.IFSC)
		}
		if bank.UPIID != "" {
			fmt.Fprintf(&b, "- **UPI:** %s\n", bank.UPIID)
		}
	}

	if ctx.ShowQR {
		fmt.Fprintf(&b, "\n**Pay via UPI:** `%s`\n", derived.QRString)
	}

	return b.String(), nil
}

func writeMarkdownParty(b *strings.Builder, party types.ContactProfile) {
	fmt.Fprintf(b, "**%s**", party.Name)
	if party.Tagline != "" {
		fmt.Fprintf(b, " — %s", party.Tagline)
	}
	b.WriteString("\n")
	if party.Address != "" {
		fmt.Fprintf(b, "%s\n", party.Address)
	}
	if party.GST != "" {
		fmt.Fprintf(b, "GST: %s\n", party.GST)
	}
	var contact []string
	if party.Email != "" {
		contact = append(contact, party.Email)
	}
	if party.Phone != "" {
		contact = append(contact, party.Phone)
	}
	if party.Website != "" {
		contact = append(contact, party.Website)
	}
	if len(contact) > 0 {
		fmt.Fprintf(b, "%s\n", strings.Join(contact, " | "))
	}
}

// markdownCell strips characters that would break table structure.
func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
