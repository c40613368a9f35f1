package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/cavedevelopers/finance-docs/internal/constants"
	"github.com/cavedevelopers/finance-docs/internal/types"
)

// DerivedArtifacts carries the optional artifacts computed alongside the
// totals model. Empty fields mean the artifact was not requested.
type DerivedArtifacts struct {
	AmountInWords string
	QRString      string
	QRDataURL     string
}

// RendererFunc renders one output format. Renderers are pure: the same
// (doc, totals, derived) triple always yields byte-identical output.
type RendererFunc func(doc *types.DocumentInput, totals *types.Totals, derived *DerivedArtifacts) (string, error)

// Renderers maps each supported format to its renderer.
var Renderers = map[string]RendererFunc{
	constants.FormatMarkdown:  RenderMarkdown,
	constants.FormatHTMLEmail: RenderHTMLEmail,
	constants.FormatPDFReady:  RenderPDFReady,
	constants.FormatJSON:      RenderJSON,
}

// formatINR formats an amount with the rupee sign and Indian digit
// grouping (1,23,45,678.90).
func formatINR(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	intPart := s[:len(s)-3]
	frac := s[len(s)-3:]

	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(groups, ",") + "," + tail
	}

	return sign + "₹" + intPart + frac
}

// documentTitle maps the document type to its display heading.
func documentTitle(documentType string) string {
	switch documentType {
	case constants.DocumentTypeQuotation:
		return "Quotation"
	case constants.DocumentTypeBill:
		return "Bill"
	default:
		return "Invoice"
	}
}

type taxRow struct {
	Name   string
	Amount float64
}

// taxRows returns the tax breakup in first-appearance order.
func taxRows(totals *types.Totals) []taxRow {
	rows := make([]taxRow, 0, len(totals.TaxOrder))
	for _, name := range totals.TaxOrder {
		rows = append(rows, taxRow{Name: name, Amount: totals.TaxBreakup[name]})
	}
	return rows
}

// renderContext is the immutable view shared by the template-driven
// renderers. It carries no accumulated state between renders.
type renderContext struct {
	Doc         *types.DocumentInput
	Totals      *types.Totals
	Derived     *DerivedArtifacts
	Title       string
	DueLabel    string
	DueValue    string
	TaxRows     []taxRow
	ShowWords   bool
	ShowQR      bool
	HasBank     bool
	HasRoundOff bool
}

func buildRenderContext(doc *types.DocumentInput, totals *types.Totals, derived *DerivedArtifacts) *renderContext {
	ctx := &renderContext{
		Doc:         doc,
		Totals:      totals,
		Derived:     derived,
		Title:       documentTitle(doc.DocumentType),
		TaxRows:     taxRows(totals),
		ShowWords:   doc.Outputs.ShowAmountInWords && derived.AmountInWords != "",
		ShowQR:      doc.Outputs.ShowQR && derived.QRString != "",
		HasBank:     doc.BankDetails != nil && (doc.BankDetails.AccountName != "" || doc.BankDetails.AccountNo != "" || doc.BankDetails.Bank != "" || doc.BankDetails.IFSC != "" || doc.BankDetails.UPIID != ""),
		HasRoundOff: totals.RoundingAdjustment != 0,
	}

	if doc.DocumentType == constants.DocumentTypeQuotation {
		ctx.DueLabel = "Valid Until"
		ctx.DueValue = doc.ValidUntil
	} else {
		ctx.DueLabel = "Due Date"
		ctx.DueValue = doc.DueDate
	}

	return ctx
}
