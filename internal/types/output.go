package types

// LineTotal is the computed view of one line item.
type LineTotal struct {
	Description string  `json:"description"`
	HSNSAC      string  `json:"hsnSac,omitempty"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Gross       float64 `json:"gross"`
	Discount    float64 `json:"discount"`
	Amount      float64 `json:"amount"`
	TaxAmount   float64 `json:"taxAmount"`
}

// Totals is the verified numeric model computed from a document.
// GrandTotal is the pre-rounding total; RoundedGrandTotal is what the
// customer pays.
type Totals struct {
	Lines              []LineTotal        `json:"lines"`
	Subtotal           float64            `json:"subtotal"`
	Taxes              float64            `json:"taxes"`
	TaxBreakup         map[string]float64 `json:"taxBreakup"`
	Shipping           float64            `json:"shipping"`
	ChargesTotal       float64            `json:"chargesTotal"`
	GrandTotal         float64            `json:"grandTotal"`
	RoundingAdjustment float64            `json:"roundingAdjustment"`
	RoundedGrandTotal  float64            `json:"roundedGrandTotal"`

	// TaxOrder preserves first-appearance order of tax names for display;
	// the JSON form relies on TaxBreakup alone.
	TaxOrder []string `json:"-"`
}

// GeneratedOutput is the published result of one generation run.
// Unrequested formats are absent, not empty.
type GeneratedOutput struct {
	Markdown      *string `json:"markdown,omitempty"`
	HTMLEmail     *string `json:"html_email,omitempty"`
	PDFReady      *string `json:"pdf_ready,omitempty"`
	JSON          *string `json:"json,omitempty"`
	Totals        Totals  `json:"totals"`
	AmountInWords string  `json:"amount_in_words,omitempty"`
	QRString      string  `json:"qr_string,omitempty"`
	QRDataURL     string  `json:"qr_data_url,omitempty"`

	// RenderErrors maps a requested format to the reason it could not be
	// rendered. Formats listed here have no output entry.
	RenderErrors map[string]string `json:"render_errors,omitempty"`
}

// Format returns the rendered output for a format name, or nil when the
// format was not requested or failed to render.
func (g *GeneratedOutput) Format(format string) *string {
	switch format {
	case "markdown":
		return g.Markdown
	case "html_email":
		return g.HTMLEmail
	case "pdf_ready":
		return g.PDFReady
	case "json":
		return g.JSON
	default:
		return nil
	}
}

// SetFormat stores a rendered output under its format name.
func (g *GeneratedOutput) SetFormat(format string, content string) {
	switch format {
	case "markdown":
		g.Markdown = &content
	case "html_email":
		g.HTMLEmail = &content
	case "pdf_ready":
		g.PDFReady = &content
	case "json":
		g.JSON = &content
	}
}
