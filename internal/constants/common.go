package constants

// Common string constants used throughout the codebase
const (
	// Environments
	StageProd  = "prod"
	StageDev   = "dev"
	StageLocal = "local"

	// Document types
	DocumentTypeInvoice   = "invoice"
	DocumentTypeQuotation = "quotation"
	DocumentTypeBill      = "bill"

	// Output formats
	FormatMarkdown  = "markdown"
	FormatHTMLEmail = "html_email"
	FormatPDFReady  = "pdf_ready"
	FormatJSON      = "json"

	// Rounding modes for the grand total
	RoundingNone    = "none"
	RoundingNearest = "nearest"
	RoundingUp      = "up"
	RoundingDown    = "down"

	// Discount types
	DiscountPercent = "percent"
	DiscountFlat    = "flat"

	// Currency
	INRCurrency = "INR"
)

// IsValidStage checks if the provided stage string is one of the defined valid stages.
func IsValidStage(stage string) bool {
	switch stage {
	case StageProd, StageDev, StageLocal:
		return true
	default:
		return false
	}
}

// IsValidDocumentType reports whether the string names a supported document type.
func IsValidDocumentType(documentType string) bool {
	switch documentType {
	case DocumentTypeInvoice, DocumentTypeQuotation, DocumentTypeBill:
		return true
	default:
		return false
	}
}

// IsValidFormat reports whether the string names a supported output format.
func IsValidFormat(format string) bool {
	switch format {
	case FormatMarkdown, FormatHTMLEmail, FormatPDFReady, FormatJSON:
		return true
	default:
		return false
	}
}

// IsValidRounding reports whether the string names a supported rounding mode.
func IsValidRounding(rounding string) bool {
	switch rounding {
	case RoundingNone, RoundingNearest, RoundingUp, RoundingDown:
		return true
	default:
		return false
	}
}
