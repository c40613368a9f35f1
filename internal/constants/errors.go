package constants

// Error messages used throughout the API handlers
const (
	// Request errors
	InvalidRequestBody  = "invalid request body"
	InvalidDocument     = "invalid document"
	NoPreviewAvailable  = "no preview has been generated yet"
	EmailDeliveryFailed = "failed to deliver document email"

	// Validation messages
	EmptyLineItems        = "at least one line item is required"
	NegativeQuantity      = "quantity must not be negative"
	NegativeUnitPrice     = "unit price must not be negative"
	NegativeShipping      = "shipping must not be negative"
	NegativeCharge        = "additional charge amounts must not be negative"
	InvalidDiscountValue  = "discount value is out of range"
	InvalidTaxRate        = "tax rate must not be negative"
	QuotationHasDueDate   = "a quotation carries valid_until, not due_date"
	NonQuotationValidTill = "only a quotation carries valid_until"
)
