package services

import (
	"fmt"

	"github.com/cavedevelopers/finance-docs/internal/constants"
	"github.com/cavedevelopers/finance-docs/internal/types"
)

// ValidateDocument checks a document description before any totals are
// computed. Out-of-range values are rejected rather than clamped so that
// a malformed form never silently produces plausible-looking numbers.
func ValidateDocument(doc *types.DocumentInput) error {
	if !constants.IsValidDocumentType(doc.DocumentType) {
		return newValidationError("document_type", fmt.Sprintf("unknown document type %q", doc.DocumentType))
	}
	if doc.Rounding != "" && !constants.IsValidRounding(doc.Rounding) {
		return newValidationError("rounding", fmt.Sprintf("unknown rounding mode %q", doc.Rounding))
	}
	for _, format := range doc.Outputs.Formats {
		if !constants.IsValidFormat(format) {
			return newValidationError("outputs.formats", fmt.Sprintf("unknown output format %q", format))
		}
	}

	if doc.DocumentType == constants.DocumentTypeQuotation {
		if doc.DueDate != "" {
			return newValidationError("due_date", constants.QuotationHasDueDate)
		}
	} else if doc.ValidUntil != "" {
		return newValidationError("valid_until", constants.NonQuotationValidTill)
	}

	if len(doc.LineItems) == 0 {
		return newValidationError("line_items", constants.EmptyLineItems)
	}
	for i, item := range doc.LineItems {
		field := func(name string) string { return fmt.Sprintf("line_items[%d].%s", i, name) }
		if item.Quantity < 0 {
			return newValidationError(field("quantity"), constants.NegativeQuantity)
		}
		if item.UnitPrice < 0 {
			return newValidationError(field("unit_price"), constants.NegativeUnitPrice)
		}
		if item.Discount != nil {
			switch item.Discount.Type {
			case constants.DiscountPercent:
				if item.Discount.Value < 0 || item.Discount.Value > 100 {
					return newValidationError(field("discount.value"), constants.InvalidDiscountValue)
				}
			case constants.DiscountFlat:
				if item.Discount.Value < 0 || item.Discount.Value > item.Quantity*item.UnitPrice {
					return newValidationError(field("discount.value"), constants.InvalidDiscountValue)
				}
			default:
				return newValidationError(field("discount.type"), fmt.Sprintf("unknown discount type %q", item.Discount.Type))
			}
		}
		for j, tax := range item.Tax {
			if tax.Rate < 0 {
				return newValidationError(fmt.Sprintf("line_items[%d].tax[%d].rate", i, j), constants.InvalidTaxRate)
			}
		}
	}

	if doc.Shipping < 0 {
		return newValidationError("shipping", constants.NegativeShipping)
	}
	for i, charge := range doc.AdditionalCharges {
		if charge.Amount < 0 {
			return newValidationError(fmt.Sprintf("additional_charges[%d].amount", i), constants.NegativeCharge)
		}
	}

	return nil
}
