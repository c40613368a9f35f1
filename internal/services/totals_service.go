package services

import (
	"math"

	"github.com/cavedevelopers/finance-docs/internal/constants"
	"github.com/cavedevelopers/finance-docs/internal/types"
	"go.uber.org/zap"
)

// TotalsService computes the verified totals model for a document. The
// computation is deterministic: identical input always yields identical
// output.
type TotalsService struct {
	logger *zap.Logger
}

// NewTotalsService creates a new totals service
func NewTotalsService(logger *zap.Logger) *TotalsService {
	if logger == nil {
		logger = zap.L()
	}
	return &TotalsService{logger: logger}
}

// roundMoney rounds to two decimals (one paisa). All accumulated money
// values pass through this so that breakup sums match their totals exactly.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute validates the document and builds its totals model.
func (s *TotalsService) Compute(doc *types.DocumentInput) (*types.Totals, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	totals := &types.Totals{
		Lines:      make([]types.LineTotal, 0, len(doc.LineItems)),
		TaxBreakup: make(map[string]float64),
	}

	for _, item := range doc.LineItems {
		gross := roundMoney(item.Quantity * item.UnitPrice)

		var discount float64
		if item.Discount != nil {
			switch item.Discount.Type {
			case constants.DiscountPercent:
				discount = roundMoney(gross * item.Discount.Value / 100)
			case constants.DiscountFlat:
				discount = roundMoney(item.Discount.Value)
			}
		}

		amount := roundMoney(gross - discount)
		if amount < 0 {
			// The validator bounds discount values, so this only trips on
			// malformed input that slipped through a client-side edit.
			return nil, newValidationError("line_items", constants.InvalidDiscountValue)
		}

		var lineTax float64
		for _, tax := range item.Tax {
			taxAmount := roundMoney(amount * tax.Rate / 100)
			if _, seen := totals.TaxBreakup[tax.Name]; !seen {
				totals.TaxOrder = append(totals.TaxOrder, tax.Name)
			}
			totals.TaxBreakup[tax.Name] = roundMoney(totals.TaxBreakup[tax.Name] + taxAmount)
			totals.Taxes = roundMoney(totals.Taxes + taxAmount)
			lineTax = roundMoney(lineTax + taxAmount)
		}

		totals.Subtotal = roundMoney(totals.Subtotal + amount)
		totals.Lines = append(totals.Lines, types.LineTotal{
			Description: item.Description,
			HSNSAC:      item.HSNSAC,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Gross:       gross,
			Discount:    discount,
			Amount:      amount,
			TaxAmount:   lineTax,
		})
	}

	totals.Shipping = roundMoney(doc.Shipping)
	for _, charge := range doc.AdditionalCharges {
		totals.ChargesTotal = roundMoney(totals.ChargesTotal + charge.Amount)
	}

	totals.GrandTotal = roundMoney(totals.Subtotal + totals.Taxes + totals.Shipping + totals.ChargesTotal)

	rounded := totals.GrandTotal
	switch doc.Rounding {
	case constants.RoundingNearest:
		// math.Round rounds half away from zero, matching the policy.
		rounded = math.Round(totals.GrandTotal)
	case constants.RoundingUp:
		rounded = math.Ceil(totals.GrandTotal)
	case constants.RoundingDown:
		rounded = math.Floor(totals.GrandTotal)
	}
	totals.RoundedGrandTotal = rounded
	totals.RoundingAdjustment = roundMoney(rounded - totals.GrandTotal)

	return totals, nil
}
