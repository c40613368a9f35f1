package services_test

import (
	"testing"

	"github.com/cavedevelopers/finance-docs/internal/logger"
	"github.com/cavedevelopers/finance-docs/internal/services"
	"github.com/cavedevelopers/finance-docs/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("local")
}

// baseDocument returns a minimal valid invoice used across tests.
func baseDocument() *types.DocumentInput {
	return &types.DocumentInput{
		DocumentType: "invoice",
		DocNo:        "INV-2024-001",
		DocDate:      "2024-05-01",
		DueDate:      "2024-05-15",
		Company:      types.ContactProfile{Name: "Cavedevelopers"},
		BillTo:       types.ContactProfile{Name: "Design Arena"},
		LineItems: []types.LineItem{
			{
				Description: "Design services",
				Quantity:    2,
				Unit:        "unit",
				UnitPrice:   500,
				Tax: []types.Tax{
					{Name: "CGST", Rate: 9},
					{Name: "SGST", Rate: 9},
				},
			},
		},
		Rounding: "nearest",
		Outputs:  types.OutputPreferences{Formats: []string{"markdown"}},
	}
}

func TestTotalsService_Compute(t *testing.T) {
	service := services.NewTotalsService(logger.Log)

	t.Run("two units at 500 with CGST and SGST", func(t *testing.T) {
		totals, err := service.Compute(baseDocument())
		require.NoError(t, err)

		assert.Equal(t, 1000.0, totals.Subtotal)
		assert.Equal(t, 180.0, totals.Taxes)
		assert.Equal(t, map[string]float64{"CGST": 90, "SGST": 90}, totals.TaxBreakup)
		assert.Equal(t, []string{"CGST", "SGST"}, totals.TaxOrder)
		assert.Equal(t, 1180.0, totals.GrandTotal)
		assert.Equal(t, 1180.0, totals.RoundedGrandTotal)
		assert.Equal(t, 0.0, totals.RoundingAdjustment)
	})

	t.Run("percent discount shrinks the tax base", func(t *testing.T) {
		doc := baseDocument()
		doc.LineItems[0].Discount = &types.Discount{Type: "percent", Value: 10}
		doc.LineItems[0].Tax = []types.Tax{{Name: "IGST", Rate: 18}}

		totals, err := service.Compute(doc)
		require.NoError(t, err)

		// 1000 gross, 100 discount: tax applies to 900, not 1000.
		assert.Equal(t, 900.0, totals.Subtotal)
		assert.Equal(t, 162.0, totals.Taxes)
		assert.Equal(t, 900.0, totals.Lines[0].Amount)
	})

	t.Run("flat discount", func(t *testing.T) {
		doc := baseDocument()
		doc.LineItems[0].Discount = &types.Discount{Type: "flat", Value: 250}

		totals, err := service.Compute(doc)
		require.NoError(t, err)
		assert.Equal(t, 750.0, totals.Subtotal)
		assert.Equal(t, map[string]float64{"CGST": 67.5, "SGST": 67.5}, totals.TaxBreakup)
	})

	t.Run("same tax name accumulates across lines", func(t *testing.T) {
		doc := baseDocument()
		doc.LineItems = append(doc.LineItems, types.LineItem{
			Description: "Hosting",
			Quantity:    1,
			Unit:        "month",
			UnitPrice:   2000,
			Tax:         []types.Tax{{Name: "CGST", Rate: 9}},
		})

		totals, err := service.Compute(doc)
		require.NoError(t, err)
		assert.Equal(t, 270.0, totals.TaxBreakup["CGST"])
		assert.Equal(t, []string{"CGST", "SGST"}, totals.TaxOrder)
	})

	t.Run("shipping and additional charges land after taxes", func(t *testing.T) {
		doc := baseDocument()
		doc.Shipping = 50
		doc.AdditionalCharges = []types.AdditionalCharge{
			{Label: "Handling", Amount: 25},
			{Label: "Packaging", Amount: 10.50},
		}
		doc.Rounding = "none"

		totals, err := service.Compute(doc)
		require.NoError(t, err)
		assert.Equal(t, 50.0, totals.Shipping)
		assert.Equal(t, 35.5, totals.ChargesTotal)
		assert.Equal(t, 1265.5, totals.GrandTotal)
		assert.Equal(t, 1265.5, totals.RoundedGrandTotal)
	})
}

func TestTotalsService_Rounding(t *testing.T) {
	service := services.NewTotalsService(logger.Log)

	// 3 x 33.33 = 99.99 with 9% tax = 9.00 gives 108.99 pre-rounding.
	fractional := func(rounding string) *types.DocumentInput {
		doc := baseDocument()
		doc.LineItems = []types.LineItem{{
			Description: "Consulting",
			Quantity:    3,
			Unit:        "hour",
			UnitPrice:   33.33,
			Tax:         []types.Tax{{Name: "CGST", Rate: 9}},
		}}
		doc.Rounding = rounding
		return doc
	}

	tests := []struct {
		name               string
		rounding           string
		expectedTotal      float64
		expectedAdjustment float64
	}{
		{"none keeps the exact total", "none", 108.99, 0},
		{"nearest rounds to the closer unit", "nearest", 109, 0.01},
		{"up always ceils", "up", 109, 0.01},
		{"down always floors", "down", 108, -0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := service.Compute(fractional(tt.rounding))
			require.NoError(t, err)
			assert.Equal(t, 108.99, totals.GrandTotal)
			assert.Equal(t, tt.expectedTotal, totals.RoundedGrandTotal)
			assert.InDelta(t, tt.expectedAdjustment, totals.RoundingAdjustment, 0.001)
		})
	}

	t.Run("half rounds away from zero", func(t *testing.T) {
		doc := baseDocument()
		doc.LineItems = []types.LineItem{{
			Description: "Fee",
			Quantity:    1,
			Unit:        "unit",
			UnitPrice:   10.50,
		}}
		doc.Rounding = "nearest"

		totals, err := service.Compute(doc)
		require.NoError(t, err)
		assert.Equal(t, 11.0, totals.RoundedGrandTotal)
	})
}

func TestTotalsService_BreakupMatchesTaxes(t *testing.T) {
	service := services.NewTotalsService(logger.Log)

	doc := baseDocument()
	doc.LineItems = []types.LineItem{
		{Description: "A", Quantity: 1.5, Unit: "kg", UnitPrice: 133.33, Tax: []types.Tax{{Name: "CGST", Rate: 2.5}, {Name: "SGST", Rate: 2.5}}},
		{Description: "B", Quantity: 7, Unit: "pc", UnitPrice: 49.99, Tax: []types.Tax{{Name: "CGST", Rate: 2.5}, {Name: "Cess", Rate: 1}}},
		{Description: "C", Quantity: 2, Unit: "pc", UnitPrice: 0.01, Tax: []types.Tax{{Name: "IGST", Rate: 28}}},
	}

	totals, err := service.Compute(doc)
	require.NoError(t, err)

	var sum float64
	for _, amount := range totals.TaxBreakup {
		sum += amount
	}
	assert.InDelta(t, totals.Taxes, sum, 0.01)
}

func TestTotalsService_Validation(t *testing.T) {
	service := services.NewTotalsService(logger.Log)

	tests := []struct {
		name   string
		mutate func(doc *types.DocumentInput)
	}{
		{"empty line items", func(doc *types.DocumentInput) { doc.LineItems = nil }},
		{"negative quantity", func(doc *types.DocumentInput) { doc.LineItems[0].Quantity = -1 }},
		{"negative unit price", func(doc *types.DocumentInput) { doc.LineItems[0].UnitPrice = -10 }},
		{"negative tax rate", func(doc *types.DocumentInput) { doc.LineItems[0].Tax[0].Rate = -5 }},
		{"discount above 100 percent", func(doc *types.DocumentInput) {
			doc.LineItems[0].Discount = &types.Discount{Type: "percent", Value: 120}
		}},
		{"flat discount above gross", func(doc *types.DocumentInput) {
			doc.LineItems[0].Discount = &types.Discount{Type: "flat", Value: 5000}
		}},
		{"negative discount", func(doc *types.DocumentInput) {
			doc.LineItems[0].Discount = &types.Discount{Type: "percent", Value: -5}
		}},
		{"unknown discount type", func(doc *types.DocumentInput) {
			doc.LineItems[0].Discount = &types.Discount{Type: "coupon", Value: 5}
		}},
		{"negative shipping", func(doc *types.DocumentInput) { doc.Shipping = -1 }},
		{"negative additional charge", func(doc *types.DocumentInput) {
			doc.AdditionalCharges = []types.AdditionalCharge{{Label: "Refund", Amount: -10}}
		}},
		{"unknown document type", func(doc *types.DocumentInput) { doc.DocumentType = "receipt" }},
		{"unknown rounding mode", func(doc *types.DocumentInput) { doc.Rounding = "banker" }},
		{"unknown output format", func(doc *types.DocumentInput) { doc.Outputs.Formats = []string{"docx"} }},
		{"quotation with due date", func(doc *types.DocumentInput) {
			doc.DocumentType = "quotation"
			doc.DueDate = "2024-05-15"
		}},
		{"invoice with valid_until", func(doc *types.DocumentInput) { doc.ValidUntil = "2024-06-01" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := baseDocument()
			tt.mutate(doc)

			totals, err := service.Compute(doc)
			assert.Nil(t, totals)
			require.Error(t, err)
			assert.True(t, services.IsValidationError(err), "expected a validation error, got %v", err)
		})
	}
}

func TestTotalsService_Deterministic(t *testing.T) {
	service := services.NewTotalsService(logger.Log)

	doc := baseDocument()
	first, err := service.Compute(doc)
	require.NoError(t, err)
	second, err := service.Compute(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
