package services

import (
	"github.com/cavedevelopers/finance-docs/internal/types"
	"go.uber.org/zap"
)

// GeneratorService runs the full document pipeline: totals, derived
// artifacts, and one rendering per requested format.
type GeneratorService struct {
	totalsService  *TotalsService
	paymentService *PaymentService
	logger         *zap.Logger
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(totalsService *TotalsService, paymentService *PaymentService, logger *zap.Logger) *GeneratorService {
	if logger == nil {
		logger = zap.L()
	}
	return &GeneratorService{
		totalsService:  totalsService,
		paymentService: paymentService,
		logger:         logger,
	}
}

// Generate computes totals and renders every requested format. A
// ValidationError aborts the run with no partial output. A renderer
// failure is scoped to its format: the format is reported in
// RenderErrors and the remaining formats still render.
func (s *GeneratorService) Generate(doc *types.DocumentInput) (*types.GeneratedOutput, error) {
	totals, err := s.totalsService.Compute(doc)
	if err != nil {
		return nil, err
	}

	out := &types.GeneratedOutput{Totals: *totals}
	derived := &DerivedArtifacts{}

	if doc.Outputs.ShowAmountInWords {
		words, err := AmountInWords(totals.RoundedGrandTotal)
		if err != nil {
			return nil, err
		}
		derived.AmountInWords = words
		out.AmountInWords = words
	}

	if doc.Outputs.ShowQR {
		if request := s.paymentService.BuildPayment(doc.BankDetails, totals.RoundedGrandTotal); request != nil {
			derived.QRString = request.URI
			derived.QRDataURL = request.DataURL
			out.QRString = request.URI
			out.QRDataURL = request.DataURL
		}
	}

	rendered := make(map[string]bool, len(doc.Outputs.Formats))
	for _, format := range doc.Outputs.Formats {
		if rendered[format] {
			continue
		}
		rendered[format] = true

		renderer, ok := Renderers[format]
		if !ok {
			// The validator rejects unknown formats before this point.
			continue
		}

		content, err := renderer(doc, totals, derived)
		if err != nil {
			s.logger.Error("format failed to render",
				zap.String("format", format),
				zap.String("doc_no", doc.DocNo),
				zap.Error(err))
			if out.RenderErrors == nil {
				out.RenderErrors = make(map[string]string)
			}
			out.RenderErrors[format] = err.Error()
			continue
		}
		out.SetFormat(format, content)
	}

	return out, nil
}
