package services

import (
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/cavedevelopers/finance-docs/internal/constants"
	"github.com/cavedevelopers/finance-docs/internal/types"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// PaymentRequest is the derived UPI payment artifact for a document.
// DataURL is empty when QR encoding failed; the URI string remains usable
// as a fallback.
type PaymentRequest struct {
	URI     string
	DataURL string
}

// PaymentService builds UPI payment request URIs and their QR images.
type PaymentService struct {
	logger *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.L()
	}
	return &PaymentService{logger: logger}
}

// BuildPayment builds the UPI deep link and QR image for the payable
// amount. It returns nil when no UPI ID is configured; that is not an
// error, the document simply carries no payment request.
func (s *PaymentService) BuildPayment(bank *types.BankDetails, amount float64) *PaymentRequest {
	if bank == nil || bank.UPIID == "" {
		return nil
	}

	params := url.Values{}
	params.Set("pa", bank.UPIID)
	if bank.AccountName != "" {
		params.Set("pn", bank.AccountName)
	}
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", constants.INRCurrency)

	request := &PaymentRequest{URI: "upi://pay?" + params.Encode()}

	dataURL, err := s.encodeQR(request.URI)
	if err != nil {
		// QR failure is non-fatal; callers fall back to the URI string.
		s.logger.Warn("failed to generate payment QR code",
			zap.Error(err),
			zap.String("upi_id", bank.UPIID))
		return request
	}
	request.DataURL = dataURL

	return request
}

// encodeQR encodes the URI into a self-contained PNG data URL.
func (s *PaymentService) encodeQR(uri string) (string, error) {
	qr, err := qrcode.New(uri, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes), nil
}
