package services

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// EmailService delivers rendered documents over email. It operates on
// already-rendered HTML; the engine itself never touches the network.
type EmailService struct {
	client    *resend.Client
	logger    *zap.Logger
	fromEmail string
	fromName  string
}

// NewEmailService creates a new email service
func NewEmailService(apiKey string, fromEmail string, fromName string, logger *zap.Logger) *EmailService {
	client := resend.NewClient(apiKey)

	if logger == nil {
		logger = zap.L()
	}
	return &EmailService{
		client:    client,
		logger:    logger,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendDocumentParams describes one outgoing document email.
type SendDocumentParams struct {
	To       string
	Subject  string
	HTMLBody string
	DocNo    string
}

// SendDocument sends a rendered document to the recipient, retrying
// transient provider failures with exponential backoff.
func (s *EmailService) SendDocument(ctx context.Context, params SendDocumentParams) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	request := &resend.SendEmailRequest{
		From:    from,
		To:      []string{params.To},
		Subject: params.Subject,
		Html:    params.HTMLBody,
		Tags: []resend.Tag{
			{Name: "category", Value: "document"},
			{Name: "doc_no", Value: params.DocNo},
		},
	}

	operation := func() error {
		_, err := s.client.Emails.SendWithContext(ctx, request)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		s.logger.Error("failed to send document email",
			zap.Error(err),
			zap.String("to", params.To),
			zap.String("doc_no", params.DocNo))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("document email sent",
		zap.String("to", params.To),
		zap.String("doc_no", params.DocNo))
	return nil
}
