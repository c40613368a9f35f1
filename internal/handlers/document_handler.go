package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cavedevelopers/finance-docs/internal/constants"
	"github.com/cavedevelopers/finance-docs/internal/services"
	"github.com/cavedevelopers/finance-docs/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentSender delivers a rendered document to a recipient.
type DocumentSender interface {
	SendDocument(ctx context.Context, params services.SendDocumentParams) error
}

// DocumentHandler handles document generation and preview HTTP requests
type DocumentHandler struct {
	common           *CommonServices
	generatorService *services.GeneratorService
	recomputeService *services.RecomputeService
	emailService     DocumentSender
	logger           *zap.Logger
}

// NewDocumentHandler creates a handler for document generation endpoints
func NewDocumentHandler(
	common *CommonServices,
	generatorService *services.GeneratorService,
	recomputeService *services.RecomputeService,
	emailService DocumentSender,
	logger *zap.Logger,
) *DocumentHandler {
	if logger == nil {
		logger = zap.L()
	}

	return &DocumentHandler{
		common:           common,
		generatorService: generatorService,
		recomputeService: recomputeService,
		emailService:     emailService,
		logger:           logger,
	}
}

// PreviewSubmittedResponse acknowledges a live-recompute submission
type PreviewSubmittedResponse struct {
	Generation uint64 `json:"generation"`
}

// SendDocumentRequest asks for the rendered html_email output to be
// delivered to a recipient
type SendDocumentRequest struct {
	To       string              `json:"to" binding:"required,email"`
	Subject  string              `json:"subject,omitempty"`
	Document types.DocumentInput `json:"document" binding:"required"`
}

// GenerateDocument godoc
// @Summary Generate a finance document
// @Description Computes totals and renders the requested output formats for an invoice, quotation or bill
// @Tags documents
// @Accept json
// @Produce json
// @Param document body types.DocumentInput true "Document description"
// @Success 200 {object} types.GeneratedOutput
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/documents/generate [post]
func (h *DocumentHandler) GenerateDocument(c *gin.Context) {
	var doc types.DocumentInput
	if err := c.ShouldBindJSON(&doc); err != nil {
		h.common.HandleError(c, err, constants.InvalidRequestBody, http.StatusBadRequest, h.logger)
		return
	}

	output, err := h.generatorService.Generate(&doc)
	if err != nil {
		if services.IsValidationError(err) {
			h.common.HandleError(c, err, err.Error(), http.StatusBadRequest, h.logger)
			return
		}
		h.common.HandleError(c, err, "Failed to generate document", http.StatusInternalServerError, h.logger)
		return
	}

	c.JSON(http.StatusOK, output)
}

// SubmitPreview godoc
// @Summary Submit a document for live preview recomputation
// @Description Starts an asynchronous generation run; newer submissions supersede older in-flight runs
// @Tags documents
// @Accept json
// @Produce json
// @Param document body types.DocumentInput true "Document description"
// @Success 202 {object} PreviewSubmittedResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/documents/preview [post]
func (h *DocumentHandler) SubmitPreview(c *gin.Context) {
	var doc types.DocumentInput
	if err := c.ShouldBindJSON(&doc); err != nil {
		h.common.HandleError(c, err, constants.InvalidRequestBody, http.StatusBadRequest, h.logger)
		return
	}

	generation := h.recomputeService.Submit(&doc)

	c.JSON(http.StatusAccepted, PreviewSubmittedResponse{Generation: generation})
}

// GetPreview godoc
// @Summary Get the current published preview
// @Description Returns the latest published generation result, or the last error if the latest run failed
// @Tags documents
// @Produce json
// @Success 200 {object} services.PreviewSnapshot
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/documents/preview [get]
func (h *DocumentHandler) GetPreview(c *gin.Context) {
	snapshot := h.recomputeService.Snapshot()
	if snapshot.State == services.StateIdle {
		h.common.HandleError(c, nil, constants.NoPreviewAvailable, http.StatusNotFound, h.logger)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// SendDocument godoc
// @Summary Email a rendered document
// @Description Renders the html_email format and delivers it to the recipient
// @Tags documents
// @Accept json
// @Produce json
// @Param request body SendDocumentRequest true "Recipient and document description"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/documents/send [post]
func (h *DocumentHandler) SendDocument(c *gin.Context) {
	ctx := c.Request.Context()

	var req SendDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.common.HandleError(c, err, constants.InvalidRequestBody, http.StatusBadRequest, h.logger)
		return
	}

	// Delivery needs the email rendering whether or not the caller
	// listed it in the requested formats.
	if !req.Document.WantsFormat(constants.FormatHTMLEmail) {
		req.Document.Outputs.Formats = append(req.Document.Outputs.Formats, constants.FormatHTMLEmail)
	}

	output, err := h.generatorService.Generate(&req.Document)
	if err != nil {
		if services.IsValidationError(err) {
			h.common.HandleError(c, err, err.Error(), http.StatusBadRequest, h.logger)
			return
		}
		h.common.HandleError(c, err, "Failed to generate document", http.StatusInternalServerError, h.logger)
		return
	}
	if output.HTMLEmail == nil {
		h.common.HandleError(c, nil, output.RenderErrors[constants.FormatHTMLEmail], http.StatusInternalServerError, h.logger)
		return
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("%s %s from %s", documentSubjectWord(req.Document.DocumentType), req.Document.DocNo, req.Document.Company.Name)
	}

	err = h.emailService.SendDocument(ctx, services.SendDocumentParams{
		To:       req.To,
		Subject:  subject,
		HTMLBody: *output.HTMLEmail,
		DocNo:    req.Document.DocNo,
	})
	if err != nil {
		h.common.HandleError(c, err, constants.EmailDeliveryFailed, http.StatusBadGateway, h.logger)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "document sent"})
}

func documentSubjectWord(documentType string) string {
	switch documentType {
	case constants.DocumentTypeQuotation:
		return "Quotation"
	case constants.DocumentTypeBill:
		return "Bill"
	default:
		return "Invoice"
	}
}
