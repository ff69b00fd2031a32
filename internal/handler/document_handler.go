package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teacher-evaluation-api/internal/dto"
	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	"github.com/noah-isme/teacher-evaluation-api/internal/service"
	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
	"github.com/noah-isme/teacher-evaluation-api/pkg/response"
)

type documentGenerator interface {
	Evaluation(ctx context.Context, id string, format models.ExportFormat) (*service.Artifact, error)
	Batch(ctx context.Context, ids []string, format models.ExportFormat) (*service.Artifact, error)
}

// DocumentHandler streams generated evaluation documents.
type DocumentHandler struct {
	documents     documentGenerator
	defaultFormat models.ExportFormat
	timeout       time.Duration
}

// NewDocumentHandler constructs a DocumentHandler. timeout bounds each generation.
func NewDocumentHandler(documents documentGenerator, defaultFormat models.ExportFormat, timeout time.Duration) *DocumentHandler {
	if defaultFormat == "" {
		defaultFormat = models.ExportFormatDOCX
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DocumentHandler{documents: documents, defaultFormat: defaultFormat, timeout: timeout}
}

// Evaluation godoc
// @Summary Download the evaluation report
// @Tags Documents
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Produce application/pdf
// @Param id path string true "Evaluation ID"
// @Param format query string false "docx or pdf"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /evaluations/{id}/document [get]
func (h *DocumentHandler) Evaluation(c *gin.Context) {
	format := models.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(h.defaultFormat))))
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	artifact, err := h.documents.Evaluation(ctx, c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, artifact.Filename, artifact.ContentType, artifact.Data)
}

// Batch godoc
// @Summary Download a consolidated export of several evaluations
// @Tags Documents
// @Accept json
// @Param payload body dto.BatchExportRequest true "Evaluations in output order"
// @Success 200 {file} file
// @Router /exports/evaluations [post]
func (h *DocumentHandler) Batch(c *gin.Context) {
	var req dto.BatchExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	format := req.Format
	if format == "" {
		format = h.defaultFormat
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	artifact, err := h.documents.Batch(ctx, req.EvaluationIDs, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, artifact.Filename, artifact.ContentType, artifact.Data)
}
