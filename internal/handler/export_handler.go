package handler

import (
	"context"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teacher-evaluation-api/internal/dto"
	"github.com/noah-isme/teacher-evaluation-api/internal/service"
	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
	"github.com/noah-isme/teacher-evaluation-api/pkg/response"
)

type exportJobService interface {
	CreateJob(ctx context.Context, req dto.BatchExportRequest) (*dto.ExportJobResponse, error)
	GetStatus(ctx context.Context, id string) (*dto.ExportJobStatusResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error)
}

// ExportHandler exposes background batch exports.
type ExportHandler struct {
	jobs exportJobService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(jobs exportJobService) *ExportHandler {
	return &ExportHandler{jobs: jobs}
}

// CreateJob godoc
// @Summary Queue a batch export
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body dto.BatchExportRequest true "Export request"
// @Success 202 {object} response.Envelope
// @Router /exports/jobs [post]
func (h *ExportHandler) CreateJob(c *gin.Context) {
	var req dto.BatchExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	job, err := h.jobs.CreateJob(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}

// Status godoc
// @Summary Get export job status
// @Tags Exports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /exports/jobs/{id} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	status, err := h.jobs.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Download godoc
// @Summary Download a finished export using its signed token
// @Tags Exports
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /exports/download/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	download, err := h.jobs.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.Body.Close() //nolint:errcheck

	c.Header("Cache-Control", "no-store")
	c.Header("X-Expires-At", download.ExpiresAt.UTC().Format(time.RFC3339))
	extra := map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": download.Filename}),
	}
	c.DataFromReader(http.StatusOK, -1, contentTypeFor(string(download.Format)), download.Body, extra)
}

func contentTypeFor(format string) string {
	switch format {
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "pdf":
		return "application/pdf"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
