package dto

import (
	"time"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
)

// BatchExportRequest selects evaluations, in order, for a consolidated export.
type BatchExportRequest struct {
	EvaluationIDs []string            `json:"evaluationIds" validate:"required,min=1,max=200,dive,required"`
	Format        models.ExportFormat `json:"format" validate:"omitempty,exportformat"`
}

// ExportJobResponse is returned after enqueueing a batch export.
type ExportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ExportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ExportJobStatusResponse exposes job progress metadata.
type ExportJobStatusResponse struct {
	ID         string              `json:"id"`
	Status     models.ExportStatus `json:"status"`
	Progress   int                 `json:"progress"`
	Format     models.ExportFormat `json:"format"`
	Filename   *string             `json:"filename,omitempty"`
	ResultURL  *string             `json:"resultUrl,omitempty"`
	Error      *string             `json:"error,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	FinishedAt *time.Time          `json:"finishedAt,omitempty"`
}
