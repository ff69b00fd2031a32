package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-evaluation-api/internal/dto"
	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	"github.com/noah-isme/teacher-evaluation-api/internal/service"
	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
)

type documentGeneratorMock struct {
	format      models.ExportFormat
	ids         []string
	hadDeadline bool
	artifact    *service.Artifact
	err         error
}

func (m *documentGeneratorMock) Evaluation(ctx context.Context, id string, format models.ExportFormat) (*service.Artifact, error) {
	_, m.hadDeadline = ctx.Deadline()
	m.ids = []string{id}
	m.format = format
	return m.artifact, m.err
}

func (m *documentGeneratorMock) Batch(ctx context.Context, ids []string, format models.ExportFormat) (*service.Artifact, error) {
	_, m.hadDeadline = ctx.Deadline()
	m.ids = ids
	m.format = format
	return m.artifact, m.err
}

func TestDocumentHandlerEvaluationStreamsAttachment(t *testing.T) {
	gen := &documentGeneratorMock{artifact: &service.Artifact{
		Filename:    "Evaluacion_Núñez_Flores_Ana_María_20240315.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.3"),
	}}
	h := NewDocumentHandler(gen, models.ExportFormatDOCX, time.Second)

	c, w := newGinContext(http.MethodGet, "/evaluations/e-1/document?format=PDF", nil)
	c.Params = gin.Params{{Key: "id", Value: "e-1"}}
	h.Evaluation(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ExportFormatPDF, gen.format)
	assert.True(t, gen.hadDeadline)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "%PDF-1.3", w.Body.String())
}

func TestDocumentHandlerEvaluationDefaultsFormat(t *testing.T) {
	gen := &documentGeneratorMock{artifact: &service.Artifact{Filename: "a.docx", ContentType: "application/octet-stream"}}
	h := NewDocumentHandler(gen, "", 0)

	c, _ := newGinContext(http.MethodGet, "/evaluations/e-1/document", nil)
	c.Params = gin.Params{{Key: "id", Value: "e-1"}}
	h.Evaluation(c)

	assert.Equal(t, models.ExportFormatDOCX, gen.format)
}

func TestDocumentHandlerEvaluationReportsGenerationFailure(t *testing.T) {
	cause := appErrors.Wrap(fmt.Errorf("illegal base64 data at input byte 0"), appErrors.ErrDecode.Code, appErrors.ErrDecode.Status, appErrors.ErrDecode.Message)
	gen := &documentGeneratorMock{err: appErrors.GenerationFailed(cause)}
	h := NewDocumentHandler(gen, models.ExportFormatDOCX, time.Second)

	c, w := newGinContext(http.MethodGet, "/evaluations/e-1/document", nil)
	c.Params = gin.Params{{Key: "id", Value: "e-1"}}
	h.Evaluation(c)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "DECODE_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Message, appErrors.GenerationPrefix)
	assert.Contains(t, env.Error.Message, "illegal base64 data")
}

func TestDocumentHandlerBatchKeepsOrder(t *testing.T) {
	gen := &documentGeneratorMock{artifact: &service.Artifact{Filename: "Reporte_Evaluaciones_20240320.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("a,b\n")}}
	h := NewDocumentHandler(gen, models.ExportFormatDOCX, time.Second)

	body, _ := json.Marshal(dto.BatchExportRequest{EvaluationIDs: []string{"e-3", "e-1", "e-2"}, Format: models.ExportFormatCSV})
	c, w := newGinContext(http.MethodPost, "/exports/evaluations", body)
	h.Batch(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"e-3", "e-1", "e-2"}, gen.ids)
	assert.Equal(t, models.ExportFormatCSV, gen.format)
	assert.Equal(t, "a,b\n", w.Body.String())
}

func TestDocumentHandlerBatchRejectsMalformedBody(t *testing.T) {
	h := NewDocumentHandler(&documentGeneratorMock{}, models.ExportFormatDOCX, time.Second)

	c, w := newGinContext(http.MethodPost, "/exports/evaluations", []byte(`{"evaluationIds": "e-1"}`))
	h.Batch(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
