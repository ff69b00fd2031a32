package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestErrorKeepsGenerationPrefixAndCause(t *testing.T) {
	c, w := newContext()
	cause := appErrors.Wrap(fmt.Errorf("illegal base64 data at input byte 4"), appErrors.ErrDecode.Code, appErrors.ErrDecode.Status, "invalid evidence image payload")

	Error(c, appErrors.GenerationFailed(cause))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "DECODE_ERROR", env.Error.Code)
	assert.Equal(t, "No se pudo generar el documento: invalid evidence image payload: illegal base64 data at input byte 4", env.Error.Message)
}

func TestAttachmentEncodesFilename(t *testing.T) {
	c, w := newContext()

	Attachment(c, "Evaluacion_Núñez_Ana_20240315.docx", "application/octet-stream", []byte("abc"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "filename*=utf-8''Evaluacion_N%C3%BA%C3%B1ez_Ana_20240315.docx")
	assert.Equal(t, "3", w.Header().Get("Content-Length"))
	assert.Equal(t, "abc", w.Body.String())
}
