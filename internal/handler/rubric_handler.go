package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	"github.com/noah-isme/teacher-evaluation-api/pkg/response"
)

// RubricHandler serves the static performance rubric.
type RubricHandler struct {
	rubric models.Rubric
}

// NewRubricHandler builds the rubric once at startup.
func NewRubricHandler() *RubricHandler {
	return &RubricHandler{rubric: models.BuildRubric()}
}

// Get godoc
// @Summary Performance levels and the six rated aspects
// @Tags Rubric
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rubric [get]
func (h *RubricHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.rubric, nil)
}
