package dto

import "github.com/noah-isme/teacher-evaluation-api/internal/models"

// EvaluationRequest is the full record submitted when creating or replacing an evaluation.
type EvaluationRequest struct {
	TeacherID              string       `json:"teacherId" validate:"required"`
	EvaluatorID            string       `json:"evaluatorId" validate:"required,max=100"`
	EvaluatorName          string       `json:"evaluatorName" validate:"required,max=200"`
	Date                   models.Date  `json:"date"`
	Time                   string       `json:"time" validate:"omitempty,hhmm"`
	ReflectiveDialogueDate *models.Date `json:"reflectiveDialogueDate"`
	ReflectiveDialogueTime *string      `json:"reflectiveDialogueTime" validate:"omitempty,hhmm"`
	EvidenceImageURL       *string      `json:"evidenceImageUrl" validate:"omitempty,url"`
	EvidenceImageBase64    *string      `json:"evidenceImageBase64"`

	Performance1 models.PerformanceLevel `json:"performance1" validate:"required,level"`
	Performance2 models.PerformanceLevel `json:"performance2" validate:"required,level"`
	Performance3 models.PerformanceLevel `json:"performance3" validate:"required,level"`
	Performance4 models.PerformanceLevel `json:"performance4" validate:"required,level"`
	Performance5 models.PerformanceLevel `json:"performance5" validate:"required,level"`
	Performance6 models.PerformanceLevel `json:"performance6" validate:"required,level"`

	Observations     string `json:"observations" validate:"max=5000"`
	Strengths        string `json:"strengths" validate:"max=5000"`
	ImprovementAreas string `json:"improvementAreas" validate:"max=5000"`
	Commitments      string `json:"commitments" validate:"max=5000"`
}

// Apply copies the request onto an evaluation record, leaving identity and timestamps untouched.
func (r EvaluationRequest) Apply(e *models.TeacherEvaluation) {
	e.TeacherID = r.TeacherID
	e.EvaluatorID = r.EvaluatorID
	e.EvaluatorName = r.EvaluatorName
	e.Date = r.Date
	e.Time = r.Time
	e.ReflectiveDialogueDate = r.ReflectiveDialogueDate
	e.ReflectiveDialogueTime = r.ReflectiveDialogueTime
	e.EvidenceImageURL = r.EvidenceImageURL
	e.EvidenceImageBase64 = r.EvidenceImageBase64
	e.Performance1 = r.Performance1
	e.Performance2 = r.Performance2
	e.Performance3 = r.Performance3
	e.Performance4 = r.Performance4
	e.Performance5 = r.Performance5
	e.Performance6 = r.Performance6
	e.Observations = r.Observations
	e.Strengths = r.Strengths
	e.ImprovementAreas = r.ImprovementAreas
	e.Commitments = r.Commitments
}

// EvaluationResponse is an evaluation plus its derived summary.
type EvaluationResponse struct {
	models.TeacherEvaluation
	Summary models.EvaluationSummary `json:"summary"`
}

// NewEvaluationResponse attaches the summary to e.
func NewEvaluationResponse(e models.TeacherEvaluation) EvaluationResponse {
	return EvaluationResponse{TeacherEvaluation: e, Summary: e.Summary()}
}

// NewEvaluationResponses maps a list of evaluations to responses.
func NewEvaluationResponses(items []models.TeacherEvaluation) []EvaluationResponse {
	out := make([]EvaluationResponse, 0, len(items))
	for _, e := range items {
		out = append(out, NewEvaluationResponse(e))
	}
	return out
}
