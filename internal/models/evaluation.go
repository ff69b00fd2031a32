package models

import (
	"strconv"
	"time"
)

// PerformanceLevel is the ordinal rating given to a performance slot.
type PerformanceLevel string

const (
	LevelI   PerformanceLevel = "I"
	LevelII  PerformanceLevel = "II"
	LevelIII PerformanceLevel = "III"
	LevelIV  PerformanceLevel = "IV"
)

// PerformanceLevels lists the ratings from lowest to highest.
var PerformanceLevels = []PerformanceLevel{LevelI, LevelII, LevelIII, LevelIV}

// Ordinal maps I..IV to 1..4; unrecognised ratings map to 0.
func (l PerformanceLevel) Ordinal() int {
	switch l {
	case LevelI:
		return 1
	case LevelII:
		return 2
	case LevelIII:
		return 3
	case LevelIV:
		return 4
	default:
		return 0
	}
}

// Valid reports whether l is one of I, II, III or IV.
func (l PerformanceLevel) Valid() bool {
	return l.Ordinal() > 0
}

// PerformanceSlot identifies one of the six evaluated performances (1-based).
type PerformanceSlot int

const (
	SlotEngagement PerformanceSlot = iota + 1
	SlotCriticalThinking
	SlotFormativeAssessment
	SlotRespectfulClimate
	SlotBehaviorRegulation
	SlotTechnologyUse
)

// PerformanceSlots lists the slots in document order.
var PerformanceSlots = []PerformanceSlot{
	SlotEngagement,
	SlotCriticalThinking,
	SlotFormativeAssessment,
	SlotRespectfulClimate,
	SlotBehaviorRegulation,
	SlotTechnologyUse,
}

// PerformanceCount is the fixed number of ratings in every evaluation.
const PerformanceCount = 6

// TeacherEvaluation is a classroom monitoring record for one teacher.
type TeacherEvaluation struct {
	ID                     string  `db:"id" json:"id"`
	TeacherID              string  `db:"teacher_id" json:"teacherId"`
	EvaluatorID            string  `db:"evaluator_id" json:"evaluatorId"`
	EvaluatorName          string  `db:"evaluator_name" json:"evaluatorName"`
	Date                   Date    `db:"monitoring_date" json:"date"`
	Time                   string  `db:"monitoring_time" json:"time"`
	ReflectiveDialogueDate *Date   `db:"reflective_dialogue_date" json:"reflectiveDialogueDate"`
	ReflectiveDialogueTime *string `db:"reflective_dialogue_time" json:"reflectiveDialogueTime"`
	EvidenceImageURL       *string `db:"evidence_image_url" json:"evidenceImageUrl"`
	EvidenceImageBase64    *string `db:"evidence_image_base64" json:"evidenceImageBase64,omitempty"`

	Performance1 PerformanceLevel `db:"performance_1" json:"performance1"`
	Performance2 PerformanceLevel `db:"performance_2" json:"performance2"`
	Performance3 PerformanceLevel `db:"performance_3" json:"performance3"`
	Performance4 PerformanceLevel `db:"performance_4" json:"performance4"`
	Performance5 PerformanceLevel `db:"performance_5" json:"performance5"`
	Performance6 PerformanceLevel `db:"performance_6" json:"performance6"`

	Observations     string `db:"observations" json:"observations"`
	Strengths        string `db:"strengths" json:"strengths"`
	ImprovementAreas string `db:"improvement_areas" json:"improvementAreas"`
	Commitments      string `db:"commitments" json:"commitments"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Ratings returns the six ratings in slot order.
func (e TeacherEvaluation) Ratings() [PerformanceCount]PerformanceLevel {
	return [PerformanceCount]PerformanceLevel{
		e.Performance1, e.Performance2, e.Performance3,
		e.Performance4, e.Performance5, e.Performance6,
	}
}

// Rating returns the rating recorded for slot, or "" for an unknown slot.
func (e TeacherEvaluation) Rating(slot PerformanceSlot) PerformanceLevel {
	if slot < SlotEngagement || slot > SlotTechnologyUse {
		return ""
	}
	return e.Ratings()[slot-1]
}

// Summary derives the average rating and its band. It is never persisted.
func (e TeacherEvaluation) Summary() EvaluationSummary {
	return Summarize(e.Ratings())
}

// EvidenceData returns the inline evidence payload, or "" when none is attached.
func (e TeacherEvaluation) EvidenceData() string {
	if e.EvidenceImageBase64 == nil {
		return ""
	}
	return *e.EvidenceImageBase64
}

// EvaluationFilter captures list options for evaluations.
type EvaluationFilter struct {
	TeacherID string
	Page      int
	PageSize  int
}

// Key returns the field name used by clients, e.g. "performance3".
func (s PerformanceSlot) Key() string {
	return "performance" + strconv.Itoa(int(s))
}
