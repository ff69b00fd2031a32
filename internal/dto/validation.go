package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
)

var clockTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// NewValidator returns a validator with the domain tags registered:
// course, workcondition, level, exportformat and hhmm.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("course", func(fl validator.FieldLevel) bool {
		return models.Course(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("workcondition", func(fl validator.FieldLevel) bool {
		return models.WorkCondition(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		return models.PerformanceLevel(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("exportformat", func(fl validator.FieldLevel) bool {
		return models.ExportFormat(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return clockTime.MatchString(fl.Field().String())
	})
	return v
}
