package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Course is the subject a teacher is assigned to.
type Course string

const (
	CourseBiologia               Course = "biología"
	CourseCivica                 Course = "cívica"
	CourseFilosofia              Course = "filosofía"
	CourseFisica                 Course = "física"
	CourseGeografia              Course = "geografía"
	CourseHistoria               Course = "historia"
	CourseIngles                 Course = "ingles"
	CourseLenguaje               Course = "lenguaje"
	CourseLiteratura             Course = "literatura"
	CourseMatematica             Course = "matemática"
	CoursePsicologia             Course = "psicología"
	CourseQuimica                Course = "química"
	CourseRazonamientoLogico     Course = "razonamiento lógico"
	CourseRazonamientoMatematico Course = "razonamiento matemático"
	CourseRazonamientoVerbal     Course = "razonamiento verbal"
)

var courses = map[Course]struct{}{
	CourseBiologia: {}, CourseCivica: {}, CourseFilosofia: {}, CourseFisica: {},
	CourseGeografia: {}, CourseHistoria: {}, CourseIngles: {}, CourseLenguaje: {},
	CourseLiteratura: {}, CourseMatematica: {}, CoursePsicologia: {}, CourseQuimica: {},
	CourseRazonamientoLogico: {}, CourseRazonamientoMatematico: {}, CourseRazonamientoVerbal: {},
}

// Valid reports whether c is one of the known courses.
func (c Course) Valid() bool {
	_, ok := courses[c]
	return ok
}

// WorkCondition is the employment condition of a teacher.
type WorkCondition string

const (
	WorkConditionFullTime  WorkCondition = "tiempo completo"
	WorkConditionPartTime  WorkCondition = "tiempo parcial"
	WorkConditionExclusive WorkCondition = "no trabaja en otra institución"
)

// Valid reports whether w is one of the known work conditions.
func (w WorkCondition) Valid() bool {
	switch w {
	case WorkConditionFullTime, WorkConditionPartTime, WorkConditionExclusive:
		return true
	default:
		return false
	}
}

// ShiftHours maps a shift label (e.g. "turno 1") to the hours assigned in it.
type ShiftHours map[string]int

// Total sums the hours across all shifts.
func (s ShiftHours) Total() int {
	total := 0
	for _, hours := range s {
		total += hours
	}
	return total
}

// Value marshals shift hours to JSON for persistence.
func (s ShiftHours) Value() (driver.Value, error) {
	if s == nil {
		s = ShiftHours{}
	}
	data, err := json.Marshal(map[string]int(s))
	if err != nil {
		return nil, fmt.Errorf("marshal shift hours: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSONB payloads into shift hours.
func (s *ShiftHours) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = ShiftHours{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for ShiftHours", value)
	}
	out := ShiftHours{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return fmt.Errorf("unmarshal shift hours: %w", err)
		}
	}
	*s = out
	return nil
}

// Teacher represents an instructor record.
type Teacher struct {
	ID                     string        `db:"id" json:"id"`
	DNI                    string        `db:"dni" json:"dni"`
	Apellidos              string        `db:"apellidos" json:"apellidos"`
	Nombres                string        `db:"nombres" json:"nombres"`
	Telefono               string        `db:"telefono" json:"telefono"`
	CorreoPersonal         string        `db:"correo_personal" json:"correoPersonal"`
	CorreoInstitucional    string        `db:"correo_institucional" json:"correoInstitucional"`
	Curso                  Course        `db:"curso" json:"curso"`
	CondicionInstitucional WorkCondition `db:"condicion_institucional" json:"condicionInstitucional"`
	HorasPorTurno          ShiftHours    `db:"horas_por_turno" json:"horasPorTurno"`
	TotalHoras             int           `db:"total_horas" json:"totalHoras"`
	CreatedAt              time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time     `db:"updated_at" json:"updatedAt"`
}

// FullName renders the teacher as "apellidos, nombres".
func (t Teacher) FullName() string {
	return fmt.Sprintf("%s, %s", t.Apellidos, t.Nombres)
}

// RecomputeTotalHours derives TotalHoras from HorasPorTurno.
func (t *Teacher) RecomputeTotalHours() {
	t.TotalHoras = t.HorasPorTurno.Total()
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search   string
	Curso    Course
	Page     int
	PageSize int
}
