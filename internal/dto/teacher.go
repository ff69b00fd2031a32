package dto

import "github.com/noah-isme/teacher-evaluation-api/internal/models"

// TeacherRequest is the payload for creating or replacing a teacher.
type TeacherRequest struct {
	DNI                    string               `json:"dni" validate:"required,number,min=8,max=10"`
	Apellidos              string               `json:"apellidos" validate:"required,max=150"`
	Nombres                string               `json:"nombres" validate:"required,max=150"`
	Telefono               string               `json:"telefono" validate:"omitempty,max=30"`
	CorreoPersonal         string               `json:"correoPersonal" validate:"omitempty,email"`
	CorreoInstitucional    string               `json:"correoInstitucional" validate:"omitempty,email"`
	Curso                  models.Course        `json:"curso" validate:"required,course"`
	CondicionInstitucional models.WorkCondition `json:"condicionInstitucional" validate:"required,workcondition"`
	HorasPorTurno          map[string]int       `json:"horasPorTurno" validate:"dive,keys,required,endkeys,min=0,max=60"`
}

// ImportTeachersRequest carries a bulk teacher import.
type ImportTeachersRequest struct {
	Teachers []TeacherRequest `json:"teachers" validate:"required,min=1,max=500,dive"`
}

// ImportTeachersResult reports how many teachers were created and which DNIs were skipped as duplicates.
type ImportTeachersResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}
