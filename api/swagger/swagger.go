package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Teacher Evaluation API",
        "description": "Teacher records, classroom evaluations and generated evaluation documents.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Teachers", "description": "Teacher roster management"},
        {"name": "Evaluations", "description": "Classroom performance evaluations"},
        {"name": "Documents", "description": "DOCX/PDF evaluation reports and batch exports"},
        {"name": "Exports", "description": "Background batch exports with signed downloads"},
        {"name": "Rubric", "description": "Performance levels and rated aspects"}
    ],
    "paths": {
        "/rubric": {
            "get": {
                "tags": ["Rubric"],
                "summary": "Performance levels and the six rated aspects",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers ordered by surname",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "curso", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Teachers"],
                "summary": "Create teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate DNI", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/import": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Bulk import teachers, skipping duplicate DNIs",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ImportTeachersRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Teachers"],
                "summary": "Replace teacher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Teachers"],
                "summary": "Delete teacher and its evaluations",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/teachers/{id}/evaluations": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List a teacher's evaluations, newest first",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/evaluations": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "List evaluations, newest first",
                "parameters": [
                    {"name": "teacherId", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Evaluations"],
                "summary": "Create evaluation",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EvaluationRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/evaluations/{id}": {
            "get": {
                "tags": ["Evaluations"],
                "summary": "Get evaluation with its derived summary",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Evaluations"],
                "summary": "Replace evaluation",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EvaluationRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Evaluations"],
                "summary": "Delete evaluation",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/evaluations/{id}/document": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download the evaluation report",
                "produces": [
                    "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
                    "application/pdf"
                ],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["docx", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Document", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Invalid evidence payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/evaluations": {
            "post": {
                "tags": ["Documents"],
                "summary": "Download a consolidated export of several evaluations",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchExportRequest"}}
                ],
                "responses": {"200": {"description": "Export", "schema": {"type": "file"}}}
            }
        },
        "/exports/jobs": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a batch export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchExportRequest"}}
                ],
                "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exports/jobs/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Get export job status",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exports/download/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export using its signed token",
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Export", "schema": {"type": "file"}},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "TeacherRequest": {
            "type": "object",
            "properties": {
                "dni": {"type": "string"},
                "apellidos": {"type": "string"},
                "nombres": {"type": "string"},
                "telefono": {"type": "string"},
                "correoPersonal": {"type": "string"},
                "correoInstitucional": {"type": "string"},
                "curso": {"type": "string"},
                "condicionInstitucional": {"type": "string"},
                "horasPorTurno": {"type": "object", "additionalProperties": {"type": "integer"}}
            },
            "required": ["dni", "apellidos", "nombres", "curso", "condicionInstitucional"]
        },
        "ImportTeachersRequest": {
            "type": "object",
            "properties": {
                "teachers": {"type": "array", "items": {"$ref": "#/definitions/TeacherRequest"}}
            },
            "required": ["teachers"]
        },
        "EvaluationRequest": {
            "type": "object",
            "properties": {
                "teacherId": {"type": "string"},
                "evaluatorId": {"type": "string"},
                "evaluatorName": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "time": {"type": "string"},
                "reflectiveDialogueDate": {"type": "string", "format": "date"},
                "reflectiveDialogueTime": {"type": "string"},
                "evidenceImageUrl": {"type": "string"},
                "evidenceImageBase64": {"type": "string"},
                "performance1": {"type": "string", "enum": ["I", "II", "III", "IV"]},
                "performance2": {"type": "string", "enum": ["I", "II", "III", "IV"]},
                "performance3": {"type": "string", "enum": ["I", "II", "III", "IV"]},
                "performance4": {"type": "string", "enum": ["I", "II", "III", "IV"]},
                "performance5": {"type": "string", "enum": ["I", "II", "III", "IV"]},
                "performance6": {"type": "string", "enum": ["I", "II", "III", "IV"]},
                "observations": {"type": "string"},
                "strengths": {"type": "string"},
                "improvementAreas": {"type": "string"},
                "commitments": {"type": "string"}
            },
            "required": ["teacherId", "evaluatorId", "evaluatorName", "date", "performance1", "performance2", "performance3", "performance4", "performance5", "performance6"]
        },
        "BatchExportRequest": {
            "type": "object",
            "properties": {
                "evaluationIds": {"type": "array", "items": {"type": "string"}},
                "format": {"type": "string", "enum": ["docx", "pdf", "xlsx", "csv"]}
            },
            "required": ["evaluationIds"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
