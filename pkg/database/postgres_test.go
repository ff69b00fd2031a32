package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/teacher-evaluation-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "app", Password: "secret", Name: "evaluacion_docente", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5433 user=app password=secret dbname=evaluacion_docente sslmode=disable", dsn)
}
