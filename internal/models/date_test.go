package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFormatting(t *testing.T) {
	d := NewDate(2024, time.March, 15)
	assert.Equal(t, "2024-03-15", d.String())
	assert.Equal(t, "20240315", d.Compact())
	assert.Equal(t, "15 de marzo de 2024", d.LongSpanish())
	assert.Equal(t, "15 de marzo de 2024 a las 09:30", d.LongSpanishAt("09:30"))
	assert.Equal(t, "15 de marzo de 2024", d.LongSpanishAt(" "))
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Date     Date  `json:"date"`
		Optional *Date `json:"optional"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-12-01","optional":null}`), &payload))
	assert.Equal(t, NewDate(2024, time.December, 1), payload.Date)
	assert.Nil(t, payload.Optional)

	out, err := json.Marshal(payload.Date)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-12-01"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"01/12/2024"}`), &payload))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 5, 2, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-02", d.String())
	require.NoError(t, d.Scan([]byte("2024-06-07T00:00:00Z")))
	assert.Equal(t, "2024-06-07", d.String())
	assert.Error(t, d.Scan(42))
}

func TestShiftHoursTotal(t *testing.T) {
	teacher := Teacher{HorasPorTurno: ShiftHours{"turno 1": 6, "turno 2": 4}, TotalHoras: 99}
	teacher.RecomputeTotalHours()
	assert.Equal(t, 10, teacher.TotalHoras)

	var scanned ShiftHours
	require.NoError(t, scanned.Scan([]byte(`{"turno 3":2}`)))
	assert.Equal(t, 2, scanned.Total())
	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}
