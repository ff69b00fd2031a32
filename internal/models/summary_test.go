package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ratings(levels ...PerformanceLevel) [PerformanceCount]PerformanceLevel {
	var out [PerformanceCount]PerformanceLevel
	copy(out[:], levels)
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		input   [PerformanceCount]PerformanceLevel
		average float64
		band    PerformanceLevel
		label   string
	}{
		{"all IV", ratings(LevelIV, LevelIV, LevelIV, LevelIV, LevelIV, LevelIV), 4.0, LevelIV, "Destacado"},
		{"all I", ratings(LevelI, LevelI, LevelI, LevelI, LevelI, LevelI), 1.0, LevelI, "Inicio"},
		{"mixed", ratings(LevelIV, LevelIV, LevelIII, LevelIII, LevelII, LevelII), 3.0, LevelIII, "Satisfactorio"},
		{"invalid counts as zero", ratings(LevelIV, "X", LevelIV, "", LevelIV, LevelIV), 16.0 / 6, LevelIII, "Satisfactorio"},
		{"all invalid", ratings(), 0, LevelI, "Inicio"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			summary := Summarize(tc.input)
			assert.InDelta(t, tc.average, summary.AverageLevel, 1e-9)
			assert.Equal(t, tc.band, summary.Band)
			assert.Equal(t, tc.label, summary.BandLabel)
		})
	}
}

func TestBandForBoundaries(t *testing.T) {
	assert.Equal(t, LevelI, BandFor(1.49))
	assert.Equal(t, LevelII, BandFor(1.5))
	assert.Equal(t, LevelII, BandFor(2.49))
	assert.Equal(t, LevelIII, BandFor(2.5))
	assert.Equal(t, LevelIII, BandFor(3.49))
	assert.Equal(t, LevelIV, BandFor(3.5))
	assert.Equal(t, LevelIV, BandFor(4))
}

func TestSummarizeStaysInRange(t *testing.T) {
	options := []PerformanceLevel{LevelI, LevelII, LevelIII, LevelIV, "bogus"}
	for _, a := range options {
		for _, b := range options {
			summary := Summarize(ratings(a, b, a, b, a, b))
			expected := float64(3*a.Ordinal()+3*b.Ordinal()) / 6
			assert.InDelta(t, expected, summary.AverageLevel, 1e-9)
			assert.GreaterOrEqual(t, summary.AverageLevel, 0.0)
			assert.LessOrEqual(t, summary.AverageLevel, 4.0)
		}
	}
}

func TestSummaryText(t *testing.T) {
	summary := Summarize(ratings(LevelIV, LevelIV, LevelIV, LevelIV, LevelIV, LevelIII))
	assert.Equal(t, "3.83", summary.AverageText())
	assert.Equal(t, "IV - Destacado", summary.BandText())
}

func TestEvaluationSummaryUsesSlots(t *testing.T) {
	eval := TeacherEvaluation{
		Performance1: LevelIV, Performance2: LevelIII, Performance3: LevelII,
		Performance4: LevelI, Performance5: LevelIV, Performance6: LevelIII,
	}
	assert.Equal(t, LevelII, eval.Rating(SlotFormativeAssessment))
	assert.Equal(t, PerformanceLevel(""), eval.Rating(PerformanceSlot(7)))
	assert.InDelta(t, 17.0/6, eval.Summary().AverageLevel, 1e-9)
	assert.Equal(t, "performance4", SlotRespectfulClimate.Key())
}
