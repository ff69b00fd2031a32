package models

import "fmt"

// EvaluationSummary is the derived score of an evaluation.
type EvaluationSummary struct {
	AverageLevel float64          `json:"averageLevel"`
	Band         PerformanceLevel `json:"band"`
	BandLabel    string           `json:"bandLabel"`
}

// Summarize averages the ordinal values of the six ratings and bands the result.
// The denominator is always six: invalid ratings count as zero.
func Summarize(ratings [PerformanceCount]PerformanceLevel) EvaluationSummary {
	sum := 0
	for _, rating := range ratings {
		sum += rating.Ordinal()
	}
	avg := float64(sum) / PerformanceCount
	band := BandFor(avg)
	return EvaluationSummary{AverageLevel: avg, Band: band, BandLabel: band.Label()}
}

// BandFor maps an average to its band; boundary values belong to the higher band.
func BandFor(avg float64) PerformanceLevel {
	switch {
	case avg >= 3.5:
		return LevelIV
	case avg >= 2.5:
		return LevelIII
	case avg >= 1.5:
		return LevelII
	default:
		return LevelI
	}
}

// AverageText renders the average with two decimals.
func (s EvaluationSummary) AverageText() string {
	return fmt.Sprintf("%.2f", s.AverageLevel)
}

// BandText renders the band as "IV - Destacado".
func (s EvaluationSummary) BandText() string {
	return fmt.Sprintf("%s - %s", s.Band, s.BandLabel)
}
