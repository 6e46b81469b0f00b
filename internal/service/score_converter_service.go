package service

import (
	"fmt"
	"math"
)

// CEFR bands reported on a result, lowest first.
const (
	CEFRA0 = "A0"
	CEFRA1 = "A1"
	CEFRA2 = "A2"
	CEFRB1 = "B1"
	CEFRB2 = "B2"
	CEFRC  = "C"
)

// cefrBand is the lower bound, as a fraction of the maximum score, of a band.
type cefrBand struct {
	minRatio float64
	level    string
}

// Checked highest first.
var cefrBands = []cefrBand{
	{0.90, CEFRC},
	{0.75, CEFRB2},
	{0.55, CEFRB1},
	{0.35, CEFRA2},
	{0.15, CEFRA1},
	{0, CEFRA0},
}

type ScoreConverterService interface {
	// ToCEFR maps a raw total against the set maximum to a CEFR band.
	ToCEFR(total, maxScore float64) (string, error)
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

func (s *scoreConverterServiceImpl) ToCEFR(total, maxScore float64) (string, error) {
	if maxScore <= 0 {
		return CEFRA0, nil
	}
	if total < 0 || math.IsNaN(total) {
		return "", fmt.Errorf("raw score %.2f is out of valid range (0-%.2f)", total, maxScore)
	}
	// Manual scores are not capped at the weight, so the ratio may exceed 1.
	ratio := math.Min(total/maxScore, 1)
	for _, b := range cefrBands {
		if ratio >= b.minRatio {
			return b.level, nil
		}
	}
	return CEFRA0, nil
}
