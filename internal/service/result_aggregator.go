package service

import (
	"context"
	"fmt"

	"github.com/lshigami/aptiscore/internal/repository"
	"gorm.io/gorm"
)

// Aggregate holds the counts and sums written on Submit and Complete.
type Aggregate struct {
	TotalQuestions int
	CorrectAnswers int
	TotalScore     float64
	AutoScore      float64
	ManualScore    float64
	MaxScore       float64
}

// ResultAggregator is the single place that counts a submission. Submit and Complete both go
// through it so the two paths never disagree.
type ResultAggregator interface {
	Aggregate(ctx context.Context, setID, submissionID uint) (Aggregate, error)
	WithTx(tx *gorm.DB) ResultAggregator
}

type resultAggregator struct {
	setRepo    repository.TestSetRepository
	answerRepo repository.AnswerRepository
}

func NewResultAggregator(setRepo repository.TestSetRepository, answerRepo repository.AnswerRepository) ResultAggregator {
	return &resultAggregator{setRepo: setRepo, answerRepo: answerRepo}
}

func (a *resultAggregator) WithTx(tx *gorm.DB) ResultAggregator {
	return &resultAggregator{setRepo: a.setRepo.WithTx(tx), answerRepo: a.answerRepo.WithTx(tx)}
}

func (a *resultAggregator) Aggregate(ctx context.Context, setID, submissionID uint) (Aggregate, error) {
	totalQuestions, err := a.setRepo.CountQuestions(ctx, setID)
	if err != nil {
		return Aggregate{}, fmt.Errorf("count questions of set %d: %w", setID, err)
	}
	maxScore, err := a.setRepo.MaxScore(ctx, setID)
	if err != nil {
		return Aggregate{}, fmt.Errorf("max score of set %d: %w", setID, err)
	}
	totals, err := a.answerRepo.Totals(ctx, submissionID)
	if err != nil {
		return Aggregate{}, fmt.Errorf("answer totals of submission %d: %w", submissionID, err)
	}
	return Aggregate{
		TotalQuestions: totalQuestions,
		CorrectAnswers: totals.CorrectAnswers,
		TotalScore:     totals.TotalScore,
		AutoScore:      totals.TotalScore - totals.ManualScore,
		ManualScore:    totals.ManualScore,
		MaxScore:       maxScore,
	}, nil
}
