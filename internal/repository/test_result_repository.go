package repository

import (
	"context"

	"github.com/lshigami/aptiscore/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestResultRepository interface {
	// Upsert writes the single result row of a submission.
	Upsert(ctx context.Context, result *model.TestResult) error
	FindBySubmission(ctx context.Context, submissionID uint) (*model.TestResult, error)
	WithTx(tx *gorm.DB) TestResultRepository
}

type testResultRepository struct {
	db *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) TestResultRepository {
	return &testResultRepository{db: db}
}

func (r *testResultRepository) WithTx(tx *gorm.DB) TestResultRepository {
	return &testResultRepository{db: tx}
}

func (r *testResultRepository) Upsert(ctx context.Context, result *model.TestResult) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "submission_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "set_id", "score", "max_score", "cefr_level",
			"total_questions", "correct_answers", "time_spent_sec", "completed_at",
		}),
	}).Create(result).Error
}

func (r *testResultRepository) FindBySubmission(ctx context.Context, submissionID uint) (*model.TestResult, error) {
	var result model.TestResult
	if err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
