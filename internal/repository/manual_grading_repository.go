package repository

import (
	"context"

	"github.com/lshigami/aptiscore/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ManualGradingRepository interface {
	Upsert(ctx context.Context, grading *model.ManualGrading) error
	ListBySubmission(ctx context.Context, submissionID uint) ([]model.ManualGrading, error)
	WithTx(tx *gorm.DB) ManualGradingRepository
}

type manualGradingRepository struct {
	db *gorm.DB
}

func NewManualGradingRepository(db *gorm.DB) ManualGradingRepository {
	return &manualGradingRepository{db: db}
}

func (r *manualGradingRepository) WithTx(tx *gorm.DB) ManualGradingRepository {
	return &manualGradingRepository{db: tx}
}

func (r *manualGradingRepository) Upsert(ctx context.Context, grading *model.ManualGrading) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rubric_id", "manual_score", "scores", "comment", "graded_by", "graded_at"}),
	}).Create(grading).Error
}

func (r *manualGradingRepository) ListBySubmission(ctx context.Context, submissionID uint) ([]model.ManualGrading, error) {
	var gradings []model.ManualGrading
	err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).Find(&gradings).Error
	return gradings, err
}
