package repository

import (
	"context"

	"github.com/lshigami/aptiscore/internal/model"
	"gorm.io/gorm"
)

// UserProgressRepository is append-only: every save adds a row, nothing is updated.
type UserProgressRepository interface {
	Append(ctx context.Context, progress *model.UserProgress) error
	ListBySubmission(ctx context.Context, submissionID uint) ([]model.UserProgress, error)
	WithTx(tx *gorm.DB) UserProgressRepository
}

type userProgressRepository struct {
	db *gorm.DB
}

func NewUserProgressRepository(db *gorm.DB) UserProgressRepository {
	return &userProgressRepository{db: db}
}

func (r *userProgressRepository) WithTx(tx *gorm.DB) UserProgressRepository {
	return &userProgressRepository{db: tx}
}

func (r *userProgressRepository) Append(ctx context.Context, progress *model.UserProgress) error {
	return r.db.WithContext(ctx).Create(progress).Error
}

func (r *userProgressRepository) ListBySubmission(ctx context.Context, submissionID uint) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).Order("id ASC").Find(&rows).Error
	return rows, err
}
