package repository

import (
	"context"
	"errors"

	"github.com/lshigami/aptiscore/internal/model"
	"github.com/lshigami/aptiscore/internal/scoring"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxAttemptRetries bounds the retries when two starts race for the same attempt number.
const maxAttemptRetries = 3

// ErrStatusChanged reports that a guarded transition found the row in a status it may not leave.
var ErrStatusChanged = errors.New("submission status changed concurrently")

// PendingSubmission is a submission with its free-response grading progress.
type PendingSubmission struct {
	model.Submission
	FreeResponseItems int
	GradedItems       int
}

type SubmissionRepository interface {
	// CreateNextAttempt assigns max(attempt)+1 for the (user, set) pair and inserts the row.
	CreateNextAttempt(ctx context.Context, submission *model.Submission) error
	FindByID(ctx context.Context, id uint) (*model.Submission, error)
	// Transition writes the status, timings and scores only while the stored status is one of from.
	Transition(ctx context.Context, submission *model.Submission, from ...model.SubmissionStatus) error
	ListByUser(ctx context.Context, userID uint, setID *uint) ([]model.Submission, error)
	ListPendingGrading(ctx context.Context, status model.SubmissionStatus, types []scoring.QuestionType) ([]PendingSubmission, error)
	// ListTimed returns in-progress submissions whose set carries a time limit, with the set preloaded.
	ListTimed(ctx context.Context) ([]model.Submission, error)
	WithTx(tx *gorm.DB) SubmissionRepository
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) WithTx(tx *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: tx}
}

func (r *submissionRepository) CreateNextAttempt(ctx context.Context, submission *model.Submission) error {
	var err error
	for i := 0; i < maxAttemptRetries; i++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var last int
			if err := tx.Model(&model.Submission{}).
				Select("COALESCE(MAX(attempt), 0)").
				Where("user_id = ? AND set_id = ?", submission.UserID, submission.SetID).
				Scan(&last).Error; err != nil {
				return err
			}
			submission.Attempt = last + 1
			return tx.Omit(clause.Associations).Create(submission).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		submission.ID = 0
	}
	return err
}

func (r *submissionRepository) FindByID(ctx context.Context, id uint) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) Transition(ctx context.Context, submission *model.Submission, from ...model.SubmissionStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Submission{}).
		Where("id = ? AND status IN ?", submission.ID, from).
		Updates(map[string]any{
			"status":       submission.Status,
			"submit_time":  submission.SubmitTime,
			"duration_sec": submission.DurationSec,
			"auto_score":   submission.AutoScore,
			"manual_score": submission.ManualScore,
			"total_score":  submission.TotalScore,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *submissionRepository) ListByUser(ctx context.Context, userID uint, setID *uint) ([]model.Submission, error) {
	var submissions []model.Submission
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if setID != nil {
		q = q.Where("set_id = ?", *setID)
	}
	err := q.Order("set_id ASC, attempt DESC").Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) ListPendingGrading(ctx context.Context, status model.SubmissionStatus, types []scoring.QuestionType) ([]PendingSubmission, error) {
	var counts []struct {
		SubmissionID      uint
		FreeResponseItems int
		GradedItems       int
	}
	err := r.db.WithContext(ctx).Table("answers").
		Select("answers.submission_id, COUNT(answers.id) AS free_response_items, COUNT(manual_gradings.id) AS graded_items").
		Joins("JOIN submissions ON submissions.id = answers.submission_id").
		Joins("JOIN questions ON questions.id = answers.question_id").
		Joins("LEFT JOIN manual_gradings ON manual_gradings.submission_id = answers.submission_id AND manual_gradings.question_id = answers.question_id").
		Where("submissions.status = ? AND questions.type IN ?", status, types).
		Group("answers.submission_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return []PendingSubmission{}, nil
	}

	ids := make([]uint, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.SubmissionID)
	}
	var submissions []model.Submission
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("submit_time ASC, id ASC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]int, len(counts))
	for i, c := range counts {
		byID[c.SubmissionID] = i
	}
	pending := make([]PendingSubmission, 0, len(submissions))
	for _, s := range submissions {
		c := counts[byID[s.ID]]
		pending = append(pending, PendingSubmission{
			Submission:        s,
			FreeResponseItems: c.FreeResponseItems,
			GradedItems:       c.GradedItems,
		})
	}
	return pending, nil
}

func (r *submissionRepository) ListTimed(ctx context.Context) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Set").
		Joins("JOIN test_sets ON test_sets.id = submissions.set_id").
		Where("submissions.status = ? AND test_sets.time_limit_sec > 0", model.StatusInProgress).
		Find(&submissions).Error
	return submissions, err
}
