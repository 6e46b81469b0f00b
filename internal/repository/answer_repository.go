package repository

import (
	"context"

	"github.com/lshigami/aptiscore/internal/model"
	"github.com/lshigami/aptiscore/internal/scoring"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnswerTotals is the SQL-side aggregation over a submission's answers.
type AnswerTotals struct {
	CorrectAnswers int
	TotalScore     float64
	ManualScore    float64
}

type AnswerRepository interface {
	// Upsert keeps one row per (submission, question); a later save overwrites the earlier one.
	Upsert(ctx context.Context, answer *model.Answer) error
	FindOne(ctx context.Context, submissionID, questionID uint) (*model.Answer, error)
	ListBySubmission(ctx context.Context, submissionID uint) ([]model.Answer, error)
	ListByTypes(ctx context.Context, submissionID uint, types []scoring.QuestionType) ([]model.Answer, error)
	SetScore(ctx context.Context, submissionID, questionID uint, score float64) error
	Totals(ctx context.Context, submissionID uint) (AnswerTotals, error)
	WithTx(tx *gorm.DB) AnswerRepository
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) WithTx(tx *gorm.DB) AnswerRepository {
	return &answerRepository{db: tx}
}

func (r *answerRepository) Upsert(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "submission_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"answer_data", "is_correct", "score", "updated_at"}),
		}).
		Create(answer).Error
}

func (r *answerRepository) FindOne(ctx context.Context, submissionID, questionID uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.WithContext(ctx).
		Preload("Question").
		Where("submission_id = ? AND question_id = ?", submissionID, questionID).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) ListBySubmission(ctx context.Context, submissionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).
		Preload("Question").
		Where("submission_id = ?", submissionID).
		Order("question_id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) ListByTypes(ctx context.Context, submissionID uint, types []scoring.QuestionType) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).
		Preload("Question").
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("answers.submission_id = ? AND questions.type IN ?", submissionID, types).
		Order("answers.question_id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) SetScore(ctx context.Context, submissionID, questionID uint, score float64) error {
	res := r.db.WithContext(ctx).Model(&model.Answer{}).
		Where("submission_id = ? AND question_id = ?", submissionID, questionID).
		Update("score", score)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *answerRepository) Totals(ctx context.Context, submissionID uint) (AnswerTotals, error) {
	var row struct {
		CorrectAnswers int
		TotalScore     float64
		ManualScore    float64
	}
	err := r.db.WithContext(ctx).Model(&model.Answer{}).
		Select(
			"COALESCE(SUM(CASE WHEN answers.is_correct = ? THEN 1 ELSE 0 END), 0) AS correct_answers, "+
				"COALESCE(SUM(answers.score), 0) AS total_score, "+
				"COALESCE(SUM(CASE WHEN questions.type IN ? THEN answers.score ELSE 0 END), 0) AS manual_score",
			true, scoring.FreeResponseTypes,
		).
		Joins("LEFT JOIN questions ON questions.id = answers.question_id").
		Where("answers.submission_id = ?", submissionID).
		Scan(&row).Error
	if err != nil {
		return AnswerTotals{}, err
	}
	return AnswerTotals{
		CorrectAnswers: row.CorrectAnswers,
		TotalScore:     row.TotalScore,
		ManualScore:    row.ManualScore,
	}, nil
}
