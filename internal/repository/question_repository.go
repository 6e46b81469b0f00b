package repository

import (
	"context"

	"github.com/lshigami/aptiscore/internal/model"
	"gorm.io/gorm"
)

// QuestionRepository reads the question bank through the set composition.
type QuestionRepository interface {
	// FindInSet returns the set placement of a question, with the question preloaded.
	// gorm.ErrRecordNotFound is returned when the question is not part of the set.
	FindInSet(ctx context.Context, setID, questionID uint) (*model.SetQuestion, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindInSet(ctx context.Context, setID, questionID uint) (*model.SetQuestion, error) {
	var item model.SetQuestion
	err := r.db.WithContext(ctx).
		Preload("Question").
		Where("set_id = ? AND question_id = ?", setID, questionID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	if item.Question.ID == 0 { // question soft-deleted from the bank
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}
