package model

import (
	"time"

	"gorm.io/datatypes"
)

// Answer is the latest response to one question within one submission.
// IsCorrect nil means the answer is not automatically gradable.
type Answer struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	SubmissionID uint           `json:"submission_id" gorm:"not null;uniqueIndex:idx_answer_submission_question"`
	QuestionID   uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_answer_submission_question"`
	Question     Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerData   datatypes.JSON `json:"answer_data" gorm:"not null"`
	IsCorrect    *bool          `json:"is_correct"`
	Score        *float64       `json:"score"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
