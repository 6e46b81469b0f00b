package model

import (
	"time"

	"gorm.io/datatypes"
)

// ManualGrading is the source of truth for a free-response score. Answer.Score
// mirrors ManualScore.
type ManualGrading struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	SubmissionID uint           `json:"submission_id" gorm:"not null;uniqueIndex:idx_grading_submission_question"`
	QuestionID   uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_grading_submission_question"`
	RubricID     *uint          `json:"rubric_id,omitempty"`
	ManualScore  float64        `json:"manual_score" gorm:"not null"`
	Scores       datatypes.JSON `json:"scores,omitempty"`
	Comment      string         `json:"comment,omitempty" gorm:"type:text"`
	GradedBy     uint           `json:"graded_by" gorm:"not null"`
	GradedAt     time.Time      `json:"graded_at" gorm:"not null"`
}
