package model

import "time"

// TestResult is the reported summary of a submission, one per submission.
type TestResult struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	SubmissionID   uint      `json:"submission_id" gorm:"not null;uniqueIndex"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	SetID          uint      `json:"set_id" gorm:"not null;index"`
	Score          float64   `json:"score"`
	MaxScore       float64   `json:"max_score"`
	CEFRLevel      string    `json:"cefr_level" gorm:"column:cefr_level;type:varchar(4)"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	TimeSpentSec   int       `json:"time_spent_sec"`
	CompletedAt    time.Time `json:"completed_at"`
}

// All lists every model for AutoMigrate, in dependency order.
func All() []any {
	return []any{
		&Question{},
		&TestSet{},
		&SetQuestion{},
		&Submission{},
		&Answer{},
		&UserProgress{},
		&ManualGrading{},
		&TestResult{},
	}
}
