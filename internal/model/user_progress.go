package model

import "time"

// UserProgress is an append-only audit row, one per answer-save event.
type UserProgress struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SubmissionID uint      `json:"submission_id" gorm:"not null;index"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	SetID        uint      `json:"set_id" gorm:"not null"`
	QuestionID   uint      `json:"question_id" gorm:"not null"`
	IsCorrect    *bool     `json:"is_correct"`
	TimeSpentSec int       `json:"time_spent_sec"`
	Attempts     int       `json:"attempts"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (UserProgress) TableName() string { return "user_progress" }
