package model

import "time"

type SubmissionStatus string

const (
	StatusInProgress SubmissionStatus = "in_progress"
	StatusSubmitted  SubmissionStatus = "submitted"
	StatusGraded     SubmissionStatus = "graded"
)

// Submission is one attempt by one learner at one test set.
type Submission struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	UserID      uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_submission_attempt,priority:1"`
	SetID       uint             `json:"set_id" gorm:"not null;uniqueIndex:idx_submission_attempt,priority:2"`
	Set         TestSet          `json:"-" gorm:"foreignKey:SetID"`
	Attempt     int              `json:"attempt" gorm:"not null;uniqueIndex:idx_submission_attempt,priority:3"`
	StartTime   time.Time        `json:"start_time" gorm:"not null"`
	SubmitTime  *time.Time       `json:"submit_time,omitempty"`
	DurationSec *int             `json:"duration_sec,omitempty"`
	AutoScore   float64          `json:"auto_score" gorm:"not null;default:0"`
	ManualScore float64          `json:"manual_score" gorm:"not null;default:0"`
	TotalScore  float64          `json:"total_score" gorm:"not null;default:0"`
	Status      SubmissionStatus `json:"status" gorm:"type:varchar(16);not null;default:'in_progress';index"`
	Answers     []Answer         `json:"answers,omitempty" gorm:"foreignKey:SubmissionID"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
