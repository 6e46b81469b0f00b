package dto

import "encoding/json"

type StartSubmissionRequest struct {
	SetID uint `json:"setId" binding:"required"`
}

// SaveAnswerRequest carries the raw answer; its shape depends on the question type.
type SaveAnswerRequest struct {
	QuestionID   uint            `json:"questionId" binding:"required"`
	Answer       json.RawMessage `json:"answer" swaggertype:"object"`
	TimeSpentSec *int            `json:"timeSpentSec" binding:"omitempty,min=0"`
	Attempts     *int            `json:"attempts" binding:"omitempty,min=1"`
}

type ListSubmissionsQuery struct {
	SetID *uint `form:"setId"`
}

// IssueTokenRequest is only served outside release mode.
type IssueTokenRequest struct {
	UserID uint   `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=learner admin"`
}
