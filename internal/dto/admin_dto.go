package dto

import "time"

type PendingSubmissionsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=in_progress submitted graded"`
	Skill  string `form:"skill" binding:"omitempty,skill"`
}

// GradeRequest grades one free-response answer. Either ManualScore or Scores must be set;
// without ManualScore the rubric breakdown is summed.
type GradeRequest struct {
	SubmissionID uint               `json:"submissionId" binding:"required"`
	QuestionID   uint               `json:"questionId" binding:"required"`
	ManualScore  *float64           `json:"manualScore" binding:"omitempty,min=0"`
	Comment      string             `json:"comment"`
	RubricID     *uint              `json:"rubricId"`
	Scores       map[string]float64 `json:"scores"`
}

type PendingSubmissionResponse struct {
	SubmissionResponse
	FreeResponseItems int `json:"freeResponseItems"`
	GradedItems       int `json:"gradedItems"`
}

type ManualGradingResponse struct {
	RubricID    *uint              `json:"rubricId,omitempty"`
	ManualScore float64            `json:"manualScore"`
	Scores      map[string]float64 `json:"scores,omitempty"`
	Comment     string             `json:"comment,omitempty"`
	GradedBy    uint               `json:"gradedBy"`
	GradedAt    time.Time          `json:"gradedAt"`
}

// FreeResponseAnswerResponse is one row of the grading screen.
type FreeResponseAnswerResponse struct {
	QuestionID   uint                   `json:"questionId"`
	QuestionType string                 `json:"questionType"`
	Title        string                 `json:"title"`
	Prompt       string                 `json:"prompt"`
	Section      string                 `json:"section,omitempty"`
	Weight       float64                `json:"weight"`
	AnswerData   any                    `json:"answerData"`
	Score        *float64               `json:"score"`
	Grading      *ManualGradingResponse `json:"grading,omitempty"`
}

type GradeResponse struct {
	SubmissionID uint      `json:"submissionId"`
	QuestionID   uint      `json:"questionId"`
	ManualScore  float64   `json:"manualScore"`
	GradedAt     time.Time `json:"gradedAt"`
}

type CompleteGradingResponse struct {
	Message    string  `json:"message"`
	TotalScore float64 `json:"totalScore"`
	ResultResponse
}

type ScoreSuggestionResponse struct {
	QuestionID     uint    `json:"questionId"`
	SuggestedScore float64 `json:"suggestedScore"`
	MaxScore       float64 `json:"maxScore"`
	Feedback       string  `json:"feedback"`
}
