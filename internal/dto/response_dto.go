package dto

import "time"

type StartSubmissionResponse struct {
	ID      uint `json:"id"`
	Attempt int  `json:"attempt"`
}

// SaveAnswerResponse reports the immediate autoscore; both fields are null for free-response items.
type SaveAnswerResponse struct {
	IsCorrect *bool    `json:"isCorrect"`
	Score     *float64 `json:"score"`
}

// ResultResponse summarises a TestResult row.
type ResultResponse struct {
	ResultID       uint      `json:"resultId"`
	Score          float64   `json:"score"`
	MaxScore       float64   `json:"maxScore"`
	CEFRLevel      string    `json:"cefrLevel"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	TimeSpentSec   int       `json:"timeSpentSec"`
	CompletedAt    time.Time `json:"completedAt"`
}

type SubmissionResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"userId"`
	SetID       uint       `json:"setId"`
	Attempt     int        `json:"attempt"`
	StartTime   time.Time  `json:"startTime"`
	SubmitTime  *time.Time `json:"submitTime"`
	DurationSec *int       `json:"durationSec"`
	AutoScore   float64    `json:"autoScore"`
	ManualScore float64    `json:"manualScore"`
	TotalScore  float64    `json:"totalScore"`
	Status      string     `json:"status"`
}

type AnswerResponse struct {
	QuestionID   uint      `json:"questionId"`
	QuestionType string    `json:"questionType"`
	AnswerData   any       `json:"answerData"`
	IsCorrect    *bool     `json:"isCorrect"`
	Score        *float64  `json:"score"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SubmissionDetailResponse struct {
	Submission SubmissionResponse `json:"submission"`
	Answers    []AnswerResponse   `json:"answers"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type TestSetSummaryResponse struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Skill         string `json:"skill,omitempty"`
	TimeLimitSec  int    `json:"timeLimitSec"`
	QuestionCount int    `json:"questionCount"`
}

type SetQuestionResponse struct {
	QuestionID uint    `json:"questionId"`
	Type       string  `json:"type"`
	Skill      string  `json:"skill,omitempty"`
	Title      string  `json:"title"`
	Prompt     string  `json:"prompt"`
	Options    any     `json:"options,omitempty"`
	Section    string  `json:"section,omitempty"`
	Order      int     `json:"order"`
	Weight     float64 `json:"weight"`
}

type TestSetResponse struct {
	ID           uint                  `json:"id"`
	Title        string                `json:"title"`
	Skill        string                `json:"skill,omitempty"`
	TimeLimitSec int                   `json:"timeLimitSec"`
	Questions    []SetQuestionResponse `json:"questions"`
}
