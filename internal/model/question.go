package model

import (
	"time"

	"github.com/lshigami/aptiscore/internal/scoring"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is a question bank entry. The submission core only reads it.
type Question struct {
	ID        uint                 `gorm:"primarykey" json:"id"`
	Type      scoring.QuestionType `json:"type" gorm:"type:varchar(32);not null;index"`
	Skill     string               `json:"skill" gorm:"type:varchar(32)"` // "reading", "listening", "grammar", "writing", "speaking"
	Title     string               `json:"title" gorm:"not null"`
	Prompt    string               `json:"prompt" gorm:"type:text"`
	Options   datatypes.JSON       `json:"options,omitempty"`
	AnswerKey datatypes.JSON       `json:"-"` // accepted values, e.g. ["B"]
	Points    float64              `json:"points" gorm:"not null;default:1"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	DeletedAt gorm.DeletedAt       `gorm:"index" json:"-"`
}
