package model

import (
	"time"

	"gorm.io/gorm"
)

type TestSet struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `json:"title" gorm:"not null"`
	Skill        string         `json:"skill,omitempty"`
	TimeLimitSec int            `json:"time_limit_sec" gorm:"not null;default:0"` // 0 = untimed
	Questions    []SetQuestion  `json:"questions,omitempty" gorm:"foreignKey:SetID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// SetQuestion places a bank question into a test set. Score overrides the weight
// used by the autoscorer; nil falls back to the default weight.
type SetQuestion struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	SetID      uint     `json:"set_id" gorm:"not null;uniqueIndex:idx_set_question"`
	QuestionID uint     `json:"question_id" gorm:"not null;uniqueIndex:idx_set_question"`
	Question   Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Section    string   `json:"section,omitempty"`
	Order      int      `json:"order" gorm:"column:order_in_set;not null;default:0"`
	Score      *float64 `json:"score,omitempty"`
}
