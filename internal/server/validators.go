package server

import (
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/aptiscore/internal/scoring"
)

// validateSkill accepts the skills that have manually graded question types.
func validateSkill(fl validator.FieldLevel) bool {
	switch scoring.Skill(fl.Field().String()) {
	case scoring.SkillWriting, scoring.SkillSpeaking:
		return true
	}
	return false
}
