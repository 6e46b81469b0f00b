package scoring

// QuestionType is the kind of item a question is, as stored in the question bank.
type QuestionType string

const (
	TypeMCQSingle      QuestionType = "mcq_single"
	TypeMCQMulti       QuestionType = "mcq_multi"
	TypeFillBlank      QuestionType = "fill_blank"
	TypeWritingPrompt  QuestionType = "writing_prompt"
	TypeSpeakingPrompt QuestionType = "speaking_prompt"
)

// FreeResponseTypes are never auto-scored and go through manual grading.
var FreeResponseTypes = []QuestionType{TypeWritingPrompt, TypeSpeakingPrompt}

func (t QuestionType) Valid() bool {
	switch t {
	case TypeMCQSingle, TypeMCQMulti, TypeFillBlank, TypeWritingPrompt, TypeSpeakingPrompt:
		return true
	}
	return false
}

func (t QuestionType) IsFreeResponse() bool {
	return t == TypeWritingPrompt || t == TypeSpeakingPrompt
}

// Skill narrows the free-response types for the grading queue.
type Skill string

const (
	SkillWriting  Skill = "writing"
	SkillSpeaking Skill = "speaking"
)

// FreeResponseTypesFor returns the question types graded under the given skill.
// An empty skill means both.
func FreeResponseTypesFor(skill Skill) []QuestionType {
	switch skill {
	case SkillWriting:
		return []QuestionType{TypeWritingPrompt}
	case SkillSpeaking:
		return []QuestionType{TypeSpeakingPrompt}
	default:
		return FreeResponseTypes
	}
}
