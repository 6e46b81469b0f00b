// Package testutil opens throwaway in-memory databases and seeds question-bank fixtures.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/aptiscore/internal/model"
	"github.com/lshigami/aptiscore/internal/scoring"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
// A single connection keeps every query on the same memory database, so a
// transaction must only be used through repositories bound with WithTx.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// CreateQuestion stores a question whose answer key is the JSON encoding of key.
// A nil key leaves the column empty, as for free-response questions.
func CreateQuestion(t testing.TB, db *gorm.DB, qt scoring.QuestionType, key any) model.Question {
	t.Helper()
	q := model.Question{
		Type:   qt,
		Skill:  skillOf(qt),
		Title:  string(qt) + " question",
		Prompt: "prompt",
		Points: 1,
	}
	if key != nil {
		raw, err := json.Marshal(key)
		require.NoError(t, err)
		q.AnswerKey = datatypes.JSON(raw)
	}
	require.NoError(t, db.Create(&q).Error)
	return q
}

// Item places a question in a set with an optional weight override.
type Item struct {
	Question model.Question
	Section  string
	Weight   *float64
}

// CreateSet stores a set and its composition in the order given.
func CreateSet(t testing.TB, db *gorm.DB, timeLimitSec int, items ...Item) model.TestSet {
	t.Helper()
	set := model.TestSet{Title: "Practice set", TimeLimitSec: timeLimitSec}
	require.NoError(t, db.Create(&set).Error)
	for i, it := range items {
		sq := model.SetQuestion{
			SetID:      set.ID,
			QuestionID: it.Question.ID,
			Section:    it.Section,
			Order:      i + 1,
			Score:      it.Weight,
		}
		require.NoError(t, db.Omit("Question").Create(&sq).Error)
	}
	return set
}

func Weight(v float64) *float64 { return &v }

func skillOf(qt scoring.QuestionType) string {
	switch qt {
	case scoring.TypeWritingPrompt:
		return string(scoring.SkillWriting)
	case scoring.TypeSpeakingPrompt:
		return string(scoring.SkillSpeaking)
	default:
		return "reading"
	}
}
