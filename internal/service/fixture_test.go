package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/lshigami/aptiscore/internal/dto"
	"github.com/lshigami/aptiscore/internal/model"
	"github.com/lshigami/aptiscore/internal/repository"
	"github.com/lshigami/aptiscore/internal/scoring"
	"github.com/lshigami/aptiscore/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	learnerID = uint(7)
	otherID   = uint(8)
	adminID   = uint(1)
)

type fixture struct {
	t           *testing.T
	ctx         context.Context
	db          *gorm.DB
	clock       time.Time
	submissions *submissionService
	grading     *gradingService
	llm         *fakeLLM
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	setRepo := repository.NewTestSetRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	progressRepo := repository.NewUserProgressRepository(db)
	gradingRepo := repository.NewManualGradingRepository(db)
	resultRepo := repository.NewTestResultRepository(db)
	aggregator := NewResultAggregator(setRepo, answerRepo)
	converter := NewScoreConverterService()
	llm := &fakeLLM{}

	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		db:    db,
		clock: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		llm:   llm,
	}
	f.submissions = NewSubmissionService(db, setRepo, questionRepo, submissionRepo, answerRepo, progressRepo, resultRepo, aggregator, converter).(*submissionService)
	f.grading = NewGradingService(db, setRepo, questionRepo, submissionRepo, answerRepo, gradingRepo, resultRepo, aggregator, converter, llm).(*gradingService)
	f.submissions.now = func() time.Time { return f.clock }
	f.grading.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func (f *fixture) start(userID, setID uint) uint {
	f.t.Helper()
	resp, err := f.submissions.Start(f.ctx, userID, setID)
	require.NoError(f.t, err)
	return resp.ID
}

func (f *fixture) save(userID, submissionID, questionID uint, answer string) *dto.SaveAnswerResponse {
	f.t.Helper()
	resp, err := f.submissions.SaveAnswer(f.ctx, userID, submissionID, dto.SaveAnswerRequest{
		QuestionID: questionID,
		Answer:     json.RawMessage(answer),
	})
	require.NoError(f.t, err)
	return resp
}

func (f *fixture) submission(id uint) model.Submission {
	f.t.Helper()
	var s model.Submission
	require.NoError(f.t, f.db.First(&s, id).Error)
	return s
}

func (f *fixture) answers(submissionID uint) []model.Answer {
	f.t.Helper()
	var rows []model.Answer
	require.NoError(f.t, f.db.Where("submission_id = ?", submissionID).Order("question_id").Find(&rows).Error)
	return rows
}

func (f *fixture) count(m any, query string, args ...any) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}

// scenarioSet is one reading MCQ (key B, default weight) and one writing task weighted 5.
func (f *fixture) scenarioSet() (model.TestSet, model.Question, model.Question) {
	mcq := testutil.CreateQuestion(f.t, f.db, scoring.TypeMCQSingle, []string{"B"})
	writing := testutil.CreateQuestion(f.t, f.db, scoring.TypeWritingPrompt, nil)
	set := testutil.CreateSet(f.t, f.db, 0,
		testutil.Item{Question: mcq, Section: "reading"},
		testutil.Item{Question: writing, Section: "writing", Weight: testutil.Weight(5)},
	)
	return set, mcq, writing
}

type fakeLLM struct {
	available bool
	score     float64
	feedback  string
	err       error

	gotAnswer   string
	gotMaxScore float64
}

func (f *fakeLLM) Available() bool { return f.available }

func (f *fakeLLM) SuggestScore(_ context.Context, _ *model.Question, answer string, maxScore float64) (string, float64, error) {
	f.gotAnswer = answer
	f.gotMaxScore = maxScore
	return f.feedback, f.score, f.err
}
