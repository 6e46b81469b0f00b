package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lshigami/aptiscore/internal/apperror"
	"github.com/lshigami/aptiscore/internal/dto"
	"github.com/lshigami/aptiscore/internal/model"
	"github.com/lshigami/aptiscore/internal/scoring"
	"github.com/lshigami/aptiscore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_AttemptNumbersIncreasePerUserAndSet(t *testing.T) {
	f := newFixture(t)
	set, _, _ := f.scenarioSet()
	other := testutil.CreateSet(t, f.db, 0)

	var attempts []int
	for i := 0; i < 3; i++ {
		resp, err := f.submissions.Start(f.ctx, learnerID, set.ID)
		require.NoError(t, err)
		attempts = append(attempts, resp.Attempt)
	}
	assert.Equal(t, []int{1, 2, 3}, attempts)

	resp, err := f.submissions.Start(f.ctx, otherID, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Attempt, "attempts are counted per user")

	resp, err = f.submissions.Start(f.ctx, learnerID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Attempt, "attempts are counted per set")

	s := f.submission(resp.ID)
	assert.Equal(t, model.StatusInProgress, s.Status)
	assert.True(t, s.StartTime.Equal(f.clock))
}

func TestStart_UnknownSet(t *testing.T) {
	f := newFixture(t)

	_, err := f.submissions.Start(f.ctx, learnerID, 404)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Zero(t, f.count(&model.Submission{}, "1 = 1"))
}

func TestSaveAnswer_LatestAnswerWinsAndProgressGrows(t *testing.T) {
	f := newFixture(t)
	set, mcq, _ := f.scenarioSet()
	id := f.start(learnerID, set.ID)

	first := f.save(learnerID, id, mcq.ID, `"A"`)
	require.NotNil(t, first.IsCorrect)
	assert.False(t, *first.IsCorrect)
	assert.Equal(t, 0.0, *first.Score)

	second := f.save(learnerID, id, mcq.ID, `["b"]`)
	require.NotNil(t, second.IsCorrect)
	assert.True(t, *second.IsCorrect)
	assert.Equal(t, 1.0, *second.Score)

	rows := f.answers(id)
	require.Len(t, rows, 1)
	assert.True(t, *rows[0].IsCorrect)
	assert.Equal(t, 1.0, *rows[0].Score)

	var stored scoring.AnswerData
	require.NoError(t, json.Unmarshal(rows[0].AnswerData, &stored))
	assert.Equal(t, scoring.Choice("b"), stored)

	var progress []model.UserProgress
	require.NoError(t, f.db.Where("submission_id = ?", id).Order("id").Find(&progress).Error)
	require.Len(t, progress, 2)
	assert.False(t, *progress[0].IsCorrect)
	assert.True(t, *progress[1].IsCorrect)
	assert.Equal(t, learnerID, progress[1].UserID)
	assert.Equal(t, set.ID, progress[1].SetID)
}

func TestSaveAnswer_RecordsTimingMeta(t *testing.T) {
	f := newFixture(t)
	set, mcq, _ := f.scenarioSet()
	id := f.start(learnerID, set.ID)

	spent, tries := 42, 3
	_, err := f.submissions.SaveAnswer(f.ctx, learnerID, id, dto.SaveAnswerRequest{
		QuestionID:   mcq.ID,
		Answer:       json.RawMessage(`"B"`),
		TimeSpentSec: &spent,
		Attempts:     &tries,
	})
	require.NoError(t, err)

	var p model.UserProgress
	require.NoError(t, f.db.Where("submission_id = ?", id).First(&p).Error)
	assert.Equal(t, 42, p.TimeSpentSec)
	assert.Equal(t, 3, p.Attempts)
}

func TestSaveAnswer_UsesSetWeightOverride(t *testing.T) {
	f := newFixture(t)
	multi := testutil.CreateQuestion(t, f.db, scoring.TypeMCQMulti, []string{"A", "C"})
	blank := testutil.CreateQuestion(t, f.db, scoring.TypeFillBlank, []string{"went", "had gone"})
	set := testutil.CreateSet(t, f.db, 0,
		testutil.Item{Question: multi, Weight: testutil.Weight(2.5)},
		testutil.Item{Question: blank},
	)
	id := f.start(learnerID, set.ID)

	resp := f.save(learnerID, id, multi.ID, `["c", " a "]`)
	assert.True(t, *resp.IsCorrect)
	assert.Equal(t, 2.5, *resp.Score)

	resp = f.save(learnerID, id, blank.ID, `"Had Gone"`)
	assert.True(t, *resp.IsCorrect)
	assert.Equal(t, 1.0, *resp.Score)
}

func TestSaveAnswer_FreeResponseIsNotScored(t *testing.T) {
	f := newFixture(t)
	set, _, writing := f.scenarioSet()
	id := f.start(learnerID, set.ID)

	resp := f.save(learnerID, id, writing.ID, `"Dear Sam, thanks for your letter."`)
	assert.Nil(t, resp.IsCorrect)
	assert.Nil(t, resp.Score)

	rows := f.answers(id)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].IsCorrect)
	assert.Nil(t, rows[0].Score)
}

func TestSaveAnswer_MalformedKeyDegradesToNull(t *testing.T) {
	f := newFixture(t)
	broken := testutil.CreateQuestion(t, f.db, scoring.TypeMCQSingle, map[string]string{"answer": "B"})
	set := testutil.CreateSet(t, f.db, 0, testutil.Item{Question: broken})
	id := f.start(learnerID, set.ID)

	resp := f.save(learnerID, id, broken.ID, `"B"`)
	assert.Nil(t, resp.IsCorrect)
	assert.Nil(t, resp.Score)
	assert.Len(t, f.answers(id), 1, "the answer is still stored")
}

func TestSaveAnswer_Preconditions(t *testing.T) {
	f := newFixture(t)
	set, mcq, _ := f.scenarioSet()
	unrelated := testutil.CreateQuestion(t, f.db, scoring.TypeMCQSingle, []string{"A"})
	id := f.start(learnerID, set.ID)
	submitted := f.start(learnerID, set.ID)
	_, err := f.submissions.Submit(f.ctx, learnerID, submitted)
	require.NoError(t, err)

	tests := []struct {
		name         string
		userID       uint
		submissionID uint
		questionID   uint
		answer       string
		want         error
	}{
		{"other user", otherID, id, mcq.ID, `"B"`, apperror.ErrForbidden},
		{"unknown submission", learnerID, 9999, mcq.ID, `"B"`, apperror.ErrNotFound},
		{"not in progress", learnerID, submitted, mcq.ID, `"B"`, apperror.ErrInvalidState},
		{"question outside set", learnerID, id, unrelated.ID, `"A"`, apperror.ErrNotFound},
		{"null answer", learnerID, id, mcq.ID, `null`, apperror.ErrValidation},
		{"object answer", learnerID, id, mcq.ID, `{"x":1}`, apperror.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.submissions.SaveAnswer(f.ctx, tt.userID, tt.submissionID, dto.SaveAnswerRequest{
				QuestionID: tt.questionID,
				Answer:     json.RawMessage(tt.answer),
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Zero(t, f.count(&model.Answer{}, "1 = 1"), "failed saves must not write answers")
	assert.Zero(t, f.count(&model.UserProgress{}, "1 = 1"), "failed saves must not write progress")
}

func TestSaveAnswer_ForbiddenBeforeInvalidState(t *testing.T) {
	f := newFixture(t)
	set, mcq, _ := f.scenarioSet()
	id := f.start(learnerID, set.ID)
	_, err := f.submissions.Submit(f.ctx, learnerID, id)
	require.NoError(t, err)

	_, err = f.submissions.SaveAnswer(f.ctx, otherID, id, dto.SaveAnswerRequest{QuestionID: mcq.ID, Answer: json.RawMessage(`"B"`)})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestSubmit_ComputesAggregates(t *testing.T) {
	f := newFixture(t)
	set, mcq, writing := f.scenarioSet()
	id := f.start(learnerID, set.ID)
	f.save(learnerID, id, mcq.ID, `["B"]`)
	f.save(learnerID, id, writing.ID, `"An essay about travel."`)
	f.advance(90 * time.Second)

	res, err := f.submissions.Submit(f.ctx, learnerID, id)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Score)
	assert.Equal(t, 6.0, res.MaxScore)
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Equal(t, 90, res.TimeSpentSec)
	assert.Equal(t, CEFRA1, res.CEFRLevel)

	s := f.submission(id)
	assert.Equal(t, model.StatusSubmitted, s.Status)
	assert.Equal(t, 1.0, s.AutoScore)
	assert.Equal(t, 1.0, s.TotalScore)
	require.NotNil(t, s.SubmitTime)
	assert.True(t, s.SubmitTime.Equal(f.clock))
	require.NotNil(t, s.DurationSec)
	assert.Equal(t, 90, *s.DurationSec)

	var result model.TestResult
	require.NoError(t, f.db.Where("submission_id = ?", id).First(&result).Error)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
}

func TestSubmit_EmptySubmissionScoresZero(t *testing.T) {
	f := newFixture(t)
	set, _, _ := f.scenarioSet()
	id := f.start(learnerID, set.ID)

	res, err := f.submissions.Submit(f.ctx, learnerID, id)
	require.NoError(t, err)
	assert.Zero(t, res.Score)
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Zero(t, res.CorrectAnswers)
	assert.Equal(t, CEFRA0, res.CEFRLevel)
}

func TestSubmit_ResubmitRecomputesWithoutDuplicatingResult(t *testing.T) {
	f := newFixture(t)
	set, mcq, _ := f.scenarioSet()
	id := f.start(learnerID, set.ID)
	f.save(learnerID, id, mcq.ID, `"B"`)

	_, err := f.submissions.Submit(f.ctx, learnerID, id)
	require.NoError(t, err)
	f.advance(time.Minute)
	res, err := f.submissions.Submit(f.ctx, learnerID, id)
	require.NoError(t, err)

	assert.Equal(t, 60, res.TimeSpentSec)
	assert.Equal(t, int64(1), f.count(&model.TestResult{}, "submission_id = ?", id))
	s := f.submission(id)
	assert.Equal(t, model.StatusSubmitted, s.Status)
	assert.Equal(t, 60, *s.DurationSec)
}

func TestSubmit_Rejections(t *testing.T) {
	f := newFixture(t)
	set, _, _ := f.scenarioSet()
	id := f.start(learnerID, set.ID)

	_, err := f.submissions.Submit(f.ctx, otherID, id)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Equal(t, model.StatusInProgress, f.submission(id).Status)

	_, err = f.submissions.Submit(f.ctx, learnerID, 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.submissions.Submit(f.ctx, learnerID, id)
	require.NoError(t, err)
	_, err = f.grading.Complete(f.ctx, id)
	require.NoError(t, err)

	_, err = f.submissions.Submit(f.ctx, learnerID, id)
	assert.ErrorIs(t, err, apperror.ErrInvalidState, "a graded submission cannot go back to submitted")
	assert.Equal(t, model.StatusGraded, f.submission(id).Status)
}

func TestGetSubmission(t *testing.T) {
	f := newFixture(t)
	set, mcq, writing := f.scenarioSet()
	id := f.start(learnerID, set.ID)
	f.save(learnerID, id, mcq.ID, `"B"`)
	f.save(learnerID, id, writing.ID, `"text"`)

	resp, err := f.submissions.GetSubmission(f.ctx, learnerID, id)
	require.NoError(t, err)
	assert.Equal(t, id, resp.Submission.ID)
	assert.Equal(t, string(model.StatusInProgress), resp.Submission.Status)
	assert.Equal(t, 1, resp.Submission.Attempt)
	require.Len(t, resp.Answers, 2)
	assert.Equal(t, string(scoring.TypeMCQSingle), resp.Answers[0].QuestionType)
	assert.JSONEq(t, `{"type":"mcq_single","value":"B"}`, string(resp.Answers[0].AnswerData.(json.RawMessage)))
	assert.Nil(t, resp.Answers[1].Score)

	_, err = f.submissions.GetSubmission(f.ctx, otherID, id)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestListMine(t *testing.T) {
	f := newFixture(t)
	set, _, _ := f.scenarioSet()
	other := testutil.CreateSet(t, f.db, 0)
	f.start(learnerID, set.ID)
	f.start(learnerID, set.ID)
	f.start(learnerID, other.ID)
	f.start(otherID, set.ID)

	all, err := f.submissions.ListMine(f.ctx, learnerID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	setID := set.ID
	mine, err := f.submissions.ListMine(f.ctx, learnerID, &setID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, 2, mine[0].Attempt, "latest attempt first")
	assert.Equal(t, 1, mine[1].Attempt)
	for _, s := range mine {
		assert.Equal(t, learnerID, s.UserID)
	}
}

func TestSubmitExpired(t *testing.T) {
	f := newFixture(t)
	mcq := testutil.CreateQuestion(t, f.db, scoring.TypeMCQSingle, []string{"B"})
	timed := testutil.CreateSet(t, f.db, 60, testutil.Item{Question: mcq})
	untimed := testutil.CreateSet(t, f.db, 0, testutil.Item{Question: mcq})

	expired := f.start(learnerID, timed.ID)
	f.save(learnerID, expired, mcq.ID, `"B"`)
	open := f.start(learnerID, untimed.ID)
	f.advance(45 * time.Second)
	fresh := f.start(otherID, timed.ID)
	f.advance(30 * time.Second)

	n, err := f.submissions.SubmitExpired(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	s := f.submission(expired)
	assert.Equal(t, model.StatusSubmitted, s.Status)
	assert.Equal(t, 1.0, s.TotalScore)
	assert.Equal(t, 75, *s.DurationSec)
	assert.Equal(t, model.StatusInProgress, f.submission(open).Status)
	assert.Equal(t, model.StatusInProgress, f.submission(fresh).Status)

	n, err = f.submissions.SubmitExpired(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "already submitted submissions are not swept again")
}
