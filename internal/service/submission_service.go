package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/aptiscore/internal/apperror"
	"github.com/lshigami/aptiscore/internal/dto"
	"github.com/lshigami/aptiscore/internal/model"
	"github.com/lshigami/aptiscore/internal/repository"
	"github.com/lshigami/aptiscore/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionService drives a learner's submission from in_progress to submitted.
type SubmissionService interface {
	Start(ctx context.Context, userID, setID uint) (*dto.StartSubmissionResponse, error)
	SaveAnswer(ctx context.Context, userID, submissionID uint, req dto.SaveAnswerRequest) (*dto.SaveAnswerResponse, error)
	Submit(ctx context.Context, userID, submissionID uint) (*dto.ResultResponse, error)
	GetSubmission(ctx context.Context, userID, submissionID uint) (*dto.SubmissionDetailResponse, error)
	ListMine(ctx context.Context, userID uint, setID *uint) ([]dto.SubmissionResponse, error)
	// SubmitExpired force-submits timed submissions past their deadline and returns how many it closed.
	SubmitExpired(ctx context.Context) (int, error)
}

type submissionService struct {
	db             *gorm.DB
	setRepo        repository.TestSetRepository
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
	answerRepo     repository.AnswerRepository
	progressRepo   repository.UserProgressRepository
	resultRepo     repository.TestResultRepository
	aggregator     ResultAggregator
	scoreConverter ScoreConverterService
	now            func() time.Time
}

func NewSubmissionService(
	db *gorm.DB,
	setRepo repository.TestSetRepository,
	questionRepo repository.QuestionRepository,
	submissionRepo repository.SubmissionRepository,
	answerRepo repository.AnswerRepository,
	progressRepo repository.UserProgressRepository,
	resultRepo repository.TestResultRepository,
	aggregator ResultAggregator,
	scoreConverter ScoreConverterService,
) SubmissionService {
	return &submissionService{
		db:             db,
		setRepo:        setRepo,
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
		answerRepo:     answerRepo,
		progressRepo:   progressRepo,
		resultRepo:     resultRepo,
		aggregator:     aggregator,
		scoreConverter: scoreConverter,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *submissionService) Start(ctx context.Context, userID, setID uint) (*dto.StartSubmissionResponse, error) {
	if _, err := s.setRepo.FindByID(ctx, setID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("test set %d not found", setID)
		}
		log.Error().Err(err).Uint("setID", setID).Msg("Start: failed to load test set")
		return nil, fmt.Errorf("load test set %d: %w", setID, err)
	}

	submission := model.Submission{
		UserID:    userID,
		SetID:     setID,
		StartTime: s.now(),
		Status:    model.StatusInProgress,
	}
	if err := s.submissionRepo.CreateNextAttempt(ctx, &submission); err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("setID", setID).Msg("Start: failed to create submission")
		return nil, fmt.Errorf("create submission: %w", err)
	}

	log.Info().Uint("submissionID", submission.ID).Uint("userID", userID).Uint("setID", setID).Int("attempt", submission.Attempt).Msg("Submission started")
	return &dto.StartSubmissionResponse{ID: submission.ID, Attempt: submission.Attempt}, nil
}

func (s *submissionService) SaveAnswer(ctx context.Context, userID, submissionID uint, req dto.SaveAnswerRequest) (*dto.SaveAnswerResponse, error) {
	submission, err := s.loadOwned(ctx, userID, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status != model.StatusInProgress {
		return nil, apperror.InvalidState("submission not in progress")
	}

	item, err := s.questionRepo.FindInSet(ctx, submission.SetID, req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("question %d not found in set %d", req.QuestionID, submission.SetID)
		}
		log.Error().Err(err).Uint("submissionID", submissionID).Uint("questionID", req.QuestionID).Msg("SaveAnswer: failed to resolve question")
		return nil, fmt.Errorf("resolve question %d: %w", req.QuestionID, err)
	}

	answer, err := scoring.ParseAnswer(item.Question.Type, req.Answer)
	if err != nil {
		return nil, apperror.Validation("invalid answer for question %d: %v", req.QuestionID, err)
	}
	answerJSON, err := json.Marshal(answer)
	if err != nil {
		return nil, fmt.Errorf("encode answer: %w", err)
	}

	result := scoring.Score(item.Question.Type, json.RawMessage(item.Question.AnswerKey), answer, scoring.ResolveWeight(item.Score))
	if result.Degraded {
		log.Warn().
			Uint("submissionID", submissionID).
			Uint("questionID", req.QuestionID).
			Str("questionType", string(item.Question.Type)).
			Str("reason", result.Reason).
			Msg("ScoringDegradation: answer stored without a score")
	}

	progress := model.UserProgress{
		SubmissionID: submission.ID,
		UserID:       submission.UserID,
		SetID:        submission.SetID,
		QuestionID:   req.QuestionID,
		IsCorrect:    result.IsCorrect,
		TimeSpentSec: intOr(req.TimeSpentSec, 0),
		Attempts:     intOr(req.Attempts, 1),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := model.Answer{
			SubmissionID: submission.ID,
			QuestionID:   req.QuestionID,
			AnswerData:   datatypes.JSON(answerJSON),
			IsCorrect:    result.IsCorrect,
			Score:        result.Score,
		}
		if err := s.answerRepo.WithTx(tx).Upsert(ctx, &row); err != nil {
			return fmt.Errorf("upsert answer: %w", err)
		}
		if err := s.progressRepo.WithTx(tx).Append(ctx, &progress); err != nil {
			return fmt.Errorf("append progress: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("submissionID", submissionID).Uint("questionID", req.QuestionID).Msg("SaveAnswer: transaction failed")
		return nil, err
	}

	return &dto.SaveAnswerResponse{IsCorrect: result.IsCorrect, Score: result.Score}, nil
}

func (s *submissionService) Submit(ctx context.Context, userID, submissionID uint) (*dto.ResultResponse, error) {
	submission, err := s.loadOwned(ctx, userID, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status == model.StatusGraded {
		return nil, apperror.InvalidState("submission %d is already graded", submissionID)
	}
	result, err := s.finalize(ctx, submission)
	if err != nil {
		return nil, err
	}
	log.Info().Uint("submissionID", submissionID).Float64("score", result.Score).Msg("Submission submitted")
	return toResultResponse(result), nil
}

// finalize computes the aggregates and moves the submission to submitted.
// Resubmitting recomputes totals and overwrites submitTime and duration.
func (s *submissionService) finalize(ctx context.Context, submission *model.Submission) (*model.TestResult, error) {
	now := s.now()
	duration := int(now.Sub(submission.StartTime).Seconds())
	if duration < 0 {
		duration = 0
	}

	var result model.TestResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		agg, err := s.aggregator.WithTx(tx).Aggregate(ctx, submission.SetID, submission.ID)
		if err != nil {
			return err
		}
		level, err := s.scoreConverter.ToCEFR(agg.TotalScore, agg.MaxScore)
		if err != nil {
			return fmt.Errorf("convert score: %w", err)
		}

		submission.SubmitTime = &now
		submission.DurationSec = &duration
		submission.AutoScore = agg.AutoScore
		submission.ManualScore = agg.ManualScore
		submission.TotalScore = agg.TotalScore
		submission.Status = model.StatusSubmitted
		err = s.submissionRepo.WithTx(tx).Transition(ctx, submission, model.StatusInProgress, model.StatusSubmitted)
		if errors.Is(err, repository.ErrStatusChanged) {
			return apperror.InvalidState("submission %d is already graded", submission.ID)
		}
		if err != nil {
			return fmt.Errorf("update submission: %w", err)
		}

		result = model.TestResult{
			SubmissionID:   submission.ID,
			UserID:         submission.UserID,
			SetID:          submission.SetID,
			Score:          agg.TotalScore,
			MaxScore:       agg.MaxScore,
			CEFRLevel:      level,
			TotalQuestions: agg.TotalQuestions,
			CorrectAnswers: agg.CorrectAnswers,
			TimeSpentSec:   duration,
			CompletedAt:    now,
		}
		if err := s.resultRepo.WithTx(tx).Upsert(ctx, &result); err != nil {
			return fmt.Errorf("upsert test result: %w", err)
		}
		return nil
	})
	if err != nil {
		if apperror.KindOf(err) != apperror.KindInvalidState {
			log.Error().Err(err).Uint("submissionID", submission.ID).Msg("Submit: transaction failed")
		}
		return nil, err
	}
	return &result, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, userID, submissionID uint) (*dto.SubmissionDetailResponse, error) {
	submission, err := s.loadOwned(ctx, userID, submissionID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.ListBySubmission(ctx, submissionID)
	if err != nil {
		log.Error().Err(err).Uint("submissionID", submissionID).Msg("GetSubmission: failed to load answers")
		return nil, fmt.Errorf("load answers: %w", err)
	}

	resp := &dto.SubmissionDetailResponse{Answers: make([]dto.AnswerResponse, 0, len(answers))}
	if err := copier.Copy(&resp.Submission, submission); err != nil {
		return nil, fmt.Errorf("map submission: %w", err)
	}
	for _, a := range answers {
		resp.Answers = append(resp.Answers, dto.AnswerResponse{
			QuestionID:   a.QuestionID,
			QuestionType: string(a.Question.Type),
			AnswerData:   json.RawMessage(a.AnswerData),
			IsCorrect:    a.IsCorrect,
			Score:        a.Score,
			UpdatedAt:    a.UpdatedAt,
		})
	}
	return resp, nil
}

func (s *submissionService) ListMine(ctx context.Context, userID uint, setID *uint) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissionRepo.ListByUser(ctx, userID, setID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ListMine: failed to list submissions")
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	resp := make([]dto.SubmissionResponse, 0, len(submissions))
	if err := copier.Copy(&resp, &submissions); err != nil {
		return nil, fmt.Errorf("map submissions: %w", err)
	}
	return resp, nil
}

func (s *submissionService) SubmitExpired(ctx context.Context) (int, error) {
	timed, err := s.submissionRepo.ListTimed(ctx)
	if err != nil {
		return 0, fmt.Errorf("list timed submissions: %w", err)
	}
	now := s.now()
	closed := 0
	for i := range timed {
		sub := &timed[i]
		deadline := sub.StartTime.Add(time.Duration(sub.Set.TimeLimitSec) * time.Second)
		if !deadline.Before(now) {
			continue
		}
		if _, err := s.finalize(ctx, sub); err != nil {
			log.Error().Err(err).Uint("submissionID", sub.ID).Msg("SubmitExpired: failed to submit")
			continue
		}
		log.Info().Uint("submissionID", sub.ID).Time("deadline", deadline).Msg("Submission auto-submitted after deadline")
		closed++
	}
	return closed, nil
}

// loadOwned fetches a submission and checks that userID owns it.
func (s *submissionService) loadOwned(ctx context.Context, userID, submissionID uint) (*model.Submission, error) {
	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("submission %d not found", submissionID)
		}
		log.Error().Err(err).Uint("submissionID", submissionID).Msg("failed to load submission")
		return nil, fmt.Errorf("load submission %d: %w", submissionID, err)
	}
	if submission.UserID != userID {
		return nil, apperror.Forbidden("submission %d does not belong to the requesting user", submissionID)
	}
	return submission, nil
}

func toResultResponse(r *model.TestResult) *dto.ResultResponse {
	return &dto.ResultResponse{
		ResultID:       r.ID,
		Score:          r.Score,
		MaxScore:       r.MaxScore,
		CEFRLevel:      r.CEFRLevel,
		TotalQuestions: r.TotalQuestions,
		CorrectAnswers: r.CorrectAnswers,
		TimeSpentSec:   r.TimeSpentSec,
		CompletedAt:    r.CompletedAt,
	}
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
