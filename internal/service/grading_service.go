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

// GradingService is the admin side: manual grading of writing and speaking answers and
// the transition into graded.
type GradingService interface {
	ListPending(ctx context.Context, status model.SubmissionStatus, skill scoring.Skill) ([]dto.PendingSubmissionResponse, error)
	ListFreeResponseAnswers(ctx context.Context, submissionID uint) ([]dto.FreeResponseAnswerResponse, error)
	Grade(ctx context.Context, graderID uint, req dto.GradeRequest) (*dto.GradeResponse, error)
	Complete(ctx context.Context, submissionID uint) (*dto.CompleteGradingResponse, error)
	SuggestScore(ctx context.Context, submissionID, questionID uint) (*dto.ScoreSuggestionResponse, error)
}

type gradingService struct {
	db             *gorm.DB
	setRepo        repository.TestSetRepository
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
	answerRepo     repository.AnswerRepository
	gradingRepo    repository.ManualGradingRepository
	resultRepo     repository.TestResultRepository
	aggregator     ResultAggregator
	scoreConverter ScoreConverterService
	llm            GeminiLLMService
	now            func() time.Time
}

func NewGradingService(
	db *gorm.DB,
	setRepo repository.TestSetRepository,
	questionRepo repository.QuestionRepository,
	submissionRepo repository.SubmissionRepository,
	answerRepo repository.AnswerRepository,
	gradingRepo repository.ManualGradingRepository,
	resultRepo repository.TestResultRepository,
	aggregator ResultAggregator,
	scoreConverter ScoreConverterService,
	llm GeminiLLMService,
) GradingService {
	return &gradingService{
		db:             db,
		setRepo:        setRepo,
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
		answerRepo:     answerRepo,
		gradingRepo:    gradingRepo,
		resultRepo:     resultRepo,
		aggregator:     aggregator,
		scoreConverter: scoreConverter,
		llm:            llm,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *gradingService) ListPending(ctx context.Context, status model.SubmissionStatus, skill scoring.Skill) ([]dto.PendingSubmissionResponse, error) {
	if status == "" {
		status = model.StatusSubmitted
	}
	pending, err := s.submissionRepo.ListPendingGrading(ctx, status, scoring.FreeResponseTypesFor(skill))
	if err != nil {
		log.Error().Err(err).Str("status", string(status)).Str("skill", string(skill)).Msg("ListPending: query failed")
		return nil, fmt.Errorf("list pending submissions: %w", err)
	}

	resp := make([]dto.PendingSubmissionResponse, 0, len(pending))
	for _, p := range pending {
		item := dto.PendingSubmissionResponse{
			FreeResponseItems: p.FreeResponseItems,
			GradedItems:       p.GradedItems,
		}
		if err := copier.Copy(&item.SubmissionResponse, &p.Submission); err != nil {
			return nil, fmt.Errorf("map submission: %w", err)
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *gradingService) ListFreeResponseAnswers(ctx context.Context, submissionID uint) ([]dto.FreeResponseAnswerResponse, error) {
	submission, err := s.load(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.ListByTypes(ctx, submissionID, scoring.FreeResponseTypes)
	if err != nil {
		return nil, fmt.Errorf("list free-response answers: %w", err)
	}
	items, err := s.setRepo.ListItems(ctx, submission.SetID)
	if err != nil {
		return nil, fmt.Errorf("list set items: %w", err)
	}
	gradings, err := s.gradingRepo.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list gradings: %w", err)
	}

	placement := make(map[uint]model.SetQuestion, len(items))
	for _, it := range items {
		placement[it.QuestionID] = it
	}
	graded := make(map[uint]model.ManualGrading, len(gradings))
	for _, g := range gradings {
		graded[g.QuestionID] = g
	}

	resp := make([]dto.FreeResponseAnswerResponse, 0, len(answers))
	for _, a := range answers {
		p := placement[a.QuestionID]
		row := dto.FreeResponseAnswerResponse{
			QuestionID:   a.QuestionID,
			QuestionType: string(a.Question.Type),
			Title:        a.Question.Title,
			Prompt:       a.Question.Prompt,
			Section:      p.Section,
			Weight:       scoring.ResolveWeight(p.Score),
			AnswerData:   json.RawMessage(a.AnswerData),
			Score:        a.Score,
		}
		if g, ok := graded[a.QuestionID]; ok {
			row.Grading = toGradingResponse(g)
		}
		resp = append(resp, row)
	}
	return resp, nil
}

func (s *gradingService) Grade(ctx context.Context, graderID uint, req dto.GradeRequest) (*dto.GradeResponse, error) {
	submission, err := s.load(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status == model.StatusInProgress {
		return nil, apperror.InvalidState("submission %d has not been submitted", req.SubmissionID)
	}

	item, err := s.questionRepo.FindInSet(ctx, submission.SetID, req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("question %d not found in set %d", req.QuestionID, submission.SetID)
		}
		return nil, fmt.Errorf("resolve question %d: %w", req.QuestionID, err)
	}
	if !item.Question.Type.IsFreeResponse() {
		return nil, apperror.Validation("question %d is %s and is scored automatically", req.QuestionID, item.Question.Type)
	}
	if _, err := s.answerRepo.FindOne(ctx, req.SubmissionID, req.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("no answer to question %d in submission %d", req.QuestionID, req.SubmissionID)
		}
		return nil, fmt.Errorf("load answer: %w", err)
	}

	score, err := resolveManualScore(req.ManualScore, req.Scores)
	if err != nil {
		return nil, err
	}
	var breakdown datatypes.JSON
	if len(req.Scores) > 0 {
		raw, err := json.Marshal(req.Scores)
		if err != nil {
			return nil, fmt.Errorf("encode rubric scores: %w", err)
		}
		breakdown = datatypes.JSON(raw)
	}

	grading := model.ManualGrading{
		SubmissionID: req.SubmissionID,
		QuestionID:   req.QuestionID,
		RubricID:     req.RubricID,
		ManualScore:  score,
		Scores:       breakdown,
		Comment:      req.Comment,
		GradedBy:     graderID,
		GradedAt:     s.now(),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.gradingRepo.WithTx(tx).Upsert(ctx, &grading); err != nil {
			return fmt.Errorf("upsert manual grading: %w", err)
		}
		if err := s.answerRepo.WithTx(tx).SetScore(ctx, req.SubmissionID, req.QuestionID, score); err != nil {
			return fmt.Errorf("sync answer score: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("submissionID", req.SubmissionID).Uint("questionID", req.QuestionID).Msg("Grade: transaction failed")
		return nil, err
	}

	log.Info().Uint("submissionID", req.SubmissionID).Uint("questionID", req.QuestionID).Uint("gradedBy", graderID).Float64("score", score).Msg("Answer graded")
	return &dto.GradeResponse{
		SubmissionID: req.SubmissionID,
		QuestionID:   req.QuestionID,
		ManualScore:  score,
		GradedAt:     grading.GradedAt,
	}, nil
}

func (s *gradingService) Complete(ctx context.Context, submissionID uint) (*dto.CompleteGradingResponse, error) {
	submission, err := s.load(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status == model.StatusInProgress {
		return nil, apperror.InvalidState("submission %d has not been submitted", submissionID)
	}

	now := s.now()
	var result model.TestResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		agg, err := s.aggregator.WithTx(tx).Aggregate(ctx, submission.SetID, submission.ID)
		if err != nil {
			return err
		}
		level, err := s.scoreConverter.ToCEFR(agg.TotalScore, agg.MaxScore)
		if err != nil {
			return fmt.Errorf("convert score: %w", err)
		}

		submission.Status = model.StatusGraded
		submission.AutoScore = agg.AutoScore
		submission.ManualScore = agg.ManualScore
		submission.TotalScore = agg.TotalScore
		err = s.submissionRepo.WithTx(tx).Transition(ctx, submission, model.StatusSubmitted, model.StatusGraded)
		if errors.Is(err, repository.ErrStatusChanged) {
			return apperror.InvalidState("submission %d has not been submitted", submission.ID)
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
			TimeSpentSec:   intOr(submission.DurationSec, 0),
			CompletedAt:    now,
		}
		if err := s.resultRepo.WithTx(tx).Upsert(ctx, &result); err != nil {
			return fmt.Errorf("upsert test result: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("submissionID", submissionID).Msg("Complete: transaction failed")
		return nil, err
	}

	log.Info().Uint("submissionID", submissionID).Float64("totalScore", result.Score).Str("cefr", result.CEFRLevel).Msg("Grading completed")
	return &dto.CompleteGradingResponse{
		Message:        "grading completed",
		TotalScore:     result.Score,
		ResultResponse: *toResultResponse(&result),
	}, nil
}

func (s *gradingService) SuggestScore(ctx context.Context, submissionID, questionID uint) (*dto.ScoreSuggestionResponse, error) {
	if !s.llm.Available() {
		return nil, apperror.Unavailable("score suggestions are not configured")
	}
	submission, err := s.load(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	item, err := s.questionRepo.FindInSet(ctx, submission.SetID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("question %d not found in set %d", questionID, submission.SetID)
		}
		return nil, fmt.Errorf("resolve question %d: %w", questionID, err)
	}
	if !item.Question.Type.IsFreeResponse() {
		return nil, apperror.Validation("question %d is %s and is scored automatically", questionID, item.Question.Type)
	}
	answer, err := s.answerRepo.FindOne(ctx, submissionID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("no answer to question %d in submission %d", questionID, submissionID)
		}
		return nil, fmt.Errorf("load answer: %w", err)
	}

	var data scoring.AnswerData
	if err := json.Unmarshal(answer.AnswerData, &data); err != nil {
		return nil, fmt.Errorf("decode stored answer: %w", err)
	}
	weight := scoring.ResolveWeight(item.Score)
	feedback, score, err := s.llm.SuggestScore(ctx, &item.Question, data.Plain(), weight)
	if err != nil {
		log.Error().Err(err).Uint("submissionID", submissionID).Uint("questionID", questionID).Msg("SuggestScore: assessment failed")
		return nil, fmt.Errorf("suggest score: %w", err)
	}
	return &dto.ScoreSuggestionResponse{
		QuestionID:     questionID,
		SuggestedScore: score,
		MaxScore:       weight,
		Feedback:       feedback,
	}, nil
}

func (s *gradingService) load(ctx context.Context, submissionID uint) (*model.Submission, error) {
	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("submission %d not found", submissionID)
		}
		log.Error().Err(err).Uint("submissionID", submissionID).Msg("failed to load submission")
		return nil, fmt.Errorf("load submission %d: %w", submissionID, err)
	}
	return submission, nil
}

// resolveManualScore prefers an explicit score and otherwise sums the rubric breakdown,
// counting negative criteria as zero.
func resolveManualScore(manual *float64, breakdown map[string]float64) (float64, error) {
	if manual != nil {
		if *manual < 0 {
			return 0, apperror.Validation("manualScore must be >= 0")
		}
		return *manual, nil
	}
	if len(breakdown) == 0 {
		return 0, apperror.Validation("either manualScore or scores is required")
	}
	total := 0.0
	for _, v := range breakdown {
		if v > 0 {
			total += v
		}
	}
	return total, nil
}

func toGradingResponse(g model.ManualGrading) *dto.ManualGradingResponse {
	resp := &dto.ManualGradingResponse{
		RubricID:    g.RubricID,
		ManualScore: g.ManualScore,
		Comment:     g.Comment,
		GradedBy:    g.GradedBy,
		GradedAt:    g.GradedAt,
	}
	if len(g.Scores) > 0 {
		var scores map[string]float64
		if err := json.Unmarshal(g.Scores, &scores); err == nil {
			resp.Scores = scores
		}
	}
	return resp
}
