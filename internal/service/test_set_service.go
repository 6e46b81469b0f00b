package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/aptiscore/internal/apperror"
	"github.com/lshigami/aptiscore/internal/dto"
	"github.com/lshigami/aptiscore/internal/repository"
	"github.com/lshigami/aptiscore/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TestSetService is the learner-facing read side of the question bank.
type TestSetService interface {
	ListSets(ctx context.Context) ([]dto.TestSetSummaryResponse, error)
	GetSet(ctx context.Context, setID uint) (*dto.TestSetResponse, error)
}

type testSetService struct {
	setRepo repository.TestSetRepository
}

func NewTestSetService(setRepo repository.TestSetRepository) TestSetService {
	return &testSetService{setRepo: setRepo}
}

func (s *testSetService) ListSets(ctx context.Context) ([]dto.TestSetSummaryResponse, error) {
	sets, err := s.setRepo.ListWithQuestionCount(ctx)
	if err != nil {
		log.Error().Err(err).Msg("ListSets: failed to list test sets")
		return nil, fmt.Errorf("list test sets: %w", err)
	}

	resp := make([]dto.TestSetSummaryResponse, 0, len(sets))
	for _, set := range sets {
		resp = append(resp, dto.TestSetSummaryResponse{
			ID:            set.ID,
			Title:         set.Title,
			Skill:         set.Skill,
			TimeLimitSec:  set.TimeLimitSec,
			QuestionCount: set.QuestionCount,
		})
	}
	return resp, nil
}

// GetSet returns the set with its questions in order. Answer keys are never exposed.
func (s *testSetService) GetSet(ctx context.Context, setID uint) (*dto.TestSetResponse, error) {
	set, err := s.setRepo.FindByID(ctx, setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("test set %d not found", setID)
		}
		log.Error().Err(err).Uint("setID", setID).Msg("GetSet: failed to load test set")
		return nil, fmt.Errorf("load test set %d: %w", setID, err)
	}
	items, err := s.setRepo.ListItems(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("list set items: %w", err)
	}

	var resp dto.TestSetResponse
	if err := copier.Copy(&resp, set); err != nil {
		return nil, fmt.Errorf("map test set: %w", err)
	}
	resp.Questions = make([]dto.SetQuestionResponse, 0, len(items))
	for _, it := range items {
		if it.Question.ID == 0 {
			continue
		}
		q := dto.SetQuestionResponse{
			QuestionID: it.QuestionID,
			Type:       string(it.Question.Type),
			Skill:      it.Question.Skill,
			Title:      it.Question.Title,
			Prompt:     it.Question.Prompt,
			Section:    it.Section,
			Order:      it.Order,
			Weight:     scoring.ResolveWeight(it.Score),
		}
		if len(it.Question.Options) > 0 {
			q.Options = json.RawMessage(it.Question.Options)
		}
		resp.Questions = append(resp.Questions, q)
	}
	return &resp, nil
}
