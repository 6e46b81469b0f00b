package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/aptiscore/config"
	"github.com/lshigami/aptiscore/internal/model"
	"github.com/lshigami/aptiscore/internal/scoring"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiLLMService suggests a score and feedback for a free-response answer.
// It never writes a score; an admin confirms through grading.
type GeminiLLMService interface {
	Available() bool
	SuggestScore(ctx context.Context, question *model.Question, answer string, maxScore float64) (feedback string, score float64, err error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Score suggestions are disabled.")
		return &geminiLLMService{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{client: client.GenerativeModel(cfg.Gemini.Model)}, nil
}

func (s *geminiLLMService) Available() bool {
	return s.client != nil
}

func (s *geminiLLMService) SuggestScore(ctx context.Context, question *model.Question, answer string, maxScore float64) (string, float64, error) {
	if s.client == nil {
		return "", 0, fmt.Errorf("gemini client not initialized")
	}
	prompt, err := buildAssessmentPrompt(question, answer, maxScore)
	if err != nil {
		return "", 0, err
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("SuggestScore: Gemini API error")
		return "", 0, fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", 0, fmt.Errorf("gemini returned no content")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return parseSuggestion(text.String(), maxScore)
}

func buildAssessmentPrompt(question *model.Question, answer string, maxScore float64) (string, error) {
	var b strings.Builder
	b.WriteString("You are an experienced APTIS examiner.\n")

	switch question.Type {
	case scoring.TypeWritingPrompt:
		b.WriteString("Evaluate the candidate's written response to the task below.\n\n")
		b.WriteString("Criteria:\n")
		b.WriteString("- Task fulfilment: every part of the task is addressed with relevant content.\n")
		b.WriteString("- Grammar: range and accuracy of structures.\n")
		b.WriteString("- Vocabulary: range and precision of word choice, register suited to the task.\n")
		b.WriteString("- Coherence: organisation of ideas and use of linking devices.\n\n")
	case scoring.TypeSpeakingPrompt:
		b.WriteString("Evaluate the transcript of the candidate's spoken response to the task below.\n\n")
		b.WriteString("Criteria:\n")
		b.WriteString("- Task fulfilment: the response answers the question and stays on topic.\n")
		b.WriteString("- Grammar and vocabulary: range and control.\n")
		b.WriteString("- Fluency and coherence as visible in the transcript.\n\n")
	default:
		return "", fmt.Errorf("unsupported question type for suggestion: %s", question.Type)
	}

	b.WriteString("Task:\n---\n")
	if question.Title != "" {
		b.WriteString(question.Title)
		b.WriteString("\n")
	}
	b.WriteString(question.Prompt)
	b.WriteString("\n---\n\nCandidate answer:\n---\n")
	b.WriteString(answer)
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, "Reply strictly in this format:\nScore: <number from 0 to %.1f>\nFeedback:\n<short feedback with concrete corrections>\n", maxScore)
	return b.String(), nil
}

// parseSuggestion reads the "Score:" and "Feedback:" sections and clamps the score to [0, maxScore].
func parseSuggestion(raw string, maxScore float64) (string, float64, error) {
	const scorePrefix, feedbackPrefix = "Score:", "Feedback:"

	scoreIdx := strings.Index(raw, scorePrefix)
	if scoreIdx == -1 {
		return "", 0, fmt.Errorf("response does not contain %q", scorePrefix)
	}
	rest := raw[scoreIdx+len(scorePrefix):]
	line := rest
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		line = rest[:nl]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", 0, fmt.Errorf("empty score in response")
	}
	score, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], ","), 64)
	if err != nil {
		return "", 0, fmt.Errorf("could not parse score value %q: %w", fields[0], err)
	}
	if score < 0 {
		score = 0
	}
	if maxScore > 0 && score > maxScore {
		score = maxScore
	}

	feedback := ""
	if fbIdx := strings.Index(raw, feedbackPrefix); fbIdx > scoreIdx {
		feedback = strings.TrimSpace(raw[fbIdx+len(feedbackPrefix):])
	}
	return feedback, score, nil
}
