package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/senseilabs/sensei-bot/internal/config"
)

// ErrProvider covers upstream failures and malformed model output. Either a
// fully valid Result comes back, or an error wrapping this sentinel.
var ErrProvider = errors.New("audit provider failed")

type Service interface {
	GenerateAudit(ctx context.Context, text string) (*Result, error)
}

type service struct {
	provider Provider
	timeout  time.Duration
}

func NewService(provider Provider, timeout time.Duration) Service {
	return &service{
		provider: provider,
		timeout:  timeout,
	}
}

func (s *service) GenerateAudit(ctx context.Context, text string) (*Result, error) {
	log := config.WithContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.GenerateAudit(ctx, systemPrompt, BuildUserPrompt(text))
	if err != nil {
		log.WithError(err).Error("Audit call failed")
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	result, err := buildResult(raw)
	if err != nil {
		log.WithError(err).Error("Audit response has invalid shape")
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	log.Infof("Audit complete: %q, %d concepts, %d questions",
		result.Title, len(result.Concepts), len(result.QuizBank))
	return result, nil
}

// buildResult validates the raw model output against the audit contract and
// converts it into the immutable Result form.
func buildResult(raw *RawAudit) (*Result, error) {
	if raw.Title == "" {
		return nil, fmt.Errorf("missing title")
	}
	if len(raw.CoreConcepts) != NumConcepts {
		return nil, fmt.Errorf("expected %d core concepts, got %d", NumConcepts, len(raw.CoreConcepts))
	}
	for i, concept := range raw.CoreConcepts {
		if concept == "" {
			return nil, fmt.Errorf("core concept %d is empty", i)
		}
	}
	if len(raw.QuizBank) != NumQuestions {
		return nil, fmt.Errorf("expected %d questions, got %d", NumQuestions, len(raw.QuizBank))
	}

	questions := make([]Question, 0, NumQuestions)
	for i, rq := range raw.QuizBank {
		q, err := buildQuestion(rq)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}

	return &Result{
		Title:    raw.Title,
		Answer:   raw.EducationalAnswer,
		Concepts: raw.CoreConcepts,
		QuizBank: questions,
	}, nil
}

func buildQuestion(rq RawQuestion) (Question, error) {
	if rq.QuestionText == "" {
		return Question{}, fmt.Errorf("empty question text")
	}
	if len(rq.Options) != NumChoices {
		return Question{}, fmt.Errorf("expected %d options, got %d", NumChoices, len(rq.Options))
	}

	seen := make(map[string]struct{}, NumChoices)
	correct := -1
	for i, option := range rq.Options {
		if option == "" {
			return Question{}, fmt.Errorf("option %d is empty", i)
		}
		if _, dup := seen[option]; dup {
			return Question{}, fmt.Errorf("duplicate option: %q", option)
		}
		seen[option] = struct{}{}
		if option == rq.CorrectAnswer {
			correct = i
		}
	}
	if correct < 0 {
		return Question{}, fmt.Errorf("correct answer %q matches no option", rq.CorrectAnswer)
	}

	return Question{
		ID:            uuid.New().String(),
		Prompt:        rq.QuestionText,
		Choices:       rq.Options,
		CorrectChoice: correct,
	}, nil
}
