package audit_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/senseilabs/sensei-bot/internal/audit"
)

type fakeProvider struct {
	raw *audit.RawAudit
	err error
}

func (f *fakeProvider) GenerateAudit(ctx context.Context, system, user string) (*audit.RawAudit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func validRawAudit() *audit.RawAudit {
	raw := &audit.RawAudit{
		Title:             "Paging",
		EducationalAnswer: "Paging is a memory management scheme.",
		CoreConcepts:      []string{"page", "frame", "page table", "TLB", "page fault"},
	}
	for i := 0; i < audit.NumQuestions; i++ {
		raw.QuizBank = append(raw.QuizBank, audit.RawQuestion{
			QuestionText: fmt.Sprintf("Question %d?", i+1),
			Options: []string{
				fmt.Sprintf("Answer %d-A", i+1),
				fmt.Sprintf("Answer %d-B", i+1),
				fmt.Sprintf("Answer %d-C", i+1),
				fmt.Sprintf("Answer %d-D", i+1),
			},
			CorrectAnswer: fmt.Sprintf("Answer %d-C", i+1),
		})
	}
	return raw
}

func newService(raw *audit.RawAudit, err error) audit.Service {
	return audit.NewService(&fakeProvider{raw: raw, err: err}, time.Second)
}

func TestGenerateAudit(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidResponse", func(t *testing.T) {
		result, err := newService(validRawAudit(), nil).GenerateAudit(ctx, "paging notes")
		if err != nil {
			t.Fatalf("GenerateAudit failed: %v", err)
		}

		if result.Title != "Paging" {
			t.Errorf("unexpected title: %q", result.Title)
		}
		if len(result.Concepts) != audit.NumConcepts {
			t.Errorf("expected %d concepts, got %d", audit.NumConcepts, len(result.Concepts))
		}
		if len(result.QuizBank) != audit.NumQuestions {
			t.Fatalf("expected %d questions, got %d", audit.NumQuestions, len(result.QuizBank))
		}
		for i, q := range result.QuizBank {
			if q.ID == "" {
				t.Errorf("question %d has no ID", i)
			}
			if len(q.Choices) != audit.NumChoices {
				t.Errorf("question %d has %d choices", i, len(q.Choices))
			}
			if q.CorrectChoice != 2 {
				t.Errorf("question %d: expected correct choice 2, got %d", i, q.CorrectChoice)
			}
		}
	})

	t.Run("ProviderFailure", func(t *testing.T) {
		_, err := newService(nil, errors.New("upstream timeout")).GenerateAudit(ctx, "text")
		if !errors.Is(err, audit.ErrProvider) {
			t.Errorf("expected ErrProvider, got %v", err)
		}
	})

	t.Run("TooFewQuestions", func(t *testing.T) {
		raw := validRawAudit()
		raw.QuizBank = raw.QuizBank[:audit.NumQuestions-1]

		_, err := newService(raw, nil).GenerateAudit(ctx, "text")
		if !errors.Is(err, audit.ErrProvider) {
			t.Errorf("expected ErrProvider for short quiz bank, got %v", err)
		}
	})

	t.Run("TooFewConcepts", func(t *testing.T) {
		raw := validRawAudit()
		raw.CoreConcepts = raw.CoreConcepts[:3]

		_, err := newService(raw, nil).GenerateAudit(ctx, "text")
		if !errors.Is(err, audit.ErrProvider) {
			t.Errorf("expected ErrProvider for short concept list, got %v", err)
		}
	})

	t.Run("WrongChoiceCount", func(t *testing.T) {
		raw := validRawAudit()
		raw.QuizBank[7].Options = raw.QuizBank[7].Options[:3]

		_, err := newService(raw, nil).GenerateAudit(ctx, "text")
		if !errors.Is(err, audit.ErrProvider) {
			t.Errorf("expected ErrProvider for 3 options, got %v", err)
		}
	})

	t.Run("DuplicateChoices", func(t *testing.T) {
		raw := validRawAudit()
		raw.QuizBank[3].Options[1] = raw.QuizBank[3].Options[0]

		_, err := newService(raw, nil).GenerateAudit(ctx, "text")
		if !errors.Is(err, audit.ErrProvider) {
			t.Errorf("expected ErrProvider for duplicate options, got %v", err)
		}
	})

	t.Run("CorrectAnswerNotAnOption", func(t *testing.T) {
		raw := validRawAudit()
		raw.QuizBank[12].CorrectAnswer = "none of the above"

		_, err := newService(raw, nil).GenerateAudit(ctx, "text")
		if !errors.Is(err, audit.ErrProvider) {
			t.Errorf("expected ErrProvider for unmatched correct answer, got %v", err)
		}
	})
}
