package pdf_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/senseilabs/sensei-bot/internal/audit"
	"github.com/senseilabs/sensei-bot/internal/pdf"
)

func testQuestions(n int) []audit.Question {
	questions := make([]audit.Question, n)
	for i := range questions {
		questions[i] = audit.Question{
			ID:     fmt.Sprintf("q-%d", i+1),
			Prompt: fmt.Sprintf("What does concept %d describe in the source material?", i+1),
			Choices: []string{
				fmt.Sprintf("A plausible but wrong answer %d", i+1),
				fmt.Sprintf("The correct answer for question %d", i+1),
				fmt.Sprintf("Another distractor for question %d", i+1),
				fmt.Sprintf("A final distractor for question %d", i+1),
			},
			CorrectChoice: 1,
		}
	}
	return questions
}

func TestRenderQuizDocument(t *testing.T) {
	t.Run("FullBank", func(t *testing.T) {
		data, err := pdf.RenderQuizDocument("Paging", testQuestions(audit.NumQuestions))
		if err != nil {
			t.Fatalf("RenderQuizDocument failed: %v", err)
		}
		if len(data) == 0 {
			t.Fatal("rendered document is empty")
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Error("output does not look like a PDF")
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		questions := testQuestions(audit.NumQuestions)

		first, err := pdf.RenderQuizDocument("Paging", questions)
		if err != nil {
			t.Fatalf("first render failed: %v", err)
		}
		second, err := pdf.RenderQuizDocument("Paging", questions)
		if err != nil {
			t.Fatalf("second render failed: %v", err)
		}

		if !bytes.Equal(first, second) {
			t.Error("rendering the same bank twice produced different bytes")
		}
	})

	t.Run("WrongQuestionCount", func(t *testing.T) {
		_, err := pdf.RenderQuizDocument("Paging", testQuestions(5))
		if !errors.Is(err, pdf.ErrRender) {
			t.Errorf("expected ErrRender for a short bank, got %v", err)
		}
	})

	t.Run("EmptyBank", func(t *testing.T) {
		_, err := pdf.RenderQuizDocument("Paging", nil)
		if !errors.Is(err, pdf.ErrRender) {
			t.Errorf("expected ErrRender for an empty bank, got %v", err)
		}
	})
}
