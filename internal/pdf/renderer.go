package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/senseilabs/sensei-bot/internal/audit"
)

// ErrRender marks PDF generation failures. The quiz bank itself is never
// touched by rendering, so callers can still present it as text.
var ErrRender = errors.New("pdf rendering failed")

const (
	margin     = 72.0
	lineHeight = 16.0
)

var optionLabels = [audit.NumChoices]string{"A", "B", "C", "D"}

// RenderQuizDocument produces a printable document for a full quiz bank.
// The output is deterministic: the same bank always yields the same bytes.
func RenderQuizDocument(title string, questions []audit.Question) ([]byte, error) {
	if len(questions) != audit.NumQuestions {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", ErrRender, audit.NumQuestions, len(questions))
	}

	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetCreationDate(time.Unix(0, 0))
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, 0)

	pageWidth, pageHeight := doc.GetPageSize()
	contentWidth := pageWidth - 2*margin

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 18)
	doc.MultiCell(contentWidth, lineHeight, fmt.Sprintf("SenSei AI Quiz: %s", title), "", "L", false)
	doc.Ln(lineHeight)

	for i, q := range questions {
		// One question plus its options must not straddle the bottom margin.
		needed := lineHeight * float64(2+len(q.Choices))
		if doc.GetY()+needed > pageHeight-margin {
			doc.AddPage()
			doc.SetFont("Helvetica", "B", 18)
			doc.MultiCell(contentWidth, lineHeight, fmt.Sprintf("%s (cont.)", title), "", "L", false)
			doc.Ln(lineHeight)
		}

		doc.SetFont("Helvetica", "B", 10)
		doc.MultiCell(contentWidth, lineHeight, fmt.Sprintf("%d. %s", i+1, q.Prompt), "", "L", false)

		doc.SetFont("Helvetica", "", 9)
		for j, option := range q.Choices {
			doc.SetX(margin + 10)
			doc.MultiCell(contentWidth-10, lineHeight, fmt.Sprintf("%s. %s", optionLabels[j%len(optionLabels)], option), "", "L", false)
		}
		doc.Ln(lineHeight / 2)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
