package workflow

import (
	"fmt"
	"strings"

	"github.com/senseilabs/sensei-bot/internal/audit"
	"github.com/senseilabs/sensei-bot/internal/history"
)

const (
	welcomeText = "🎉 Welcome to SenSei AI! 🎉\n\n" +
		"I am your study buddy. Send me any text from your lecture notes, " +
		"book or article, or ask a question, and I will run a full academic " +
		"audit and generate study materials."

	greetingText = "Hello! I'm SenSei AI. Send me notes or ask a specific question to get started."

	tooShortText = "I need more text. Please send your full notes or article, " +
		"or ask a detailed question (e.g. \"What is paging and segmentation?\")."

	noMaterialsText = "I don't have study materials for you yet. Please send " +
		"the notes or article you want to analyze first."

	auditFailedText = "🛑 SenSei AI could not generate study materials from " +
		"that text. Please check it and send it again."

	storeUnavailableText = "Something went wrong saving your progress. " +
		"Nothing was lost on your side; please try again in a moment."

	renderFailedText = "The PDF could not be generated right now. Your quiz " +
		"is still available; try again or start the practice quiz."

	quizStoppedText = "🛑 Practice quiz stopped. Your study materials are " +
		"still available."

	noHistoryText = "No finished quizzes yet. Complete a practice quiz and " +
		"your score will show up here."
)

func menuButtons() []Button {
	return []Button{
		{Label: "🧠 Start Practice Quiz (20 Qs)", Data: TokenStartQuiz},
		{Label: "📚 Download Full Quiz PDF", Data: TokenGetPDF},
	}
}

func questionButtons(q audit.Question) []Button {
	buttons := make([]Button, 0, len(q.Choices)+1)
	for i, choice := range q.Choices {
		label := fmt.Sprintf("%c. %s", 'A'+i, choice)
		buttons = append(buttons, Button{Label: label, Data: string(rune('A' + i))})
	}
	buttons = append(buttons, Button{Label: "🛑 Stop Practice Quiz", Data: TokenStopQuiz})
	return buttons
}

func formatAuditComplete(result *audit.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "✅ AUDIT COMPLETE: %s\n\n", result.Title)
	if result.Answer != "" {
		fmt.Fprintf(&sb, "💡 %s\n\n", result.Answer)
	}
	fmt.Fprintf(&sb, "🎯 Core Concepts:\n— %s\n\n", strings.Join(result.Concepts, ", "))
	fmt.Fprintf(&sb, "Your study materials are ready! (%d questions generated)", len(result.QuizBank))

	return sb.String()
}

func formatQuestion(index, total int, q audit.Question) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "❓ Question %d/%d:\n%s\n\n", index+1, total, q.Prompt)
	for i, choice := range q.Choices {
		fmt.Fprintf(&sb, "%c. %s\n", 'A'+i, choice)
	}

	return sb.String()
}

func formatAnswerFeedback(correct bool, q audit.Question) string {
	if correct {
		return "🎯 Correct!"
	}
	return fmt.Sprintf("❌ Incorrect. The answer was: %s", q.Choices[q.CorrectChoice])
}

func formatFinalScore(score, total int) string {
	return fmt.Sprintf("🏁 Practice quiz finished!\n\n📊 Your score: %d/%d\n\n"+
		"Send new notes anytime to start another audit.", score, total)
}

func formatHistory(results []*history.QuizResult) string {
	var sb strings.Builder

	sb.WriteString("🏆 Your recent quizzes:\n\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "• %s — %d/%d (%s)\n",
			r.Title, r.Score, r.TotalQuestions, r.CompletedAt.Format("02 Jan 2006"))
	}

	return sb.String()
}
