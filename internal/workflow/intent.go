package workflow

import (
	"strings"

	"github.com/senseilabs/sensei-bot/internal/audit"
)

// Callback tokens carried in inline-keyboard buttons. Typed keywords map to
// the same intents so the bot also works without buttons.
const (
	TokenStartQuiz = "START_QUIZ"
	TokenGetPDF    = "GET_PDF"
	TokenStopQuiz  = "STOP_QUIZ"
	TokenHistory   = "MY_RESULTS"
)

type intent int

const (
	intentText intent = iota
	intentWelcome
	intentGreeting
	intentStartQuiz
	intentGetPDF
	intentStopQuiz
	intentHistory
)

// minStudyWords is the shortest input accepted as study material; anything
// shorter that is not a recognized token gets a re-prompt instead of an
// audit call.
const minStudyWords = 4

var greetings = map[string]bool{
	"hi":    true,
	"hello": true,
	"hey":   true,
	"hlo":   true,
}

func parseIntent(text string) intent {
	normalized := strings.ToUpper(strings.TrimSpace(text))

	switch normalized {
	case "/START":
		return intentWelcome
	case TokenStartQuiz, "/QUIZ", "QUIZ", "PRACTICE", "MORE QUESTIONS", "NEXT QUESTION":
		return intentStartQuiz
	case TokenGetPDF, "/PDF", "PDF", "DOWNLOAD PDF":
		return intentGetPDF
	case TokenStopQuiz, "/STOP", "STOP":
		return intentStopQuiz
	case TokenHistory, "/RESULTS", "MY RESULTS", "HISTORY":
		return intentHistory
	}

	if greetings[strings.ToLower(strings.TrimSpace(text))] {
		return intentGreeting
	}
	return intentText
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// matchChoice maps an answer message to a choice index: a single letter A-D,
// or the full choice text. Returns -1 when nothing matches.
func matchChoice(text string, q audit.Question) int {
	answer := strings.TrimSpace(text)

	if len(answer) == 1 {
		letter := strings.ToUpper(answer)[0]
		if letter >= 'A' && letter < 'A'+byte(len(q.Choices)) {
			return int(letter - 'A')
		}
	}

	for i, choice := range q.Choices {
		if strings.EqualFold(answer, choice) {
			return i
		}
	}
	return -1
}
