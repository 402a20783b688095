package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/senseilabs/sensei-bot/internal/audit"
	"github.com/senseilabs/sensei-bot/internal/config"
	"github.com/senseilabs/sensei-bot/internal/history"
	"github.com/senseilabs/sensei-bot/internal/session"
)

// ErrInvalidInput marks a message that has no meaning in the user's current
// phase, e.g. an answer with no quiz running. The user gets a re-prompt and
// no state changes.
var ErrInvalidInput = errors.New("invalid input for current phase")

// resetTextWords: a message this long during a quiz is taken as new study
// material (implicit reset) rather than an answer attempt.
const resetTextWords = 15

// RenderFunc produces the printable document for a quiz bank.
type RenderFunc func(title string, questions []audit.Question) ([]byte, error)

// Controller sequences one user turn through the audit / menu / quiz
// workflow. It holds no per-user state; the session is re-fetched from the
// store on every message.
type Controller struct {
	audits   audit.Service
	sessions session.Repository
	history  history.Service
	render   RenderFunc
}

func NewController(audits audit.Service, sessions session.Repository, hist history.Service, render RenderFunc) *Controller {
	return &Controller{
		audits:   audits,
		sessions: sessions,
		history:  hist,
		render:   render,
	}
}

// HandleMessage processes one inbound message and returns the outbound
// reply. A reply is always returned, even alongside an error, so the
// transport can tell the user what happened.
func (c *Controller) HandleMessage(ctx context.Context, userID int64, text string) (*Reply, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)
	text = strings.TrimSpace(text)

	msgIntent := parseIntent(text)
	switch msgIntent {
	case intentWelcome:
		return textReply(welcomeText), nil
	case intentGreeting:
		return textReply(greetingText), nil
	}

	s, err := c.sessions.Get(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load session")
		return textReply(storeUnavailableText), err
	}

	switch msgIntent {
	case intentStartQuiz:
		return c.startQuiz(ctx, s)
	case intentGetPDF:
		return c.sendPDF(ctx, s)
	case intentStopQuiz:
		return c.stopQuiz(ctx, s)
	case intentHistory:
		return c.listHistory(ctx, userID)
	}

	if s != nil && s.Phase == session.PhaseQuizInProgress && wordCount(text) < resetTextWords {
		return c.answerQuestion(ctx, s, text)
	}

	if wordCount(text) < minStudyWords {
		log.Infof("Re-prompting: message %q has no matching phase", text)
		return textReply(tooShortText), fmt.Errorf("%w: %q", ErrInvalidInput, text)
	}

	return c.runAudit(ctx, userID, text)
}

// runAudit handles new study text: one provider call, then the whole result
// is written as a fresh MENU_PRESENTED session. Any previous session for the
// user is overwritten; on failure nothing is written at all.
func (c *Controller) runAudit(ctx context.Context, userID int64, text string) (*Reply, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	result, err := c.audits.GenerateAudit(ctx, text)
	if err != nil {
		log.WithError(err).Error("Audit failed, session left untouched")
		return textReply(auditFailedText), err
	}

	s := session.NewIdle(userID)
	s.Phase = session.PhaseMenuPresented
	s.Title = result.Title
	s.SourceText = text
	if err := s.SetQuizBank(result.QuizBank); err != nil {
		log.WithError(err).Error("Failed to encode quiz bank")
		return textReply(auditFailedText), err
	}

	if err := c.sessions.Put(ctx, s); err != nil {
		log.WithError(err).Error("Failed to persist new session")
		return textReply(storeUnavailableText), err
	}

	log.Infof("Audit stored: %q", result.Title)
	return &Reply{
		Text:    formatAuditComplete(result),
		Buttons: menuButtons(),
	}, nil
}

func (c *Controller) startQuiz(ctx context.Context, s *session.StudySession) (*Reply, error) {
	if s == nil || len(s.QuizBank) == 0 {
		return textReply(noMaterialsText), fmt.Errorf("%w: no quiz bank to start", ErrInvalidInput)
	}

	questions, err := s.Questions()
	if err != nil {
		return textReply(storeUnavailableText), err
	}

	s.Phase = session.PhaseQuizInProgress
	s.CurrentIndex = 0
	s.Score = 0
	if err := c.sessions.Put(ctx, s); err != nil {
		return textReply(storeUnavailableText), err
	}

	first := questions[0]
	return &Reply{
		Text:    formatQuestion(0, len(questions), first),
		Buttons: questionButtons(first),
	}, nil
}

// sendPDF renders the stored bank. It never touches index or score, so the
// bank stays downloadable in every phase once generated.
func (c *Controller) sendPDF(ctx context.Context, s *session.StudySession) (*Reply, error) {
	log := config.WithContext(ctx)

	if s == nil || len(s.QuizBank) == 0 {
		return textReply(noMaterialsText), fmt.Errorf("%w: no quiz bank to render", ErrInvalidInput)
	}

	questions, err := s.Questions()
	if err != nil {
		return textReply(storeUnavailableText), err
	}

	data, err := c.render(s.Title, questions)
	if err != nil {
		log.WithError(err).Error("Quiz PDF rendering failed")
		return textReply(renderFailedText), err
	}

	name := fmt.Sprintf("SenSei_AI_Quiz_%s.pdf", strings.ReplaceAll(s.Title, " ", "_"))
	return &Reply{
		Text:     "Here is your full 20-question practice PDF!",
		Document: &Document{Name: name, Bytes: data},
	}, nil
}

func (c *Controller) stopQuiz(ctx context.Context, s *session.StudySession) (*Reply, error) {
	if s == nil || s.Phase != session.PhaseQuizInProgress {
		return textReply(noMaterialsText), fmt.Errorf("%w: no quiz in progress", ErrInvalidInput)
	}

	s.Phase = session.PhaseMenuPresented
	if err := c.sessions.Put(ctx, s); err != nil {
		return textReply(storeUnavailableText), err
	}

	return &Reply{
		Text:    quizStoppedText,
		Buttons: menuButtons(),
	}, nil
}

func (c *Controller) answerQuestion(ctx context.Context, s *session.StudySession, text string) (*Reply, error) {
	log := config.WithContext(ctx).WithField("user_id", s.UserID)

	questions, err := s.Questions()
	if err != nil {
		return textReply(storeUnavailableText), err
	}
	if s.CurrentIndex >= len(questions) {
		return textReply(noMaterialsText), fmt.Errorf("%w: no question at index %d", ErrInvalidInput, s.CurrentIndex)
	}

	q := questions[s.CurrentIndex]

	// An unmatched answer counts as wrong and still advances: no retrying
	// the same question.
	correct := matchChoice(text, q) == q.CorrectChoice
	if correct {
		s.Score++
	}
	s.CurrentIndex++
	feedback := formatAnswerFeedback(correct, q)

	if s.CurrentIndex == len(questions) {
		s.Phase = session.PhaseComplete
		if err := c.sessions.Put(ctx, s); err != nil {
			return textReply(storeUnavailableText), err
		}

		// Archiving is best-effort; a history failure never costs the user
		// their final score message.
		if err := c.history.Archive(ctx, s.UserID, s.Title, s.Score, questions); err != nil {
			log.WithError(err).Warn("Failed to archive finished quiz")
		}

		return &Reply{
			Text:    feedback + "\n\n" + formatFinalScore(s.Score, len(questions)),
			Buttons: []Button{{Label: "📚 Download Full Quiz PDF", Data: TokenGetPDF}},
		}, nil
	}

	if err := c.sessions.Put(ctx, s); err != nil {
		return textReply(storeUnavailableText), err
	}

	next := questions[s.CurrentIndex]
	return &Reply{
		Text:    feedback + "\n\n" + formatQuestion(s.CurrentIndex, len(questions), next),
		Buttons: questionButtons(next),
	}, nil
}

func (c *Controller) listHistory(ctx context.Context, userID int64) (*Reply, error) {
	results, err := c.history.ListByUser(ctx, userID, 10)
	if err != nil {
		return textReply(storeUnavailableText), err
	}
	if len(results) == 0 {
		return textReply(noHistoryText), nil
	}
	return textReply(formatHistory(results)), nil
}
