package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/senseilabs/sensei-bot/internal/audit"
	"gorm.io/datatypes"
)

// Phase is the position of a user's session within the study workflow.
type Phase string

const (
	PhaseIdle           Phase = "IDLE"
	PhaseMenuPresented  Phase = "MENU_PRESENTED"
	PhaseQuizInProgress Phase = "QUIZ_IN_PROGRESS"
	PhaseComplete       Phase = "COMPLETE"
)

var AllPhases = []Phase{
	PhaseIdle,
	PhaseMenuPresented,
	PhaseQuizInProgress,
	PhaseComplete,
}

func (p Phase) IsValid() bool {
	for _, v := range AllPhases {
		if p == v {
			return true
		}
	}
	return false
}

// StudySession is the single persisted record per user: where they are in
// the workflow, the quiz bank generated from their text, and their progress
// through it. The Telegram chat ID is the primary key.
type StudySession struct {
	UserID       int64          `gorm:"primaryKey" json:"user_id"`
	Phase        Phase          `gorm:"type:text;not null" json:"phase"`
	Title        string         `gorm:"type:text" json:"title"`
	SourceText   string         `gorm:"type:text" json:"source_text"`
	QuizBank     datatypes.JSON `gorm:"type:jsonb" json:"quiz_bank,omitempty"`
	CurrentIndex int            `gorm:"not null;default:0" json:"current_index"`
	Score        int            `gorm:"not null;default:0" json:"score"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewIdle returns a fresh session with no quiz bank.
func NewIdle(userID int64) *StudySession {
	return &StudySession{
		UserID: userID,
		Phase:  PhaseIdle,
	}
}

// SetQuizBank stores the generated questions in the JSON column.
func (s *StudySession) SetQuizBank(questions []audit.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz bank: %w", err)
	}
	s.QuizBank = datatypes.JSON(data)
	return nil
}

// Questions decodes the stored quiz bank. An empty column yields nil.
func (s *StudySession) Questions() ([]audit.Question, error) {
	if len(s.QuizBank) == 0 {
		return nil, nil
	}
	var questions []audit.Question
	if err := json.Unmarshal(s.QuizBank, &questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz bank: %w", err)
	}
	return questions, nil
}

// Validate checks the session invariants: a known phase, a quiz bank only
// outside IDLE, and index/score within the bank's bounds.
func (s *StudySession) Validate() error {
	if !s.Phase.IsValid() {
		return fmt.Errorf("invalid phase: %q", s.Phase)
	}

	questions, err := s.Questions()
	if err != nil {
		return err
	}

	if s.Phase == PhaseIdle && len(questions) != 0 {
		return fmt.Errorf("idle session must not hold a quiz bank")
	}
	if s.Phase != PhaseIdle && len(questions) == 0 {
		return fmt.Errorf("phase %s requires a quiz bank", s.Phase)
	}

	if s.CurrentIndex < 0 || s.CurrentIndex > len(questions) {
		return fmt.Errorf("current index %d out of range [0,%d]", s.CurrentIndex, len(questions))
	}
	if s.Score < 0 || s.Score > s.CurrentIndex {
		return fmt.Errorf("score %d out of range [0,%d]", s.Score, s.CurrentIndex)
	}
	return nil
}
