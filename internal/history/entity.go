package history

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizResult is one archived quiz run: written when a user finishes all
// questions, so past scores survive the session reset.
type QuizResult struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         int64          `gorm:"not null;index" json:"user_id"`
	Title          string         `gorm:"type:text;not null" json:"title"`
	Score          int            `gorm:"not null" json:"score"`
	TotalQuestions int            `gorm:"not null" json:"total_questions"`
	Questions      datatypes.JSON `gorm:"type:jsonb" json:"questions,omitempty"`
	CompletedAt    time.Time      `gorm:"autoCreateTime" json:"completed_at"`
}
