package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/senseilabs/sensei-bot/internal/audit"
	"github.com/senseilabs/sensei-bot/internal/config"
	"gorm.io/datatypes"
)

type Service interface {
	Archive(ctx context.Context, userID int64, title string, score int, questions []audit.Question) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]*QuizResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Archive(ctx context.Context, userID int64, title string, score int, questions []audit.Question) error {
	log := config.WithContext(ctx)

	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("failed to marshal archived questions: %w", err)
	}

	result := &QuizResult{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          title,
		Score:          score,
		TotalQuestions: len(questions),
		Questions:      datatypes.JSON(data),
		CompletedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, result); err != nil {
		log.WithError(err).Error("Failed to archive quiz result")
		return err
	}

	log.Infof("Archived quiz result %s for user %d: %d/%d", result.ID, userID, score, len(questions))
	return nil
}

func (s *service) ListByUser(ctx context.Context, userID int64, limit int) ([]*QuizResult, error) {
	results, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quiz results")
		return nil, err
	}
	return results, nil
}
