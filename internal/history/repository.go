package history

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, result *QuizResult) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]*QuizResult, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// AutoMigrate creates the quiz results table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&QuizResult{})
}

func (r *gormRepository) Create(ctx context.Context, result *QuizResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *gormRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*QuizResult, error) {
	var results []*QuizResult
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// memoryRepository mirrors the in-memory session store for database-less runs.
type memoryRepository struct {
	mu      sync.RWMutex
	results []*QuizResult
}

func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(ctx context.Context, result *QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *result
	r.results = append(r.results, &stored)
	return nil
}

func (r *memoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*QuizResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*QuizResult
	for _, res := range r.results {
		if res.UserID == userID {
			copied := *res
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
