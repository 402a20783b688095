package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrStoreUnavailable marks persistence failures. Callers must treat the
// write as not having happened and tell the user to try again.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Store operations are bounded so a slow database cannot hang a message.
const storeTimeout = 5 * time.Second

type Repository interface {
	// Get returns the user's session, or (nil, nil) when none exists.
	Get(ctx context.Context, userID int64) (*StudySession, error)
	// Put writes the whole session as one row. Last write wins per user.
	Put(ctx context.Context, s *StudySession) error
	Delete(ctx context.Context, userID int64) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// AutoMigrate creates the sessions table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&StudySession{})
}

func (r *gormRepository) Get(ctx context.Context, userID int64) (*StudySession, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var s StudySession
	if err := r.db.WithContext(ctx).First(&s, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &s, nil
}

func (r *gormRepository) Put(ctx context.Context, s *StudySession) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid session: %w", err)
	}

	// Save upserts by primary key; the session is one row, so the write is
	// atomic per user and concurrent duplicates cannot interleave.
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Delete(&StudySession{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
