package session

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/datatypes"
)

// memoryRepository keeps sessions in process memory, for local runs without
// a database and for tests. Progress is lost on restart.
type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[int64]StudySession
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		sessions: make(map[int64]StudySession),
	}
}

func (r *memoryRepository) Get(ctx context.Context, userID int64) (*StudySession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[userID]
	if !ok {
		return nil, nil
	}
	return copySession(&s), nil
}

func (r *memoryRepository) Put(ctx context.Context, s *StudySession) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("refusing to store invalid session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.UserID] = *copySession(s)
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
	return nil
}

// copySession detaches the stored record from the caller's value so a later
// mutation cannot bypass Put.
func copySession(s *StudySession) *StudySession {
	out := *s
	if s.QuizBank != nil {
		out.QuizBank = make(datatypes.JSON, len(s.QuizBank))
		copy(out.QuizBank, s.QuizBank)
	}
	return &out
}
