package service

import (
	"time"

	"github.com/google/uuid"
)

type StoreOption func(*GoalStore)

func WithClock(now func() time.Time) StoreOption {
	if now == nil {
		return nil
	}
	return func(s *GoalStore) {
		s.now = now
	}
}

func WithIDGenerator(newID func() uuid.UUID) StoreOption {
	if newID == nil {
		return nil
	}
	return func(s *GoalStore) {
		s.newID = newID
	}
}

// ids sort by creation time
func newTimeOrderedID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
