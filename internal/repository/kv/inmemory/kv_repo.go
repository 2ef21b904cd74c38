package inmemory

import (
	"context"
	"goalTracker/internal/logger"
	repo "goalTracker/internal/repository"
	"sync"
)

type Storage struct {
	storage map[string][]byte
	mtx     *sync.RWMutex
}

func New() *Storage {
	return &Storage{
		storage: make(map[string][]byte),
		mtx:     &sync.RWMutex{},
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	value, ok := s.storage[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *Storage) SetMany(ctx context.Context, entries ...repo.Entry) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, e := range entries {
		s.storage[e.Key] = append([]byte(nil), e.Value...)
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
