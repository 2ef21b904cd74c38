package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/repository"

	"go.uber.org/zap"
)

// KV is the key-value store the goal collections live in.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMany(ctx context.Context, entries ...repository.Entry) error
	HealthCheck(ctx context.Context) error
}

type Keys struct {
	Active    string
	Completed string
}

var DefaultKeys = Keys{Active: "dailyGoals", Completed: "completedGoals"}

// Adapter serializes the active and completed collections as JSON text
// under two fixed keys.
type Adapter struct {
	kv   KV
	keys Keys
}

func New(kv KV, keys Keys) *Adapter {
	if keys.Active == "" {
		keys.Active = DefaultKeys.Active
	}
	if keys.Completed == "" {
		keys.Completed = DefaultKeys.Completed
	}
	return &Adapter{kv: kv, keys: keys}
}

func (a *Adapter) Keys() Keys {
	return a.keys
}

func (a *Adapter) HealthCheck(ctx context.Context) error {
	return a.kv.HealthCheck(ctx)
}

func (a *Adapter) LoadActive(ctx context.Context) ([]goal.Goal, error) {
	return Load[goal.Goal](ctx, a.kv, a.keys.Active)
}

func (a *Adapter) LoadCompleted(ctx context.Context) ([]goal.CompletedGoal, error) {
	return Load[goal.CompletedGoal](ctx, a.kv, a.keys.Completed)
}

// Save writes both collections in a single SetMany call.
func (a *Adapter) Save(ctx context.Context, active []goal.Goal, completed []goal.CompletedGoal) error {
	activeRaw, err := Encode(active)
	if err != nil {
		return fmt.Errorf("сериализация активных целей: %w", err)
	}
	completedRaw, err := Encode(completed)
	if err != nil {
		return fmt.Errorf("сериализация выполненных целей: %w", err)
	}

	err = a.kv.SetMany(ctx,
		repository.Entry{Key: a.keys.Active, Value: activeRaw},
		repository.Entry{Key: a.keys.Completed, Value: completedRaw},
	)
	if err != nil {
		return fmt.Errorf("сохранение целей: %w", err)
	}
	return nil
}

// Load decodes the record under key. A missing or unparseable record yields
// an empty collection; only backend failures are returned as errors.
func Load[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("загрузка %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("Storage: Повреждённая запись, используется пустой список",
			zap.String("key", key),
			zap.Error(err))
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func Encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
