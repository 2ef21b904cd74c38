package service

import (
	"context"
	"fmt"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь живут все мутации целей текущего дня

const MessageRequiredFields = "Please fill in all required fields"

// GoalStore keeps today's active and completed goals in memory and persists
// both collections after every mutation.
type GoalStore struct {
	repo GoalRepository

	mtx       sync.Mutex
	loaded    bool
	active    []goal.Goal
	completed []goal.CompletedGoal

	now   func() time.Time
	newID func() uuid.UUID
}

// Snapshot is a consistent copy of the store state.
type Snapshot struct {
	Active    []goal.Goal
	Completed []goal.CompletedGoal
	Stats     goal.Stats
}

func NewGoalStore(repo GoalRepository, options ...StoreOption) *GoalStore {
	s := &GoalStore{
		repo:      repo,
		active:    []goal.Goal{},
		completed: []goal.CompletedGoal{},
		now:       time.Now,
		newID:     newTimeOrderedID,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *GoalStore) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func (s *GoalStore) Today() string {
	return goal.Day(s.now())
}

// Initialize loads the persisted collections on first use and clears both
// when the goals belong to another day. Later calls only repeat the day
// check against memory. It reports whether a reset happened.
func (s *GoalStore) Initialize(ctx context.Context) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.loaded {
		if err := s.loadLocked(ctx); err != nil {
			return false, err
		}
	}
	return s.resetIfStaleLocked(ctx)
}

// вызывать под s.mtx
func (s *GoalStore) loadLocked(ctx context.Context) error {
	active, err := s.repo.LoadActive(ctx)
	if err != nil {
		logger.Error("Service: Не удалось загрузить активные цели", err)
		return fmt.Errorf("загрузка активных целей: %w", err)
	}
	completed, err := s.repo.LoadCompleted(ctx)
	if err != nil {
		logger.Error("Service: Не удалось загрузить выполненные цели", err)
		return fmt.Errorf("загрузка выполненных целей: %w", err)
	}

	s.active = active
	s.completed = completed
	s.loaded = true
	return nil
}

// resetIfStaleLocked clears both collections when the active goals carry
// another day's date. Every mutation runs it first so all active goals
// always share one date. Вызывать под s.mtx.
func (s *GoalStore) resetIfStaleLocked(ctx context.Context) (bool, error) {
	today := goal.Day(s.now())
	if len(s.active) == 0 || s.active[0].Date == today {
		return false, nil
	}

	logger.Info("Service: Новый день, цели сброшены",
		zap.String("stored_day", s.active[0].Date),
		zap.String("today", today),
		zap.Int("active", len(s.active)),
		zap.Int("completed", len(s.completed)))

	s.active = []goal.Goal{}
	s.completed = []goal.CompletedGoal{}
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// beginLocked prepares a mutation. From here on memory is the source of
// truth, so a later Initialize won't reload over it.
func (s *GoalStore) beginLocked(ctx context.Context) error {
	s.loaded = true
	_, err := s.resetIfStaleLocked(ctx)
	return err
}

func (s *GoalStore) AddGoal(ctx context.Context, title, category, priority, description string) (*goal.Goal, error) {
	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)
	priority = strings.TrimSpace(priority)

	if err := validateFields(title, category, priority); err != nil {
		logger.Info("Service: Цель не прошла валидацию", zap.Error(err))
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.beginLocked(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	created := goal.Goal{
		ID:          s.uniqueID(),
		Title:       title,
		Category:    goal.Category(category),
		Priority:    goal.Priority(priority),
		Description: strings.TrimSpace(description),
		Date:        goal.Day(now),
		Progress:    0,
		CreatedAt:   now,
	}
	s.active = append(s.active, created)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	logger.Info("Service: Цель добавлена", zap.String("goal_id", created.ID.String()))
	return &created, nil
}

// CompleteGoal moves an active goal to the end of the completed list.
// An unknown id is a silent no-op.
func (s *GoalStore) CompleteGoal(ctx context.Context, id uuid.UUID) (*goal.CompletedGoal, bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.beginLocked(ctx); err != nil {
		return nil, false, err
	}

	ind := s.activeIndex(id)
	if ind == -1 {
		logger.Info("Service: Цель не найдена", zap.String("target_id", id.String()))
		return nil, false, nil
	}

	done := s.active[ind].Complete(s.now())
	s.completed = append(s.completed, done)
	s.active = slices.Delete(s.active, ind, ind+1)

	if err := s.persist(ctx); err != nil {
		return nil, true, err
	}
	return &done, true, nil
}

// EditGoal overwrites title, category, priority and description of an
// active goal. Progress, date, creation time and id stay untouched.
func (s *GoalStore) EditGoal(ctx context.Context, id uuid.UUID, title, category, priority, description string) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.beginLocked(ctx); err != nil {
		return false, err
	}

	ind := s.activeIndex(id)
	if ind == -1 {
		logger.Info("Service: Цель не найдена", zap.String("target_id", id.String()))
		return false, nil
	}

	if err := validateFields(strings.TrimSpace(title), strings.TrimSpace(category), strings.TrimSpace(priority)); err != nil {
		return false, err
	}

	s.active[ind].Apply(
		goal.WithTitle(title),
		goal.WithCategory(goal.Category(category)),
		goal.WithPriority(goal.Priority(priority)),
		goal.WithDescription(description),
	)

	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// UpdateProgress advances progress by one step, never past 100.
func (s *GoalStore) UpdateProgress(ctx context.Context, id uuid.UUID) (int, bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.beginLocked(ctx); err != nil {
		return 0, false, err
	}

	ind := s.activeIndex(id)
	if ind == -1 {
		logger.Info("Service: Цель не найдена", zap.String("target_id", id.String()))
		return 0, false, nil
	}

	s.active[ind].Progress = goal.AdvanceProgress(s.active[ind].Progress)
	progress := s.active[ind].Progress

	if err := s.persist(ctx); err != nil {
		return progress, true, err
	}
	return progress, true, nil
}

// DeleteGoal removes an active goal. State is persisted even when nothing matched.
func (s *GoalStore) DeleteGoal(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.beginLocked(ctx); err != nil {
		return false, err
	}

	before := len(s.active)
	s.active = slices.DeleteFunc(s.active, func(g goal.Goal) bool { return g.ID == id })
	removed := len(s.active) != before

	return removed, s.persist(ctx)
}

// DeleteCompletedGoal removes a completed goal. State is persisted even when nothing matched.
func (s *GoalStore) DeleteCompletedGoal(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.beginLocked(ctx); err != nil {
		return false, err
	}

	before := len(s.completed)
	s.completed = slices.DeleteFunc(s.completed, func(g goal.CompletedGoal) bool { return g.ID == id })
	removed := len(s.completed) != before

	return removed, s.persist(ctx)
}

// FilteredGoals yields active goals matching filter in insertion order.
// Every range over the sequence starts from the current state.
func (s *GoalStore) FilteredGoals(filter goal.Filter) iter.Seq[goal.Goal] {
	return func(yield func(goal.Goal) bool) {
		for _, g := range s.Active() {
			if !filter.Match(g) {
				continue
			}
			if !yield(g) {
				return
			}
		}
	}
}

func (s *GoalStore) Stats() goal.Stats {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return goal.ComputeStats(len(s.active), len(s.completed))
}

func (s *GoalStore) Active() []goal.Goal {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return slices.Clone(s.active)
}

func (s *GoalStore) Completed() []goal.CompletedGoal {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return slices.Clone(s.completed)
}

func (s *GoalStore) Snapshot() Snapshot {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return Snapshot{
		Active:    slices.Clone(s.active),
		Completed: slices.Clone(s.completed),
		Stats:     goal.ComputeStats(len(s.active), len(s.completed)),
	}
}

// Goal returns a copy of the active goal with the given id.
func (s *GoalStore) Goal(id uuid.UUID) (goal.Goal, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := s.activeIndex(id)
	if ind == -1 {
		return goal.Goal{}, false
	}
	return s.active[ind], true
}

// вызывать под s.mtx
func (s *GoalStore) persist(ctx context.Context) error {
	start := time.Now()
	if err := s.repo.Save(ctx, s.active, s.completed); err != nil {
		logger.Error("Service: Не удалось сохранить цели", err)
		return fmt.Errorf("сохранение целей: %w", err)
	}
	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Service: Медленное сохранение", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *GoalStore) activeIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.active, func(g goal.Goal) bool { return g.ID == id })
}

// uniqueID never hands out an id already present in either collection.
func (s *GoalStore) uniqueID() uuid.UUID {
	for {
		id := s.newID()
		taken := s.activeIndex(id) != -1 ||
			slices.ContainsFunc(s.completed, func(g goal.CompletedGoal) bool { return g.ID == id })
		if !taken {
			return id
		}
	}
}

func validateFields(title, category, priority string) error {
	if title == "" {
		return NewValidationError("title", MessageRequiredFields)
	}
	if category == "" {
		return NewValidationError("category", MessageRequiredFields)
	}
	if priority == "" {
		return NewValidationError("priority", MessageRequiredFields)
	}
	if !goal.Category(category).Valid() {
		return NewValidationError("category",
			fmt.Sprintf("Unknown category %q (work/health/learning/personal/fitness)", category))
	}
	if !goal.Priority(priority).Valid() {
		return NewValidationError("priority",
			fmt.Sprintf("Unknown priority %q (low/medium/high)", priority))
	}
	return nil
}
