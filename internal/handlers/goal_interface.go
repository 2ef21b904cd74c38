package handlers

import (
	"context"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/service"
	"iter"

	"github.com/google/uuid"
)

type GoalService interface {
	HealthCheck(context.Context) error
	Initialize(context.Context) (bool, error)
	Today() string
	AddGoal(ctx context.Context, title, category, priority, description string) (*goal.Goal, error)
	CompleteGoal(context.Context, uuid.UUID) (*goal.CompletedGoal, bool, error)
	EditGoal(ctx context.Context, id uuid.UUID, title, category, priority, description string) (bool, error)
	UpdateProgress(context.Context, uuid.UUID) (int, bool, error)
	DeleteGoal(context.Context, uuid.UUID) (bool, error)
	DeleteCompletedGoal(context.Context, uuid.UUID) (bool, error)
	FilteredGoals(goal.Filter) iter.Seq[goal.Goal]
	Goal(uuid.UUID) (goal.Goal, bool)
	Snapshot() service.Snapshot
}

var _ GoalService = (*service.GoalStore)(nil)
