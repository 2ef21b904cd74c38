package service

import (
	"context"
	"goalTracker/internal/models/goal"
)

type GoalRepository interface {
	LoadActive(context.Context) ([]goal.Goal, error)
	LoadCompleted(context.Context) ([]goal.CompletedGoal, error)
	Save(context.Context, []goal.Goal, []goal.CompletedGoal) error
	HealthCheck(context.Context) error
}
