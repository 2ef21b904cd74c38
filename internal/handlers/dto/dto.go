package dto

import (
	"goalTracker/internal/models/goal"
	"time"
)

type CreateGoalRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// UpdateGoalRequest uses pointers so a missing field can be told apart
// from an empty one.
type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	Description *string `json:"description"`
}

// Complete reports whether all four fields were sent.
func (r UpdateGoalRequest) Complete() bool {
	return r.Title != nil && r.Category != nil && r.Priority != nil && r.Description != nil
}

type GoalResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CompletedGoalResponse struct {
	GoalResponse
	CompletedAt time.Time `json:"completedAt"`
}

type StatsResponse struct {
	TotalActive    int `json:"totalActive"`
	TotalCompleted int `json:"totalCompleted"`
	CompletionRate int `json:"completionRate"`
}

type ActionResponse struct {
	Changed   bool                   `json:"changed"`
	Notice    string                 `json:"notice,omitempty"`
	Goal      *GoalResponse          `json:"goal,omitempty"`
	Completed *CompletedGoalResponse `json:"completed,omitempty"`
	Progress  *int                   `json:"progress,omitempty"`
	Stats     StatsResponse          `json:"stats"`
}

func FromGoal(g goal.Goal) GoalResponse {
	return GoalResponse{
		ID:          g.ID.String(),
		Title:       g.Title,
		Category:    string(g.Category),
		Priority:    string(g.Priority),
		Description: g.Description,
		Date:        g.Date,
		Progress:    g.Progress,
		CreatedAt:   g.CreatedAt,
	}
}

func FromCompletedGoal(g goal.CompletedGoal) CompletedGoalResponse {
	return CompletedGoalResponse{
		GoalResponse: FromGoal(g.Goal),
		CompletedAt:  g.CompletedAt,
	}
}

func FromGoalList(goals []goal.Goal) []GoalResponse {
	result := make([]GoalResponse, len(goals))
	for i, g := range goals {
		result[i] = FromGoal(g)
	}
	return result
}

func FromCompletedList(goals []goal.CompletedGoal) []CompletedGoalResponse {
	result := make([]CompletedGoalResponse, len(goals))
	for i, g := range goals {
		result[i] = FromCompletedGoal(g)
	}
	return result
}

func FromStats(s goal.Stats) StatsResponse {
	return StatsResponse{
		TotalActive:    s.TotalActive,
		TotalCompleted: s.TotalCompleted,
		CompletionRate: s.CompletionRate,
	}
}
