package view

import (
	"goalTracker/internal/models/goal"
	"html/template"
	"iter"
)

const completedTimeLayout = "15:04:05"

type EmptyState struct {
	Icon    string
	Heading string
	Hint    string
}

var (
	EmptyActive = EmptyState{
		Icon:    "fa-bullseye",
		Heading: "No goals set for today",
		Hint:    "Add your first goal to get started!",
	}
	EmptyCompleted = EmptyState{
		Icon:    "fa-trophy",
		Heading: "No completed goals yet",
		Hint:    "Complete some goals to see them here!",
	}
	EmptyFiltered = EmptyState{
		Icon:    "fa-search",
		Heading: "No goals match your filters",
		Hint:    "Try adjusting your filter criteria",
	}
)

type GoalCard struct {
	ID              string
	Title           string
	Category        string
	Priority        string
	PriorityClass   string
	Description     string
	DescriptionHTML template.HTML
	Progress        int
}

type CompletedCard struct {
	ID              string
	Title           string
	Category        string
	Priority        string
	Description     string
	DescriptionHTML template.HTML
	CompletedAt     string
}

// Board is everything a front end needs to draw both lists and the stats.
type Board struct {
	Today          string
	Filter         goal.Filter
	Active         []GoalCard
	ActiveEmpty    *EmptyState
	Completed      []CompletedCard
	CompletedEmpty *EmptyState
	Stats          goal.Stats
}

type BoardInput struct {
	Today     string
	Visible   iter.Seq[goal.Goal]
	Completed []goal.CompletedGoal
	Filter    goal.Filter
	Stats     goal.Stats
}

func BuildBoard(in BoardInput) Board {
	board := Board{
		Today:     in.Today,
		Filter:    in.Filter,
		Active:    []GoalCard{},
		Completed: make([]CompletedCard, 0, len(in.Completed)),
		Stats:     in.Stats,
	}

	if in.Visible != nil {
		for g := range in.Visible {
			board.Active = append(board.Active, NewGoalCard(g))
		}
	}
	if len(board.Active) == 0 {
		empty := EmptyActive
		if !in.Filter.Empty() && in.Stats.TotalActive > 0 {
			empty = EmptyFiltered
		}
		board.ActiveEmpty = &empty
	}

	for _, g := range in.Completed {
		board.Completed = append(board.Completed, NewCompletedCard(g))
	}
	if len(board.Completed) == 0 {
		empty := EmptyCompleted
		board.CompletedEmpty = &empty
	}

	return board
}

func NewGoalCard(g goal.Goal) GoalCard {
	return GoalCard{
		ID:              g.ID.String(),
		Title:           g.Title,
		Category:        string(g.Category),
		Priority:        string(g.Priority),
		PriorityClass:   "priority-" + string(g.Priority),
		Description:     g.Description,
		DescriptionHTML: RenderMarkdown(g.Description),
		Progress:        g.Progress,
	}
}

func NewCompletedCard(g goal.CompletedGoal) CompletedCard {
	return CompletedCard{
		ID:              g.ID.String(),
		Title:           g.Title,
		Category:        string(g.Category),
		Priority:        string(g.Priority),
		Description:     g.Description,
		DescriptionHTML: RenderMarkdown(g.Description),
		CompletedAt:     g.CompletedAt.Local().Format(completedTimeLayout),
	}
}
