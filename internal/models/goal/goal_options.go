package goal

import "strings"

// GoalOption mutates one editable field of an active goal.
type GoalOption func(*Goal)

func WithTitle(title string) GoalOption {
	return func(g *Goal) {
		g.Title = strings.TrimSpace(title)
	}
}

func WithCategory(category Category) GoalOption {
	return func(g *Goal) {
		g.Category = Category(strings.TrimSpace(string(category)))
	}
}

func WithPriority(priority Priority) GoalOption {
	return func(g *Goal) {
		g.Priority = Priority(strings.TrimSpace(string(priority)))
	}
}

func WithDescription(description string) GoalOption {
	return func(g *Goal) {
		g.Description = strings.TrimSpace(description)
	}
}

func (g *Goal) Apply(options ...GoalOption) {
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
}
