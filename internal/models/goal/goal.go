package goal

import (
	"time"

	"github.com/google/uuid"
)

// DayLayout matches the day string stored with every goal, e.g. "Mon Jan 01 2024".
const DayLayout = "Mon Jan 02 2006"

const (
	ProgressStep = 25
	ProgressMax  = 100
)

type Goal struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Category    Category  `json:"category" yaml:"category"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Description string    `json:"description" yaml:"description"`
	Date        string    `json:"date" yaml:"date"`
	Progress    int       `json:"progress" yaml:"progress"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

type CompletedGoal struct {
	Goal        `yaml:",inline"`
	CompletedAt time.Time `json:"completedAt" yaml:"completedAt"`
}

type Category string
type Priority string

const CategoryWork Category = "work"
const CategoryHealth Category = "health"
const CategoryLearning Category = "learning"
const CategoryPersonal Category = "personal"
const CategoryFitness Category = "fitness"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

var Categories = []Category{CategoryWork, CategoryHealth, CategoryLearning, CategoryPersonal, CategoryFitness}
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// AdvanceProgress returns progress moved one step forward, capped at ProgressMax.
func AdvanceProgress(progress int) int {
	return min(ProgressMax, progress+ProgressStep)
}

// Complete stamps the goal as finished at the given moment.
func (g Goal) Complete(at time.Time) CompletedGoal {
	return CompletedGoal{Goal: g, CompletedAt: at}
}
