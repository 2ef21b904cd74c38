package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/service"
	"goalTracker/internal/view"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type Goals interface {
	Initialize(context.Context) (bool, error)
	Today() string
	AddGoal(ctx context.Context, title, category, priority, description string) (*goal.Goal, error)
	CompleteGoal(context.Context, uuid.UUID) (*goal.CompletedGoal, bool, error)
	EditGoal(ctx context.Context, id uuid.UUID, title, category, priority, description string) (bool, error)
	UpdateProgress(context.Context, uuid.UUID) (int, bool, error)
	DeleteGoal(context.Context, uuid.UUID) (bool, error)
	DeleteCompletedGoal(context.Context, uuid.UUID) (bool, error)
	FilteredGoals(goal.Filter) iter.Seq[goal.Goal]
	Snapshot() service.Snapshot
}

var _ Goals = (*service.GoalStore)(nil)

// Controller is the terminal front end. Every action ends with the full
// board printed again.
type Controller struct {
	goals    Goals
	renderer *view.Renderer
	prompt   *Prompter
	out      io.Writer
}

func NewController(goals Goals, renderer *view.Renderer, prompt *Prompter, out io.Writer) *Controller {
	return &Controller{goals: goals, renderer: renderer, prompt: prompt, out: out}
}

// Start runs the rollover check; call it once before any command.
func (c *Controller) Start(ctx context.Context) error {
	reset, err := c.goals.Initialize(ctx)
	if err != nil {
		return err
	}
	if reset {
		c.hint("A new day has started, yesterday's goals were cleared.")
	}
	return nil
}

func (c *Controller) List(filter goal.Filter) error {
	return c.render(filter)
}

// AddInput holds flag values; empty required fields are prompted for.
type AddInput struct {
	Title       string
	Category    string
	Priority    string
	Description string
}

func (c *Controller) Add(ctx context.Context, in AddInput) error {
	var err error
	if strings.TrimSpace(in.Title) == "" {
		if in.Title, err = c.prompt.Ask("Goal title", ""); err != nil {
			return c.cancelled(err)
		}
	}
	if strings.TrimSpace(in.Category) == "" {
		if in.Category, err = c.prompt.Ask("Category (work/health/learning/personal/fitness)", ""); err != nil {
			return c.cancelled(err)
		}
	}
	if strings.TrimSpace(in.Priority) == "" {
		if in.Priority, err = c.prompt.Ask("Priority (low/medium/high)", ""); err != nil {
			return c.cancelled(err)
		}
	}

	if _, err := c.goals.AddGoal(ctx, in.Title, in.Category, in.Priority, in.Description); err != nil {
		return err
	}
	c.notice(view.NoticeAdded)
	return c.render(goal.Filter{})
}

func (c *Controller) Complete(ctx context.Context, ref string) error {
	id, ok := c.resolveActive(ref)
	if ok {
		_, found, err := c.goals.CompleteGoal(ctx, id)
		if err != nil {
			return err
		}
		if found {
			c.notice(view.NoticeCompleted)
		}
	}
	return c.render(goal.Filter{})
}

func (c *Controller) Progress(ctx context.Context, ref string) error {
	id, ok := c.resolveActive(ref)
	if ok {
		progress, found, err := c.goals.UpdateProgress(ctx, id)
		if err != nil {
			return err
		}
		if found {
			c.notice(view.ProgressNotice(progress))
		}
	}
	return c.render(goal.Filter{})
}

// Edit prompts for every field with the current value as default. A lone
// "-" clears the description. Input ending at any step cancels the whole
// edit.
func (c *Controller) Edit(ctx context.Context, ref string) error {
	id, ok := c.resolveActive(ref)
	if !ok {
		return c.render(goal.Filter{})
	}
	current, ok := c.activeGoal(id)
	if !ok {
		return c.render(goal.Filter{})
	}

	title, err := c.prompt.Ask("Edit goal title", current.Title)
	if err != nil {
		return c.cancelled(err)
	}
	category, err := c.prompt.Ask("Edit category (work/health/learning/personal/fitness)", string(current.Category))
	if err != nil {
		return c.cancelled(err)
	}
	priority, err := c.prompt.Ask("Edit priority (low/medium/high)", string(current.Priority))
	if err != nil {
		return c.cancelled(err)
	}
	description, err := c.prompt.AskOptional("Edit description", current.Description)
	if err != nil {
		return c.cancelled(err)
	}

	found, err := c.goals.EditGoal(ctx, id, title, category, priority, description)
	if err != nil {
		return err
	}
	if found {
		c.notice(view.NoticeUpdated)
	}
	return c.render(goal.Filter{})
}

func (c *Controller) Delete(ctx context.Context, ref string, yes bool) error {
	id, ok := c.resolveActive(ref)
	if !ok {
		return c.render(goal.Filter{})
	}
	if !yes && !c.prompt.Confirm(view.QuestionDeleteGoal) {
		c.hint("Nothing deleted.")
		return nil
	}
	if _, err := c.goals.DeleteGoal(ctx, id); err != nil {
		return err
	}
	return c.render(goal.Filter{})
}

func (c *Controller) Remove(ctx context.Context, ref string, yes bool) error {
	id, ok := c.resolveCompleted(ref)
	if !ok {
		return c.render(goal.Filter{})
	}
	if !yes && !c.prompt.Confirm(view.QuestionRemoveCompleted) {
		c.hint("Nothing removed.")
		return nil
	}
	if _, err := c.goals.DeleteCompletedGoal(ctx, id); err != nil {
		return err
	}
	return c.render(goal.Filter{})
}

func (c *Controller) Stats() error {
	stats := c.goals.Snapshot().Stats
	_, err := fmt.Fprintf(c.out, "Active: %d\nCompleted: %d\nCompletion: %d%%\n",
		stats.TotalActive, stats.TotalCompleted, stats.CompletionRate)
	return err
}

type exportDocument struct {
	Date      string               `json:"date" yaml:"date"`
	Active    []goal.Goal          `json:"active" yaml:"active"`
	Completed []goal.CompletedGoal `json:"completed" yaml:"completed"`
	Stats     goal.Stats           `json:"stats" yaml:"stats"`
}

func (c *Controller) Export(format string) error {
	snap := c.goals.Snapshot()
	doc := exportDocument{
		Date:      c.goals.Today(),
		Active:    snap.Active,
		Completed: snap.Completed,
		Stats:     snap.Stats,
	}

	switch strings.ToLower(format) {
	case FormatJSON, "":
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(c.out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("экспорт yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q (json/yaml)", format)
	}
}

func (c *Controller) render(filter goal.Filter) error {
	snap := c.goals.Snapshot()
	board := view.BuildBoard(view.BoardInput{
		Today:     c.goals.Today(),
		Visible:   c.goals.FilteredGoals(filter),
		Completed: snap.Completed,
		Filter:    filter,
		Stats:     snap.Stats,
	})
	return c.renderer.Text(c.out, board)
}

func (c *Controller) cancelled(err error) error {
	if errors.Is(err, ErrCancelled) {
		logger.Info("CLI: Ввод прерван, изменения не применены")
		c.hint("Cancelled, nothing changed.")
		return nil
	}
	return err
}

func (c *Controller) notice(msg string) {
	fmt.Fprintln(c.out, noticeStyle.Render(msg))
}

func (c *Controller) hint(msg string) {
	fmt.Fprintln(c.out, hintStyle.Render(msg))
}

func (c *Controller) activeGoal(id uuid.UUID) (goal.Goal, bool) {
	for _, g := range c.goals.Snapshot().Active {
		if g.ID == id {
			return g, true
		}
	}
	return goal.Goal{}, false
}

func (c *Controller) resolveActive(ref string) (uuid.UUID, bool) {
	snap := c.goals.Snapshot()
	ids := make([]uuid.UUID, 0, len(snap.Active))
	for _, g := range snap.Active {
		ids = append(ids, g.ID)
	}
	return c.resolve(ref, ids)
}

func (c *Controller) resolveCompleted(ref string) (uuid.UUID, bool) {
	snap := c.goals.Snapshot()
	ids := make([]uuid.UUID, 0, len(snap.Completed))
	for _, g := range snap.Completed {
		ids = append(ids, g.ID)
	}
	return c.resolve(ref, ids)
}

// resolve accepts a full id or a prefix matching exactly one id. Unknown
// ids are a silent no-op like everywhere else.
func (c *Controller) resolve(ref string, ids []uuid.UUID) (uuid.UUID, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if id, err := uuid.Parse(ref); err == nil {
		return id, true
	}
	if ref == "" {
		return uuid.Nil, false
	}

	var match uuid.UUID
	matches := 0
	for _, id := range ids {
		if strings.HasPrefix(id.String(), ref) {
			match = id
			matches++
		}
	}
	if matches != 1 {
		logger.Warn("CLI: Id не распознан", zap.String("ref", ref), zap.Int("matches", matches))
		return uuid.Nil, false
	}
	return match, true
}
