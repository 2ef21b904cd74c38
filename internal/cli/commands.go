package cli

import (
	"context"
	"fmt"
	"goalTracker/internal/config"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/repository/kv"
	"goalTracker/internal/service"
	"goalTracker/internal/storage"
	"goalTracker/internal/view"

	"github.com/spf13/cobra"
)

// OpenFunc builds the goal store for one command run. The returned func
// releases the storage.
type OpenFunc func(ctx context.Context, configPath string) (Goals, func(), error)

// OpenStore loads config, opens the configured backend and wraps it in a
// goal store. Logs go to stderr so they don't mix with the board.
func OpenStore(ctx context.Context, configPath string) (Goals, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Quiet(); err != nil {
		return nil, nil, fmt.Errorf("инициализация логгера: %w", err)
	}

	backend, err := kv.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("инициализация хранилища: %w", err)
	}

	adapter := storage.New(backend, storage.Keys{
		Active:    cfg.Storage.ActiveKey,
		Completed: cfg.Storage.CompletedKey,
	})
	closeFn := func() {
		if err := backend.Close(); err != nil {
			logger.Error("CLI: Ошибка закрытия хранилища", err)
		}
		logger.Sync()
	}
	return service.NewGoalStore(adapter), closeFn, nil
}

func NewRootCmd(open OpenFunc) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "goals",
		Short:         "Daily goal tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to config.yml")

	run := func(fn func(ctx context.Context, c *Controller) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			goals, closeFn, err := open(ctx, configPath)
			if err != nil {
				return err
			}
			defer closeFn()

			renderer, err := view.NewRenderer()
			if err != nil {
				return err
			}

			c := NewController(goals, renderer, NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
			if err := c.Start(ctx); err != nil {
				return err
			}
			return fn(ctx, c)
		}
	}

	root.AddCommand(newListCmd(run))
	root.AddCommand(newAddCmd(run))
	root.AddCommand(&cobra.Command{
		Use:   "complete <id>",
		Short: "Mark an active goal as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, c *Controller) error { return c.Complete(ctx, args[0]) })(cmd, args)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "progress <id>",
		Short: "Advance a goal's progress by 25%",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, c *Controller) error { return c.Progress(ctx, args[0]) })(cmd, args)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "edit <id>",
		Short: "Edit title, category, priority and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, c *Controller) error { return c.Edit(ctx, args[0]) })(cmd, args)
		},
	})
	root.AddCommand(newDeleteCmd(run, "delete <id>", "Delete an active goal", (*Controller).Delete))
	root.AddCommand(newDeleteCmd(run, "remove <id>", "Remove a completed goal", (*Controller).Remove))
	root.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show today's counters",
		Args:  cobra.NoArgs,
		RunE:  run(func(_ context.Context, c *Controller) error { return c.Stats() }),
	})
	root.AddCommand(newExportCmd(run))
	return root
}

type runner func(fn func(ctx context.Context, c *Controller) error) func(*cobra.Command, []string) error

func newListCmd(run runner) *cobra.Command {
	var category, priority string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show today's goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := goal.Filter{Category: goal.Category(category), Priority: goal.Priority(priority)}
			if filter.Category != "" && !filter.Category.Valid() {
				return fmt.Errorf("unknown category %q", category)
			}
			if filter.Priority != "" && !filter.Priority.Valid() {
				return fmt.Errorf("unknown priority %q", priority)
			}
			return run(func(_ context.Context, c *Controller) error { return c.List(filter) })(cmd, args)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "show only this category")
	cmd.Flags().StringVar(&priority, "priority", "", "show only this priority")
	return cmd
}

func newAddCmd(run runner) *cobra.Command {
	var in AddInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a goal for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, c *Controller) error { return c.Add(ctx, in) })(cmd, args)
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "goal title")
	cmd.Flags().StringVar(&in.Category, "category", "", "work, health, learning, personal or fitness")
	cmd.Flags().StringVar(&in.Priority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&in.Description, "description", "", "optional description (Markdown)")
	return cmd
}

func newDeleteCmd(run runner, use, short string,
	action func(*Controller, context.Context, string, bool) error) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, c *Controller) error { return action(c, ctx, args[0], yes) })(cmd, args)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newExportCmd(run runner) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print today's goals as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(_ context.Context, c *Controller) error { return c.Export(format) })(cmd, args)
		},
	}
	cmd.Flags().StringVar(&format, "format", FormatJSON, "json or yaml")
	return cmd
}
