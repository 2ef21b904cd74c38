package cli_test

import (
	"bytes"
	"context"
	"errors"
	"goalTracker/internal/cli"
	"goalTracker/internal/service"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, store *service.GoalStore, input string, args ...string) (string, error) {
	t.Helper()
	open := func(context.Context, string) (cli.Goals, func(), error) {
		return store, func() {}, nil
	}

	var out bytes.Buffer
	cmd := cli.NewRootCmd(open)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// TestRootCmd тестирует команды терминала
func TestRootCmd(t *testing.T) {
	store := newStore(t)

	out, err := execute(t, store, "", "add", "--title", "Ship", "--category", "work", "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Goal added successfully!")

	id := store.Active()[0].ID.String()

	out, err = execute(t, store, "", "progress", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Progress updated to 25%")

	out, err = execute(t, store, "", "list", "--category", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "No goals match your filters")

	_, err = execute(t, store, "", "list", "--priority", "urgent")
	assert.Error(t, err)

	out, err = execute(t, store, "", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing deleted.")
	assert.Len(t, store.Active(), 1)

	_, err = execute(t, store, "", "delete", "--yes", id)
	require.NoError(t, err)
	assert.Empty(t, store.Active())

	out, err = execute(t, store, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Completion: 0%")

	_, err = execute(t, store, "", "complete")
	assert.Error(t, err, "id argument is required")
}

func TestRootCmd_OpenError(t *testing.T) {
	open := func(context.Context, string) (cli.Goals, func(), error) {
		return nil, nil, errors.New("no storage")
	}
	cmd := cli.NewRootCmd(open)
	cmd.SetArgs([]string{"list"})
	cmd.SetOut(&bytes.Buffer{})
	assert.EqualError(t, cmd.Execute(), "no storage")
}

// TestOpenStore тестирует загрузку sqlite через конфиг из окружения
func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GOALS_REPOSITORY_TYPE", "sqlite")
	t.Setenv("GOALS_REPOSITORY_PATH", filepath.Join(dir, "goals.db"))

	ctx := context.Background()
	goals, closeFn, err := cli.OpenStore(ctx, filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)

	_, err = goals.Initialize(ctx)
	require.NoError(t, err)
	_, err = goals.AddGoal(ctx, "Persisted", "work", "low", "")
	require.NoError(t, err)
	closeFn()

	goals, closeFn, err = cli.OpenStore(ctx, filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	defer closeFn()

	_, err = goals.Initialize(ctx)
	require.NoError(t, err)
	require.Len(t, goals.Snapshot().Active, 1)
	assert.Equal(t, "Persisted", goals.Snapshot().Active[0].Title)
}
