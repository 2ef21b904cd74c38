package view_test

import (
	"bytes"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/view"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeGoal(title string, c goal.Category, p goal.Priority) goal.Goal {
	return goal.Goal{ID: uuid.New(), Title: title, Category: c, Priority: p, Date: "Mon Jan 01 2024"}
}

func visible(goals []goal.Goal, f goal.Filter) func(func(goal.Goal) bool) {
	return func(yield func(goal.Goal) bool) {
		for _, g := range goals {
			if f.Match(g) && !yield(g) {
				return
			}
		}
	}
}

// TestBuildBoard_EmptyStates тестирует три разных пустых состояния
func TestBuildBoard_EmptyStates(t *testing.T) {
	active := []goal.Goal{makeGoal("a", goal.CategoryWork, goal.PriorityLow)}

	tests := []struct {
		name      string
		active    []goal.Goal
		filter    goal.Filter
		wantEmpty *view.EmptyState
	}{
		{name: "nothing at all", active: nil, filter: goal.Filter{}, wantEmpty: &view.EmptyActive},
		{name: "filter on empty day", active: nil, filter: goal.Filter{Category: goal.CategoryHealth}, wantEmpty: &view.EmptyActive},
		{name: "filter hides everything", active: active, filter: goal.Filter{Category: goal.CategoryHealth}, wantEmpty: &view.EmptyFiltered},
		{name: "goals visible", active: active, filter: goal.Filter{}, wantEmpty: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := view.BuildBoard(view.BoardInput{
				Visible: visible(tt.active, tt.filter),
				Filter:  tt.filter,
				Stats:   goal.ComputeStats(len(tt.active), 0),
			})

			assert.Equal(t, tt.wantEmpty, board.ActiveEmpty)
			require.NotNil(t, board.CompletedEmpty)
			assert.Equal(t, view.EmptyCompleted, *board.CompletedEmpty)
		})
	}

	assert.NotEqual(t, view.EmptyActive.Heading, view.EmptyFiltered.Heading)
	assert.NotEqual(t, view.EmptyActive.Heading, view.EmptyCompleted.Heading)
}

// TestBuildBoard_Cards тестирует карточки и порядок
func TestBuildBoard_Cards(t *testing.T) {
	active := []goal.Goal{
		makeGoal("first", goal.CategoryWork, goal.PriorityHigh),
		makeGoal("second", goal.CategoryHealth, goal.PriorityLow),
		makeGoal("third", goal.CategoryWork, goal.PriorityMedium),
	}
	active[0].Progress = 75
	active[0].Description = "**bold** move"

	done := makeGoal("done", goal.CategoryLearning, goal.PriorityLow)
	completedAt := time.Date(2024, 1, 1, 14, 5, 9, 0, time.Local)

	board := view.BuildBoard(view.BoardInput{
		Today:     "Mon Jan 01 2024",
		Visible:   visible(active, goal.Filter{Category: goal.CategoryWork}),
		Completed: []goal.CompletedGoal{done.Complete(completedAt)},
		Filter:    goal.Filter{Category: goal.CategoryWork},
		Stats:     goal.ComputeStats(3, 1),
	})

	require.Len(t, board.Active, 2)
	assert.Equal(t, "first", board.Active[0].Title)
	assert.Equal(t, "third", board.Active[1].Title)
	assert.Equal(t, "priority-high", board.Active[0].PriorityClass)
	assert.Equal(t, 75, board.Active[0].Progress)
	assert.Contains(t, string(board.Active[0].DescriptionHTML), "<strong>bold</strong>")
	assert.Nil(t, board.ActiveEmpty)

	require.Len(t, board.Completed, 1)
	assert.Equal(t, "14:05:09", board.Completed[0].CompletedAt)
	assert.Equal(t, done.ID.String(), board.Completed[0].ID)
	assert.Nil(t, board.CompletedEmpty)
	assert.Equal(t, 25, board.Stats.CompletionRate)
}

// TestRenderMarkdown_Sanitizes тестирует очистку опасного HTML
func TestRenderMarkdown_Sanitizes(t *testing.T) {
	out := string(view.RenderMarkdown("hello <script>alert(1)</script> [x](javascript:alert(1))"))
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "hello")

	assert.Empty(t, view.RenderMarkdown("   "))
}

func TestFilterQuery(t *testing.T) {
	assert.Equal(t, "", view.FilterQuery(goal.Filter{}))
	assert.Equal(t, "?category=work", view.FilterQuery(goal.Filter{Category: goal.CategoryWork}))
	assert.Equal(t, "?category=work&priority=low", view.FilterQuery(goal.Filter{Category: goal.CategoryWork, Priority: goal.PriorityLow}))
}

// TestRenderer_Page тестирует HTML страницу
func TestRenderer_Page(t *testing.T) {
	r, err := view.NewRenderer()
	require.NoError(t, err)

	g := makeGoal("<b>Ship</b> it", goal.CategoryWork, goal.PriorityHigh)
	g.Progress = 50
	board := view.BuildBoard(view.BoardInput{
		Today:   "Mon Jan 01 2024",
		Visible: slices.Values([]goal.Goal{g}),
		Filter:  goal.Filter{Category: goal.CategoryWork},
		Stats:   goal.ComputeStats(1, 0),
	})

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, view.Page{Board: board, Notice: "Goal added successfully!"}))
	html := buf.String()

	assert.Contains(t, html, "Goal added successfully!")
	assert.Contains(t, html, "&lt;b&gt;Ship&lt;/b&gt; it")
	assert.NotContains(t, html, "<b>Ship</b>")
	assert.Contains(t, html, "priority-high")
	assert.Contains(t, html, "width: 50%")
	assert.Contains(t, html, "/goals/"+g.ID.String()+"/complete?category=work")
	assert.Contains(t, html, view.EmptyCompleted.Heading)
	assert.Contains(t, html, `<option value="work" selected>`)
}

// TestRenderer_EmptyPage тестирует пустую страницу и ошибку
func TestRenderer_EmptyPage(t *testing.T) {
	r, err := view.NewRenderer()
	require.NoError(t, err)

	board := view.BuildBoard(view.BoardInput{Today: "Mon Jan 01 2024"})

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, view.Page{
		Board: board,
		Error: "Please fill in all required fields",
		Form:  view.FormValues{Title: "kept"},
	}))
	html := buf.String()

	assert.Contains(t, html, view.EmptyActive.Heading)
	assert.Contains(t, html, view.EmptyCompleted.Heading)
	assert.Contains(t, html, "Please fill in all required fields")
	assert.Contains(t, html, `value="kept"`)
}

func TestRenderer_EditAndConfirm(t *testing.T) {
	r, err := view.NewRenderer()
	require.NoError(t, err)

	g := makeGoal("Read", goal.CategoryLearning, goal.PriorityMedium)
	g.Description = "chapter 3"

	var buf bytes.Buffer
	require.NoError(t, r.Edit(&buf, view.EditPage{Card: view.NewGoalCard(g)}))
	assert.Contains(t, buf.String(), `<option value="learning" selected>`)
	assert.Contains(t, buf.String(), "chapter 3")
	assert.Contains(t, buf.String(), "/goals/"+g.ID.String()+"/edit")

	buf.Reset()
	require.NoError(t, r.Confirm(&buf, view.ConfirmPage{
		Question:  "Are you sure you want to delete this goal?",
		Title:     "Read",
		Action:    "/goals/" + g.ID.String() + "/delete",
		CancelURL: "/",
	}))
	assert.Contains(t, buf.String(), "Are you sure you want to delete this goal?")
	assert.Contains(t, buf.String(), `name="confirm" value="yes"`)
}

// TestRenderer_Text тестирует текстовый вывод для терминала
func TestRenderer_Text(t *testing.T) {
	r, err := view.NewRenderer()
	require.NoError(t, err)

	g := makeGoal("Stretch", goal.CategoryHealth, goal.PriorityLow)
	g.Progress = 25
	g.Description = "line one\nline two"
	done := makeGoal("Email", goal.CategoryWork, goal.PriorityHigh)

	board := view.BuildBoard(view.BoardInput{
		Today:     "Mon Jan 01 2024",
		Visible:   slices.Values([]goal.Goal{g}),
		Completed: []goal.CompletedGoal{done.Complete(time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local))},
		Stats:     goal.ComputeStats(1, 1),
	})

	var buf bytes.Buffer
	require.NoError(t, r.Text(&buf, board))
	out := buf.String()

	assert.Contains(t, out, "Daily Goals · Mon Jan 01 2024")
	assert.Contains(t, out, "Completion: 50%")
	assert.Contains(t, out, "[#####...............]  25%  Stretch  (health, low)")
	assert.Contains(t, out, "line one\n      line two")
	assert.Contains(t, out, "✓ Email  (work, high)  completed 10:00:00")
	assert.NotContains(t, out, "Filter:")

	buf.Reset()
	empty := view.BuildBoard(view.BoardInput{Filter: goal.Filter{Priority: goal.PriorityHigh}, Stats: goal.ComputeStats(2, 0)})
	require.NoError(t, r.Text(&buf, empty))
	assert.Contains(t, buf.String(), "Filter: category=any priority=high")
	assert.Contains(t, buf.String(), view.EmptyFiltered.Heading)
	assert.True(t, strings.Contains(buf.String(), view.EmptyCompleted.Heading))
}

// TestNoticeText тестирует преобразование кодов уведомлений в текст
func TestNoticeText(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: view.CodeAdded, want: view.NoticeAdded},
		{code: view.CodeCompleted, want: view.NoticeCompleted},
		{code: view.CodeUpdated, want: view.NoticeUpdated},
		{code: view.ProgressCode(50), want: "Progress updated to 50%"},
		{code: view.ProgressCode(100), want: "Goal progress updated to 100%!"},
		{code: view.ProgressCode(30)},
		{code: view.ProgressCode(125)},
		{code: "progress-abc"},
		{code: "Goal added successfully!"},
		{code: ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, view.NoticeText(tt.code))
		})
	}
}
