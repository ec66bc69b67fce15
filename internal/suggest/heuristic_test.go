package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/sprintdeck/internal/model"
)

func TestHeuristicSuggestionsKeywords(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	s := HeuristicSuggestions("URGENT: patch the login flow", "implement the code fix", now)
	assert.Equal(t, model.PriorityHigh, s.Priority)
	require.NotNil(t, s.Category)
	assert.Equal(t, "Development", *s.Category)
	assert.Contains(t, s.Recommendation, "high priority")
	assert.Equal(t, 0.85, s.Confidence)

	s = HeuristicSuggestions("Tidy icons when possible", "", now)
	assert.Equal(t, model.PriorityLow, s.Priority)

	s = HeuristicSuggestions("Write onboarding docs", "", now)
	assert.Equal(t, model.PriorityMedium, s.Priority)
	require.NotNil(t, s.Category)
	assert.Equal(t, "Documentation", *s.Category)
}

func TestBuildBoardContext(t *testing.T) {
	assignee := uint(2)
	tasks := []model.Task{
		{Title: "A", Status: model.StatusTodo, Category: "Design", AssigneeID: &assignee},
		{Title: "B", Status: model.StatusDone, Category: "Design", AssigneeID: &assignee},
		{Title: "C", Status: model.StatusInProgress},
	}
	users := []model.User{
		{ID: 2, Name: "Dana Fields", Role: "developer"},
		{ID: 3, Name: "Riley Chen", Role: "designer"},
	}

	board := BuildBoardContext(tasks, users)
	assert.Equal(t, 3, board.TotalTasks)
	assert.Equal(t, 1, board.StatusCounts[model.StatusTodo])
	assert.Equal(t, []string{"Design"}, board.Categories)

	require.Len(t, board.UserWorkloads, 2)
	assert.Equal(t, 2, board.UserWorkloads[0].TaskCount)
	assert.Equal(t, 1, board.UserWorkloads[0].ActiveTasks) // done task excluded
	assert.Zero(t, board.UserWorkloads[1].TaskCount)
}

func TestHeuristicQueryAdviceRouting(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	board := BoardContext{
		TotalTasks:   4,
		StatusCounts: map[string]int{model.StatusTodo: 2, model.StatusInProgress: 1},
		UserWorkloads: []BoardUserLoad{
			{ID: 2, Name: "Dana Fields", Role: "Developer", ActiveTasks: 3},
			{ID: 3, Name: "Riley Chen", Role: "Designer", ActiveTasks: 0},
		},
	}
	current := QueryTask{Title: "Design the settings screen", Description: "new UI"}

	advice := HeuristicQueryAdvice("who should take this?", current, board, now)
	require.NotNil(t, advice.AssigneeID)
	assert.Equal(t, "3", *advice.AssigneeID) // designer match, least loaded
	assert.Contains(t, advice.Response, "Riley Chen")

	advice = HeuristicQueryAdvice("when is a realistic deadline?", current, board, now)
	require.NotNil(t, advice.Deadline)
	assert.Contains(t, advice.Response, "active tasks")

	advice = HeuristicQueryAdvice("how important is this?", QueryTask{Title: "fix crash bug"}, board, now)
	require.NotNil(t, advice.Priority)
	assert.Equal(t, model.PriorityHigh, *advice.Priority)

	advice = HeuristicQueryAdvice("what kind of task is it?", current, board, now)
	require.NotNil(t, advice.Category)
	assert.Equal(t, "Design", *advice.Category)

	advice = HeuristicQueryAdvice("tell me something", current, board, now)
	assert.Contains(t, advice.Response, "next sprint")
}

func TestHeuristicQueryAdviceWithoutWorkloadData(t *testing.T) {
	advice := HeuristicQueryAdvice("who should take this?", QueryTask{}, BoardContext{}, time.Now())
	assert.Nil(t, advice.AssigneeID)
	assert.Contains(t, advice.Response, "No user workload data")
}
