package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/internal/model"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

// fakeCompletions serves the chat-completions shape with a canned reply.
func fakeCompletions(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		body := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		data, err := utils.Json.Marshal(body)
		require.NoError(t, err)
		_, _ = w.Write(data)
	}))
}

func newTestService(endpoint string) *Service {
	cfg := conf.LLM{Endpoint: endpoint, Model: "test-model", Temperature: 0.7, MaxTokens: -1, TimeoutSec: 5}
	return NewService(NewClient(cfg))
}

func TestTaskSuggestionsParsesReply(t *testing.T) {
	srv := fakeCompletions(t, `{"priority":"high","category":"Testing","deadline":"2026-09-10","suggested_assignee":null,"reasoning":"tight deadline"}`)
	defer srv.Close()

	svc := newTestService(srv.URL)
	s, err := svc.TaskSuggestions(context.Background(), "Fix flaky suite", "")
	require.NoError(t, err)
	assert.Equal(t, "high", s.Priority)
	require.NotNil(t, s.Category)
	assert.Equal(t, "Testing", *s.Category)
	assert.Nil(t, s.SuggestedAssignee)
	assert.Equal(t, "tight deadline", s.Reasoning)
}

func TestTaskSuggestionsFallbackOnGarbage(t *testing.T) {
	srv := fakeCompletions(t, "I would rather write a poem about tasks.")
	defer srv.Close()

	svc := newTestService(srv.URL)
	s, err := svc.TaskSuggestions(context.Background(), "Fix flaky suite", "")
	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, s.Priority)
	assert.Equal(t, "Could not parse AI response.", s.Reasoning)
}

func TestTaskSuggestionsTransportError(t *testing.T) {
	svc := newTestService("http://127.0.0.1:1")
	_, err := svc.TaskSuggestions(context.Background(), "Fix flaky suite", "")
	require.ErrorIs(t, err, errs.UpstreamUnavailable)
}

func TestUpdateSuggestionsRevertsUnknownAssignee(t *testing.T) {
	srv := fakeCompletions(t, `{"priority":"high","category":"Backend","deadline":"2026-09-10","suggested_assignee":"Nobody Real","reasoning":"made up"}`)
	defer srv.Close()

	svc := newTestService(srv.URL)
	td := TaskData{Title: "Rotate keys", CurrentPriority: "medium", CurrentAssigneeName: "Dana Fields"}
	roster := []UserInfo{{ID: 2, Name: "Dana Fields", Role: "developer"}}

	s := svc.UpdateSuggestions(context.Background(), td, roster)
	require.NotNil(t, s.SuggestedAssignee)
	assert.Equal(t, "Dana Fields", *s.SuggestedAssignee)
	assert.Contains(t, s.Reasoning, `"Nobody Real"`)
	assert.Contains(t, s.Reasoning, "Keeping existing assignee")
	assert.Equal(t, "high", s.Priority)
}

func TestUpdateSuggestionsKeepsRosterAssignee(t *testing.T) {
	srv := fakeCompletions(t, `{"priority":"low","category":"","deadline":null,"suggested_assignee":"Dana Fields","reasoning":"light workload"}`)
	defer srv.Close()

	svc := newTestService(srv.URL)
	td := TaskData{Title: "Tidy backlog", CurrentPriority: "medium", CurrentCategory: "Planning"}
	roster := []UserInfo{{ID: 2, Name: "Dana Fields", Role: "developer"}}

	s := svc.UpdateSuggestions(context.Background(), td, roster)
	require.NotNil(t, s.SuggestedAssignee)
	assert.Equal(t, "Dana Fields", *s.SuggestedAssignee)
	assert.Equal(t, "light workload", s.Reasoning)
	require.NotNil(t, s.Category) // empty reply keeps the current category
	assert.Equal(t, "Planning", *s.Category)
}

func TestUpdateSuggestionsNeverFails(t *testing.T) {
	svc := newTestService("http://127.0.0.1:1")
	td := TaskData{Title: "Offline", CurrentPriority: "high", CurrentAssigneeName: "Dana Fields"}

	s := svc.UpdateSuggestions(context.Background(), td, nil)
	assert.Equal(t, "high", s.Priority)
	require.NotNil(t, s.SuggestedAssignee)
	assert.Equal(t, "Dana Fields", *s.SuggestedAssignee)
	assert.NotEmpty(t, s.Reasoning)
}

func TestCustomQueryFallbackMessage(t *testing.T) {
	srv := fakeCompletions(t, "not json at all")
	defer srv.Close()

	svc := newTestService(srv.URL)
	reply, err := svc.CustomQuery(context.Background(), "what next?", 7)
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I could not parse the AI response as JSON.", reply.Response)
}

func TestCustomQueryTransportError(t *testing.T) {
	svc := newTestService("http://127.0.0.1:1")
	_, err := svc.CustomQuery(context.Background(), "what next?", 0)
	require.ErrorIs(t, err, errs.UpstreamUnavailable)
}

func TestTaskPrioritiesKeepsCurrentOnFailure(t *testing.T) {
	svc := newTestService("http://127.0.0.1:1")
	tasks := []model.Task{
		{Title: "A", Priority: model.PriorityHigh},
		{Title: "B", Priority: model.PriorityLow},
	}
	advice := svc.TaskPriorities(context.Background(), tasks)
	require.Len(t, advice, 2)
	assert.Equal(t, model.PriorityHigh, advice[0].SuggestedPriority)
	assert.Equal(t, model.PriorityLow, advice[1].SuggestedPriority)
}

func TestWorkflowImprovementsShapesReply(t *testing.T) {
	srv := fakeCompletions(t, `[{"title":"Limit WIP","description":"Cap in-progress work","impact":"4"},{"title":"Daily triage","description":"Review backlog daily","impact":9}]`)
	defer srv.Close()

	svc := newTestService(srv.URL)
	improvements, err := svc.WorkflowImprovements(context.Background(), []model.Task{{Title: "T"}})
	require.NoError(t, err)
	require.Len(t, improvements, 2)
	assert.Equal(t, 1, improvements[0].ID)
	assert.Equal(t, 4, improvements[0].Impact) // string impact coerced
	assert.Equal(t, 5, improvements[1].Impact) // clamped to scale
}

func TestBottlenecksEmptyOnGarbage(t *testing.T) {
	srv := fakeCompletions(t, "no structured data here")
	defer srv.Close()

	svc := newTestService(srv.URL)
	bottlenecks, err := svc.Bottlenecks(context.Background(), []model.Task{{Title: "T"}}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, bottlenecks)
}

func TestPredictionsFallbackUsesComputedStats(t *testing.T) {
	srv := fakeCompletions(t, "cannot comply")
	defer srv.Close()

	now := time.Now()
	past := now.Add(-48 * time.Hour)
	tasks := []model.Task{
		{Title: "Done", Status: model.StatusDone},
		{Title: "Late", Status: model.StatusInProgress, Deadline: &past},
	}
	svc := newTestService(srv.URL)
	p, err := svc.Predictions(context.Background(), tasks, now)
	require.NoError(t, err)
	assert.Equal(t, 50, p.CompletionPercentage)
	assert.False(t, p.OnSchedule)
	assert.Equal(t, now.AddDate(0, 3, 0).Format("2006-01-02"), p.ProjectedEndDate)
	assert.Empty(t, p.ResourceAlerts)
}

func TestSetEndpointSwapsTarget(t *testing.T) {
	svc := newTestService("http://old.invalid/v1")
	svc.SetEndpoint("http://new.invalid/v1/")
	assert.Equal(t, "http://new.invalid/v1", svc.Endpoint())
}
