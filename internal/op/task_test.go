package op

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sprintdeck/sprintdeck/internal/db"
	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/internal/events"
	"github.com/sprintdeck/sprintdeck/internal/model"
)

func newTestService(t *testing.T) *TaskService {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Init(gormDB))
	require.NoError(t, db.CreateUser(&model.User{Name: "Admin User", Email: "admin@example.com", Role: "admin"}))
	require.NoError(t, db.CreateUser(&model.User{Name: "Dana Fields", Email: "dana@example.com", Role: "developer"}))
	return NewTaskService(events.NewHub())
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := newTestService(t)

	task, err := svc.Create(CreateTaskReq{Title: "  Ship the release  "}, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ship the release", task.Title)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	require.NotNil(t, task.Creator)
	assert.Equal(t, "Admin User", task.Creator.Name)

	history, err := db.ListTaskHistory(task.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.ChangeCreate, history[0].ChangeType)
	assert.Equal(t, "status", history[0].Field)
	assert.Nil(t, history[0].OldValue)
	require.NotNil(t, history[0].NewValue)
	assert.Equal(t, model.StatusTodo, *history[0].NewValue)
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(CreateTaskReq{Title: "   "}, nil, 1)
	require.ErrorIs(t, err, errs.EmptyTitle)

	count, err := db.CountTasks()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateNormalizesUnknownStatus(t *testing.T) {
	svc := newTestService(t)

	task, err := svc.Create(CreateTaskReq{Title: "Odd status", Status: "garbage"}, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusTodo, task.Status)
}

func TestUpdateWritesOneRecordPerChangedField(t *testing.T) {
	svc := newTestService(t)
	task, err := svc.Create(CreateTaskReq{Title: "Draft docs", Priority: model.PriorityLow}, nil, 1)
	require.NoError(t, err)

	var patch TaskPatch
	patch.Title.SetValue("Draft the API docs")
	patch.Priority.SetValue(model.PriorityHigh)
	patch.Deadline.SetValue("2026-09-15")
	patch.Description.SetValue("") // unchanged, both empty

	updated, err := svc.Update(task.ID, patch, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, "Draft the API docs", updated.Title)
	assert.Equal(t, model.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.Deadline)

	history, err := db.ListTaskHistory(task.ID)
	require.NoError(t, err)
	require.Len(t, history, 4) // create marker + three changes

	byField := map[string]model.TaskHistory{}
	for _, h := range history {
		if h.ChangeType == model.ChangeUpdate {
			byField[h.Field] = h
		}
	}
	require.Len(t, byField, 3)

	titleRow := byField["title"]
	require.NotNil(t, titleRow.OldValue)
	assert.Equal(t, "Draft docs", *titleRow.OldValue)
	require.NotNil(t, titleRow.NewValue)
	assert.Equal(t, "Draft the API docs", *titleRow.NewValue)
	assert.Equal(t, uint(2), titleRow.ChangedBy)

	priorityRow := byField["priority"]
	assert.Equal(t, model.PriorityLow, *priorityRow.OldValue)
	assert.Equal(t, model.PriorityHigh, *priorityRow.NewValue)

	deadlineRow := byField["deadline"]
	assert.Nil(t, deadlineRow.OldValue)
	assert.Equal(t, "2026-09-15", *deadlineRow.NewValue)
}

func TestUpdateNoopWritesNothing(t *testing.T) {
	svc := newTestService(t)
	task, err := svc.Create(CreateTaskReq{Title: "Stable task", Priority: model.PriorityHigh}, nil, 1)
	require.NoError(t, err)

	var patch TaskPatch
	patch.Title.SetValue("Stable task")
	patch.Priority.SetValue(model.PriorityHigh)

	_, err = svc.Update(task.ID, patch, nil, 1)
	require.NoError(t, err)

	count, err := db.CountTaskHistory(task.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count) // only the create marker
}

func TestUpdateClearsNullableField(t *testing.T) {
	svc := newTestService(t)
	assignee := uint(2)
	task, err := svc.Create(CreateTaskReq{Title: "Handover", AssigneeID: &assignee}, nil, 1)
	require.NoError(t, err)

	var patch TaskPatch
	patch.AssigneeID.SetNull()

	updated, err := svc.Update(task.ID, patch, nil, 1)
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)

	history, err := db.ListTaskHistory(task.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	row := history[0] // most recent first
	assert.Equal(t, "assignee_id", row.Field)
	require.NotNil(t, row.OldValue)
	assert.Equal(t, "2", *row.OldValue)
	assert.Nil(t, row.NewValue)
}

func TestUpdateUnknownTask(t *testing.T) {
	svc := newTestService(t)
	var patch TaskPatch
	patch.Title.SetValue("whatever")
	_, err := svc.Update(999, patch, nil, 1)
	require.ErrorIs(t, err, errs.TaskNotFound)
}

func TestUpdateStatus(t *testing.T) {
	svc := newTestService(t)
	task, err := svc.Create(CreateTaskReq{Title: "Drag me"}, nil, 1)
	require.NoError(t, err)

	result, err := svc.UpdateStatus(task.ID, "in_progress", 1)
	require.NoError(t, err)
	assert.Equal(t, "Task status updated successfully", result.Message)
	assert.Equal(t, task.ID, result.ID)
	assert.Equal(t, model.StatusInProgress, result.Status)

	history, err := db.ListTaskHistory(task.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "status", history[0].Field)
	assert.Equal(t, model.StatusTodo, *history[0].OldValue)
	assert.Equal(t, model.StatusInProgress, *history[0].NewValue)
}

func TestUpdateStatusValidation(t *testing.T) {
	svc := newTestService(t)
	task, err := svc.Create(CreateTaskReq{Title: "Guarded"}, nil, 1)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(task.ID, "   ", 1)
	require.ErrorIs(t, err, errs.EmptyStatus)

	_, err = svc.UpdateStatus(task.ID, "launching", 1)
	require.ErrorIs(t, err, errs.InvalidStatus)

	_, err = svc.UpdateStatus(404, model.StatusDone, 1)
	require.ErrorIs(t, err, errs.TaskNotFound)

	count, err := db.CountTaskHistory(task.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeleteLeavesSingleMarker(t *testing.T) {
	svc := newTestService(t)
	task, err := svc.Create(CreateTaskReq{Title: "Doomed"}, nil, 1)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(task.ID, model.StatusReview, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(task.ID, 1))

	_, err = svc.Get(task.ID)
	require.ErrorIs(t, err, errs.TaskNotFound)

	history, err := db.ListTaskHistory(task.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.ChangeDelete, history[0].ChangeType)
	assert.Equal(t, model.StatusReview, *history[0].OldValue)
	assert.Equal(t, "deleted", *history[0].NewValue)

	tasks, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListFiltered(t *testing.T) {
	svc := newTestService(t)
	assignee := uint(2)
	sep := "2026-09-01"
	oct := "2026-10-20"

	_, err := svc.Create(CreateTaskReq{
		Title: "Fix login BUG", Status: model.StatusInProgress, Priority: model.PriorityHigh,
		Tags: []string{"auth", "backend"}, Deadline: sep, AssigneeID: &assignee,
	}, nil, 1)
	require.NoError(t, err)
	_, err = svc.Create(CreateTaskReq{
		Title: "Polish landing page", Status: model.StatusTodo, Priority: model.PriorityLow,
		Tags: []string{"frontend"}, Deadline: oct,
	}, nil, 1)
	require.NoError(t, err)

	tasks, err := svc.ListFiltered(db.TaskFilter{Status: model.StatusInProgress})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Fix login BUG", tasks[0].Title)

	tasks, err = svc.ListFiltered(db.TaskFilter{Search: "bug"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	tasks, err = svc.ListFiltered(db.TaskFilter{Tags: []string{"backend", "infra"}})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Fix login BUG", tasks[0].Title)

	before, err := ParseDeadline("2026-09-30")
	require.NoError(t, err)
	tasks, err = svc.ListFiltered(db.TaskFilter{DeadlineBefore: before})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Fix login BUG", tasks[0].Title)

	after, err := ParseDeadline("2026-09-30")
	require.NoError(t, err)
	tasks, err = svc.ListFiltered(db.TaskFilter{DeadlineAfter: after})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Polish landing page", tasks[0].Title)

	tasks, err = svc.ListFiltered(db.TaskFilter{Status: model.StatusInProgress, Priority: model.PriorityLow})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = svc.ListFiltered(db.TaskFilter{AssigneeID: &assignee})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.NotNil(t, tasks[0].Assignee)
	assert.Equal(t, "Dana Fields", tasks[0].Assignee.Name)
}

func TestListOrdersByRecency(t *testing.T) {
	svc := newTestService(t)
	first, err := svc.Create(CreateTaskReq{Title: "Older"}, nil, 1)
	require.NoError(t, err)
	_, err = svc.Create(CreateTaskReq{Title: "Newer"}, nil, 1)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.UpdateStatus(first.ID, model.StatusDone, 1)
	require.NoError(t, err)

	tasks, err := svc.List()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Older", tasks[0].Title)
}

func TestParseDeadlineFormats(t *testing.T) {
	d, err := ParseDeadline("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())

	d, err = ParseDeadline("2026-03-05T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.March, d.Month())

	d, err = ParseDeadline("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDeadline("next tuesday")
	require.Error(t, err)
}
