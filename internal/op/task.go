package op

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sprintdeck/sprintdeck/internal/db"
	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/internal/events"
	"github.com/sprintdeck/sprintdeck/internal/model"
)

// TaskService owns task mutations: it validates input, diffs old against
// new values, persists row plus history atomically, and broadcasts the
// outcome. The hub is injected; the service never holds global state.
type TaskService struct {
	hub *events.Hub
}

func NewTaskService(hub *events.Hub) *TaskService {
	return &TaskService{hub: hub}
}

// StatusUpdateResult is the confirmation payload of a status-only update.
type StatusUpdateResult struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
	Status  string `json:"status"`
}

// Create persists a new task with one create-marker history row and
// broadcasts it. Unset optional fields get fixed defaults.
func (s *TaskService) Create(req CreateTaskReq, files []model.FileAttachment, actorID uint) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.WithStack(errs.EmptyTitle)
	}
	status := model.NormalizeStatus(req.Status)
	if status == "" {
		status = model.StatusTodo
	}
	priority := model.NormalizePriority(req.Priority)
	if priority == "" {
		priority = model.PriorityMedium
	}
	deadline, err := ParseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:            title,
		Description:      req.Description,
		Status:           status,
		Priority:         priority,
		Category:         req.Category,
		Deadline:         deadline,
		AssigneeID:       req.AssigneeID,
		CreatedBy:        actorID,
		EstimatedHours:   req.EstimatedHours,
		Tags:             req.Tags,
		Notes:            req.Notes,
		Files:            files,
		AISuggestions:    req.AISuggestions,
		AIRecommendation: req.AIRecommendation,
	}
	marker := &model.TaskHistory{
		Field:      "status",
		OldValue:   nil,
		NewValue:   strPtr(status),
		ChangeType: model.ChangeCreate,
		ChangedBy:  actorID,
	}
	if err := db.CreateTaskWithHistory(task, marker); err != nil {
		return nil, err
	}
	full, err := db.GetTask(task.ID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(events.TaskCreated, full)
	return full, nil
}

// Update applies a typed patch. For each field present in the patch whose
// value differs from the stored one, exactly one history record is
// written; row and records commit together or not at all.
func (s *TaskService) Update(id uint, patch TaskPatch, files []model.FileAttachment, actorID uint) (*model.Task, error) {
	task, err := db.GetTaskPlain(id)
	if err != nil {
		return nil, err
	}
	snap := snapshotOf(task)
	changes, err := applyPatch(task, patch, snap)
	if err != nil {
		return nil, err
	}
	if len(files) > 0 {
		task.Files = append(task.Files, files...)
	}

	records := make([]model.TaskHistory, 0, len(changes))
	for _, ch := range changes {
		records = append(records, model.TaskHistory{
			TaskID:     id,
			Field:      ch.field,
			OldValue:   ch.oldValue,
			NewValue:   ch.newValue,
			ChangeType: model.ChangeUpdate,
			ChangedBy:  actorID,
		})
	}
	if err := db.SaveTaskWithHistory(task, records); err != nil {
		return nil, err
	}
	full, err := db.GetTask(id)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(events.TaskUpdated, full)
	return full, nil
}

// UpdateStatus records a single status transition and broadcasts a
// lightweight event carrying only id and status.
func (s *TaskService) UpdateStatus(id uint, status string, actorID uint) (*StatusUpdateResult, error) {
	if strings.TrimSpace(status) == "" {
		return nil, errors.WithStack(errs.EmptyStatus)
	}
	normalized := model.NormalizeStatus(status)
	if normalized == "" {
		return nil, errors.WithStack(errs.InvalidStatus)
	}
	task, err := db.GetTaskPlain(id)
	if err != nil {
		return nil, err
	}
	oldStatus := task.Status
	task.Status = normalized
	records := []model.TaskHistory{{
		TaskID:     id,
		Field:      "status",
		OldValue:   strPtr(oldStatus),
		NewValue:   strPtr(normalized),
		ChangeType: model.ChangeUpdate,
		ChangedBy:  actorID,
	}}
	if err := db.SaveTaskWithHistory(task, records); err != nil {
		return nil, err
	}
	s.hub.Publish(events.TaskStatusUpdated, map[string]any{"id": id, "status": normalized})
	return &StatusUpdateResult{
		Message: "Task status updated successfully",
		ID:      id,
		Status:  normalized,
	}, nil
}

// Delete removes the task and its trail, keeping a single delete marker,
// then broadcasts the deletion.
func (s *TaskService) Delete(id uint, actorID uint) error {
	task, err := db.GetTaskPlain(id)
	if err != nil {
		return err
	}
	marker := &model.TaskHistory{
		TaskID:     id,
		Field:      "status",
		OldValue:   strPtr(task.Status),
		NewValue:   strPtr("deleted"),
		ChangeType: model.ChangeDelete,
		ChangedBy:  actorID,
	}
	if err := db.DeleteTaskWithHistory(id, marker); err != nil {
		return err
	}
	s.hub.Publish(events.TaskDeleted, map[string]any{"id": id})
	return nil
}

// RemoveFile detaches a stored attachment from the task and records the
// removal. The caller is responsible for the bytes on disk.
func (s *TaskService) RemoveFile(id uint, storedName string, actorID uint) (*model.Task, error) {
	task, err := db.GetTaskPlain(id)
	if err != nil {
		return nil, err
	}
	kept := make([]model.FileAttachment, 0, len(task.Files))
	var removed *model.FileAttachment
	for _, f := range task.Files {
		if f.StoredName == storedName && removed == nil {
			detached := f
			removed = &detached
			continue
		}
		kept = append(kept, f)
	}
	if removed == nil {
		return nil, errors.Wrapf(errs.TaskNotFound, "no attachment %s on task %d", storedName, id)
	}
	task.Files = kept
	records := []model.TaskHistory{{
		TaskID:     id,
		Field:      "files",
		OldValue:   strPtr(removed.Name),
		NewValue:   nil,
		ChangeType: model.ChangeUpdate,
		ChangedBy:  actorID,
	}}
	if err := db.SaveTaskWithHistory(task, records); err != nil {
		return nil, err
	}
	full, err := db.GetTask(id)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(events.TaskUpdated, full)
	return full, nil
}

func (s *TaskService) Get(id uint) (*model.Task, error) {
	return db.GetTask(id)
}

func (s *TaskService) List() ([]model.Task, error) {
	return db.ListTasks(db.TaskFilter{})
}

func (s *TaskService) ListFiltered(f db.TaskFilter) ([]model.Task, error) {
	return db.ListTasks(f)
}

// History returns the audit trail for an existing task, most recent first.
func (s *TaskService) History(id uint) ([]model.TaskHistory, error) {
	if _, err := db.GetTaskPlain(id); err != nil {
		return nil, err
	}
	return db.ListTaskHistory(id)
}

// applyPatch mutates task in place and returns one change per field whose
// patched value differs from the snapshot. The update timestamp never
// participates in the diff.
func applyPatch(task *model.Task, patch TaskPatch, snap snapshot) ([]fieldChange, error) {
	var changes []fieldChange

	if patch.Title.Set {
		title := strings.TrimSpace(patch.Title.Value)
		if !patch.Title.Valid || title == "" {
			return nil, errors.WithStack(errs.EmptyTitle)
		}
		if title != snap.title {
			task.Title = title
			changes = append(changes, fieldChange{"title", strPtr(snap.title), strPtr(title)})
		}
	}
	if patch.Description.Set {
		desc := ""
		if patch.Description.Valid {
			desc = patch.Description.Value
		}
		if desc != snap.description {
			task.Description = desc
			changes = append(changes, fieldChange{"description", strOrNil(snap.description), strOrNil(desc)})
		}
	}
	if patch.Status.Set {
		if !patch.Status.Valid {
			return nil, errors.WithStack(errs.EmptyStatus)
		}
		status := model.NormalizeStatus(patch.Status.Value)
		if status == "" {
			return nil, errors.WithStack(errs.InvalidStatus)
		}
		if status != snap.status {
			task.Status = status
			changes = append(changes, fieldChange{"status", strPtr(snap.status), strPtr(status)})
		}
	}
	if patch.Priority.Set {
		if !patch.Priority.Valid {
			return nil, errors.WithStack(errs.InvalidPriority)
		}
		priority := model.NormalizePriority(patch.Priority.Value)
		if priority == "" {
			return nil, errors.WithStack(errs.InvalidPriority)
		}
		if priority != snap.priority {
			task.Priority = priority
			changes = append(changes, fieldChange{"priority", strPtr(snap.priority), strPtr(priority)})
		}
	}
	if patch.Category.Set {
		category := ""
		if patch.Category.Valid {
			category = patch.Category.Value
		}
		if category != snap.category {
			task.Category = category
			changes = append(changes, fieldChange{"category", strOrNil(snap.category), strOrNil(category)})
		}
	}
	if patch.Deadline.Set {
		var deadline *time.Time
		if patch.Deadline.Valid && patch.Deadline.Value != "" {
			parsed, err := ParseDeadline(patch.Deadline.Value)
			if err != nil {
				return nil, err
			}
			deadline = parsed
		}
		if !timeEq(deadline, snap.deadline) {
			task.Deadline = deadline
			changes = append(changes, fieldChange{"deadline", timeStr(snap.deadline), timeStr(deadline)})
		}
	}
	if patch.AssigneeID.Set {
		var assignee *uint
		if patch.AssigneeID.Valid {
			v := patch.AssigneeID.Value
			assignee = &v
		}
		if !uintEq(assignee, snap.assigneeID) {
			task.AssigneeID = assignee
			changes = append(changes, fieldChange{"assignee_id", uintStr(snap.assigneeID), uintStr(assignee)})
		}
	}
	if patch.EstimatedHours.Set {
		var hours *float64
		if patch.EstimatedHours.Valid {
			v := patch.EstimatedHours.Value
			hours = &v
		}
		if !floatEq(hours, snap.estimatedHours) {
			task.EstimatedHours = hours
			changes = append(changes, fieldChange{"estimated_hours", floatStr(snap.estimatedHours), floatStr(hours)})
		}
	}
	if patch.Tags.Set {
		var tags []string
		if patch.Tags.Valid {
			tags = patch.Tags.Value
		}
		if !tagsEq(tags, snap.tags) {
			task.Tags = tags
			changes = append(changes, fieldChange{"tags", tagsStr(snap.tags), tagsStr(tags)})
		}
	}
	if patch.Notes.Set {
		notes := ""
		if patch.Notes.Valid {
			notes = patch.Notes.Value
		}
		if notes != snap.notes {
			task.Notes = notes
			changes = append(changes, fieldChange{"notes", strOrNil(snap.notes), strOrNil(notes)})
		}
	}
	if patch.AISuggestions.Set {
		v := ""
		if patch.AISuggestions.Valid {
			v = patch.AISuggestions.Value
		}
		if v != snap.aiSuggestions {
			task.AISuggestions = v
			changes = append(changes, fieldChange{"ai_suggestions", strOrNil(snap.aiSuggestions), strOrNil(v)})
		}
	}
	if patch.AIRecommendation.Set {
		v := ""
		if patch.AIRecommendation.Valid {
			v = patch.AIRecommendation.Value
		}
		if v != snap.aiRecommendation {
			task.AIRecommendation = v
			changes = append(changes, fieldChange{"ai_recommendation", strOrNil(snap.aiRecommendation), strOrNil(v)})
		}
	}
	return changes, nil
}
