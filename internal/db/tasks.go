package db

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/internal/model"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

// TaskFilter holds the optional listing filters; zero values mean "not set".
// All set filters combine with AND.
type TaskFilter struct {
	Status         string
	Priority       string
	Category       string
	AssigneeID     *uint
	Search         string
	DeadlineBefore *time.Time
	DeadlineAfter  *time.Time
	Tags           []string
}

func CreateTaskWithHistory(t *model.Task, h *model.TaskHistory) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return errors.WithStack(err)
		}
		h.TaskID = t.ID
		return errors.WithStack(tx.Create(h).Error)
	})
}

// SaveTaskWithHistory writes the full row and its change records atomically.
func SaveTaskWithHistory(t *model.Task, records []model.TaskHistory) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assignee", "Creator").Save(t).Error; err != nil {
			return errors.WithStack(err)
		}
		if len(records) == 0 {
			return nil
		}
		return errors.WithStack(tx.Create(&records).Error)
	})
}

// DeleteTaskWithHistory removes the row and its trail, keeping one delete
// marker so the transition stays auditable after the cascade.
func DeleteTaskWithHistory(id uint, marker *model.TaskHistory) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Task{}, id).Error; err != nil {
			return errors.WithStack(err)
		}
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskHistory{}).Error; err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(tx.Create(marker).Error)
	})
}

// GetTaskPlain fetches the bare row, no joins. Used for diff snapshots.
func GetTaskPlain(id uint) (*model.Task, error) {
	var t model.Task
	if err := db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(errs.TaskNotFound)
		}
		return nil, errors.Wrapf(err, "failed get task %d", id)
	}
	return &t, nil
}

func GetTask(id uint) (*model.Task, error) {
	var t model.Task
	err := db.Preload("Assignee").Preload("Creator").First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(errs.TaskNotFound)
		}
		return nil, errors.Wrapf(err, "failed get task %d", id)
	}
	return &t, nil
}

// ListTasks returns tasks matching the filter, most recently updated first,
// with assignee and creator summaries joined. Tag overlap is applied after
// the query: tags live in a JSON column and the three supported database
// types have no shared overlap operator.
func ListTasks(f TaskFilter) ([]model.Task, error) {
	tx := db.Model(&model.Task{}).Preload("Assignee").Preload("Creator")
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		tx = tx.Where("priority = ?", f.Priority)
	}
	if f.Category != "" {
		tx = tx.Where("category = ?", f.Category)
	}
	if f.AssigneeID != nil {
		tx = tx.Where("assignee_id = ?", *f.AssigneeID)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.DeadlineBefore != nil {
		tx = tx.Where("deadline <= ?", *f.DeadlineBefore)
	}
	if f.DeadlineAfter != nil {
		tx = tx.Where("deadline >= ?", *f.DeadlineAfter)
	}
	var tasks []model.Task
	if err := tx.Order("updated_at DESC").Find(&tasks).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	if len(f.Tags) == 0 {
		return tasks, nil
	}
	matched := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if utils.SliceOverlap(tasks[i].Tags, f.Tags) {
			matched = append(matched, tasks[i])
		}
	}
	return matched, nil
}

// ListRecentTasks returns at most limit tasks, most recently updated first.
func ListRecentTasks(limit int) ([]model.Task, error) {
	var tasks []model.Task
	tx := db.Model(&model.Task{}).Preload("Assignee").Order("updated_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&tasks).Error
	return tasks, errors.WithStack(err)
}

func CountTasks() (int64, error) {
	var n int64
	return n, errors.WithStack(db.Model(&model.Task{}).Count(&n).Error)
}
