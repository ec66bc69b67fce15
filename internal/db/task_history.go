package db

import (
	"github.com/pkg/errors"

	"github.com/sprintdeck/sprintdeck/internal/model"
)

// ListTaskHistory returns the audit trail for one task, most recent first,
// with the changing user's summary joined.
func ListTaskHistory(taskID uint) ([]model.TaskHistory, error) {
	var records []model.TaskHistory
	err := db.Model(&model.TaskHistory{}).
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error
	return records, errors.WithStack(err)
}

func CountTaskHistory(taskID uint) (int64, error) {
	var n int64
	err := db.Model(&model.TaskHistory{}).Where("task_id = ?", taskID).Count(&n).Error
	return n, errors.WithStack(err)
}
