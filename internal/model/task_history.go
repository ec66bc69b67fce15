package model

import "time"

const (
	ChangeCreate = "create"
	ChangeUpdate = "update"
	ChangeDelete = "delete"
)

// TaskHistory is one audit-trail row: a single field transition on one task.
// No database-level foreign key: the delete marker row outlives its task.
type TaskHistory struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"-"`
	TaskID     uint      `gorm:"column:task_id;index:idx_history_task" json:"task_id"`
	Field      string    `gorm:"column:field;size:64" json:"field"`
	OldValue   *string   `gorm:"column:old_value;size:1024" json:"old_value"`
	NewValue   *string   `gorm:"column:new_value;size:1024" json:"new_value"`
	ChangeType string    `gorm:"column:change_type;size:16" json:"change_type"`
	ChangedBy  uint      `gorm:"column:changed_by" json:"changed_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User *UserSummary `gorm:"foreignKey:ChangedBy;references:ID" json:"user,omitempty"`
}

func (TaskHistory) TableName() string {
	return "task_histories"
}
