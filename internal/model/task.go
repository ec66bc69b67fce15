package model

import (
	"strings"
	"time"
)

// Task statuses map to the board columns. Backlog is accepted from older
// clients and kept as-is; anything else normalizes to empty.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusDone       = "done"
	StatusBacklog    = "backlog"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// FileAttachment describes one uploaded file kept on local disk.
type FileAttachment struct {
	Name       string `json:"name"`
	StoredName string `json:"stored_name"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mime_type"`
}

type Task struct {
	ID               uint             `gorm:"column:id;primaryKey" json:"id"`
	Title            string           `gorm:"column:title;size:255;not null" json:"title"`
	Description      string           `gorm:"column:description;type:text" json:"description"`
	Status           string           `gorm:"column:status;size:32;index:idx_task_status;default:todo" json:"status"`
	Priority         string           `gorm:"column:priority;size:16;default:medium" json:"priority"`
	Category         string           `gorm:"column:category;size:255" json:"category"`
	Deadline         *time.Time       `gorm:"column:deadline;index:idx_task_deadline" json:"deadline"`
	AssigneeID       *uint            `gorm:"column:assignee_id;index:idx_task_assignee" json:"assignee_id"`
	CreatedBy        uint             `gorm:"column:created_by" json:"created_by"`
	EstimatedHours   *float64         `gorm:"column:estimated_hours" json:"estimated_hours"`
	Tags             []string         `gorm:"column:tags;serializer:json;type:text" json:"tags"`
	Notes            string           `gorm:"column:notes;type:text" json:"notes"`
	Files            []FileAttachment `gorm:"column:file_attachments;serializer:json;type:text" json:"file_attachments"`
	AISuggestions    string           `gorm:"column:ai_suggestions;type:text" json:"ai_suggestions"`
	AIRecommendation string           `gorm:"column:ai_recommendation;type:text" json:"ai_recommendation"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime;index:idx_task_updated" json:"updated_at"`

	Assignee *UserSummary `gorm:"foreignKey:AssigneeID;references:ID" json:"assignee,omitempty"`
	Creator  *UserSummary `gorm:"foreignKey:CreatedBy;references:ID" json:"creator,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}

// NormalizeStatus maps user input to a canonical status, "" when unknown.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case StatusTodo:
		return StatusTodo
	case "in-progress", "inprogress", "in progress", StatusInProgress:
		return StatusInProgress
	case StatusReview:
		return StatusReview
	case StatusDone:
		return StatusDone
	case StatusBacklog:
		return StatusBacklog
	default:
		return ""
	}
}

// NormalizePriority maps user input to a canonical priority, "" when unknown.
func NormalizePriority(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case PriorityLow:
		return PriorityLow
	case PriorityMedium:
		return PriorityMedium
	case PriorityHigh, "critical":
		return PriorityHigh
	default:
		return ""
	}
}
