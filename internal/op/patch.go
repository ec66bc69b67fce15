package op

import (
	"time"

	"github.com/pkg/errors"

	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

// Optional distinguishes an absent JSON field from an explicit null, so a
// patch can clear a nullable column without touching unrelated ones.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := utils.Json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// SetValue marks the field as present with the given value.
func (o *Optional[T]) SetValue(v T) {
	o.Set, o.Valid, o.Value = true, true, v
}

// SetNull marks the field as present but explicitly null.
func (o *Optional[T]) SetNull() {
	var zero T
	o.Set, o.Valid, o.Value = true, false, zero
}

// CreateTaskReq is the validated input shape for task creation.
type CreateTaskReq struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Status           string   `json:"status"`
	Priority         string   `json:"priority"`
	Category         string   `json:"category"`
	Deadline         string   `json:"deadline"`
	AssigneeID       *uint    `json:"assignee_id"`
	EstimatedHours   *float64 `json:"estimated_hours"`
	Tags             []string `json:"tags"`
	Notes            string   `json:"notes"`
	AISuggestions    string   `json:"ai_suggestions"`
	AIRecommendation string   `json:"ai_recommendation"`
}

// TaskPatch is the validated input shape for task updates. Only fields
// present in the request body participate in the diff.
type TaskPatch struct {
	Title            Optional[string]   `json:"title"`
	Description      Optional[string]   `json:"description"`
	Status           Optional[string]   `json:"status"`
	Priority         Optional[string]   `json:"priority"`
	Category         Optional[string]   `json:"category"`
	Deadline         Optional[string]   `json:"deadline"`
	AssigneeID       Optional[uint]     `json:"assignee_id"`
	EstimatedHours   Optional[float64]  `json:"estimated_hours"`
	Tags             Optional[[]string] `json:"tags"`
	Notes            Optional[string]   `json:"notes"`
	AISuggestions    Optional[string]   `json:"ai_suggestions"`
	AIRecommendation Optional[string]   `json:"ai_recommendation"`
}

const deadlineLayout = "2006-01-02"

// ParseDeadline accepts a date-only or RFC3339 timestamp string.
func ParseDeadline(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(deadlineLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid deadline %q", s)
	}
	return &t, nil
}
