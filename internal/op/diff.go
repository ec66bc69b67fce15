package op

import (
	"strconv"
	"time"

	"github.com/sprintdeck/sprintdeck/internal/model"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

// fieldChange is one recorded transition; nil values serialize to SQL NULL,
// never the string "null".
type fieldChange struct {
	field    string
	oldValue *string
	newValue *string
}

func strPtr(s string) *string {
	return &s
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func uintStr(v *uint) *string {
	if v == nil {
		return nil
	}
	return strPtr(strconv.FormatUint(uint64(*v), 10))
}

func floatStr(v *float64) *string {
	if v == nil {
		return nil
	}
	return strPtr(strconv.FormatFloat(*v, 'f', -1, 64))
}

func timeStr(v *time.Time) *string {
	if v == nil {
		return nil
	}
	return strPtr(v.Format(deadlineLayout))
}

func tagsStr(tags []string) *string {
	if len(tags) == 0 {
		return nil
	}
	b, err := utils.Json.Marshal(tags)
	if err != nil {
		return nil
	}
	return strPtr(string(b))
}

func uintEq(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timeEq(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func tagsEq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// snapshot captures the typed pre-mutation values the diff compares against.
type snapshot struct {
	title            string
	description      string
	status           string
	priority         string
	category         string
	deadline         *time.Time
	assigneeID       *uint
	estimatedHours   *float64
	tags             []string
	notes            string
	aiSuggestions    string
	aiRecommendation string
}

func snapshotOf(t *model.Task) snapshot {
	return snapshot{
		title:            t.Title,
		description:      t.Description,
		status:           t.Status,
		priority:         t.Priority,
		category:         t.Category,
		deadline:         t.Deadline,
		assigneeID:       t.AssigneeID,
		estimatedHours:   t.EstimatedHours,
		tags:             append([]string(nil), t.Tags...),
		notes:            t.Notes,
		aiSuggestions:    t.AISuggestions,
		aiRecommendation: t.AIRecommendation,
	}
}
