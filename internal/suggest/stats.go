package suggest

import (
	"math"
	"time"

	"github.com/sprintdeck/sprintdeck/internal/model"
)

type taskSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
	Deadline    string `json:"deadline"`
	CreatedAt   string `json:"created_at"`
}

type dwellStat struct {
	Count   int     `json:"count"`
	AvgDays float64 `json:"avg_days"`
}

type bottleneckTask struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	Status           string `json:"status"`
	Priority         string `json:"priority"`
	Assignee         string `json:"assignee"`
	DaysSinceCreated int    `json:"days_since_created"`
	DaysSinceUpdated int    `json:"days_since_updated"`
}

type bottleneckData struct {
	Tasks            []bottleneckTask     `json:"tasks"`
	StatusStatistics map[string]dwellStat `json:"status_statistics"`
}

type roleLoad struct {
	Assigned int            `json:"assigned"`
	ByStatus map[string]int `json:"by_status"`
}

type projectStats struct {
	TotalTasks           int                 `json:"total_tasks"`
	CompletedTasks       int                 `json:"completed_tasks"`
	CompletionPercentage int                 `json:"completion_percentage"`
	PastDueTasks         int                 `json:"past_due_tasks"`
	StatusDistribution   map[string]int      `json:"status_distribution"`
	RoleAssignments      map[string]roleLoad `json:"role_assignments"`
	TargetEndDate        string              `json:"target_end_date"`
}

func assigneeName(t *model.Task) string {
	if t.Assignee == nil {
		return ""
	}
	return t.Assignee.Name
}

func deadlineText(t *model.Task) string {
	if t.Deadline == nil {
		return ""
	}
	return t.Deadline.Format("2006-01-02")
}

func summarizeTasks(tasks []model.Task) []taskSummary {
	out := make([]taskSummary, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		out = append(out, taskSummary{
			ID:          t.ID,
			Title:       t.Title,
			Description: orPlaceholder(t.Description, "No description"),
			Status:      t.Status,
			Priority:    t.Priority,
			Assignee:    orPlaceholder(assigneeName(t), "Unassigned"),
			Deadline:    orPlaceholder(deadlineText(t), "Not specified"),
			CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func collectBottleneckData(tasks []model.Task, now time.Time) bottleneckData {
	data := bottleneckData{
		Tasks:            make([]bottleneckTask, 0, len(tasks)),
		StatusStatistics: make(map[string]dwellStat),
	}
	dwellSums := make(map[string]float64)
	for i := range tasks {
		t := &tasks[i]
		daysSinceUpdated := int(math.Ceil(now.Sub(t.UpdatedAt).Hours() / 24))
		data.Tasks = append(data.Tasks, bottleneckTask{
			ID:               t.ID,
			Title:            t.Title,
			Status:           t.Status,
			Priority:         t.Priority,
			Assignee:         orPlaceholder(assigneeName(t), "Unassigned"),
			DaysSinceCreated: int(math.Ceil(now.Sub(t.CreatedAt).Hours() / 24)),
			DaysSinceUpdated: daysSinceUpdated,
		})
		stat := data.StatusStatistics[t.Status]
		stat.Count++
		data.StatusStatistics[t.Status] = stat
		dwellSums[t.Status] += float64(daysSinceUpdated)
	}
	for status, stat := range data.StatusStatistics {
		stat.AvgDays = dwellSums[status] / float64(stat.Count)
		data.StatusStatistics[status] = stat
	}
	return data
}

func collectProjectStats(tasks []model.Task, now time.Time) projectStats {
	stats := projectStats{
		TotalTasks:         len(tasks),
		StatusDistribution: make(map[string]int),
		RoleAssignments:    make(map[string]roleLoad),
		TargetEndDate:      now.AddDate(0, 3, 0).Format("2006-01-02"),
	}
	for i := range tasks {
		t := &tasks[i]
		stats.StatusDistribution[t.Status]++
		if t.Status == model.StatusDone {
			stats.CompletedTasks++
		}
		if t.Deadline != nil && t.Deadline.Before(now) && t.Status != model.StatusDone {
			stats.PastDueTasks++
		}
		if t.Assignee != nil {
			role := orPlaceholder(t.Assignee.Role, "Unspecified")
			load := stats.RoleAssignments[role]
			if load.ByStatus == nil {
				load.ByStatus = make(map[string]int)
			}
			load.Assigned++
			load.ByStatus[t.Status]++
			stats.RoleAssignments[role] = load
		}
	}
	if stats.TotalTasks > 0 {
		stats.CompletionPercentage = int(math.Round(float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100))
	}
	return stats
}
