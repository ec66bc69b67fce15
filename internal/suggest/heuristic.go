package suggest

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/sprintdeck/sprintdeck/internal/model"
)

// The heuristic advisor answers without the completion endpoint. It
// keyword-matches the task text and weighs board workload, so it stays
// usable when no model is running.

// HeuristicSuggestion mirrors the Suggestion shape plus a confidence
// score, since keyword matching is a guess rather than an analysis.
type HeuristicSuggestion struct {
	Priority       string  `json:"priority"`
	Category       *string `json:"category"`
	Deadline       string  `json:"deadline"`
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
}

// BoardUserLoad is one teammate's share of the board.
type BoardUserLoad struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	TaskCount   int    `json:"taskCount"`
	ActiveTasks int    `json:"activeTasks"`
}

// BoardContext summarizes the whole board for workload-aware answers.
type BoardContext struct {
	TotalTasks    int
	StatusCounts  map[string]int
	UserWorkloads []BoardUserLoad
	Categories    []string
}

// BuildBoardContext derives per-user workloads and status counts from
// the current tasks and roster.
func BuildBoardContext(tasks []model.Task, users []model.User) BoardContext {
	ctx := BoardContext{
		TotalTasks:   len(tasks),
		StatusCounts: make(map[string]int),
	}
	seenCategories := make(map[string]struct{})
	for i := range tasks {
		t := &tasks[i]
		ctx.StatusCounts[t.Status]++
		if t.Category != "" {
			if _, ok := seenCategories[t.Category]; !ok {
				seenCategories[t.Category] = struct{}{}
				ctx.Categories = append(ctx.Categories, t.Category)
			}
		}
	}
	for _, u := range users {
		load := BoardUserLoad{ID: u.ID, Name: u.Name, Role: u.Role}
		for i := range tasks {
			t := &tasks[i]
			if t.AssigneeID == nil || *t.AssigneeID != u.ID {
				continue
			}
			load.TaskCount++
			if t.Status != model.StatusDone {
				load.ActiveTasks++
			}
		}
		ctx.UserWorkloads = append(ctx.UserWorkloads, load)
	}
	return ctx
}

// HeuristicSuggestions guesses priority, category and a deadline from
// keywords in the task text.
func HeuristicSuggestions(title, description string, now time.Time) *HeuristicSuggestion {
	text := strings.ToLower(title + " " + description)

	priority := model.PriorityMedium
	if containsAny(text, "urgent", "critical", "important", "asap") {
		priority = model.PriorityHigh
	} else if containsAny(text, "when possible", "low priority", "eventually") {
		priority = model.PriorityLow
	}

	var category *string
	switch {
	case containsAny(text, "design", "ui", "ux"):
		category = strToNil("Design")
	case containsAny(text, "develop", "code", "implement", "programming"):
		category = strToNil("Development")
	case containsAny(text, "test", "qa", "quality"):
		category = strToNil("Testing")
	case containsAny(text, "document", "docs"):
		category = strToNil("Documentation")
	case containsAny(text, "regulatory", "compliance", "legal"):
		category = strToNil("Regulatory")
	}

	var daysToAdd int
	switch priority {
	case model.PriorityHigh:
		daysToAdd = rand.Intn(3) + 3
	case model.PriorityLow:
		daysToAdd = rand.Intn(7) + 14
	default:
		daysToAdd = rand.Intn(7) + 7
	}
	deadline := now.AddDate(0, 0, daysToAdd).Format("2006-01-02")

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the task description, I'd recommend treating this as a %s priority task", priority)
	if category != nil {
		fmt.Fprintf(&b, " in the %s category", *category)
	}
	fmt.Fprintf(&b, ". The estimated completion time is approximately %d days.", daysToAdd)

	return &HeuristicSuggestion{
		Priority:       priority,
		Category:       category,
		Deadline:       deadline,
		Recommendation: b.String(),
		Confidence:     0.85,
	}
}

// QueryTask is the minimal view of the task a query is about.
type QueryTask struct {
	Title       string
	Description string
	Priority    string
}

// QueryAdvice is the heuristic answer to a free-form board question.
// Nil fields mean the answer carries no concrete value for them.
type QueryAdvice struct {
	Response   string  `json:"response"`
	Priority   *string `json:"priority"`
	Category   *string `json:"category"`
	AssigneeID *string `json:"assignee_id"`
	Deadline   *string `json:"deadline"`
}

// HeuristicQueryAdvice routes the question by keyword: deadline,
// assignee, priority and category questions each get a workload-aware
// answer; anything else gets general advice.
func HeuristicQueryAdvice(query string, current QueryTask, board BoardContext, now time.Time) *QueryAdvice {
	q := strings.ToLower(query)
	if current.Priority == "" {
		current.Priority = model.PriorityMedium
	}

	switch {
	case containsAny(q, "deadline", "when", "due date"):
		return adviseDeadline(board, now)
	case containsAny(q, "who", "assign"):
		return adviseAssignee(current, board)
	case containsAny(q, "priority", "important", "urgency"):
		return advisePriority(current, board)
	case containsAny(q, "category", "type", "what kind"):
		return adviseCategory(current, board)
	}

	todoCount := board.StatusCounts[model.StatusTodo]
	return &QueryAdvice{
		Response: fmt.Sprintf(
			"This task appears to be a %s priority item that should be addressed within the next sprint. "+
				"Consider breaking it down into smaller subtasks if it seems complex. "+
				"Based on the current board state with %d items in the backlog, careful prioritization is important.",
			current.Priority, todoCount),
	}
}

func adviseDeadline(board BoardContext, now time.Time) *QueryAdvice {
	if len(board.UserWorkloads) == 0 {
		return &QueryAdvice{Response: "No user workload data available to estimate a realistic deadline."}
	}
	totalActive := board.StatusCounts[model.StatusTodo] + board.StatusCounts[model.StatusInProgress]
	workloadFactor := float64(totalActive) / 20
	if workloadFactor > 1 {
		workloadFactor = 1
	}
	daysToAdd := int(3 + workloadFactor*11)
	deadline := now.AddDate(0, 0, daysToAdd)
	iso := deadline.Format("2006-01-02")
	return &QueryAdvice{
		Response: fmt.Sprintf(
			"Based on the current team workload (%d active tasks) and complexity of this task, "+
				"I recommend a deadline of %s. This allows sufficient time for completion while considering other priorities.",
			totalActive, deadline.Format("1/2/2006")),
		Deadline: &iso,
	}
}

func adviseAssignee(current QueryTask, board BoardContext) *QueryAdvice {
	if len(board.UserWorkloads) == 0 {
		return &QueryAdvice{Response: "No user workload data available to suggest an assignee."}
	}
	text := strings.ToLower(current.Title + " " + current.Description)
	relevant := filterByRole(board.UserWorkloads, text)
	if len(relevant) == 0 {
		relevant = board.UserWorkloads
	}
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].ActiveTasks < relevant[j].ActiveTasks
	})
	pick := relevant[0]
	loadWord := "manageable"
	if pick.ActiveTasks == 0 {
		loadWord = "optimal"
	}
	id := fmt.Sprint(pick.ID)
	return &QueryAdvice{
		Response: fmt.Sprintf(
			"I recommend assigning this task to %s (%s) who currently has %d active tasks, "+
				"which is %s for taking on new work. Their expertise aligns well with this task's requirements.",
			pick.Name, pick.Role, pick.ActiveTasks, loadWord),
		AssigneeID: &id,
	}
}

func filterByRole(users []BoardUserLoad, taskText string) []BoardUserLoad {
	var roleMatch func(role string) bool
	switch {
	case containsAny(taskText, "design", "ui"):
		roleMatch = func(role string) bool { return strings.Contains(role, "design") }
	case containsAny(taskText, "develop", "code"):
		roleMatch = func(role string) bool {
			return strings.Contains(role, "develop") || strings.Contains(role, "engineer")
		}
	case containsAny(taskText, "test", "qa"):
		roleMatch = func(role string) bool { return strings.Contains(role, "qa") }
	default:
		return users
	}
	var out []BoardUserLoad
	for _, u := range users {
		if roleMatch(strings.ToLower(u.Role)) {
			out = append(out, u)
		}
	}
	return out
}

func advisePriority(current QueryTask, board BoardContext) *QueryAdvice {
	text := strings.ToLower(current.Title + " " + current.Description)
	total := board.TotalTasks
	if total == 0 {
		total = 1
	}
	highCount := board.StatusCounts[model.PriorityHigh]
	highRatio := float64(highCount) / float64(total)

	var priority, explanation string
	switch {
	case containsAny(text, "urgent", "critical", "asap", "immediately"):
		priority = model.PriorityHigh
		explanation = "The task contains terms indicating urgency."
	case highRatio > 0.3:
		priority = model.PriorityMedium
		explanation = fmt.Sprintf(
			"There are already %d high priority tasks (%d%% of all tasks), so consider this as medium priority to avoid priority inflation.",
			highCount, int(highRatio*100+0.5))
	case containsAny(text, "feature", "enhance"):
		priority = model.PriorityMedium
		explanation = "This appears to be a feature enhancement."
	case containsAny(text, "bug", "fix", "issue"):
		priority = model.PriorityHigh
		explanation = "This appears to be a bug fix which generally warrants higher priority."
	default:
		priority = model.PriorityMedium
		explanation = "Based on the task description, this seems to be a standard task."
	}
	return &QueryAdvice{
		Response: fmt.Sprintf(
			"I recommend setting this task to %s priority. %s Consider the impact on project timelines and current team workload when finalizing priority.",
			priority, explanation),
		Priority: &priority,
	}
}

func adviseCategory(current QueryTask, board BoardContext) *QueryAdvice {
	text := strings.ToLower(current.Title + " " + current.Description)
	var category string
	switch {
	case containsAny(text, "design", "ui", "interface"):
		category = "Design"
	case containsAny(text, "code", "implement", "develop", "programming"):
		category = "Development"
	case containsAny(text, "test", "qa", "verify", "validate"):
		category = "Testing"
	case containsAny(text, "document", "doc"):
		category = "Documentation"
	case containsAny(text, "review", "check"):
		category = "Review"
	case containsAny(text, "regulatory", "compliance"):
		category = "Regulatory"
	case len(board.Categories) > 0:
		category = board.Categories[0]
	default:
		category = "Development"
	}
	return &QueryAdvice{
		Response: fmt.Sprintf(
			"Based on the task description, I recommend categorizing this as %q. This categorization helps with filtering and organizing related tasks.",
			category),
		Category: &category,
	}
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
