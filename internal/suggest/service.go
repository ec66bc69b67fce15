package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sprintdeck/sprintdeck/internal/model"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

// Service wraps the completion client with the board's analysis
// operations. Each operation builds its prompts, sends one exchange and
// shapes the reply; parse failures degrade to computed fallbacks so a
// chatty model never breaks the endpoint contract.
type Service struct {
	client *Client
}

func NewService(client *Client) *Service {
	return &Service{client: client}
}

func (s *Service) Endpoint() string {
	return s.client.Endpoint()
}

func (s *Service) SetEndpoint(endpoint string) {
	s.client.SetEndpoint(endpoint)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// TaskData carries the current values of the task a suggestion request
// is about. Empty strings mean the field is unset.
type TaskData struct {
	Title               string
	Description         string
	CurrentPriority     string
	CurrentCategory     string
	CurrentDeadline     string
	CurrentAssigneeName string
}

// UserInfo is the roster entry shown to the model as a legal assignee.
type UserInfo struct {
	ID     uint     `json:"id"`
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Skills []string `json:"skills"`
}

// Suggestion is the shaped reply of the suggestion operations.
type Suggestion struct {
	Priority          string  `json:"priority"`
	Category          *string `json:"category"`
	Deadline          *string `json:"deadline"`
	SuggestedAssignee *string `json:"suggested_assignee"`
	Reasoning         string  `json:"reasoning"`
}

// TaskSuggestions asks the model for initial field values for a new
// task. An unparseable reply yields a neutral fallback; a transport
// failure is returned to the caller.
func (s *Service) TaskSuggestions(ctx context.Context, title, description string) (*Suggestion, error) {
	raw, err := s.client.Chat(ctx, suggestionSystemPrompt, buildSuggestionUserPrompt(title, description))
	if err != nil {
		return nil, err
	}
	var parsed Suggestion
	if err := DecodeReply(raw, &parsed); err != nil {
		utils.Log.Warnf("task suggestion reply not parseable: %v", err)
		return &Suggestion{
			Priority:  model.PriorityMedium,
			Reasoning: "Could not parse AI response.",
		}, nil
	}
	if parsed.Priority == "" {
		parsed.Priority = model.PriorityMedium
	}
	if parsed.Reasoning == "" {
		parsed.Reasoning = "No reasoning provided"
	}
	return &parsed, nil
}

// UpdateSuggestions asks the model to revise an existing task's fields,
// constrained to the given roster of assignees. It never returns an
// error: transport and parse failures both fall back to the task's
// current values, and a suggested assignee that matches nobody on the
// roster is reverted with a note appended to the reasoning.
func (s *Service) UpdateSuggestions(ctx context.Context, td TaskData, roster []UserInfo) *Suggestion {
	out := &Suggestion{
		Priority:  orPlaceholder(td.CurrentPriority, model.PriorityMedium),
		Category:  strToNil(td.CurrentCategory),
		Deadline:  strToNil(td.CurrentDeadline),
		Reasoning: "The suggestion service is unavailable, so the existing fields were kept.",
	}
	if td.CurrentAssigneeName != "" {
		out.SuggestedAssignee = &td.CurrentAssigneeName
	}

	raw, err := s.client.Chat(ctx,
		buildUpdateSuggestionSystemPrompt(td),
		buildUpdateSuggestionUserPrompt(td, roster))
	if err != nil {
		utils.Log.Warnf("update suggestion request failed: %v", err)
		return out
	}
	var parsed Suggestion
	if err := DecodeReply(raw, &parsed); err != nil {
		utils.Log.Warnf("update suggestion reply not parseable: %v", err)
		out.Reasoning = "LLM response could not be parsed, so we kept the existing fields."
		return out
	}

	if parsed.Priority != "" {
		out.Priority = parsed.Priority
	}
	if parsed.Category != nil && *parsed.Category != "" {
		out.Category = parsed.Category
	}
	if parsed.Deadline != nil && *parsed.Deadline != "" {
		out.Deadline = parsed.Deadline
	}
	out.SuggestedAssignee = parsed.SuggestedAssignee
	out.Reasoning = orPlaceholder(parsed.Reasoning, "(No reasoning provided)")

	if !rosterHas(roster, out.SuggestedAssignee) {
		suggested := ""
		if out.SuggestedAssignee != nil {
			suggested = *out.SuggestedAssignee
		}
		out.Reasoning += fmt.Sprintf(
			"\n(Note: The AI suggested %q, which doesn't match any real user. Keeping existing assignee.)",
			suggested)
		out.SuggestedAssignee = strToNil(td.CurrentAssigneeName)
	}
	return out
}

func rosterHas(roster []UserInfo, name *string) bool {
	if name == nil {
		return false
	}
	for _, u := range roster {
		if u.Name == *name {
			return true
		}
	}
	return false
}

// QueryReply is the shaped answer to a free-form question.
type QueryReply struct {
	Response string `json:"response"`
}

// CustomQuery forwards a free-form question about a task. Parse
// failures become an apologetic reply; transport failures propagate.
func (s *Service) CustomQuery(ctx context.Context, query string, taskID uint) (*QueryReply, error) {
	raw, err := s.client.Chat(ctx, customQuerySystemPrompt, buildCustomQueryUserPrompt(query, taskID))
	if err != nil {
		return nil, err
	}
	var parsed QueryReply
	if err := DecodeReply(raw, &parsed); err != nil {
		utils.Log.Warnf("custom query reply not parseable: %v", err)
		return &QueryReply{Response: "Sorry, I could not parse the AI response as JSON."}, nil
	}
	if parsed.Response == "" {
		parsed.Response = StripThinking(raw)
	}
	return &parsed, nil
}

// PriorityAdvice is one per-task priority recommendation.
type PriorityAdvice struct {
	TaskID            uint   `json:"task_id"`
	Title             string `json:"title"`
	CurrentPriority   string `json:"current_priority"`
	SuggestedPriority string `json:"suggested_priority"`
	Reason            string `json:"reason"`
}

type priorityReply struct {
	SuggestedPriority string `json:"suggested_priority"`
	Reason            string `json:"reason"`
}

// TaskPriorities reviews each task's priority in turn. A failed round
// trip or reply keeps that task's current priority; the operation
// itself never fails.
func (s *Service) TaskPriorities(ctx context.Context, tasks []model.Task) []PriorityAdvice {
	out := make([]PriorityAdvice, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		advice := PriorityAdvice{
			TaskID:            t.ID,
			Title:             t.Title,
			CurrentPriority:   t.Priority,
			SuggestedPriority: t.Priority,
			Reason:            "Could not analyze this task.",
		}
		raw, err := s.client.Chat(ctx, prioritySystemPrompt,
			buildPriorityUserPrompt(t.Title, t.Description, t.Priority, deadlineText(t), assigneeName(t)))
		if err != nil {
			utils.Log.Warnf("priority analysis failed for task %d: %v", t.ID, err)
			out = append(out, advice)
			continue
		}
		var parsed priorityReply
		if err := DecodeReply(raw, &parsed); err != nil {
			utils.Log.Warnf("priority reply not parseable for task %d: %v", t.ID, err)
			advice.Reason = "Could not parse AI response."
			out = append(out, advice)
			continue
		}
		advice.SuggestedPriority = orPlaceholder(parsed.SuggestedPriority, t.Priority)
		advice.Reason = orPlaceholder(parsed.Reason, "No reasoning provided")
		out = append(out, advice)
	}
	return out
}

// Improvement is one workflow improvement proposal.
type Improvement struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      int    `json:"impact"`
}

type improvementReply struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      any    `json:"impact"`
}

// WorkflowImprovements asks for process-level suggestions across the
// whole board. An unparseable reply yields an empty list; transport
// failures propagate.
func (s *Service) WorkflowImprovements(ctx context.Context, tasks []model.Task) ([]Improvement, error) {
	raw, err := s.client.Chat(ctx, improvementSystemPrompt, buildImprovementUserPrompt(summarizeTasks(tasks)))
	if err != nil {
		return nil, err
	}
	var parsed []improvementReply
	if err := DecodeReply(raw, &parsed); err != nil {
		utils.Log.Warnf("workflow improvement reply not parseable: %v", err)
		return []Improvement{}, nil
	}
	out := make([]Improvement, 0, len(parsed))
	for i, imp := range parsed {
		out = append(out, Improvement{
			ID:          i + 1,
			Title:       imp.Title,
			Description: imp.Description,
			Impact:      clampImpact(asInt(imp.Impact, 3)),
		})
	}
	return out, nil
}

// Bottleneck is one identified workflow bottleneck.
type Bottleneck struct {
	ID            int     `json:"id"`
	Area          string  `json:"area"`
	Severity      string  `json:"severity"`
	Description   string  `json:"description"`
	AffectedTasks int     `json:"affected_tasks"`
	AvgDelay      float64 `json:"avg_delay"`
	Solution      string  `json:"solution"`
}

type bottleneckReply struct {
	Area          string  `json:"area"`
	Severity      string  `json:"severity"`
	Description   string  `json:"description"`
	AffectedTasks any     `json:"affected_tasks"`
	AvgDelay      float64 `json:"avg_delay"`
	Solution      string  `json:"solution"`
}

// Bottlenecks asks for the top stalls in the flow, feeding the model
// per-status dwell statistics. An unparseable reply yields an empty
// list; transport failures propagate.
func (s *Service) Bottlenecks(ctx context.Context, tasks []model.Task, now time.Time) ([]Bottleneck, error) {
	raw, err := s.client.Chat(ctx, bottleneckSystemPrompt, buildBottleneckUserPrompt(collectBottleneckData(tasks, now)))
	if err != nil {
		return nil, err
	}
	var parsed []bottleneckReply
	if err := DecodeReply(raw, &parsed); err != nil {
		utils.Log.Warnf("bottleneck reply not parseable: %v", err)
		return []Bottleneck{}, nil
	}
	out := make([]Bottleneck, 0, len(parsed))
	for i, bn := range parsed {
		out = append(out, Bottleneck{
			ID:            i + 1,
			Area:          bn.Area,
			Severity:      normalizeSeverity(bn.Severity),
			Description:   bn.Description,
			AffectedTasks: asInt(bn.AffectedTasks, 0),
			AvgDelay:      bn.AvgDelay,
			Solution:      bn.Solution,
		})
	}
	return out, nil
}

// ResourceAlert flags a staffing or allocation concern.
type ResourceAlert struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// RiskFactor names a threat to the projected timeline.
type RiskFactor struct {
	Factor      string `json:"factor"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// Prediction is the project-level forecast.
type Prediction struct {
	CompletionPercentage int             `json:"completion_percentage"`
	ProjectedEndDate     string          `json:"projected_end_date"`
	OnSchedule           bool            `json:"on_schedule"`
	ResourceAlerts       []ResourceAlert `json:"resource_alerts"`
	RiskFactors          []RiskFactor    `json:"risk_factors"`
}

type predictionReply struct {
	CompletionPercentage any             `json:"completion_percentage"`
	ProjectedEndDate     string          `json:"projected_end_date"`
	OnSchedule           *bool           `json:"on_schedule"`
	ResourceAlerts       []ResourceAlert `json:"resource_alerts"`
	RiskFactors          []RiskFactor    `json:"risk_factors"`
}

// Predictions forecasts the project from computed statistics. An
// unparseable reply falls back to the raw statistics; transport
// failures propagate.
func (s *Service) Predictions(ctx context.Context, tasks []model.Task, now time.Time) (*Prediction, error) {
	stats := collectProjectStats(tasks, now)
	raw, err := s.client.Chat(ctx, predictionSystemPrompt, buildPredictionUserPrompt(stats))
	if err != nil {
		return nil, err
	}
	fallback := &Prediction{
		CompletionPercentage: stats.CompletionPercentage,
		ProjectedEndDate:     stats.TargetEndDate,
		OnSchedule:           stats.PastDueTasks == 0,
		ResourceAlerts:       []ResourceAlert{},
		RiskFactors:          []RiskFactor{},
	}
	var parsed predictionReply
	if err := DecodeReply(raw, &parsed); err != nil {
		utils.Log.Warnf("prediction reply not parseable: %v", err)
		return fallback, nil
	}
	out := &Prediction{
		CompletionPercentage: asInt(parsed.CompletionPercentage, stats.CompletionPercentage),
		ProjectedEndDate:     orPlaceholder(parsed.ProjectedEndDate, stats.TargetEndDate),
		ResourceAlerts:       []ResourceAlert{},
		RiskFactors:          []RiskFactor{},
	}
	if parsed.OnSchedule != nil {
		out.OnSchedule = *parsed.OnSchedule
	}
	if parsed.ResourceAlerts != nil {
		out.ResourceAlerts = parsed.ResourceAlerts
	}
	if parsed.RiskFactors != nil {
		out.RiskFactors = parsed.RiskFactors
	}
	return out, nil
}

func strToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// asInt tolerates the number-or-string typing models produce.
func asInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		var parsed int
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%d", &parsed); err == nil {
			return parsed
		}
	}
	return fallback
}

func clampImpact(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

func normalizeSeverity(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "medium", "low":
		return strings.ToLower(strings.TrimSpace(s))
	default:
		return "medium"
	}
}
