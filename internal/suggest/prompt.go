package suggest

import (
	"fmt"
	"strings"

	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

const suggestionSystemPrompt = `You are an AI assistant providing suggestions for a new task in a kanban board.
Respond ONLY with valid JSON in this format:
{
  "priority": "low|medium|high",
  "category": "string category if relevant",
  "deadline": "YYYY-MM-DD or null",
  "suggested_assignee": "string or null",
  "reasoning": "short explanation of why these suggestions"
}`

func buildSuggestionUserPrompt(title, description string) string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(title)
	b.WriteString("\nDescription: ")
	if description == "" {
		b.WriteString("No description provided")
	} else {
		b.WriteString(description)
	}
	b.WriteString("\n\nPlease suggest a priority, possible category, a recommended deadline, and optionally an assignee.\n")
	b.WriteString(`Return ONLY JSON with "priority", "category", "deadline", "suggested_assignee", and "reasoning".`)
	return b.String()
}

func buildUpdateSuggestionSystemPrompt(td TaskData) string {
	var b strings.Builder
	b.WriteString("You are an AI assistant that suggests possible updates to a task's fields.\n")
	b.WriteString("The user already has:\n")
	fmt.Fprintf(&b, "- priority: %s\n", orPlaceholder(td.CurrentPriority, "medium"))
	fmt.Fprintf(&b, "- category: %s\n", orPlaceholder(td.CurrentCategory, "(none)"))
	fmt.Fprintf(&b, "- deadline: %s\n", orPlaceholder(td.CurrentDeadline, "(none)"))
	fmt.Fprintf(&b, "- assignee: %s\n", orPlaceholder(td.CurrentAssigneeName, "(unassigned)"))
	b.WriteString(`
You have a list of possible assignees you can choose from.
If you want to change the assignee, pick only from this list.
(If you do not want to change assignee, you can keep the same name.)

Return ONLY valid JSON, exactly:
{
  "priority": "low|medium|high",
  "category": "string category or empty string",
  "deadline": "YYYY-MM-DD or null",
  "suggested_assignee": "string or null (must match one of the user names if you want to reassign)",
  "reasoning": "short explanation"
}`)
	return b.String()
}

func buildUpdateSuggestionUserPrompt(td TaskData, roster []UserInfo) string {
	rosterJSON, _ := utils.Json.MarshalIndent(roster, "", "  ")
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %q\n", td.Title)
	fmt.Fprintf(&b, "Description: %q\n\n", orPlaceholder(td.Description, "(none)"))
	b.WriteString("Current fields:\n")
	fmt.Fprintf(&b, "- priority: %s\n", orPlaceholder(td.CurrentPriority, "medium"))
	fmt.Fprintf(&b, "- category: %s\n", orPlaceholder(td.CurrentCategory, "(none)"))
	fmt.Fprintf(&b, "- deadline: %s\n", orPlaceholder(td.CurrentDeadline, "(none)"))
	fmt.Fprintf(&b, "- assignee: %s\n\n", orPlaceholder(td.CurrentAssigneeName, "(unassigned)"))
	b.WriteString("Possible users for assignment:\n")
	b.Write(rosterJSON)
	b.WriteString("\n\nIf you want to change the assignee, pick the name from that user list.\n")
	b.WriteString(`Return ONLY the JSON object with "priority", "category", "deadline", "suggested_assignee", and "reasoning".`)
	return b.String()
}

const customQuerySystemPrompt = `You are an AI assistant analyzing tasks and answering user queries about them.
Respond ONLY with valid JSON in the format: { "response": "Your text answer here" }`

func buildCustomQueryUserPrompt(query string, taskID uint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user asked: %q\n", query)
	if taskID != 0 {
		fmt.Fprintf(&b, "Task ID: %d\n", taskID)
	} else {
		b.WriteString("Task ID: none\n")
	}
	b.WriteString("\nPlease respond with a helpful answer. Return ONLY JSON with this structure:\n")
	b.WriteString(`{ "response": "Your text here" }`)
	return b.String()
}

const prioritySystemPrompt = `You are an AI assistant analyzing kanban board tasks and providing priority recommendations.
For the task I will provide, analyze if its current priority is appropriate or should be changed.
Respond in JSON format only, with this structure:
{
  "suggested_priority": "low|medium|high",
  "reason": "Brief explanation of why this priority is appropriate"
}`

func buildPriorityUserPrompt(title, description, currentPriority, deadline, assignee string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", title)
	fmt.Fprintf(&b, "Description: %s\n", orPlaceholder(description, "No description provided"))
	fmt.Fprintf(&b, "Current Priority: %s\n", currentPriority)
	fmt.Fprintf(&b, "Deadline: %s\n", orPlaceholder(deadline, "Not specified"))
	fmt.Fprintf(&b, "Assignee: %s\n\n", orPlaceholder(assignee, "Unassigned"))
	b.WriteString("Based on this information, analyze if the current priority is appropriate or needs to be changed.\n")
	b.WriteString("Provide your suggested priority and reasoning, in valid JSON only.")
	return b.String()
}

const improvementSystemPrompt = `You are an AI assistant analyzing a kanban board workflow. Based on the task data provided,
identify workflow improvement opportunities.
Respond in JSON format only, with exactly 4 suggestions in this structure:
[
  {
    "title": "Short descriptive title of the improvement",
    "description": "Detailed explanation of the workflow improvement",
    "impact": "A number from 1-5"
  }
]`

func buildImprovementUserPrompt(summaries []taskSummary) string {
	data, _ := utils.Json.MarshalIndent(summaries, "", "  ")
	var b strings.Builder
	b.WriteString("Here is the current task data from the kanban board:\n")
	b.Write(data)
	b.WriteString("\n\nBased on this data, identify 4 workflow improvement suggestions that would help the team work more\n")
	b.WriteString("efficiently. Consider patterns in task management, bottlenecks, priority distribution, and resource allocation.\n")
	b.WriteString("Focus on process improvements rather than specific task content.")
	return b.String()
}

const bottleneckSystemPrompt = `You are an AI assistant analyzing a kanban board for workflow bottlenecks.
Based on the task data and status statistics provided, identify the top 3 bottlenecks.
Respond in JSON format only, with this structure:
[
  {
    "area": "Name of the bottleneck area",
    "severity": "high|medium|low",
    "description": "Detailed description",
    "affected_tasks": Number,
    "avg_delay": Number,
    "solution": "Proposed solution"
  }
]`

func buildBottleneckUserPrompt(data bottleneckData) string {
	body, _ := utils.Json.MarshalIndent(data, "", "  ")
	var b strings.Builder
	b.WriteString("Here is the current task data and status statistics from the kanban board:\n")
	b.Write(body)
	b.WriteString("\n\nAnalyze this data to identify the top 3 bottlenecks in the workflow.\n")
	b.WriteString("For each bottleneck, provide: area, severity (high|medium|low), description,\n")
	b.WriteString("affected_tasks (an estimate), avg_delay, and solution.")
	return b.String()
}

const predictionSystemPrompt = `You are an AI assistant analyzing kanban board data to generate project predictions and insights.
Based on the project statistics provided, generate predictions about project timeline, resource allocation,
and identify potential risk factors.
Respond in JSON format only, with this structure:
{
  "completion_percentage": <integer>,
  "projected_end_date": "YYYY-MM-DD",
  "on_schedule": true|false,
  "resource_alerts": [
    {
      "title": "Brief title",
      "description": "Detailed explanation",
      "severity": "high|medium|low"
    }
  ],
  "risk_factors": [
    {
      "factor": "Name of risk",
      "level": "high|medium|low",
      "description": "Detailed explanation"
    }
  ]
}`

func buildPredictionUserPrompt(stats projectStats) string {
	data, _ := utils.Json.MarshalIndent(stats, "", "  ")
	var b strings.Builder
	b.WriteString("Here are the current project statistics from the kanban board:\n")
	b.Write(data)
	b.WriteString("\n\nBased on this data, generate project predictions that include:\n")
	b.WriteString("1. The current completion percentage\n")
	b.WriteString("2. A projected end date (YYYY-MM-DD)\n")
	b.WriteString("3. Whether the project is on schedule\n")
	b.WriteString("4. 2-3 resource alerts\n")
	b.WriteString("5. 3 risk factors")
	return b.String()
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
