package handles

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/sprintdeck/sprintdeck/internal/db"
	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/internal/model"
	"github.com/sprintdeck/sprintdeck/internal/suggest"
	"github.com/sprintdeck/sprintdeck/server/common"
)

const priorityAnalysisLimit = 5

type AIHandler struct {
	svc *suggest.Service
}

func NewAIHandler(svc *suggest.Service) *AIHandler {
	return &AIHandler{svc: svc}
}

func respAIErr(c *gin.Context, err error, fallback string) {
	if errors.Is(err, errs.UpstreamUnavailable) {
		common.ErrorResp(c, err, fallback, 502)
		return
	}
	common.ErrorResp(c, err, fallback, 500)
}

func (h *AIHandler) TaskPriorities(c *gin.Context) {
	tasks, err := db.ListRecentTasks(priorityAnalysisLimit)
	if err != nil {
		common.ErrorResp(c, err, "Error getting AI task priorities", 500)
		return
	}
	common.SuccessResp(c, h.svc.TaskPriorities(c.Request.Context(), tasks))
}

func (h *AIHandler) WorkflowImprovements(c *gin.Context) {
	tasks, err := db.ListTasks(db.TaskFilter{})
	if err != nil {
		common.ErrorResp(c, err, "Error getting workflow improvement suggestions", 500)
		return
	}
	if len(tasks) == 0 {
		common.SuccessResp(c, []suggest.Improvement{})
		return
	}
	improvements, err := h.svc.WorkflowImprovements(c.Request.Context(), tasks)
	if err != nil {
		respAIErr(c, err, "Error getting workflow improvement suggestions")
		return
	}
	common.SuccessResp(c, improvements)
}

func (h *AIHandler) Bottlenecks(c *gin.Context) {
	tasks, err := db.ListTasks(db.TaskFilter{})
	if err != nil {
		common.ErrorResp(c, err, "Error analyzing workflow bottlenecks", 500)
		return
	}
	if len(tasks) == 0 {
		common.SuccessResp(c, []suggest.Bottleneck{})
		return
	}
	bottlenecks, err := h.svc.Bottlenecks(c.Request.Context(), tasks, time.Now())
	if err != nil {
		respAIErr(c, err, "Error analyzing workflow bottlenecks")
		return
	}
	common.SuccessResp(c, bottlenecks)
}

func (h *AIHandler) Predictions(c *gin.Context) {
	tasks, err := db.ListTasks(db.TaskFilter{})
	if err != nil {
		common.ErrorResp(c, err, "Error generating project predictions", 500)
		return
	}
	if len(tasks) == 0 {
		common.SuccessResp(c, nil)
		return
	}
	prediction, err := h.svc.Predictions(c.Request.Context(), tasks, time.Now())
	if err != nil {
		respAIErr(c, err, "Error generating project predictions")
		return
	}
	common.SuccessResp(c, prediction)
}

func (h *AIHandler) Query(c *gin.Context) {
	var req struct {
		Query  string `json:"query"`
		TaskID uint   `json:"taskId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		common.ErrorStrResp(c, "Query is required", 400)
		return
	}
	reply, err := h.svc.CustomQuery(c.Request.Context(), req.Query, req.TaskID)
	if err != nil {
		respAIErr(c, err, "Error processing your query")
		return
	}
	common.SuccessResp(c, reply)
}

// TaskSuggestions proposes field values for a task, constrained to the
// real roster. The reply is always 200 with usable values; degraded
// answers explain themselves in the reasoning text.
func (h *AIHandler) TaskSuggestions(c *gin.Context) {
	var req struct {
		Title               string `json:"title"`
		Description         string `json:"description"`
		CurrentPriority     string `json:"currentPriority"`
		CurrentCategory     string `json:"currentCategory"`
		CurrentDeadline     string `json:"currentDeadline"`
		CurrentAssigneeName string `json:"currentAssigneeName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorStrResp(c, "Title or description is required", 400)
		return
	}
	if req.Title == "" && req.Description == "" {
		common.ErrorStrResp(c, "Title or description is required", 400)
		return
	}
	users, err := db.ListUsers()
	if err != nil {
		common.ErrorResp(c, err, "Error generating AI suggestions for task", 500)
		return
	}
	td := suggest.TaskData{
		Title:               req.Title,
		Description:         req.Description,
		CurrentPriority:     orDefault(req.CurrentPriority, model.PriorityMedium),
		CurrentCategory:     req.CurrentCategory,
		CurrentDeadline:     req.CurrentDeadline,
		CurrentAssigneeName: req.CurrentAssigneeName,
	}
	common.SuccessResp(c, h.svc.UpdateSuggestions(c.Request.Context(), td, rosterOf(users)))
}

func rosterOf(users []model.User) []suggest.UserInfo {
	roster := make([]suggest.UserInfo, 0, len(users))
	for _, u := range users {
		roster = append(roster, suggest.UserInfo{
			ID:     u.ID,
			Name:   u.Name,
			Role:   u.Role,
			Skills: u.Skills,
		})
	}
	return roster
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
