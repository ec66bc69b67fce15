package handles

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/internal/db"
	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/internal/model"
	"github.com/sprintdeck/sprintdeck/internal/op"
	"github.com/sprintdeck/sprintdeck/internal/suggest"
	"github.com/sprintdeck/sprintdeck/server/common"
	"github.com/sprintdeck/sprintdeck/server/middlewares"
)

type TaskHandler struct {
	svc *op.TaskService
}

func NewTaskHandler(svc *op.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// respTaskErr maps service errors onto status codes: missing rows to
// 404, caller mistakes to 400 with the cause text, anything else to 500
// with a stable message.
func respTaskErr(c *gin.Context, err error, fallback string) {
	switch {
	case errs.IsNotFound(err):
		common.ErrorStrResp(c, "Task not found", 404)
	case errs.IsValidation(err):
		common.ErrorStrResp(c, errors.Cause(err).Error(), 400)
	default:
		common.ErrorResp(c, err, fallback, 500)
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorStrResp(c, "Invalid task id", 400)
		return 0, false
	}
	return uint(id), true
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req op.CreateTaskReq
	var files []model.FileAttachment
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var err error
		req = createReqFromForm(c)
		files, err = saveUploads(c)
		if err != nil {
			common.ErrorResp(c, err, "File upload failed", 400)
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResp(c, err, "Invalid request body", 400)
		return
	}
	task, err := h.svc.Create(req, files, middlewares.CurrentUser(c).UserID)
	if err != nil {
		respTaskErr(c, err, "Failed to create task")
		return
	}
	c.JSON(201, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.svc.List()
	if err != nil {
		common.ErrorResp(c, err, "Failed to retrieve tasks", 500)
		return
	}
	common.SuccessResp(c, tasks)
}

func (h *TaskHandler) ListFiltered(c *gin.Context) {
	filter := db.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Tags:     queryTags(c),
	}
	if raw := c.Query("assignee_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			common.ErrorStrResp(c, "Invalid assignee_id", 400)
			return
		}
		uid := uint(id)
		filter.AssigneeID = &uid
	}
	var err error
	if filter.DeadlineBefore, err = queryTime(c, "deadline_before"); err != nil {
		common.ErrorStrResp(c, "Invalid deadline_before", 400)
		return
	}
	if filter.DeadlineAfter, err = queryTime(c, "deadline_after"); err != nil {
		common.ErrorStrResp(c, "Invalid deadline_after", 400)
		return
	}
	tasks, err := h.svc.ListFiltered(filter)
	if err != nil {
		common.ErrorResp(c, err, "Failed to retrieve filtered tasks", 500)
		return
	}
	common.SuccessResp(c, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.svc.Get(id)
	if err != nil {
		respTaskErr(c, err, "Failed to retrieve task")
		return
	}
	common.SuccessResp(c, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch op.TaskPatch
	var files []model.FileAttachment
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var err error
		patch, err = patchFromForm(c)
		if err != nil {
			common.ErrorResp(c, err, "Invalid request body", 400)
			return
		}
		files, err = saveUploads(c)
		if err != nil {
			common.ErrorResp(c, err, "File upload failed", 400)
			return
		}
	} else if err := c.ShouldBindJSON(&patch); err != nil {
		common.ErrorResp(c, err, "Invalid request body", 400)
		return
	}
	task, err := h.svc.Update(id, patch, files, middlewares.CurrentUser(c).UserID)
	if err != nil {
		respTaskErr(c, err, "Failed to update task")
		return
	}
	common.SuccessResp(c, task)
}

func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorStrResp(c, "Status is required", 400)
		return
	}
	result, err := h.svc.UpdateStatus(id, req.Status, middlewares.CurrentUser(c).UserID)
	if err != nil {
		respTaskErr(c, err, "Failed to update task status")
		return
	}
	common.SuccessResp(c, result)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(id, middlewares.CurrentUser(c).UserID); err != nil {
		respTaskErr(c, err, "Failed to delete task")
		return
	}
	common.SuccessResp(c, gin.H{"message": "Task deleted successfully"})
}

func (h *TaskHandler) History(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	history, err := h.svc.History(id)
	if err != nil {
		respTaskErr(c, err, "Failed to retrieve task history")
		return
	}
	common.SuccessResp(c, history)
}

func (h *TaskHandler) DeleteFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	filename := c.Param("filename")
	task, err := h.svc.RemoveFile(id, filename, middlewares.CurrentUser(c).UserID)
	if err != nil {
		respTaskErr(c, err, "Failed to delete file attachment")
		return
	}
	if err := os.Remove(filepath.Join(conf.Conf.UploadDir(), filepath.Base(filename))); err != nil && !os.IsNotExist(err) {
		common.ErrorResp(c, err, "Failed to delete stored file", 500)
		return
	}
	common.SuccessResp(c, task)
}

// Suggestions answers without the completion endpoint: it keyword-
// matches the stored task, or routes a free-form question through the
// workload-aware advisor when a query parameter is present.
func (h *TaskHandler) Suggestions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.svc.Get(id)
	if err != nil {
		respTaskErr(c, err, "Failed to get AI suggestions")
		return
	}
	query := c.Query("query")
	if query == "" {
		common.SuccessResp(c, suggest.HeuristicSuggestions(task.Title, task.Description, time.Now()))
		return
	}
	tasks, err := db.ListTasks(db.TaskFilter{})
	if err != nil {
		common.ErrorResp(c, err, "Failed to get AI suggestions", 500)
		return
	}
	users, err := db.ListUsers()
	if err != nil {
		common.ErrorResp(c, err, "Failed to get AI suggestions", 500)
		return
	}
	board := suggest.BuildBoardContext(tasks, users)
	current := suggest.QueryTask{
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
	}
	common.SuccessResp(c, suggest.HeuristicQueryAdvice(query, current, board, time.Now()))
}

func queryTags(c *gin.Context) []string {
	tags := c.QueryArray("tags")
	if len(tags) == 1 && strings.Contains(tags[0], ",") {
		tags = strings.Split(tags[0], ",")
		for i := range tags {
			tags[i] = strings.TrimSpace(tags[i])
		}
	}
	return tags
}

func queryTime(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	return op.ParseDeadline(raw)
}
