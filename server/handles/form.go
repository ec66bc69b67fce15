package handles

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/sprintdeck/sprintdeck/internal/op"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

// Multipart requests carry scalar fields as form values. Tags arrive
// either as a JSON array string or as a comma separated list.

func formTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := utils.Json.Unmarshal([]byte(raw), &tags); err == nil {
			return tags
		}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func createReqFromForm(c *gin.Context) op.CreateTaskReq {
	req := op.CreateTaskReq{
		Title:            c.PostForm("title"),
		Description:      c.PostForm("description"),
		Status:           c.PostForm("status"),
		Priority:         c.PostForm("priority"),
		Category:         c.PostForm("category"),
		Deadline:         c.PostForm("deadline"),
		Tags:             formTags(c.PostForm("tags")),
		Notes:            c.PostForm("notes"),
		AISuggestions:    c.PostForm("ai_suggestions"),
		AIRecommendation: c.PostForm("ai_recommendation"),
	}
	if raw := c.PostForm("assignee_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			uid := uint(id)
			req.AssigneeID = &uid
		}
	}
	if raw := c.PostForm("estimated_hours"); raw != "" {
		if hours, err := strconv.ParseFloat(raw, 64); err == nil {
			req.EstimatedHours = &hours
		}
	}
	return req
}

// patchFromForm builds a patch from form values. Only keys present in
// the form are marked set; an empty value on a nullable field clears it.
func patchFromForm(c *gin.Context) (op.TaskPatch, error) {
	var patch op.TaskPatch
	form, err := c.MultipartForm()
	if err != nil {
		return patch, errors.Wrap(err, "failed to parse multipart form")
	}
	has := func(key string) (string, bool) {
		vals, ok := form.Value[key]
		if !ok || len(vals) == 0 {
			return "", false
		}
		return vals[0], true
	}

	if v, ok := has("title"); ok {
		patch.Title.SetValue(v)
	}
	if v, ok := has("description"); ok {
		patch.Description.SetValue(v)
	}
	if v, ok := has("status"); ok {
		patch.Status.SetValue(v)
	}
	if v, ok := has("priority"); ok {
		patch.Priority.SetValue(v)
	}
	if v, ok := has("category"); ok {
		patch.Category.SetValue(v)
	}
	if v, ok := has("deadline"); ok {
		if v == "" {
			patch.Deadline.SetNull()
		} else {
			patch.Deadline.SetValue(v)
		}
	}
	if v, ok := has("assignee_id"); ok {
		if v == "" {
			patch.AssigneeID.SetNull()
		} else {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return patch, errors.Errorf("invalid assignee_id: %s", v)
			}
			patch.AssigneeID.SetValue(uint(id))
		}
	}
	if v, ok := has("estimated_hours"); ok {
		if v == "" {
			patch.EstimatedHours.SetNull()
		} else {
			hours, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return patch, errors.Errorf("invalid estimated_hours: %s", v)
			}
			patch.EstimatedHours.SetValue(hours)
		}
	}
	if v, ok := has("tags"); ok {
		patch.Tags.SetValue(formTags(v))
	}
	if v, ok := has("notes"); ok {
		patch.Notes.SetValue(v)
	}
	if v, ok := has("ai_suggestions"); ok {
		patch.AISuggestions.SetValue(v)
	}
	if v, ok := has("ai_recommendation"); ok {
		patch.AIRecommendation.SetValue(v)
	}
	return patch, nil
}
