package handles

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/internal/db"
	"github.com/sprintdeck/sprintdeck/internal/model"
	"github.com/sprintdeck/sprintdeck/internal/suggest"
	"github.com/sprintdeck/sprintdeck/server/common"
)

type SettingHandler struct {
	suggest *suggest.Service
}

func NewSettingHandler(svc *suggest.Service) *SettingHandler {
	return &SettingHandler{suggest: svc}
}

// GetLLMURL reads the persisted endpoint, falling back to the
// configured default when it has never been changed.
func (h *SettingHandler) GetLLMURL(c *gin.Context) {
	item, err := db.GetSetting(conf.SettingLLMEndpoint)
	if err != nil {
		common.ErrorResp(c, err, "Error reading LLM URL configuration", 500)
		return
	}
	url := conf.Conf.LLM.Endpoint
	if item != nil {
		url = item.Value
	}
	common.SuccessResp(c, gin.H{"llmUrl": url})
}

// UpdateLLMURL persists a new endpoint and points the live client at it
// without a restart.
func (h *SettingHandler) UpdateLLMURL(c *gin.Context) {
	var req struct {
		LLMURL string `json:"llmUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.LLMURL) == "" {
		common.ErrorStrResp(c, "LLM URL is required", 400)
		return
	}
	url := strings.TrimSpace(req.LLMURL)
	err := db.SaveSetting(&model.SettingItem{Key: conf.SettingLLMEndpoint, Value: url})
	if err != nil {
		common.ErrorResp(c, err, "Error updating LLM URL configuration", 500)
		return
	}
	h.suggest.SetEndpoint(url)
	common.SuccessResp(c, gin.H{"message": "LLM URL updated successfully"})
}
