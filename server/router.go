package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/internal/events"
	"github.com/sprintdeck/sprintdeck/internal/op"
	"github.com/sprintdeck/sprintdeck/internal/suggest"
	"github.com/sprintdeck/sprintdeck/server/common"
	"github.com/sprintdeck/sprintdeck/server/handles"
	"github.com/sprintdeck/sprintdeck/server/middlewares"
)

// Services bundles everything the routes need. Construction happens in
// the command layer so tests can wire their own instances.
type Services struct {
	Tasks   *op.TaskService
	Suggest *suggest.Service
	Hub     *events.Hub
}

// Init mounts the full API surface onto e.
func Init(e *gin.Engine, s *Services) {
	corsConfig := cors.DefaultConfig()
	if conf.Conf.ClientURL == "" || conf.Conf.ClientURL == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{conf.Conf.ClientURL}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	e.Use(cors.New(corsConfig))

	e.GET("/ws", s.Hub.HandleWS)

	api := e.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		common.SuccessResp(c, gin.H{
			"status":    "OK",
			"message":   "API server is running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	auth := api.Group("/auth")
	auth.POST("/login", handles.Login)
	auth.POST("/logout", handles.Logout)

	taskHandler := handles.NewTaskHandler(s.Tasks)
	tasks := api.Group("/tasks", middlewares.Auth)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/filtered", taskHandler.ListFiltered)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.DELETE("/:id/files/:filename", taskHandler.DeleteFile)
	tasks.GET("/:id/history", taskHandler.History)
	tasks.GET("/:id/ai-suggestions", taskHandler.Suggestions)

	users := api.Group("/users", middlewares.Auth)
	users.GET("", handles.ListUsers)
	users.GET("/profile", handles.Profile)

	settingHandler := handles.NewSettingHandler(s.Suggest)
	settings := api.Group("/settings", middlewares.Auth)
	settings.GET("/llm-url", settingHandler.GetLLMURL)
	settings.POST("/llm-url", settingHandler.UpdateLLMURL)

	aiHandler := handles.NewAIHandler(s.Suggest)
	ai := api.Group("/ai", middlewares.Auth)
	ai.GET("/priorities", aiHandler.TaskPriorities)
	ai.GET("/workflow-improvements", aiHandler.WorkflowImprovements)
	ai.GET("/bottlenecks", aiHandler.Bottlenecks)
	ai.GET("/predictions", aiHandler.Predictions)
	ai.POST("/query", aiHandler.Query)
	ai.POST("/task-suggestions", aiHandler.TaskSuggestions)

	e.NoRoute(func(c *gin.Context) {
		common.ErrorStrResp(c, "API endpoint not found: "+c.Request.URL.Path, 404)
	})
}
