package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sprintdeck/sprintdeck/internal/bootstrap"
	"github.com/sprintdeck/sprintdeck/internal/bootstrap/data"
	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/internal/db"
	"github.com/sprintdeck/sprintdeck/internal/events"
	"github.com/sprintdeck/sprintdeck/internal/op"
	"github.com/sprintdeck/sprintdeck/internal/suggest"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
	"github.com/sprintdeck/sprintdeck/server"
)

var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the board server",
	Run: func(cmd *cobra.Command, args []string) {
		bootstrap.InitConfig()
		bootstrap.Log()
		bootstrap.InitDB()
		data.InitData()

		client := suggest.NewClient(conf.Conf.LLM)
		if item, err := db.GetSetting(conf.SettingLLMEndpoint); err == nil && item != nil {
			client.SetEndpoint(item.Value)
		}
		suggestSvc := suggest.NewService(client)
		hub := events.NewHub()
		services := &server.Services{
			Tasks:   op.NewTaskService(hub),
			Suggest: suggestSvc,
			Hub:     hub,
		}

		if !conf.Conf.Dev {
			gin.SetMode(gin.ReleaseMode)
		}
		engine := gin.New()
		engine.Use(gin.LoggerWithWriter(utils.Log.Out), gin.Recovery())
		server.Init(engine, services)

		if conf.Conf.LLM.Enabled {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := suggestSvc.Ping(ctx); err != nil {
					utils.Log.Warnf("completion endpoint unreachable at %s: %v", suggestSvc.Endpoint(), err)
				} else {
					utils.Log.Infof("completion endpoint connected at %s", suggestSvc.Endpoint())
				}
			}()
		}

		addr := fmt.Sprintf("%s:%d", conf.Conf.Scheme.Address, conf.Conf.Scheme.HttpPort)
		srv := &http.Server{Addr: addr, Handler: engine}
		go func() {
			utils.Log.Infof("start HTTP server @ %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				utils.Log.Fatalf("failed to start http server: %s", err.Error())
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		utils.Log.Println("shutdown server...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			utils.Log.Fatalf("http server shutdown error: %s", err.Error())
		}
		db.Close()
		utils.Log.Println("server exit")
	},
}

func init() {
	RootCmd.AddCommand(ServerCmd)
}
