package data

import (
	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/internal/db"
	"github.com/sprintdeck/sprintdeck/internal/model"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

func initSettings() {
	item, err := db.GetSetting(conf.SettingLLMEndpoint)
	if err != nil {
		utils.Log.Fatalf("[init setting] failed to query settings: %+v", err)
	}
	if item != nil {
		return
	}
	err = db.SaveSetting(&model.SettingItem{
		Key:   conf.SettingLLMEndpoint,
		Value: conf.Conf.LLM.Endpoint,
	})
	if err != nil {
		utils.Log.Fatalf("[init setting] failed to save default endpoint: %+v", err)
	}
}
