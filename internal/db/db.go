package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/sprintdeck/sprintdeck/internal/model"
)

var db *gorm.DB

// Init installs the gorm handle and migrates the schema.
func Init(d *gorm.DB) error {
	db = d
	return errors.WithStack(d.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.TaskHistory{},
		&model.SettingItem{},
	))
}

func GetDb() *gorm.DB {
	return db
}

func Close() {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
