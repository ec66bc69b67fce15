package bootstrap

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/internal/db"
)

// InitDB opens the configured database and runs migrations.
func InitDB() {
	logLevel := logger.Silent
	if conf.Conf.Dev {
		logLevel = logger.Info
	}
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: conf.Conf.Database.TablePrefix,
		},
	}
	database := conf.Conf.Database
	var dialector gorm.Dialector
	switch database.Type {
	case "sqlite3":
		if !(strings.HasSuffix(database.DBFile, ".db") && len(database.DBFile) > 3) {
			log.Fatalf("db name error.")
		}
		dialector = sqlite.Open(fmt.Sprintf("%s?_journal=WAL&_vacuum=incremental", database.DBFile))
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			database.User, database.Password, database.Host, database.Port, database.Name)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			database.Host, database.User, database.Password, database.Name, database.Port, database.SSLMode)
		dialector = postgres.Open(dsn)
	default:
		log.Fatalf("not supported database type: %s", database.Type)
	}
	gormDB, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		log.Fatalf("failed to connect database: %+v", err)
	}
	if err := db.Init(gormDB); err != nil {
		log.Fatalf("failed to migrate database: %+v", err)
	}
}
