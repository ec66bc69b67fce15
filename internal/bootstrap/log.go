package bootstrap

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

func init() {
	utils.Log.SetFormatter(&logrus.TextFormatter{
		ForceColors:               true,
		EnvironmentOverrideColors: true,
		TimestampFormat:           "2006-01-02 15:04:05",
		FullTimestamp:             true,
	})
}

// Log applies level and rotating-file output from the loaded config.
// InitConfig must run first.
func Log() {
	if conf.Conf.Dev {
		utils.Log.SetLevel(logrus.DebugLevel)
		utils.Log.SetReportCaller(true)
	}
	if conf.Conf.Log.Enable {
		w := &lumberjack.Logger{
			Filename:   conf.Conf.Log.Name,
			MaxSize:    conf.Conf.Log.MaxSize,
			MaxBackups: conf.Conf.Log.MaxBackups,
			MaxAge:     conf.Conf.Log.MaxAge,
			Compress:   conf.Conf.Log.Compress,
		}
		utils.Log.SetOutput(io.MultiWriter(os.Stdout, w))
	}
	utils.Log.Infof("init logrus...")
}
