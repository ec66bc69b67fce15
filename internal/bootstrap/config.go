package bootstrap

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

// InitConfig loads .env when present, overlays environment variables on
// the defaults and prepares the data directories.
func InitConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Log.Warnf("failed to load .env file: %v", err)
	}
	cfg := conf.Default()
	if err := env.Parse(cfg); err != nil {
		utils.Log.Fatalf("failed to parse config from environment: %+v", err)
	}
	conf.Conf = cfg

	for _, dir := range []string{cfg.DataDir, cfg.UploadDir(), filepath.Dir(cfg.Log.Name)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			utils.Log.Fatalf("failed to create directory %s: %+v", dir, err)
		}
	}
}
