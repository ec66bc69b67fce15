package conf

import (
	"path/filepath"
)

type Database struct {
	Type        string `json:"type" env:"DB_TYPE" envDefault:"sqlite3"`
	Host        string `json:"host" env:"DB_HOST"`
	Port        int    `json:"port" env:"DB_PORT"`
	User        string `json:"user" env:"DB_USER"`
	Password    string `json:"password" env:"DB_PASSWORD"`
	Name        string `json:"name" env:"DB_NAME"`
	DBFile      string `json:"db_file" env:"DB_FILE" envDefault:"data/board.db"`
	SSLMode     string `json:"ssl_mode" env:"DB_SSL_MODE" envDefault:"disable"`
	TablePrefix string `json:"table_prefix" env:"DB_TABLE_PREFIX"`
}

type Scheme struct {
	Address  string `json:"address" env:"HTTP_ADDRESS" envDefault:"0.0.0.0"`
	HttpPort int    `json:"http_port" env:"HTTP_PORT" envDefault:"5000"`
}

type LLM struct {
	Enabled     bool    `json:"enabled" env:"ENABLE_AI" envDefault:"true"`
	Endpoint    string  `json:"endpoint" env:"LM_STUDIO_ENDPOINT" envDefault:"http://localhost:1234/v1"`
	Model       string  `json:"model" env:"LM_STUDIO_MODEL" envDefault:"deepseek-r1-distill-qwen-14b"`
	Temperature float64 `json:"temperature" env:"LM_STUDIO_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int     `json:"max_tokens" env:"LM_STUDIO_MAX_TOKENS" envDefault:"-1"`
	TimeoutSec  int     `json:"timeout_sec" env:"LM_STUDIO_TIMEOUT" envDefault:"120"`
}

type LogConfig struct {
	Enable     bool   `json:"enable" env:"LOG_ENABLE" envDefault:"false"`
	Name       string `json:"name" env:"LOG_NAME" envDefault:"data/log/board.log"`
	MaxSize    int    `json:"max_size" env:"LOG_MAX_SIZE" envDefault:"10"`
	MaxBackups int    `json:"max_backups" env:"LOG_MAX_BACKUPS" envDefault:"5"`
	MaxAge     int    `json:"max_age" env:"LOG_MAX_AGE" envDefault:"28"`
	Compress   bool   `json:"compress" env:"LOG_COMPRESS" envDefault:"false"`
}

type Config struct {
	Dev       bool      `json:"dev" env:"DEV_MODE" envDefault:"false"`
	DataDir   string    `json:"data_dir" env:"DATA_DIR" envDefault:"data"`
	ClientURL string    `json:"client_url" env:"CLIENT_URL" envDefault:"*"`
	JwtSecret string    `json:"jwt_secret" env:"JWT_SECRET" envDefault:"board-dev-secret"`
	Scheme    Scheme    `json:"scheme"`
	Database  Database  `json:"database"`
	LLM       LLM       `json:"llm"`
	Log       LogConfig `json:"log"`
}

func Default() *Config {
	return &Config{
		Dev:       false,
		DataDir:   "data",
		ClientURL: "*",
		JwtSecret: "board-dev-secret",
		Scheme:    Scheme{Address: "0.0.0.0", HttpPort: 5000},
		Database:  Database{Type: "sqlite3", DBFile: "data/board.db", SSLMode: "disable"},
		LLM: LLM{
			Enabled:     true,
			Endpoint:    "http://localhost:1234/v1",
			Model:       "deepseek-r1-distill-qwen-14b",
			Temperature: 0.7,
			MaxTokens:   -1,
			TimeoutSec:  120,
		},
		Log: LogConfig{Name: "data/log/board.log", MaxSize: 10, MaxBackups: 5, MaxAge: 28},
	}
}

// UploadDir is where task attachments are stored.
func (c *Config) UploadDir() string {
	return filepath.Join(c.DataDir, "uploads")
}
