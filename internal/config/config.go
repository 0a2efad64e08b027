package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	// Discord
	BotToken string

	// Google Sheets store
	SpreadsheetID       string
	SheetName           string
	ServiceAccountEmail string
	PrivateKey          string

	// Liveness HTTP server
	HTTPAddr string

	// Redis snapshot cache (optional; empty disables caching)
	RedisURL    string
	SnapshotTTL time.Duration

	// Rate limiting on the HTTP surface
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	CelebrateImagePath string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")

	cfg.BotToken = getEnv("DISCORD_BOT_TOKEN", "")
	cfg.SpreadsheetID = getEnv("GOOGLE_SHEETS_ID", "")
	cfg.SheetName = getEnv("SHEET_NAME", "記錄")
	cfg.ServiceAccountEmail = getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", "")
	// Render-style env vars carry the key with literal \n sequences.
	cfg.PrivateKey = strings.ReplaceAll(getEnv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n")

	cfg.HTTPAddr = getEnv("HTTP_ADDR", "")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":" + getEnv("PORT", "3000")
	}

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.SnapshotTTL = getDuration("CACHE_TTL_SNAPSHOT", 10*time.Second)

	cfg.RLEnabled = getEnv("RL_ENABLED", "true") == "true"
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	cfg.CelebrateImagePath = getEnv("CELEBRATE_IMAGE_PATH", "images.jpg")

	// validation
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("missing DISCORD_BOT_TOKEN")
	}
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("missing GOOGLE_SHEETS_ID")
	}
	if cfg.ServiceAccountEmail == "" {
		return nil, fmt.Errorf("missing GOOGLE_SERVICE_ACCOUNT_EMAIL")
	}
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("missing GOOGLE_PRIVATE_KEY")
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
