package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultEndpoint is the Practicum homework-statuses API URL.
	DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	// DefaultPollInterval is how long the bot waits between poll cycles.
	DefaultPollInterval = 600 * time.Second
	// DefaultHTTPTimeout bounds a single API request. The upstream client
	// would otherwise hang the whole process on a stalled connection.
	DefaultHTTPTimeout = 30 * time.Second
	// DefaultCheckpointFile stores the Unix timestamp of the last
	// successful cycle, next to the binary.
	DefaultCheckpointFile = ".last_success"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID int64

	PracticumEndpoint string
	PollInterval      time.Duration
	HTTPTimeout       time.Duration
	CheckpointFile    string
	DatabaseURL       string // optional; when set, the checkpoint lives in Postgres
	LogLevel          string
	Environment       string
}

// Load reads configuration from environment variables and .env file (if present).
// All missing required variables are reported in a single error so the
// operator can fix them in one pass.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.PracticumToken = os.Getenv("PRACTICUM_TOKEN")
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")

	var missing []string
	if cfg.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if chatIDStr == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}

	var err error
	cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	cfg.PracticumEndpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = DefaultEndpoint
	}

	cfg.PollInterval, err = durationEnv("POLL_INTERVAL", DefaultPollInterval)
	if err != nil {
		return nil, err
	}

	cfg.HTTPTimeout, err = durationEnv("HTTP_TIMEOUT", DefaultHTTPTimeout)
	if err != nil {
		return nil, err
	}

	cfg.CheckpointFile = os.Getenv("CHECKPOINT_FILE")
	if cfg.CheckpointFile == "" {
		cfg.CheckpointFile = DefaultCheckpointFile
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %s", name, d)
	}
	return d, nil
}
