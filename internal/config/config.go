package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Sheets     SheetsConfig
	Notify     NotifyConfig
	Jobs       JobsConfig
	Extraction ExtractionConfig
	Kitchen    KitchenConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port   string
	WebDir string
}

// MongoDBConfig holds settings for MongoDB. An empty URI selects the
// in-memory store, which is only suitable for a single-instance deployment.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration for the catering spreadsheet export.
// Export is disabled unless both credentials and spreadsheet are set.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	WriteRange      string
}

// Enabled reports whether the sheets export should be wired.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// NotifyConfig configures the staff webhook. Empty URL disables it.
type NotifyConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

// JobsConfig holds scheduler-related settings.
type JobsConfig struct {
	ArchiveCron string
	ExportCron  string
	Timezone    string
}

// ExtractionConfig tunes the reservation extraction engine.
type ExtractionConfig struct {
	EventKeyword       string
	WindowBefore       int
	WindowAfter        int
	Pairing            string
	ApplyHourExtension bool
}

// KitchenConfig shapes the kitchen-facing view.
type KitchenConfig struct {
	Cap int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:   getenvWithDefault("APP_PORT", "8080"),
			WebDir: getenvWithDefault("WEB_DIR", "./web"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "jumpkitchen"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
			WriteRange:      getenvWithDefault("GOOGLE_SHEET_EXPORT_RANGE", "Catering!A:L"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
			Timeout:    getenvDuration("NOTIFY_TIMEOUT", 10*time.Second),
		},
		Jobs: JobsConfig{
			ArchiveCron: getenvWithDefault("ARCHIVE_CRON_SCHEDULE", "0 2 * * *"),
			ExportCron:  getenvWithDefault("EXPORT_CRON_SCHEDULE", "0 7 * * *"),
			Timezone:    getenvWithDefault("TIMEZONE", "Europe/Paris"),
		},
		Extraction: ExtractionConfig{
			EventKeyword:       getenvWithDefault("EXTRACTION_EVENT_KEYWORD", "Jump Anniv"),
			WindowBefore:       getenvInt("EXTRACTION_WINDOW_BEFORE", 100),
			WindowAfter:        getenvInt("EXTRACTION_WINDOW_AFTER", 500),
			Pairing:            getenvWithDefault("EXTRACTION_PAIRING", "index"),
			ApplyHourExtension: getenvBool("EXTRACTION_APPLY_HOUR_EXTENSION", false),
		},
		Kitchen: KitchenConfig{
			Cap: getenvInt("KITCHEN_VIEW_CAP", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if c.Extraction.WindowBefore < 0 || c.Extraction.WindowAfter < 0 {
		return errors.New("extraction context window sizes must not be negative")
	}

	switch c.Extraction.Pairing {
	case "index", "nearest":
	default:
		return fmt.Errorf("EXTRACTION_PAIRING must be index or nearest, got %q", c.Extraction.Pairing)
	}

	if c.Kitchen.Cap < 1 {
		return errors.New("KITCHEN_VIEW_CAP must be at least 1")
	}

	if c.Jobs.ArchiveCron == "" || c.Jobs.ExportCron == "" {
		return errors.New("cron schedules must not be empty")
	}

	if c.Jobs.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
