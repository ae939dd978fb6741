package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type PostgresConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

type Config struct {
	App struct {
		Port           string
		LookupDebounce time.Duration
	}
	Postgres PostgresConfig
	Draft    struct {
		Dir string
	}
	History struct {
		Dir string
	}
	Sheets struct {
		CredentialsFile string
		SpreadsheetID   string
	}
	NATS struct {
		URL string
	}
	Session struct {
		OperatorID string
	}
}

func Load(path string) (*Config, error) {
	if path != "" {
		err := godotenv.Load(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = os.Getenv("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	cfg.App.LookupDebounce = 300 * time.Millisecond
	if v := os.Getenv("LOOKUP_DEBOUNCE_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid LOOKUP_DEBOUNCE_MS %q", v)
		}
		cfg.App.LookupDebounce = time.Duration(ms) * time.Millisecond
	}

	cfg.Postgres.Host = os.Getenv("DB_HOST")
	if cfg.Postgres.Host == "" {
		log.Fatalf("DB_HOST is required")
	}
	cfg.Postgres.Port = os.Getenv("DB_PORT")
	if cfg.Postgres.Port == "" {
		log.Fatalf("DB_PORT is required")
	}
	cfg.Postgres.User = os.Getenv("DB_USER")
	if cfg.Postgres.User == "" {
		log.Fatalf("DB_USER is required")
	}
	cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
	if cfg.Postgres.Password == "" {
		log.Fatalf("DB_PASSWORD is required")
	}
	cfg.Postgres.DBName = os.Getenv("DB_NAME")
	if cfg.Postgres.DBName == "" {
		log.Fatalf("DB_NAME is required")
	}
	cfg.Postgres.SSLMode = os.Getenv("DB_SSLMODE")
	if cfg.Postgres.SSLMode == "" {
		cfg.Postgres.SSLMode = "disable"
	}
	cfg.Postgres.MigrationsPath = os.Getenv("DB_MIGRATIONS_PATH")
	if cfg.Postgres.MigrationsPath == "" {
		cfg.Postgres.MigrationsPath = "migrations"
	}

	cfg.Draft.Dir = os.Getenv("DRAFT_DIR")
	if cfg.Draft.Dir == "" {
		cfg.Draft.Dir = "data/draft"
	}
	cfg.History.Dir = os.Getenv("HISTORY_DIR")
	if cfg.History.Dir == "" {
		cfg.History.Dir = "data/history"
	}

	cfg.Sheets.CredentialsFile = os.Getenv("SHEETS_CREDENTIALS_FILE")
	if cfg.Sheets.CredentialsFile == "" {
		log.Fatalf("SHEETS_CREDENTIALS_FILE is required")
	}
	cfg.Sheets.SpreadsheetID = os.Getenv("SHEETS_SPREADSHEET_ID")
	if cfg.Sheets.SpreadsheetID == "" {
		log.Fatalf("SHEETS_SPREADSHEET_ID is required")
	}

	cfg.NATS.URL = os.Getenv("NATS_URL")
	cfg.Session.OperatorID = os.Getenv("SESSION_OPERATOR_ID")

	return cfg, nil
}
