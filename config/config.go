/*
Package config loads process configuration for the salary ticker binaries.

SOURCES (later wins):
  1. Built-in defaults
  2. .env file in the working directory, if present (godotenv)
  3. Environment variables
  4. Command-line flags

ENVIRONMENT:
  SALARY_TICKER_DATA_DIR   Data directory (default: ./data)
  SALARY_TICKER_PORT       HTTP port (default: 8080)
  SALARY_TICKER_BACKEND    "file", "sqlite" or "memory" (default: file)
  SALARY_TICKER_DB         SQLite path (default: <data dir>/salary-ticker.db)
  TELEGRAM_TOKEN           Bot token; notifications go to the log when empty
  TELEGRAM_CHAT_ID         Chat to notify

SEE ALSO:
  - cmd/server/main.go: HTTP server
  - cmd/tui/main.go: Terminal menubar
*/
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/warp/salary-ticker/recovery"
	"github.com/warp/salary-ticker/settings"
	"github.com/warp/salary-ticker/store/memory"
	"github.com/warp/salary-ticker/store/sqlite"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

type Config struct {
	DataDir        string
	Port           int
	Backend        string
	DBPath         string
	TelegramToken  string
	TelegramChatID int64
}

// Load reads .env, the environment and then args (without the program name).
func Load(name string, args []string) (*Config, error) {
	_ = godotenv.Load()

	port, err := envInt("SALARY_TICKER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	chatID, err := envInt64("TELEGRAM_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:        envString("SALARY_TICKER_DATA_DIR", "./data"),
		Port:           port,
		Backend:        envString("SALARY_TICKER_BACKEND", BackendFile),
		DBPath:         os.Getenv("SALARY_TICKER_DB"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: chatID,
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Data directory")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend: file, sqlite or memory")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (sqlite backend)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "salary-ticker.db")
	}
	switch cfg.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	return cfg, nil
}

// Stores is the pair of stores the ticker and the API share.
type Stores struct {
	Settings settings.Store
	Recovery recovery.Store
	Close    func() error
}

// OpenStores opens the configured backend.
func (c *Config) OpenStores() (*Stores, error) {
	switch c.Backend {
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(c.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		db, err := sqlite.New(c.DBPath)
		if err != nil {
			return nil, err
		}
		return &Stores{Settings: db.Settings(), Recovery: db.Recovery(), Close: db.Close}, nil
	case BackendMemory:
		mem := memory.NewMemory()
		return &Stores{Settings: mem.Settings(), Recovery: mem.Recovery(), Close: func() error { return nil }}, nil
	case BackendFile:
		return &Stores{
			Settings: settings.NewFileStore(c.DataDir),
			Recovery: recovery.NewFileStore(c.DataDir),
			Close:    func() error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
