// Package config loads server settings from an optional YAML file and the
// environment. Environment variables win over the file; the file wins over
// the defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eudistrict/chancery/internal/calculator"
)

// Record store backends.
const (
	BackendSQLite  = "sqlite"
	BackendGSheets = "gsheets"
)

// Config is the full server configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	StaticDir  string `yaml:"static_dir"`

	Log     Log     `yaml:"log"`
	Store   Store   `yaml:"store"`
	Relay   Relay   `yaml:"relay"`
	Auth    Auth    `yaml:"auth"`
	Finance Finance `yaml:"finance"`
}

// Log selects the log level and handler.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text (tint) or json
}

// Store selects and configures the record store.
type Store struct {
	Backend string `yaml:"backend"`

	// SQLitePath is the database file of the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`

	// SpreadsheetID and one of the credential settings configure the
	// gsheets backend. CredentialsJSON takes precedence.
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	CredentialsFile string `yaml:"credentials_file"`
	CredentialsJSON string `yaml:"credentials_json"`
}

// Relay configures the file upload relay. An empty URL disables uploads.
type Relay struct {
	URL      string        `yaml:"url"`
	FolderID string        `yaml:"folder_id"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Auth configures session tokens.
type Auth struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// Finance configures the ledger summary.
type Finance struct {
	BalancePolicy calculator.BalancePolicy `yaml:"balance_policy"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		StaticDir:  "./web/static",
		Log:        Log{Level: "info", Format: "text"},
		Store: Store{
			Backend:    BackendSQLite,
			SQLitePath: "./data/chancery.db",
		},
		Relay:   Relay{Timeout: 60 * time.Second},
		Auth:    Auth{SessionTTL: 12 * time.Hour},
		Finance: Finance{BalancePolicy: calculator.BalanceAll},
	}
}

// Load reads the YAML file at path (skipped when path is empty) over the
// defaults and then applies environment overrides read through getenv.
// Unknown YAML keys are rejected.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"LISTEN_ADDR", &c.ListenAddr},
		{"STATIC_PATH", &c.StaticDir},
		{"LOG_LEVEL", &c.Log.Level},
		{"LOG_FORMAT", &c.Log.Format},
		{"STORE_BACKEND", &c.Store.Backend},
		{"DB_PATH", &c.Store.SQLitePath},
		{"SPREADSHEET_ID", &c.Store.SpreadsheetID},
		{"GOOGLE_CREDENTIALS_FILE", &c.Store.CredentialsFile},
		{"GOOGLE_CREDENTIALS_JSON", &c.Store.CredentialsJSON},
		{"RELAY_URL", &c.Relay.URL},
		{"RELAY_FOLDER_ID", &c.Relay.FolderID},
		{"JWT_SECRET", &c.Auth.JWTSecret},
	}
	for _, s := range strs {
		if v := getenv(s.key); v != "" {
			*s.dst = v
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"RELAY_TIMEOUT", &c.Relay.Timeout},
		{"SESSION_TTL", &c.Auth.SessionTTL},
	}
	for _, d := range durations {
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.key, v, err)
		}
		*d.dst = parsed
	}

	if v := getenv("BALANCE_POLICY"); v != "" {
		c.Finance.BalancePolicy = calculator.BalancePolicy(strings.ToLower(v))
	}
	return nil
}

// ValidateStore checks the record store settings only, for commands that
// never serve requests.
func (c *Config) ValidateStore() error {
	switch c.Store.Backend {
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("store.sqlite_path is required for the sqlite backend")
		}
	case BackendGSheets:
		if c.Store.SpreadsheetID == "" {
			return errors.New("store.spreadsheet_id is required for the gsheets backend")
		}
		if c.Store.CredentialsJSON == "" && c.Store.CredentialsFile == "" {
			return errors.New("store.credentials_file or store.credentials_json is required for the gsheets backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// Validate checks everything the server needs.
func (c *Config) Validate() error {
	if err := c.ValidateStore(); err != nil {
		return err
	}
	if c.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret (JWT_SECRET) is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("auth.session_ttl must be positive")
	}
	if !c.Finance.BalancePolicy.Valid() {
		return fmt.Errorf("unknown finance.balance_policy %q", c.Finance.BalancePolicy)
	}
	if c.Relay.URL != "" && c.Relay.FolderID == "" {
		return errors.New("relay.folder_id is required when relay.url is set")
	}
	if c.Relay.Timeout < 0 {
		return errors.New("relay.timeout must not be negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}

// Credentials returns the service account key for the gsheets backend.
func (c *Config) Credentials() ([]byte, error) {
	if c.Store.CredentialsJSON != "" {
		return []byte(c.Store.CredentialsJSON), nil
	}
	data, err := os.ReadFile(c.Store.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}
