package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// ConfigPathEnv names the optional TOML file used when no --config flag is given
const ConfigPathEnv = "NJDG_CONFIG"

// PlaceholderSecret is the built-in cookie secret. It is only accepted in
// gin test mode.
const PlaceholderSecret = "change-me"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Store    StoreConfig    `toml:"store"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Port int    `toml:"port"`
	Mode string `toml:"mode"` // gin mode: debug, release or test
}

// DataConfig locates the CSV inputs and tunes loading
type DataConfig struct {
	CasesPath    string        `toml:"cases_path"`
	HearingsPath string        `toml:"hearings_path"`
	CacheTTL     time.Duration `toml:"cache_ttl"`
	ChunkSize    int           `toml:"chunk_size"`
}

// StoreConfig selects where credentials, sessions, notes and reminders live
type StoreConfig struct {
	Driver string `toml:"driver"`
	Dir    string `toml:"dir"`
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Username   string `toml:"username"`
	Password   string `toml:"password"`
	DBName     string `toml:"dbname"`
	SSLMode    string `toml:"sslmode"`
	TestDBName string `toml:"test_dbname"` // Separate database for testing
}

// AuthConfig holds the authentication configuration
type AuthConfig struct {
	CookieSecret      string        `toml:"cookie_secret"`
	CookieName        string        `toml:"cookie_name"`
	SecureCookie      bool          `toml:"secure_cookie"`
	EvidenceTTL       time.Duration `toml:"evidence_ttl"`
	AutoLoginGrace    time.Duration `toml:"auto_login_grace"`
	MinPasswordLength int           `toml:"min_password_length"`
}

// LogConfig holds the logger configuration
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // json or console
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode,
	)
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Mode: "release",
		},
		Data: DataConfig{
			CasesPath:    "data/ISDMHack_Cases_students.csv",
			HearingsPath: "data/ISDMHack_Hear_students.csv",
			CacheTTL:     time.Hour,
			ChunkSize:    100000,
		},
		Store: StoreConfig{
			Driver: DriverFile,
			Dir:    "var",
		},
		Database: DatabaseConfig{
			Host:       "localhost",
			Port:       5432,
			Username:   "postgres",
			Password:   "password",
			DBName:     "njdg",
			SSLMode:    "disable",
			TestDBName: "njdg_test",
		},
		Auth: AuthConfig{
			CookieSecret:      PlaceholderSecret,
			CookieName:        "nyayadrishti_session",
			EvidenceTTL:       30 * 24 * time.Hour,
			AutoLoginGrace:    5 * time.Second,
			MinPasswordLength: 6,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path, a .env
// file and environment variables, later sources winning. An empty path skips
// the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	applyEnv(cfg)
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnvAsInt("SERVER_PORT", cfg.Server.Port)
	cfg.Server.Mode = getEnv("GIN_MODE", cfg.Server.Mode)

	cfg.Data.CasesPath = getEnv("NJDG_CASES_CSV", cfg.Data.CasesPath)
	cfg.Data.HearingsPath = getEnv("NJDG_HEARINGS_CSV", cfg.Data.HearingsPath)
	cfg.Data.CacheTTL = getEnvAsDuration("NJDG_CACHE_TTL", cfg.Data.CacheTTL)
	cfg.Data.ChunkSize = getEnvAsInt("NJDG_MERGE_CHUNK", cfg.Data.ChunkSize)

	cfg.Store.Driver = getEnv("NJDG_STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.Dir = getEnv("NJDG_STORE_DIR", cfg.Store.Dir)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvAsInt("DB_PORT", cfg.Database.Port)
	cfg.Database.Username = getEnv("DB_USERNAME", cfg.Database.Username)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getEnv("DB_NAME", cfg.Database.DBName)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.TestDBName = getEnv("TEST_DB_NAME", cfg.Database.TestDBName)

	cfg.Auth.CookieSecret = getEnv("NJDG_COOKIE_SECRET", cfg.Auth.CookieSecret)
	cfg.Auth.CookieName = getEnv("NJDG_COOKIE_NAME", cfg.Auth.CookieName)
	cfg.Auth.SecureCookie = getEnvAsBool("NJDG_SECURE_COOKIE", cfg.Auth.SecureCookie)
	cfg.Auth.EvidenceTTL = getEnvAsDuration("NJDG_EVIDENCE_TTL", cfg.Auth.EvidenceTTL)
	cfg.Auth.AutoLoginGrace = getEnvAsDuration("NJDG_AUTOLOGIN_GRACE", cfg.Auth.AutoLoginGrace)
	cfg.Auth.MinPasswordLength = getEnvAsInt("NJDG_MIN_PASSWORD_LENGTH", cfg.Auth.MinPasswordLength)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
}

// Validate reports the first setting that cannot work
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	switch c.Store.Driver {
	case DriverFile:
		if c.Store.Dir == "" {
			return errors.New("store dir is required for the file driver")
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Auth.CookieSecret == "" {
		return errors.New("cookie secret is required")
	}
	if c.Auth.CookieSecret == PlaceholderSecret && c.Server.Mode != "test" {
		return errors.New("cookie secret must be changed from the default")
	}
	if c.Auth.MinPasswordLength < 1 {
		return errors.New("minimum password length must be positive")
	}
	if c.Auth.AutoLoginGrace < 0 {
		return errors.New("auto-login grace must not be negative")
	}
	if c.Data.CasesPath == "" || c.Data.HearingsPath == "" {
		return errors.New("cases and hearings paths are required")
	}
	return nil
}

// Helper functions to read environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
