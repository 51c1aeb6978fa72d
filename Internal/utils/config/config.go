package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr                string `yaml:"addr"`
		ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	} `yaml:"server"`

	Logging LoggingConfig `yaml:"logging"`

	Auth struct {
		Enabled    bool   `yaml:"enabled"`
		Issuer     string `yaml:"issuer"`
		TokenHours int    `yaml:"token_hours"`
		Secret     string `yaml:"-"` // JWT_SECRET_KEY only
	} `yaml:"auth"`

	Journal struct {
		Enabled     bool `yaml:"enabled"`
		RecentLimit int  `yaml:"recent_limit"`
	} `yaml:"journal"`

	Database DatabaseConfig `yaml:"database"`

	// path the config was read from, empty when running on defaults
	Source string `yaml:"-"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"-"` // DB_PASSWORD only
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// Default returns the built-in configuration used when no config.yaml is found.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Server.ReadTimeoutSeconds = 15
	cfg.Server.WriteTimeoutSeconds = 15
	cfg.Logging = LoggingConfig{Level: "info", Format: "console"}
	cfg.Auth.Issuer = "ktbb-dmr"
	cfg.Auth.TokenHours = 24
	cfg.Journal.RecentLimit = 20
	cfg.Database = DatabaseConfig{
		Host:    "localhost",
		Port:    "5432",
		User:    "postgres",
		DBName:  "ktbb",
		SSLMode: "disable",
	}
	return cfg
}

// LoadEnv loads .env files the same way from every entry point. Missing files
// are not an error.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env", "../../.env"}
	}
	for _, p := range paths {
		_ = godotenv.Load(p)
	}
}

func searchPaths() []string {
	// Resolve path relative to this file first
	_, filePath, _, ok := runtime.Caller(0)
	var basePath string
	if ok {
		basePath = filepath.Dir(filePath)
	}

	possiblePaths := []string{}
	if p := os.Getenv("DMR_CONFIG"); p != "" {
		possiblePaths = append(possiblePaths, p)
	}
	if basePath != "" {
		possiblePaths = append(possiblePaths, filepath.Join(basePath, "config.yaml"))
	}
	if cwd, err := os.Getwd(); err == nil {
		possiblePaths = append(possiblePaths, filepath.Join(cwd, "Internal", "utils", "config", "config.yaml"))
	}
	possiblePaths = append(possiblePaths,
		"Internal/utils/config/config.yaml",
		"config.yaml",
	)
	return possiblePaths
}

// LoadConfig looks for config.yaml in the usual places, falls back to
// Default when none exists, then applies environment overrides.
func LoadConfig() (*Config, error) {
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return LoadConfigFrom(path)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Source = path

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.Server.Addr = getEnvOrDefault("SERVER_ADDR", c.Server.Addr)
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", c.Logging.Format)
	c.Auth.Secret = os.Getenv("JWT_SECRET_KEY")

	c.Database.Host = getEnvOrDefault("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvOrDefault("DB_PORT", c.Database.Port)
	c.Database.User = getEnvOrDefault("DB_USER", c.Database.User)
	c.Database.Password = os.Getenv("DB_PASSWORD") // Required - no default
	c.Database.DBName = getEnvOrDefault("DB_NAME", c.Database.DBName)
	c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", c.Database.SSLMode)

	var err error
	if c.Auth.Enabled, err = getEnvBool("AUTH_ENABLED", c.Auth.Enabled); err != nil {
		return err
	}
	if c.Journal.Enabled, err = getEnvBool("JOURNAL_ENABLED", c.Journal.Enabled); err != nil {
		return err
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Addr == "" {
		problems = append(problems, "server.addr is empty")
	}
	if c.Server.ReadTimeoutSeconds <= 0 || c.Server.WriteTimeoutSeconds <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		problems = append(problems, "auth.enabled requires JWT_SECRET_KEY")
	}
	if c.Auth.TokenHours <= 0 {
		problems = append(problems, "auth.token_hours must be positive")
	}
	if c.Journal.RecentLimit <= 0 {
		problems = append(problems, "journal.recent_limit must be positive")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not console or json", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = cfg.Source
	}
	if path == "" {
		path = "Internal/utils/config/config.yaml"
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return err
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s=%q is not a boolean: %w", key, value, err)
	}
	return b, nil
}
