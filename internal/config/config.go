// Package config loads application settings from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the settings for the server and the CLI commands.
type Config struct {
	// State is the deployment state. "prod" disables seeding.
	State      string `yaml:"state" env:"STATE" env-default:"dev"`
	DBPath     string `yaml:"db_path" env:"DB_PATH" env-default:"anylist.db"`
	ListenAddr string `yaml:"listen_addr" env:"LISTEN_ADDR" env-default:":8080"`

	// JWTSecret signs session tokens. When empty a secret is generated once
	// and persisted in the database.
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	JWTTTL    time.Duration `yaml:"jwt_ttl" env:"JWT_TTL" env-default:"4h"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log_file" env:"LOG_FILE"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`

	// Rate limit applied to sign-up and login.
	AuthRateLimitRPS   float64 `yaml:"auth_rate_limit_rps" env:"AUTH_RATE_LIMIT_RPS" env-default:"5"`
	AuthRateLimitBurst int     `yaml:"auth_rate_limit_burst" env:"AUTH_RATE_LIMIT_BURST" env-default:"10"`
}

// Load reads the configuration. Values from path (if non-empty) are
// overridden by environment variables.
func Load(path string) (*Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.AuthRateLimitRPS <= 0 || c.AuthRateLimitBurst <= 0 {
		return fmt.Errorf("auth rate limit must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in the production state.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.State, "prod")
}

// SlogLevel maps LogLevel to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String renders the configuration for logging with the secret masked.
func (c *Config) String() string {
	secret := "<generated>"
	if c.JWTSecret != "" {
		secret = "****"
	}
	return fmt.Sprintf("state=%s db=%s listen=%s jwt_secret=%s jwt_ttl=%s log_level=%s",
		c.State, c.DBPath, c.ListenAddr, secret, c.JWTTTL, c.LogLevel)
}
