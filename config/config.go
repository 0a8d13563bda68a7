package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type Config struct {
	APIBaseURL   string        `envconfig:"API_BASE_URL"   default:"http://localhost:8000/api"`
	APITimeout   time.Duration `envconfig:"API_TIMEOUT"    default:"30s"`
	APIRateLimit float64       `envconfig:"API_RATE_LIMIT" default:"0"` // requests per second, 0 disables
	APIRateBurst int           `envconfig:"API_RATE_BURST" default:"1"`
	LogLevel     string        `envconfig:"LOG_LEVEL"      default:"info"`
	Locale       string        `envconfig:"LOCALE"         default:"en"`
	LoginRoute   string        `envconfig:"LOGIN_ROUTE"    default:"/login"`

	SessionBackend     string `envconfig:"SESSION_BACKEND"      default:"file"`
	SessionDir         string `envconfig:"SESSION_DIR"          default:".session"`
	RedisURL           string `envconfig:"REDIS_URL"            default:"redis://localhost:6379/0"`
	SessionRedisPrefix string `envconfig:"SESSION_REDIS_PREFIX" default:"shop:session:"`

	MockAPIPort       string `envconfig:"MOCK_API_PORT"       default:":8000"`
	MockJWTSecret     string `envconfig:"MOCK_JWT_SECRET"     default:"mock-secret-change-me"`
	MockAdminUsername string `envconfig:"MOCK_ADMIN_USERNAME" default:"admin"`
	MockAdminPassword string `envconfig:"MOCK_ADMIN_PASSWORD" default:"secret"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(logger *logrus.Logger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Infof("Configuration loaded: API=%s, Timeout=%s, SessionBackend=%s, LogLevel=%s",
		cfg.APIBaseURL, cfg.APITimeout, cfg.SessionBackend, cfg.LogLevel)
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("configuration error: API_BASE_URL is not set")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("configuration error: API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	if c.APIRateLimit < 0 {
		return fmt.Errorf("configuration error: API_RATE_LIMIT must not be negative, got %v", c.APIRateLimit)
	}
	c.SessionBackend = strings.ToLower(c.SessionBackend)
	switch c.SessionBackend {
	case SessionBackendFile, SessionBackendRedis, SessionBackendMemory:
	default:
		return fmt.Errorf("configuration error: unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	return nil
}
