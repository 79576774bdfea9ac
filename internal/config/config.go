package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	GitHub      GitHubConfig
	Session     SessionConfig
	Database    DatabaseConfig
	Summary     SummaryConfig
	Aggregation AggregationConfig
	Log         LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	FrontendURL  string
}

// GitHubConfig holds the OAuth app credentials and API location
type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	APIURL       string
	Scopes       []string
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// DatabaseConfig holds database configuration. An empty DSN keeps
// sessions in memory.
type DatabaseConfig struct {
	Driver        string
	DSN           string
	MaxConns      int
	MinConns      int
	EncryptionKey string
}

// SummaryConfig holds the generative-text provider configuration
type SummaryConfig struct {
	APIKey        string
	APIURL        string
	Model         string
	Temperature   float64
	MaxTokens     int
	Timeout       time.Duration
	QuotaCooldown time.Duration
}

// AggregationConfig holds owner-scope fan-out settings
type AggregationConfig struct {
	OwnerConcurrency int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "5000"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 120),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 120),
			FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		GitHub: GitHubConfig{
			ClientID:     getEnv("GITHUB_CLIENT_ID", getEnv("CLIENT_ID", "")),
			ClientSecret: getEnv("GITHUB_CLIENT_SECRET", getEnv("CLIENT_SECRET", "")),
			RedirectURL:  getEnv("GITHUB_REDIRECT_URL", "http://localhost:5000/auth/callback"),
			APIURL:       getEnv("GITHUB_API_URL", ""),
			Scopes:       getEnvAsSlice("GITHUB_OAUTH_SCOPES", ",", []string{"repo"}),
		},
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", ""),
			TTL:          getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "gitglimpse_session"),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Database: DatabaseConfig{
			Driver:        getEnv("DB_DRIVER", "postgres"),
			DSN:           getEnv("DB_DSN", ""),
			MaxConns:      getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:      getEnvAsInt("DB_MIN_CONNS", 2),
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		},
		Summary: SummaryConfig{
			APIKey:        getEnv("GEMINI_API_KEY", ""),
			APIURL:        getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Model:         getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
			Temperature:   getEnvAsFloat("SUMMARY_TEMPERATURE", 0.5),
			MaxTokens:     getEnvAsInt("SUMMARY_MAX_TOKENS", 200),
			Timeout:       getEnvAsDuration("SUMMARY_TIMEOUT", 20*time.Second),
			QuotaCooldown: getEnvAsDuration("SUMMARY_QUOTA_COOLDOWN", 10*time.Minute),
		},
		Aggregation: AggregationConfig{
			OwnerConcurrency: getEnvAsInt("OWNER_CONCURRENCY", 5),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.GitHub.ClientID == "" {
		return fmt.Errorf("GITHUB_CLIENT_ID is required")
	}
	if c.GitHub.ClientSecret == "" {
		return fmt.Errorf("GITHUB_CLIENT_SECRET is required")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET is required (at least 32 characters)")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Summary.QuotaCooldown <= 0 {
		return fmt.Errorf("SUMMARY_QUOTA_COOLDOWN must be positive")
	}
	if c.Database.DSN != "" && c.Database.EncryptionKey == "" {
		return fmt.Errorf("ENCRYPTION_KEY is required when DB_DSN is set")
	}
	if c.Aggregation.OwnerConcurrency < 1 {
		return fmt.Errorf("OWNER_CONCURRENCY must be at least 1")
	}
	return nil
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// UsesDatabase reports whether sessions are persisted in PostgreSQL
func (c *Config) UsesDatabase() bool {
	return c.Database.DSN != ""
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return fallback
}

// getEnvAsBool gets an environment variable as boolean with a fallback value
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "10m")
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvAsSlice gets an environment variable as slice with a fallback value
func getEnvAsSlice(key, separator string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		var out []string
		for _, part := range strings.Split(value, separator) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return fallback
}
