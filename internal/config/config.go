package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider exposes read-only access to application configuration. Components
// depend on this interface rather than the concrete Config so tests can
// substitute a partial implementation.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetDBUrl() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetDBQueryTimeout() time.Duration
	GetDBExecuteTimeout() time.Duration
	GetEmailProvider() string
	GetEmailSender() string
	GetEmailAPIKey() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUser() string
	GetSMTPPass() string
	GetEmailOutboxDir() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string
	AppBaseURL    string
	SessionSecret string

	DBUrl            string
	DBNs             string
	DBDb             string
	DBUser           string
	DBPass           string
	DBQueryTimeout   time.Duration
	DBExecuteTimeout time.Duration

	EmailProvider  string
	EmailSender    string
	EmailAPIKey    string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	EmailOutboxDir string
}

const (
	defaultServerAddr       = ":8080"
	defaultAppBaseURL       = "http://localhost:8080"
	defaultDBQueryTimeout   = 5 * time.Second
	defaultDBExecuteTimeout = 10 * time.Second
	defaultEmailProvider    = "log"
	defaultSMTPPort         = 587
	defaultEmailOutboxDir   = "outbox"
)

// New loads configuration from the .env file (if any) and the environment.
// It returns an error naming every required variable that is missing.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ServerAddr:       getEnv("SERVER_ADDR", defaultServerAddr),
		AppBaseURL:       strings.TrimRight(getEnv("APP_BASE_URL", defaultAppBaseURL), "/"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		DBUrl:            os.Getenv("SURREAL_URL"),
		DBUser:           os.Getenv("SURREAL_USER"),
		DBPass:           os.Getenv("SURREAL_PASS"),
		DBNs:             os.Getenv("SURREAL_NS"),
		DBDb:             os.Getenv("SURREAL_DB"),
		DBQueryTimeout:   getDuration("DB_QUERY_TIMEOUT", defaultDBQueryTimeout),
		DBExecuteTimeout: getDuration("DB_EXECUTE_TIMEOUT", defaultDBExecuteTimeout),
		EmailProvider:    getEnv("EMAIL_PROVIDER", defaultEmailProvider),
		EmailSender:      os.Getenv("EMAIL_SENDER"),
		EmailAPIKey:      os.Getenv("EMAIL_API_KEY"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getInt("SMTP_PORT", defaultSMTPPort),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		EmailOutboxDir:   getEnv("EMAIL_OUTBOX_DIR", defaultEmailOutboxDir),
	}

	var missing []string
	for _, req := range []struct{ key, val string }{
		{"SURREAL_URL", cfg.DBUrl},
		{"SURREAL_NS", cfg.DBNs},
		{"SURREAL_DB", cfg.DBDb},
		{"SESSION_SECRET", cfg.SessionSecret},
	} {
		if req.val == "" {
			missing = append(missing, req.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses a Go duration ("5s", "250ms"). Invalid or non-positive
// values fall back to the default.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Invalid duration for %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid integer for %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func (c *Config) GetServerAddr() string              { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string              { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string           { return c.SessionSecret }
func (c *Config) GetDBUrl() string                   { return c.DBUrl }
func (c *Config) GetDBNs() string                    { return c.DBNs }
func (c *Config) GetDBDb() string                    { return c.DBDb }
func (c *Config) GetDBUser() string                  { return c.DBUser }
func (c *Config) GetDBPass() string                  { return c.DBPass }
func (c *Config) GetDBQueryTimeout() time.Duration   { return c.DBQueryTimeout }
func (c *Config) GetDBExecuteTimeout() time.Duration { return c.DBExecuteTimeout }
func (c *Config) GetEmailProvider() string           { return c.EmailProvider }
func (c *Config) GetEmailSender() string             { return c.EmailSender }
func (c *Config) GetEmailAPIKey() string             { return c.EmailAPIKey }
func (c *Config) GetSMTPHost() string                { return c.SMTPHost }
func (c *Config) GetSMTPPort() int                   { return c.SMTPPort }
func (c *Config) GetSMTPUser() string                { return c.SMTPUser }
func (c *Config) GetSMTPPass() string                { return c.SMTPPass }
func (c *Config) GetEmailOutboxDir() string          { return c.EmailOutboxDir }
