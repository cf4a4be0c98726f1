package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	PublicBaseURL     string
	RevalidateURL     string
	DefaultOrderEmail string
	AuthSecret        string

	SMTPHost          string
	SMTPPort          int
	EmailFrom         string
	EmailFromName     string
	SMTPPassword      string
	OAuthClientID     string
	OAuthClientSecret string
	OAuthRefreshToken string
	OAuthTokenURL     string

	WorkerPoolSize  int
	TaskQueueSize   int
	ShutdownTimeout time.Duration
	ResetTokenTTL   time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultAuthSecret      = "change-me-in-production"
	defaultEmailFromName   = "Modulixo"
	defaultSMTPHost        = "smtp.gmail.com"
	defaultSMTPPort        = 587
	defaultOAuthTokenURL   = "https://oauth2.googleapis.com/token"
	defaultWorkerPoolSize  = 4
	defaultTaskQueueSize   = 64
	defaultShutdownTimeout = 10 * time.Second
	defaultResetTokenTTL   = time.Hour
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		PublicBaseURL:     getString(lookup, "PUBLIC_BASE_URL", ""),
		RevalidateURL:     getString(lookup, "REVALIDATE_URL", ""),
		DefaultOrderEmail: getString(lookup, "DEFAULT_ORDER_NOTIFICATION_EMAIL", ""),
		AuthSecret:        getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		SMTPHost:          getString(lookup, "SMTP_HOST", defaultSMTPHost),
		SMTPPort:          getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		EmailFrom:         getString(lookup, "EMAIL_FROM", ""),
		EmailFromName:     getString(lookup, "EMAIL_FROM_NAME", defaultEmailFromName),
		SMTPPassword:      getString(lookup, "SMTP_PASSWORD", ""),
		OAuthClientID:     getString(lookup, "GMAIL_CLIENT_ID", ""),
		OAuthClientSecret: getString(lookup, "GMAIL_CLIENT_SECRET", ""),
		OAuthRefreshToken: getString(lookup, "GMAIL_REFRESH_TOKEN", ""),
		OAuthTokenURL:     getString(lookup, "OAUTH_TOKEN_URL", defaultOAuthTokenURL),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		TaskQueueSize:     getInt(lookup, "TASK_QUEUE_SIZE", defaultTaskQueueSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		ResetTokenTTL:     getDuration(lookup, "RESET_TOKEN_TTL", defaultResetTokenTTL),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PublicBaseURL, "public-url", cfg.PublicBaseURL, "Public site base URL")
	fs.StringVar(&cfg.RevalidateURL, "revalidate-url", cfg.RevalidateURL, "Front-end cache revalidation endpoint")
	fs.StringVar(&cfg.DefaultOrderEmail, "order-email", cfg.DefaultOrderEmail, "Fallback recipient for order notifications")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent background workers")
	fs.IntVar(&cfg.TaskQueueSize, "task-queue", cfg.TaskQueueSize, "Capacity of the background task queue")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.TaskQueueSize <= 0 {
		cfg.TaskQueueSize = defaultTaskQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = defaultResetTokenTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PublicBaseURL == "" {
		return nil, fmt.Errorf("public base URL must be provided")
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if cfg.RevalidateURL == "" {
		cfg.RevalidateURL = cfg.PublicBaseURL + "/api/revalidate"
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
