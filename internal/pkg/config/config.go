package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// Config holds all configuration for the application.
// Every environment variable is read here and nowhere else.
type Config struct {
	Env      string // development, staging, production
	LogLevel string

	HTTP   HTTPConfig
	GCP    GCPConfig
	Report ReportConfig

	StoreBackend string

	// AuthDisabled skips token verification and injects DevIdentity.
	// Refused in production.
	AuthDisabled bool
}

// HTTPConfig holds server settings.
type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// GCPConfig holds the Google Cloud resources the service talks to.
type GCPConfig struct {
	ProjectID       string
	CredentialsFile string
	// SpannerDatabase is the ledger database path; empty disables the ledger.
	SpannerDatabase string
	// ReportsBucket archives rendered reports; empty disables archiving.
	ReportsBucket string
}

// ReportConfig tunes comparisons and summaries.
type ReportConfig struct {
	BaselineYear int
	SummaryLimit int
}

// Load reads .env (when present) and the environment, applies defaults and validates.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env:      v.GetString("ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Port:            v.GetString("HTTP_PORT"),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
			AllowedOrigins:  splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		GCP: GCPConfig{
			ProjectID:       v.GetString("GCP_PROJECT_ID"),
			CredentialsFile: v.GetString("FIRESTORE_CREDENTIALS_FILE"),
			SpannerDatabase: v.GetString("SPANNER_DATABASE"),
			ReportsBucket:   v.GetString("REPORTS_BUCKET"),
		},
		Report: ReportConfig{
			BaselineYear: v.GetInt("BASELINE_YEAR"),
			SummaryLimit: v.GetInt("SUMMARY_LIMIT"),
		},
		StoreBackend: strings.ToLower(v.GetString("STORE_BACKEND")),
		AuthDisabled: v.GetBool("AUTH_DISABLED"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("GCP_PROJECT_ID", "")
	v.SetDefault("FIRESTORE_CREDENTIALS_FILE", "")
	v.SetDefault("SPANNER_DATABASE", "")
	v.SetDefault("REPORTS_BUCKET", "")
	v.SetDefault("BASELINE_YEAR", 2025)
	v.SetDefault("SUMMARY_LIMIT", 5)
	v.SetDefault("STORE_BACKEND", BackendFirestore)
	v.SetDefault("AUTH_DISABLED", false)
}

// Validate checks that required values are set and consistent.
func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.StoreBackend {
	case BackendFirestore:
		if c.GCP.ProjectID == "" {
			return fmt.Errorf("GCP_PROJECT_ID is required for the firestore backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be one of: firestore, memory")
	}

	if c.AuthDisabled && c.IsProduction() {
		return fmt.Errorf("AUTH_DISABLED cannot be set in production")
	}
	if c.Report.SummaryLimit < 1 {
		return fmt.Errorf("SUMMARY_LIMIT must be at least 1")
	}
	if c.Report.BaselineYear < 2000 {
		return fmt.Errorf("BASELINE_YEAR looks wrong: %d", c.Report.BaselineYear)
	}
	if c.HTTP.Port == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}

	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
