// Package config holds the process configuration. It is loaded exactly once
// at entry and passed by reference into each component's constructor; no
// package keeps ambient global state.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// AWS
	Region          string
	TxnTableName    string
	TxnEmailsBucket string

	// Reports
	ReportsBucket string // empty disables remote upload
	ReportsPrefix string
	OutputDir     string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads configuration from the environment, with a .env file honored
// for local runs. Missing optional values fall back to defaults; required
// values are checked by the Validate* methods so each entrypoint can demand
// only what it uses.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Region:          getEnv("REGION", "us-east-1"),
		TxnTableName:    os.Getenv("TXN_TABLE_NAME"),
		TxnEmailsBucket: os.Getenv("TXN_EMAILS_BUCKET_NAME"),

		ReportsBucket: os.Getenv("REPORTS_S3_BUCKET"),
		ReportsPrefix: os.Getenv("REPORTS_S3_PREFIX"),
		OutputDir:     getEnv("REPORTS_OUTPUT_DIR", "/tmp/reports"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}
}

// ValidateIngest checks the variables the email-ingestion entrypoint needs.
func (c *Config) ValidateIngest() error {
	var missing []string
	if c.TxnTableName == "" {
		missing = append(missing, "TXN_TABLE_NAME")
	}
	if c.TxnEmailsBucket == "" {
		missing = append(missing, "TXN_EMAILS_BUCKET_NAME")
	}
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	return missingErr(missing)
}

// ValidateReport checks the variables the report entrypoints need. The
// reports bucket is deliberately not required: without it the run keeps the
// local artifact only.
func (c *Config) ValidateReport() error {
	var missing []string
	if c.TxnTableName == "" {
		missing = append(missing, "TXN_TABLE_NAME")
	}
	return missingErr(missing)
}

func missingErr(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
