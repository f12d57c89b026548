package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	PriceFeed PriceFeedConfig
	Web       WebConfig
	Report    ReportConfig
	CORS      CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// StoreConfig selects and configures the holding store backend.
// Backend is either "sheets" (Google Sheets) or "sqlite".
type StoreConfig struct {
	Backend string

	// Google Sheets backend.
	SpreadsheetID   string
	SheetTab        string
	CredentialsJSON string // inline service-account JSON, takes precedence
	CredentialsFile string

	// SQLite backend.
	DBPath string
}

// PriceFeedConfig holds the TEFAS feed configuration.
type PriceFeedConfig struct {
	BaseURL string
}

// WebConfig holds presentation-layer configuration.
type WebConfig struct {
	// FlashKey is a base64 fernet key used to sign the one-shot flash
	// cookie. When empty a random per-process key is generated.
	FlashKey string
}

// ReportConfig holds the daily valuation report job configuration.
type ReportConfig struct {
	// Schedule is a cron expression. Empty disables the job.
	Schedule string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Store: StoreConfig{
			Backend:         getEnv("STORE_BACKEND", "sheets"),
			SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
			SheetTab:        getEnv("SHEET_TAB", "Portfolio"),
			CredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS"),
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
			DBPath:          getEnv("DB_PATH", "./data/fonfolio.db"),
		},
		PriceFeed: PriceFeedConfig{
			BaseURL: getEnv("TEFAS_URL", "https://www.tefas.gov.tr"),
		},
		Web: WebConfig{
			FlashKey: os.Getenv("FLASH_KEY"),
		},
		Report: ReportConfig{
			Schedule: getEnv("REPORT_SCHEDULE", "15 19 * * 1-5"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
