package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/stellar/go/network"
)

type Config struct {
	// Reporting API base URL and its static API key
	ReportAPIURL string
	ReportAPIKey string

	// Poll cadence for the latest ledger
	PollInterval time.Duration

	// Bound on every reporting API request
	RequestTimeout time.Duration

	// Artificial latency of offline lookups
	SimulatedLookupDelay time.Duration

	// Dashboard HTTP port
	APIPort int

	// debug, info, warn or error
	LogLevel string

	// LevelDB directory for preferences, used when no database URL is set
	PreferencesPath string

	// Optional PostgreSQL preferences store
	PreferencesDatabaseURL string

	// Account that pays anchor transactions ( empty disables anchoring )
	AnchorAccount string

	// Network passphrase ( mainnet or testnet ) for anchor transactions
	NetworkPassphrase string

	// Draw the console view on stdout
	ConsoleView bool
}

// Load returns the dashboard configuration from the environment
func Load() *Config {
	return &Config{
		ReportAPIURL:           getEnv("REPORT_API_URL", "http://localhost:8080"),
		ReportAPIKey:           getEnv("REPORT_API_KEY", "changeme"),
		PollInterval:           time.Duration(getEnvAsInt("POLL_INTERVAL_SEC", 4)) * time.Second,
		RequestTimeout:         time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SEC", 10)) * time.Second,
		SimulatedLookupDelay:   time.Duration(getEnvAsInt("SIMULATED_LOOKUP_DELAY_MS", 600)) * time.Millisecond,
		APIPort:                getEnvAsInt("API_PORT", 9090),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		PreferencesPath:        getEnv("PREFERENCES_PATH", "./data/preferences"),
		PreferencesDatabaseURL: getEnv("PREFERENCES_DATABASE_URL", ""),
		AnchorAccount:          getEnv("ANCHOR_ACCOUNT", ""),
		NetworkPassphrase:      getEnv("NETWORK_PASSPHRASE", network.TestNetworkPassphrase),
		ConsoleView:            getEnvAsBool("CONSOLE_VIEW", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ReportAPIURL == "" {
		return fmt.Errorf("REPORT_API_URL is required")
	}
	u, err := url.Parse(c.ReportAPIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("REPORT_API_URL must be an http(s) URL, got %q", c.ReportAPIURL)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL_SEC must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SEC must be positive")
	}
	if c.SimulatedLookupDelay < 0 {
		return fmt.Errorf("SIMULATED_LOOKUP_DELAY_MS must not be negative")
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("API_PORT must be between 1 and 65535, got %d", c.APIPort)
	}
	if c.PreferencesDatabaseURL == "" && c.PreferencesPath == "" {
		return fmt.Errorf("PREFERENCES_PATH is required when PREFERENCES_DATABASE_URL is not set")
	}
	if c.NetworkPassphrase == "" {
		return fmt.Errorf("NETWORK_PASSPHRASE is required")
	}
	return nil
}

// Helper: get string from env
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Helper: get int from env
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// Helper: get bool from env
func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
