package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string

	// Late fees
	CBRURL         string
	LateFeeEnabled bool
	LateFeeMargin  float64

	// Notification scan
	ScanSchedule   string
	PurgeSchedule  string
	ScanDebounce   time.Duration
	UpcomingDays   int
	RetentionDays  int
	RetryMax       int
	RetryBaseDelay time.Duration
	Timezone       string
	Location       *time.Location
	AlertRecipient string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SenderEmail    string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBConn:         getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=sales sslmode=disable"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		CBRURL:         getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		ScanSchedule:   getEnv("SCAN_SCHEDULE", "@every 15m"),
		PurgeSchedule:  getEnv("PURGE_SCHEDULE", "@daily"),
		Timezone:       getEnv("TIMEZONE", "Local"),
		AlertRecipient: getEnv("ALERT_RECIPIENT", ""),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", ""),
	}

	var err error
	if cfg.LateFeeEnabled, err = getEnvBool("LATE_FEE_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.LateFeeMargin, err = getEnvFloat("LATE_FEE_MARGIN", 5.0); err != nil {
		return nil, err
	}
	if cfg.ScanDebounce, err = getEnvDuration("SCAN_DEBOUNCE", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetryBaseDelay, err = getEnvDuration("RETRY_BASE_DELAY", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.UpcomingDays, err = getEnvInt("UPCOMING_DAYS", 3); err != nil {
		return nil, err
	}
	if cfg.RetentionDays, err = getEnvInt("NOTIFICATION_RETENTION_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.RetryMax, err = getEnvInt("RETRY_MAX", 3); err != nil {
		return nil, err
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ScanSchedule == "" {
		return nil, fmt.Errorf("SCAN_SCHEDULE is required")
	}
	if cfg.RetryMax < 1 {
		return nil, fmt.Errorf("RETRY_MAX must be at least 1, got %d", cfg.RetryMax)
	}
	if cfg.UpcomingDays < 0 {
		return nil, fmt.Errorf("UPCOMING_DAYS cannot be negative, got %d", cfg.UpcomingDays)
	}
	if cfg.LateFeeMargin < 0 {
		return nil, fmt.Errorf("LATE_FEE_MARGIN cannot be negative, got %v", cfg.LateFeeMargin)
	}
	if cfg.RetentionDays < 1 {
		return nil, fmt.Errorf("NOTIFICATION_RETENTION_DAYS must be at least 1, got %d", cfg.RetentionDays)
	}

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// MailEnabled reports whether alert e-mails can be sent. Installment alerts go to the customer,
// so ALERT_RECIPIENT is optional.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
