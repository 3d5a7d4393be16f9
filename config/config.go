package config

import (
	"os"
	"strconv"
)

type Config struct {
	App    AppConfig
	Logger LoggerConfig
	SQLite SQLiteConfig
	Alert  AlertConfig
}

type AppConfig struct {
	AppEnv   string
	RootName string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type SQLiteConfig struct {
	// Path is the database file holding the catalog. Relative paths resolve
	// against the working directory.
	Path string
}

type AlertConfig struct {
	// DefaultStrategy selects the strategy active at startup: "fixed",
	// "reorder" or "per-product".
	DefaultStrategy   string
	FixedThreshold    int
	ReorderPoint      int
	SafetyStock       int
	PerProductDefault int
}

func LoadEnv() *Config {
	// Basic config loading
	// In a real scenario, use structured config loader like viper or koanf
	return &Config{
		App: AppConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			RootName: getEnv("CATALOG_ROOT_NAME", "All Products"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "inventory.db"),
		},
		Alert: AlertConfig{
			DefaultStrategy:   getEnv("ALERT_DEFAULT_STRATEGY", "fixed"),
			FixedThreshold:    getEnvInt("ALERT_FIXED_THRESHOLD", 5),
			ReorderPoint:      getEnvInt("ALERT_REORDER_POINT", 10),
			SafetyStock:       getEnvInt("ALERT_SAFETY_STOCK", 3),
			PerProductDefault: getEnvInt("ALERT_PER_PRODUCT_DEFAULT", 5),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
