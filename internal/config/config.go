package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string
	APIKey      string // API key for authentication

	DatabaseURL     string // overrides the DB_* parts when set
	DBUser          string
	DBPassword      string
	DBHost          string
	DBPort          string
	DBName          string
	DBMaxConns      int
	DBMaxIdleTime   time.Duration
	DBMaxLifetime   time.Duration
	GameTimezone    string
	Location        *time.Location // calendar used for streak days and the daily audit
	AuditEnabled    bool
	CatalogPath     string
	CatalogCacheTTL time.Duration
	CatalogCacheMax int
	DeadLetterPath  string
	TrustedProxies  []string // peers allowed to set X-Forwarded-For
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:       getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment:     getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:         getEnv("VERSION", DefaultVersion),
		APIKey:          getEnv("API_KEY", ""),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DBUser:          getEnv("DB_USER", DefaultDBUser),
		DBPassword:      getEnv("DB_PASSWORD", DefaultDBPassword),
		DBHost:          getEnv("DB_HOST", DefaultDBHost),
		DBPort:          getEnv("DB_PORT", DefaultDBPort),
		DBName:          getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:      getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxIdleTime),
		DBMaxLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxLifetime),
		GameTimezone:    getEnv("GAME_TIMEZONE", DefaultGameTimezone),
		AuditEnabled:    getEnvAsBool("AUDIT_ENABLED", true),
		CatalogPath:     getEnv("CATALOG_PATH", ConfigPathRewards),
		CatalogCacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL),
		CatalogCacheMax: getEnvAsInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize),
		DeadLetterPath:  getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	loc, err := time.LoadLocation(cfg.GameTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid GAME_TIMEZONE %q: %w", cfg.GameTimezone, err)
	}
	cfg.Location = loc

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.DBMaxConns <= 0 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", cfg.DBMaxConns)
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings, for tools that never serve traffic
func LoadDatabase() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBUser:      getEnv("DB_USER", DefaultDBUser),
		DBPassword:  getEnv("DB_PASSWORD", DefaultDBPassword),
		DBHost:      getEnv("DB_HOST", DefaultDBHost),
		DBPort:      getEnv("DB_PORT", DefaultDBPort),
		DBName:      getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:  getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		CatalogPath: getEnv("CATALOG_PATH", ConfigPathRewards),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
