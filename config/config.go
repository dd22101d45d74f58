package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds environment driven configuration values. Sensitive data
// never has defaults inside code and must come from env files or the
// environment.
type AppConfig struct {
	AppPort string
	GinMode string
	// GinPath is the HTTP access log file
	GinPath string

	// Database connection; DatabaseURI takes precedence over the parts
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Connection pool limits
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	DBConnMaxIdleSec int
	// Per-statement deadline, bounds waiting for a pooled connection too
	DBStatementTimeoutSec int

	// Directory uploaded images are written to and served from
	ImageDir string

	RateLimitPerMinute int
	AllowedOrigins     []string

	// Redis for read-side caching; empty host disables caching
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	CacheTTLSec   int

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load resolves the configuration once during boot. Precedence: real
// environment variables -> .env.local -> .env -> built-in defaults
// (godotenv never overwrites variables that are already set).
func Load() AppConfig {
	if loaded {
		return cfg
	}

	loadDotEnv()

	cfg = AppConfig{
		AppPort:               getEnv("APP_PORT", "8000"),
		GinMode:               getEnv("GIN_MODE", "release"),
		GinPath:               getEnv("GIN_LOG_PATH", "logs/access.log"),
		DatabaseURI:           getEnv("DATABASE_URI", ""),
		DBHost:                getEnv("DB_HOST", "db"),
		DBPort:                getEnv("DB_PORT", "3306"),
		DBUser:                getEnv("DB_USER", "user"),
		DBPassword:            getEnv("DB_PASSWORD", ""),
		DBName:                getEnv("DB_NAME", "db"),
		DBMaxOpenConns:        getEnvInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:        getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxIdleSec:      getEnvInt("DB_CONN_MAX_IDLE_SEC", 7200),
		DBStatementTimeoutSec: getEnvInt("DB_STATEMENT_TIMEOUT_SEC", 3),
		ImageDir:              getEnv("IMAGE_DIR", "img"),
		RateLimitPerMinute:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		AllowedOrigins:        splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RedisHost:             getEnv("REDIS_HOST", ""),
		RedisPort:             getEnvInt("REDIS_PORT", 6379),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		CacheTTLSec:           getEnvInt("CACHE_TTL_SEC", 60),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogPath:               getEnv("LOG_PATH", "logs/app.log"),
		LogMaxSizeMB:          getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:         getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:         getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:           getEnvBool("LOG_COMPRESS", false),
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// loadDotEnv loads .env files with priority .env.local > .env.
func loadDotEnv() {
	var present []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) > 0 {
		_ = godotenv.Load(present...)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
