package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Env      string
	APIPort  string
	LogLevel string

	SessionSecret     []byte
	SessionTTL        time.Duration
	SessionCookieName string
	SessionSweepSpec  string

	UserStoreBackend    string
	SessionStoreBackend string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	ClientURL  string
	StaticDir  string
	TrustProxy bool

	RateLimitMax    int
	RateLimitWindow time.Duration

	SeedAdminUsername string
	SeedAdminEmail    string
	SeedAdminPassword string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	AppConfig = FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() *Config {
	cfg := &Config{
		Env:                 strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		APIPort:             getEnv("API_PORT", "5000"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		SessionSecret:       []byte(getEnv("SESSION_SECRET", "cublex-secret-key")),
		SessionTTL:          time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "cublex_session"),
		SessionSweepSpec:    getEnv("SESSION_SWEEP_SPEC", "@every 5m"),
		UserStoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		SessionStoreBackend: strings.ToLower(getEnv("SESSION_BACKEND", BackendMemory)),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "password"),
		DBName:              getEnv("DB_NAME", "cublex"),
		DBSslMode:           getEnv("DB_SSLMODE", "disable"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		RedisPrefix:         getEnv("REDIS_PREFIX", "cublex:"),
		ClientURL:           getEnv("CLIENT_URL", "http://localhost:3000"),
		StaticDir:           getEnv("STATIC_DIR", "../client/build"),
		TrustProxy:          getEnvAsBool("TRUST_PROXY", false),
		RateLimitMax:        getEnvAsInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow:     time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
		SeedAdminUsername:   getEnv("SEED_ADMIN_USERNAME", ""),
		SeedAdminEmail:      getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:   getEnv("SEED_ADMIN_PASSWORD", ""),
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode
	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) SeedAdminEnabled() bool {
	return c.SeedAdminUsername != "" && c.SeedAdminEmail != "" && c.SeedAdminPassword != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
