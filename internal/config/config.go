package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	JWTSecret    string
	TokenExpiry  time.Duration
	DashboardTTL time.Duration
	SwaggerHost  string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		MySQLDSN:     getEnv("MYSQL_DSN", "root:password@tcp(localhost:3306)/heva_db?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		TokenExpiry:  getEnvDuration("TOKEN_EXPIRY", 24*time.Hour),
		DashboardTTL: getEnvDuration("DASHBOARD_CACHE_TTL", 60*time.Second),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
