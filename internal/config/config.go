package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the placeholder signing key used when JWT_SECRET is
// unset. It exists so local environments work out of the box; production
// startup refuses to run with it (see cmd/server).
const DefaultJWTSecret = "fallback-secret-min-32-characters-long"

// Config holds application level configuration loaded from environment variables.
// It is read once at process start and passed into constructors; nothing reads
// the environment after Load returns.
type Config struct {
	Env         string
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	CookieName  string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/spendtrack?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", DefaultJWTSecret),
		CookieName:  getEnv("COOKIE_NAME", "expensetracker_session"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether the process runs in a production-like environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
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
