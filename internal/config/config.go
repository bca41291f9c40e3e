package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	DatabaseURL string
	HTTPAddr    string
	CORSOrigins []string
	RedisAddr   string
	LogLevel    string

	DBMaxOpenConns        int
	DBMaxIdleConns        int
	DBConnMaxLifetimeSecs int
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		GetLogger().Debug("no .env file found, relying on system env")
	}

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		HTTPAddr:              stringFromEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:           listFromEnv("CORS_ORIGINS", []string{"http://localhost:3000"}),
		RedisAddr:             strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		LogLevel:              stringFromEnv("LOG_LEVEL", "info"),
		DBMaxOpenConns:        intFromEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:        intFromEnv("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetimeSecs: intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 300),
	}

	SetLogLevel(cfg.LogLevel)
	return cfg
}

func stringFromEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func listFromEnv(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
