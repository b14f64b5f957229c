package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver string
	DBSource string
	Port     string

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AMQPURL      string
	AMQPExchange string

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	DefaultPoint    int64
	SeedFile        string
	RankingCacheTTL time.Duration
}

// LoadConfig reads .env (if present) and then the process environment.
// The returned bool reports whether a .env file was loaded.
func LoadConfig() (*Config, bool) {
	loaded := godotenv.Load() == nil

	return &Config{
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBSource: getEnv("DB_SOURCE", "food.db"),
		Port:     getEnv("PORT", "8000"),

		AccessSecret:  getEnv("ACCESS_SECRET_KEY", "changeme-access"),
		RefreshSecret: getEnv("REFRESH_SECRET_KEY", "changeme-refresh"),
		AccessTTL:     getDuration("ACCESS_TTL", 12*time.Hour),
		RefreshTTL:    getDuration("REFRESH_TTL", 7*24*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "food.orders"),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 40),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		DefaultPoint:    int64(getInt("DEFAULT_POINT", 1000000)),
		SeedFile:        getEnv("SEED_FILE", ""),
		RankingCacheTTL: getDuration("RANKING_CACHE_TTL", time.Minute),
	}, loaded
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
