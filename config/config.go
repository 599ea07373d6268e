package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIBaseURL = "https://survey-be-5d9v.onrender.com/api"

type Config struct {
	APIBaseURL         string
	APITimeout         time.Duration
	MongoURI           string
	MongoDB            string
	RedisAddr          string
	HTTPPort           string
	DraftTTL           time.Duration
	SessionTTL         time.Duration
	LogLevel           string
	RespondentOrder    string
	StrictAnswers      bool
	CORSAllowedOrigins string
}

// Load reads .env when present, then the environment
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:         strings.TrimRight(getEnv("API_BASE_URL", DefaultAPIBaseURL), "/"),
		APITimeout:         getDuration("API_TIMEOUT", 30*time.Second),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getEnv("MONGO_DB", "surveykit"),
		RedisAddr:          strings.TrimPrefix(getEnv("REDIS_ADDR", "localhost:6379"), "redis://"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DraftTTL:           getDuration("DRAFT_TTL", 24*time.Hour),
		SessionTTL:         getDuration("SESSION_TTL", 12*time.Hour),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RespondentOrder:    getEnv("CHART_RESPONDENT_ORDER", "as-returned"),
		StrictAnswers:      getBool("STRICT_ANSWERS", false),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
