package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	HTTPPort        string
	BaseURL         string
	MockDelay       time.Duration
	UseMock         bool
	RedisAddr       string
	QueueBackend    string
	JournalKey      string
	SessionBackend  string
	SessionPath     string
	SessionKey      string
	RateLimitPerMin int
	CORSOrigins     []string
}

// Load reads .env when present, then returns config populated from the environment with defaults.
func Load() App {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv returns config from the current environment only.
func FromEnv() App {
	return App{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPPort:        getEnv("HTTP_PORT", "8000"),
		BaseURL:         getEnv("API_BASE_URL", "http://localhost:8000"),
		MockDelay:       durationEnv("MOCK_DELAY", 300*time.Millisecond),
		UseMock:         boolEnv("USE_MOCK_DATA", true),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		QueueBackend:    getEnv("QUEUE_BACKEND", "memory"),
		JournalKey:      getEnv("JOURNAL_KEY", "mockapi:journal"),
		SessionBackend:  getEnv("SESSION_BACKEND", "file"),
		SessionPath:     getEnv("SESSION_PATH", ".session"),
		SessionKey:      getEnv("SESSION_KEY", "session:authToken"),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),
		CORSOrigins:     listEnv("CORS_ORIGINS", []string{"*"}),
	}
}

// Production reports whether the app runs with release settings.
func (a App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			log.Printf("invalid bool for %s, using fallback %v", key, fallback)
			return fallback
		}
		return b
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			log.Printf("invalid int for %s, using fallback %d", key, fallback)
			return fallback
		}
		return n
	}
	return fallback
}

func listEnv(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
