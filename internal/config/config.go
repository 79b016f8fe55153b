package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBPath       string
	DataDir      string // pin sets and uploaded artwork live under here
	CSRFKey      []byte
	SessionKey   []byte
	CookieDomain string
	CookieSecure bool

	// Email delivery provider
	BrevoAPIKey    string
	BrevoBaseURL   string
	SenderEmail    string
	SenderName     string
	ReplyToEmail   string
	ReplyToName    string
	PublicBaseURL  string // used to build unsubscribe links
	OutboxInterval time.Duration
}

func LoadConfig() (*Config, error) {
	// Load .env if present; env vars already set win.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8585"),
		DBPath:         getEnv("DB_PATH", "./backoffice.db"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		CookieDomain:   getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:   getEnv("COOKIE_SECURE", "false") == "true",
		BrevoAPIKey:    getEnv("BREVO_API_KEY", ""),
		BrevoBaseURL:   getEnv("BREVO_BASE_URL", "https://api.brevo.com/v3"),
		SenderEmail:    getEnv("SENDER_EMAIL", "hello@achievepack.com"),
		SenderName:     getEnv("SENDER_NAME", "Achieve Pack"),
		ReplyToEmail:   getEnv("REPLY_TO_EMAIL", "ryan@achievepack.com"),
		ReplyToName:    getEnv("REPLY_TO_NAME", "Ryan Wong"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8585"),
		OutboxInterval: getDurationEnv("OUTBOX_POLL_INTERVAL", 5*time.Second),
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey decodes a base64 key from the environment, generating a random one
// with a warning when missing or too short. Generated keys change on restart.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn(name + " environment variable not set. Generating a random key for development. PLEASE SET " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		// Fallback only prevents a panic; never acceptable in production.
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
