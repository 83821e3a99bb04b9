package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port           string
	BaseURL        string
	DatabaseURL    string
	RedisURL       string
	LogFile        string
	JWTSecret      []byte
	SessionTTL     time.Duration
	ResetTokenTTL  time.Duration
	BcryptCost     int
	TOTPIssuer     string
	TrustedProxies []string
	Email          EmailConfig
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Secure   bool
}

func (e EmailConfig) Enabled() bool {
	return e.Host != "" && e.Port != 0 && e.From != ""
}

func Load() (Config, error) {
	cfg := Config{
		Port:           getenvDefault("PORT", "8080"),
		BaseURL:        getenvDefault("BASE_URL", "http://localhost:3000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       getenvDefault("REDIS_URL", "redis://localhost:6379"),
		LogFile:        getenvDefault("LOG_FILE", "logs/server.log"),
		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		SessionTTL:     parseDuration(os.Getenv("SESSION_TTL"), 7*24*time.Hour),
		ResetTokenTTL:  time.Hour,
		BcryptCost:     parseInt(os.Getenv("BCRYPT_COST"), bcrypt.DefaultCost),
		TOTPIssuer:     getenvDefault("TOTP_ISSUER", "HealthVibe"),
		TrustedProxies: parseList(os.Getenv("TRUSTED_PROXIES")),
	}

	cfg.Email = EmailConfig{
		Host:     clean(os.Getenv("EMAIL_SERVER_HOST")),
		Port:     parseInt(os.Getenv("EMAIL_SERVER_PORT"), 587),
		Username: clean(os.Getenv("EMAIL_SERVER_USER")),
		Password: clean(os.Getenv("EMAIL_SERVER_PASSWORD")),
		From:     clean(os.Getenv("EMAIL_FROM")),
		Secure:   parseBool(os.Getenv("EMAIL_SERVER_SECURE")),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if len(cfg.JWTSecret) == 0 {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func clean(val string) string {
	return strings.Trim(val, "\"' \t\r\n")
}

func parseBool(val string) bool {
	val = strings.ToLower(clean(val))
	return val == "1" || val == "true" || val == "yes"
}

func parseInt(val string, def int) int {
	n, err := strconv.Atoi(clean(val))
	if err != nil {
		return def
	}
	return n
}

func parseDuration(val string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(clean(val))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseList(val string) []string {
	var out []string
	for _, p := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
