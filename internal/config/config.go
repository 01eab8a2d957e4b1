// Package config loads server and CLI settings from the environment, with
// an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/scholar/internal/llm"
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config holds process-wide settings.
type Config struct {
	Addr    string
	LogMode string

	SessionBackend string
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// RequestTimeout bounds each HTTP request that generates text.
	RequestTimeout time.Duration
	AllowedOrigins []string
	TLSCert        string
	TLSKey         string

	// DBPath is the event log location. Empty means store.DefaultDBPath.
	DBPath string

	TranscribeModel string

	LLM llm.Config
}

// Load reads .env from the working directory when present, then the
// environment. Existing environment variables win over .env entries.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:            String("SCHOLAR_HTTP_ADDR", ":8080"),
		LogMode:         String("SCHOLAR_LOG_MODE", "dev"),
		SessionBackend:  strings.ToLower(String("SCHOLAR_SESSION_BACKEND", BackendMemory)),
		SessionTTL:      Duration("SCHOLAR_SESSION_TTL", 24*time.Hour),
		RedisAddr:       String("SCHOLAR_REDIS_ADDR", "localhost:6379"),
		RedisPassword:   String("SCHOLAR_REDIS_PASSWORD", ""),
		RedisDB:         Int("SCHOLAR_REDIS_DB", 0),
		RequestTimeout:  Duration("SCHOLAR_GENERATION_TIMEOUT", 2*time.Minute),
		AllowedOrigins:  List("SCHOLAR_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		TLSCert:         String("SCHOLAR_TLS_CERT", ""),
		TLSKey:          String("SCHOLAR_TLS_KEY", ""),
		DBPath:          String("SCHOLAR_DB", ""),
		TranscribeModel: String("SCHOLAR_TRANSCRIBE_MODEL", ""),
		LLM:             llm.ConfigFromEnv(),
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings that cannot work together.
func (c Config) Validate() error {
	switch c.SessionBackend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("unknown session backend %q (want memory, redis or sqlite)", c.SessionBackend)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("TLS needs both a certificate and a key")
	}
	return nil
}

// TLSEnabled reports whether the server should serve HTTPS.
func (c Config) TLSEnabled() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// String returns the trimmed value of name, or def when unset.
func String(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

// Int returns name parsed as an integer, or def when unset or invalid.
func Int(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// Duration returns name parsed by time.ParseDuration, or def when unset or
// invalid.
func Duration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// List splits a comma-separated value, dropping empty items.
func List(name string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
