package config

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"
)

// GeminiKeyPlaceholder is the value shipped in .env.example; a key equal to it
// is treated the same as no key at all.
const GeminiKeyPlaceholder = "your_actual_api_key_here"

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

type Config struct {
	Env           string
	LogLevel      string
	Port          string
	DBType        string
	DBPath        string
	DBDSN         string
	GeminiAPIKey  string
	GeminiBaseURL string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:           getEnv("APP_ENV", "development"),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			Port:          getEnv("PORT", "3001"),
			DBType:        getEnv("STORAGE_BACKEND", "sqlite"),
			DBPath:        getEnv("DB_PATH", "./database.sqlite"),
			DBDSN:         getEnv("POSTGRES_DSN", ""),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiBaseURL: getEnv("GEMINI_BASE_URL", defaultGeminiBaseURL),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType != "sqlite" && c.DBType != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: sqlite, postgres")
	}
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "sqlite" && c.DBPath == "" {
		return errors.New("sqlite storage requires DB_PATH to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

// GeminiConfigured reports whether a usable forecasting-service key is present.
func (c *Config) GeminiConfigured() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != GeminiKeyPlaceholder
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadDotEnv() error {
	f, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if ok {
			os.Setenv(strings.TrimSpace(k), strings.TrimSpace(v))
		}
	}
	return scanner.Err()
}
