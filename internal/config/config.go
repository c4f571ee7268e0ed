package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv      = "BOOKFINDER_CONFIG"
	openLibraryURLEnv  = "OPENLIBRARY_BASE_URL"
	coversURLEnv       = "OPENLIBRARY_COVERS_URL"
	googleBooksURLEnv  = "GOOGLE_BOOKS_BASE_URL"
	googleBooksKeyEnv  = "GOOGLE_BOOKS_API_KEY"
	userAgentEnv       = "HTTP_USER_AGENT"
	httpTimeoutEnv     = "HTTP_TIMEOUT"
	requestsPerSecEnv  = "HTTP_RPS"
	searchDebounceEnv  = "SEARCH_DEBOUNCE_MS"
	logLevelEnv        = "LOG_LEVEL"
	defaultUserAgent   = "bookfinder/1.0 (+https://openlibrary.org/developers/api)"
	defaultDebounceMS  = 500
	defaultLogLevel    = "info"
	defaultCoversURL   = "https://covers.openlibrary.org/b/id"
	defaultOpenLibrary = "https://openlibrary.org"
	defaultGoogleBooks = "https://www.googleapis.com/books/v1"
)

var validate = validator.New()

// Config holds the settings for the catalog services and the search pipeline.
type Config struct {
	OpenLibrary OpenLibraryConfig `yaml:"openLibrary"`
	GoogleBooks GoogleBooksConfig `yaml:"googleBooks"`
	HTTP        HTTPConfig        `yaml:"http"`
	Search      SearchConfig      `yaml:"search"`
	Log         LogConfig         `yaml:"log"`
}

// OpenLibraryConfig points at the catalog, author and cover endpoints.
type OpenLibraryConfig struct {
	BaseURL   string `yaml:"baseUrl" validate:"required,url"`
	CoversURL string `yaml:"coversUrl" validate:"required,url"`
}

// GoogleBooksConfig points at the ratings and description service.
type GoogleBooksConfig struct {
	BaseURL string `yaml:"baseUrl" validate:"required,url"`
	APIKey  string `yaml:"apiKey"`
}

// HTTPConfig tunes the outbound client. A zero timeout means none.
type HTTPConfig struct {
	UserAgent         string        `yaml:"userAgent" validate:"required"`
	Timeout           time.Duration `yaml:"timeout" validate:"gte=0"`
	RequestsPerSecond int           `yaml:"requestsPerSecond" validate:"gte=0"`
}

type SearchConfig struct {
	DebounceMS int `yaml:"debounceMs" validate:"gte=0,lte=10000"`
}

// Debounce returns the search quiet period.
func (s SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

type LogConfig struct {
	Level string `yaml:"level" validate:"required,oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OpenLibrary: OpenLibraryConfig{BaseURL: defaultOpenLibrary, CoversURL: defaultCoversURL},
		GoogleBooks: GoogleBooksConfig{BaseURL: defaultGoogleBooks},
		HTTP:        HTTPConfig{UserAgent: defaultUserAgent},
		Search:      SearchConfig{DebounceMS: defaultDebounceMS},
		Log:         LogConfig{Level: defaultLogLevel},
	}
}

// Load reads .env files, an optional YAML file and environment overrides, in
// that order, and validates the result. path overrides BOOKFINDER_CONFIG.
func Load(path string) (Config, error) {
	// Do not override environment provided by the runtime.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(openLibraryURLEnv); v != "" {
		c.OpenLibrary.BaseURL = v
	}
	if v := os.Getenv(coversURLEnv); v != "" {
		c.OpenLibrary.CoversURL = v
	}
	if v := os.Getenv(googleBooksURLEnv); v != "" {
		c.GoogleBooks.BaseURL = v
	}
	if v := os.Getenv(googleBooksKeyEnv); v != "" {
		c.GoogleBooks.APIKey = v
	}
	if v := os.Getenv(userAgentEnv); v != "" {
		c.HTTP.UserAgent = v
	}
	if v := os.Getenv(httpTimeoutEnv); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", httpTimeoutEnv, err)
		}
		c.HTTP.Timeout = d
	}
	if v := os.Getenv(requestsPerSecEnv); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", requestsPerSecEnv, err)
		}
		c.HTTP.RequestsPerSecond = n
	}
	if v := os.Getenv(searchDebounceEnv); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", searchDebounceEnv, err)
		}
		c.Search.DebounceMS = n
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Log.Level = v
	}
	return nil
}
