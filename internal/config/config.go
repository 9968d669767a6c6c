// Package config loads backend settings from the environment and client
// settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrMissingAPIKey = errors.New("API_KEY environment variable is not set")

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Server holds all runtime configuration for the backend.
type Server struct {
	Port              string
	APIKey            string
	Provider          string
	GeminiModel       string
	OpenAIAPIKey      string
	OpenAIModel       string
	PlacesPerCategory int
	PostgresURL       string
	LogLevel          string
	DetailsCacheTTL   time.Duration
}

// LoadServer reads an optional .env file and then the process environment.
// A missing model key is fatal.
func LoadServer() (Server, error) {
	_ = godotenv.Load()

	cfg := Server{
		Port:              getEnv("PORT", "8080"),
		APIKey:            os.Getenv("API_KEY"),
		Provider:          strings.ToLower(getEnv("MODEL_PROVIDER", ProviderGemini)),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		PlacesPerCategory: getEnvInt("PLACES_PER_CATEGORY", 5),
		PostgresURL:       os.Getenv("POSTGRES_URL"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DetailsCacheTTL:   getEnvDuration("DETAILS_CACHE_TTL", 10*time.Minute),
	}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			return Server{}, ErrMissingAPIKey
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			cfg.OpenAIAPIKey = cfg.APIKey
		}
		if cfg.OpenAIAPIKey == "" {
			return Server{}, fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider: %w", ErrMissingAPIKey)
		}
	default:
		return Server{}, fmt.Errorf("unsupported model provider: %s. Use 'gemini' or 'openai'", cfg.Provider)
	}

	if cfg.PlacesPerCategory < 1 {
		cfg.PlacesPerCategory = 5
	}
	return cfg, nil
}

// Client holds the terminal client's settings.
type Client struct {
	Endpoint     string        `yaml:"endpoint"`
	MapSwapDelay time.Duration `yaml:"map_swap_delay"`
	RevealDelay  time.Duration `yaml:"reveal_delay"`
	LogFile      string        `yaml:"log_file"`
}

// DefaultClient returns a Client populated with the stock choreography timings.
func DefaultClient() Client {
	return Client{
		Endpoint:     getEnv("NEARBY_ENDPOINT", "http://localhost:8080/api/gemini"),
		MapSwapDelay: 100 * time.Millisecond,
		RevealDelay:  1600 * time.Millisecond,
	}
}

// LoadClient overlays the YAML file at path on DefaultClient. An empty path
// returns the defaults.
func LoadClient(path string) (Client, error) {
	cfg := DefaultClient()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Client{}, fmt.Errorf("read client config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Client{}, fmt.Errorf("parse client config %s: %w", path, err)
	}
	if cfg.MapSwapDelay < 0 || cfg.RevealDelay < 0 {
		return Client{}, fmt.Errorf("parse client config %s: delays must not be negative", path)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
