package common

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/ternarybob/lumen/internal/interfaces"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment"` // "development" or "production"
	Server      ServerConfig      `toml:"server"`
	Storage     StorageConfig     `toml:"storage"`
	Raster      RasterConfig      `toml:"raster"`
	OCR         OCRConfig         `toml:"ocr"`
	Terms       TermsConfig       `toml:"terms"`
	Dictionary  DictionaryConfig  `toml:"dictionary"`
	ObjectStore ObjectStoreConfig `toml:"objectstore"`
	Gemini      GeminiConfig      `toml:"gemini"`
	Claude      ClaudeConfig      `toml:"claude"`
	LLM         LLMConfig         `toml:"llm"`
	Logging     LoggingConfig     `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

// RasterConfig controls page rasterization for OCR
type RasterConfig struct {
	DPI     float64 `toml:"dpi" validate:"gte=144"` // Render resolution; 144 is 2x the 72dpi native page scale
	Quality int     `toml:"quality" validate:"gt=0,lte=100"`
	TempDir string  `toml:"temp_dir"` // Directory for per-page image artifacts (default: os.TempDir()/lumen-raster)
}

// OCRConfig contains the OCR service endpoint configuration
type OCRConfig struct {
	Endpoint    string `toml:"endpoint" validate:"required,url"`
	APIKey      string `toml:"api_key"`
	Timeout     string `toml:"timeout"`     // Per-call timeout as duration string
	RateLimit   string `toml:"rate_limit"`  // Minimum interval between OCR calls
	Concurrency int    `toml:"concurrency"` // Max pages recognized in parallel per document
}

// TermsConfig controls medical term candidate extraction
type TermsConfig struct {
	MinLength int `toml:"min_length"` // Keep noun tokens longer than this many characters
}

// DictionaryConfig contains the definition lookup service configuration
type DictionaryConfig struct {
	Endpoint    string `toml:"endpoint" validate:"required,url"`
	Timeout     string `toml:"timeout"`
	Concurrency int    `toml:"concurrency"` // Max terms resolved in parallel per batch
}

// ObjectStoreConfig contains the blob upload service configuration.
// Uploads are posted to Endpoint with the named unsigned Preset; the
// service responds with a stable retrieval URL.
type ObjectStoreConfig struct {
	Endpoint string `toml:"endpoint" validate:"required,url"`
	Preset   string `toml:"preset" validate:"required"`
	Timeout  string `toml:"timeout"`
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model for completions (default: "gemini-2.0-flash")
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.3)
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for completions (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 4096)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.3)
}

// LLMProvider represents the completion provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig selects the completion provider
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "gemini" or "claude" (default: "gemini")
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability;
// only user-facing settings should be exposed in lumen.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Raster: RasterConfig{
			DPI:     144, // 2x native page resolution for OCR fidelity
			Quality: 90,
		},
		OCR: OCRConfig{
			Endpoint:    "https://api.ocr.space/parse/image",
			Timeout:     "60s",
			RateLimit:   "500ms",
			Concurrency: 3,
		},
		Terms: TermsConfig{
			MinLength: 6,
		},
		Dictionary: DictionaryConfig{
			Endpoint:    "https://api.dictionaryapi.dev/api/v2/entries/en",
			Timeout:     "15s",
			Concurrency: 5,
		},
		ObjectStore: ObjectStoreConfig{
			Endpoint: "https://api.cloudinary.com/v1_1/lumen/auto/upload",
			Preset:   "lumen_documents",
			Timeout:  "120s",
		},
		Gemini: GeminiConfig{
			APIKey:      "", // User must provide API key (no fallback)
			Model:       "gemini-2.0-flash",
			Timeout:     "2m",
			Temperature: 0.3,
		},
		Claude: ClaudeConfig{
			APIKey:      "", // User must provide API key (ANTHROPIC_API_KEY or config)
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   4096,
			Timeout:     "2m",
			Temperature: 0.3,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files; later files override
// earlier files, environment variables override files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies LUMEN_-prefixed environment variable overrides
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("LUMEN_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("LUMEN_SERVER_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("LUMEN_STORAGE_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("LUMEN_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("LUMEN_OCR_ENDPOINT"); v != "" {
		config.OCR.Endpoint = v
	}
	if v := os.Getenv("LUMEN_OCR_API_KEY"); v != "" {
		config.OCR.APIKey = v
	}
	if v := os.Getenv("LUMEN_DICTIONARY_ENDPOINT"); v != "" {
		config.Dictionary.Endpoint = v
	}
	if v := os.Getenv("LUMEN_OBJECTSTORE_ENDPOINT"); v != "" {
		config.ObjectStore.Endpoint = v
	}
	if v := os.Getenv("LUMEN_OBJECTSTORE_PRESET"); v != "" {
		config.ObjectStore.Preset = v
	}
	if v := os.Getenv("LUMEN_GEMINI_API_KEY"); v != "" {
		config.Gemini.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		config.Claude.APIKey = v
	}
	if v := os.Getenv("LUMEN_LLM_PROVIDER"); v != "" {
		config.LLM.DefaultProvider = LLMProvider(v)
	}
}

// ApplyFlagOverrides applies command-line flag values (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ResolveAPIKey resolves an API key with KV-first resolution order:
// KV store -> environment -> config fallback. kvStorage may be nil.
func ResolveAPIKey(ctx context.Context, kvStorage interfaces.KeyValueStorage, name string, configFallback string) (string, error) {
	if kvStorage != nil {
		if value, err := kvStorage.Get(ctx, name); err == nil && value != "" {
			return value, nil
		}
	}

	envName := "LUMEN_" + toEnvName(name)
	if value := os.Getenv(envName); value != "" {
		return value, nil
	}

	if configFallback != "" {
		return configFallback, nil
	}

	return "", fmt.Errorf("API key %q not found in KV store, environment (%s), or config", name, envName)
}

// ParseDurationOr parses a duration string, falling back to def on empty or invalid input
func ParseDurationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func toEnvName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			out = append(out, ch-('a'-'A'))
		case ch == '-' || ch == '.' || ch == ' ':
			out = append(out, '_')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
