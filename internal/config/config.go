// Package config loads environment-driven configuration for chatbox.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider identifies how bot replies are generated on the server.
type Provider string

const (
	ProviderStatic    Provider = "static"
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Config holds all configuration values.
type Config struct {
	// Client side
	ServerURL string

	// Server side
	Port            string
	UploadDir       string
	MaxUploadBytes  int64
	MaxFileAge      time.Duration
	CleanupInterval time.Duration

	// Reply generation
	Provider        Provider
	LLMModel        string
	OllamaHost      string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from the environment, with an optional .env file
// and an optional YAML file overlay pointed at by CHATBOX_CONFIG.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServerURL: getEnv("CHATBOX_SERVER_URL", "http://localhost:8080"),

		Port:            getEnv("CHATBOX_PORT", "8080"),
		UploadDir:       getEnv("CHATBOX_UPLOAD_DIR", "uploads"),
		MaxUploadBytes:  getEnvInt64("CHATBOX_MAX_UPLOAD_MB", 16) * 1024 * 1024,
		MaxFileAge:      getEnvDuration("CHATBOX_MAX_FILE_AGE", time.Hour),
		CleanupInterval: getEnvDuration("CHATBOX_CLEANUP_INTERVAL", 5*time.Minute),

		Provider:        Provider(getEnv("CHATBOX_PROVIDER", string(ProviderStatic))),
		LLMModel:        getEnv("CHATBOX_LLM_MODEL", "llama3"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		LogFile:  getEnv("CHATBOX_LOG_FILE", "/tmp/chatbox.log"),
		LogLevel: parseLogLevel(getEnv("CHATBOX_LOG_LEVEL", "INFO")),
	}

	if path := os.Getenv("CHATBOX_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, fmt.Errorf("apply config file %s: %w", path, err)
		}
	}

	return cfg, nil
}

// fileConfig mirrors the YAML overlay file. Only set fields override.
type fileConfig struct {
	ServerURL       string `yaml:"server_url"`
	Port            string `yaml:"port"`
	UploadDir       string `yaml:"upload_dir"`
	MaxUploadMB     int64  `yaml:"max_upload_mb"`
	MaxFileAge      string `yaml:"max_file_age"`
	CleanupInterval string `yaml:"cleanup_interval"`
	Provider        string `yaml:"provider"`
	LLMModel        string `yaml:"llm_model"`
	LogFile         string `yaml:"log_file"`
	LogLevel        string `yaml:"log_level"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if fc.ServerURL != "" {
		c.ServerURL = fc.ServerURL
	}
	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.UploadDir != "" {
		c.UploadDir = fc.UploadDir
	}
	if fc.MaxUploadMB > 0 {
		c.MaxUploadBytes = fc.MaxUploadMB * 1024 * 1024
	}
	if fc.MaxFileAge != "" {
		d, err := time.ParseDuration(fc.MaxFileAge)
		if err != nil {
			return fmt.Errorf("parse max_file_age: %w", err)
		}
		c.MaxFileAge = d
	}
	if fc.CleanupInterval != "" {
		d, err := time.ParseDuration(fc.CleanupInterval)
		if err != nil {
			return fmt.Errorf("parse cleanup_interval: %w", err)
		}
		c.CleanupInterval = d
	}
	if fc.Provider != "" {
		c.Provider = Provider(fc.Provider)
	}
	if fc.LLMModel != "" {
		c.LLMModel = fc.LLMModel
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		c.LogLevel = parseLogLevel(fc.LogLevel)
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
