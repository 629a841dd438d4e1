package common

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	OCR    OCRConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `env:"HTTP_ADDR"        envDefault:":8000"`
	MaxUploadBytes  int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LLMConfig holds language-model configuration. APIKey may be empty: the
// process still starts, but every model call fails fast with a configuration
// error until a credential is provided.
type LLMConfig struct {
	Provider       string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	Model          string        `env:"LLM_MODEL"`
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY"`
	BaseURL        string        `env:"LLM_BASE_URL"`
	Timeout        time.Duration `env:"LLM_TIMEOUT"          envDefault:"45s"`
	MaxAttempts    int           `env:"LLM_MAX_ATTEMPTS"     envDefault:"3"`
	RetryBaseDelay time.Duration `env:"LLM_RETRY_BASE_DELAY" envDefault:"2s"`
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract   string   `env:"TESSERACT_BIN"   envDefault:"tesseract"`
	Languages   []string `env:"OCR_LANGUAGES"   envDefault:"eng"`
	TessdataDir string   `env:"TESSDATA_PREFIX"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded configuration for values that would make the
// service unusable. A missing API key is deliberately not an error here.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.LLM.MaxAttempts < 1 {
		return fmt.Errorf("LLM_MAX_ATTEMPTS must be at least 1")
	}
	if len(c.OCR.Languages) == 0 {
		return fmt.Errorf("OCR_LANGUAGES must name at least one language")
	}
	return nil
}
