package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Templates   TemplatesConfig `toml:"templates"`
	Renderer    RendererConfig  `toml:"renderer"`
	Retention   RetentionConfig `toml:"retention"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Claude      ClaudeConfig    `toml:"claude"`
	LLM         LLMConfig       `toml:"llm"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05.000")
}

// TemplatesConfig contains configuration for CIM template discovery
type TemplatesConfig struct {
	Dir string `toml:"dir"` // Directory of user-provided template overrides (TOML), checked before embedded templates
}

// RendererConfig contains configuration for document export
type RendererConfig struct {
	Engine      string        `toml:"engine"`       // Rendering engine: "chromium" (default) or "fpdf"
	ChartWait   time.Duration `toml:"chart_wait"`   // Maximum time to wait for chart draw before printing anyway
	PageTimeout time.Duration `toml:"page_timeout"` // Overall timeout for a single export
	ChromePath  string        `toml:"chrome_path"`  // Explicit Chrome/Chromium binary path (empty = auto-detect)
}

// RetentionConfig contains configuration for the draft retention sweeper
type RetentionConfig struct {
	Enabled  bool   `toml:"enabled"`  // Enable scheduled cleanup of stale drafts
	Schedule string `toml:"schedule"` // Cron schedule format
	MaxAge   string `toml:"max_age"`  // Drafts older than this are removed (duration string)
}

// GeminiConfig contains Google Gemini API configuration for narrative generation
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model for narrative generation (default: "gemini-3-flash-preview")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 8192)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	RateLimit   string  `toml:"rate_limit"`  // Rate limit duration string (default: "4s" for 15 RPM)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// ClaudeConfig contains Anthropic Claude API configuration for narrative generation
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for narrative generation (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 8192)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	RateLimit   string  `toml:"rate_limit"`  // Rate limit duration string (default: "1s")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
	// LLMProviderNone disables AI narrative generation entirely
	LLMProviderNone LLMProvider = "none"
)

// LLMConfig contains unified configuration for all AI providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "gemini", "claude" or "none" (default: "gemini")
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in memoria.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
		Templates: TemplatesConfig{
			Dir: "./templates",
		},
		Renderer: RendererConfig{
			Engine:      "chromium",
			ChartWait:   5 * time.Second,
			PageTimeout: 60 * time.Second,
		},
		Retention: RetentionConfig{
			Enabled:  false,         // Disabled by default - user must explicitly opt-in
			Schedule: "0 */6 * * *", // Every 6 hours (standard 5-field cron)
			MaxAge:   "720h",        // 30 days
		},
		Gemini: GeminiConfig{
			APIKey:      "", // User must provide API key (no fallback)
			Model:       "gemini-3-flash-preview",
			MaxTokens:   8192,
			Timeout:     "2m",
			RateLimit:   "4s", // 15 RPM for free tier
			Temperature: 0.7,
		},
		Claude: ClaudeConfig{
			APIKey:      "", // User must provide API key (ANTHROPIC_API_KEY or config)
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   8192,
			Timeout:     "2m",
			RateLimit:   "1s",
			Temperature: 0.7,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
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

// LoadFromFiles loads configuration from multiple files. Later files override
// earlier files; environment variables override all files.
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

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: MEMORIA_ENV, fallback: GO_ENV)
	if env := os.Getenv("MEMORIA_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("MEMORIA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("MEMORIA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("MEMORIA_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("MEMORIA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("MEMORIA_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("MEMORIA_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			trimmed := strings.TrimSpace(o)
			if trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Templates configuration
	if templatesDir := os.Getenv("MEMORIA_TEMPLATES_DIR"); templatesDir != "" {
		config.Templates.Dir = templatesDir
	}

	// Renderer configuration
	if engine := os.Getenv("MEMORIA_RENDERER_ENGINE"); engine != "" {
		config.Renderer.Engine = engine
	}
	if chartWait := os.Getenv("MEMORIA_RENDERER_CHART_WAIT"); chartWait != "" {
		if cw, err := time.ParseDuration(chartWait); err == nil {
			config.Renderer.ChartWait = cw
		}
	}
	if pageTimeout := os.Getenv("MEMORIA_RENDERER_PAGE_TIMEOUT"); pageTimeout != "" {
		if pt, err := time.ParseDuration(pageTimeout); err == nil {
			config.Renderer.PageTimeout = pt
		}
	}
	if chromePath := os.Getenv("MEMORIA_RENDERER_CHROME_PATH"); chromePath != "" {
		config.Renderer.ChromePath = chromePath
	}

	// Retention configuration
	if enabled := os.Getenv("MEMORIA_RETENTION_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.Retention.Enabled = e
		}
	}
	if schedule := os.Getenv("MEMORIA_RETENTION_SCHEDULE"); schedule != "" {
		config.Retention.Schedule = schedule
	}
	if maxAge := os.Getenv("MEMORIA_RETENTION_MAX_AGE"); maxAge != "" {
		config.Retention.MaxAge = maxAge
	}

	// Gemini configuration
	if apiKey := os.Getenv("MEMORIA_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	} else if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("MEMORIA_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if maxTokens := os.Getenv("MEMORIA_GEMINI_MAX_TOKENS"); maxTokens != "" {
		if mt, err := strconv.Atoi(maxTokens); err == nil {
			config.Gemini.MaxTokens = mt
		}
	}
	if timeout := os.Getenv("MEMORIA_GEMINI_TIMEOUT"); timeout != "" {
		config.Gemini.Timeout = timeout
	}
	if rateLimit := os.Getenv("MEMORIA_GEMINI_RATE_LIMIT"); rateLimit != "" {
		config.Gemini.RateLimit = rateLimit
	}
	if temperature := os.Getenv("MEMORIA_GEMINI_TEMPERATURE"); temperature != "" {
		if t, err := strconv.ParseFloat(temperature, 32); err == nil {
			config.Gemini.Temperature = float32(t)
		}
	}

	// Claude configuration
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if apiKey := os.Getenv("MEMORIA_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey // MEMORIA_ prefix takes priority
	}
	if model := os.Getenv("MEMORIA_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if maxTokens := os.Getenv("MEMORIA_CLAUDE_MAX_TOKENS"); maxTokens != "" {
		if mt, err := strconv.Atoi(maxTokens); err == nil {
			config.Claude.MaxTokens = mt
		}
	}
	if timeout := os.Getenv("MEMORIA_CLAUDE_TIMEOUT"); timeout != "" {
		config.Claude.Timeout = timeout
	}
	if rateLimit := os.Getenv("MEMORIA_CLAUDE_RATE_LIMIT"); rateLimit != "" {
		config.Claude.RateLimit = rateLimit
	}
	if temperature := os.Getenv("MEMORIA_CLAUDE_TEMPERATURE"); temperature != "" {
		if t, err := strconv.ParseFloat(temperature, 32); err == nil {
			config.Claude.Temperature = float32(t)
		}
	}

	// LLM provider configuration
	if provider := os.Getenv("MEMORIA_LLM_DEFAULT_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ValidateRetentionSchedule validates a cron schedule expression and ensures
// minimum 5-minute interval between runs.
func ValidateRetentionSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	parts := strings.Fields(schedule)
	if len(parts) < 5 {
		return fmt.Errorf("invalid cron format: expected 5 fields")
	}

	minuteField := parts[0]

	if minuteField == "*" {
		return fmt.Errorf("schedule must have minimum 5-minute interval (every minute is not allowed)")
	}

	if strings.HasPrefix(minuteField, "*/") {
		intervalStr := strings.TrimPrefix(minuteField, "*/")
		interval, err := strconv.Atoi(intervalStr)
		if err == nil && interval < 5 {
			return fmt.Errorf("schedule interval must be at least 5 minutes, got %d", interval)
		}
	}

	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
