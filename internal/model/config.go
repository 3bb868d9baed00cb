package model

import "time"

// Config holds the full engine configuration. It is built once at startup
// (flags > env > config file > defaults) and passed by reference; nothing
// mutates it at runtime.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Providers   ProvidersConfig   `yaml:"providers"`
	FactCheck   FactCheckConfig   `yaml:"fact_check"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls the URL content fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Dir         string        `yaml:"dir"`
	ProviderTTL time.Duration `yaml:"provider_ttl"` // provider-backed results
	MemoryTTL   time.Duration `yaml:"memory_ttl"`   // memory layer default
}

// ProvidersConfig controls external provider routing.
type ProvidersConfig struct {
	// Default provider to prefer when the caller does not request one.
	Default string `yaml:"default"`

	CallTimeout time.Duration `yaml:"call_timeout"` // per attempt
	MaxRetries  int           `yaml:"max_retries"`  // extra attempts after the first
	Backoff     time.Duration `yaml:"backoff"`      // exponential base
	RateLimit   float64       `yaml:"rate_limit"`   // requests/sec per provider

	OpenAI    OpenAIConfig    `yaml:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Ollama    OllamaConfig    `yaml:"ollama"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// FactCheckConfig controls claim extraction and related-article search.
type FactCheckConfig struct {
	MaxClaims     int      `yaml:"max_claims"`
	KnowledgePath string   `yaml:"knowledge_path"` // optional YAML knowledge table
	Feeds         []string `yaml:"feeds"`          // optional RSS feeds for related articles
	MaxArticles   int      `yaml:"max_articles"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Credengine/0.1 (+https://github.com/filterize/credengine)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:     true,
			Dir:         ".credengine/cache",
			ProviderTTL: 24 * time.Hour,
			MemoryTTL:   24 * time.Hour,
		},
		Providers: ProvidersConfig{
			CallTimeout: 3 * time.Second,
			MaxRetries:  2,
			Backoff:     600 * time.Millisecond,
			RateLimit:   2.0,
			OpenAI:      OpenAIConfig{Model: "gpt-4o-mini"},
			Anthropic:   AnthropicConfig{Model: "claude-3-5-haiku-20241022"},
			Ollama:      OllamaConfig{BaseURL: "http://localhost:11434", Model: "llama3.1"},
		},
		FactCheck: FactCheckConfig{
			MaxClaims:   5,
			MaxArticles: 6,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
