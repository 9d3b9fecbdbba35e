package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that call remote APIs.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "content-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429. Zero disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SearchConfig holds settings for the research stage's search provider.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the search backend: "tavily" or "none".
	Provider string `json:"provider" yaml:"provider"`

	// APIKey authenticates against the search provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the number of results requested per topic (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// SearchDepth is passed to providers that support it ("basic" or "advanced").
	SearchDepth string `json:"search_depth,omitempty" yaml:"search_depth,omitempty"`
}

// AIProvider identifies the generation backend.
type AIProvider string

const (
	ProviderOpenAI    AIProvider = "openai"
	ProviderAnthropic AIProvider = "anthropic"
	ProviderEcho      AIProvider = "echo"
)

// AIConfig holds settings for the generation capability used by the draft
// and critique stages.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the backend: openai, anthropic, or echo.
	Provider AIProvider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint (OpenAI-compatible gateways).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxTokens caps the response length for providers that require it.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// StoreProvider identifies the persistence backend.
type StoreProvider string

const (
	StoreNone     StoreProvider = "none"
	StoreSQLite   StoreProvider = "sqlite"
	StorePostgres StoreProvider = "postgres"
	StoreSupabase StoreProvider = "supabase"
)

// StoreConfig holds settings for persisting generations.
type StoreConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the backend: none, sqlite, postgres, or supabase.
	Provider StoreProvider `json:"provider" yaml:"provider"`

	// Path is the SQLite database file.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// DSN is the Postgres connection string.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`

	// AutoMigrate creates the generations table on startup (postgres only).
	AutoMigrate bool `json:"auto_migrate" yaml:"auto_migrate"`

	// URL is the Supabase project URL.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// APIKey is the Supabase service role key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ServerConfig holds settings for the HTTP boundary.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// AllowOrigins lists CORS origins; empty allows every origin.
	AllowOrigins []string `json:"allow_origins,omitempty" yaml:"allow_origins,omitempty"`

	// RequestTimeout bounds one /generate call end to end.
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Mode is "dev" (console, debug) or "prod" (JSON, info).
	Mode string `json:"mode" yaml:"mode"`
}

// Config groups every setting of the service.
type Config struct {
	Server     ServerConfig `json:"server" yaml:"server"`
	Search     SearchConfig `json:"search" yaml:"search"`
	Generation AIConfig     `json:"generation" yaml:"generation"`
	Store      StoreConfig  `json:"store" yaml:"store"`
	Log        LogConfig    `json:"log" yaml:"log"`
}
