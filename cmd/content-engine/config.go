// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/llm"
	"github.com/pdiddy/content-engine/internal/search"
	"github.com/pdiddy/content-engine/internal/secrets"
	"github.com/pdiddy/content-engine/internal/store"
	"github.com/pdiddy/content-engine/pkg/types"
)

func setDefaults() {
	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("server.allow_origins", []string{})
	viper.SetDefault("server.request_timeout", 2*time.Minute)

	viper.SetDefault("search.provider", "tavily")
	viper.SetDefault("search.max_results", search.DefaultMaxResults)
	viper.SetDefault("search.search_depth", "basic")
	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("search.max_retries", 0)

	viper.SetDefault("generation.provider", string(types.ProviderOpenAI))
	viper.SetDefault("generation.model", "")
	viper.SetDefault("generation.timeout", 90*time.Second)
	viper.SetDefault("generation.max_retries", 0)
	viper.SetDefault("generation.max_tokens", 0)

	viper.SetDefault("store.provider", "")
	viper.SetDefault("store.path", store.DefaultSQLitePath)
	viper.SetDefault("store.auto_migrate", true)
	viper.SetDefault("store.timeout", 15*time.Second)
	viper.SetDefault("store.max_retries", 0)

	viper.SetDefault("log.mode", "dev")
}

// loadConfig assembles the service configuration from viper and resolves
// credentials through s.
func loadConfig(s secrets.Secrets) types.Config {
	userAgent := "content-engine/" + version

	cfg := types.Config{
		Server: types.ServerConfig{
			Addr:           viper.GetString("server.addr"),
			AllowOrigins:   viper.GetStringSlice("server.allow_origins"),
			RequestTimeout: viper.GetDuration("server.request_timeout"),
		},
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    viper.GetDuration("search.timeout"),
				UserAgent:  userAgent,
				MaxRetries: viper.GetInt("search.max_retries"),
			},
			Provider:    viper.GetString("search.provider"),
			APIKey:      s.Lookup(secrets.TavilyAPIKey, viper.GetString("search.api_key")),
			MaxResults:  viper.GetInt("search.max_results"),
			SearchDepth: viper.GetString("search.search_depth"),
		},
		Generation: types.AIConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    viper.GetDuration("generation.timeout"),
				UserAgent:  userAgent,
				MaxRetries: viper.GetInt("generation.max_retries"),
			},
			Provider:  types.AIProvider(viper.GetString("generation.provider")),
			Model:     viper.GetString("generation.model"),
			BaseURL:   viper.GetString("generation.base_url"),
			MaxTokens: viper.GetInt("generation.max_tokens"),
		},
		Store: types.StoreConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    viper.GetDuration("store.timeout"),
				UserAgent:  userAgent,
				MaxRetries: viper.GetInt("store.max_retries"),
			},
			Provider:    types.StoreProvider(viper.GetString("store.provider")),
			Path:        viper.GetString("store.path"),
			DSN:         s.Lookup(secrets.PostgresDSN, viper.GetString("store.dsn")),
			AutoMigrate: viper.GetBool("store.auto_migrate"),
			URL:         s.Lookup(secrets.SupabaseURL, viper.GetString("store.url")),
			APIKey:      s.Lookup(secrets.SupabaseServiceKey, viper.GetString("store.api_key")),
		},
		Log: types.LogConfig{
			Mode: viper.GetString("log.mode"),
		},
	}

	explicitKey := viper.GetString("generation.api_key")
	switch cfg.Generation.Provider {
	case types.ProviderAnthropic:
		cfg.Generation.APIKey = s.Lookup(secrets.AnthropicAPIKey, explicitKey)
		if cfg.Generation.Model == "" {
			cfg.Generation.Model = llm.DefaultAnthropicModel
		}
	case types.ProviderEcho:
	default:
		cfg.Generation.APIKey = s.Lookup(secrets.OpenAIAPIKey, explicitKey)
		if cfg.Generation.Model == "" {
			cfg.Generation.Model = llm.DefaultOpenAIModel
		}
	}

	// An unset store provider follows the credentials that are present.
	if cfg.Store.Provider == "" {
		switch {
		case cfg.Store.URL != "" && cfg.Store.APIKey != "":
			cfg.Store.Provider = types.StoreSupabase
		case cfg.Store.DSN != "":
			cfg.Store.Provider = types.StorePostgres
		default:
			cfg.Store.Provider = types.StoreNone
		}
	}

	return cfg
}
