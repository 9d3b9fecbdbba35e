// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: openai-api-key, anthropic-api-key, tavily-api-key,
// supabase-url, supabase-service-key, postgres-dsn.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Key file names understood by the service.
const (
	OpenAIAPIKey       = "openai-api-key"
	AnthropicAPIKey    = "anthropic-api-key"
	TavilyAPIKey       = "tavily-api-key"
	SupabaseURL        = "supabase-url"
	SupabaseServiceKey = "supabase-service-key"
	PostgresDSN        = "postgres-dsn"
)

// envFallbacks maps each key file to the environment variables consulted when
// the file is absent, in priority order.
var envFallbacks = map[string][]string{
	OpenAIAPIKey:       {"OPENAI_API_KEY"},
	AnthropicAPIKey:    {"ANTHROPIC_API_KEY"},
	TavilyAPIKey:       {"TAVILY_API_KEY"},
	SupabaseURL:        {"SUPABASE_URL"},
	SupabaseServiceKey: {"SUPABASE_SERVICE_KEY", "SUPABASE_KEY"},
	PostgresDSN:        {"DATABASE_URL"},
}

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Secrets)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Lookup resolves a credential. An explicit value (from config or flags) wins,
// then the secret file, then the key's conventional environment variables.
func (s Secrets) Lookup(key, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v, ok := s[key]; ok {
		return v
	}
	for _, env := range envFallbacks[key] {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return ""
}

// Keys returns the loaded key names in sorted order. Values are never listed.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
