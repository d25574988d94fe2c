// Package config owns the persisted runtime configuration document and
// the assembly of a curation engine from it. The document carries
// credential material, so it is written with owner-only permissions.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/msanchezgrice/futurenews-sub001/internal/curation"
	"github.com/msanchezgrice/futurenews-sub001/pkg/genai"
)

// Config is the runtime configuration document. Every field is
// optional; env vars override whatever the file carries.
type Config struct {
	Mode           string `json:"mode,omitempty"`
	Model          string `json:"model,omitempty"`
	AnthropicKey   string `json:"anthropic_api_key,omitempty"`
	OpenAIKey      string `json:"openai_api_key,omitempty"`
	HTTPBaseURL    string `json:"http_base_url,omitempty"`
	HTTPAPIKey     string `json:"http_api_key,omitempty"`
	MaxTokens      int    `json:"max_tokens,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "futurenews", "config.json")
}

// Load reads the document at path, or at DefaultPath when path is "".
// A missing file is not an error; callers get a zero config and env
// vars take over from there.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the document to path (DefaultPath when ""), creating the
// parent directory. The file holds credentials, so it gets 0600.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

// ApplyEnv overlays environment variables onto the loaded document.
func (c *Config) ApplyEnv() {
	setIfPresent(&c.Mode, "FUTURENEWS_MODE")
	setIfPresent(&c.Model, "FUTURENEWS_MODEL")
	setIfPresent(&c.AnthropicKey, "ANTHROPIC_API_KEY")
	setIfPresent(&c.OpenAIKey, "OPENAI_API_KEY")
	setIfPresent(&c.HTTPBaseURL, "FUTURENEWS_HTTP_BASE_URL")
	setIfPresent(&c.HTTPAPIKey, "FUTURENEWS_HTTP_API_KEY")
	setIntIfPresent(&c.MaxTokens, "FUTURENEWS_MAX_TOKENS")
	setIntIfPresent(&c.TimeoutSeconds, "FUTURENEWS_TIMEOUT_SECONDS")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setIntIfPresent(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
		*dst = n
	}
}

// ResolveMode picks the engine mode: an explicit override wins, then
// the presence of any backend credential selects auto, then mock.
func (c *Config) ResolveMode() string {
	if c.Mode != "" {
		return c.Mode
	}
	if c.AnthropicKey != "" || c.OpenAIKey != "" || c.HTTPBaseURL != "" {
		return curation.ModeAuto
	}
	return curation.ModeMock
}

func (c *Config) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// provider builds the backend for a resolved mode. Auto walks the
// credential priority order; mock and off run without a backend.
func (c *Config) provider(mode string) (genai.Provider, string, error) {
	switch mode {
	case curation.ModeAnthropic:
		if c.AnthropicKey == "" {
			return nil, "", fmt.Errorf("mode %q: %w", mode, genai.ErrNoCredentials)
		}
		return genai.NewAnthropicProvider(c.AnthropicKey), "claude", nil
	case curation.ModeOpenAI:
		if c.OpenAIKey == "" {
			return nil, "", fmt.Errorf("mode %q: %w", mode, genai.ErrNoCredentials)
		}
		return genai.NewOpenAIProvider(c.OpenAIKey), "gpt", nil
	case curation.ModeHTTP:
		if c.HTTPBaseURL == "" {
			return nil, "", fmt.Errorf("mode %q: %w", mode, genai.ErrNoCredentials)
		}
		return genai.NewHTTPProvider(c.HTTPBaseURL, c.HTTPAPIKey), "gpt", nil
	case curation.ModeAuto:
		if c.AnthropicKey != "" {
			return genai.NewAnthropicProvider(c.AnthropicKey), "claude", nil
		}
		if c.OpenAIKey != "" {
			return genai.NewOpenAIProvider(c.OpenAIKey), "gpt", nil
		}
		if c.HTTPBaseURL != "" {
			return genai.NewHTTPProvider(c.HTTPBaseURL, c.HTTPAPIKey), "gpt", nil
		}
		return nil, "", fmt.Errorf("mode %q: %w", mode, genai.ErrNoCredentials)
	case curation.ModeMock, curation.ModeOff:
		return nil, "", nil
	}
	return nil, "", fmt.Errorf("unknown mode %q", mode)
}

// NewEngine assembles a curation engine from the document: resolved
// mode, backend client with clamped limits, injected topic source.
func (c *Config) NewEngine(topics curation.TopicSource, log *slog.Logger) (*curation.Engine, error) {
	mode := c.ResolveMode()
	prov, defaultModel, err := c.provider(mode)
	if err != nil {
		return nil, err
	}

	var gen curation.Generator
	if prov != nil {
		model := c.Model
		if model == "" {
			model = defaultModel
		}
		gen = genai.NewClient(prov, model, c.MaxTokens, c.timeout())
	}
	return curation.NewEngine(topics, gen, mode, log), nil
}
