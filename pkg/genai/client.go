package genai

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Request is one generation call: a system instruction, a user prompt,
// and a token budget. Providers translate it to their own wire shape.
type Request struct {
	System    string
	Prompt    string
	Model     string
	MaxTokens int
}

// Response is the provider-neutral envelope. Truncated is set when the
// backend stopped on the size budget, which arms the deeper rungs of
// the repair ladder.
type Response struct {
	Text      string
	Truncated bool
	ModelUsed string
}

// Provider is one generation backend behind the shared contract.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Call bounds. Configured values outside these are clamped, not
// rejected.
const (
	MinTimeout = 5 * time.Second
	MaxTimeout = 120 * time.Second

	MinMaxTokens = 256
	MaxMaxTokens = 8192
)

const (
	DefaultTimeout   = 60 * time.Second
	DefaultMaxTokens = 4096
)

// Client drives a single provider with clamped limits and the bounded
// model-alias retry. It retries only identifier rejections; auth, rate
// limit and generic network failures surface immediately.
type Client struct {
	provider  Provider
	model     string
	maxTokens int
	timeout   time.Duration
}

func NewClient(provider Provider, model string, maxTokens int, timeout time.Duration) *Client {
	return &Client{
		provider:  provider,
		model:     model,
		maxTokens: clampTokens(maxTokens),
		timeout:   clampTimeout(timeout),
	}
}

func (c *Client) Name() string { return c.provider.Name() }

// Generate runs one call against the provider, walking the model alias
// list when the backend rejects an identifier as unknown.
func (c *Client) Generate(ctx context.Context, system, prompt string) (*Response, error) {
	var lastErr error
	for _, model := range candidateModels(c.model) {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.provider.Generate(callCtx, Request{
			System:    system,
			Prompt:    prompt,
			Model:     model,
			MaxTokens: c.maxTokens,
		})
		cancel()
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, ErrModelNotFound) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%s: all model candidates rejected: %w", c.provider.Name(), lastErr)
}

func clampTokens(n int) int {
	if n <= 0 {
		return DefaultMaxTokens
	}
	if n < MinMaxTokens {
		return MinMaxTokens
	}
	if n > MaxMaxTokens {
		return MaxMaxTokens
	}
	return n
}

func clampTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	if d < MinTimeout {
		return MinTimeout
	}
	if d > MaxTimeout {
		return MaxTimeout
	}
	return d
}
