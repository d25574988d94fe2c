package genai

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

type fakeProvider struct {
	calls     []Request
	deadlines []time.Duration
	fail      map[string]error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	f.calls = append(f.calls, req)
	if dl, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, time.Until(dl))
	}
	if err, ok := f.fail[req.Model]; ok {
		return nil, err
	}
	return &Response{Text: "{}", ModelUsed: req.Model}, nil
}

func TestCandidateModels(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  []string
	}{
		{
			name:  "alias expands to concrete list",
			model: "claude",
			want:  []string{"claude-sonnet-4-5", "claude-haiku-4-5", "claude-3-5-haiku-latest"},
		},
		{
			name:  "concrete id keeps itself first with family fallbacks",
			model: "claude-sonnet-4-5",
			want:  []string{"claude-sonnet-4-5", "claude-3-7-sonnet-latest"},
		},
		{
			name:  "unknown id tried alone",
			model: "llama-3-70b",
			want:  []string{"llama-3-70b"},
		},
		{
			name:  "alias is case insensitive",
			model: " GPT ",
			want:  []string{"gpt-4o-mini", "gpt-4.1-mini"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := candidateModels(tt.model)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClientClampsLimits(t *testing.T) {
	tests := []struct {
		name       string
		maxTokens  int
		timeout    time.Duration
		wantTokens int
	}{
		{name: "too small raised", maxTokens: 50, timeout: time.Second, wantTokens: MinMaxTokens},
		{name: "too large lowered", maxTokens: 100000, timeout: time.Hour, wantTokens: MaxMaxTokens},
		{name: "zero takes defaults", maxTokens: 0, timeout: 0, wantTokens: DefaultMaxTokens},
		{name: "in range kept", maxTokens: 2048, timeout: 30 * time.Second, wantTokens: 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProvider{}
			client := NewClient(fake, "any-model", tt.maxTokens, tt.timeout)
			if _, err := client.Generate(context.Background(), "sys", "prompt"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fake.calls[0].MaxTokens != tt.wantTokens {
				t.Errorf("max tokens = %d, want %d", fake.calls[0].MaxTokens, tt.wantTokens)
			}
			if len(fake.deadlines) == 0 {
				t.Fatal("no deadline set on the call context")
			}
			dl := fake.deadlines[0]
			if dl > MaxTimeout || dl < time.Second {
				t.Errorf("deadline %v outside clamp range", dl)
			}
		})
	}
}

func TestClientAliasRetry(t *testing.T) {
	fake := &fakeProvider{fail: map[string]error{
		"claude-sonnet-4-5": fmt.Errorf("%w: claude-sonnet-4-5", ErrModelNotFound),
	}}
	client := NewClient(fake, "claude", 1024, 10*time.Second)

	resp, err := client.Generate(context.Background(), "sys", "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ModelUsed != "claude-haiku-4-5" {
		t.Errorf("model used = %q, want the second candidate", resp.ModelUsed)
	}
	if len(fake.calls) != 2 {
		t.Errorf("made %d calls, want 2", len(fake.calls))
	}
}

func TestClientFatalErrorNotRetried(t *testing.T) {
	fake := &fakeProvider{fail: map[string]error{
		"claude-sonnet-4-5": &BackendError{Backend: "fake", Status: 401, Message: "invalid api key"},
	}}
	client := NewClient(fake, "claude", 1024, 10*time.Second)

	_, err := client.Generate(context.Background(), "sys", "prompt")
	if err == nil {
		t.Fatal("expected an error")
	}
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("error is %T, want *BackendError", err)
	}
	if len(fake.calls) != 1 {
		t.Errorf("made %d calls, want 1 (no retry on auth failure)", len(fake.calls))
	}
}

func TestClientAllCandidatesRejected(t *testing.T) {
	fake := &fakeProvider{fail: map[string]error{
		"claude-haiku-4-5":        fmt.Errorf("%w", ErrModelNotFound),
		"claude-3-5-haiku-latest": fmt.Errorf("%w", ErrModelNotFound),
	}}
	client := NewClient(fake, "claude-haiku", 1024, 10*time.Second)

	_, err := client.Generate(context.Background(), "sys", "prompt")
	if !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("error is %v, want ErrModelNotFound", err)
	}
	if len(fake.calls) != 2 {
		t.Errorf("made %d calls, want 2", len(fake.calls))
	}
}
