package genai

import (
	"errors"
	"testing"
)

type editionFixture struct {
	Sections map[string][]struct {
		TopicSlug string `json:"topic_slug"`
		Title     string `json:"title"`
		Dek       string `json:"dek"`
	} `json:"sections"`
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		truncated bool
		wantSlug  string
	}{
		{
			name:     "plain JSON",
			raw:      `{"sections":{"U.S.":[{"topic_slug":"rates-path","title":"Rates Path Steepens"}]}}`,
			wantSlug: "rates-path",
		},
		{
			name:     "json fenced block",
			raw:      "```json\n{\"sections\":{\"U.S.\":[{\"topic_slug\":\"rates-path\",\"title\":\"Rates Path Steepens\"}]}}\n```",
			wantSlug: "rates-path",
		},
		{
			name:     "plain fenced block",
			raw:      "```\n{\"sections\":{\"U.S.\":[{\"topic_slug\":\"rates-path\",\"title\":\"Rates\"}]}}\n```",
			wantSlug: "rates-path",
		},
		{
			name:     "JSON surrounded by prose",
			raw:      "Here is the plan you asked for:\n{\"sections\":{\"U.S.\":[{\"topic_slug\":\"rates-path\",\"title\":\"Rates\"}]}}\nLet me know if you need anything else.",
			wantSlug: "rates-path",
		},
		{
			name:      "truncated mid string in last section entry",
			raw:       `{"sections":{"Opinion":[{"topic_slug":"fusion-pilot","title":"The Case for Patience","dek":"An argument cut sho`,
			truncated: true,
			wantSlug:  "fusion-pilot",
		},
		{
			name:      "truncated after a comma",
			raw:       `{"sections":{"Opinion":[{"topic_slug":"fusion-pilot","title":"The Case for Patience"},`,
			truncated: true,
			wantSlug:  "fusion-pilot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out editionFixture
			if err := ExtractJSON(tt.raw, tt.truncated, &out); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			found := false
			for _, slots := range out.Sections {
				for _, s := range slots {
					if s.TopicSlug == tt.wantSlug {
						found = true
					}
				}
			}
			if !found {
				t.Errorf("slug %q not recovered", tt.wantSlug)
			}
		})
	}
}

func TestExtractJSONTruncationNotArmedWithoutFlag(t *testing.T) {
	raw := `{"sections":{"Opinion":[{"topic_slug":"fusion-pilot","dek":"An argument cut sho`
	var out editionFixture
	err := ExtractJSON(raw, false, &out)
	if err == nil {
		t.Fatal("expected a parse failure for an unmarked truncation")
	}
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error is %v, want ErrMalformedResponse", err)
	}
}

func TestExtractJSONGarbage(t *testing.T) {
	var out map[string]interface{}
	err := ExtractJSON("I cannot produce that plan today.", false, &out)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error is %v, want ErrMalformedResponse", err)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain unchanged", input: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "whitespace trimmed", input: "  {\"a\":1}  ", want: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
