package topics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchParsesFeed(t *testing.T) {
	published := time.Now().Add(-3 * time.Hour).Format(time.RFC1123Z)
	stale := time.Now().Add(-10 * 24 * time.Hour).Format(time.RFC1123Z)
	rss := fmt.Sprintf(`<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Wire</title>
    <item>
      <title>Senate Advances Budget Deal</title>
      <link>https://example.com/budget</link>
      <description>&lt;p&gt;Congress moves toward a  vote.&lt;/p&gt;</description>
      <pubDate>%s</pubDate>
    </item>
    <item>
      <title>Old News</title>
      <link>https://example.com/old</link>
      <description>A week-old item.</description>
      <pubDate>%s</pubDate>
    </item>
  </channel>
</rss>`, published, stale)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rss)
	}))
	defer srv.Close()

	items, err := NewRSSFetcher().Fetch(context.Background(), Source{Name: "TestWire", URL: srv.URL})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 (stale item dropped)", len(items))
	}

	item := items[0]
	if item.Title != "Senate Advances Budget Deal" {
		t.Errorf("got title %q", item.Title)
	}
	if item.Source != "TestWire" {
		t.Errorf("got source %q, want %q", item.Source, "TestWire")
	}
	if item.Summary != "Congress moves toward a vote." {
		t.Errorf("got summary %q", item.Summary)
	}
	if item.Published.IsZero() {
		t.Error("expected a parsed publish time")
	}
}

func TestFetchAllCollectsErrorsWithoutSinkingResults(t *testing.T) {
	rss := `<?xml version="1.0"?><rss version="2.0"><channel><title>W</title>
<item><title>Ceasefire Talks Resume</title><link>https://example.com/a</link><description>Diplomats return.</description></item>
</channel></rss>`

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rss)
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer bad.Close()

	result := FetchAll(context.Background(), []Source{
		{Name: "Good", URL: good.URL},
		{Name: "Bad", URL: bad.URL},
	})

	if len(result.Items) != 1 {
		t.Errorf("got %d items, want 1", len(result.Items))
	}
	if len(result.Errors) != 1 {
		t.Errorf("got %d errors, want 1", len(result.Errors))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"this is a long string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		got := truncate(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello</p>", "Hello"},
		{"<b>Bold</b> and <i>italic</i>", "Bold and italic"},
		{"No tags here", "No tags here"},
		{"<div>  Multiple   spaces  </div>", "Multiple spaces"},
		{"", ""},
	}
	for _, tt := range tests {
		got := stripHTML(tt.input)
		if got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
