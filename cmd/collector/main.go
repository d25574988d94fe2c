package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/msanchezgrice/futurenews-sub001/db"
	"github.com/msanchezgrice/futurenews-sub001/internal/model"
	"github.com/msanchezgrice/futurenews-sub001/internal/repository"
	"github.com/msanchezgrice/futurenews-sub001/pkg/signals"
	"github.com/msanchezgrice/futurenews-sub001/pkg/topics"
)

const topicsPerSection = 12

var defaultSources = []topics.Source{
	{Name: "Reuters World", URL: "https://feeds.reuters.com/Reuters/worldNews"},
	{Name: "AP Top News", URL: "https://feeds.apnews.com/rss/apf-topnews"},
	{Name: "BBC News", URL: "https://feeds.bbci.co.uk/news/rss.xml"},
	{Name: "NPR", URL: "https://feeds.npr.org/1001/rss.xml"},
}

// Quote symbols and FRED series collected as edition context.
var marketSymbols = []string{"SPY", "QQQ", "TLT", "GLD"}

var econSeries = map[string]string{
	"CPIAUCSL": "CPI",
	"UNRATE":   "Unemployment",
	"DFF":      "Fed Funds Rate",
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	topicRepo := repository.NewTopicRepository(db.DB)

	ctx := context.Background()
	now := time.Now().UTC()
	day := now.Format(model.DayFormat)

	collectTopics(ctx, topicRepo, day, now)
	collectMarketSignals(ctx, topicRepo, day)
	collectEconSignals(ctx, topicRepo, day)
}

func collectTopics(ctx context.Context, repo *repository.TopicRepository, day string, now time.Time) {
	sources := feedSources()

	result := topics.FetchAll(ctx, sources)
	for _, err := range result.Errors {
		slog.Error("error fetching feed", "error", err)
	}
	if len(result.Items) == 0 {
		slog.Error("no feed items collected", "sources", len(sources))
		return
	}

	bySection := make(map[string][]model.Topic)
	seen := make(map[string]bool)
	for _, item := range result.Items {
		c := topics.BuildCandidate(item, now)
		if seen[c.Section+"|"+c.Slug] {
			continue
		}
		seen[c.Section+"|"+c.Slug] = true
		bySection[c.Section] = append(bySection[c.Section], model.Topic{
			Slug:    c.Slug,
			Theme:   c.Theme,
			Label:   c.Label,
			Horizon: c.Horizon,
			Score:   c.Score,
		})
	}

	var total int
	for section := range bySection {
		sort.SliceStable(bySection[section], func(i, j int) bool {
			return bySection[section][i].Score > bySection[section][j].Score
		})
		if len(bySection[section]) > topicsPerSection {
			bySection[section] = bySection[section][:topicsPerSection]
		}
		total += len(bySection[section])
	}

	if err := repo.SaveTopics(ctx, day, bySection); err != nil {
		slog.Error("error saving topics", "day", day, "error", err)
		return
	}

	slog.Info("topic collection complete", "day", day, "items", len(result.Items), "topics", total, "sections", len(bySection))
}

func collectMarketSignals(ctx context.Context, repo *repository.TopicRepository, day string) {
	key := os.Getenv("FINNHUB_API_KEY")
	if key == "" {
		slog.Info("FINNHUB_API_KEY not set, skipping market signals")
		return
	}

	quotes, err := signals.NewFinnHubClient(key).Quotes(ctx, marketSymbols)
	if err != nil {
		slog.Error("error fetching market quotes", "error", err)
		return
	}

	out := make([]model.Signal, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, model.Signal{Label: q.Symbol, Value: q.PercentChange})
	}

	if err := repo.SaveSignals(ctx, day, model.SignalMarket, out); err != nil {
		slog.Error("error saving market signals", "day", day, "error", err)
		return
	}
	slog.Info("market signals saved", "day", day, "count", len(out))
}

func collectEconSignals(ctx context.Context, repo *repository.TopicRepository, day string) {
	key := os.Getenv("FRED_API_KEY")
	if key == "" {
		slog.Info("FRED_API_KEY not set, skipping econ signals")
		return
	}

	client := signals.NewFREDClient(key)
	var out []model.Signal
	for seriesID, label := range econSeries {
		point, err := client.Latest(ctx, seriesID)
		if err != nil {
			slog.Error("error fetching econ series", "series", seriesID, "error", err)
			continue
		}
		out = append(out, model.Signal{Label: label, Value: point.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })

	if len(out) == 0 {
		return
	}
	if err := repo.SaveSignals(ctx, day, model.SignalEcon, out); err != nil {
		slog.Error("error saving econ signals", "day", day, "error", err)
		return
	}
	slog.Info("econ signals saved", "day", day, "count", len(out))
}

// feedSources reads FUTURENEWS_FEEDS ("Name=url,Name=url") or falls
// back to the default wire set.
func feedSources() []topics.Source {
	raw := os.Getenv("FUTURENEWS_FEEDS")
	if raw == "" {
		return defaultSources
	}

	var sources []topics.Source
	for _, entry := range strings.Split(raw, ",") {
		name, url, found := strings.Cut(strings.TrimSpace(entry), "=")
		if !found || name == "" || url == "" {
			slog.Warn("skipping malformed feed entry", "entry", entry)
			continue
		}
		sources = append(sources, topics.Source{Name: name, URL: url})
	}
	if len(sources) == 0 {
		return defaultSources
	}
	return sources
}
