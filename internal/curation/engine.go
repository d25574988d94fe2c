package curation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
	"github.com/msanchezgrice/futurenews-sub001/pkg/genai"
)

// MaxYearsForward is the furthest edition offset generated per day.
const MaxYearsForward = 10

// Engine modes. Auto picks the first backend with credentials and
// degrades to the deterministic path on failure; a pinned backend mode
// never falls back; mock never calls a backend; off disables generation.
const (
	ModeAuto      = "auto"
	ModeAnthropic = "anthropic"
	ModeOpenAI    = "openai"
	ModeHTTP      = "http"
	ModeMock      = "mock"
	ModeOff       = "off"
)

// ErrDisabled is returned by generation operations when the engine is
// configured off.
var ErrDisabled = errors.New("curation disabled by configuration")

// TopicSource supplies a day's baseline records from the collection
// layer.
type TopicSource interface {
	GetTopicsBySection(ctx context.Context, day string) (map[string][]model.Topic, error)
	GetEconSignals(ctx context.Context, day string) ([]model.Signal, error)
	GetMarketSignals(ctx context.Context, day string) ([]model.Signal, error)
}

// Generator is the generation-client contract the engine drives. nil in
// mock and off modes.
type Generator interface {
	Name() string
	Generate(ctx context.Context, system, prompt string) (*genai.Response, error)
}

// Engine orchestrates allocation, generation and normalization for one
// deployment. Construct once and share; all methods are safe for
// concurrent use.
type Engine struct {
	topics TopicSource
	gen    Generator
	mode   string
	log    *slog.Logger
	now    func() time.Time
}

func NewEngine(topics TopicSource, gen Generator, mode string, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		topics: topics,
		gen:    gen,
		mode:   mode,
		log:    log,
		now:    time.Now,
	}
}

func (e *Engine) fallbackAllowed() bool { return e.mode == ModeAuto }

func (e *Engine) resolvedMode() string {
	if e.gen == nil {
		return "deterministic"
	}
	return e.gen.Name()
}

// BuildDeterministicEdition lays out one edition with no backend call.
// Identical topic input always yields an identical edition.
func (e *Engine) BuildDeterministicEdition(ctx context.Context, day string, yearsForward int) (*model.Edition, error) {
	date, err := model.EditionDate(day, yearsForward)
	if err != nil {
		return nil, err
	}
	pools, err := e.topics.GetTopicsBySection(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("loading topics for %s: %w", day, err)
	}
	return e.deterministicEdition(day, yearsForward, date.Year(), pools)
}

func (e *Engine) deterministicEdition(day string, yearsForward, editionYear int, pools map[string][]model.Topic) (*model.Edition, error) {
	ed, err := NormalizeEdition(fallbackEditionWire(day, yearsForward, editionYear, pools), day, yearsForward)
	if err != nil {
		return nil, err
	}
	applyHeroFallback(ed)
	return ed, nil
}

// GenerateDailyCuration produces the full daily cycle: one day brief and
// eleven editions, yearsForward 0 through 10. The brief completes before
// any edition call because every edition prompt embeds it.
func (e *Engine) GenerateDailyCuration(ctx context.Context, day string) (*model.DailyCuration, error) {
	if e.mode == ModeOff {
		return nil, ErrDisabled
	}
	if _, err := model.EditionDate(day, 0); err != nil {
		return nil, err
	}

	pools, err := e.topics.GetTopicsBySection(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("loading topics for %s: %w", day, err)
	}
	econ := e.loadSignals(ctx, day, e.topics.GetEconSignals)
	market := e.loadSignals(ctx, day, e.topics.GetMarketSignals)

	brief, err := e.dayBrief(ctx, day, pools, econ, market)
	if err != nil {
		return nil, err
	}

	out := &model.DailyCuration{
		Day:         day,
		GeneratedAt: e.now().UTC().Format(time.RFC3339),
		Mode:        e.resolvedMode(),
		Brief:       *brief,
	}
	for years := 0; years <= MaxYearsForward; years++ {
		ed, err := e.editionPlan(ctx, day, years, brief, pools)
		if err != nil {
			return nil, fmt.Errorf("edition y%d: %w", years, err)
		}
		out.Editions = append(out.Editions, *ed)
	}
	return out, nil
}

// loadSignals is best-effort: signals flavor prompts and payloads but
// their absence never blocks a cycle.
func (e *Engine) loadSignals(ctx context.Context, day string, fetch func(context.Context, string) ([]model.Signal, error)) []model.Signal {
	signals, err := fetch(ctx, day)
	if err != nil {
		e.log.Warn("signals unavailable", "day", day, "error", err)
		return nil
	}
	return signals
}

func (e *Engine) dayBrief(ctx context.Context, day string, pools map[string][]model.Topic, econ, market []model.Signal) (*model.DayBrief, error) {
	if e.gen == nil {
		return fallbackDayBrief(day, pools, econ, market), nil
	}

	var w briefWire
	resp, err := e.gen.Generate(ctx, dayBriefSystemPrompt, buildDayBriefPrompt(day, pools, econ, market))
	if err == nil {
		err = genai.ExtractJSON(resp.Text, resp.Truncated, &w)
	}

	var brief *model.DayBrief
	if err == nil {
		brief = normalizeBrief(w, day)
		if brief.Summary == "" {
			err = fmt.Errorf("day brief has no summary: %w", genai.ErrMalformedResponse)
		}
	}
	if err != nil {
		if !e.fallbackAllowed() {
			return nil, fmt.Errorf("day brief: %w", err)
		}
		e.log.Warn("day brief generation failed, using deterministic brief", "day", day, "error", err)
		return fallbackDayBrief(day, pools, econ, market), nil
	}

	if brief.MarketMood == "" {
		brief.MarketMood = marketMood(market)
	}
	return brief, nil
}

func (e *Engine) editionPlan(ctx context.Context, day string, yearsForward int, brief *model.DayBrief, pools map[string][]model.Topic) (*model.Edition, error) {
	date, err := model.EditionDate(day, yearsForward)
	if err != nil {
		return nil, err
	}
	if e.gen == nil {
		return e.deterministicEdition(day, yearsForward, date.Year(), pools)
	}

	var w editionWire
	resp, err := e.gen.Generate(ctx, editionSystemPrompt,
		buildEditionPrompt(day, yearsForward, date.Format(model.DayFormat), brief, pools))
	if err == nil {
		err = genai.ExtractJSON(resp.Text, resp.Truncated, &w)
	}

	var ed *model.Edition
	if err == nil {
		ed, err = NormalizeEdition(w, day, yearsForward)
	}
	if err == nil {
		if problems := ValidateEdition(ed, pools); len(problems) > 0 {
			err = fmt.Errorf("edition plan rejected: %s", strings.Join(problems, "; "))
		}
	}
	if err != nil {
		if !e.fallbackAllowed() {
			return nil, err
		}
		e.log.Warn("edition generation failed, using deterministic layout",
			"day", day, "years_forward", yearsForward, "error", err)
		return e.deterministicEdition(day, yearsForward, date.Year(), pools)
	}

	applyHeroFallback(ed)
	return ed, nil
}

// GenerateEditionCurationPlan reworks an edition's persisted candidates:
// headline and dek rewrites, hero and key selection, and full drafts for
// the keyCount key stories.
func (e *Engine) GenerateEditionCurationPlan(ctx context.Context, candidates []model.StoryCandidate, day string, yearsForward, keyCount int) (*model.CurationPlan, error) {
	if e.mode == ModeOff {
		return nil, ErrDisabled
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no story candidates for %s y%d", day, yearsForward)
	}
	date, err := model.EditionDate(day, yearsForward)
	if err != nil {
		return nil, err
	}

	plan := &model.CurationPlan{
		Day:          day,
		YearsForward: yearsForward,
		GeneratedAt:  e.now().UTC().Format(time.RFC3339),
		Mode:         e.resolvedMode(),
	}

	if e.gen == nil {
		plan.Stories = NormalizeCurationPlan(fallbackStoryPlanWire(candidates, keyCount, date.Year()), candidates)
		return plan, nil
	}

	var w storyPlanWire
	resp, err := e.gen.Generate(ctx, storyPlanSystemPrompt,
		buildStoryPlanPrompt(candidates, day, yearsForward, keyCount))
	if err == nil {
		err = genai.ExtractJSON(resp.Text, resp.Truncated, &w)
	}

	var stories []model.StoryCuration
	if err == nil {
		stories = NormalizeCurationPlan(w, candidates)
		if len(stories) == 0 {
			err = fmt.Errorf("plan kept no known candidates: %w", genai.ErrMalformedResponse)
		}
	}
	if err != nil {
		if !e.fallbackAllowed() {
			return nil, fmt.Errorf("story curation: %w", err)
		}
		e.log.Warn("story curation failed, using deterministic plan",
			"day", day, "years_forward", yearsForward, "error", err)
		stories = NormalizeCurationPlan(fallbackStoryPlanWire(candidates, keyCount, date.Year()), candidates)
	}

	plan.Stories = stories
	return plan, nil
}

// RenderArticle materializes the full article for one story, stamped
// with the curation fingerprint that seeded it. A draft carried by the
// curation is used as-is; otherwise the body is generated.
func (e *Engine) RenderArticle(ctx context.Context, cand model.StoryCandidate, cur model.StoryCuration, fingerprint string) (*model.RenderedArticle, error) {
	if e.mode == ModeOff {
		return nil, ErrDisabled
	}
	date, err := model.EditionDate(cand.Day, cand.YearsForward)
	if err != nil {
		return nil, err
	}
	market := e.loadSignals(ctx, cand.Day, e.topics.GetMarketSignals)

	title := cur.CuratedTitle
	if title == "" {
		title = cand.Title
	}
	dek := cur.CuratedDek
	if dek == "" {
		dek = cand.Dek
	}
	var body, modelUsed string

	switch {
	case cur.Draft != nil && cur.Draft.Body != "":
		if cur.Draft.Title != "" {
			title = cur.Draft.Title
		}
		if cur.Draft.Dek != "" {
			dek = cur.Draft.Dek
		}
		body = cur.Draft.Body
		modelUsed = "draft"

	case e.gen == nil:
		body = fallbackArticleBody(cand, cur.FutureEventSeed, date.Year())
		modelUsed = "deterministic"

	default:
		var w articleWire
		resp, err := e.gen.Generate(ctx, articleSystemPrompt,
			buildArticlePrompt(cand, cur, date.Format(model.DayFormat), market))
		if err == nil {
			err = genai.ExtractJSON(resp.Text, resp.Truncated, &w)
		}
		if err == nil && strings.TrimSpace(w.Body) == "" {
			err = fmt.Errorf("article has no body: %w", genai.ErrMalformedResponse)
		}
		if err != nil {
			if !e.fallbackAllowed() {
				return nil, fmt.Errorf("article render: %w", err)
			}
			e.log.Warn("article generation failed, using deterministic body",
				"story_id", cand.StoryID, "error", err)
			body = fallbackArticleBody(cand, cur.FutureEventSeed, date.Year())
			modelUsed = "deterministic"
			break
		}
		if w.Title != "" {
			title = clampText(w.Title, maxTitleLen)
		}
		if w.Dek != "" {
			dek = clampText(w.Dek, maxDekLen)
		}
		body = clampText(w.Body, maxBodyLen)
		modelUsed = resp.ModelUsed
	}

	return &model.RenderedArticle{
		StoryID:             cand.StoryID,
		Section:             cand.Section,
		Title:               title,
		Dek:                 dek,
		Body:                body,
		EditionDate:         date,
		Signals:             market,
		ModelUsed:           modelUsed,
		CurationGeneratedAt: fingerprint,
		RenderedAt:          e.now().UTC(),
	}, nil
}
