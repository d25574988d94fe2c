package curation

import (
	"fmt"
	"strings"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

// Deterministic copy templates. The fallback path never calls a backend,
// so every string here must read like wire copy on its own.

var angleTitles = map[string]string{
	model.AngleImpact:  "%s Starts to Reshape Daily Life",
	model.AngleMarkets: "Investors Reprice %s",
	model.AnglePolicy:  "Lawmakers Take Up %s",
	model.AngleTech:    "The Machinery Behind %s",
	model.AngleSociety: "Living With %s",
}

var angleLeadBeats = map[string]string{
	model.AngleImpact:  "What changed on the ground",
	model.AngleMarkets: "How the market read the news",
	model.AnglePolicy:  "Where the rulemaking stands",
	model.AngleTech:    "The technical turn that made it possible",
	model.AngleSociety: "Who feels it first",
}

var sharedBeats = []string{
	"The numbers that matter",
	"Who gains and who pays",
	"What could still derail it",
	"The next marker to watch",
}

func angleTitle(angle, label string) string {
	tpl, ok := angleTitles[angle]
	if !ok {
		tpl = angleTitles[model.AngleImpact]
	}
	return fmt.Sprintf(tpl, label)
}

func fallbackOutline(angle, label string, rank int) []string {
	beats := []string{angleLeadBeats[angle], fmt.Sprintf("How %s reached this point", label)}
	if rank == 1 {
		return append(beats, sharedBeats...)
	}
	return append(beats, sharedBeats[0])
}

func fallbackSlot(t model.Topic, rank int, editionYear int) slotWire {
	angle := angleAt(rank - 1)
	w := slotWire{
		Rank:        rank,
		TopicSlug:   t.Slug,
		Angle:       angle,
		Title:       angleTitle(angle, t.Label),
		Dek:         fmt.Sprintf("Where %s stands in %d, and why the year turns on it.", t.Label, editionYear),
		FutureEvent: fmt.Sprintf("%s reaches a decision point in %d", t.Label, editionYear),
		Outline:     fallbackOutline(angle, t.Label, rank),
	}
	if rank == 1 {
		w.LedeSeed = fmt.Sprintf("Open on the morning the %s story stopped being a forecast.", t.Label)
		w.NutSeed = fmt.Sprintf("The shift around %s now sets the terms for everything downstream of it.", t.Label)
	}
	return w
}

// fallbackEditionWire lays out one edition without a backend: allocator
// picks, template copy fills. Same wire shape as backend output, so the
// normalizer treats both identically.
func fallbackEditionWire(day string, yearsForward, editionYear int, pools map[string][]model.Topic) editionWire {
	alloc := allocateEdition(day, yearsForward, pools)
	sections := make(map[string][]slotWire, len(alloc))
	for _, section := range model.SectionOrder() {
		var slots []slotWire
		for i, t := range alloc[section] {
			sw := fallbackSlot(t, i+1, editionYear)
			sw.Section = section
			slots = append(slots, sw)
		}
		sections[section] = slots
	}
	return editionWire{Sections: sections}
}

// marketMood reduces the day's market signals to a two-word read.
func marketMood(signals []model.Signal) string {
	if len(signals) == 0 {
		return "quiet drift"
	}
	var sum float64
	for _, s := range signals {
		sum += s.Value
	}
	avg := sum / float64(len(signals))
	switch {
	case avg > 0.2:
		return "cautiously risk-on"
	case avg < -0.2:
		return "defensive crouch"
	default:
		return "mixed and watchful"
	}
}

func fallbackDayBrief(day string, pools map[string][]model.Topic, econ, market []model.Signal) *model.DayBrief {
	seen := make(map[string]bool)
	var themes []string
	for _, section := range model.SectionOrder() {
		for _, t := range pools[section] {
			if t.Theme == "" || seen[t.Theme] {
				continue
			}
			seen[t.Theme] = true
			themes = append(themes, t.Theme)
			break
		}
		if len(themes) == maxBriefThemes {
			break
		}
	}

	mood := marketMood(market)
	summary := fmt.Sprintf(
		"Baseline readings for %s point at %s conditions. The day's topic pool clusters around %s, with %d economic and %d market series informing the forward editions.",
		day, mood, themeList(themes), len(econ), len(market))

	return &model.DayBrief{
		Day:        day,
		Summary:    summary,
		Themes:     themes,
		MarketMood: mood,
	}
}

func themeList(themes []string) string {
	if len(themes) == 0 {
		return "no dominant theme"
	}
	return strings.Join(themes, ", ")
}

// fallbackStoryPlanWire curates candidates without a backend: the first
// candidate carries the edition, the first keyCount get drafts.
func fallbackStoryPlanWire(candidates []model.StoryCandidate, keyCount int, editionYear int) storyPlanWire {
	if keyCount < 1 {
		keyCount = 1
	}
	if keyCount > len(candidates) {
		keyCount = len(candidates)
	}

	var stories []storyCurationWire
	for i, c := range candidates {
		key := i < keyCount
		sw := storyCurationWire{
			StoryID:         c.StoryID,
			CuratedTitle:    c.Title,
			CuratedDek:      c.Dek,
			TopicTitle:      c.Title,
			Key:             key,
			Hero:            i == 0,
			FutureEventSeed: c.FutureEvent,
			SparkDirections: []string{
				fmt.Sprintf("Report it as a straight %s story", strings.ToLower(c.Section)),
				"Follow the money one step further than the announcement",
				"Close on the person the change reaches last",
			},
		}
		if key {
			sw.Draft = &draftWire{
				Title: c.Title,
				Dek:   c.Dek,
				Body:  fallbackArticleBody(c, c.FutureEvent, editionYear),
			}
		}
		stories = append(stories, sw)
	}
	return storyPlanWire{Stories: stories}
}

// fallbackArticleBody writes a full templated article from the slot
// seeds. Paragraphs separated by blank lines, outline beats in order.
func fallbackArticleBody(c model.StoryCandidate, event string, editionYear int) string {
	var paras []string

	lede := c.LedeSeed
	if lede == "" {
		lede = fmt.Sprintf("The %s desk has tracked this story since it was a line item in analyst notes.", strings.ToLower(c.Section))
	}
	if event != "" {
		paras = append(paras, fmt.Sprintf("%s %s, and the first consequences are already visible.", lede, strings.TrimRight(event, ".")))
	} else {
		paras = append(paras, lede)
	}

	nut := c.NutSeed
	if nut == "" {
		nut = fmt.Sprintf("What happens next determines how %d is remembered in this corner of the economy.", editionYear)
	}
	paras = append(paras, nut)

	for _, beat := range c.Outline {
		paras = append(paras, fmt.Sprintf(
			"%s. People close to the process describe a slower, more contested path than the headlines suggest, with each institution guarding its own timetable.",
			strings.TrimRight(beat, ".")))
	}

	paras = append(paras, fmt.Sprintf(
		"The next marker arrives within the year. By the close of %d the open questions above will have hardened into record, and this page will read either as early or as optimistic.",
		editionYear))

	return strings.Join(paras, "\n\n")
}
