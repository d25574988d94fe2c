package curation

import (
	"fmt"
	"strings"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

// Prompt-side truncation limits. These protect request size, not the
// output budgets in normalize.go.
const (
	maxPromptTopicsPerSection = 12
	maxPromptLabelChars       = 90
	maxPromptSignals          = 10
	maxPromptSeedChars        = 240
	maxPromptOutlineEntries   = 8
)

const houseStyleRules = `### House style

- Headlines are declarative statements. Never write a headline as a question.
- Never mention that the content is speculative, generated, or produced by an automated system. Write it straight, as a newsroom would.
- Copy is calm and specific: names, numbers, places. No hype words, no exclamation marks.
- Datelines and events must be consistent with the edition date you are given.`

const dayBriefSystemPrompt = `You are the standards editor of a daily newspaper that publishes plausible future editions. Each morning you write an internal day brief: the shared context every section editor works from.

You will receive today's date, the candidate topics grouped by section and horizon, and the day's economic and market readings.

` + houseStyleRules + `

Output JSON only, no other text:
{
  "summary": "one tight paragraph on what today's signals suggest about the years ahead",
  "themes": ["up to five cross-section themes, each a short phrase"],
  "market_mood": "two or three words, e.g. cautious drift"
}`

const editionSystemPrompt = `You are the front-page editor of a daily newspaper that publishes plausible future editions. Given a base date, a forward-year offset and candidate topics per section, you lay out one full edition dated at the target year.

### Layout rules

- Use only the provided topic slugs. Never invent a slug.
- Every section gets exactly 5 slots, rank 1 through 5. Rank 1 carries the section.
- A topic slug appears at most once in the whole edition, across all sections.
- Exactly one hero for the edition: the rank-1 story of the U.S. section.
- Each slot carries an angle, one of: impact, markets, policy, tech, society.
- rank-1 slots need lede_seed and nut_seed (a first sentence direction and a why-it-matters direction) and a 5-8 entry outline; other ranks need a 2-4 entry outline.
- future_event names the concrete event the story reports, placed at the edition date.

` + houseStyleRules + `

Output JSON only, no other text:
{
  "hero": { "section": "U.S.", "topic_slug": "...", "angle": "impact", "title": "...", "dek": "...", "future_event": "...", "lede_seed": "...", "nut_seed": "...", "outline": ["..."] },
  "sections": {
    "U.S.": [ { "rank": 1, "topic_slug": "...", "angle": "...", "title": "...", "dek": "...", "future_event": "...", "lede_seed": "...", "nut_seed": "...", "outline": ["..."] } ]
  }
}`

const storyPlanSystemPrompt = `You are the night editor of a daily newspaper that publishes plausible future editions. You will receive the stories already slotted for one edition. Rework each one: sharpen the headline and dek, and decide which stories deserve a full drafted article.

### Selection rules

- Use only the story_id values you are given. Never invent one.
- Flag exactly one story as hero: true. The hero is always key: true.
- Flag the requested number of stories as key: true; only key stories get a draft_article.
- spark_directions are 2-4 short directions a writer could take the story.

` + houseStyleRules + `

Output JSON only, no other text:
{
  "stories": [
    {
      "story_id": "...",
      "curated_title": "...",
      "curated_dek": "...",
      "topic_title": "...",
      "spark_directions": ["..."],
      "key": true,
      "hero": false,
      "future_event_seed": "...",
      "draft_article": { "title": "...", "dek": "...", "body": "..." }
    }
  ]
}`

const articleSystemPrompt = `You are a staff writer for a daily newspaper that publishes plausible future editions. Write the full article for the assigned story, dated at the edition date you are given.

### Writing rules

- Open with the lede direction, then a nut graf built on the why-it-matters direction.
- Follow the outline beats in order; one or two paragraphs per beat.
- 600 to 900 words. Plain newspaper prose, short paragraphs.
- Attribute claims to plausible institutions and named-role sources, never to real private individuals.

` + houseStyleRules + `

Output JSON only, no other text:
{
  "title": "...",
  "dek": "...",
  "body": "full article text with paragraphs separated by blank lines"
}`

func truncateChars(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func formatTopicPools(pools map[string][]model.Topic) string {
	var sb strings.Builder
	for _, section := range model.SectionOrder() {
		topics := pools[section]
		if len(topics) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s\n", section))
		for i, t := range topics {
			if i == maxPromptTopicsPerSection {
				break
			}
			sb.WriteString(fmt.Sprintf("- slug: %s | horizon: %s | %s\n", t.Slug, t.Horizon, truncateChars(t.Label, maxPromptLabelChars)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatSignals(name string, signals []model.Signal) string {
	if len(signals) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n", name))
	for i, s := range signals {
		if i == maxPromptSignals {
			break
		}
		sb.WriteString(fmt.Sprintf("- %s: %.2f", truncateChars(s.Label, maxPromptLabelChars), s.Value))
		if s.Prob > 0 {
			sb.WriteString(fmt.Sprintf(" (p=%.2f)", s.Prob))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

func buildDayBriefPrompt(day string, pools map[string][]model.Topic, econ, market []model.Signal) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Date: %s\n\n", day))
	sb.WriteString(formatSignals("Economic readings", econ))
	sb.WriteString(formatSignals("Market readings", market))
	sb.WriteString("# Candidate topics\n\n")
	sb.WriteString(formatTopicPools(pools))
	return sb.String()
}

func buildEditionPrompt(day string, yearsForward int, editionDate string, brief *model.DayBrief, pools map[string][]model.Topic) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Base date: %s\n", day))
	sb.WriteString(fmt.Sprintf("Forward offset: %d years\n", yearsForward))
	sb.WriteString(fmt.Sprintf("Edition date: %s\n\n", editionDate))
	if brief != nil {
		sb.WriteString("# Day brief\n\n")
		sb.WriteString(brief.Summary + "\n")
		if len(brief.Themes) > 0 {
			sb.WriteString("Themes: " + strings.Join(brief.Themes, "; ") + "\n")
		}
		if brief.MarketMood != "" {
			sb.WriteString("Market mood: " + brief.MarketMood + "\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("# Candidate topics by section\n\n")
	sb.WriteString(formatTopicPools(pools))
	return sb.String()
}

func buildStoryPlanPrompt(candidates []model.StoryCandidate, day string, yearsForward, keyCount int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Base date: %s\n", day))
	sb.WriteString(fmt.Sprintf("Forward offset: %d years\n", yearsForward))
	sb.WriteString(fmt.Sprintf("Stories to mark key: %d\n\n", keyCount))
	sb.WriteString("# Slotted stories\n\n")
	for _, c := range candidates {
		sb.WriteString(fmt.Sprintf("[%s]\n", c.StoryID))
		sb.WriteString(fmt.Sprintf("    Section: %s (rank %d)\n", c.Section, c.Rank))
		sb.WriteString(fmt.Sprintf("    Title: %s\n", c.Title))
		if c.Dek != "" {
			sb.WriteString(fmt.Sprintf("    Dek: %s\n", truncateChars(c.Dek, maxPromptSeedChars)))
		}
		if c.FutureEvent != "" {
			sb.WriteString(fmt.Sprintf("    Future event: %s\n", truncateChars(c.FutureEvent, maxPromptSeedChars)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func buildArticlePrompt(cand model.StoryCandidate, cur model.StoryCuration, editionDate string, market []model.Signal) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Edition date: %s\n", editionDate))
	sb.WriteString(fmt.Sprintf("Section: %s\n\n", cand.Section))
	sb.WriteString(fmt.Sprintf("Headline: %s\n", cur.CuratedTitle))
	sb.WriteString(fmt.Sprintf("Dek: %s\n", cur.CuratedDek))
	if cur.FutureEventSeed != "" {
		sb.WriteString(fmt.Sprintf("Reported event: %s\n", truncateChars(cur.FutureEventSeed, maxPromptSeedChars)))
	}
	if cand.LedeSeed != "" {
		sb.WriteString(fmt.Sprintf("Lede direction: %s\n", truncateChars(cand.LedeSeed, maxPromptSeedChars)))
	}
	if cand.NutSeed != "" {
		sb.WriteString(fmt.Sprintf("Why it matters: %s\n", truncateChars(cand.NutSeed, maxPromptSeedChars)))
	}
	if len(cand.Outline) > 0 {
		sb.WriteString("Outline:\n")
		for i, beat := range cand.Outline {
			if i == maxPromptOutlineEntries {
				break
			}
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, beat))
		}
	}
	if len(cur.SparkDirections) > 0 {
		sb.WriteString("Directions: " + strings.Join(cur.SparkDirections, "; ") + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(formatSignals("Market backdrop", market))
	return sb.String()
}
