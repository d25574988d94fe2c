package topics

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Section is a front-page section assignment.
type Section string

const (
	US         Section = "U.S."
	World      Section = "World"
	Business   Section = "Business"
	Technology Section = "Technology"
	AI         Section = "AI"
	Arts       Section = "Arts"
	Lifestyle  Section = "Lifestyle"
	Opinion    Section = "Opinion"
)

// Horizon buckets for how far out a topic is expected to mature.
const (
	HorizonNear = "near"
	HorizonMid  = "mid"
	HorizonLong = "long"
)

// AllSections returns the sections in canonical order.
func AllSections() []Section {
	return []Section{US, World, Business, Technology, AI, Arts, Lifestyle, Opinion}
}

var sectionKeywords = map[Section][]string{
	US: {
		"congress", "senate", "white house", "supreme court", "governor",
		"federal", "washington", "election", "campaign", "statehouse",
		"medicare", "immigration", "ballot", "midterm", "capitol",
	},
	World: {
		"united nations", "treaty", "minister", "embassy", "border",
		"beijing", "brussels", "moscow", "kyiv", "geneva", "summit",
		"sanctions", "ceasefire", "nato", "diplomat", "parliament",
	},
	Business: {
		"earnings", "stocks", "merger", "ipo", "inflation", "rates",
		"gdp", "tariff", "trade", "supply chain", "labor market",
		"central bank", "bond", "investor", "quarterly", "revenue",
	},
	Technology: {
		"chip", "semiconductor", "software", "startup", "quantum",
		"robotics", "cybersecurity", "internet", "hardware", "satellite",
		"battery", "cloud", "smartphone", "silicon", "data center",
	},
	AI: {
		"artificial intelligence", "machine learning", "llm", "neural",
		"model", "training", "inference", "agent", "alignment",
		"chatbot", "automation", "deepfake", "compute", "frontier lab",
	},
	Arts: {
		"museum", "film", "gallery", "novel", "opera", "festival",
		"theater", "album", "exhibition", "orchestra", "premiere",
		"box office", "literary", "curator",
	},
	Lifestyle: {
		"travel", "food", "wellness", "fashion", "fitness", "recipe",
		"home", "restaurant", "sleep", "diet", "parenting", "retirement",
	},
	Opinion: {
		"opinion", "op-ed", "editorial", "the case for", "why we",
		"should", "argument", "essay",
	},
}

// ClassifySection assigns a feed item to a section. Title keywords are
// weighted 2x; ties break toward the earlier section in canonical
// order. Items nothing claims land in Opinion.
func ClassifySection(title, summary string) Section {
	section, _, _ := classify(title, summary)
	return section
}

func classify(title, summary string) (Section, int, string) {
	titleTokens := tokenize(title)
	summaryTokens := tokenize(summary)
	titleLower := strings.ToLower(title)
	summaryLower := strings.ToLower(summary)

	bestSection := Opinion
	bestScore := 0
	bestKeyword := ""

	for _, section := range AllSections() {
		score := 0
		first := ""
		for _, kw := range sectionKeywords[section] {
			hits := 0
			if strings.Contains(kw, " ") {
				if strings.Contains(titleLower, kw) {
					hits += 2
				}
				if strings.Contains(summaryLower, kw) {
					hits++
				}
			} else {
				for _, t := range titleTokens {
					if t == kw || strings.Contains(t, kw) {
						hits += 2
					}
				}
				for _, t := range summaryTokens {
					if t == kw || strings.Contains(t, kw) {
						hits++
					}
				}
			}
			if hits > 0 && first == "" {
				first = kw
			}
			score += hits
		}
		if score > bestScore {
			bestScore = score
			bestSection = section
			bestKeyword = first
		}
	}

	return bestSection, bestScore, bestKeyword
}

var yearPattern = regexp.MustCompile(`\b20\d\d\b`)

var longCues = []string{
	"decade", "2030s", "2040s", "mid-century", "a generation",
	"long-term", "long term",
}

var midCues = []string{
	"within five years", "five-year", "coming years", "medium-term",
}

// ClassifyHorizon estimates how far out a topic matures. An explicit
// future year in the text dominates; otherwise cue phrases decide, and
// everything else is near-term.
func ClassifyHorizon(title, summary string, now time.Time) string {
	text := strings.ToLower(title + " " + summary)

	if matches := yearPattern.FindAllString(text, -1); len(matches) > 0 {
		maxDelta := 0
		for _, m := range matches {
			year := 0
			for _, r := range m {
				year = year*10 + int(r-'0')
			}
			if d := year - now.Year(); d > maxDelta {
				maxDelta = d
			}
		}
		switch {
		case maxDelta > 5:
			return HorizonLong
		case maxDelta > 2:
			return HorizonMid
		case maxDelta > 0:
			return HorizonNear
		}
	}

	for _, cue := range longCues {
		if strings.Contains(text, cue) {
			return HorizonLong
		}
	}
	for _, cue := range midCues {
		if strings.Contains(text, cue) {
			return HorizonMid
		}
	}
	return HorizonNear
}

var slugStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "to": true,
	"in": true, "on": true, "for": true, "and": true, "with": true,
	"at": true, "as": true, "by": true, "from": true, "after": true,
	"over": true, "its": true, "is": true, "are": true,
}

// Slugify derives a stable slug from a title: lowercased tokens minus
// stopwords, at most six words.
func Slugify(title string) string {
	var words []string
	for _, t := range tokenize(title) {
		if slugStopwords[t] {
			continue
		}
		words = append(words, t)
		if len(words) == 6 {
			break
		}
	}
	if len(words) == 0 {
		return "untitled"
	}
	return strings.Join(words, "-")
}

// Candidate is a scored, classified topic derived from one feed item.
type Candidate struct {
	Slug    string
	Section string
	Theme   string
	Label   string
	Horizon string
	Score   float64
}

const (
	weightRecency  = 0.40
	weightDepth    = 0.30
	weightKeywords = 0.30
)

// BuildCandidate classifies and scores one feed item.
func BuildCandidate(item FeedItem, now time.Time) Candidate {
	section, kwScore, keyword := classify(item.Title, item.Summary)
	theme := keyword
	if theme == "" {
		theme = strings.ToLower(string(section))
	}

	raw := recencyScore(item.Published, now)*weightRecency +
		depthScore(item.Summary)*weightDepth +
		keywordDensity(kwScore, item.Title, item.Summary)*weightKeywords

	return Candidate{
		Slug:    Slugify(item.Title),
		Section: string(section),
		Theme:   theme,
		Label:   truncate(item.Title, 90),
		Horizon: ClassifyHorizon(item.Title, item.Summary, now),
		Score:   math.Round(raw*100) / 10,
	}
}

// recencyScore decays exponentially: 1.0 at publish, ~0.5 at 24h.
func recencyScore(published, now time.Time) float64 {
	if published.IsZero() {
		return 0.0
	}
	hours := now.Sub(published).Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Exp(-0.02888 * hours)
}

func depthScore(summary string) float64 {
	words := len(strings.Fields(summary))
	switch {
	case words >= 40:
		return 1.0
	case words >= 15:
		return 0.6
	default:
		return 0.2
	}
}

func keywordDensity(kwScore int, title, summary string) float64 {
	words := len(tokenize(title)) + len(tokenize(summary))
	if words == 0 {
		return 0.0
	}
	density := float64(kwScore) / float64(words) * 10
	if density > 1.0 {
		density = 1.0
	}
	return density
}

func tokenize(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
