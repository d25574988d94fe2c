package model

import "time"

// StoryCandidate is a persisted story slot offered to a story-mode
// curation pass. StoryID is the durable key in the story store.
type StoryCandidate struct {
	StoryID      string
	Day          string
	YearsForward int
	Section      string
	Rank         int
	TopicSlug    string
	Title        string
	Dek          string
	FutureEvent  string
	LedeSeed     string
	NutSeed      string
	Outline      []string
}

// DraftArticle is the full drafted body a key story carries.
type DraftArticle struct {
	Title string
	Dek   string
	Body  string
}

// StoryCuration is the per-story output of a story-mode pass. Draft is
// non-nil only when Key is true.
type StoryCuration struct {
	StoryID         string
	CuratedTitle    string
	CuratedDek      string
	TopicTitle      string
	SparkDirections []string
	Key             bool
	Hero            bool
	FutureEventSeed string
	Draft           *DraftArticle
}

// CurationPlan is a story-mode pass over one edition's candidates.
// Exactly one story carries Hero after normalization.
type CurationPlan struct {
	Day          string
	YearsForward int
	GeneratedAt  string
	Mode         string
	Stories      []StoryCuration
}

// CandidatesFromEdition flattens an edition's populated slots into
// durable story candidates, in front-page order. The hero mirrors the
// U.S. lead, so it never yields a separate row.
func CandidatesFromEdition(ed Edition) []StoryCandidate {
	var out []StoryCandidate
	for _, section := range SectionOrder() {
		for _, slot := range ed.Sections[section] {
			if !slot.Populated() {
				continue
			}
			out = append(out, StoryCandidate{
				StoryID:      StoryID(ed.Day, ed.YearsForward, slot.Section, slot.TopicSlug),
				Day:          ed.Day,
				YearsForward: ed.YearsForward,
				Section:      slot.Section,
				Rank:         slot.Rank,
				TopicSlug:    slot.TopicSlug,
				Title:        slot.Title,
				Dek:          slot.Dek,
				FutureEvent:  slot.FutureEvent,
				LedeSeed:     slot.LedeSeed,
				NutSeed:      slot.NutSeed,
				Outline:      slot.Outline,
			})
		}
	}
	return out
}

// RenderedArticle is the fully materialized article for one story,
// stamped with the fingerprint of the curation pass that seeded it. A
// stamp mismatch at read time is a cache miss, never an error.
type RenderedArticle struct {
	StoryID             string
	Section             string
	Title               string
	Dek                 string
	Body                string
	EditionDate         time.Time
	Signals             []Signal
	ModelUsed           string
	CurationGeneratedAt string
	RenderedAt          time.Time
}
