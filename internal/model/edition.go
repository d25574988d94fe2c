package model

import (
	"fmt"
	"strings"
	"time"
)

// DayFormat is the calendar-date key for one batch of topics and signals.
const DayFormat = "2006-01-02"

// SlotsPerSection is the fixed slot count every section carries after
// normalization.
const SlotsPerSection = 5

// StorySlot is one story position in an edition. LedeSeed and NutSeed are
// populated only for rank-1 slots; Outline carries 5-8 entries at rank 1
// and 2-4 otherwise.
type StorySlot struct {
	Rank        int
	Section     string
	TopicSlug   string
	Angle       string
	Title       string
	Dek         string
	FutureEvent string
	LedeSeed    string
	NutSeed     string
	Outline     []string
}

// Populated reports whether the slot holds a real story rather than a
// normalizer placeholder.
func (s StorySlot) Populated() bool {
	return s.TopicSlug != ""
}

// Edition is the full front page for one (day, yearsForward) pair.
type Edition struct {
	Day          string
	YearsForward int
	EditionDate  time.Time
	Hero         StorySlot
	Sections     map[string][]StorySlot
}

// DayBrief is the day-level context summary every edition prompt embeds.
type DayBrief struct {
	Day        string
	Summary    string
	Themes     []string
	MarketMood string
}

// DailyCuration is one full generation cycle for a day: the brief plus
// eleven editions, yearsForward 0 through 10 in order. GeneratedAt is the
// curation fingerprint carried by every derived render.
type DailyCuration struct {
	Day         string
	GeneratedAt string
	Mode        string
	Brief       DayBrief
	Editions    []Edition
}

// EditionDate derives the future-dated publication date: day plus
// yearsForward years at 12:00 UTC, which keeps the date stable across DST
// boundaries.
func EditionDate(day string, yearsForward int) (time.Time, error) {
	t, err := time.Parse(DayFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day %q: %w", day, err)
	}
	return time.Date(t.Year()+yearsForward, t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}

// StoryID is the durable store key for a slot. Topic slugs are unique
// within an edition, so the tuple is collision-free.
func StoryID(day string, yearsForward int, section, slug string) string {
	return fmt.Sprintf("%s:y%d:%s:%s", day, yearsForward, sectionKey(section), slug)
}

func sectionKey(section string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(section) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
