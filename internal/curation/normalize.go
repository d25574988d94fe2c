package curation

import (
	"fmt"
	"strings"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

// Free-text clamp budgets, in runes.
const (
	maxTitleLen   = 140
	maxDekLen     = 240
	maxEventLen   = 200
	maxSeedLen    = 320
	maxOutlineLen = 160
	maxBodyLen    = 20000
)

// Outline entry bounds by rank.
const (
	heroOutlineMin = 5
	heroOutlineMax = 8
	slotOutlineMin = 2
	slotOutlineMax = 4
)

// Day-brief budgets.
const (
	maxBriefSummaryLen = 600
	maxThemeLen        = 80
	maxMoodLen         = 40
	maxBriefThemes     = 5
)

var validAngles = map[string]bool{
	model.AngleImpact:  true,
	model.AngleMarkets: true,
	model.AnglePolicy:  true,
	model.AngleTech:    true,
	model.AngleSociety: true,
}

// slotWire is the slot shape backends return and the deterministic
// generator emits. Normalization is the only path from here to
// model.StorySlot; incoming ranks are never trusted.
type slotWire struct {
	Rank        int      `json:"rank"`
	Section     string   `json:"section"`
	TopicSlug   string   `json:"topic_slug"`
	Angle       string   `json:"angle"`
	Title       string   `json:"title"`
	Dek         string   `json:"dek"`
	FutureEvent string   `json:"future_event"`
	LedeSeed    string   `json:"lede_seed"`
	NutSeed     string   `json:"nut_seed"`
	Outline     []string `json:"outline"`
}

type editionWire struct {
	Hero     *slotWire             `json:"hero"`
	Sections map[string][]slotWire `json:"sections"`
}

type briefWire struct {
	Summary    string   `json:"summary"`
	Themes     []string `json:"themes"`
	MarketMood string   `json:"market_mood"`
}

type articleWire struct {
	Title string `json:"title"`
	Dek   string `json:"dek"`
	Body  string `json:"body"`
}

// normalizeBrief clamps a raw day brief into shape.
func normalizeBrief(w briefWire, day string) *model.DayBrief {
	b := &model.DayBrief{
		Day:        day,
		Summary:    clampText(w.Summary, maxBriefSummaryLen),
		MarketMood: clampText(w.MarketMood, maxMoodLen),
	}
	for _, th := range w.Themes {
		th = clampText(th, maxThemeLen)
		if th == "" {
			continue
		}
		b.Themes = append(b.Themes, th)
		if len(b.Themes) == maxBriefThemes {
			break
		}
	}
	return b
}

// clampText trims s and cuts it to max runes, stripping whitespace and
// dangling punctuation at the cut point.
func clampText(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimRight(string(r[:max]), " \t\n.,;:!?-–—(\"'")
}

func angleAt(i int) string {
	cycle := model.AngleCycle()
	if i < 0 {
		i = 0
	}
	return cycle[i%len(cycle)]
}

// outlineFiller pads short outlines up to the rank's minimum.
var outlineFiller = []string{
	"Background and how we got here",
	"Key players and incentives",
	"What it would take to happen",
	"Risks and unknowns",
	"What to watch next",
	"The view from the ground",
	"Second-order effects",
	"How it could unravel",
}

func hasOutline(entries []string) bool {
	for _, e := range entries {
		if strings.TrimSpace(e) != "" {
			return true
		}
	}
	return false
}

func normalizeOutline(entries []string, rank int) []string {
	lo, hi := slotOutlineMin, slotOutlineMax
	if rank == 1 {
		lo, hi = heroOutlineMin, heroOutlineMax
	}
	var out []string
	for _, e := range entries {
		e = clampText(e, maxOutlineLen)
		if e == "" {
			continue
		}
		out = append(out, e)
		if len(out) == hi {
			break
		}
	}
	for i := 0; len(out) < lo; i++ {
		out = append(out, outlineFiller[i%len(outlineFiller)])
	}
	return out
}

func normalizeSlot(w slotWire, section string, rank int) model.StorySlot {
	angle := strings.ToLower(strings.TrimSpace(w.Angle))
	if !validAngles[angle] {
		angle = angleAt(rank - 1)
	}
	s := model.StorySlot{
		Rank:        rank,
		Section:     section,
		TopicSlug:   strings.TrimSpace(w.TopicSlug),
		Angle:       angle,
		Title:       clampText(w.Title, maxTitleLen),
		Dek:         clampText(w.Dek, maxDekLen),
		FutureEvent: clampText(w.FutureEvent, maxEventLen),
		LedeSeed:    clampText(w.LedeSeed, maxSeedLen),
		NutSeed:     clampText(w.NutSeed, maxSeedLen),
	}
	if s.Populated() {
		s.Outline = normalizeOutline(w.Outline, rank)
	}
	return s
}

func placeholderSlot(section string, rank int) model.StorySlot {
	return model.StorySlot{Rank: rank, Section: section, Angle: angleAt(rank - 1)}
}

// NormalizeEdition forces any raw edition plan, backend or deterministic,
// into the fixed shape: the eight canonical sections at exactly five
// slots each, ranks renumbered 1..5, angles cycled when invalid, copy
// clamped, seeds never null, and the hero reconciled with the U.S.
// rank-1 slot. It always completes; semantic checks live in
// ValidateEdition.
func NormalizeEdition(w editionWire, day string, yearsForward int) (*model.Edition, error) {
	date, err := model.EditionDate(day, yearsForward)
	if err != nil {
		return nil, err
	}

	ed := &model.Edition{
		Day:          day,
		YearsForward: yearsForward,
		EditionDate:  date,
		Sections:     make(map[string][]model.StorySlot, len(model.SectionOrder())),
	}
	for _, section := range model.SectionOrder() {
		slots := make([]model.StorySlot, 0, model.SlotsPerSection)
		for _, sw := range w.Sections[section] {
			if len(slots) == model.SlotsPerSection {
				break
			}
			if strings.TrimSpace(sw.TopicSlug) == "" && strings.TrimSpace(sw.Title) == "" {
				continue
			}
			slots = append(slots, normalizeSlot(sw, section, len(slots)+1))
		}
		for len(slots) < model.SlotsPerSection {
			slots = append(slots, placeholderSlot(section, len(slots)+1))
		}
		ed.Sections[section] = slots
	}

	ed.Hero = reconcileHero(w.Hero, ed)
	return ed, nil
}

// reconcileHero keeps an explicitly supplied hero, backfilling whatever
// fields it lacks from the U.S. rank-1 slot rather than dropping it.
// With no usable hero the U.S. rank-1 slot is the hero.
func reconcileHero(hw *slotWire, ed *model.Edition) model.StorySlot {
	lead := ed.Sections[model.SectionUS][0]
	if hw == nil || (strings.TrimSpace(hw.TopicSlug) == "" && strings.TrimSpace(hw.Title) == "") {
		return lead
	}
	section := strings.TrimSpace(hw.Section)
	if section == "" {
		section = lead.Section
	}
	hero := normalizeSlot(*hw, section, 1)
	if !hasOutline(hw.Outline) && len(lead.Outline) > 0 {
		hero.Outline = lead.Outline
	}
	if hero.TopicSlug == "" {
		hero.TopicSlug = lead.TopicSlug
	}
	if hero.Title == "" {
		hero.Title = lead.Title
	}
	if hero.Dek == "" {
		hero.Dek = lead.Dek
	}
	if hero.FutureEvent == "" {
		hero.FutureEvent = lead.FutureEvent
	}
	if hero.LedeSeed == "" {
		hero.LedeSeed = lead.LedeSeed
	}
	if hero.NutSeed == "" {
		hero.NutSeed = lead.NutSeed
	}
	if len(hero.Outline) == 0 {
		hero.Outline = lead.Outline
	}
	return hero
}

// ValidateEdition reports semantic problems in a normalized edition
// against the known per-section topic pools: sections with fewer than
// three populated slots, slugs outside their section's pool, and slugs
// reused anywhere in the edition. It never mutates the plan. The
// deterministic generator is correct by construction, so this runs only
// on backend output.
func ValidateEdition(ed *model.Edition, pools map[string][]model.Topic) []string {
	known := make(map[string]map[string]bool, len(pools))
	for section, topics := range pools {
		set := make(map[string]bool, len(topics))
		for _, t := range topics {
			set[t.Slug] = true
		}
		known[section] = set
	}

	var errs []string
	seen := make(map[string]string)
	for _, section := range model.SectionOrder() {
		populated := 0
		for _, s := range ed.Sections[section] {
			if !s.Populated() {
				continue
			}
			populated++
			if !known[section][s.TopicSlug] {
				errs = append(errs, fmt.Sprintf("section %s: topic %q not in section pool", section, s.TopicSlug))
			}
			if first, ok := seen[s.TopicSlug]; ok {
				errs = append(errs, fmt.Sprintf("topic %q repeats across %s and %s", s.TopicSlug, first, section))
			} else {
				seen[s.TopicSlug] = section
			}
		}
		if populated < 3 {
			errs = append(errs, fmt.Sprintf("section %s: only %d populated slots", section, populated))
		}
	}
	return errs
}
