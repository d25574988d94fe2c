package curation

import (
	"strings"
	"testing"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

func TestClampText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{
			name:  "short text unchanged",
			input: "Rates Path Steepens",
			max:   140,
			want:  "Rates Path Steepens",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  Rates Path Steepens  ",
			max:   140,
			want:  "Rates Path Steepens",
		},
		{
			name:  "cut strips trailing punctuation",
			input: "Hello, world",
			max:   6,
			want:  "Hello",
		},
		{
			name:  "cut strips trailing whitespace",
			input: "one two three",
			max:   8,
			want:  "one two",
		},
		{
			name:  "multibyte runes counted as runes",
			input: strings.Repeat("é", 10),
			max:   4,
			want:  "éééé",
		},
		{
			name:  "empty stays empty",
			input: "",
			max:   10,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampText(tt.input, tt.max)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAngleAt(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{index: 0, want: model.AngleImpact},
		{index: 1, want: model.AngleMarkets},
		{index: 2, want: model.AnglePolicy},
		{index: 3, want: model.AngleTech},
		{index: 4, want: model.AngleSociety},
		{index: 5, want: model.AngleImpact},
		{index: -1, want: model.AngleImpact},
	}
	for _, tt := range tests {
		if got := angleAt(tt.index); got != tt.want {
			t.Errorf("angleAt(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestNormalizeOutline(t *testing.T) {
	t.Run("hero padded to minimum", func(t *testing.T) {
		out := normalizeOutline([]string{"Only one beat"}, 1)
		if len(out) != heroOutlineMin {
			t.Errorf("hero outline has %d entries, want %d", len(out), heroOutlineMin)
		}
		if out[0] != "Only one beat" {
			t.Errorf("original entry lost: %q", out[0])
		}
	})

	t.Run("hero capped at maximum", func(t *testing.T) {
		var entries []string
		for i := 0; i < 12; i++ {
			entries = append(entries, "Beat")
		}
		out := normalizeOutline(entries, 1)
		if len(out) != heroOutlineMax {
			t.Errorf("hero outline has %d entries, want %d", len(out), heroOutlineMax)
		}
	})

	t.Run("regular slot bounds", func(t *testing.T) {
		out := normalizeOutline(nil, 3)
		if len(out) != slotOutlineMin {
			t.Errorf("empty outline padded to %d, want %d", len(out), slotOutlineMin)
		}
		out = normalizeOutline([]string{"a", "b", "c", "d", "e", "f"}, 3)
		if len(out) != slotOutlineMax {
			t.Errorf("outline has %d entries, want %d", len(out), slotOutlineMax)
		}
	})

	t.Run("blank entries dropped", func(t *testing.T) {
		out := normalizeOutline([]string{"", "  ", "Real beat", ""}, 2)
		if out[0] != "Real beat" {
			t.Errorf("first entry = %q, want the non-blank one", out[0])
		}
	})
}

func wireSlot(slug, title string) slotWire {
	return slotWire{
		TopicSlug:   slug,
		Angle:       model.AngleImpact,
		Title:       title,
		Dek:         "A look at " + title,
		FutureEvent: title + " lands",
		LedeSeed:    "On a gray morning",
		NutSeed:     "The stakes are broad",
		Outline:     []string{"Setup", "Stakes", "What happens next"},
	}
}

func TestNormalizeEditionShape(t *testing.T) {
	w := editionWire{
		Sections: map[string][]slotWire{
			model.SectionUS: {
				wireSlot("rates-path", "Rates Path Steepens"),
				wireSlot("chip-supply", "Chip Supply Normalizes"),
			},
			model.SectionWorld: {
				wireSlot("grid-buildout", "Grid Buildout Accelerates"),
			},
		},
	}

	ed, err := NormalizeEdition(w, "2026-03-14", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ed.Sections) != len(model.SectionOrder()) {
		t.Errorf("got %d sections, want %d", len(ed.Sections), len(model.SectionOrder()))
	}
	for _, section := range model.SectionOrder() {
		slots := ed.Sections[section]
		if len(slots) != model.SlotsPerSection {
			t.Fatalf("section %s has %d slots, want %d", section, len(slots), model.SlotsPerSection)
		}
		for i, s := range slots {
			if s.Rank != i+1 {
				t.Errorf("section %s slot %d has rank %d", section, i, s.Rank)
			}
			if s.Section != section {
				t.Errorf("section %s slot %d labeled %q", section, i, s.Section)
			}
		}
	}

	if ed.Hero.TopicSlug != "rates-path" {
		t.Errorf("hero slug = %q, want the U.S. lead", ed.Hero.TopicSlug)
	}
	if ed.EditionDate.Year() != 2028 {
		t.Errorf("edition date year = %d, want 2028", ed.EditionDate.Year())
	}
}

func TestNormalizeEditionIgnoresIncomingRank(t *testing.T) {
	s := wireSlot("rates-path", "Rates Path Steepens")
	s.Rank = 9
	w := editionWire{Sections: map[string][]slotWire{model.SectionUS: {s}}}

	ed, err := NormalizeEdition(w, "2026-03-14", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ed.Sections[model.SectionUS][0].Rank; got != 1 {
		t.Errorf("rank = %d, want 1", got)
	}
}

func TestNormalizeEditionInvalidAngle(t *testing.T) {
	tests := []struct {
		name  string
		angle string
		want  string
	}{
		{name: "unknown angle falls to cycle", angle: "vibes", want: model.AngleImpact},
		{name: "empty angle falls to cycle", angle: "", want: model.AngleImpact},
		{name: "case folded", angle: "Markets", want: model.AngleMarkets},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := wireSlot("rates-path", "Rates Path Steepens")
			s.Angle = tt.angle
			w := editionWire{Sections: map[string][]slotWire{model.SectionUS: {s}}}
			ed, err := NormalizeEdition(w, "2026-03-14", 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := ed.Sections[model.SectionUS][0].Angle; got != tt.want {
				t.Errorf("angle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeEditionClampsCopy(t *testing.T) {
	s := wireSlot("rates-path", strings.Repeat("A very long headline ", 20))
	w := editionWire{Sections: map[string][]slotWire{model.SectionUS: {s}}}

	ed, err := NormalizeEdition(w, "2026-03-14", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	title := ed.Sections[model.SectionUS][0].Title
	if len([]rune(title)) > maxTitleLen {
		t.Errorf("title is %d runes, max %d", len([]rune(title)), maxTitleLen)
	}
	if strings.HasSuffix(title, " ") {
		t.Error("clamped title ends in whitespace")
	}
}

func TestNormalizeEditionHeroBackfill(t *testing.T) {
	w := editionWire{
		Hero: &slotWire{TopicSlug: "grid-buildout", Title: "Grid Buildout Accelerates"},
		Sections: map[string][]slotWire{
			model.SectionUS: {wireSlot("rates-path", "Rates Path Steepens")},
		},
	}

	ed, err := NormalizeEdition(w, "2026-03-14", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ed.Hero.TopicSlug != "grid-buildout" {
		t.Fatalf("explicit hero dropped, got %q", ed.Hero.TopicSlug)
	}
	lead := ed.Sections[model.SectionUS][0]
	if ed.Hero.Dek != lead.Dek {
		t.Errorf("hero dek = %q, want backfilled %q", ed.Hero.Dek, lead.Dek)
	}
	if ed.Hero.LedeSeed != lead.LedeSeed {
		t.Errorf("hero lede seed = %q, want backfilled %q", ed.Hero.LedeSeed, lead.LedeSeed)
	}
}

func TestNormalizeEditionNilHero(t *testing.T) {
	w := editionWire{
		Sections: map[string][]slotWire{
			model.SectionUS: {wireSlot("rates-path", "Rates Path Steepens")},
		},
	}
	ed, err := NormalizeEdition(w, "2026-03-14", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.Hero.TopicSlug != "rates-path" {
		t.Errorf("hero = %q, want the U.S. rank-1 slot", ed.Hero.TopicSlug)
	}
}

func populatedEditionWire() editionWire {
	slugs := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	sections := make(map[string][]slotWire)
	for i, section := range model.SectionOrder() {
		var slots []slotWire
		for j := 0; j < 3; j++ {
			slug := slugs[i] + "-" + slugs[j]
			slots = append(slots, wireSlot(slug, "Story about "+slug))
		}
		sections[section] = slots
	}
	return editionWire{Sections: sections}
}

func poolsFor(ed *model.Edition) map[string][]model.Topic {
	pools := make(map[string][]model.Topic)
	for section, slots := range ed.Sections {
		for _, s := range slots {
			if s.Populated() {
				pools[section] = append(pools[section], mkTopic(s.TopicSlug, model.HorizonNear))
			}
		}
	}
	return pools
}

func TestValidateEditionClean(t *testing.T) {
	ed, err := NormalizeEdition(populatedEditionWire(), "2026-03-14", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errs := ValidateEdition(ed, poolsFor(ed)); len(errs) != 0 {
		t.Errorf("clean edition flagged: %v", errs)
	}
}

func TestValidateEditionFindsProblems(t *testing.T) {
	ed, err := NormalizeEdition(populatedEditionWire(), "2026-03-14", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pools := poolsFor(ed)

	t.Run("unknown slug", func(t *testing.T) {
		tampered := *ed
		tampered.Sections = cloneSections(ed.Sections)
		tampered.Sections[model.SectionUS][0].TopicSlug = "invented-slug"
		errs := ValidateEdition(&tampered, pools)
		if !containsSubstring(errs, "invented-slug") {
			t.Errorf("unknown slug not reported: %v", errs)
		}
	})

	t.Run("duplicate slug across sections", func(t *testing.T) {
		tampered := *ed
		tampered.Sections = cloneSections(ed.Sections)
		dup := tampered.Sections[model.SectionUS][0].TopicSlug
		tampered.Sections[model.SectionWorld][0].TopicSlug = dup
		pools2 := poolsFor(&tampered)
		errs := ValidateEdition(&tampered, pools2)
		if !containsSubstring(errs, "repeats") {
			t.Errorf("duplicate slug not reported: %v", errs)
		}
	})

	t.Run("sparse section", func(t *testing.T) {
		tampered := *ed
		tampered.Sections = cloneSections(ed.Sections)
		for i := range tampered.Sections[model.SectionOpinion] {
			tampered.Sections[model.SectionOpinion][i].TopicSlug = ""
		}
		errs := ValidateEdition(&tampered, pools)
		if !containsSubstring(errs, "populated") {
			t.Errorf("sparse section not reported: %v", errs)
		}
	})
}

func cloneSections(in map[string][]model.StorySlot) map[string][]model.StorySlot {
	out := make(map[string][]model.StorySlot, len(in))
	for k, v := range in {
		slots := make([]model.StorySlot, len(v))
		copy(slots, v)
		out[k] = slots
	}
	return out
}

func containsSubstring(errs []string, sub string) bool {
	for _, e := range errs {
		if strings.Contains(e, sub) {
			return true
		}
	}
	return false
}
