package curation

import (
	"math"
	"sort"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

// horizonMix returns the near/mid/long share of a section's five slots
// for the given forward year. Close editions lean on near-term topics;
// far editions invert toward long-horizon ones.
func horizonMix(yearsForward int) (near, mid, long float64) {
	switch {
	case yearsForward <= 2:
		return 0.6, 0.3, 0.1
	case yearsForward <= 5:
		return 0.3, 0.5, 0.2
	default:
		return 0.1, 0.4, 0.5
	}
}

// bucketCounts converts the mix into wanted slot counts. Near and mid
// round to nearest; long absorbs the remainder so the three always sum
// to SlotsPerSection.
func bucketCounts(yearsForward int) (near, mid, long int) {
	n, m, _ := horizonMix(yearsForward)
	near = int(math.Round(model.SlotsPerSection * n))
	mid = int(math.Round(model.SlotsPerSection * m))
	long = model.SlotsPerSection - near - mid
	return near, mid, long
}

// orderTopics sorts candidates by slotHash under the given bucket token,
// slug as tiebreak.
func orderTopics(topics []model.Topic, day string, yearsForward int, section, bucket string) []model.Topic {
	out := make([]model.Topic, len(topics))
	copy(out, topics)
	sort.SliceStable(out, func(i, j int) bool {
		hi := slotHash(day, yearsForward, section, bucket, out[i].Slug)
		hj := slotHash(day, yearsForward, section, bucket, out[j].Slug)
		if hi != hj {
			return hi < hj
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// allocateSection picks up to five topics for one section: wanted counts
// per horizon bucket first, then backfill from the whole section pool.
// used is the edition-local slug set and is mutated as topics are taken.
// An empty pool yields an empty pick; the normalizer pads.
func allocateSection(day string, yearsForward int, section string, pool []model.Topic, used map[string]bool) []model.Topic {
	wantNear, wantMid, wantLong := bucketCounts(yearsForward)
	want := map[string]int{
		model.HorizonNear: wantNear,
		model.HorizonMid:  wantMid,
		model.HorizonLong: wantLong,
	}

	var picked []model.Topic
	for _, bucket := range []string{model.HorizonNear, model.HorizonMid, model.HorizonLong} {
		n := want[bucket]
		if n == 0 {
			continue
		}
		var candidates []model.Topic
		for _, t := range pool {
			if t.Horizon == bucket && !used[t.Slug] {
				candidates = append(candidates, t)
			}
		}
		for _, t := range orderTopics(candidates, day, yearsForward, section, bucket) {
			if n == 0 {
				break
			}
			picked = append(picked, t)
			used[t.Slug] = true
			n--
		}
	}

	if len(picked) < model.SlotsPerSection {
		var rest []model.Topic
		for _, t := range pool {
			if !used[t.Slug] {
				rest = append(rest, t)
			}
		}
		for _, t := range orderTopics(rest, day, yearsForward, section, bucketAny) {
			if len(picked) == model.SlotsPerSection {
				break
			}
			picked = append(picked, t)
			used[t.Slug] = true
		}
	}

	return picked
}

// allocateEdition runs the section allocation in fixed front-page order
// with one shared used-slug set, so a topic never repeats within an
// edition. The set resets per (day, yearsForward): the same topic may
// legitimately headline two different forward years of the same day.
func allocateEdition(day string, yearsForward int, topicsBySection map[string][]model.Topic) map[string][]model.Topic {
	used := make(map[string]bool)
	out := make(map[string][]model.Topic, len(model.SectionOrder()))
	for _, section := range model.SectionOrder() {
		out[section] = allocateSection(day, yearsForward, section, topicsBySection[section], used)
	}
	return out
}

// applyHeroFallback repairs an edition whose U.S. section produced no
// slots by promoting a deterministic pick across all populated slots.
func applyHeroFallback(ed *model.Edition) {
	if ed.Hero.Populated() {
		return
	}
	var populated []model.StorySlot
	for _, section := range model.SectionOrder() {
		for _, s := range ed.Sections[section] {
			if s.Populated() {
				populated = append(populated, s)
			}
		}
	}
	if len(populated) == 0 {
		return
	}
	ed.Hero = heroFallbackSlot(ed.Day, ed.YearsForward, populated)
}

// heroFallbackSlot deterministically picks a hero among all produced
// slots, used only when the U.S. section came up empty.
func heroFallbackSlot(day string, yearsForward int, slots []model.StorySlot) model.StorySlot {
	best := slots[0]
	bestHash := slotHash(day, yearsForward, best.Section, bucketHero, best.TopicSlug)
	for _, s := range slots[1:] {
		h := slotHash(day, yearsForward, s.Section, bucketHero, s.TopicSlug)
		if h < bestHash || (h == bestHash && s.TopicSlug < best.TopicSlug) {
			best, bestHash = s, h
		}
	}
	return best
}
