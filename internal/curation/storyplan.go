package curation

import (
	"strings"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

const maxSparkDirections = 8

type draftWire struct {
	Title string `json:"title"`
	Dek   string `json:"dek"`
	Body  string `json:"body"`
}

type storyCurationWire struct {
	StoryID         string     `json:"story_id"`
	CuratedTitle    string     `json:"curated_title"`
	CuratedDek      string     `json:"curated_dek"`
	TopicTitle      string     `json:"topic_title"`
	SparkDirections []string   `json:"spark_directions"`
	Key             bool       `json:"key"`
	Hero            bool       `json:"hero"`
	FutureEventSeed string     `json:"future_event_seed"`
	Draft           *draftWire `json:"draft_article"`
}

type storyPlanWire struct {
	Stories []storyCurationWire `json:"stories"`
}

// NormalizeCurationPlan folds a raw story-mode plan onto the candidate
// list. Story ids outside the candidate set are dropped, duplicates keep
// their first occurrence, and the result follows candidate order.
// Exactly one story ends up hero: the first flagged one, else the first
// key story, else the first story. The hero is always key, and only key
// stories keep a draft.
func NormalizeCurationPlan(w storyPlanWire, candidates []model.StoryCandidate) []model.StoryCuration {
	byID := make(map[string]*model.StoryCandidate, len(candidates))
	for i := range candidates {
		byID[candidates[i].StoryID] = &candidates[i]
	}

	curated := make(map[string]model.StoryCuration, len(w.Stories))
	for _, sw := range w.Stories {
		id := strings.TrimSpace(sw.StoryID)
		cand, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := curated[id]; dup {
			continue
		}
		curated[id] = normalizeStoryCuration(sw, cand)
	}

	stories := make([]model.StoryCuration, 0, len(curated))
	for _, cand := range candidates {
		if sc, ok := curated[cand.StoryID]; ok {
			stories = append(stories, sc)
		}
	}
	if len(stories) == 0 {
		return stories
	}

	hero, firstKey := -1, -1
	for i, sc := range stories {
		if sc.Hero {
			hero = i
			break
		}
		if firstKey == -1 && sc.Key {
			firstKey = i
		}
	}
	if hero == -1 {
		hero = firstKey
	}
	if hero == -1 {
		hero = 0
	}
	for i := range stories {
		stories[i].Hero = i == hero
	}
	stories[hero].Key = true

	for i := range stories {
		if !stories[i].Key {
			stories[i].Draft = nil
		}
	}
	return stories
}

func normalizeStoryCuration(sw storyCurationWire, cand *model.StoryCandidate) model.StoryCuration {
	sc := model.StoryCuration{
		StoryID:         cand.StoryID,
		CuratedTitle:    clampText(sw.CuratedTitle, maxTitleLen),
		CuratedDek:      clampText(sw.CuratedDek, maxDekLen),
		TopicTitle:      clampText(sw.TopicTitle, maxTitleLen),
		Key:             sw.Key,
		Hero:            sw.Hero,
		FutureEventSeed: clampText(sw.FutureEventSeed, maxEventLen),
	}
	if sc.CuratedTitle == "" {
		sc.CuratedTitle = clampText(cand.Title, maxTitleLen)
	}
	if sc.CuratedDek == "" {
		sc.CuratedDek = clampText(cand.Dek, maxDekLen)
	}
	if sc.FutureEventSeed == "" {
		sc.FutureEventSeed = clampText(cand.FutureEvent, maxEventLen)
	}
	for _, d := range sw.SparkDirections {
		d = clampText(d, maxOutlineLen)
		if d == "" {
			continue
		}
		sc.SparkDirections = append(sc.SparkDirections, d)
		if len(sc.SparkDirections) == maxSparkDirections {
			break
		}
	}
	if sw.Draft != nil {
		sc.Draft = &model.DraftArticle{
			Title: clampText(sw.Draft.Title, maxTitleLen),
			Dek:   clampText(sw.Draft.Dek, maxDekLen),
			Body:  clampText(sw.Draft.Body, maxBodyLen),
		}
		if sc.Draft.Title == "" {
			sc.Draft.Title = sc.CuratedTitle
		}
	}
	return sc
}
