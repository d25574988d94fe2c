package repository

import (
	"context"
	"database/sql"
	"sort"

	"github.com/lib/pq"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

// StoryRepository is the durable story store: the slotted candidates a
// daily curation produced and the per-story curation passes over them.
type StoryRepository struct {
	db *sql.DB
}

func NewStoryRepository(db *sql.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// SaveCandidates upserts the slots of one curation cycle. A regenerated
// cycle overwrites the copy fields but keeps the story id stable.
func (r *StoryRepository) SaveCandidates(ctx context.Context, candidates []model.StoryCandidate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range candidates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO story(story_id, day, years_forward, section, rank, topic_slug, title, dek, future_event, lede_seed, nut_seed, outline)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (story_id) DO UPDATE SET
				rank = EXCLUDED.rank,
				title = EXCLUDED.title,
				dek = EXCLUDED.dek,
				future_event = EXCLUDED.future_event,
				lede_seed = EXCLUDED.lede_seed,
				nut_seed = EXCLUDED.nut_seed,
				outline = EXCLUDED.outline
		`, c.StoryID, c.Day, c.YearsForward, c.Section, c.Rank, c.TopicSlug,
			c.Title, c.Dek, c.FutureEvent, c.LedeSeed, c.NutSeed, pq.Array(c.Outline))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CandidatesByEdition returns one edition's candidates in front-page
// order: section order first, rank within section. Story-mode curation
// depends on this ordering for its hero preference.
func (r *StoryRepository) CandidatesByEdition(ctx context.Context, day string, yearsForward int) ([]model.StoryCandidate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT story_id, day, years_forward, section, rank, topic_slug, title, dek, future_event, lede_seed, nut_seed, outline
		FROM story
		WHERE day = $1 AND years_forward = $2
	`, day, yearsForward)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []model.StoryCandidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pos := make(map[string]int, len(model.SectionOrder()))
	for i, s := range model.SectionOrder() {
		pos[s] = i
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if pos[candidates[i].Section] != pos[candidates[j].Section] {
			return pos[candidates[i].Section] < pos[candidates[j].Section]
		}
		return candidates[i].Rank < candidates[j].Rank
	})

	return candidates, nil
}

func (r *StoryRepository) GetCandidate(ctx context.Context, storyID string) (*model.StoryCandidate, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT story_id, day, years_forward, section, rank, topic_slug, title, dek, future_event, lede_seed, nut_seed, outline
		FROM story
		WHERE story_id = $1
	`, storyID)

	c, err := scanCandidate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row rowScanner) (*model.StoryCandidate, error) {
	var c model.StoryCandidate
	var outline pq.StringArray
	err := row.Scan(&c.StoryID, &c.Day, &c.YearsForward, &c.Section, &c.Rank, &c.TopicSlug,
		&c.Title, &c.Dek, &c.FutureEvent, &c.LedeSeed, &c.NutSeed, &outline)
	if err != nil {
		return nil, err
	}
	c.Outline = []string(outline)
	return &c, nil
}

// SaveCurations upserts one story-mode pass. The plan's GeneratedAt is
// written to every row; it is the fingerprint render reads compare
// against.
func (r *StoryRepository) SaveCurations(ctx context.Context, plan *model.CurationPlan) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, sc := range plan.Stories {
		var draftTitle, draftDek, draftBody interface{}
		if sc.Draft != nil {
			draftTitle, draftDek, draftBody = sc.Draft.Title, sc.Draft.Dek, sc.Draft.Body
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO story_curation(story_id, day, years_forward, curated_title, curated_dek, topic_title, spark_directions, key_story, hero, future_event_seed, draft_title, draft_dek, draft_body, generated_at, mode)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (story_id) DO UPDATE SET
				curated_title = EXCLUDED.curated_title,
				curated_dek = EXCLUDED.curated_dek,
				topic_title = EXCLUDED.topic_title,
				spark_directions = EXCLUDED.spark_directions,
				key_story = EXCLUDED.key_story,
				hero = EXCLUDED.hero,
				future_event_seed = EXCLUDED.future_event_seed,
				draft_title = EXCLUDED.draft_title,
				draft_dek = EXCLUDED.draft_dek,
				draft_body = EXCLUDED.draft_body,
				generated_at = EXCLUDED.generated_at,
				mode = EXCLUDED.mode
		`, sc.StoryID, plan.Day, plan.YearsForward, sc.CuratedTitle, sc.CuratedDek, sc.TopicTitle,
			pq.Array(sc.SparkDirections), sc.Key, sc.Hero, sc.FutureEventSeed,
			draftTitle, draftDek, draftBody, plan.GeneratedAt, plan.Mode)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetCuration returns a story's latest curation and the fingerprint of
// the pass that produced it. (nil, "", nil) when the story has never
// been curated.
func (r *StoryRepository) GetCuration(ctx context.Context, storyID string) (*model.StoryCuration, string, error) {
	var sc model.StoryCuration
	var spark pq.StringArray
	var draftTitle, draftDek, draftBody sql.NullString
	var generatedAt string

	err := r.db.QueryRowContext(ctx, `
		SELECT story_id, curated_title, curated_dek, topic_title, spark_directions, key_story, hero, future_event_seed, draft_title, draft_dek, draft_body, generated_at
		FROM story_curation
		WHERE story_id = $1
	`, storyID).Scan(&sc.StoryID, &sc.CuratedTitle, &sc.CuratedDek, &sc.TopicTitle, &spark,
		&sc.Key, &sc.Hero, &sc.FutureEventSeed, &draftTitle, &draftDek, &draftBody, &generatedAt)

	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	sc.SparkDirections = []string(spark)
	if draftBody.Valid && draftBody.String != "" {
		sc.Draft = &model.DraftArticle{
			Title: draftTitle.String,
			Dek:   draftDek.String,
			Body:  draftBody.String,
		}
	}
	return &sc, generatedAt, nil
}

// PlanByEdition reassembles the latest story-mode pass over one
// edition, in front-page candidate order. Returns nil when the edition
// has never been curated.
func (r *StoryRepository) PlanByEdition(ctx context.Context, day string, yearsForward int) (*model.CurationPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sc.story_id, sc.curated_title, sc.curated_dek, sc.topic_title, sc.spark_directions,
			sc.key_story, sc.hero, sc.future_event_seed, sc.draft_title, sc.draft_dek, sc.draft_body,
			sc.generated_at, sc.mode, s.section, s.rank
		FROM story_curation sc
		JOIN story s ON s.story_id = sc.story_id
		WHERE sc.day = $1 AND sc.years_forward = $2
	`, day, yearsForward)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plan := &model.CurationPlan{Day: day, YearsForward: yearsForward}
	type orderedStory struct {
		story   model.StoryCuration
		section string
		rank    int
	}
	var ordered []orderedStory

	for rows.Next() {
		var o orderedStory
		var spark pq.StringArray
		var draftTitle, draftDek, draftBody sql.NullString
		err := rows.Scan(&o.story.StoryID, &o.story.CuratedTitle, &o.story.CuratedDek, &o.story.TopicTitle, &spark,
			&o.story.Key, &o.story.Hero, &o.story.FutureEventSeed, &draftTitle, &draftDek, &draftBody,
			&plan.GeneratedAt, &plan.Mode, &o.section, &o.rank)
		if err != nil {
			return nil, err
		}
		o.story.SparkDirections = []string(spark)
		if draftBody.Valid && draftBody.String != "" {
			o.story.Draft = &model.DraftArticle{
				Title: draftTitle.String,
				Dek:   draftDek.String,
				Body:  draftBody.String,
			}
		}
		ordered = append(ordered, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ordered) == 0 {
		return nil, nil
	}

	pos := make(map[string]int, len(model.SectionOrder()))
	for i, s := range model.SectionOrder() {
		pos[s] = i
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if pos[ordered[i].section] != pos[ordered[j].section] {
			return pos[ordered[i].section] < pos[ordered[j].section]
		}
		return ordered[i].rank < ordered[j].rank
	})

	for _, o := range ordered {
		plan.Stories = append(plan.Stories, o.story)
	}
	return plan, nil
}
