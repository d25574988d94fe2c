package repository

import (
	"context"
	"database/sql"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

// TopicRepository persists the per-day baseline records the collection
// layer produces. It satisfies the engine's TopicSource contract.
type TopicRepository struct {
	db *sql.DB
}

func NewTopicRepository(db *sql.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// SaveTopics stores a day's topic pools. Slugs already stored for the
// day are left untouched, so re-running a collection is safe.
func (r *TopicRepository) SaveTopics(ctx context.Context, day string, bySection map[string][]model.Topic) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for section, topics := range bySection {
		for _, t := range topics {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO topic(day, section, slug, theme, label, horizon, score)
				VALUES($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (day, slug) DO NOTHING
			`, day, section, t.Slug, t.Theme, t.Label, t.Horizon, t.Score)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *TopicRepository) GetTopicsBySection(ctx context.Context, day string) (map[string][]model.Topic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT section, slug, theme, label, horizon, score
		FROM topic
		WHERE day = $1
		ORDER BY section, score DESC, slug
	`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pools := make(map[string][]model.Topic)
	for rows.Next() {
		var section string
		var t model.Topic
		if err := rows.Scan(&section, &t.Slug, &t.Theme, &t.Label, &t.Horizon, &t.Score); err != nil {
			return nil, err
		}
		pools[section] = append(pools[section], t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pools, nil
}

// SaveSignals stores one kind's series for a day, replacing any prior
// collection run.
func (r *TopicRepository) SaveSignals(ctx context.Context, day, kind string, signals []model.Signal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM signal WHERE day = $1 AND kind = $2
	`, day, kind); err != nil {
		return err
	}
	for _, s := range signals {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO signal(day, kind, label, value, prob)
			VALUES($1, $2, $3, $4, $5)
		`, day, kind, s.Label, s.Value, s.Prob)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *TopicRepository) signalsByKind(ctx context.Context, day, kind string) ([]model.Signal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT label, value, prob
		FROM signal
		WHERE day = $1 AND kind = $2
		ORDER BY label
	`, day, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []model.Signal
	for rows.Next() {
		var s model.Signal
		if err := rows.Scan(&s.Label, &s.Value, &s.Prob); err != nil {
			return nil, err
		}
		signals = append(signals, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return signals, nil
}

func (r *TopicRepository) GetEconSignals(ctx context.Context, day string) ([]model.Signal, error) {
	return r.signalsByKind(ctx, day, model.SignalEcon)
}

func (r *TopicRepository) GetMarketSignals(ctx context.Context, day string) ([]model.Signal, error) {
	return r.signalsByKind(ctx, day, model.SignalMarket)
}
