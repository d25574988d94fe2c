package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

// CurationRepository persists the daily cycle payload: one row per day,
// overwritten whenever the day is regenerated.
type CurationRepository struct {
	db *sql.DB
}

func NewCurationRepository(db *sql.DB) *CurationRepository {
	return &CurationRepository{db: db}
}

func (r *CurationRepository) SaveDaily(ctx context.Context, cur *model.DailyCuration) error {
	payload, err := json.Marshal(cur)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO daily_curation(day, generated_at, mode, payload)
		VALUES($1, $2, $3, $4)
		ON CONFLICT (day) DO UPDATE SET
			generated_at = EXCLUDED.generated_at,
			mode = EXCLUDED.mode,
			payload = EXCLUDED.payload
	`, cur.Day, cur.GeneratedAt, cur.Mode, payload)
	return err
}

func (r *CurationRepository) GetDaily(ctx context.Context, day string) (*model.DailyCuration, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM daily_curation WHERE day = $1
	`, day).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cur model.DailyCuration
	if err := json.Unmarshal(payload, &cur); err != nil {
		return nil, err
	}
	return &cur, nil
}

// LatestFingerprint returns the generated_at stamp of a day's current
// cycle, or "" when the day has never been generated.
func (r *CurationRepository) LatestFingerprint(ctx context.Context, day string) (string, error) {
	var generatedAt string
	err := r.db.QueryRowContext(ctx, `
		SELECT generated_at FROM daily_curation WHERE day = $1
	`, day).Scan(&generatedAt)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return generatedAt, nil
}
