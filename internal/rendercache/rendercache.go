// Package rendercache stores materialized article payloads keyed by
// story id and stamped with the curation fingerprint that seeded them.
// A stamp mismatch at read time is a miss, never an error: regenerating
// a day's curation supersedes every derived render without an explicit
// eviction pass.
package rendercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

// ErrStoryNotFound is returned by build funcs when the story id has no
// candidate behind it; the HTTP layer maps it to a 404.
var ErrStoryNotFound = errors.New("story not found")

const renderKeyPrefix = "futurenews:render:"

type entry struct {
	Fingerprint string                `json:"fingerprint"`
	Article     model.RenderedArticle `json:"article"`
}

// Store is the durable render cache.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get returns the cached render for a story id, or nil on miss. An
// empty caller fingerprint accepts whatever entry is present; a
// non-empty one must match the stored stamp exactly.
func (s *Store) Get(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error) {
	raw, err := s.rdb.Get(ctx, renderKeyPrefix+storyID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("corrupt render entry for %s: %w", storyID, err)
	}
	if fingerprint != "" && e.Fingerprint != fingerprint {
		return nil, nil
	}
	return &e.Article, nil
}

// Set stores a render, overwriting any prior entry for the story id.
// Last writer wins; the fingerprint check at read time keeps a late
// stale write from ever being served as current.
func (s *Store) Set(ctx context.Context, storyID, fingerprint string, art *model.RenderedArticle) error {
	raw, err := json.Marshal(entry{Fingerprint: fingerprint, Article: *art})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, renderKeyPrefix+storyID, raw, 0).Err()
}
