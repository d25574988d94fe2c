package rendercache

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

type articleStore interface {
	Get(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error)
	Set(ctx context.Context, storyID, fingerprint string, art *model.RenderedArticle) error
}

// BuildFunc materializes an article when no cached copy is usable.
type BuildFunc func(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error)

// Loader is the read-through path for article renders: in-process
// mirror, then the durable store, then one materialization shared by
// every concurrent caller of the same story id.
type Loader struct {
	store  articleStore
	memory *Memory
	build  BuildFunc
	group  singleflight.Group
	log    *slog.Logger
}

func NewLoader(store articleStore, build BuildFunc, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		store:  store,
		memory: NewMemory(ArticleTTL),
		build:  build,
		log:    log,
	}
}

// GetArticle returns the current render for a story id. Callers pass
// the fingerprint of the curation they are serving, or "" to accept
// whatever is cached. Concurrent calls for the same story id while no
// usable copy exists share a single build; the shared result is
// dropped from the in-flight set as soon as it resolves, so a later
// call starts fresh.
func (l *Loader) GetArticle(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error) {
	if v, ok := l.memory.Get(storyID, fingerprint); ok {
		return v.(*model.RenderedArticle), nil
	}

	art, err := l.store.Get(ctx, storyID, fingerprint)
	if err != nil {
		return nil, err
	}
	if art != nil {
		l.memory.Set(storyID, art.CurationGeneratedAt, art)
		return art, nil
	}

	v, err, _ := l.group.Do(storyID, func() (interface{}, error) {
		built, err := l.build(ctx, storyID, fingerprint)
		if err != nil {
			return nil, err
		}
		if err := l.store.Set(ctx, storyID, built.CurationGeneratedAt, built); err != nil {
			l.log.Warn("render cache write failed", "story_id", storyID, "error", err)
		}
		l.memory.Set(storyID, built.CurationGeneratedAt, built)
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.RenderedArticle), nil
}
