package rendercache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/msanchezgrice/futurenews-sub001/internal/model"
)

type fakeStore struct {
	mu      sync.Mutex
	entries map[string]*model.RenderedArticle
	gets    int
	sets    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]*model.RenderedArticle)}
}

func (f *fakeStore) Get(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	art, ok := f.entries[storyID]
	if !ok {
		return nil, nil
	}
	if fingerprint != "" && art.CurationGeneratedAt != fingerprint {
		return nil, nil
	}
	return art, nil
}

func (f *fakeStore) Set(ctx context.Context, storyID, fingerprint string, art *model.RenderedArticle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.entries[storyID] = art
	return nil
}

func renderedArticle(storyID, fingerprint string) *model.RenderedArticle {
	return &model.RenderedArticle{
		StoryID:             storyID,
		Section:             "U.S.",
		Title:               "The Rate Path Bends",
		Dek:                 "A look at the rate path.",
		Body:                "Body text.",
		EditionDate:         time.Date(2028, 3, 14, 0, 0, 0, 0, time.UTC),
		ModelUsed:           "deterministic",
		CurationGeneratedAt: fingerprint,
		RenderedAt:          time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestLoaderBuildsOnMissAndCaches(t *testing.T) {
	store := newFakeStore()
	var builds int32
	loader := NewLoader(store, func(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error) {
		atomic.AddInt32(&builds, 1)
		return renderedArticle(storyID, "2026-03-14T09:30:00Z"), nil
	}, nil)

	art, err := loader.GetArticle(context.Background(), "2026-03-14:y2:us:rates-path", "")
	if err != nil {
		t.Fatalf("GetArticle returned error: %v", err)
	}
	if art.StoryID != "2026-03-14:y2:us:rates-path" {
		t.Errorf("got story id %q, want %q", art.StoryID, "2026-03-14:y2:us:rates-path")
	}
	if n := atomic.LoadInt32(&builds); n != 1 {
		t.Errorf("got %d builds, want 1", n)
	}
	if store.sets != 1 {
		t.Errorf("got %d store writes, want 1", store.sets)
	}

	// Second call is served from the in-process mirror.
	if _, err := loader.GetArticle(context.Background(), "2026-03-14:y2:us:rates-path", ""); err != nil {
		t.Fatalf("GetArticle returned error: %v", err)
	}
	if store.gets != 1 {
		t.Errorf("got %d store reads, want 1", store.gets)
	}
	if n := atomic.LoadInt32(&builds); n != 1 {
		t.Errorf("got %d builds after mirror hit, want 1", n)
	}
}

func TestLoaderServesDurableStoreWithoutBuilding(t *testing.T) {
	store := newFakeStore()
	store.entries["story"] = renderedArticle("story", "2026-03-14T09:30:00Z")

	loader := NewLoader(store, func(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error) {
		t.Error("build should not run when the store has a usable entry")
		return nil, errors.New("unexpected build")
	}, nil)

	art, err := loader.GetArticle(context.Background(), "story", "2026-03-14T09:30:00Z")
	if err != nil {
		t.Fatalf("GetArticle returned error: %v", err)
	}
	if art.Title != "The Rate Path Bends" {
		t.Errorf("got title %q, want %q", art.Title, "The Rate Path Bends")
	}
}

func TestLoaderRebuildsOnFingerprintMismatch(t *testing.T) {
	store := newFakeStore()
	store.entries["story"] = renderedArticle("story", "2026-03-13T09:30:00Z")

	var builds int32
	loader := NewLoader(store, func(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error) {
		atomic.AddInt32(&builds, 1)
		return renderedArticle(storyID, fingerprint), nil
	}, nil)

	art, err := loader.GetArticle(context.Background(), "story", "2026-03-14T09:30:00Z")
	if err != nil {
		t.Fatalf("GetArticle returned error: %v", err)
	}
	if art.CurationGeneratedAt != "2026-03-14T09:30:00Z" {
		t.Errorf("got fingerprint %q, want %q", art.CurationGeneratedAt, "2026-03-14T09:30:00Z")
	}
	if n := atomic.LoadInt32(&builds); n != 1 {
		t.Errorf("got %d builds, want 1", n)
	}
	if got := store.entries["story"].CurationGeneratedAt; got != "2026-03-14T09:30:00Z" {
		t.Errorf("store kept fingerprint %q, want %q", got, "2026-03-14T09:30:00Z")
	}
}

func TestLoaderSharesOneBuildAcrossConcurrentCallers(t *testing.T) {
	store := newFakeStore()
	gate := make(chan struct{})
	started := make(chan struct{})
	var builds int32

	loader := NewLoader(store, func(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error) {
		close(started)
		<-gate
		atomic.AddInt32(&builds, 1)
		return renderedArticle(storyID, "2026-03-14T09:30:00Z"), nil
	}, nil)

	results := make(chan *model.RenderedArticle, 2)
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			art, err := loader.GetArticle(context.Background(), "story", "")
			results <- art
			errs <- err
		}()
	}

	<-started
	// Give the second caller time to join the in-flight build before
	// releasing it.
	time.Sleep(50 * time.Millisecond)
	close(gate)

	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("GetArticle returned error: %v", err)
		}
		if art := <-results; art == nil || art.StoryID != "story" {
			t.Errorf("got article %+v, want story id %q", art, "story")
		}
	}
	if n := atomic.LoadInt32(&builds); n != 1 {
		t.Errorf("got %d builds for concurrent callers, want 1", n)
	}
}

func TestLoaderPropagatesBuildError(t *testing.T) {
	store := newFakeStore()
	wantErr := errors.New("backend unavailable")
	loader := NewLoader(store, func(ctx context.Context, storyID, fingerprint string) (*model.RenderedArticle, error) {
		return nil, wantErr
	}, nil)

	if _, err := loader.GetArticle(context.Background(), "story", ""); !errors.Is(err, wantErr) {
		t.Errorf("got error %v, want %v", err, wantErr)
	}
	if store.sets != 0 {
		t.Errorf("got %d store writes after failed build, want 0", store.sets)
	}
}
