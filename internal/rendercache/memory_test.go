package rendercache

import (
	"testing"
	"time"
)

func TestMemoryHitRequiresFingerprintMatch(t *testing.T) {
	m := NewMemory(ArticleTTL)
	m.Set("2026-03-14:y2:us:rates-path", "2026-03-14T09:30:00Z", "payload")

	if _, ok := m.Get("2026-03-14:y2:us:rates-path", "2026-03-15T09:30:00Z"); ok {
		t.Error("expected miss on fingerprint mismatch")
	}
	v, ok := m.Get("2026-03-14:y2:us:rates-path", "2026-03-14T09:30:00Z")
	if !ok {
		t.Fatal("expected hit on matching fingerprint")
	}
	if v.(string) != "payload" {
		t.Errorf("got %q, want %q", v, "payload")
	}
}

func TestMemoryEmptyFingerprintAcceptsAnyEntry(t *testing.T) {
	m := NewMemory(ArticleTTL)
	m.Set("key", "2026-03-14T09:30:00Z", "payload")

	if _, ok := m.Get("key", ""); !ok {
		t.Error("expected empty fingerprint to accept the entry")
	}
}

func TestMemoryExpiresOnTTL(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	clock := base
	m := NewMemory(20 * time.Minute)
	m.now = func() time.Time { return clock }

	m.Set("key", "fp", "payload")

	clock = base.Add(19 * time.Minute)
	if _, ok := m.Get("key", "fp"); !ok {
		t.Error("expected hit inside the TTL window")
	}

	clock = base.Add(21 * time.Minute)
	if _, ok := m.Get("key", "fp"); ok {
		t.Error("expected miss past the TTL window")
	}
}

func TestMemorySetReplacesEntryAndRestartsTTL(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	clock := base
	m := NewMemory(20 * time.Minute)
	m.now = func() time.Time { return clock }

	m.Set("key", "fp-old", "old")
	clock = base.Add(15 * time.Minute)
	m.Set("key", "fp-new", "new")

	if _, ok := m.Get("key", "fp-old"); ok {
		t.Error("expected old fingerprint to miss after replacement")
	}

	clock = base.Add(30 * time.Minute)
	v, ok := m.Get("key", "fp-new")
	if !ok {
		t.Fatal("expected replacement entry to carry a fresh TTL")
	}
	if v.(string) != "new" {
		t.Errorf("got %q, want %q", v, "new")
	}
}

func TestMemoryMissOnUnknownKey(t *testing.T) {
	m := NewMemory(ArticleTTL)
	if _, ok := m.Get("absent", ""); ok {
		t.Error("expected miss on unknown key")
	}
}
