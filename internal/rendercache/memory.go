package rendercache

import (
	"sync"
	"time"
)

// In-process mirrors sit in front of the durable store and expire on
// their own clock, independent of fingerprints.
const (
	EditionTTL = 60 * time.Minute
	ArticleTTL = 20 * time.Minute
)

type memoryEntry struct {
	fingerprint string
	value       interface{}
	expiresAt   time.Time
}

// Memory is a process-local cache. A hit requires both an unexpired
// TTL and a fingerprint match, so a stale mirror can delay a refetch
// but never resurrect a superseded payload past its window.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value when it is unexpired and the caller's
// fingerprint matches the stored stamp. An empty fingerprint accepts
// any unexpired entry.
func (m *Memory) Get(key, fingerprint string) (interface{}, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.now().After(e.expiresAt) {
		return nil, false
	}
	if fingerprint != "" && e.fingerprint != fingerprint {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key, replacing any prior entry and
// restarting its TTL.
func (m *Memory) Set(key, fingerprint string, value interface{}) {
	m.mu.Lock()
	m.entries[key] = memoryEntry{
		fingerprint: fingerprint,
		value:       value,
		expiresAt:   m.now().Add(m.ttl),
	}
	m.mu.Unlock()
}
