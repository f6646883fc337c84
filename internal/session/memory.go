package session

import (
	"context"
	"sync"
	"time"

	"github.com/dvoronin/membergate/internal/model"
)

var _ model.SessionStore = (*MemoryStore)(nil)

// janitorInterval is how often the background sweep reaps expired entries.
const janitorInterval = time.Minute

type memoryEntry struct {
	payload   string
	expiresAt time.Time
}

// MemoryStore is a process-local model.SessionStore for development and
// tests. Sessions do not survive a restart. A background sweep removes
// expired entries so abandoned sessions do not accumulate.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	done    chan struct{}
}

// NewMemoryStore creates an empty MemoryStore and starts its expiry sweep.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go s.janitor(janitorInterval)
	return s
}

// Close stops the expiry sweep. The store remains usable afterwards, but
// expired entries are then reaped only on access.
func (s *MemoryStore) Close() {
	close(s.done)
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.reapExpired()
		}
	}
}

// reapExpired drops every expired entry, including sessions that are never
// read again.
func (s *MemoryStore) reapExpired() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// Set stores the payload under the session ID with the given TTL.
func (s *MemoryStore) Set(_ context.Context, sessionID, payload string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{
		payload:   payload,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Get returns the payload for the session ID, or model.ErrNotFound if the
// entry is missing or expired. Expired entries are reaped on access.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok {
		return "", model.ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return "", model.ErrNotFound
	}

	return entry.payload, nil
}

// Delete removes the session ID. Deleting a missing entry is not an error.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
