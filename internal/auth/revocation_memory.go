package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryRevocationStore is a process-local RevocationStore for tests and
// single-node development. Entries expire lazily on read.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // token hash -> expiry
	cutoffs map[int64]cutoffEntry
	now     func() time.Time
}

type cutoffEntry struct {
	cutoff time.Time
	expiry time.Time
}

// NewMemoryRevocationStore returns an empty in-memory store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		revoked: make(map[string]time.Time),
		cutoffs: make(map[int64]cutoffEntry),
		now:     time.Now,
	}
}

func (s *MemoryRevocationStore) RevokeToken(_ context.Context, rawToken string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[hashToken(rawToken)] = s.now().Add(ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, rawToken string) bool {
	key := hashToken(rawToken)
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.revoked[key]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.revoked, key)
		return false
	}
	return true
}

func (s *MemoryRevocationStore) RevokeAllForUser(_ context.Context, userID int64, ttl time.Duration) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cutoffs[userID] = cutoffEntry{cutoff: now, expiry: now.Add(ttl)}
	return nil
}

func (s *MemoryRevocationStore) IsLoggedOutSince(_ context.Context, userID int64, issuedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cutoffs[userID]
	if !ok {
		return false
	}
	if s.now().After(entry.expiry) {
		delete(s.cutoffs, userID)
		return false
	}
	return entry.cutoff.After(issuedAt)
}
