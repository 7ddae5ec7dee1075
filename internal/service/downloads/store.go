// Package downloads keeps rendered reports in memory until they are fetched or expire.
package downloads

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Download is a rendered document waiting to be fetched.
type Download struct {
	Filename    string
	ContentType string
	Content     []byte
	ExpiresAt   time.Time
}

// Store maps download tokens to rendered documents.
type Store struct {
	mu    sync.Mutex
	items map[string]Download
	now   func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		items: make(map[string]Download),
		now:   time.Now,
	}
}

// Put stores a copy of content for ttl and returns its token.
func (s *Store) Put(content []byte, filename, contentType string, ttl time.Duration) (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	token := uuid.NewString()
	expiresAt := now.Add(ttl)
	s.items[token] = Download{
		Filename:    filename,
		ContentType: contentType,
		Content:     append([]byte(nil), content...),
		ExpiresAt:   expiresAt,
	}
	return token, expiresAt
}

// Get returns the download for token unless it is unknown or expired.
func (s *Store) Get(token string) (Download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.items[token]
	if !ok {
		return Download{}, false
	}
	if s.now().After(d.ExpiresAt) {
		delete(s.items, token)
		return Download{}, false
	}
	return d, true
}

// Sweep drops every entry expired at now and reports how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeExpiredLocked(now)
}

// Len is the number of stored entries, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) purgeExpiredLocked(now time.Time) int {
	removed := 0
	for token, d := range s.items {
		if now.After(d.ExpiresAt) {
			delete(s.items, token)
			removed++
		}
	}
	return removed
}
