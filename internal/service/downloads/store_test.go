package downloads

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)}
	s := NewStore()
	s.now = clock.Now
	return s, clock
}

func TestStore_PutGet(t *testing.T) {
	s, clock := newTestStore()

	content := []byte("%PDF-1.4 body")
	token, expiresAt := s.Put(content, "relatorio_inmilk.pdf", "application/pdf", time.Minute)
	require.NotEmpty(t, token)
	assert.Equal(t, clock.Now().Add(time.Minute), expiresAt)

	content[0] = 'X'

	d, ok := s.Get(token)
	require.True(t, ok)
	assert.Equal(t, "relatorio_inmilk.pdf", d.Filename)
	assert.Equal(t, "application/pdf", d.ContentType)
	assert.Equal(t, "%PDF-1.4 body", string(d.Content), "store keeps its own copy")

	_, ok = s.Get("unknown")
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	s, clock := newTestStore()

	token, _ := s.Put([]byte("a"), "a.pdf", "application/pdf", time.Minute)
	clock.Advance(time.Minute)
	_, ok := s.Get(token)
	assert.True(t, ok, "still valid at exactly the expiry instant")

	clock.Advance(time.Second)
	_, ok = s.Get(token)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStore_PutPurgesExpired(t *testing.T) {
	s, clock := newTestStore()

	s.Put([]byte("a"), "a.pdf", "application/pdf", time.Minute)
	clock.Advance(2 * time.Minute)
	s.Put([]byte("b"), "b.pdf", "application/pdf", time.Minute)

	assert.Equal(t, 1, s.Len())
}

func TestStore_Sweep(t *testing.T) {
	s, clock := newTestStore()

	s.Put([]byte("a"), "a.pdf", "application/pdf", time.Minute)
	s.Put([]byte("b"), "b.pdf", "application/pdf", time.Hour)

	assert.Equal(t, 0, s.Sweep(clock.Now()))
	assert.Equal(t, 1, s.Sweep(clock.Now().Add(30*time.Minute)))
	assert.Equal(t, 1, s.Len())
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, _ := s.Put([]byte("x"), "x.pdf", "application/pdf", time.Minute)
			_, ok := s.Get(token)
			assert.True(t, ok)
			s.Sweep(time.Now())
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
