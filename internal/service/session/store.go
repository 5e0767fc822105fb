// Package session owns the in-memory conversation sessions. Sessions are
// ephemeral: they live for one process and are removed on completion, on
// explicit reset, or when the expiry janitor reclaims abandoned ones.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/netventas/visitbot/internal/model/visit"
)

// Store exposes session access for the form service and handlers.
type Store interface {
	// Acquire returns the session for phone, creating one at the start
	// state on first contact. The returned release func must be called
	// when processing ends; until then other messages for the same phone
	// block, which serializes racing webhook deliveries per number.
	Acquire(phone string) (*visit.Session, func())
	// Delete removes the session for phone, if any. Safe to call while
	// holding the phone's entry via Acquire.
	Delete(phone string)
	// Count reports the number of live sessions.
	Count() int
	// Snapshot lists live sessions without their collected answers.
	Snapshot() []visit.Session
}

type entry struct {
	mu      sync.Mutex
	sess    *visit.Session
	deleted atomic.Bool
}

// MemoryStore implements Store with a mutex-guarded map keyed by phone
// number plus a per-entry lock.
//
// Lock order is always map mutex before entry mutex, and the map mutex is
// never held while blocking on an entry. Removal is signalled through the
// entry's deleted flag so waiters on a removed entry start over.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry

	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore builds a store. A positive ttl starts a janitor goroutine
// that reclaims sessions idle for longer than ttl; zero disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	if ttl > 0 {
		go s.janitor()
	}
	return s
}

// Acquire implements Store.
func (s *MemoryStore) Acquire(phone string) (*visit.Session, func()) {
	for {
		s.mu.Lock()
		e, ok := s.entries[phone]
		if !ok {
			e = &entry{sess: visit.NewSession(phone)}
			s.entries[phone] = e
		}
		s.mu.Unlock()

		e.mu.Lock()
		// The entry may have been removed (completion, reset, expiry)
		// while we waited on its lock; never hand out a dead session.
		if e.deleted.Load() {
			e.mu.Unlock()
			continue
		}

		e.sess.UpdatedAt = time.Now().UTC()
		return e.sess, e.mu.Unlock
	}
}

// Delete implements Store.
func (s *MemoryStore) Delete(phone string) {
	s.mu.Lock()
	e, ok := s.entries[phone]
	if ok {
		delete(s.entries, phone)
	}
	s.mu.Unlock()

	if ok {
		e.deleted.Store(true)
	}
}

// Count implements Store.
func (s *MemoryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot implements Store. Entries locked by an in-flight message are
// skipped rather than waited for; the view is advisory.
func (s *MemoryStore) Snapshot() []visit.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]visit.Session, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.mu.TryLock() {
			continue
		}
		out = append(out, visit.Session{
			Phone:     e.sess.Phone,
			State:     e.sess.State,
			CreatedAt: e.sess.CreatedAt,
			UpdatedAt: e.sess.UpdatedAt,
		})
		e.mu.Unlock()
	}
	return out
}

// Close stops the janitor. Live sessions are discarded with the process.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor() {
	interval := s.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.expire(time.Now().UTC())
		}
	}
}

// expire drops sessions idle for longer than the ttl. Entries currently
// being processed hold their lock and are skipped until the next sweep.
func (s *MemoryStore) expire(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for phone, e := range s.entries {
		if !e.mu.TryLock() {
			continue
		}
		if now.Sub(e.sess.UpdatedAt) > s.ttl {
			delete(s.entries, phone)
			e.deleted.Store(true)
		}
		e.mu.Unlock()
	}
}
