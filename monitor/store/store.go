// Package store holds the latest process snapshot and the refresh settings
// shared between the refresh loop and request handlers.
package store

import (
	"sync"

	"github.com/hightemp/process-manager/monitor/domain"
)

// Store guards the snapshot, refresh config and current user with a single
// mutex. No method blocks on I/O while holding it.
type Store struct {
	mu          sync.Mutex
	snapshot    domain.Snapshot
	config      domain.RefreshConfig
	currentUser string
}

func New(cfg domain.RefreshConfig) *Store {
	cfg.IntervalMs = domain.ClampInterval(cfg.IntervalMs)
	return &Store{
		snapshot: domain.Snapshot{},
		config:   cfg,
	}
}

// Read returns a deep copy of the current snapshot together with the user it
// was collected for, taken in one critical section.
func (s *Store) Read() (domain.Snapshot, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone(), s.currentUser
}

func (s *Store) Lookup(pid uint32) (domain.ProcessRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.snapshot[pid]
	if !ok {
		return domain.ProcessRecord{}, false
	}
	return rec.Clone(), true
}

func (s *Store) Contains(pid uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.snapshot[pid]
	return ok
}

// Replace installs snap as the current snapshot. The store takes ownership of
// snap; callers must not modify it afterwards.
func (s *Store) Replace(snap domain.Snapshot, currentUser string) {
	s.Swap(snap, currentUser)
}

// Swap installs next and returns the snapshot it replaced.
func (s *Store) Swap(next domain.Snapshot, currentUser string) domain.Snapshot {
	if next == nil {
		next = domain.Snapshot{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshot
	s.snapshot = next
	s.currentUser = currentUser
	return prev
}

func (s *Store) Config() domain.RefreshConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SetInterval clamps ms and stores it. It returns the value actually stored.
func (s *Store) SetInterval(ms uint64) uint64 {
	clamped := domain.ClampInterval(ms)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.IntervalMs = clamped
	return clamped
}

func (s *Store) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Paused = paused
}

func (s *Store) CurrentUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser
}
