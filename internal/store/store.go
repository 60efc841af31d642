// Package store persists tracker snapshots as JSON documents under flat
// string keys. Storage failures never reach callers: the store logs them,
// warns once, and keeps serving the session from memory.
package store

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Snapshot keys.
const (
	KeyExpenses      = "expenses"
	KeySavingsGoals  = "savingsGoals"
	KeyBalance       = "balance"
	KeySavings       = "savings"
	KeyTasks         = "tasks"
	KeyHabits        = "habits"
	KeyHabitProgress = "habitProgress"
	KeyGoals         = "goals"
	KeyActivities    = "activities"
)

// Medium is a synchronous string key-value backend.
type Medium interface {
	Read(key string) (string, bool, error)
	Write(key, value string) error
	Delete(key string) error
	Close() error
}

// Store serializes values to JSON on top of a Medium.
type Store struct {
	medium    Medium
	memory    *Memory
	degraded  bool
	onFailure func(error)
}

// New wraps m. A nil medium gives a store that is memory-only from the start.
func New(m Medium) *Store {
	return &Store{medium: m, memory: NewMemory(), degraded: m == nil}
}

// OnFailure registers the hook called when the store falls back to memory.
func (s *Store) OnFailure(fn func(error)) {
	s.onFailure = fn
}

// Degraded reports whether writes are currently kept in memory only.
func (s *Store) Degraded() bool {
	return s.degraded
}

// Set writes value under key and reports whether it reached the medium.
func (s *Store) Set(key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		log.WithError(err).WithField("key", key).Error("store: encoding value")
		return false
	}

	// The session copy is always current, whatever happens to the medium.
	_ = s.memory.Write(key, string(data))
	if s.degraded {
		log.WithField("key", key).Debug("store: degraded, kept in memory only")
		return false
	}

	if err := s.medium.Write(key, string(data)); err != nil {
		s.degrade(err)
		return false
	}
	return true
}

// Remove deletes key, best effort.
func (s *Store) Remove(key string) {
	_ = s.memory.Delete(key)
	if s.degraded {
		return
	}
	if err := s.medium.Delete(key); err != nil {
		s.degrade(err)
	}
}

// Close releases the medium.
func (s *Store) Close() error {
	if s.medium == nil {
		return nil
	}
	return s.medium.Close()
}

func (s *Store) read(key string) (string, bool) {
	if raw, ok, _ := s.memory.Read(key); ok {
		return raw, true
	}
	if s.degraded {
		return "", false
	}
	raw, ok, err := s.medium.Read(key)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("store: read failed, using default")
		return "", false
	}
	return raw, ok
}

func (s *Store) degrade(err error) {
	log.WithError(err).Warn("store: storage unavailable, continuing in memory")
	if s.degraded {
		return
	}
	s.degraded = true
	if s.onFailure != nil {
		s.onFailure(fmt.Errorf("storage unavailable: %w", err))
	}
}

// Get decodes the value under key, returning def when the key is missing
// or its contents cannot be decoded.
func Get[T any](s *Store, key string, def T) T {
	raw, ok := s.read(key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.WithError(err).WithField("key", key).Warn("store: discarding unreadable value")
		return def
	}
	return v
}
