package annotation

import (
	"errors"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Registry holds the open editing sessions by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	lastUsed map[string]time.Time
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		lastUsed: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Open starts a new, empty session for doc.
func (r *Registry) Open(doc Document) *Session {
	s := NewSession(doc)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.lastUsed[s.ID] = r.now()
	r.mu.Unlock()
	return s
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	r.lastUsed[id] = r.now()
	return s, nil
}

// Close discards a session and everything it holds.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	delete(r.lastUsed, id)
	return nil
}

// Sweep closes every session not used for longer than maxIdle and returns
// how many were closed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-maxIdle)
	closed := 0
	for id, used := range r.lastUsed {
		if used.Before(cutoff) {
			delete(r.sessions, id)
			delete(r.lastUsed, id)
			closed++
		}
	}
	return closed
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
