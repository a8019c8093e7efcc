package main

import (
	"sync"

	"github.com/go-i2p/ntcp1/lib/transport/ntcp"
)

// memRegistry is a sync.Mutex-guarded session table, the simplest
// Registry that satisfies the concurrency model's requirement that
// cross-session state be safe for concurrent Add/Remove.
type memRegistry struct {
	mu       sync.Mutex
	sessions map[*ntcp.Session]struct{}
}

func newMemRegistry() *memRegistry {
	return &memRegistry{sessions: make(map[*ntcp.Session]struct{})}
}

func (r *memRegistry) AddSession(s *ntcp.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s] = struct{}{}
	log.WithField("session", s.ID()).WithField("count", len(r.sessions)).Debug("session added")
}

func (r *memRegistry) RemoveSession(s *ntcp.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, s)
	log.WithField("session", s.ID()).WithField("count", len(r.sessions)).Debug("session removed")
}

// Sessions returns a snapshot of the currently live sessions, for
// callers that need to act on all of them (such as a farewell
// broadcast before shutdown) without holding the registry lock.
func (r *memRegistry) Sessions() []*ntcp.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ntcp.Session, 0, len(r.sessions))
	for s := range r.sessions {
		out = append(out, s)
	}
	return out
}
