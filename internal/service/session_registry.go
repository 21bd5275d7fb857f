package service

import (
	"math/rand"
	"sync"

	"github.com/orariofacile/planner-wizard-api/internal/wizard"
)

// randomSeed mints a seed in the planner's accepted range.
func randomSeed() int {
	return rand.Intn(wizard.SeedMax + 1)
}

// session bundles everything the server holds for one wizard instance. The
// engine types are not goroutine-safe, so every access goes through mu; the
// lock also gives the generation endpoint its single-flight guarantee.
type session struct {
	id      string
	store   *wizard.Store
	machine *wizard.Machine

	lastPayload *wizard.PlanRequest
	lastPlan    *wizard.PlanResponse
	lastSeed    int

	generating bool
	progress   *wizard.ProgressTracker

	mu sync.Mutex
}

func newSession(id string) *session {
	return &session{
		id:      id,
		store:   wizard.NewStore(),
		machine: wizard.NewMachine(),
	}
}

// SessionRegistry is the in-memory index of live sessions. Durable state
// lives in the snapshot repository; the registry only keeps what a browser
// tab would have kept in memory.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*session)}
}

func (r *SessionRegistry) get(id string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *SessionRegistry) put(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
}

func (r *SessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len reports the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
