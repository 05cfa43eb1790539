// Package session holds the in-memory session store. Sessions live for the
// process lifetime; concurrent access to one session is serialized by a
// per-session lock so interleaved turns never corrupt a transcript.
package session

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sells-group/intake-engine/internal/model"
)

// Store is the in-memory session registry.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	session *model.Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Create mints a session with a fresh id and registers it.
func (st *Store) Create(lang model.Language) *model.Session {
	s := model.NewSession(uuid.NewString(), lang)

	st.mu.Lock()
	st.entries[s.ID] = &entry{session: s}
	st.mu.Unlock()

	return s
}

// Acquire locks the session with the given id and returns it together with
// a release func. The caller must call release when done mutating. The
// second return is false when the id is unknown.
func (st *Store) Acquire(id string) (*model.Session, func(), bool) {
	st.mu.RLock()
	e, ok := st.entries[id]
	st.mu.RUnlock()
	if !ok {
		return nil, nil, false
	}

	e.mu.Lock()
	return e.session, e.mu.Unlock, true
}

// Get returns a point-in-time copy of the session, safe to read without
// holding its lock.
func (st *Store) Get(id string) (*model.Session, bool) {
	s, release, ok := st.Acquire(id)
	if !ok {
		return nil, false
	}
	defer release()

	snap := *s
	return &snap, true
}

// All returns point-in-time copies of every session.
func (st *Store) All() []*model.Session {
	st.mu.RLock()
	ids := make([]string, 0, len(st.entries))
	for id := range st.entries {
		ids = append(ids, id)
	}
	st.mu.RUnlock()

	out := make([]*model.Session, 0, len(ids))
	for _, id := range ids {
		if s, ok := st.Get(id); ok {
			out = append(out, s)
		}
	}
	return out
}

// Stats summarizes the store for the operational endpoint.
type Stats struct {
	Total      int                    `json:"total_sessions"`
	ByStatus   map[model.Status]int   `json:"by_status"`
	ByRating   map[model.Rating]int   `json:"by_rating"`
	ByLanguage map[model.Language]int `json:"by_language"`
	HotLeads   int                    `json:"hot_leads"`
	Escalated  int                    `json:"escalated"`
	RolesUsed  []string               `json:"roles_used"`
}

// Stats computes store-wide counters.
func (st *Store) Stats() Stats {
	stats := Stats{
		ByStatus:   make(map[model.Status]int),
		ByRating:   make(map[model.Rating]int),
		ByLanguage: make(map[model.Language]int),
	}

	seen := make(map[string]bool)
	for _, s := range st.All() {
		stats.Total++
		stats.ByStatus[s.Status]++
		stats.ByLanguage[s.Language]++
		if s.Status == model.StatusEscalated {
			stats.Escalated++
		}
		if s.LeadScore != nil {
			stats.ByRating[s.LeadScore.Rating]++
			if s.LeadScore.Rating == model.RatingHot {
				stats.HotLeads++
			}
		}
		for _, name := range s.AgentsUsed {
			if !seen[name] {
				seen[name] = true
				stats.RolesUsed = append(stats.RolesUsed, name)
			}
		}
	}
	sort.Strings(stats.RolesUsed)
	return stats
}

// Reset abandons the session with the given id and mints a fresh one in
// the same language. The old session is kept for audit. Returns false when
// the id is unknown.
func (st *Store) Reset(id string) (*model.Session, bool) {
	old, release, ok := st.Acquire(id)
	if !ok {
		return nil, false
	}
	lang := old.Language
	release()

	return st.Create(lang), true
}
