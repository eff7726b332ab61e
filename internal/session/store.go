package session

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"Airflow/internal/calc/fan"
	"Airflow/internal/calc/premium/recommend"
	"Airflow/internal/calc/template"
)

// Store keeps sessions in memory for the life of the process. Callers only
// ever see copies.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func (st *Store) Create(owner int) Session {
	now := st.now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		Owner:     owner,
		Template:  template.None,
		Layout:    fan.Partition(nil),
		Strategy:  recommend.StrategyAuto,
		CreatedAt: now,
		UpdatedAt: now,
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s.Clone()
}

func (st *Store) Get(owner int, id string) (Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok || s.Owner != owner {
		return Session{}, ErrNotFound
	}
	return s.Clone(), nil
}

// List returns the owner's sessions, most recently updated first.
func (st *Store) List(owner int) []Session {
	st.mu.RLock()
	out := make([]Session, 0)
	for _, s := range st.sessions {
		if s.Owner == owner {
			out = append(out, s.Clone())
		}
	}
	st.mu.RUnlock()
	slices.SortFunc(out, func(a, b Session) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Update applies fn to a copy and stores it only if fn succeeds.
func (st *Store) Update(owner int, id string, fn func(*Session) error) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	cur, ok := st.sessions[id]
	if !ok || cur.Owner != owner {
		return Session{}, ErrNotFound
	}
	next := cur.Clone()
	if err := fn(&next); err != nil {
		return Session{}, err
	}
	next.ID, next.Owner, next.CreatedAt = cur.ID, cur.Owner, cur.CreatedAt
	next.UpdatedAt = st.now().UTC()
	st.sessions[id] = &next
	return next.Clone(), nil
}

func (st *Store) Delete(owner int, id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok || s.Owner != owner {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}
