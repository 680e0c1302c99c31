package results

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"motordiag/internal/engine"
	"motordiag/internal/model"
)

type Entry struct {
	ID      uuid.UUID          `json:"id"`
	Created time.Time          `json:"created"`
	Params  engine.Params      `json:"params"`
	Result  *model.SheetResult `json:"result"`
}

// Store is a bounded in-memory ring of completed runs, oldest evicted
// first. Nothing is persisted.
type Store struct {
	mu    sync.RWMutex
	buf   []Entry
	limit int
}

func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = 200
	}
	return &Store{limit: limit}
}

func (s *Store) Add(p engine.Params, res *model.SheetResult) Entry {
	entry := Entry{
		ID:      uuid.New(),
		Created: time.Now().UTC(),
		Params:  p,
		Result:  res,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buf) < s.limit {
		s.buf = append(s.buf, entry)
		return entry
	}
	copy(s.buf, s.buf[1:])
	s.buf[len(s.buf)-1] = entry
	return entry
}

func (s *Store) List(limit int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.buf) {
		limit = len(s.buf)
	}
	out := make([]Entry, 0, limit)
	for i := len(s.buf) - limit; i < len(s.buf); i++ {
		out = append(out, s.buf[i])
	}
	return out
}

func (s *Store) Get(id uuid.UUID) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.buf {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = nil
}
