package task

import (
	"context"
	"sync"

	"loopa-cli/internal/app/errors"
	"loopa-cli/internal/app/model"
)

// Fetcher is the slice of the API client the store needs.
type Fetcher interface {
	GetTask(ctx context.Context, taskID string) (model.Task, error)
}

// State is a point-in-time snapshot of the store.
type State struct {
	Current *model.Task
	Loading bool
	Err     string
}

// Store holds the client's view of one task: the last server-reported state
// plus loading/error status. Loads are not deduplicated; concurrent loads may
// complete out of order, so every load carries a sequence token and a stale
// completion never overwrites a fresher one.
type Store struct {
	fetcher Fetcher

	mu      sync.Mutex
	current *model.Task
	loading bool
	errMsg  string
	issued  uint64
	applied uint64
}

// NewStore creates a store backed by the given fetcher.
func NewStore(fetcher Fetcher) *Store {
	return &Store{fetcher: fetcher}
}

// Load fetches the task and applies the result. On success the fetched task
// replaces the current one; on failure the current task is kept and the error
// surface is recorded. A result whose token is lower than the highest applied
// token is dropped, and a load resolving after its context was torn down
// mutates nothing.
func (s *Store) Load(ctx context.Context, taskID string) (model.Task, error) {
	s.mu.Lock()
	s.issued++
	token := s.issued
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	fetched, err := s.fetcher.GetTask(ctx, taskID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return fetched, ctx.Err()
	}
	if token == s.issued {
		s.loading = false
	}
	if token > s.applied {
		s.applied = token
		if err != nil {
			s.errMsg = errors.Surface(err, "Failed to load task")
		} else {
			t := fetched
			s.current = &t
		}
	}
	return fetched, err
}

// Clear resets the current task and error. Loading is left untouched, so a
// snapshot taken mid-flight still reports the pending load. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.errMsg = ""
}

// Current returns a copy of the tracked task, if any.
func (s *Store) Current() (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.Task{}, false
	}
	return *s.current, true
}

// Loading reports whether a load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded error surface, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Snapshot returns the full store state at once.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := State{Loading: s.loading, Err: s.errMsg}
	if s.current != nil {
		t := *s.current
		state.Current = &t
	}
	return state
}
