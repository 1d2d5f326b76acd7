package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// Event is delivered to subscribers after each command completes.
type Event struct {
	Command Command
	State   State
	// DocumentChanged is false for commands that left the document as it was,
	// such as SetAnalysis or an update with an unknown id.
	DocumentChanged bool
}

// Store is the single writer of the live document. Dispatch calls are serialised:
// each command completes and its subscribers are notified before the next is accepted.
// Subscribers run on the dispatching goroutine and must not call Dispatch themselves.
type Store struct {
	dispatchMu sync.Mutex

	mu    sync.RWMutex
	state State

	newID func() string

	subsMu  sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithResume starts the store with r instead of a blank document.
func WithResume(r types.Resume) Option {
	return func(s *Store) { s.state = InitialState(r) }
}

// WithIDGenerator replaces the id source for added entries.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New creates a store holding a blank document.
func New(opts ...Option) *Store {
	s := &Store{
		state: InitialState(types.NewResume()),
		newID: NewEntryID,
		subs:  make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewEntryID returns a creation-ordered identifier (UUIDv7, millisecond timestamp prefix).
func NewEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Resume returns a copy of the current document.
func (s *Store) Resume() types.Resume {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Resume.Clone()
}

// Dispatch applies cmd and returns the resulting snapshot.
func (s *Store) Dispatch(cmd Command) State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.RLock()
	current := s.state
	s.mu.RUnlock()

	next := Reduce(current, cmd, s.newID)

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.notify(Event{
		Command:         cmd,
		State:           next.Clone(),
		DocumentChanged: next.DocumentVersion != current.DocumentVersion,
	})
	return next.Clone()
}

// DispatchAll applies commands in order and returns the final snapshot.
func (s *Store) DispatchAll(cmds []Command) State {
	st := s.Snapshot()
	for _, cmd := range cmds {
		st = s.Dispatch(cmd)
	}
	return st
}

// Subscribe registers fn for every future event. The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) notify(ev Event) {
	s.subsMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
