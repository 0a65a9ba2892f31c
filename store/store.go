package store

import (
	"sort"
	"sync"

	epic "github.com/epixode/epic-linker"
)

// Store is the state-container contract the linker targets. Implementations
// must apply dispatched actions through their reducer and notify subscribers
// after each state change.
type Store interface {
	Dispatch(act epic.Action)
	GetState() any
	Subscribe(fn func()) (unsubscribe func())
}

// Creator constructs a store from a reducer and a preloaded state.
type Creator func(reducer epic.Reducer, preloaded any) Store

// Enhancer wraps a Creator to extend the store it produces.
type Enhancer func(next Creator) Creator

// ComposeEnhancers chains enhancers so the first argument wraps outermost:
// its middleware observes dispatches before any later enhancer's.
func ComposeEnhancers(enhancers ...Enhancer) Enhancer {
	return func(next Creator) Creator {
		for i := len(enhancers) - 1; i >= 0; i-- {
			next = enhancers[i](next)
		}
		return next
	}
}

// New creates the default mutex-protected store.
func New(reducer epic.Reducer, preloaded any) Store {
	return &basicStore{
		reducer:   reducer,
		state:     preloaded,
		listeners: make(map[int]func()),
	}
}

type basicStore struct {
	state     any
	reducer   epic.Reducer
	listeners map[int]func()
	nextID    int
	mu        sync.Mutex
}

func (s *basicStore) Dispatch(act epic.Action) {
	s.mu.Lock()
	s.state = s.reducer(s.state, act)

	// Snapshot so listeners may unsubscribe (or dispatch) without deadlock.
	notify := make([]func(), 0, len(s.listeners))
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		notify = append(notify, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
}

func (s *basicStore) GetState() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *basicStore) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
