package store

import (
	epic "github.com/epixode/epic-linker"
)

// Dispatcher is one stage of the dispatch chain.
type Dispatcher func(act epic.Action)

// API is the store surface visible to middleware. Dispatch routes through the
// whole composed chain, not just the stages after the caller.
type API interface {
	GetState() any
	Dispatch(act epic.Action)
}

// Middleware wraps the dispatch chain. The outer function receives the store
// API, the returned function receives the next stage and produces this
// stage's dispatcher.
type Middleware func(api API) func(next Dispatcher) Dispatcher

// ApplyMiddleware returns an enhancer installing the given middleware. The
// first middleware observes dispatched actions first.
func ApplyMiddleware(mws ...Middleware) Enhancer {
	return func(next Creator) Creator {
		return func(reducer epic.Reducer, preloaded any) Store {
			inner := next(reducer, preloaded)
			enhanced := &middlewareStore{Store: inner}

			chain := Dispatcher(inner.Dispatch)
			for i := len(mws) - 1; i >= 0; i-- {
				chain = mws[i](enhanced)(chain)
			}
			enhanced.dispatch = chain
			return enhanced
		}
	}
}

type middlewareStore struct {
	Store
	dispatch Dispatcher
}

func (s *middlewareStore) Dispatch(act epic.Action) {
	s.dispatch(act)
}
