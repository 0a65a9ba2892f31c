package saga

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	epic "github.com/epixode/epic-linker"
)

// Task is a cooperative background routine. It should return when its work is
// done or ctx is canceled; a non-nil error fails the whole aggregate.
type Task func(ctx context.Context, env *Env) error

// All combines tasks into one task running every constituent concurrently.
// The combined task completes when all constituents complete and fails fast
// on the first constituent failure, canceling the rest via context.
func All(tasks ...Task) Task {
	return func(ctx context.Context, env *Env) error {
		if len(tasks) == 0 {
			return nil
		}
		g, ctx := errgroup.WithContext(ctx)
		for _, task := range tasks {
			task := task
			g.Go(func() error {
				return task(ctx, env)
			})
		}
		return g.Wait()
	}
}

// actionBuffer is the per-subscription channel capacity. Dispatches beyond a
// slow subscriber's buffer are dropped rather than blocking the store.
const actionBuffer = 64

// Env connects running tasks to the action stream of the linked store.
type Env struct {
	mu       sync.Mutex
	dispatch func(act epic.Action)
	subs     map[int]chan epic.Action
	nextID   int
}

func newEnv() *Env {
	return &Env{
		subs: make(map[int]chan epic.Action),
	}
}

// Dispatch sends an action through the store's full dispatch chain. It is a
// no-op until the runner's middleware has been installed.
func (e *Env) Dispatch(act epic.Action) {
	e.mu.Lock()
	dispatch := e.dispatch
	e.mu.Unlock()

	if dispatch != nil {
		dispatch(act)
	}
}

// Actions subscribes to every action dispatched from now on. The returned
// channel is never closed; it is intended for the lifetime of a task.
func (e *Env) Actions() <-chan epic.Action {
	ch, _ := e.subscribe()
	return ch
}

// Take blocks until an action with the given type is dispatched, or ctx is
// canceled. An empty actionType matches any action.
func (e *Env) Take(ctx context.Context, actionType string) (epic.Action, error) {
	ch, cancel := e.subscribe()
	defer cancel()

	for {
		select {
		case act := <-ch:
			if actionType == "" || act.Type == actionType {
				return act, nil
			}
		case <-ctx.Done():
			return epic.Action{}, ctx.Err()
		}
	}
}

func (e *Env) subscribe() (chan epic.Action, func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	ch := make(chan epic.Action, actionBuffer)
	e.subs[id] = ch
	e.mu.Unlock()

	return ch, func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

func (e *Env) broadcast(act epic.Action) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- act:
		default:
			// Subscriber buffer full; drop rather than block dispatch.
		}
	}
}

func (e *Env) bindDispatch(fn func(act epic.Action)) {
	e.mu.Lock()
	e.dispatch = fn
	e.mu.Unlock()
}
