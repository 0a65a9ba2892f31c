package saga

import (
	"context"

	epic "github.com/epixode/epic-linker"
	"github.com/epixode/epic-linker/errors"
	"github.com/epixode/epic-linker/store"
)

// Runner owns one Env and executes aggregate tasks against it.
type Runner struct {
	env *Env
}

// NewRunner creates a runner with an empty environment.
func NewRunner() *Runner {
	return &Runner{env: newEnv()}
}

// Env returns the runner's task environment.
func (r *Runner) Env() *Env {
	return r.env
}

// Middleware returns the store middleware wiring the runner to the store:
// task dispatches route through the store's full chain, and every dispatched
// action is re-broadcast to waiting tasks after it has been reduced.
func (r *Runner) Middleware() store.Middleware {
	return func(api store.API) func(next store.Dispatcher) store.Dispatcher {
		r.env.bindDispatch(api.Dispatch)
		return func(next store.Dispatcher) store.Dispatcher {
			return func(act epic.Action) {
				next(act)
				r.env.broadcast(act)
			}
		}
	}
}

// Run starts the task in a new goroutine and returns its handle. A task
// failure surfaces from the handle as a run-phase error wrapping the cause.
func (r *Runner) Run(ctx context.Context, task Task) *Handle {
	h := &Handle{done: make(chan struct{})}
	go func() {
		if err := task(ctx, r.env); err != nil {
			h.err = errors.TaskFailed(err)
		}
		close(h.done)
	}()
	return h
}

// Handle observes the completion or failure of a running task.
type Handle struct {
	done chan struct{}
	err  error
}

// Done returns a channel closed when the task finishes.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the task's failure, or nil if it is still running or succeeded.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Wait blocks until the task finishes and returns its failure, if any.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}
