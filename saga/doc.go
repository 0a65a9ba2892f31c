// Package saga runs concurrent background tasks alongside a linked store.
//
// A Task is a cooperative routine connected to the action stream through an
// Env: it can dispatch actions and wait for dispatched actions. Tasks from
// every bundle in a linked tree are combined with All into one aggregate task
// that completes when every constituent completes and fails fast on the first
// constituent failure.
//
// # Lifecycle
//
//	runner := saga.NewRunner()
//	enhancer := store.ApplyMiddleware(runner.Middleware())
//	// ... create the store with the enhancer installed ...
//	handle := runner.Run(ctx, saga.All(taskA, taskB))
//	if err := handle.Wait(); err != nil {
//	    // first task failure
//	}
//
// No per-task supervision or restart is provided: the first failure fails the
// whole aggregate. Callers wanting isolation should wrap individual tasks.
package saga
