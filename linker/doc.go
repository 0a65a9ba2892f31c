// Package linker implements the bundle tree and the two-phase link algorithm.
//
// # Main Types
//
//   - Linker: owns the global namespace, the action-type registry, the
//     enhancer list and the use queue; drives resolution and assembly
//   - Bundle: one bundle's declarations and its included children
//   - Scope: safe namespace accessor; reads of undeclared names fail loudly
//   - App: the linked result — store, composed reducer, task tree
//
// # Thread Safety
//
// Linking is synchronous and single-threaded: builders run depth-first on the
// calling goroutine and the tree is sealed before anything concurrent starts.
// The linked App's store and task handle are safe for concurrent use.
//
// # Link Lifecycle
//
//  1. Execute the root builder (the tree self-assembles via Include)
//  2. Seal every bundle depth-first
//  3. Resolve non-view uses into each bundle's local view
//  4. Link views: bind selectors (resolved against the declaring bundle's
//     locals) and publish the bound views
//  5. Resolve view uses
//  6. Build the per-action reducer map, compose the early/late stages and
//     the aggregate task, construct the store
//
// # Example
//
//	app, err := linker.Link(counterBundle)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	handle := app.Start(ctx)
//	app.Store.Dispatch(epiclinker.Action{Type: "counter/INC"})
//	if err := app.Finalize(); err != nil {
//	    log.Fatal(err)
//	}
package linker
