// Package epiclinker provides a dependency-linking layer for modular
// applications built around a single state container.
//
// Independently authored "bundles" declare actions, selectors, views,
// reducers, sagas and store enhancers. The linker walks the bundle tree,
// publishes every declaration into one global namespace, resolves
// cross-bundle references, and assembles a single reducer, a single
// enhancer and a single concurrent background-task tree.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	epic-linker/         Root package with the shared Action/Reducer/Selector primitives
//	├── linker/          Bundle tree, namespace and the two-phase link algorithm
//	├── store/           Minimal state container: dispatch, subscribe, middleware, enhancers
//	├── saga/            Concurrent background-task runner (fail-fast task trees)
//	├── view/            Selector-to-view binding with change-gated re-rendering
//	└── errors/          Structured error types for link-time diagnostics
//
// # Quick Start
//
// Link a bundle tree and run it:
//
//	app, err := linker.Link(func(b *linker.Bundle, scope *linker.Scope) error {
//	    if err := b.DefineAction("inc", "counter/INC"); err != nil {
//	        return err
//	    }
//	    return b.AddReducer("inc", func(state any, act epiclinker.Action) any {
//	        s := state.(map[string]any)
//	        return map[string]any{"count": s["count"].(int) + 1}
//	    })
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	handle := app.Start(ctx)
//	app.Store.Dispatch(epiclinker.Action{Type: "counter/INC"})
//
// # Linking Model
//
// Linking is synchronous and single-pass. Builder functions run depth-first
// and may only declare; after the root builder returns the tree is sealed and
// every further declaration fails. Resolution then happens in two passes:
// non-view names first, then views (which are bound to their selectors in
// between). Composition order is deterministic: early reducers apply in
// inclusion order, late reducers in mirrored order, and per-action chains in
// registration order.
//
// All linking work completes before any background task starts, so the link
// phase needs no synchronization of its own.
package epiclinker
