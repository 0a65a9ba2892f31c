// Package store provides a minimal state container for linked applications.
//
// A Store holds one state value and advances it by running dispatched actions
// through a single reducer. Subscribers are notified after every dispatch.
//
// # Main Types
//
//   - Store: dispatch, state access and subscription
//   - Creator: store constructor signature consumed by enhancers
//   - Enhancer: wraps a Creator to extend store behavior
//   - Middleware: wraps the dispatch chain
//
// # Thread Safety
//
// The default store is safe for concurrent use. Dispatch applies the reducer
// under a lock and notifies subscribers outside of it.
//
// # Example
//
//	st := store.New(reducer, map[string]any{"count": 0})
//	unsubscribe := st.Subscribe(func() { fmt.Println(st.GetState()) })
//	defer unsubscribe()
//	st.Dispatch(epiclinker.Action{Type: "counter/INC"})
package store
