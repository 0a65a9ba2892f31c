// Package view binds selectors to renderers and subscribes the result to a
// store.
//
// A Bound view pairs a declared name, an optional selector and a Renderer.
// Mounting it on a store re-renders whenever the selected props change;
// unrelated state changes produce no frame.
//
//	bound := view.Bind("counter", selectCount, view.RenderFunc(render))
//	unmount := bound.Mount(st, func(frame string) { fmt.Print(frame) })
//	defer unmount()
//
// The display name of a bound view is deterministic: View(<declared name>).
package view
