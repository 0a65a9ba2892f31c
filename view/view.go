package view

import (
	"reflect"
	"sync"

	epic "github.com/epixode/epic-linker"
	"github.com/epixode/epic-linker/store"
)

// Renderer turns extracted props into a frame.
type Renderer interface {
	Render(props any) string
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(props any) string

func (f RenderFunc) Render(props any) string { return f(props) }

// Bound is a view bound to its selector under a declared name.
type Bound struct {
	renderer Renderer
	selector epic.Selector
	name     string
}

// Bind pairs a renderer with a selector. A nil selector passes the whole
// state through as props.
func Bind(name string, selector epic.Selector, r Renderer) *Bound {
	return &Bound{
		name:     name,
		selector: selector,
		renderer: r,
	}
}

// Name returns the declared name.
func (b *Bound) Name() string { return b.name }

// DisplayName returns the diagnostic label derived from the declared name.
func (b *Bound) DisplayName() string { return "View(" + b.name + ")" }

// Selector returns the bound selector, or nil if the view is unselected.
func (b *Bound) Selector() epic.Selector { return b.selector }

// Props extracts this view's props from the given state.
func (b *Bound) Props(state any) any {
	if b.selector == nil {
		return state
	}
	return b.selector(state)
}

// Render extracts props from state and renders a frame.
func (b *Bound) Render(state any) string {
	return b.renderer.Render(b.Props(state))
}

// Mount renders an initial frame, then subscribes to the store and emits a
// new frame whenever the selected props change. Subscription callbacks may
// fire from concurrent dispatchers; the state read, the change check and the
// emit share one lock so frames come out in state order. The returned
// function unsubscribes.
func (b *Bound) Mount(st store.Store, sink func(frame string)) (unmount func()) {
	var mu sync.Mutex
	last := b.Props(st.GetState())
	sink(b.renderer.Render(last))

	return st.Subscribe(func() {
		mu.Lock()
		defer mu.Unlock()
		props := b.Props(st.GetState())
		if reflect.DeepEqual(props, last) {
			return
		}
		last = props
		sink(b.renderer.Render(props))
	})
}
