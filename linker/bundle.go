package linker

import (
	epic "github.com/epixode/epic-linker"
	"github.com/epixode/epic-linker/errors"
	"github.com/epixode/epic-linker/saga"
	"github.com/epixode/epic-linker/store"
	"github.com/epixode/epic-linker/view"
)

// Builder declares one bundle's contributions. It is called synchronously
// exactly once per inclusion and must not retain the bundle for later
// declaration calls: every declaration after it returns fails.
type Builder func(b *Bundle, scope *Scope) error

// DeferFunc is a deferred callback run by App.Finalize after linking and
// resolution complete.
type DeferFunc func(args ...any) error

// SelectorRef references a selector for a view: either a published name
// resolved against the declaring bundle's locals, or a direct function.
type SelectorRef struct {
	fn   epic.Selector
	name string
}

// SelectorName references a selector by its published name.
func SelectorName(name string) SelectorRef {
	return SelectorRef{name: name}
}

// SelectorFunc references a selector by value.
func SelectorFunc(fn epic.Selector) SelectorRef {
	return SelectorRef{fn: fn}
}

func (r SelectorRef) isZero() bool {
	return r.name == "" && r.fn == nil
}

// directiveKind is the closed set of deferred declaration kinds. Phase
// walkers switch exhaustively over it; an unknown kind is a link error, not
// a silently ignored default.
type directiveKind uint8

const (
	directiveEarlyReducer directiveKind = iota
	directiveActionReducer
	directiveLateReducer
	directiveView
	directiveSaga
	directiveDefer
)

func (k directiveKind) String() string {
	switch k {
	case directiveEarlyReducer:
		return "early_reducer"
	case directiveActionReducer:
		return "action_reducer"
	case directiveLateReducer:
		return "late_reducer"
	case directiveView:
		return "view"
	case directiveSaga:
		return "saga"
	case directiveDefer:
		return "defer"
	}
	return "unknown"
}

// directive is one deferred declaration, recorded in declaration order.
type directive struct {
	reducer  epic.Reducer
	renderer view.Renderer
	task     saga.Task
	deferred DeferFunc
	selector SelectorRef
	name     string
	kind     directiveKind
}

// Bundle is one bundle's contributions: its local dependency view, its
// declarations and its included children, in inclusion order.
type Bundle struct {
	linker     *Linker
	locals     *Scope
	children   []*Bundle
	directives []directive
	sealed     bool
}

func newBundle(l *Linker, label string) *Bundle {
	return &Bundle{
		linker: l,
		locals: NewScope(label),
	}
}

// Locals returns this bundle's local dependency view.
func (b *Bundle) Locals() *Scope {
	return b.locals
}

// Include instantiates a child bundle sharing the same linker, synchronously
// runs its builder, and appends it to this bundle's children. It returns the
// child's local dependency view so the includer may Use the child's exposed
// names.
func (b *Bundle) Include(child Builder) (*Scope, error) {
	if b.sealed {
		return nil, errors.Sealed("include")
	}
	c := newBundle(b.linker, "local")
	if err := child(c, c.locals); err != nil {
		return nil, err
	}
	b.children = append(b.children, c)
	return c.locals, nil
}

// Use registers the given names for resolution into this bundle's local view.
// Every name must be published somewhere in the tree by resolution time.
func (b *Bundle) Use(names ...string) error {
	if b.sealed {
		return errors.Sealed("use")
	}
	if len(names) == 0 {
		return errors.InvalidUse("use requires at least one name")
	}
	for _, name := range names {
		if name == "" {
			return errors.InvalidUse("use with empty name")
		}
	}
	b.linker.enqueueUse(b.locals, names)
	return nil
}

// Pack is Use targeting a fresh, independent dependency view, for handing a
// curated set of names to a foreign consumer.
func (b *Bundle) Pack(names ...string) (*Scope, error) {
	if b.sealed {
		return nil, errors.Sealed("pack")
	}
	if len(names) == 0 {
		return nil, errors.InvalidUse("pack requires at least one name")
	}
	for _, name := range names {
		if name == "" {
			return nil, errors.InvalidUse("pack with empty name")
		}
	}
	packed := NewScope("packed")
	b.linker.enqueueUse(packed, names)
	return packed, nil
}

// DefineValue publishes a plain value under the given name and makes the
// name usable from this bundle.
func (b *Bundle) DefineValue(name string, value any) error {
	if b.sealed {
		return errors.Sealed("defineValue")
	}
	if err := b.linker.publish(name, KindValue, value); err != nil {
		return err
	}
	b.linker.enqueueUse(b.locals, []string{name})
	return nil
}

// DefineSelector publishes a selector function under the given name.
func (b *Bundle) DefineSelector(name string, fn epic.Selector) error {
	if b.sealed {
		return errors.Sealed("defineSelector")
	}
	if err := b.linker.publish(name, KindSelector, fn); err != nil {
		return err
	}
	b.linker.enqueueUse(b.locals, []string{name})
	return nil
}

// DefineAction publishes an action creator under the given name and claims
// its wire-level type string tree-wide. A duplicate type string is a
// distinct error from a duplicate name.
func (b *Bundle) DefineAction(name, actionType string) error {
	if b.sealed {
		return errors.Sealed("defineAction")
	}
	if err := b.linker.claimActionType(actionType, name); err != nil {
		return err
	}
	if err := b.linker.publish(name, KindAction, epic.ActionCreator{Type: actionType}); err != nil {
		return err
	}
	b.linker.enqueueUse(b.locals, []string{name})
	return nil
}

// DefineView declares an unselected view: its props are the whole state.
func (b *Bundle) DefineView(name string, r view.Renderer) error {
	return b.defineView(name, SelectorRef{}, r)
}

// DefineViewWith declares a view with a selector reference. A name reference
// resolves against this bundle's locals during the view-linking pass, so a
// view may reference a selector it imported via Use.
func (b *Bundle) DefineViewWith(name string, selector SelectorRef, r view.Renderer) error {
	return b.defineView(name, selector, r)
}

func (b *Bundle) defineView(name string, selector SelectorRef, r view.Renderer) error {
	if b.sealed {
		return errors.Sealed("defineView")
	}
	// Claim the name now; the bound view is published in the view pass.
	if err := b.linker.claim(name, KindView); err != nil {
		return err
	}
	b.directives = append(b.directives, directive{
		kind:     directiveView,
		name:     name,
		selector: selector,
		renderer: r,
	})
	b.linker.enqueueUse(b.locals, []string{name})
	return nil
}

// AddReducer scopes a reducer to the action published under actionName.
// Multiple reducers for the same action compose in registration order: the
// first-registered reducer's output feeds the second.
func (b *Bundle) AddReducer(actionName string, r epic.Reducer) error {
	if b.sealed {
		return errors.Sealed("addReducer")
	}
	if actionName == "" {
		return errors.InvalidUse("addReducer with empty action name")
	}
	b.directives = append(b.directives, directive{
		kind:    directiveActionReducer,
		name:    actionName,
		reducer: r,
	})
	// The action name must be in this bundle's locals by composition time.
	b.linker.enqueueUse(b.locals, []string{actionName})
	return nil
}

// AddEarlyReducer appends a reducer running before the action dispatch stage
// for the whole composed tree.
func (b *Bundle) AddEarlyReducer(r epic.Reducer) error {
	if b.sealed {
		return errors.Sealed("addEarlyReducer")
	}
	b.directives = append(b.directives, directive{kind: directiveEarlyReducer, reducer: r})
	return nil
}

// AddLateReducer appends a reducer running after the action dispatch stage.
func (b *Bundle) AddLateReducer(r epic.Reducer) error {
	if b.sealed {
		return errors.Sealed("addLateReducer")
	}
	b.directives = append(b.directives, directive{kind: directiveLateReducer, reducer: r})
	return nil
}

// AddSaga registers a background task to run concurrently with every other
// registered task once App.Start is called.
func (b *Bundle) AddSaga(task saga.Task) error {
	if b.sealed {
		return errors.Sealed("addSaga")
	}
	if task == nil {
		return errors.InvalidUse("addSaga with nil task")
	}
	b.directives = append(b.directives, directive{kind: directiveSaga, task: task})
	return nil
}

// AddEnhancer forwards a store enhancer to the linker's flat list. Enhancers
// are not scoped per bundle; they compose globally in inclusion order.
func (b *Bundle) AddEnhancer(e store.Enhancer) error {
	if b.sealed {
		return errors.Sealed("addEnhancer")
	}
	b.linker.enhancers = append(b.linker.enhancers, e)
	return nil
}

// Defer registers a callback run once by App.Finalize, after all linking and
// resolution, depth-first: this bundle's callbacks before any child's.
func (b *Bundle) Defer(fn DeferFunc) error {
	if b.sealed {
		return errors.Sealed("defer")
	}
	b.directives = append(b.directives, directive{kind: directiveDefer, deferred: fn})
	return nil
}

// Lookup reads the global namespace directly, bypassing the local-view
// restriction. Escape hatch; prefer Use.
func (b *Bundle) Lookup(name string) (any, error) {
	return b.linker.scope.Get(name)
}

// seal marks the whole subtree immutable, depth-first.
func (b *Bundle) seal() {
	b.sealed = true
	for _, c := range b.children {
		c.seal()
	}
}
